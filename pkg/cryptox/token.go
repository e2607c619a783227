package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// Alphanumeric is the alphabet invitation tokens are drawn from.
const Alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Bounds on generated alphanumeric token lengths.
const (
	MinTokenLength = 8
	MaxTokenLength = 64
)

// GenerateAlphanumeric returns a cryptographically random string of exactly
// length characters from Alphanumeric.
//
// Bytes above the largest multiple of len(Alphanumeric) are discarded so every
// character is equally likely.
func GenerateAlphanumeric(length int) (string, error) {
	if length < MinTokenLength || length > MaxTokenLength {
		return "", fmt.Errorf("token length must be between %d and %d, got %d",
			MinTokenLength, MaxTokenLength, length)
	}

	const alphabetLen = len(Alphanumeric)
	const limit = 256 - (256 % alphabetLen)

	out := make([]byte, 0, length)
	buf := make([]byte, length*2)

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to generate random token: %w", err)
		}

		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, Alphanumeric[int(b)%alphabetLen])
			if len(out) == length {
				break
			}
		}
	}

	return string(out), nil
}

// FingerprintToken returns a SHA-256 fingerprint of a token, base64url
// encoded (43 chars).
//
// Tokens are stored and looked up by fingerprint, so the database never holds
// a redeemable value. Logs refer to tokens the same way.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
