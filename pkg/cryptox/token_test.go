package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateAlphanumeric(t *testing.T) {
	tests := []struct {
		name   string
		length int
	}{
		{"minimum length", MinTokenLength},
		{"default length", 16},
		{"maximum length", MaxTokenLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateAlphanumeric(tt.length)
			require.NoError(t, err)
			require.Len(t, token, tt.length)

			for _, r := range token {
				require.True(t, strings.ContainsRune(Alphanumeric, r), "unexpected rune %q", r)
			}

			token2, err := GenerateAlphanumeric(tt.length)
			require.NoError(t, err)
			require.NotEqual(t, token, token2, "tokens should be unique")
		})
	}
}

func TestGenerateAlphanumeric_InvalidLength(t *testing.T) {
	for _, length := range []int{-1, 0, MinTokenLength - 1, MaxTokenLength + 1} {
		token, err := GenerateAlphanumeric(length)
		require.Error(t, err)
		require.Empty(t, token)
	}
}

func TestGenerateAlphanumeric_Distribution(t *testing.T) {
	// Every character of the alphabet should show up in a big enough sample.
	seen := make(map[rune]bool, len(Alphanumeric))
	for range 200 {
		token, err := GenerateAlphanumeric(MaxTokenLength)
		require.NoError(t, err)
		for _, r := range token {
			seen[r] = true
		}
	}
	require.Len(t, seen, len(Alphanumeric))
}

func TestFingerprintToken(t *testing.T) {
	fp1a := FingerprintToken("AbC123xyzAbC123x")
	fp1b := FingerprintToken("AbC123xyzAbC123x")
	fp2 := FingerprintToken("ZZZ123xyzAbC123x")

	require.Equal(t, fp1a, fp1b)
	require.NotEqual(t, fp1a, fp2)
	require.Len(t, fp1a, 43, "SHA-256 base64url should be 43 chars")
}
