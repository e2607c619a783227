/*
Package accesssdk is the Go client for the Lounge access service.

# Overview

The access service issues premium invitation tokens, tracks premium
memberships and runs the free-tier admission queue. Every call except the
health checks needs a bearer JWT carrying either the access:admin or the
access:member scope.

	client := accesssdk.NewClient("https://access.example.com", token)

	// Admin: mint a 24 hour token
	tok, err := client.GenerateToken(ctx, accesssdk.GenerateTokenRequest{DurationHours: 24})

	// Member: redeem it for a user
	m, err := client.RedeemToken(ctx, accesssdk.RedeemTokenRequest{Token: tok.Token, UserID: 42})

# Errors

Failed calls return an *APIError. It matches the predefined errors by code,
so callers can branch with errors.Is:

	if errors.Is(err, accesssdk.ErrTokenAlreadyUsed) {
		// tell the user
	}
*/
package accesssdk
