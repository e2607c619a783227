package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/lounge/pkg/accesssdk"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestSetWaitSendsSettingsUpdate(t *testing.T) {
	var got accesssdk.UpdateSettingsRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/v1/settings", r.URL.Path)
		require.True(t, strings.HasPrefix(r.Header.Get("Authorization"), "Bearer "))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(accesssdk.Settings{WaitTimeMinutes: *got.WaitTimeMinutes})
	}))
	defer srv.Close()

	err := run([]string{"--url", srv.URL, "--secret", testSecret, "set-wait", "10"})
	require.NoError(t, err)
	require.NotNil(t, got.WaitTimeMinutes)
	require.Equal(t, 10, *got.WaitTimeMinutes)
	require.Nil(t, got.TokenLength)
}

func TestRunRejectsBadInput(t *testing.T) {
	require.ErrorContains(t, run([]string{"--secret", testSecret}), "no command")
	require.ErrorContains(t, run([]string{"--secret", testSecret, "frobnicate"}), "unknown command")
	require.ErrorContains(t, run([]string{"--secret", "short", "jobs"}), "--secret")
	require.ErrorContains(t, run([]string{"--secret", testSecret, "wait", "bob"}), "not a user id")
	require.ErrorContains(t, run([]string{"--secret", testSecret, "redeem", "--user", "1"}), "--token")
}

func TestAPIErrorsSurface(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accesssdk.ErrTokenExpired.WriteError(w)
	}))
	defer srv.Close()

	err := run([]string{"--url", srv.URL, "--secret", testSecret, "redeem", "--token", "ABCDEFGH", "--user", "5"})
	require.ErrorIs(t, err, accesssdk.ErrTokenExpired)
}
