package accesssdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientSendsBearerAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tkn", r.Header.Get("Authorization"))
		require.Equal(t, "/v1/tokens/redeem", r.URL.Path)

		var req RedeemTokenRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "ABCDEFGH12345678", req.Token)
		require.Equal(t, int64(42), req.UserID)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(MembershipResponse{ID: "m1", UserID: 42, Status: "active"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "tkn")
	m, err := c.RedeemToken(context.Background(), RedeemTokenRequest{Token: "ABCDEFGH12345678", UserID: 42})
	require.NoError(t, err)
	require.Equal(t, "m1", m.ID)
	require.Equal(t, "active", m.Status)
}

func TestClientMapsErrorBodies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ErrTokenAlreadyUsed.WriteError(w)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "tkn").RedeemToken(context.Background(), RedeemTokenRequest{Token: "x", UserID: 1})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrTokenAlreadyUsed))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.StatusCode)
}

func TestClientHandlesUnexpectedBodies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").GetLiveness(context.Background())
	require.ErrorIs(t, err, ErrServerError)
}

func TestEnqueueAcceptsCreatedAndOK(t *testing.T) {
	status := http.StatusCreated
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(QueueStatusResponse{RequestID: "r1", UserID: 7, Created: status == http.StatusCreated})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tkn")
	got, err := c.Enqueue(context.Background(), EnqueueRequest{UserID: 7})
	require.NoError(t, err)
	require.True(t, got.Created)

	status = http.StatusOK
	got, err = c.Enqueue(context.Background(), EnqueueRequest{UserID: 7})
	require.NoError(t, err)
	require.False(t, got.Created)
}
