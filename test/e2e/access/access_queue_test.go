package access_test

import (
	"testing"

	"github.com/aussiebroadwan/lounge/pkg/accesssdk"
	"github.com/stretchr/testify/require"
)

// TestFreeQueueFlow enqueues a user, checks the remaining wait and runs the
// queue job manually.
func TestFreeQueueFlow(t *testing.T) {
	baseURL, cleanup := setupAccessContainer(t, nil)
	defer cleanup()

	admin := adminClient(t, baseURL)
	member := memberClient(t, baseURL)
	ctx := t.Context()

	q, err := member.Enqueue(ctx, accesssdk.EnqueueRequest{UserID: 3001})
	require.NoError(t, err)
	require.True(t, q.Created)
	require.Equal(t, 1, q.WaitTimeMinutes)
	require.Equal(t, 1, q.RemainingMinutes)

	again, err := member.Enqueue(ctx, accesssdk.EnqueueRequest{UserID: 3001})
	require.NoError(t, err)
	require.False(t, again.Created)
	require.Equal(t, q.RequestID, again.RequestID)

	// Not ready yet: the manual run selects nothing.
	rep, err := admin.RunJob(ctx, "process_queue")
	require.NoError(t, err)
	require.Equal(t, 0, rep.Selected)

	status, err := member.GetQueueStatus(ctx, 3001)
	require.NoError(t, err)
	require.Equal(t, q.RequestID, status.RequestID)
}

// TestSettingsAndJobs exercises the admin surfaces.
func TestSettingsAndJobs(t *testing.T) {
	baseURL, cleanup := setupAccessContainer(t, nil)
	defer cleanup()

	admin := adminClient(t, baseURL)
	ctx := t.Context()

	wait := 30
	got, err := admin.UpdateSettings(ctx, accesssdk.UpdateSettingsRequest{WaitTimeMinutes: &wait})
	require.NoError(t, err)
	require.Equal(t, 30, got.WaitTimeMinutes)

	bad := 0
	_, err = admin.UpdateSettings(ctx, accesssdk.UpdateSettingsRequest{WaitTimeMinutes: &bad})
	var apiErr *accesssdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, accesssdk.ErrorCodeInvalidWaitTime, apiErr.Code)

	jobs, err := admin.ListJobs(ctx)
	require.NoError(t, err)
	require.Len(t, jobs.Jobs, 3)

	_, err = admin.RunJob(ctx, "nope")
	require.ErrorIs(t, err, accesssdk.ErrUnknownJob)

	rep, err := admin.RunJob(ctx, "expire_and_release")
	require.NoError(t, err)
	require.Equal(t, "manual", rep.Trigger)
}
