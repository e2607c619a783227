package accesssdk

import (
	"context"
	"net/http"
	"strconv"
)

// Enqueue files a free access request, or returns the user's pending one.
// Requires access:member.
func (c *Client) Enqueue(ctx context.Context, req EnqueueRequest) (*QueueStatusResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/queue", req)
	if err != nil {
		return nil, err
	}

	// 201 when filed, 200 when an existing request is returned.
	expected := http.StatusOK
	if resp.StatusCode == http.StatusCreated {
		expected = http.StatusCreated
	}

	var out QueueStatusResponse
	if err := decodeJSON(resp, &out, expected); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetQueueStatus returns the user's pending request and remaining wait.
// Requires access:member.
func (c *Client) GetQueueStatus(ctx context.Context, userID int64) (*QueueStatusResponse, error) {
	path := "/v1/queue/" + strconv.FormatInt(userID, 10)
	return do[QueueStatusResponse](ctx, c, http.MethodGet, path, nil, http.StatusOK)
}
