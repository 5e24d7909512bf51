// Package userdir resolves actor identifiers against the external identity
// service over HTTP, with a redis read-through cache in front.
package userdir

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/core/ports"
)

const resolveTimeout = 3 * time.Second

// Client implements ports.UserDirectory against the identity service's batch
// resolve endpoint. Lookups carry a bounded timeout so a slow directory never
// stalls a listing.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a directory client for the given base URL.
func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: resolveTimeout},
	}, nil
}

type resolveRequest struct {
	IDs []string `json:"ids"`
}

type resolveResponse struct {
	Users []userPayload `json:"users"`
}

type userPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Resolve posts the deduplicated id batch to the directory and maps the
// response. Unknown ids are absent from the result; transport and decode
// failures surface as errors for the caller to degrade on.
func (c *Client) Resolve(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]ports.UserInfo, error) {
	if len(ids) == 0 {
		return map[kernel.UUID]ports.UserInfo{}, nil
	}

	payload := resolveRequest{IDs: make([]string, 0, len(ids))}
	for _, id := range ids {
		payload.IDs = append(payload.IDs, id.String())
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode resolve request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/api/v1/users/resolve", bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("build resolve request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("resolve users: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("resolve users: directory returned %d", resp.StatusCode)
	}

	var decoded resolveResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode resolve response: %w", err)
	}

	result := make(map[kernel.UUID]ports.UserInfo, len(decoded.Users))
	for _, user := range decoded.Users {
		id, parseErr := kernel.UUIDFromString(user.ID)
		if parseErr != nil {
			continue
		}
		result[id] = ports.UserInfo{ID: id, Name: user.Name, Email: user.Email}
	}

	return result, nil
}
