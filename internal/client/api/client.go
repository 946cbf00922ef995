package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hellsoft/simplenotes/pkg/api"
)

//go:generate moq -out clientapi_mock.go . ClientAPI

// ClientAPI defines the interface to the remote note API.
type ClientAPI interface {
	// FetchNotes returns the full server snapshot.
	FetchNotes(ctx context.Context) ([]api.Note, error)

	// FetchNote returns a single note, or nil if the server doesn't
	// know the ID.
	FetchNote(ctx context.Context, id int64) (*api.Note, error)

	// SaveNote creates or updates a note. The server assigns the ID on
	// create and echoes the canonical note back.
	SaveNote(ctx context.Context, note api.Note) (*api.Note, error)

	// DeleteNote removes a note by server ID. A missing note surfaces
	// as a ServerError with status 404.
	DeleteNote(ctx context.Context, id int64) error
}

// Client is the HTTP implementation of ClientAPI.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

var _ ClientAPI = (*Client)(nil)

// NewClient creates a new API client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				return nil
			},
		},
	}
}

// FetchNotes returns the full server snapshot.
func (c *Client) FetchNotes(ctx context.Context) ([]api.Note, error) {
	var resp []api.Note
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/notes", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch notes request failed: %w", err)
	}
	return resp, nil
}

// FetchNote returns a single note by server ID. A 404 from the server
// means the note doesn't exist and is not an error.
func (c *Client) FetchNote(ctx context.Context, id int64) (*api.Note, error) {
	var resp api.Note
	url := fmt.Sprintf("/api/v1/notes/%d", id)
	if err := c.doRequest(ctx, http.MethodGet, url, nil, &resp); err != nil {
		if se, ok := AsServerError(err); ok && se.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch note request failed: %w", err)
	}
	return &resp, nil
}

// SaveNote creates or updates a note on the server.
func (c *Client) SaveNote(ctx context.Context, note api.Note) (*api.Note, error) {
	var resp api.Note
	url := fmt.Sprintf("/api/v1/notes/%d", note.ID)
	if err := c.doRequest(ctx, http.MethodPost, url, note, &resp); err != nil {
		return nil, fmt.Errorf("save note request failed: %w", err)
	}
	return &resp, nil
}

// DeleteNote removes a note by server ID.
func (c *Client) DeleteNote(ctx context.Context, id int64) error {
	url := fmt.Sprintf("/api/v1/notes/%d", id)
	if err := c.doRequest(ctx, http.MethodDelete, url, nil, nil); err != nil {
		return fmt.Errorf("delete note request failed: %w", err)
	}
	return nil
}

// doRequest performs an HTTP request and maps failures into the error
// taxonomy: transport failures become TransientError, non-2xx statuses
// become ServerError.
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Everything the transport reports (DNS, refused connections,
		// timeouts) is retryable from the caller's point of view.
		return &TransientError{Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransientError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		serverErr := &ServerError{StatusCode: resp.StatusCode}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			serverErr.Message = errResp.Message
		} else {
			serverErr.Message = string(bytes.TrimSpace(respBody))
		}
		return serverErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
