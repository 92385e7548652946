package complaint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotFound means the backend has no record for the requested ID.
var ErrNotFound = errors.New("complaint not found")

// ErrBackend marks transport failures and server-side errors. Callers may
// retry; a draft pending submission survives this error.
var ErrBackend = errors.New("complaint backend unavailable")

// Client talks to the complaint service over REST.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a complaint backend client. A nil httpClient gets a
// default with a request timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Submit files a new complaint from the collected slot values and returns
// the ID assigned by the backend.
func (c *Client) Submit(ctx context.Context, fields map[string]string) (string, error) {
	request := submitRequest{
		Name:             fields["name"],
		PhoneNumber:      fields["phone"],
		Email:            fields["email"],
		ComplaintDetails: fields["details"],
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/complaints", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackend, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: error reading response: %v", ErrBackend, err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("%w: status %d: %s", ErrBackend, resp.StatusCode, string(body))
	}

	var response submitResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("%w: error unmarshaling response: %v", ErrBackend, err)
	}
	if response.ComplaintID == "" {
		return "", fmt.Errorf("%w: response carries no complaint_id", ErrBackend)
	}

	return response.ComplaintID, nil
}

// Fetch retrieves an existing complaint by ID.
func (c *Client) Fetch(ctx context.Context, id string) (*Record, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/api/complaints/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: error reading response: %v", ErrBackend, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d: %s", ErrBackend, resp.StatusCode, string(body))
	}

	record := &Record{}
	if err := json.Unmarshal(body, record); err != nil {
		return nil, fmt.Errorf("%w: error unmarshaling response: %v", ErrBackend, err)
	}
	return record, nil
}

type submitRequest struct {
	Name             string `json:"name"`
	PhoneNumber      string `json:"phone_number"`
	Email            string `json:"email"`
	ComplaintDetails string `json:"complaint_details"`
}

type submitResponse struct {
	ComplaintID string `json:"complaint_id"`
	Message     string `json:"message,omitempty"`
}
