package nova

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"tablebook/internal/pkg/config"
	"tablebook/internal/pkg/errs"
)

var (
	// ErrExternalTimeout marks a call that exceeded the bounded per-call
	// timeout, distinct from a generic API failure.
	ErrExternalTimeout = errors.New("external api timeout")
	// ErrTableAlreadyOccupied is the distinguishable occupancy rejection of
	// the book-table endpoint. Callers must refresh table availability
	// instead of retrying blindly.
	ErrTableAlreadyOccupied = errors.New("table already occupied")
	// ErrMissingExternalRef marks operations attempted for a tenant without
	// an external reference id. Configuration error; no call is made.
	ErrMissingExternalRef = errors.New("restaurant has no external reference id")
)

// APIError is a non-2xx response from the booking API.
type APIError struct {
	StatusCode int
	Errors     []ErrorItem
}

// ErrorItem is one entry of the API's list-of-errors response shape.
type ErrorItem struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("nova api error (status %d): %s %s", e.StatusCode, e.Errors[0].ErrorCode, e.Errors[0].Message)
	}
	return fmt.Sprintf("nova api error (status %d)", e.StatusCode)
}

// Client talks to the third-party reservation/table/SMS/payments API. Every
// call runs under a bounded timeout with a single retry on transport
// errors; HTTP-level failures are never retried.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(cfg config.NovaConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return errs.Wrap(err, "failed to encode request body")
		}
	}

	resp, err := c.attempt(ctx, method, path, payload)
	if err != nil {
		if isTimeout(ctx, err) {
			return ErrExternalTimeout
		}
		// One retry on transport errors only.
		resp, err = c.attempt(ctx, method, path, payload)
		if err != nil {
			if isTimeout(ctx, err) {
				return ErrExternalTimeout
			}
			return errs.Wrap(err, "nova request failed")
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errs.Wrap(err, "failed to read nova response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp.StatusCode, raw)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return errs.Wrap(err, "failed to decode nova response")
		}
	}
	return nil
}

func (c *Client) attempt(ctx context.Context, method, path string, payload []byte) (*http.Response, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.http.Do(req)
}

// decodeAPIError parses the list-of-errors body shape and maps known error
// codes to sentinel errors.
func decodeAPIError(status int, raw []byte) error {
	var items []ErrorItem
	if err := json.Unmarshal(raw, &items); err != nil {
		// Some endpoints wrap the list in an object.
		var wrapped struct {
			Errors []ErrorItem `json:"errors"`
		}
		if err := json.Unmarshal(raw, &wrapped); err == nil {
			items = wrapped.Errors
		}
	}

	apiErr := &APIError{StatusCode: status, Errors: items}
	for _, item := range items {
		if item.ErrorCode == "TableAlreadyOccupied" {
			return errs.Mark(apiErr, ErrTableAlreadyOccupied)
		}
	}
	return apiErr
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
