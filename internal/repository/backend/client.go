package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golfcart-dashboard/internal/logger"
)

const serviceName = "rental-backend"

var (
	// ErrTransport covers network failures and non-2xx responses that carry no envelope.
	ErrTransport = errors.New("rental backend unreachable")
	// ErrUnexpectedShape is returned when a body is neither an envelope nor the expected value.
	ErrUnexpectedShape = errors.New("unexpected response shape")
)

// APIError is an envelope the backend flagged as not succeeded.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("rental backend rejected the request (status %d)", e.StatusCode)
	}
	return e.Message
}

// RetryPolicy bounds retries of idempotent reads. Backoff doubles per attempt.
type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration
}

// Client talks to the rental backend's REST endpoints.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	retry   RetryPolicy
}

func NewClient(baseURL, token string, timeout time.Duration, retry RetryPolicy) *Client {
	if retry.Attempts <= 0 {
		retry.Attempts = 1
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: timeout},
		retry:   retry,
	}
}

// get fetches path and decodes its result into out, retrying transient failures.
func (c *Client) get(ctx context.Context, path string, out any) error {
	var lastErr error
	for attempt := 0; attempt < c.retry.Attempts; attempt++ {
		if attempt > 0 {
			wait := c.retry.Backoff << (attempt - 1)
			logger.Warn("Retrying rental backend read", "path", path, "attempt", attempt+1, "wait", wait, "error", lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}

		body, status, err := c.roundTrip(ctx, http.MethodGet, path, nil)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			continue
		}
		err = decodeResult(body, status, out)
		if err != nil && errors.Is(err, ErrTransport) && status >= 500 {
			lastErr = err
			continue
		}
		return err
	}
	return lastErr
}

// send performs a mutation once. Mutations are never retried.
func (c *Client) send(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	respBody, status, err := c.roundTrip(ctx, method, path, body)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return decodeResult(respBody, status, out)
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body io.Reader) ([]byte, int, error) {
	operation := method + " " + path
	logger.ExternalServiceCall(serviceName, operation)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrTransport, err)
		logger.ExternalServiceResult(serviceName, operation, err)
		return nil, 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("%w: reading body: %v", ErrTransport, err)
		logger.ExternalServiceResult(serviceName, operation, err, "status", resp.StatusCode)
		return nil, resp.StatusCode, err
	}
	logger.ExternalServiceResult(serviceName, operation, nil, "status", resp.StatusCode, "bytes", len(data))
	return data, resp.StatusCode, nil
}
