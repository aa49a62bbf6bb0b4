// Package httpclient fetches and decodes JSON resources over HTTP.
package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
)

// maxErrorBody caps how much of an unexpected response is kept for the error.
const maxErrorBody = 512

var ErrUnexpectedStatus = errors.New("unexpected status")

// StatusError is returned when the response status is not in the accepted list.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %d: %s", ErrUnexpectedStatus, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

type Option func(*http.Request)

// WithHeader sets a request header.
func WithHeader(key, value string) Option {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

// GetResource sends a GET to baseURL+endpoint and decodes the JSON body into T.
// Any status outside okStatuses yields a *StatusError.
func GetResource[T any](ctx context.Context, client *http.Client, baseURL, endpoint string, okStatuses []int, opts ...Option) (T, error) {
	var zero T

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+endpoint, nil)
	if err != nil {
		return zero, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for _, opt := range opts {
		opt(req)
	}

	resp, err := client.Do(req)
	if err != nil {
		return zero, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if !slices.Contains(okStatuses, resp.StatusCode) {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return zero, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var res T
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return zero, fmt.Errorf("decode response: %w", err)
	}

	return res, nil
}
