// Package api is the HTTP transport the device uses to reach the trip server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tripdiary/internal/domain/models"
)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 64 << 10
)

// Client talks JSON to the trip server.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func New(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// PushTrip sends one trip to POST /api/trips.
func (c *Client) PushTrip(ctx context.Context, trip models.Trip) error {
	var resp models.CreateTripResponse
	return c.do(ctx, http.MethodPost, "/api/trips", trip, &resp)
}

// PushTrips sends trips to POST /api/trips/bulk and returns the ids the
// server accepted.
func (c *Client) PushTrips(ctx context.Context, trips []models.Trip) ([]string, error) {
	var resp models.SyncTripsResponse
	if err := c.do(ctx, http.MethodPost, "/api/trips/bulk", models.SyncTripsRequest{Trips: trips}, &resp); err != nil {
		return nil, err
	}
	return resp.SyncedIDs, nil
}

// Ping returns the server's ping message.
func (c *Client) Ping(ctx context.Context) (string, error) {
	var resp models.PingResponse
	if err := c.do(ctx, http.MethodGet, "/api/ping", nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	res, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOffline, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &StatusError{StatusCode: res.StatusCode, Message: errorMessage(res)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func errorMessage(res *http.Response) string {
	data, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &payload) == nil && payload.Message != "" {
		return fmt.Sprintf("%d %s", res.StatusCode, payload.Message)
	}
	return res.Status
}
