// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package client fetches factorizations from a running factors API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/factors/pkg/types"
)

// Client talks to the HTTP API served by `factors serve`.
type Client struct {
	baseURL    string
	http       *http.Client
	maxRetries int
}

// New returns a Client for baseURL. A nil httpClient uses http.DefaultClient.
func New(baseURL string, httpClient *http.Client, maxRetries int) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		http:       httpClient,
		maxRetries: maxRetries,
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// Factors requests the divisors of n from the API.
func (c *Client) Factors(ctx context.Context, n int) (types.Factorization, error) {
	endpoint, err := url.JoinPath(c.baseURL, "factors", strconv.Itoa(n))
	if err != nil {
		return types.Factorization{}, fmt.Errorf("building request URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return types.Factorization{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := DoWithRetry(ctx, c.http, req, c.maxRetries)
	if err != nil {
		return types.Factorization{}, fmt.Errorf("requesting factors of %d: %w", n, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var eb errorBody
		msg := strings.TrimSpace(string(body))
		if json.Unmarshal(body, &eb) == nil && eb.Error != "" {
			msg = eb.Error
		}
		return types.Factorization{}, fmt.Errorf("factors of %d: server returned %d: %s", n, resp.StatusCode, msg)
	}

	var f types.Factorization
	if err := json.NewDecoder(resp.Body).Decode(&f); err != nil {
		return types.Factorization{}, fmt.Errorf("decoding response: %w", err)
	}
	return f, nil
}
