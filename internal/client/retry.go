// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

var (
	// RetryBaseDelay is the first backoff step when a 429 carries no
	// usable Retry-After header. Each further attempt doubles it.
	RetryBaseDelay = 500 * time.Millisecond

	// MaxRetryAfter caps how long a server-supplied Retry-After may stall
	// a request.
	MaxRetryAfter = 30 * time.Second
)

const defaultMaxRetries = 5

// DoWithRetry sends req and resends it while the server answers 429 Too
// Many Requests. The wait before each resend is the response's Retry-After
// (delta-seconds or HTTP date, capped at MaxRetryAfter) when present, and
// RetryBaseDelay doubled per attempt otherwise.
//
// maxRetries <= 0 selects the default of 5. Any other status is returned
// immediately. Once retries run out the final 429 is returned for the
// caller to report. A context cancelled mid-wait yields ctx.Err().
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusTooManyRequests || attempt >= maxRetries {
			return resp, nil
		}

		wait := retryDelay(resp.Header.Get("Retry-After"), attempt, time.Now())
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// retryDelay picks the wait before retry number attempt+1.
func retryDelay(retryAfter string, attempt int, now time.Time) time.Duration {
	if d, ok := parseRetryAfter(retryAfter, now); ok {
		return min(d, MaxRetryAfter)
	}
	return RetryBaseDelay << attempt
}

func parseRetryAfter(v string, now time.Time) (time.Duration, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0, false
		}
		if time.Duration(secs) > MaxRetryAfter/time.Second {
			return MaxRetryAfter, true
		}
		return time.Duration(secs) * time.Second, true
	}
	if at, err := http.ParseTime(v); err == nil {
		return max(at.Sub(now), 0), true
	}
	return 0, false
}
