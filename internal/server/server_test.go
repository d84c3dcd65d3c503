// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pdiddy/factors/pkg/types"
)

type memRecorder struct {
	mu   sync.Mutex
	seen []types.Factorization
	err  error
}

func (m *memRecorder) Record(_ context.Context, f types.Factorization) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen = append(m.seen, f)
	return m.err
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestHandleFactors(t *testing.T) {
	tests := []struct {
		name string
		path string
		want types.Factorization
	}{
		{
			name: "composite",
			path: "/factors/45",
			want: types.Factorization{N: 45, Divisors: []int{1, 3, 5, 9, 15, 45}, Count: 6},
		},
		{
			name: "prime",
			path: "/factors/53",
			want: types.Factorization{N: 53, Divisors: []int{1, 53}, Count: 2, Prime: true},
		},
		{
			name: "power of two",
			path: "/factors/64",
			want: types.Factorization{N: 64, Divisors: []int{1, 2, 4, 8, 16, 32, 64}, Count: 7},
		},
		{
			name: "one",
			path: "/factors/1",
			want: types.Factorization{N: 1, Divisors: []int{1}, Count: 1},
		},
	}

	s := New(types.ServerConfig{}, zaptest.NewLogger(t), nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s.Handler(), tt.path)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var got types.Factorization
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandleFactorsErrors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		status int
		errMsg string
	}{
		{name: "not a number", path: "/factors/abc", status: http.StatusBadRequest, errMsg: "not an integer"},
		{name: "zero", path: "/factors/0", status: http.StatusBadRequest, errMsg: "positive integer"},
		{name: "negative", path: "/factors/-12", status: http.StatusBadRequest, errMsg: "positive integer"},
		{name: "over limit", path: "/factors/1001", status: http.StatusUnprocessableEntity, errMsg: "maximum input 1000"},
		{name: "overflows int", path: "/factors/99999999999999999999", status: http.StatusUnprocessableEntity, errMsg: "exceeds the maximum input 1000"},
		{name: "underflows int", path: "/factors/-99999999999999999999", status: http.StatusBadRequest, errMsg: "positive integer"},
	}

	s := New(types.ServerConfig{MaxInput: 1000}, zaptest.NewLogger(t), nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s.Handler(), tt.path)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, errorMessage(t, rec), tt.errMsg)
		})
	}
}

func TestHandleFactorsOverflowWithoutLimit(t *testing.T) {
	s := New(types.ServerConfig{}, zaptest.NewLogger(t), nil)
	rec := get(t, s.Handler(), "/factors/99999999999999999999")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "exceeds the maximum input")
}

func TestHandleFactorsMethodNotAllowed(t *testing.T) {
	s := New(types.ServerConfig{}, nil, nil)
	req := httptest.NewRequest(http.MethodPost, "/factors/45", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleFactorsTooManyInFlight(t *testing.T) {
	s := New(types.ServerConfig{MaxInFlight: 2}, zaptest.NewLogger(t), nil)

	// Occupy every slot.
	s.slots <- struct{}{}
	s.slots <- struct{}{}

	rec := get(t, s.Handler(), "/factors/45")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	<-s.slots
	rec = get(t, s.Handler(), "/factors/45")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, s.slots, 1, "slot should be released after the request")
}

func TestHandleFactorsRecords(t *testing.T) {
	recorder := &memRecorder{}
	s := New(types.ServerConfig{}, zaptest.NewLogger(t), recorder)

	get(t, s.Handler(), "/factors/53")
	get(t, s.Handler(), "/factors/0")

	require.Len(t, recorder.seen, 1)
	assert.Equal(t, 53, recorder.seen[0].N)
}

func TestHandleFactorsRecorderFailureStillServes(t *testing.T) {
	recorder := &memRecorder{err: errors.New("disk full")}
	s := New(types.ServerConfig{}, zaptest.NewLogger(t), recorder)

	rec := get(t, s.Handler(), "/factors/64")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthz(t *testing.T) {
	s := New(types.ServerConfig{}, nil, nil)
	rec := get(t, s.Handler(), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := New(types.ServerConfig{ShutdownTimeout: time.Second}, zaptest.NewLogger(t), nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
