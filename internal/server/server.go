// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes divisor enumeration over HTTP.
//
// Routes:
//
//	GET /factors/{n}  divisors of n as a Factorization JSON document
//	GET /healthz      liveness probe
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/pdiddy/factors/internal/divisors"
	"github.com/pdiddy/factors/pkg/types"
)

const (
	defaultShutdownTimeout = 5 * time.Second

	// retryAfterSeconds is advertised on 429 responses.
	retryAfterSeconds = 1
)

// Recorder receives every factorization the server computes.
type Recorder interface {
	Record(ctx context.Context, f types.Factorization) error
}

// Server serves the factors API.
type Server struct {
	cfg      types.ServerConfig
	logger   *zap.Logger
	recorder Recorder
	slots    chan struct{}
	router   *mux.Router
}

// New builds a Server. logger may be nil; recorder may be nil.
func New(cfg types.ServerConfig, logger *zap.Logger, recorder Recorder) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		recorder: recorder,
	}
	if cfg.MaxInFlight > 0 {
		s.slots = make(chan struct{}, cfg.MaxInFlight)
	}

	r := mux.NewRouter()
	r.HandleFunc("/factors/{n}", s.handleFactors).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Use(s.logRequests)
	s.router = r
	return s
}

// Handler returns the HTTP handler for the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on cfg.Listen until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Listen, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving factors API", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleFactors(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["n"]
	n, err := strconv.Atoi(raw)
	switch {
	case errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-"):
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("%s exceeds the maximum input %d", raw, s.maxInput()))
		return
	case errors.Is(err, strconv.ErrRange):
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%s: input must be a positive integer", raw))
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%q is not an integer", raw))
		return
	}
	if s.cfg.MaxInput > 0 && n > s.cfg.MaxInput {
		writeError(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("%d exceeds the maximum input %d", n, s.cfg.MaxInput))
		return
	}

	if s.slots != nil {
		select {
		case s.slots <- struct{}{}:
			defer func() { <-s.slots }()
		default:
			w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
			writeError(w, http.StatusTooManyRequests, "too many requests in flight")
			return
		}
	}

	f, err := divisors.Describe(n)
	if errors.Is(err, divisors.ErrInvalidArgument) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if s.recorder != nil {
		if err := s.recorder.Record(r.Context(), f); err != nil {
			s.logger.Warn("recording factorization failed", zap.Int("n", n), zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, f)
}

// maxInput is the largest n the server accepts.
func (s *Server) maxInput() int {
	if s.cfg.MaxInput > 0 {
		return s.cfg.MaxInput
	}
	return math.MaxInt
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// statusRecorder captures the response status for request logs.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sr, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", sr.status),
			zap.Duration("elapsed", time.Since(start)))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
