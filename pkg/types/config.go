// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HistoryConfig holds settings for the local factorization history.
type HistoryConfig struct {
	// DBPath is the SQLite database file (default "factors.db").
	DBPath string `json:"db_path" yaml:"db_path"`

	// MaxResults is the default row limit for listings (default 100).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Listen is the address the API binds to (e.g. ":8080").
	Listen string `json:"listen" yaml:"listen"`

	// MaxInput is the largest n the API will factor. Zero disables the limit.
	MaxInput int `json:"max_input" yaml:"max_input"`

	// MaxInFlight caps concurrent factorizations; excess requests get 429.
	// Zero disables the cap.
	MaxInFlight int `json:"max_in_flight" yaml:"max_in_flight"`

	// ShutdownTimeout bounds graceful shutdown (default 5s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// ClientConfig holds settings for talking to a remote API.
type ClientConfig struct {
	// URL is the base URL of the API (e.g. "http://localhost:8080").
	URL string `json:"url" yaml:"url"`

	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// MaxRetries is the number of retries on HTTP 429 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// Config groups all settings read from factors.yaml. The sections are
// inlined, so the file and the FACTORS_* environment variables use flat
// keys such as db_path, listen and url.
type Config struct {
	// Workers is the concurrency used when factoring several inputs (default 1).
	Workers int `json:"workers" yaml:"workers"`

	// LogLevel selects the serve log level: debug, info, warn, error.
	LogLevel string `json:"log_level" yaml:"log_level"`

	HistoryConfig `yaml:",inline"`
	ServerConfig  `yaml:",inline"`
	ClientConfig  `yaml:",inline"`
}
