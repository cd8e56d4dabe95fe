package platform

import (
	"log/slog"

	"github.com/aretw0/silt/pkg/core"
)

// options holds the internal configuration for the silt service.
type options struct {
	repository  core.Repository
	logger      *slog.Logger
	format      string
	systemDir   string
	mustExist   bool
	readOnly    bool
	forceTemp   bool
	eventBuffer int
}

// Option defines a functional option for configuring silt.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{}
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithFormat selects the document file format by extension (".json" or ".md").
// Defaults to ".json".
func WithFormat(ext string) Option {
	return func(o *options) {
		o.format = ext
	}
}

// WithMustExist ensures the store directory must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithReadOnly enables read-only mode.
// Write operations (Save, Delete) return core.ErrReadOnly and
// initialization will not create the store directory.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithRepository allows injecting a custom storage adapter (e.g. mock, s3).
// If provided, the default filesystem adapter will be skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithSystemDir allows specifying the hidden directory name (e.g. ".silt").
// Defaults to ".silt" if not set (handled by adapter).
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.systemDir = name
	}
}

// WithEventBuffer allows specifying the size of the watch event buffer.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}
