package silt

import (
	"log/slog"

	"github.com/aretw0/silt/internal/platform"
	"github.com/aretw0/silt/pkg/core"
	"github.com/aretw0/silt/pkg/model"
)

// Version exposes the version of the library.
const Version = "0.1.0"

// --- Types ---

// Document is a public alias for the domain document.
type Document = core.Document

// Draft is a public alias for the Save input.
type Draft = core.Draft

// Metadata is a public alias for the flexible key-value map.
type Metadata = core.Metadata

// ListOptions is a public alias for pagination options.
type ListOptions = core.ListOptions

// SearchQuery is a public alias for the tag query.
type SearchQuery = core.SearchQuery

// ModelInfo is a public alias for a preprocessing model descriptor.
type ModelInfo = model.Info

// Event is a public alias for store change events.
type Event = core.Event

// Common errors re-exported for callers using errors.Is.
var (
	ErrNotFound   = core.ErrNotFound
	ErrValidation = core.ErrValidation
	ErrReadOnly   = core.ErrReadOnly
)

// --- Configuration ---

// Option defines a functional option for configuring silt.
type Option = platform.Option

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithFormat selects the document file format by extension (".json" or ".md").
func WithFormat(ext string) Option {
	return platform.WithFormat(ext)
}

// WithMustExist ensures the store directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithReadOnly enables read-only mode.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithSystemDir allows specifying the hidden directory name (e.g. ".silt").
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// WithEventBuffer allows specifying the size of the watch event buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// --- Factory ---

// New creates a new silt Service.
func New(path string, opts ...Option) (*core.Service, error) {
	return platform.New(path, opts...)
}

// Init initializes a repository explicitly.
func Init(path string, opts ...Option) (core.Repository, error) {
	return platform.Init(path, opts...)
}

// --- Utils ---

// FindStoreRoot recursively looks upwards for a store root indicator.
func FindStoreRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
