package platform

import (
	"context"
	"os"
	"path/filepath"

	"github.com/aretw0/silt/pkg/adapters/fs"
	"github.com/aretw0/silt/pkg/core"
)

// DefaultStoreDir is used when the caller passes an empty path.
const DefaultStoreDir = "./contexts"

// New wires a ready-to-use core.Service over a storage adapter.
// The path argument is adapter-specific (a directory for 'fs').
func New(path string, opts ...Option) (*core.Service, error) {
	repo, err := Init(path, opts...)
	if err != nil {
		return nil, err
	}

	return core.NewService(repo), nil
}

// Init resolves the store path and initializes the storage adapter.
func Init(path string, opts ...Option) (core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	// If a custom repository is injected via options, use it as-is.
	if o.repository != nil {
		return o.repository, nil
	}

	resolvedPath := ResolveStorePath(path, o.forceTemp)
	if o.logger != nil && o.forceTemp {
		o.logger.Warn("using temporary store directory", "original_path", path, "resolved_path", resolvedPath)
	}

	repo := fs.NewRepository(fs.Config{
		Path:        resolvedPath,
		Format:      o.format,
		MustExist:   o.mustExist || o.readOnly,
		ReadOnly:    o.readOnly,
		Logger:      o.logger,
		SystemDir:   o.systemDir,
		EventBuffer: o.eventBuffer,
	})
	if err := repo.Initialize(context.Background()); err != nil {
		return nil, err
	}

	return repo, nil
}

// ResolveStorePath determines the actual directory for the store.
// Empty paths fall back to the default; forceTemp redirects to a fresh
// temporary directory, keeping tests and experiments off real data.
func ResolveStorePath(path string, forceTemp bool) string {
	if forceTemp {
		tmp, err := os.MkdirTemp("", "silt-store-")
		if err == nil {
			return tmp
		}
		// Fall through to the requested path if temp creation failed.
	}
	if path == "" {
		return DefaultStoreDir
	}
	return filepath.Clean(path)
}
