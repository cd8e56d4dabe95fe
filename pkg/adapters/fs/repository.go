package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/silt/pkg/core"
)

// DefaultSystemDir is the hidden directory holding the metadata index.
const DefaultSystemDir = ".silt"

// Repository implements core.Repository using one file per document
// under a root directory.
//
// Known limitation: the store assumes a single process and a single writer.
// No cross-process locking is performed; external concurrent mutation of the
// root directory is unsupported.
type Repository struct {
	Path        string
	config      Config
	cache       *cache
	serializers map[string]Serializer

	mu            sync.RWMutex
	watcherActive bool
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path        string
	Format      string // document file extension, ".json" (default) or ".md"
	MustExist   bool   // require the root directory to already exist
	ReadOnly    bool   // reject Save/Delete with core.ErrReadOnly
	Logger      *slog.Logger
	SystemDir   string // e.g. ".silt"
	EventBuffer int    // watch channel buffer, 0 means default
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.SystemDir == "" {
		config.SystemDir = DefaultSystemDir
	}
	if config.Format == "" {
		config.Format = ".json"
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Repository{
		Path:        config.Path,
		config:      config,
		cache:       newCache(config.Path, config.SystemDir),
		serializers: DefaultSerializers(),
	}
}

// Initialize performs the necessary setup for the repository (mkdir).
func (r *Repository) Initialize(ctx context.Context) error {
	if r.config.MustExist {
		info, err := os.Stat(r.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("store path does not exist: %s", r.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to stat store path: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("store path is not a directory: %s", r.Path)
		}
		return nil
	}

	if err := os.MkdirAll(r.Path, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	return nil
}

// Save persists a document to the filesystem and refreshes its index entry.
//
// Workflow:
//  1. Validate ID and resolve the configured serializer.
//  2. Serialize and write atomically to disk.
//  3. Update the metadata index.
func (r *Repository) Save(ctx context.Context, doc core.Document) error {
	if doc.ID == "" {
		return fmt.Errorf("document has no ID")
	}
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}

	serializer, ok := r.serializers[r.config.Format]
	if !ok {
		return fmt.Errorf("no serializer registered for %s", r.config.Format)
	}

	filename := doc.ID + r.config.Format
	fullPath := filepath.Join(r.Path, filename)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	data, err := serializer.Serialize(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	if err := writeFileAtomic(fullPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if info, err := os.Stat(fullPath); err == nil {
		r.cache.Set(filepath.ToSlash(filename), &indexEntry{
			ID:           doc.ID,
			Title:        doc.Title,
			Tags:         append([]string(nil), doc.Tags...),
			CreatedAt:    doc.CreatedAt,
			LastModified: info.ModTime(),
		})
		if err := r.cache.Save(); err != nil {
			r.config.Logger.Debug("failed to persist index", "error", err)
		}
	}

	return nil
}

// Get retrieves a document from the filesystem.
// The configured format is tried first, then the remaining serializers.
func (r *Repository) Get(ctx context.Context, id string) (core.Document, error) {
	for _, ext := range r.extensions() {
		fullPath := filepath.Join(r.Path, id+ext)
		f, err := os.Open(fullPath)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return core.Document{}, fmt.Errorf("failed to open document %s: %w", id, err)
		}

		doc, err := r.serializers[ext].Parse(f)
		f.Close()
		if err != nil {
			return core.Document{}, fmt.Errorf("failed to parse document %s: %w", id, err)
		}
		doc.ID = id
		return *doc, nil
	}

	return core.Document{}, fmt.Errorf("document %s: %w", id, core.ErrNotFound)
}

// List scans the root directory for all documents.
//
// Every file is fully parsed (List returns complete documents); the index is
// refreshed as a side effect so FindByTags can skip parsing later.
func (r *Repository) List(ctx context.Context) ([]core.Document, error) {
	if err := r.cache.Load(); err != nil {
		r.config.Logger.Debug("failed to load index, starting fresh", "error", err)
	}

	var docs []core.Document
	seen := make(map[string]bool)

	err := r.walkFiles(func(relPath, id string, mtime time.Time) error {
		seen[relPath] = true

		doc, err := r.Get(ctx, id)
		if err != nil {
			return nil // Skip unparseable
		}

		r.cache.Set(relPath, &indexEntry{
			ID:           doc.ID,
			Title:        doc.Title,
			Tags:         append([]string(nil), doc.Tags...),
			CreatedAt:    doc.CreatedAt,
			LastModified: mtime,
		})

		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.cache.Prune(seen)
	if err := r.cache.Save(); err != nil {
		r.config.Logger.Debug("failed to persist index", "error", err)
	}

	return docs, nil
}

// FindByTags implements core.TagFinder off the metadata index.
// Fresh index entries answer the membership scan without a full parse;
// stale or missing entries fall back to parsing that one file.
func (r *Repository) FindByTags(ctx context.Context, tags []string) ([]core.Document, error) {
	if err := r.cache.Load(); err != nil {
		r.config.Logger.Debug("failed to load index, starting fresh", "error", err)
	}

	var docs []core.Document
	seen := make(map[string]bool)

	err := r.walkFiles(func(relPath, id string, mtime time.Time) error {
		seen[relPath] = true

		if entry, hit := r.cache.Get(relPath, mtime); hit {
			if !hasAll(entry.Tags, tags) {
				return nil
			}
			doc, err := r.Get(ctx, id)
			if err != nil {
				return nil
			}
			docs = append(docs, doc)
			return nil
		}

		doc, err := r.Get(ctx, id)
		if err != nil {
			return nil // Skip unparseable
		}

		r.cache.Set(relPath, &indexEntry{
			ID:           doc.ID,
			Title:        doc.Title,
			Tags:         append([]string(nil), doc.Tags...),
			CreatedAt:    doc.CreatedAt,
			LastModified: mtime,
		})

		if doc.HasTags(tags) {
			docs = append(docs, doc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.cache.Prune(seen)
	if err := r.cache.Save(); err != nil {
		r.config.Logger.Debug("failed to persist index", "error", err)
	}

	return docs, nil
}

// Delete removes a document. A missing ID is a silent no-op so that
// repeated deletes stay idempotent.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}

	for _, ext := range r.extensions() {
		filename := id + ext
		fullPath := filepath.Join(r.Path, filename)

		if _, err := os.Stat(fullPath); os.IsNotExist(err) {
			continue
		}

		if err := os.Remove(fullPath); err != nil {
			return fmt.Errorf("failed to remove file: %w", err)
		}

		r.cache.Delete(filepath.ToSlash(filename))
		if err := r.cache.Save(); err != nil {
			r.config.Logger.Debug("failed to persist index", "error", err)
		}
		return nil
	}

	return nil
}

// walkFiles visits every document file under the root, skipping the system
// directory and in-flight atomic temp files.
func (r *Repository) walkFiles(fn func(relPath, id string, mtime time.Time) error) error {
	return filepath.WalkDir(r.Path, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == r.config.SystemDir {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(d.Name(), TempFilePrefix) {
			return nil
		}

		ext := filepath.Ext(d.Name())
		if _, ok := r.serializers[ext]; !ok {
			return nil
		}

		relPath, err := filepath.Rel(r.Path, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)
		id := strings.TrimSuffix(relPath, ext)

		info, err := d.Info()
		if err != nil {
			return nil
		}

		return fn(relPath, id, info.ModTime())
	})
}

// extensions returns serializer extensions with the configured format first.
func (r *Repository) extensions() []string {
	exts := []string{r.config.Format}
	for ext := range r.serializers {
		if ext != r.config.Format {
			exts = append(exts, ext)
		}
	}
	return exts
}

// hasAll reports whether have is a superset of want.
func hasAll(have, want []string) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
