// Package typed provides a type-safe view over the raw document store.
// It converts between the open Metadata map and a caller-defined struct.
package typed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/aretw0/silt/pkg/core"
)

// DocumentModel wraps the raw core.Document with a typed Metadata field.
// It acts as a typed view of a document.
type DocumentModel[T any] struct {
	ID      string
	Title   string
	Content string
	Tags    []string
	Data    T        // The typed metadata
	Saver   Saver[T] // Active Record reference interface
}

// Saver interface avoids tight coupling with the Repository struct.
type Saver[T any] interface {
	Save(ctx context.Context, doc *DocumentModel[T]) error
}

// Save persists the document using the attached saver.
func (d *DocumentModel[T]) Save(ctx context.Context) error {
	if d.Saver == nil {
		return fmt.Errorf("document is detached (missing Saver)")
	}
	return d.Saver.Save(ctx, d)
}

// Repository wraps a core.Repository to provide type-safe access.
type Repository[T any] struct {
	repo core.Repository
}

// NewRepository creates a new type-safe wrapper around an existing repository.
func NewRepository[T any](repo core.Repository) *Repository[T] {
	return &Repository[T]{repo: repo}
}

// Save persists a typed document, converting Data into the metadata map.
func (r *Repository[T]) Save(ctx context.Context, doc *DocumentModel[T]) error {
	metadata, err := toMetadata(doc.Data)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	coreDoc := core.Document{
		ID:        doc.ID,
		Title:     doc.Title,
		Content:   doc.Content,
		Tags:      doc.Tags,
		Metadata:  metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if coreDoc.ID == "" {
		coreDoc.ID = uuid.NewString()
		doc.ID = coreDoc.ID
	} else if existing, err := r.repo.Get(ctx, coreDoc.ID); err == nil {
		coreDoc.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, core.ErrNotFound) {
		return err
	}

	if doc.Saver == nil {
		doc.Saver = r
	}

	return r.repo.Save(ctx, coreDoc)
}

// Get retrieves a document and unmarshals its metadata into T.
func (r *Repository[T]) Get(ctx context.Context, id string) (*DocumentModel[T], error) {
	coreDoc, err := r.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return fromCore(coreDoc, r)
}

// List returns all documents converted to the typed model.
func (r *Repository[T]) List(ctx context.Context) ([]*DocumentModel[T], error) {
	coreDocs, err := r.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*DocumentModel[T], 0, len(coreDocs))
	for _, d := range coreDocs {
		m, err := fromCore(d, r)
		if err != nil {
			return nil, fmt.Errorf("failed to process document %s: %w", d.ID, err)
		}
		result = append(result, m)
	}
	return result, nil
}

// Delete removes a document by ID.
func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	return r.repo.Delete(ctx, id)
}

// toMetadata converts a typed value to the open metadata map via JSON.
func toMetadata[T any](data T) (core.Metadata, error) {
	dataBytes, err := sonic.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal typed data: %w", err)
	}

	var metadata core.Metadata
	if err := sonic.Unmarshal(dataBytes, &metadata); err != nil {
		return nil, fmt.Errorf("failed to convert typed data to map: %w", err)
	}
	return metadata, nil
}

// fromCore converts a core.Document to a DocumentModel.
func fromCore[T any](coreDoc core.Document, saver Saver[T]) (*DocumentModel[T], error) {
	dataBytes, err := sonic.Marshal(coreDoc.Metadata)
	if err != nil {
		return nil, fmt.Errorf("metadata marshal failed: %w", err)
	}

	var data T
	if err := sonic.Unmarshal(dataBytes, &data); err != nil {
		return nil, fmt.Errorf("unmarshal to target type failed: %w", err)
	}

	return &DocumentModel[T]{
		ID:      coreDoc.ID,
		Title:   coreDoc.Title,
		Content: coreDoc.Content,
		Tags:    coreDoc.Tags,
		Data:    data,
		Saver:   saver,
	}, nil
}
