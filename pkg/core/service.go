package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/silt/pkg/model"
)

// Service handles the business logic for documents: draft validation,
// preprocessing pipelines, ID and timestamp assignment, ordering,
// pagination and tag search. Storage details live behind Repository.
type Service struct {
	repo   Repository
	models *model.Registry
}

// NewService creates a new Service over repo with the default model catalog.
func NewService(repo Repository) *Service {
	return &Service{
		repo:   repo,
		models: model.DefaultRegistry(),
	}
}

// Save validates the draft, optionally runs the named preprocessing model,
// and persists the document. An empty modelName skips preprocessing.
//
// A draft without an ID is created with a fresh UUID and CreatedAt; a draft
// with an ID fully replaces that document's fields, preserving CreatedAt.
// An ID that does not exist yet is treated as a create with that ID.
func (s *Service) Save(ctx context.Context, draft Draft, modelName string) (Document, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return Document{}, fmt.Errorf("title is required: %w", ErrValidation)
	}
	if strings.TrimSpace(draft.Content) == "" {
		return Document{}, fmt.Errorf("content is required: %w", ErrValidation)
	}

	doc := Document{
		ID:      draft.ID,
		Title:   draft.Title,
		Content: draft.Content,
		Tags:    append([]string(nil), draft.Tags...),
	}
	doc.Metadata = make(Metadata, len(draft.Metadata))
	for k, v := range draft.Metadata {
		doc.Metadata[k] = v
	}

	if modelName != "" {
		// Resolve the model before any I/O so unknown names fail fast.
		pipeline, err := s.models.Pipeline(modelName)
		if err != nil {
			return Document{}, fmt.Errorf("model %q: %w", modelName, ErrNotFound)
		}

		content := doc.Content
		for _, strategy := range pipeline {
			res := strategy.Apply(content)
			content = res.Content
			doc.Tags = appendUnique(doc.Tags, res.Tags)
			for k, v := range res.Metadata {
				doc.Metadata[k] = v
			}
		}
		doc.ProcessedContent = content
	}

	now := time.Now().UTC()
	switch {
	case doc.ID == "":
		doc.ID = uuid.NewString()
		doc.CreatedAt = now
	default:
		existing, err := s.repo.Get(ctx, doc.ID)
		switch {
		case err == nil:
			doc.CreatedAt = existing.CreatedAt
		case errors.Is(err, ErrNotFound):
			doc.CreatedAt = now
		default:
			return Document{}, err
		}
	}
	doc.UpdatedAt = now

	if err := s.repo.Save(ctx, doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Get retrieves a document.
func (s *Service) Get(ctx context.Context, id string) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("document ID cannot be empty: %w", ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

// List retrieves documents in creation order, sliced by opts.
// An offset beyond the end yields an empty slice, never an error.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Document, error) {
	docs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sortByCreation(docs)
	return paginate(docs, opts), nil
}

// Search returns documents whose tags are a superset of the query tags,
// in creation order. An empty query matches all documents.
// Repositories implementing TagFinder resolve the membership scan themselves.
func (s *Service) Search(ctx context.Context, query SearchQuery) ([]Document, error) {
	var (
		docs []Document
		err  error
	)
	if finder, ok := s.repo.(TagFinder); ok {
		docs, err = finder.FindByTags(ctx, query.Tags)
	} else {
		docs, err = s.repo.List(ctx)
		if err == nil {
			filtered := docs[:0]
			for _, d := range docs {
				if d.HasTags(query.Tags) {
					filtered = append(filtered, d)
				}
			}
			docs = filtered
		}
	}
	if err != nil {
		return nil, err
	}
	sortByCreation(docs)
	return docs, nil
}

// Delete removes a document. Deleting an unknown ID is a silent no-op,
// so re-invocation is idempotent.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("document ID cannot be empty: %w", ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

// Models returns the preprocessing model catalog in registration order.
func (s *Service) Models() []model.Info {
	return s.models.List()
}

// ModelInfo returns the descriptor for the named model.
func (s *Service) ModelInfo(name string) (model.Info, error) {
	info, err := s.models.Info(name)
	if err != nil {
		return model.Info{}, fmt.Errorf("model %q: %w", name, ErrNotFound)
	}
	return info, nil
}

// Watch observes changes in the repository if supported.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, errors.New("repository does not support watching")
	}
	return w.Watch(ctx, pattern)
}

// sortByCreation orders docs by CreatedAt ascending, ID as tie-break.
func sortByCreation(docs []Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		if !docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].CreatedAt.Before(docs[j].CreatedAt)
		}
		return docs[i].ID < docs[j].ID
	})
}

// paginate slices docs by opts without ever going out of bounds.
func paginate(docs []Document, opts ListOptions) []Document {
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(docs) {
		return []Document{}
	}
	docs = docs[offset:]
	if opts.Limit > 0 && opts.Limit < len(docs) {
		docs = docs[:opts.Limit]
	}
	return docs
}

// appendUnique appends each tag not already present, preserving order.
func appendUnique(tags []string, extra []string) []string {
	for _, t := range extra {
		exists := false
		for _, have := range tags {
			if have == t {
				exists = true
				break
			}
		}
		if !exists {
			tags = append(tags, t)
		}
	}
	return tags
}
