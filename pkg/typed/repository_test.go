package typed_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/silt/pkg/adapters/fs"
	"github.com/aretw0/silt/pkg/core"
	"github.com/aretw0/silt/pkg/typed"
)

type ArticleMeta struct {
	Author   string `json:"author"`
	Reviewed bool   `json:"reviewed"`
	Words    int    `json:"words"`
}

func setupRepo(t *testing.T) core.Repository {
	t.Helper()

	repo := fs.NewRepository(fs.Config{Path: t.TempDir()})
	if err := repo.Initialize(context.Background()); err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}
	return repo
}

func TestTypedRepository(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	articles := typed.NewRepository[ArticleMeta](repo)

	// 1. Save
	doc := &typed.DocumentModel[ArticleMeta]{
		ID:      "articles/go-routines",
		Title:   "Goroutines",
		Content: "Goroutines are lightweight threads.",
		Tags:    []string{"go", "concurrency"},
		Data: ArticleMeta{
			Author:   "Alice",
			Reviewed: true,
			Words:    5,
		},
	}
	if err := articles.Save(ctx, doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// 2. Get
	retrieved, err := articles.Get(ctx, "articles/go-routines")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if retrieved.Data.Author != "Alice" {
		t.Errorf("expected author Alice, got %q", retrieved.Data.Author)
	}
	if !retrieved.Data.Reviewed {
		t.Error("expected reviewed flag to survive the round trip")
	}
	if retrieved.Title != "Goroutines" {
		t.Errorf("expected title to survive, got %q", retrieved.Title)
	}

	// 3. Active Record style update
	retrieved.Data.Words = 6
	if err := retrieved.Save(ctx); err != nil {
		t.Fatalf("attached Save failed: %v", err)
	}

	again, err := articles.Get(ctx, "articles/go-routines")
	if err != nil {
		t.Fatalf("Get after update failed: %v", err)
	}
	if again.Data.Words != 6 {
		t.Errorf("expected updated word count 6, got %d", again.Data.Words)
	}
}

func TestTypedRepositoryAllocatesID(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	articles := typed.NewRepository[ArticleMeta](repo)

	doc := &typed.DocumentModel[ArticleMeta]{
		Title:   "Untitled draft",
		Content: "pending",
	}
	if err := articles.Save(ctx, doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if doc.ID == "" {
		t.Fatal("expected a generated ID after Save")
	}

	if _, err := articles.Get(ctx, doc.ID); err != nil {
		t.Fatalf("Get by generated ID failed: %v", err)
	}
}

func TestTypedRepositoryList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	articles := typed.NewRepository[ArticleMeta](repo)

	for _, id := range []string{"a", "b"} {
		doc := &typed.DocumentModel[ArticleMeta]{
			ID:      id,
			Title:   "Doc " + id,
			Content: "body",
			Data:    ArticleMeta{Author: "Bob"},
		}
		if err := articles.Save(ctx, doc); err != nil {
			t.Fatalf("Save %s failed: %v", id, err)
		}
	}

	all, err := articles.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(all))
	}
	for _, d := range all {
		if d.Data.Author != "Bob" {
			t.Errorf("document %s lost typed metadata", d.ID)
		}
	}
}

func TestTypedRepositoryDelete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	articles := typed.NewRepository[ArticleMeta](repo)

	doc := &typed.DocumentModel[ArticleMeta]{ID: "gone", Title: "t", Content: "c"}
	if err := articles.Save(ctx, doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := articles.Delete(ctx, "gone"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := articles.Get(ctx, "gone"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDetachedDocumentSaveFails(t *testing.T) {
	doc := &typed.DocumentModel[ArticleMeta]{ID: "x", Content: "c"}
	if err := doc.Save(context.Background()); err == nil {
		t.Fatal("expected error saving a detached document")
	}
}
