package fs_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/silt/pkg/adapters/fs"
	"github.com/aretw0/silt/pkg/core"
)

// setupRepo helps create an initialized repository for testing.
// It returns the repository and the root path of the store.
func setupRepo(t *testing.T, opts ...func(*fs.Config)) (*fs.Repository, string) {
	t.Helper()

	tmpDir := t.TempDir()
	rootPath := filepath.Join(tmpDir, "contexts")

	cfg := fs.Config{
		Path: rootPath,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	repo := fs.NewRepository(cfg)
	if err := repo.Initialize(context.Background()); err != nil && !cfg.MustExist {
		t.Fatalf("Initialize failed: %v", err)
	}

	return repo, rootPath
}

func testDoc(id, title string, tags ...string) core.Document {
	now := time.Now().UTC()
	return core.Document{
		ID:        id,
		Title:     title,
		Content:   "some content",
		Tags:      tags,
		Metadata:  core.Metadata{"source": "test"},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestInitialize(t *testing.T) {
	t.Run("Creates Directory if Missing", func(t *testing.T) {
		_, path := setupRepo(t)

		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Errorf("expected directory to be created at %s", path)
		}
	})

	t.Run("Fails if MustExist and Missing", func(t *testing.T) {
		tmpDir := t.TempDir()
		repo := fs.NewRepository(fs.Config{
			Path:      filepath.Join(tmpDir, "nope"),
			MustExist: true,
		})

		if err := repo.Initialize(context.Background()); err == nil {
			t.Error("expected Initialize to fail when directory is missing and MustExist=true")
		}
	})
}

func TestSaveAndGet(t *testing.T) {
	ctx := context.Background()

	t.Run("Round Trips All Fields", func(t *testing.T) {
		repo, _ := setupRepo(t)

		doc := testDoc("doc-1", "Title", "go", "storage")
		doc.ProcessedContent = "processed"

		if err := repo.Save(ctx, doc); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		got, err := repo.Get(ctx, "doc-1")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}

		if got.Title != doc.Title || got.Content != doc.Content {
			t.Errorf("fields did not round-trip: %+v", got)
		}
		if got.ProcessedContent != "processed" {
			t.Errorf("expected processed content, got %q", got.ProcessedContent)
		}
		if len(got.Tags) != 2 || got.Tags[0] != "go" || got.Tags[1] != "storage" {
			t.Errorf("expected tag order preserved, got %v", got.Tags)
		}
		if got.Metadata["source"] != "test" {
			t.Errorf("expected metadata round-trip, got %v", got.Metadata)
		}
		if !got.CreatedAt.Equal(doc.CreatedAt) {
			t.Errorf("expected CreatedAt round-trip, got %v", got.CreatedAt)
		}
	})

	t.Run("Writes One File Per Document", func(t *testing.T) {
		repo, path := setupRepo(t)

		if err := repo.Save(ctx, testDoc("doc-1", "A")); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		if _, err := os.Stat(filepath.Join(path, "doc-1.json")); err != nil {
			t.Errorf("expected doc-1.json on disk: %v", err)
		}
	})

	t.Run("Rejects Empty ID", func(t *testing.T) {
		repo, _ := setupRepo(t)

		if err := repo.Save(ctx, core.Document{}); err == nil {
			t.Error("expected error for document without ID")
		}
	})

	t.Run("Get Unknown ID Is NotFound", func(t *testing.T) {
		repo, _ := setupRepo(t)

		_, err := repo.Get(ctx, "ghost")
		if !errors.Is(err, core.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Overwrite Replaces File", func(t *testing.T) {
		repo, _ := setupRepo(t)

		repo.Save(ctx, testDoc("doc-1", "Old"))
		repo.Save(ctx, testDoc("doc-1", "New"))

		got, err := repo.Get(ctx, "doc-1")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Title != "New" {
			t.Errorf("expected overwritten title, got %q", got.Title)
		}

		docs, _ := repo.List(ctx)
		if len(docs) != 1 {
			t.Errorf("expected 1 document after overwrite, got %d", len(docs))
		}
	})

	t.Run("Markdown Format Round Trips", func(t *testing.T) {
		repo, path := setupRepo(t, func(c *fs.Config) {
			c.Format = ".md"
		})

		doc := testDoc("note", "Markdown Note", "md")
		doc.Content = "# Heading\n\nBody text."
		if err := repo.Save(ctx, doc); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		if _, err := os.Stat(filepath.Join(path, "note.md")); err != nil {
			t.Errorf("expected note.md on disk: %v", err)
		}

		got, err := repo.Get(ctx, "note")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Content != doc.Content || got.Title != doc.Title {
			t.Errorf("markdown round-trip mismatch: %+v", got)
		}
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns All Documents", func(t *testing.T) {
		repo, _ := setupRepo(t)

		repo.Save(ctx, testDoc("a", "A"))
		repo.Save(ctx, testDoc("b", "B"))
		repo.Save(ctx, testDoc("c", "C"))

		docs, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(docs) != 3 {
			t.Errorf("expected 3 documents, got %d", len(docs))
		}
	})

	t.Run("Skips System Directory And Foreign Files", func(t *testing.T) {
		repo, path := setupRepo(t)

		repo.Save(ctx, testDoc("a", "A"))
		os.WriteFile(filepath.Join(path, "notes.txt"), []byte("not a document"), 0644)

		docs, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(docs) != 1 {
			t.Errorf("expected 1 document, got %d", len(docs))
		}
	})

	t.Run("Empty Store Is Empty List", func(t *testing.T) {
		repo, _ := setupRepo(t)

		docs, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(docs) != 0 {
			t.Errorf("expected no documents, got %d", len(docs))
		}
	})
}

func TestFindByTags(t *testing.T) {
	ctx := context.Background()

	t.Run("Superset Matching", func(t *testing.T) {
		repo, _ := setupRepo(t)

		repo.Save(ctx, testDoc("a", "JS", "javascript"))
		repo.Save(ctx, testDoc("b", "Async", "javascript", "async"))
		repo.Save(ctx, testDoc("c", "React", "react", "javascript"))

		docs, err := repo.FindByTags(ctx, []string{"javascript", "async"})
		if err != nil {
			t.Fatalf("FindByTags failed: %v", err)
		}
		if len(docs) != 1 || docs[0].ID != "b" {
			t.Errorf("expected exactly document b, got %v", docs)
		}
	})

	t.Run("Empty Query Matches All", func(t *testing.T) {
		repo, _ := setupRepo(t)

		repo.Save(ctx, testDoc("a", "A", "x"))
		repo.Save(ctx, testDoc("b", "B"))

		docs, err := repo.FindByTags(ctx, nil)
		if err != nil {
			t.Fatalf("FindByTags failed: %v", err)
		}
		if len(docs) != 2 {
			t.Errorf("expected all documents, got %d", len(docs))
		}
	})

	t.Run("Uses Fresh Index Entries", func(t *testing.T) {
		repo, _ := setupRepo(t)

		repo.Save(ctx, testDoc("a", "A", "x"))

		// First scan populates the index, second scan answers off it.
		if _, err := repo.FindByTags(ctx, []string{"x"}); err != nil {
			t.Fatalf("first FindByTags failed: %v", err)
		}
		docs, err := repo.FindByTags(ctx, []string{"x"})
		if err != nil {
			t.Fatalf("second FindByTags failed: %v", err)
		}
		if len(docs) != 1 || docs[0].ID != "a" {
			t.Errorf("expected document a from index path, got %v", docs)
		}
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("Removes File", func(t *testing.T) {
		repo, path := setupRepo(t)

		repo.Save(ctx, testDoc("doomed", "D"))
		if err := repo.Delete(ctx, "doomed"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		if _, err := os.Stat(filepath.Join(path, "doomed.json")); !os.IsNotExist(err) {
			t.Error("expected file to be removed")
		}
		if _, err := repo.Get(ctx, "doomed"); !errors.Is(err, core.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("Missing ID Is A NoOp", func(t *testing.T) {
		repo, _ := setupRepo(t)

		if err := repo.Delete(ctx, "ghost"); err != nil {
			t.Errorf("expected silent no-op, got %v", err)
		}
		// And again, for idempotence.
		if err := repo.Delete(ctx, "ghost"); err != nil {
			t.Errorf("expected idempotent delete, got %v", err)
		}
	})
}

func TestReadOnly(t *testing.T) {
	ctx := context.Background()

	repo, _ := setupRepo(t)
	repo.Save(ctx, testDoc("a", "A"))

	roRepo, _ := setupRepo(t, func(c *fs.Config) {
		c.ReadOnly = true
	})

	if err := roRepo.Save(ctx, testDoc("b", "B")); !errors.Is(err, core.ErrReadOnly) {
		t.Errorf("expected ErrReadOnly on save, got %v", err)
	}
	if err := roRepo.Delete(ctx, "a"); !errors.Is(err, core.ErrReadOnly) {
		t.Errorf("expected ErrReadOnly on delete, got %v", err)
	}
}
