package core

import "context"

// Repository defines the contract for storing and retrieving documents.
// Adhering to this interface allows the core to be independent of the
// underlying storage mechanism (Filesystem, SQL, S3, etc).
type Repository interface {
	// Save persists a document. It creates if not exists, or overwrites if it does.
	Save(ctx context.Context, doc Document) error

	// Get retrieves a document by its ID.
	// It returns an error wrapping ErrNotFound when the ID is unknown.
	Get(ctx context.Context, id string) (Document, error)

	// List returns all available documents in no particular order.
	// Ordering and pagination are the Service's concern.
	List(ctx context.Context) ([]Document, error)

	// Delete removes a document by its ID.
	// Deleting an unknown ID is a no-op; re-invocation is idempotent.
	Delete(ctx context.Context, id string) error

	// Initialize ensures the underlying storage is ready (e.g., create directories).
	Initialize(ctx context.Context) error
}

// TagFinder defines an interface for repositories that can resolve
// tag-membership queries themselves (e.g. off a metadata index).
type TagFinder interface {
	// FindByTags returns documents whose tags are a superset of tags.
	FindByTags(ctx context.Context, tags []string) ([]Document, error)
}

// Watchable defines an interface for repositories that can emit change events.
type Watchable interface {
	// Watch observes changes matching the glob pattern until ctx is cancelled.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
