// Document is the central entity of the domain.
package core

import "time"

// Metadata represents the flexible key-value pairs associated with a document.
type Metadata map[string]any

// Document is the central entity of the domain.
// It represents a piece of context identified by an ID.
// It is agnostic to storage format (JSON, Markdown).
type Document struct {
	ID               string
	Title            string
	Content          string
	ProcessedContent string // set when a preprocessing model ran over Content
	Tags             []string
	Metadata         Metadata
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasTags reports whether the document carries every tag in tags.
// Membership is exact string equality; an empty query always matches.
func (d Document) HasTags(tags []string) bool {
	for _, want := range tags {
		found := false
		for _, have := range d.Tags {
			if have == want {
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

// Draft is the caller-supplied input for Save.
// An empty ID requests creation; a known ID requests a full overwrite
// of that document's fields.
type Draft struct {
	ID       string
	Title    string
	Content  string
	Tags     []string
	Metadata Metadata
}

// ListOptions controls pagination of List.
// Limit <= 0 means "all"; Offset past the end yields an empty result.
type ListOptions struct {
	Limit  int
	Offset int
}

// SearchQuery selects documents by tag membership.
// AND semantics: a document matches only if it carries every queried tag.
type SearchQuery struct {
	Tags []string
}

// EventType represents the type of change in the store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change in the store.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer for log output.
func (e Event) String() string {
	return string(e.Type) + " " + e.ID
}
