package fs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/silt/pkg/core"
)

// Serializer defines how to read and write a specific file format.
type Serializer interface {
	// Parse reads from r and returns a Document.
	Parse(r io.Reader) (*core.Document, error)
	// Serialize converts the Document to bytes.
	Serialize(doc core.Document) ([]byte, error)
}

// DefaultSerializers returns the standard set of serializers.
func DefaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		".json": &JSONSerializer{},
		".md":   &MarkdownSerializer{},
	}
}

// --- JSON Serializer ---

// documentPayload is the on-disk JSON shape. Field order in the struct keeps
// the files diff-friendly; tag order round-trips through the array.
type documentPayload struct {
	ID               string        `json:"id"`
	Title            string        `json:"title"`
	Content          string        `json:"content"`
	ProcessedContent string        `json:"processedContent,omitempty"`
	Tags             []string      `json:"tags"`
	Metadata         core.Metadata `json:"metadata,omitempty"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

// JSONSerializer handles reading and writing JSON document files.
type JSONSerializer struct{}

func (s *JSONSerializer) Parse(r io.Reader) (*core.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var payload documentPayload
	if err := sonic.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}

	doc := &core.Document{
		ID:               payload.ID,
		Title:            payload.Title,
		Content:          payload.Content,
		ProcessedContent: payload.ProcessedContent,
		Tags:             payload.Tags,
		Metadata:         payload.Metadata,
		CreatedAt:        payload.CreatedAt,
		UpdatedAt:        payload.UpdatedAt,
	}
	if doc.Metadata == nil {
		doc.Metadata = make(core.Metadata)
	}
	return doc, nil
}

func (s *JSONSerializer) Serialize(doc core.Document) ([]byte, error) {
	payload := documentPayload{
		ID:               doc.ID,
		Title:            doc.Title,
		Content:          doc.Content,
		ProcessedContent: doc.ProcessedContent,
		Tags:             doc.Tags,
		Metadata:         doc.Metadata,
		CreatedAt:        doc.CreatedAt,
		UpdatedAt:        doc.UpdatedAt,
	}
	if payload.Tags == nil {
		payload.Tags = []string{}
	}
	return sonic.MarshalIndent(payload, "", "  ")
}

// --- Markdown Serializer ---

// frontmatter is the YAML header of a Markdown document file.
// The body below the closing fence is the raw content.
type frontmatter struct {
	ID        string        `yaml:"id"`
	Title     string        `yaml:"title"`
	Tags      []string      `yaml:"tags,omitempty"`
	Metadata  core.Metadata `yaml:"metadata,omitempty"`
	Processed string        `yaml:"processed,omitempty"`
	CreatedAt time.Time     `yaml:"createdAt"`
	UpdatedAt time.Time     `yaml:"updatedAt"`
}

// MarkdownSerializer handles Markdown files with YAML frontmatter.
type MarkdownSerializer struct{}

func (s *MarkdownSerializer) Parse(r io.Reader) (*core.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc := &core.Document{Metadata: make(core.Metadata)}

	if !bytes.HasPrefix(data, []byte("---\n")) && !bytes.HasPrefix(data, []byte("---\r\n")) {
		// No frontmatter, treat everything as content.
		doc.Content = string(data)
		return doc, nil
	}

	rest := data[3:]
	parts := bytes.SplitN(rest, []byte("---"), 2)
	if len(parts) == 1 {
		return nil, errors.New("frontmatter started but no closing delimiter found")
	}

	var fm frontmatter
	if err := yaml.Unmarshal(parts[0], &fm); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	doc.ID = fm.ID
	doc.Title = fm.Title
	doc.Tags = fm.Tags
	doc.ProcessedContent = fm.Processed
	doc.CreatedAt = fm.CreatedAt
	doc.UpdatedAt = fm.UpdatedAt
	if fm.Metadata != nil {
		doc.Metadata = fm.Metadata
	}

	content := strings.TrimPrefix(string(parts[1]), "\n")
	doc.Content = strings.TrimPrefix(content, "\r\n")

	return doc, nil
}

func (s *MarkdownSerializer) Serialize(doc core.Document) ([]byte, error) {
	fm := frontmatter{
		ID:        doc.ID,
		Title:     doc.Title,
		Tags:      doc.Tags,
		Metadata:  doc.Metadata,
		Processed: doc.ProcessedContent,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	if len(fm.Metadata) == 0 {
		fm.Metadata = nil
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(fm); err != nil {
		return nil, err
	}
	encoder.Close()
	buf.WriteString("---\n")
	buf.WriteString(doc.Content)
	return buf.Bytes(), nil
}
