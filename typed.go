package silt

import (
	"github.com/aretw0/silt/pkg/core"
	"github.com/aretw0/silt/pkg/typed"
)

// DocumentModel wraps the raw core.Document with a typed Metadata field.
// It is the generic equivalent of core.Document.
type DocumentModel[T any] = typed.DocumentModel[T]

// TypedRepository wraps a core.Repository to provide type-safe access.
// It converts between the open metadata map and a caller-defined struct.
type TypedRepository[T any] = typed.Repository[T]

// NewTyped creates a new type-safe repository wrapper.
// T is the type of the struct you want to store in the document metadata.
func NewTyped[T any](repo core.Repository) *TypedRepository[T] {
	return typed.NewRepository[T](repo)
}
