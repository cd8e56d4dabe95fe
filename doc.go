// Package silt is the Composition Root for the silt library.
//
// It connects the core business logic (Domain Layer) with the infrastructure
// adapters (Persistence Layer) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// Silt is a flat-file context store with deterministic preprocessing. It
// persists text documents with tags and metadata as one file per document,
// and runs named preprocessing models (filler removal, keyword extraction,
// link detection) over content at save time. The core is storage-agnostic;
// the default adapter uses the local filesystem.
//
// Features:
//
//   - **Hexagonal Architecture**: Core domain is isolated from persistence details.
//   - **Atomic Writes**: Documents are written via temp file + rename.
//   - **Metadata First**: Tags and open metadata on every document, indexed for tag search.
//   - **Preprocessing Models**: Static catalog of deterministic content pipelines.
//   - **Default Adapter (FS)**: JSON or Markdown+frontmatter files under a root directory.
//   - **Extensible**: Designed to support other backends via core.Repository.
//
// Usage:
//
//	// Initialize service with functional options
//	svc, err := silt.New("./contexts",
//		silt.WithLogger(logger),
//	)
//
//	// Save a document through the comprehensive pipeline
//	doc, err := svc.Save(ctx, silt.Draft{
//		Title:   "Async patterns",
//		Content: "Basically, promises are...",
//		Tags:    []string{"javascript"},
//	}, "comprehensive")
package silt
