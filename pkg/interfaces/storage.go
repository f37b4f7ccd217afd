package interfaces

import "github.com/goliatone/go-codelab/pkg/storage"

// ArtifactStore is the storage contract consumed by the generator when
// writing build outputs. It aliases pkg/storage.Store so callers importing
// the interfaces package do not need a second import for the common case.
type ArtifactStore = storage.Store

// WriteRequest aliases the storage write descriptor.
type WriteRequest = storage.WriteRequest

// ArtifactCategory aliases the storage artifact category.
type ArtifactCategory = storage.Category
