// Package snapshot persists the serialized engine state as a single keyed
// blob, read once at startup and rewritten after every mutation.
package snapshot

import "context"

// DefaultKey is the storage key the engine state lives under.
const DefaultKey = "farmChainXData"

// Store reads and writes the state blob.
type Store interface {
	// Load returns the blob and whether one exists.
	Load(ctx context.Context) ([]byte, bool, error)
	// Save overwrites the blob.
	Save(ctx context.Context, data []byte) error
}
