package blob

import "io"

// Store persists raw file bytes under opaque keys. File metadata rows
// keep the key in their path column; the key is never shown to users.
type Store interface {
	// Save writes the reader's content under a freshly generated key
	// and returns the key together with the number of bytes written.
	Save(r io.Reader) (key string, written int64, err error)
	// Open returns a reader over the stored content.
	Open(key string) (io.ReadCloser, error)
	// Delete removes the stored content. Deleting a missing key is not
	// an error.
	Delete(key string) error
}
