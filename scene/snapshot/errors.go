package snapshot

import "errors"

var (
	// ErrNotFound is returned by a Store for keys that were never saved.
	ErrNotFound = errors.New("snapshot: key not found")
	// ErrInvalidKey is returned for keys a store cannot map to storage.
	ErrInvalidKey = errors.New("snapshot: invalid key")
	// ErrChecksum marks an entry whose bytes do not match its checksum.
	ErrChecksum = errors.New("snapshot: checksum mismatch")
	// ErrInvalidRecord marks an entry that decoded to an unusable record.
	ErrInvalidRecord = errors.New("snapshot: invalid record")
	// ErrUnsupportedVersion marks an envelope written by a newer format.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")
)
