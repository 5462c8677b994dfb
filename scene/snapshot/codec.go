package snapshot

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// Version is the envelope format written by Encode.
const Version = 1

// Envelope is the unit written to a Store. Each record is encoded on its
// own so one damaged entry cannot take the others down with it.
type Envelope struct {
	ID      string    `msgpack:"id"`
	Version int       `msgpack:"v"`
	SavedAt time.Time `msgpack:"saved_at"`
	Entries []Entry   `msgpack:"entries"`
}

// Entry is one encoded record and the xxhash64 of its bytes.
type Entry struct {
	Sum  uint64 `msgpack:"sum"`
	Data []byte `msgpack:"data"`
}

// NewEntry encodes rec.
func NewEntry(rec Record) (Entry, error) {
	data, err := msgpack.Marshal(&rec)
	if err != nil {
		return Entry{}, fmt.Errorf("snapshot: encode record: %w", err)
	}
	return Entry{Sum: xxhash.Sum64(data), Data: data}, nil
}

// Record verifies and decodes the entry.
func (e Entry) Record() (Record, error) {
	if xxhash.Sum64(e.Data) != e.Sum {
		return Record{}, ErrChecksum
	}

	var rec Record
	if err := msgpack.Unmarshal(e.Data, &rec); err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	if err := rec.Validate(); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Encode builds an envelope for records and marshals it.
func Encode(records []Record, savedAt time.Time) (Envelope, []byte, error) {
	env := Envelope{
		ID:      uuid.NewString(),
		Version: Version,
		SavedAt: savedAt.UTC(),
		Entries: make([]Entry, 0, len(records)),
	}

	for _, rec := range records {
		entry, err := NewEntry(rec)
		if err != nil {
			return Envelope{}, nil, err
		}
		env.Entries = append(env.Entries, entry)
	}

	data, err := msgpack.Marshal(&env)
	if err != nil {
		return Envelope{}, nil, fmt.Errorf("snapshot: encode envelope: %w", err)
	}
	return env, data, nil
}

// Decode unmarshals an envelope without decoding its entries.
func Decode(data []byte) (Envelope, error) {
	var env Envelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("snapshot: decode envelope: %w", err)
	}
	if env.Version > Version {
		return Envelope{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
	}
	return env, nil
}
