package record

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vrwmiller/myvault/internal/pattern"
)

// Store is an ordered collection of records, each identified by a unique
// property value. Insertion order is preserved across mutations; removals
// never reorder the remainder. A Store is rebuilt from the decrypted vault
// payload on every command and serialized back once after all mutations.
type Store struct {
	records []*Record
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Parse builds a store from a plaintext vault payload: a UTF-8 JSON array
// of record objects. An empty payload yields an empty store. A single
// top-level object is accepted and treated as a one-record array.
func Parse(data []byte) (*Store, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return NewStore(), nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("invalid vault payload: %w", err)
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return nil, fmt.Errorf("vault payload must be a JSON array of objects")
	}

	store := NewStore()
	switch delim {
	case '[':
		for dec.More() {
			rec, err := decodeObject(dec)
			if err != nil {
				return nil, fmt.Errorf("invalid vault payload: %w", err)
			}
			store.records = append(store.records, rec)
		}
	case '{':
		// Rewind: decodeObject wants to consume the open brace itself.
		dec = json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		rec, err := decodeObject(dec)
		if err != nil {
			return nil, fmt.Errorf("invalid vault payload: %w", err)
		}
		store.records = append(store.records, rec)
	default:
		return nil, fmt.Errorf("vault payload must be a JSON array of objects")
	}

	return store, nil
}

// Serialize renders the store as an indented JSON array, the plaintext
// form handed to the vault codec.
func (s *Store) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	records := s.records
	if records == nil {
		records = []*Record{}
	}
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("failed to serialize store: %w", err)
	}
	return buf.Bytes(), nil
}

// Len returns the number of records in the store.
func (s *Store) Len() int {
	return len(s.records)
}

// Records returns all records in store order.
func (s *Store) Records() []*Record {
	return s.records
}

// Find looks a record up by exact, case-sensitive property value.
func (s *Store) Find(property string) (*Record, bool) {
	for _, rec := range s.records {
		if rec.Property() == property {
			return rec, true
		}
	}
	return nil, false
}

// Select returns the records whose property satisfies the matcher, in
// store order. A nil matcher selects the entire store.
func (s *Store) Select(m *pattern.Matcher) []*Record {
	if m == nil {
		out := make([]*Record, len(s.records))
		copy(out, s.records)
		return out
	}
	var out []*Record
	for _, rec := range s.records {
		if m.Matches(rec.Property()) {
			out = append(out, rec)
		}
	}
	return out
}

// Insert appends a record to the store. It fails with ErrMissingProperty
// on an invalid record and ErrDuplicateProperty when the property is
// already taken; the store is unchanged on failure.
func (s *Store) Insert(rec *Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if _, exists := s.Find(rec.Property()); exists {
		return fmt.Errorf("%w: %s", ErrDuplicateProperty, rec.Property())
	}
	s.records = append(s.records, rec)
	return nil
}

// Replace merges the incoming record's fields into the stored record with
// the same property. It fails with ErrMissingProperty on an invalid record
// and ErrNotFound when the property does not exist; the store is unchanged
// on failure. The stored record's property is immutable.
func (s *Store) Replace(rec *Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	existing, ok := s.Find(rec.Property())
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, rec.Property())
	}
	existing.Merge(rec)
	return nil
}

// Remove deletes every record whose property satisfies the matcher and
// returns the removed records in store order. The remaining records keep
// their relative order. A nil matcher removes nothing: deletion always
// requires an explicit selection.
func (s *Store) Remove(m *pattern.Matcher) []*Record {
	var removed []*Record
	kept := s.records[:0]
	for _, rec := range s.records {
		if m != nil && m.Matches(rec.Property()) {
			removed = append(removed, rec)
		} else {
			kept = append(kept, rec)
		}
	}
	s.records = kept
	return removed
}
