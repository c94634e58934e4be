// Package audit keeps an append-only log of mutating vault commands in a
// local bbolt database. The log records what happened, never field
// values: command name, selector, affected property count, and outcome.
package audit

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

var operationsBucket = []byte("operations")

// Operation is one logged command invocation.
type Operation struct {
	Command    string    `json:"command"`
	Selector   string    `json:"selector,omitempty"`
	Properties int       `json:"properties"`
	Success    bool      `json:"success"`
	Timestamp  time.Time `json:"timestamp"`
}

// Log is an open audit database.
type Log struct {
	db *bbolt.DB
}

// Open opens (or creates) the audit database at path.
func Open(path string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create audit directory: %w", err)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(operationsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize audit log: %w", err)
	}

	return &Log{db: db}, nil
}

// Close closes the underlying database.
func (l *Log) Close() error {
	return l.db.Close()
}

// Append records an operation. Keys are the bucket's monotonically
// increasing sequence number, big-endian, so iteration order is append
// order.
func (l *Log) Append(op Operation) error {
	if op.Timestamp.IsZero() {
		op.Timestamp = time.Now().UTC()
	}

	return l.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(operationsBucket)
		seq, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to allocate audit sequence: %w", err)
		}

		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)

		value, err := json.Marshal(op)
		if err != nil {
			return fmt.Errorf("failed to marshal audit operation: %w", err)
		}
		return bucket.Put(key, value)
	})
}

// List returns the most recent operations, newest first. A limit of zero
// or less returns everything.
func (l *Log) List(limit int) ([]Operation, error) {
	var ops []Operation
	err := l.db.View(func(tx *bbolt.Tx) error {
		cursor := tx.Bucket(operationsBucket).Cursor()
		for k, v := cursor.Last(); k != nil; k, v = cursor.Prev() {
			if limit > 0 && len(ops) >= limit {
				break
			}
			var op Operation
			if err := json.Unmarshal(v, &op); err != nil {
				return fmt.Errorf("corrupt audit entry: %w", err)
			}
			ops = append(ops, op)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ops, nil
}
