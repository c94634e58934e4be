// Package reconcile applies batches of input records against a record
// store and reports a per-item outcome. A single bad item never aborts a
// batch: every item is attempted exactly once and resolved independently.
package reconcile

import (
	"errors"
	"fmt"

	"github.com/vrwmiller/myvault/internal/pattern"
	"github.com/vrwmiller/myvault/internal/record"
)

// Status is the terminal state of one reconciled item.
type Status string

const (
	StatusCreated         Status = "created"
	StatusUpdated         Status = "updated"
	StatusDeleted         Status = "deleted"
	StatusSkippedNotFound Status = "skipped-not-found"
	StatusConflictExists  Status = "conflict-exists"
	StatusInvalid         Status = "invalid"
)

// Success reports whether the status is a terminal success.
func (s Status) Success() bool {
	switch s {
	case StatusCreated, StatusUpdated, StatusDeleted:
		return true
	}
	return false
}

// Outcome describes what happened to a single input item.
type Outcome struct {
	Property string
	Status   Status
	Reason   string
}

// Reconciler orchestrates create/update/delete batches against a store.
type Reconciler struct {
	store *record.Store
}

// New returns a reconciler over the given store.
func New(store *record.Store) *Reconciler {
	return &Reconciler{store: store}
}

// CreateBatch inserts each item in input order. Later items can conflict
// with earlier items of the same batch: the store reflects insertions as
// they happen.
func (r *Reconciler) CreateBatch(items []*record.Record) []Outcome {
	outcomes := make([]Outcome, 0, len(items))
	for _, item := range items {
		outcomes = append(outcomes, r.createOne(item))
	}
	return outcomes
}

func (r *Reconciler) createOne(item *record.Record) Outcome {
	property := item.Property()
	err := r.store.Insert(item)
	switch {
	case err == nil:
		return Outcome{Property: property, Status: StatusCreated}
	case errors.Is(err, record.ErrDuplicateProperty):
		return Outcome{
			Property: property,
			Status:   StatusConflictExists,
			Reason:   fmt.Sprintf("property %q already exists", property),
		}
	case errors.Is(err, record.ErrMissingProperty):
		return Outcome{
			Property: property,
			Status:   StatusInvalid,
			Reason:   "record has no non-empty property field",
		}
	default:
		return Outcome{Property: property, Status: StatusInvalid, Reason: err.Error()}
	}
}

// UpdateBatch merges each item into its existing record, in input order.
func (r *Reconciler) UpdateBatch(items []*record.Record) []Outcome {
	outcomes := make([]Outcome, 0, len(items))
	for _, item := range items {
		outcomes = append(outcomes, r.updateOne(item))
	}
	return outcomes
}

func (r *Reconciler) updateOne(item *record.Record) Outcome {
	property := item.Property()
	err := r.store.Replace(item)
	switch {
	case err == nil:
		return Outcome{Property: property, Status: StatusUpdated}
	case errors.Is(err, record.ErrNotFound):
		return Outcome{
			Property: property,
			Status:   StatusSkippedNotFound,
			Reason:   fmt.Sprintf("no record with property %q", property),
		}
	case errors.Is(err, record.ErrMissingProperty):
		return Outcome{
			Property: property,
			Status:   StatusInvalid,
			Reason:   "record has no non-empty property field",
		}
	default:
		return Outcome{Property: property, Status: StatusInvalid, Reason: err.Error()}
	}
}

// PreviewDelete resolves the records a DeleteSelection with the same
// matcher would remove, without mutating the store. Callers show this set
// for confirmation; the commit re-resolves against the live store, so a
// store mutated in between may yield fewer removals than previewed.
func (r *Reconciler) PreviewDelete(m *pattern.Matcher) []*record.Record {
	return r.store.Select(m)
}

// DeleteSelection removes every record matching the selector and reports
// one Deleted outcome per removed record. When nothing matches, it
// returns a single skipped outcome naming the selector.
func (r *Reconciler) DeleteSelection(m *pattern.Matcher) []Outcome {
	removed := r.store.Remove(m)
	if len(removed) == 0 {
		return []Outcome{{
			Property: m.Selector(),
			Status:   StatusSkippedNotFound,
			Reason:   fmt.Sprintf("no records match %q", m.Selector()),
		}}
	}

	outcomes := make([]Outcome, 0, len(removed))
	for _, rec := range removed {
		outcomes = append(outcomes, Outcome{Property: rec.Property(), Status: StatusDeleted})
	}
	return outcomes
}
