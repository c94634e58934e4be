package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrwmiller/myvault/internal/pattern"
	"github.com/vrwmiller/myvault/internal/record"
)

func newRecord(t *testing.T, property string, extra ...string) *record.Record {
	t.Helper()
	rec := record.New()
	if property != "" {
		rec.Set(record.PropertyField, record.String(property))
	}
	require.Zero(t, len(extra)%2)
	for i := 0; i < len(extra); i += 2 {
		rec.Set(extra[i], record.String(extra[i+1]))
	}
	return rec
}

func mustCompile(t *testing.T, selector string) *pattern.Matcher {
	t.Helper()
	m, err := pattern.Compile(selector)
	require.NoError(t, err)
	return m
}

func statuses(outcomes []Outcome) []Status {
	out := make([]Status, 0, len(outcomes))
	for _, o := range outcomes {
		out = append(out, o.Status)
	}
	return out
}

func TestCreateBatchIndependentItems(t *testing.T) {
	store := record.NewStore()
	r := New(store)

	outcomes := r.CreateBatch([]*record.Record{
		newRecord(t, "a"),
		newRecord(t, "a"),
		newRecord(t, ""),
		newRecord(t, "b"),
	})

	assert.Equal(t, []Status{
		StatusCreated,
		StatusConflictExists,
		StatusInvalid,
		StatusCreated,
	}, statuses(outcomes))

	// Conflicting and invalid items never reach the store.
	assert.Equal(t, 2, store.Len())
	_, ok := store.Find("a")
	assert.True(t, ok)
}

func TestCreateBatchConflictAgainstExistingStore(t *testing.T) {
	store := record.NewStore()
	require.NoError(t, store.Insert(newRecord(t, "x")))

	outcomes := New(store).CreateBatch([]*record.Record{newRecord(t, "x")})
	require.Len(t, outcomes, 1)
	assert.Equal(t, StatusConflictExists, outcomes[0].Status)
	assert.Equal(t, "x", outcomes[0].Property)
	assert.NotEmpty(t, outcomes[0].Reason)
}

func TestUpdateBatch(t *testing.T) {
	store := record.NewStore()
	require.NoError(t, store.Insert(newRecord(t, "x", "a", "1", "b", "2")))

	outcomes := New(store).UpdateBatch([]*record.Record{
		newRecord(t, "x", "b", "3", "c", "4"),
		newRecord(t, "ghost"),
		newRecord(t, ""),
	})

	assert.Equal(t, []Status{
		StatusUpdated,
		StatusSkippedNotFound,
		StatusInvalid,
	}, statuses(outcomes))

	rec, _ := store.Find("x")
	b, _ := rec.Get("b")
	assert.Equal(t, "3", b.Display())
	a, _ := rec.Get("a")
	assert.Equal(t, "1", a.Display())
}

func TestDeleteSelection(t *testing.T) {
	store := record.NewStore()
	for _, p := range []string{"web1", "db1", "web2"} {
		require.NoError(t, store.Insert(newRecord(t, p)))
	}
	r := New(store)

	m := mustCompile(t, "web*")
	preview := r.PreviewDelete(m)
	require.Len(t, preview, 2)
	assert.Equal(t, 3, store.Len(), "preview must not mutate the store")

	outcomes := r.DeleteSelection(m)
	require.Len(t, outcomes, 2)
	assert.Equal(t, "web1", outcomes[0].Property)
	assert.Equal(t, "web2", outcomes[1].Property)
	assert.Equal(t, StatusDeleted, outcomes[0].Status)

	remaining := store.Records()
	require.Len(t, remaining, 1)
	assert.Equal(t, "db1", remaining[0].Property())
}

func TestDeleteSelectionNoMatch(t *testing.T) {
	store := record.NewStore()
	require.NoError(t, store.Insert(newRecord(t, "db1")))

	outcomes := New(store).DeleteSelection(mustCompile(t, "web*"))
	require.Len(t, outcomes, 1)
	assert.Equal(t, StatusSkippedNotFound, outcomes[0].Status)
	assert.Equal(t, "web*", outcomes[0].Property)
	assert.Equal(t, 1, store.Len())
}

func TestDeleteCommitToleratesConcurrentMutation(t *testing.T) {
	store := record.NewStore()
	for _, p := range []string{"web1", "web2"} {
		require.NoError(t, store.Insert(newRecord(t, p)))
	}
	r := New(store)

	m := mustCompile(t, "web*")
	preview := r.PreviewDelete(m)
	require.Len(t, preview, 2)

	// Another writer removes one previewed record between the phases.
	store.Remove(mustCompile(t, "web2"))

	outcomes := r.DeleteSelection(m)
	require.Len(t, outcomes, 1)
	assert.Equal(t, "web1", outcomes[0].Property)
}

func TestEndToEndScenario(t *testing.T) {
	store := record.NewStore()
	r := New(store)

	created := r.CreateBatch([]*record.Record{
		newRecord(t, "a.com", "password", "p1"),
		newRecord(t, "b.com", "password", "p2"),
	})
	assert.Equal(t, []Status{StatusCreated, StatusCreated}, statuses(created))

	m := mustCompile(t, "*.com")
	selected := store.Select(m)
	require.Len(t, selected, 2)
	assert.Equal(t, "a.com", selected[0].Property())
	assert.Equal(t, "b.com", selected[1].Property())

	deleted := r.DeleteSelection(m)
	assert.Equal(t, []Status{StatusDeleted, StatusDeleted}, statuses(deleted))
	assert.Equal(t, 0, store.Len())
}

func TestStatusSuccess(t *testing.T) {
	assert.True(t, StatusCreated.Success())
	assert.True(t, StatusUpdated.Success())
	assert.True(t, StatusDeleted.Success())
	assert.False(t, StatusConflictExists.Success())
	assert.False(t, StatusSkippedNotFound.Success())
	assert.False(t, StatusInvalid.Success())
}
