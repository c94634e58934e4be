package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrwmiller/myvault/internal/pattern"
)

func newRecord(t *testing.T, property string, extra ...string) *Record {
	t.Helper()
	rec := New()
	rec.Set(PropertyField, String(property))
	require.Zero(t, len(extra)%2, "extra must be name/value pairs")
	for i := 0; i < len(extra); i += 2 {
		rec.Set(extra[i], String(extra[i+1]))
	}
	return rec
}

func mustCompile(t *testing.T, selector string) *pattern.Matcher {
	t.Helper()
	m, err := pattern.Compile(selector)
	require.NoError(t, err)
	return m
}

func TestParseEmptyPayload(t *testing.T) {
	for _, payload := range [][]byte{nil, {}, []byte("  \n")} {
		store, err := Parse(payload)
		require.NoError(t, err)
		assert.Equal(t, 0, store.Len())
	}
}

func TestParseSingleObjectNormalized(t *testing.T) {
	store, err := Parse([]byte(`{"property":"a.com","password":"p1"}`))
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())
	assert.Equal(t, "a.com", store.Records()[0].Property())
}

func TestParseRejectsNonObjectPayload(t *testing.T) {
	for _, payload := range []string{`"text"`, `42`, `[1,2]`, `not json`} {
		_, err := Parse([]byte(payload))
		assert.Error(t, err, "payload %q", payload)
	}
}

func TestInsertAndFind(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Insert(newRecord(t, "x", "a", "1")))

	rec, ok := store.Find("x")
	require.True(t, ok)
	assert.Equal(t, "x", rec.Property())

	// Identity is case-sensitive even though selection is not.
	_, ok = store.Find("X")
	assert.False(t, ok)
}

func TestInsertDuplicateLeavesStoreUnchanged(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Insert(newRecord(t, "x", "a", "1")))

	err := store.Insert(newRecord(t, "x", "b", "2"))
	assert.ErrorIs(t, err, ErrDuplicateProperty)
	assert.Equal(t, 1, store.Len())

	rec, _ := store.Find("x")
	_, hasB := rec.Get("b")
	assert.False(t, hasB, "failed insert must not mutate the stored record")
}

func TestInsertMissingProperty(t *testing.T) {
	store := NewStore()
	rec := New()
	rec.Set("password", String("p"))
	assert.ErrorIs(t, store.Insert(rec), ErrMissingProperty)
	assert.Equal(t, 0, store.Len())
}

func TestReplaceMergesFields(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Insert(newRecord(t, "x", "a", "1", "b", "2")))

	update := newRecord(t, "x", "b", "3", "c", "4")
	require.NoError(t, store.Replace(update))

	rec, _ := store.Find("x")
	for name, want := range map[string]string{"a": "1", "b": "3", "c": "4"} {
		v, ok := rec.Get(name)
		require.True(t, ok, "field %q", name)
		assert.Equal(t, want, v.Display())
	}
}

func TestReplaceUnknownProperty(t *testing.T) {
	store := NewStore()
	err := store.Replace(newRecord(t, "ghost"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSelectOrderAndNilMatcher(t *testing.T) {
	store := NewStore()
	for _, p := range []string{"b.com", "a.com", "api.net"} {
		require.NoError(t, store.Insert(newRecord(t, p)))
	}

	all := store.Select(nil)
	require.Len(t, all, 3)
	assert.Equal(t, "b.com", all[0].Property())
	assert.Equal(t, "a.com", all[1].Property())

	coms := store.Select(mustCompile(t, "*.com"))
	require.Len(t, coms, 2)
	assert.Equal(t, "b.com", coms[0].Property())
	assert.Equal(t, "a.com", coms[1].Property())
}

func TestRemovePreservesRemainderOrder(t *testing.T) {
	store := NewStore()
	for _, p := range []string{"web1", "db1", "web2", "db2", "web3"} {
		require.NoError(t, store.Insert(newRecord(t, p)))
	}

	m := mustCompile(t, "web*")
	previewed := store.Select(m)
	removed := store.Remove(m)

	require.Len(t, removed, 3)
	assert.Equal(t, previewed, removed, "preview and commit must select the same set")

	remaining := store.Records()
	require.Len(t, remaining, 2)
	assert.Equal(t, "db1", remaining[0].Property())
	assert.Equal(t, "db2", remaining[1].Property())
}

func TestRemoveNilMatcherRemovesNothing(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Insert(newRecord(t, "x")))
	assert.Empty(t, store.Remove(nil))
	assert.Equal(t, 1, store.Len())
}
