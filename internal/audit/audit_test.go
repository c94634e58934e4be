package audit

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestLog(t *testing.T) *Log {
	t.Helper()
	log, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { log.Close() })
	return log
}

func TestAppendAndList(t *testing.T) {
	log := openTestLog(t)

	require.NoError(t, log.Append(Operation{Command: "create", Properties: 2, Success: true}))
	require.NoError(t, log.Append(Operation{Command: "delete", Selector: "web*", Properties: 1, Success: true}))
	require.NoError(t, log.Append(Operation{Command: "update", Properties: 0, Success: false}))

	ops, err := log.List(0)
	require.NoError(t, err)
	require.Len(t, ops, 3)

	// Newest first.
	assert.Equal(t, "update", ops[0].Command)
	assert.Equal(t, "delete", ops[1].Command)
	assert.Equal(t, "create", ops[2].Command)

	assert.Equal(t, "web*", ops[1].Selector)
	assert.False(t, ops[0].Success)
	assert.False(t, ops[0].Timestamp.IsZero(), "Append must stamp the operation")
}

func TestListLimit(t *testing.T) {
	log := openTestLog(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, log.Append(Operation{Command: "read", Success: true}))
	}

	ops, err := log.List(2)
	require.NoError(t, err)
	assert.Len(t, ops, 2)
}

func TestListEmpty(t *testing.T) {
	log := openTestLog(t)
	ops, err := log.List(10)
	require.NoError(t, err)
	assert.Empty(t, ops)
}

func TestExplicitTimestampPreserved(t *testing.T) {
	log := openTestLog(t)
	stamp := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, log.Append(Operation{Command: "create", Timestamp: stamp}))

	ops, err := log.List(1)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.True(t, ops[0].Timestamp.Equal(stamp))
}
