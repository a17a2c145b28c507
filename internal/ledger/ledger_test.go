package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_RecordAndConsume(t *testing.T) {
	l := New(NewMemoryStore())

	err := l.RecordLastAction("sess-1", ActionDelete, []uint64{3, 5})
	require.NoError(t, err)

	entry, err := l.ConsumeUndo("sess-1")
	require.NoError(t, err)
	assert.Equal(t, ActionDelete, entry.Kind)
	assert.Equal(t, []uint64{3, 5}, entry.ShiftIDs)

	// Consuming clears the entry
	_, err = l.ConsumeUndo("sess-1")
	assert.ErrorIs(t, err, ErrNothingToUndo)
}

func TestLedger_EmptySession(t *testing.T) {
	l := New(NewMemoryStore())

	_, err := l.ConsumeUndo("nobody")
	assert.ErrorIs(t, err, ErrNothingToUndo)
}

func TestLedger_RecordOverwrites(t *testing.T) {
	l := New(NewMemoryStore())

	require.NoError(t, l.RecordLastAction("sess-1", ActionCreate, []uint64{1}))
	require.NoError(t, l.RecordLastAction("sess-1", ActionPublish, []uint64{2, 4}))

	entry, err := l.ConsumeUndo("sess-1")
	require.NoError(t, err)
	assert.Equal(t, ActionPublish, entry.Kind)
	assert.Equal(t, []uint64{2, 4}, entry.ShiftIDs)
}

func TestLedger_RecordEmptyClears(t *testing.T) {
	l := New(NewMemoryStore())

	require.NoError(t, l.RecordLastAction("sess-1", ActionDelete, []uint64{7}))
	require.NoError(t, l.RecordLastAction("sess-1", ActionDelete, nil))

	_, err := l.ConsumeUndo("sess-1")
	assert.ErrorIs(t, err, ErrNothingToUndo)
}

func TestLedger_SessionsAreIsolated(t *testing.T) {
	l := New(NewMemoryStore())

	require.NoError(t, l.RecordLastAction("sess-1", ActionDelete, []uint64{1}))
	require.NoError(t, l.RecordLastAction("sess-2", ActionPublish, []uint64{2}))

	entry, err := l.ConsumeUndo("sess-1")
	require.NoError(t, err)
	assert.Equal(t, ActionDelete, entry.Kind)

	entry, err = l.ConsumeUndo("sess-2")
	require.NoError(t, err)
	assert.Equal(t, ActionPublish, entry.Kind)
}
