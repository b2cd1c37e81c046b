package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckpointWithNoActivityIsNoop(t *testing.T) {
	e, err := Open(":memory:", &Options{InMemory: true})
	require.NoError(t, err)
	defer e.Close()

	require.NoError(t, e.Checkpoint())
	require.Zero(t, e.Stats().WALSize)
}

func TestCheckpointDrainsUpToOldestReader(t *testing.T) {
	e, err := Open(":memory:", &Options{InMemory: true})
	require.NoError(t, err)
	defer e.Close()

	w, err := e.BeginWrite()
	require.NoError(t, err)
	require.NoError(t, e.StageWrite(w, 0, pageOf(1)))
	require.NoError(t, e.Commit(w))

	reader := e.BeginRead()

	w2, err := e.BeginWrite()
	require.NoError(t, err)
	require.NoError(t, e.StageWrite(w2, 1, pageOf(2)))
	require.NoError(t, e.Commit(w2))

	require.NoError(t, e.Checkpoint())
	require.NotZero(t, e.Stats().WALSize, "the reader's snapshot predates the second commit")

	data, err := e.ReadPageDirect(0)
	require.NoError(t, err)
	require.Equal(t, byte(1), data[0])

	e.EndRead(reader)
	require.NoError(t, e.Checkpoint())
	require.Zero(t, e.Stats().WALSize)
}

func TestCheckpointRebasesActiveReaderSnapshots(t *testing.T) {
	e, err := Open(":memory:", &Options{InMemory: true})
	require.NoError(t, err)
	defer e.Close()

	w, err := e.BeginWrite()
	require.NoError(t, err)
	require.NoError(t, e.StageWrite(w, 0, pageOf(1)))
	require.NoError(t, e.Commit(w))

	reader := e.BeginRead()
	before := e.Stats().WALSize

	require.NoError(t, e.Checkpoint())

	after := e.Stats().OldestReaderSnapshot
	require.Less(t, after, before, "the live reader's snapshot must be rebased downward after checkpoint")

	data, err := e.Read(reader, 0)
	require.NoError(t, err)
	require.Equal(t, byte(1), data[0], "a rebased reader must still resolve reads correctly")

	e.EndRead(reader)
}
