package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadSeesLatestCommittedWriteWithinSnapshot(t *testing.T) {
	e, err := Open(":memory:", &Options{InMemory: true})
	require.NoError(t, err)
	defer e.Close()

	for i, fill := range []byte{1, 2, 3} {
		w, err := e.BeginWrite()
		require.NoError(t, err)
		require.NoError(t, e.StageWrite(w, 0, pageOf(fill)))
		require.NoError(t, e.Commit(w))
		_ = i
	}

	r := e.BeginRead()
	defer e.EndRead(r)
	data, err := e.Read(r, 0)
	require.NoError(t, err)
	require.Equal(t, byte(3), data[0], "a fresh reader sees the most recent committed write")
}

func TestReadIgnoresUncommittedWritesAfterSnapshot(t *testing.T) {
	e, err := Open(":memory:", &Options{InMemory: true})
	require.NoError(t, err)
	defer e.Close()

	r := e.BeginRead()
	defer e.EndRead(r)

	w, err := e.BeginWrite()
	require.NoError(t, err)
	require.NoError(t, e.StageWrite(w, 0, pageOf(9)))
	// Not committed yet.

	data, err := e.Read(r, 0)
	require.NoError(t, err)
	require.Zero(t, data[0])

	e.AbortWrite(w)
}
