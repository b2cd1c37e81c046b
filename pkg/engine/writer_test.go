package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBeginWriteRejectsConcurrentWriter(t *testing.T) {
	e, err := Open(":memory:", &Options{InMemory: true})
	require.NoError(t, err)
	defer e.Close()

	w, err := e.BeginWrite()
	require.NoError(t, err)

	_, err = e.BeginWrite()
	require.True(t, errors.Is(err, ErrWriterBusy))

	e.AbortWrite(w)
}

func TestStageWriteRejectsBadPageSize(t *testing.T) {
	e, err := Open(":memory:", &Options{InMemory: true})
	require.NoError(t, err)
	defer e.Close()

	w, err := e.BeginWrite()
	require.NoError(t, err)
	err = e.StageWrite(w, 0, []byte("too short"))
	require.True(t, errors.Is(err, ErrBadPageSize))
	e.AbortWrite(w)
}
