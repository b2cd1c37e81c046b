package engine

import (
	"fmt"

	"github.com/cobaltdb/walengine/pkg/storage"
	"github.com/cobaltdb/walengine/pkg/txn"
)

// ErrWriterBusy is returned by BeginWrite when another writer is active.
var ErrWriterBusy = txn.ErrWriterBusy

// ErrBadPageSize is returned by StageWrite when data isn't exactly one
// page in length.
var ErrBadPageSize = storage.ErrBadPageSize

// IOError wraps an underlying filesystem failure (open, read, write,
// seek, fsync, truncate) encountered while serving an engine operation.
// It is the §7 "IoError" kind: not a single sentinel, since the
// underlying stdlib errors (os.PathError, io.EOF, ...) already carry
// the detail callers need — IOError just tags which engine op failed
// and keeps the original wrapped so errors.Is/As still sees through it.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("walengine: %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func ioErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Err: err}
}
