// Package wal implements the append-only write-ahead log file: the
// durable record of every staged page write and every commit, from which
// the engine's read path, recovery, and checkpoint all work.
package wal

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/cobaltdb/walengine/pkg/storage"
)

var ErrClosed = errors.New("wal: closed")

// WAL is the append-only record log. It sits on top of a
// storage.Backend (the same disk/memory abstraction the main page
// store uses) and tracks its own logical size in memory, so every
// append is a single positioned write at the current end of the log —
// there is no buffered writer a concurrent in-process reader could
// observe as stale. Durability beyond same-process visibility only
// matters at commit, where AppendCommitRecord syncs explicitly (§4.5).
type WAL struct {
	mu      sync.RWMutex
	backend storage.Backend
	size    int64
}

// Open opens or creates a disk-backed WAL file at path.
func Open(path string) (*WAL, error) {
	backend, err := storage.OpenDisk(path)
	if err != nil {
		return nil, fmt.Errorf("wal: open %s: %w", path, err)
	}
	return newWAL(backend), nil
}

// OpenMemory returns an in-memory WAL, for Engine's InMemory mode and
// for tests that don't want file descriptors.
func OpenMemory() (*WAL, error) {
	return newWAL(storage.NewMemory()), nil
}

func newWAL(backend storage.Backend) *WAL {
	return &WAL{backend: backend, size: backend.Size()}
}

// Size returns the current logical end of the log in bytes.
func (w *WAL) Size() int64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.size
}

// AppendPageRecord appends a Page Record for (txID, pageID, data). It is
// not synced — durability for a transaction's page records is deferred
// to the Commit Record's fsync, per §4.5.
func (w *WAL) AppendPageRecord(txID, pageID uint32, data []byte) error {
	buf, err := encodePageRecord(txID, pageID, data)
	if err != nil {
		return err
	}
	return w.appendRaw(buf)
}

// AppendCommitRecord appends a Commit Record for txID and fsyncs the
// backend. A successful return means the Commit Record and every
// previously appended Page Record for this writer are durable (§4.5,
// §7 durability semantics).
func (w *WAL) AppendCommitRecord(txID uint32) error {
	buf := encodeCommitRecord(txID)
	if err := w.appendRaw(buf); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.backend == nil {
		return ErrClosed
	}
	if err := w.backend.Sync(); err != nil {
		return fmt.Errorf("wal: fsync commit: %w", err)
	}
	return nil
}

func (w *WAL) appendRaw(buf []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.backend == nil {
		return ErrClosed
	}

	n, err := w.backend.WriteAt(buf, w.size)
	if err != nil {
		return fmt.Errorf("wal: append: %w", err)
	}
	w.size += int64(n)
	return nil
}

// ReadAt reads n bytes starting at offset. Callers (the read path,
// recovery, checkpoint) only ever request ranges known to lie within
// the current log, so a short read is reported as an error rather than
// silently zero-padded.
func (w *WAL) ReadAt(offset, n int64) ([]byte, error) {
	w.mu.RLock()
	backend := w.backend
	w.mu.RUnlock()
	if backend == nil {
		return nil, ErrClosed
	}

	buf := make([]byte, n)
	read, err := backend.ReadAt(buf, offset)
	if err != nil && !(errors.Is(err, io.EOF) && int64(read) == n) {
		return nil, fmt.Errorf("wal: read at %d: %w", offset, err)
	}
	return buf, nil
}

// TruncatePrefix drops the first n bytes of the log, shifting the
// remaining suffix down to offset 0. It must not run concurrently with
// an in-flight commit or another checkpoint — callers serialize that
// with the checkpoint mutex described in §5.
func (w *WAL) TruncatePrefix(n int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.backend == nil {
		return ErrClosed
	}
	if n <= 0 {
		return nil
	}
	if n > w.size {
		return fmt.Errorf("wal: truncate prefix %d exceeds size %d", n, w.size)
	}

	tailLen := w.size - n
	tail := make([]byte, tailLen)
	if tailLen > 0 {
		if _, err := w.backend.ReadAt(tail, n); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("wal: read tail for truncate: %w", err)
		}
	}
	if _, err := w.backend.WriteAt(tail, 0); err != nil {
		return fmt.Errorf("wal: rewrite tail: %w", err)
	}
	if err := w.backend.Truncate(tailLen); err != nil {
		return fmt.Errorf("wal: truncate: %w", err)
	}
	if err := w.backend.Sync(); err != nil {
		return fmt.Errorf("wal: fsync after truncate: %w", err)
	}

	w.size = tailLen
	return nil
}

// Close closes the underlying backend. Best-effort: it flushes nothing
// implicitly beyond what the backend already holds.
func (w *WAL) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.backend == nil {
		return nil
	}
	err := w.backend.Close()
	w.backend = nil
	return err
}
