package txn

import "sync"

// ReaderHandle owns a snapshot offset: a byte position in the WAL
// interpreted as "the end of the log at the instant this reader began"
// (§3). Its snapshot can be rebased in place by a checkpoint, so reads
// always resolve against the handle's current value.
type ReaderHandle struct {
	mu       sync.Mutex
	snapshot int64
}

// Snapshot returns the reader's current snapshot offset.
func (h *ReaderHandle) Snapshot() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.snapshot
}

// rebase shifts the reader's snapshot down by safe bytes. Only called
// by Manager.RebaseReaders while holding the checkpoint's exclusion
// against writers and other checkpoints.
func (h *ReaderHandle) rebase(safe int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.snapshot -= safe
}
