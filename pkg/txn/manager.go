// Package txn tracks the transactional bookkeeping described in §4.3:
// the single active writer slot, the monotonically increasing tx id
// counter, and the set of live reader snapshots that Checkpoint must
// not outrun.
package txn

import (
	"errors"
	"sync"
)

// ErrWriterBusy is returned by BeginWrite when another writer is active.
// At most one writer exists at a time (§3, §5).
var ErrWriterBusy = errors.New("txn: writer already active")

// Manager guards next_tx_id, the active-reader set, and the writer-busy
// flag behind a single mutex, per §5 ("Transaction Manager state...is
// guarded by a single mutex; operations are O(readers) but brief").
type Manager struct {
	mu           sync.Mutex
	nextTxID     uint32
	writerActive bool
	readers      map[*ReaderHandle]struct{}
}

// NewManager returns a Manager with tx ids starting at 1; id 0 is
// reserved to mean "none" (§3).
func NewManager() *Manager {
	return &Manager{
		nextTxID: 1,
		readers:  make(map[*ReaderHandle]struct{}),
	}
}

// BeginWrite allocates a new tx id and claims the single writer slot.
func (m *Manager) BeginWrite() (*WriterHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.writerActive {
		return nil, ErrWriterBusy
	}

	id := m.nextTxID
	m.nextTxID++
	m.writerActive = true

	return &WriterHandle{TxID: id, buffer: NewWriteBuffer()}, nil
}

// ReleaseWriter frees the writer slot, whether the writer committed or
// was simply dropped without committing (§3: "consumed by commit...or
// by drop without commit").
func (m *Manager) ReleaseWriter() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writerActive = false
}

// BeginRead registers a new reader at the given snapshot offset and
// returns its handle. snapshot must have been captured atomically with
// respect to commits by the caller (the engine), per §5's linearization
// requirement between begin_read and commit.
func (m *Manager) BeginRead(snapshot int64) *ReaderHandle {
	h := &ReaderHandle{snapshot: snapshot}

	m.mu.Lock()
	m.readers[h] = struct{}{}
	m.mu.Unlock()

	return h
}

// EndRead removes a reader from the active set.
func (m *Manager) EndRead(h *ReaderHandle) {
	m.mu.Lock()
	delete(m.readers, h)
	m.mu.Unlock()
}

// OldestReaderSnapshot returns the minimum snapshot among active
// readers, or currentWALSize if there are none (§4.3).
func (m *Manager) OldestReaderSnapshot(currentWALSize int64) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	oldest := currentWALSize
	for h := range m.readers {
		if s := h.Snapshot(); s < oldest {
			oldest = s
		}
	}
	return oldest
}

// RebaseReaders subtracts safe from every active reader's snapshot, in
// place on their handles. Checkpoint calls this after shifting the WAL
// so readers continue resolving reads against the right offsets (§4.8:
// "All surviving Reader snapshots are rebased by subtracting safe").
func (m *Manager) RebaseReaders(safe int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for h := range m.readers {
		h.rebase(safe)
	}
}

// ActiveReaderCount reports how many readers are currently registered,
// used by diagnostics and by tests asserting reclamation behavior.
func (m *Manager) ActiveReaderCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.readers)
}
