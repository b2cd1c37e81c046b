package engine

// Stats is a point-in-time snapshot of engine bookkeeping, exposed for
// operator tooling (see pkg/diag) rather than for correctness logic.
type Stats struct {
	WALSize              int64
	OldestReaderSnapshot int64
	ActiveReaders        int
}

// Stats reports the engine's current WAL size, oldest live reader
// snapshot, and active reader count.
func (e *Engine) Stats() Stats {
	size := e.wal.Size()
	return Stats{
		WALSize:              size,
		OldestReaderSnapshot: e.txnMgr.OldestReaderSnapshot(size),
		ActiveReaders:        e.txnMgr.ActiveReaderCount(),
	}
}

// StoreBytes returns a copy of the Page Store's entire durable extent,
// for diagnostics fingerprinting (pkg/diag) and tests comparing two
// engines' durable state after independent recoveries.
func (e *Engine) StoreBytes() ([]byte, error) {
	data, err := e.store.RawBytes()
	if err != nil {
		return nil, ioErr("read store bytes", err)
	}
	return data, nil
}

// ReadPageDirect reads pageID straight from the Page Store, bypassing
// the WAL and any reader snapshot. It is used by diagnostics and tests
// that want to inspect durable state without holding a reader handle,
// never by the transactional read path.
func (e *Engine) ReadPageDirect(pageID uint32) ([]byte, error) {
	data, err := e.store.ReadPage(pageID)
	if err != nil {
		return nil, ioErr("read page store", err)
	}
	return data, nil
}
