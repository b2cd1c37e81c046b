package engine

import "github.com/cobaltdb/walengine/pkg/wal"

// Checkpoint migrates committed page images from the WAL prefix no
// live reader still needs into the Page Store, then shrinks the WAL to
// drop that prefix (§4.8). It is safe to call with no readers active
// (it drains the whole log) or with the writer idle between commits;
// it must not run concurrently with a commit in flight, which ckMu
// enforces.
func (e *Engine) Checkpoint() error {
	e.ckMu.Lock()
	defer e.ckMu.Unlock()

	safe := e.txnMgr.OldestReaderSnapshot(e.wal.Size())
	if safe <= 0 {
		return nil
	}

	committed := make(map[uint32]bool)
	type pending struct {
		txID   uint32
		pageID uint32
		data   []byte
	}
	var pageRecs []pending

	err := e.wal.ScanStrict(safe, func(offset int64, rec interface{}) error {
		switch v := rec.(type) {
		case *wal.CommitRecord:
			committed[v.TxID] = true
		case *wal.PageRecord:
			pageRecs = append(pageRecs, pending{txID: v.TxID, pageID: v.PageID, data: v.Data})
		}
		return nil
	})
	if err != nil {
		return ioErr("checkpoint scan", err)
	}

	applied := 0
	for _, p := range pageRecs {
		if !committed[p.txID] {
			continue
		}
		if err := e.store.WritePage(p.pageID, p.data); err != nil {
			return ioErr("checkpoint apply", err)
		}
		if e.cache != nil {
			e.cache.Invalidate(p.pageID)
		}
		applied++
	}

	if applied > 0 {
		if err := e.store.Sync(); err != nil {
			return ioErr("checkpoint sync", err)
		}
	}

	if err := e.wal.TruncatePrefix(safe); err != nil {
		return ioErr("checkpoint truncate", err)
	}
	e.txnMgr.RebaseReaders(safe)

	return nil
}
