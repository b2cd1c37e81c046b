package engine

import (
	"github.com/cobaltdb/walengine/pkg/txn"
	"github.com/cobaltdb/walengine/pkg/wal"
)

// BeginRead captures the current WAL size as a snapshot and registers a
// new reader (§4.3, §4.6). WAL.Size is read under the WAL's own lock,
// which is the same lock a commit's append updates under, giving the
// linearization §5 requires between begin_read and commit.
func (e *Engine) BeginRead() *txn.ReaderHandle {
	snapshot := e.wal.Size()
	return e.txnMgr.BeginRead(snapshot)
}

// EndRead releases a reader's snapshot.
func (e *Engine) EndRead(r *txn.ReaderHandle) {
	e.txnMgr.EndRead(r)
}

// Read resolves (pageID, r.Snapshot()) per §4.6: scan the WAL prefix the
// reader can see, find the tx ids with a Commit Record in that prefix,
// then return the newest Page Record for pageID owned by one of those
// tx ids — or fall back to the Page Store if none exists.
func (e *Engine) Read(r *txn.ReaderHandle, pageID uint32) ([]byte, error) {
	snapshot := r.Snapshot()

	committed := make(map[uint32]bool)
	type candidate struct {
		txID uint32
		data []byte
	}
	var forPage []candidate

	err := e.wal.ScanStrict(snapshot, func(offset int64, rec interface{}) error {
		switch v := rec.(type) {
		case *wal.CommitRecord:
			committed[v.TxID] = true
		case *wal.PageRecord:
			if v.PageID == pageID {
				forPage = append(forPage, candidate{txID: v.TxID, data: v.Data})
			}
		}
		return nil
	})
	if err != nil {
		return nil, ioErr("read scan", err)
	}

	// Rearward scan: the last staged record (within this prefix) whose
	// tx ended up committed wins, which also gives last-write-wins for
	// same-page writes collapsed within a single transaction (§8 P5).
	for i := len(forPage) - 1; i >= 0; i-- {
		if committed[forPage[i].txID] {
			return forPage[i].data, nil
		}
	}

	if e.cache != nil {
		data, err := e.cache.ReadPage(pageID)
		if err != nil {
			return nil, ioErr("read page store", err)
		}
		return data, nil
	}

	data, err := e.store.ReadPage(pageID)
	if err != nil {
		return nil, ioErr("read page store", err)
	}
	return data, nil
}
