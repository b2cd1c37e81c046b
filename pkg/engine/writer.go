package engine

import (
	"fmt"
	"log"

	"github.com/cobaltdb/walengine/pkg/txn"
)

// BeginWrite claims the single writer slot and returns a handle with an
// empty write buffer (§4.3, §6). It fails with ErrWriterBusy if another
// writer is already active.
func (e *Engine) BeginWrite() (*txn.WriterHandle, error) {
	w, err := e.txnMgr.BeginWrite()
	if err != nil {
		return nil, err
	}
	return w, nil
}

// StageWrite buffers a page write under w's transaction. It does not
// touch the WAL or the page store — nothing is durable until Commit
// (§4.4).
func (e *Engine) StageWrite(w *txn.WriterHandle, pageID uint32, data []byte) error {
	return w.StageWrite(pageID, data)
}

// AbortWrite discards w's staged pages and releases the writer slot
// without writing anything to the WAL — the "drop without commit"
// lifecycle from §3: a silent abort.
func (e *Engine) AbortWrite(w *txn.WriterHandle) {
	w.Drain()
	e.txnMgr.ReleaseWriter()
}

// Commit executes the §4.5 commit protocol: append a Page Record per
// staged page, append a Commit Record, fsync, then release the writer
// slot. On success, the transaction is visible to any reader whose
// snapshot is taken afterward. On failure, no Page Store bytes were
// touched and the partially written WAL tail is left for the next
// Recovery to discard (§4.5, §7).
func (e *Engine) Commit(w *txn.WriterHandle) error {
	defer e.txnMgr.ReleaseWriter()

	staged := w.Drain()

	e.ckMu.Lock()
	err := func() error {
		for _, p := range staged {
			if err := e.wal.AppendPageRecord(w.TxID, p.PageID, p.Data); err != nil {
				return ioErr(fmt.Sprintf("commit tx %d: append page %d", w.TxID, p.PageID), err)
			}
		}
		if err := e.wal.AppendCommitRecord(w.TxID); err != nil {
			return ioErr(fmt.Sprintf("commit tx %d: append commit", w.TxID), err)
		}
		return nil
	}()
	e.ckMu.Unlock()
	if err != nil {
		return err
	}

	e.maybeAutoCheckpoint()
	return nil
}

func (e *Engine) maybeAutoCheckpoint() {
	if e.opts.CheckpointInterval <= 0 {
		return
	}

	e.autoMu.Lock()
	e.commitsSinceCheckpoint++
	due := e.commitsSinceCheckpoint >= e.opts.CheckpointInterval
	if due {
		e.commitsSinceCheckpoint = 0
	}
	e.autoMu.Unlock()

	if due {
		if err := e.Checkpoint(); err != nil {
			log.Printf("walengine: auto-checkpoint failed: %v", err)
		}
	}
}
