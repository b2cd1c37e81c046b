// Package engine wires the Page Store, WAL, and Transaction Manager
// together into the public operations described in §6: the
// single-writer, multi-reader page storage engine with crash recovery
// and checkpointing.
package engine

import (
	"log"
	"sync"

	"github.com/cobaltdb/walengine/pkg/storage"
	"github.com/cobaltdb/walengine/pkg/txn"
	"github.com/cobaltdb/walengine/pkg/wal"
)

// Engine is the single handle a process holds open on a database: the
// two files (main store, WAL-as-"<path>-wal"), the transaction
// manager, and the optional page cache (§9: "a single engine object
// owning the two file handles, the Transaction Manager, and the
// optional page cache; all operations are methods on this object").
type Engine struct {
	path    string
	walPath string

	store   *storage.PageStore
	backend storage.Backend
	cache   *storage.PageCache
	wal     *wal.WAL
	txnMgr  *txn.Manager
	opts    *Options

	// ckMu excludes a writer mid-commit from a concurrent checkpoint and
	// excludes concurrent checkpoints from each other, while leaving
	// readers free to run (§5).
	ckMu sync.Mutex

	// autoMu guards the auto-checkpoint commit counter, independent of
	// ckMu so triggering a checkpoint from inside Commit doesn't
	// deadlock against ckMu itself.
	autoMu                 sync.Mutex
	commitsSinceCheckpoint int

	closed bool
	mu     sync.Mutex
}

// Open opens or creates the engine at path, deriving the WAL path as
// "<path>-wal" (§6), and runs recovery before returning. Passing nil
// options is equivalent to DefaultOptions.
func Open(path string, opts *Options) (*Engine, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	var backend storage.Backend
	var err error

	if opts.InMemory {
		backend = storage.NewMemory()
	} else {
		backend, err = storage.OpenDisk(path)
		if err != nil {
			return nil, ioErr("open main file", err)
		}
	}

	store := storage.NewPageStore(backend)

	var cache *storage.PageCache
	if opts.ReadCacheSize > 0 {
		cache = storage.NewPageCache(store, opts.ReadCacheSize)
	}

	walPath := path + "-wal"
	var w *wal.WAL
	if opts.InMemory {
		w, err = wal.OpenMemory()
	} else {
		w, err = wal.Open(walPath)
	}
	if err != nil {
		backend.Close()
		return nil, ioErr("open wal", err)
	}

	e := &Engine{
		path:    path,
		walPath: walPath,
		store:   store,
		backend: backend,
		cache:   cache,
		wal:     w,
		txnMgr:  txn.NewManager(),
		opts:    opts,
	}

	if err := e.recover(); err != nil {
		w.Close()
		backend.Close()
		return nil, err
	}

	return e, nil
}

// Close closes the engine's files. Best-effort: it flushes nothing
// implicitly beyond what callers already committed (§6).
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true

	var firstErr error
	if err := e.wal.Close(); err != nil && firstErr == nil {
		firstErr = ioErr("close wal", err)
	}
	if err := e.store.Close(); err != nil && firstErr == nil {
		firstErr = ioErr("close main file", err)
	}
	return firstErr
}

// recover replays the WAL into the page store per §4.7, discarding any
// uncommitted or corrupt trailing bytes, then truncates the WAL to
// empty. It runs once, synchronously, inside Open.
func (e *Engine) recover() error {
	type pending struct {
		txID   uint32
		pageID uint32
		data   []byte
	}

	committed := make(map[uint32]bool)
	var pageRecs []pending
	startSize := e.wal.Size()

	cleanPrefix, truncated, err := e.wal.ScanTolerant(func(offset int64, rec interface{}) error {
		switch v := rec.(type) {
		case *wal.CommitRecord:
			committed[v.TxID] = true
		case *wal.PageRecord:
			pageRecs = append(pageRecs, pending{txID: v.TxID, pageID: v.PageID, data: v.Data})
		}
		return nil
	})
	if err != nil {
		return ioErr("recovery scan", err)
	}
	if truncated {
		log.Printf("walengine: recovery found a corrupt/truncated trailing record at offset %d of %d bytes; discarding the tail", cleanPrefix, startSize)
	}

	applied := 0
	for _, p := range pageRecs {
		if !committed[p.txID] {
			continue
		}
		if err := e.store.WritePage(p.pageID, p.data); err != nil {
			return ioErr("recovery apply", err)
		}
		if e.cache != nil {
			e.cache.Invalidate(p.pageID)
		}
		applied++
	}

	if applied > 0 {
		if err := e.store.Sync(); err != nil {
			return ioErr("recovery sync", err)
		}
	}

	if startSize > 0 {
		if err := e.wal.TruncatePrefix(startSize); err != nil {
			return ioErr("recovery truncate wal", err)
		}
	}

	if applied > 0 || truncated {
		log.Printf("walengine: recovery applied %d committed page record(s), wal is now empty", applied)
	}

	return nil
}

