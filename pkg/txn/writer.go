package txn

import "github.com/cobaltdb/walengine/pkg/storage"

// StagedPage is one page drained from a WriteBuffer, in the insertion
// order described by §4.4.
type StagedPage struct {
	PageID uint32
	Data   []byte
}

// WriteBuffer is a per-writer page_id → bytes mapping (§3, §4.4). A
// page_id appears at most once; restaging it overwrites the prior
// entry's bytes but keeps its original position, since it is already
// the same entry, not a new one.
type WriteBuffer struct {
	order []uint32
	pages map[uint32][]byte
}

// NewWriteBuffer returns an empty buffer.
func NewWriteBuffer() *WriteBuffer {
	return &WriteBuffer{pages: make(map[uint32][]byte)}
}

// StageWrite copies data into the buffer for pageID. Last write for a
// given pageID within the transaction wins (§4.4, §8 P5).
func (b *WriteBuffer) StageWrite(pageID uint32, data []byte) error {
	if err := storage.ValidatePage(data); err != nil {
		return err
	}
	if _, exists := b.pages[pageID]; !exists {
		b.order = append(b.order, pageID)
	}
	b.pages[pageID] = storage.CopyPage(data)
	return nil
}

// Len reports how many distinct pages are currently staged.
func (b *WriteBuffer) Len() int {
	return len(b.order)
}

// Drain returns the staged pages in insertion order and empties the
// buffer (§4.4).
func (b *WriteBuffer) Drain() []StagedPage {
	out := make([]StagedPage, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, StagedPage{PageID: id, Data: b.pages[id]})
	}
	b.order = nil
	b.pages = make(map[uint32][]byte)
	return out
}

// WriterHandle owns a tx id and its exclusive write buffer (§3). At most
// one exists at a time; it is consumed by a successful commit, or
// silently discarded (along with its buffered pages) if dropped first.
type WriterHandle struct {
	TxID   uint32
	buffer *WriteBuffer
}

// StageWrite buffers a page write under this writer's transaction.
func (w *WriterHandle) StageWrite(pageID uint32, data []byte) error {
	return w.buffer.StageWrite(pageID, data)
}

// Drain empties the writer's buffer and returns its staged pages.
func (w *WriterHandle) Drain() []StagedPage {
	return w.buffer.Drain()
}

// PendingWrites reports how many distinct pages are currently staged,
// for callers (diagnostics, tests) that want to inspect buffer size
// without draining it.
func (w *WriterHandle) PendingWrites() int {
	return w.buffer.Len()
}
