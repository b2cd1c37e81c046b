package storage

import (
	"errors"
	"fmt"
	"io"
)

// PageStore is the main, random-access file: a flat array of PageSize
// pages addressed by page_id * PageSize. It is only ever mutated by
// Recovery and Checkpoint — the write path never touches it directly.
type PageStore struct {
	backend Backend
}

// NewPageStore wraps a Backend as a page-granularity store.
func NewPageStore(backend Backend) *PageStore {
	return &PageStore{backend: backend}
}

// ReadPage returns the page's current image. A page beyond the current
// file extent reads as zero-filled, which is what makes the store
// sparse-by-default: nothing has to pre-allocate the file up to pageID.
func (s *PageStore) ReadPage(pageID uint32) ([]byte, error) {
	buf := ZeroPage()
	offset := int64(pageID) * int64(PageSize)

	n, err := s.backend.ReadAt(buf, offset)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("page store: read page %d: %w", pageID, err)
	}
	if n < PageSize {
		// Partial or absent page: the unread tail is already zeroed.
		return buf, nil
	}
	return buf, nil
}

// WritePage overwrites the page at pageID with data, which must be
// exactly PageSize bytes. Callers (Recovery, Checkpoint) are expected to
// batch writes and Sync once at the end of the batch.
func (s *PageStore) WritePage(pageID uint32, data []byte) error {
	if err := ValidatePage(data); err != nil {
		return err
	}
	offset := int64(pageID) * int64(PageSize)
	if _, err := s.backend.WriteAt(data, offset); err != nil {
		return fmt.Errorf("page store: write page %d: %w", pageID, err)
	}
	return nil
}

// Sync flushes the underlying backend. Callers must call this after a
// batch of WritePage calls and before truncating the WAL prefix that
// backed them, so a crash never loses a page the WAL no longer has.
func (s *PageStore) Sync() error {
	if err := s.backend.Sync(); err != nil {
		return fmt.Errorf("page store: sync: %w", err)
	}
	return nil
}

// Close closes the underlying backend.
func (s *PageStore) Close() error {
	return s.backend.Close()
}

// PageCount reports how many whole pages the store currently spans.
func (s *PageStore) PageCount() uint32 {
	size := s.backend.Size()
	return uint32(size / int64(PageSize))
}

// RawBytes returns a copy of the store's entire durable extent. It
// exists for diagnostics (fingerprinting the store for operator health
// dumps and test assertions) — never for the transactional read path,
// which always goes through ReadPage.
func (s *PageStore) RawBytes() ([]byte, error) {
	size := s.backend.Size()
	buf := make([]byte, size)
	if size == 0 {
		return buf, nil
	}
	n, err := s.backend.ReadAt(buf, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("page store: read raw bytes: %w", err)
	}
	return buf[:n], nil
}
