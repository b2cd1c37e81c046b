package storage

import "errors"

// PageSize is the fixed size of every page in the store, in bytes.
const PageSize = 4096

var ErrBadPageSize = errors.New("data is not exactly page-size bytes")

// ZeroPage returns a freshly allocated, zero-filled page buffer, the
// image a caller sees when reading a page that has never been written.
func ZeroPage() []byte {
	return make([]byte, PageSize)
}

// ValidatePage checks that data is exactly one page in length.
func ValidatePage(data []byte) error {
	if len(data) != PageSize {
		return ErrBadPageSize
	}
	return nil
}

// CopyPage returns a defensive copy of a page-sized buffer so callers
// can't mutate storage internals through a returned slice.
func CopyPage(data []byte) []byte {
	cp := make([]byte, PageSize)
	copy(cp, data)
	return cp
}
