package wal

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cobaltdb/walengine/pkg/storage"
)

// RecordType is the leading 4-byte tag that distinguishes the two WAL
// record kinds. It is the only thing recovery and the read path use to
// tell records apart — there is no other framing.
type RecordType uint32

const (
	// RecordPage carries a page's full image for one transaction.
	RecordPage RecordType = 1
	// RecordCommit marks a transaction's preceding page records durable
	// and visible.
	RecordCommit RecordType = 2
)

// CommitMagic is the fixed value every well-formed Commit Record carries.
// Recovery rejects a Commit Record whose magic doesn't match, which is
// what lets a half-written commit at the tail of a crashed WAL be told
// apart from a genuine one.
const CommitMagic uint32 = 0xC0DECAFE

var (
	// ErrCorruption marks bytes that do not decode as a well-formed
	// record: an unknown type tag, a record cut short, or a Commit Record
	// with the wrong magic. ScanStrict returns it wrapped; ScanTolerant
	// treats it as the end of the log.
	ErrCorruption = errors.New("wal: corrupt record")
)

// pageRecordSize is the on-disk size of a Page Record: 4-byte type,
// 4-byte tx_id, 4-byte page_id, then PageSize bytes of image.
const pageRecordSize = 4 + 4 + 4 + storage.PageSize

// commitRecordSize is the on-disk size of a Commit Record: 4-byte type,
// 4-byte tx_id, 4-byte magic.
const commitRecordSize = 4 + 4 + 4

// PageRecord is the decoded form of a Page Record.
type PageRecord struct {
	TxID   uint32
	PageID uint32
	Data   []byte // exactly storage.PageSize bytes
}

// CommitRecord is the decoded form of a Commit Record.
type CommitRecord struct {
	TxID uint32
}

// encodePageRecord lays out a Page Record exactly per §6: no padding,
// little-endian, type tag first.
func encodePageRecord(txID, pageID uint32, data []byte) ([]byte, error) {
	if err := storage.ValidatePage(data); err != nil {
		return nil, err
	}
	buf := make([]byte, pageRecordSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(RecordPage))
	binary.LittleEndian.PutUint32(buf[4:8], txID)
	binary.LittleEndian.PutUint32(buf[8:12], pageID)
	copy(buf[12:], data)
	return buf, nil
}

// encodeCommitRecord lays out a Commit Record exactly per §6.
func encodeCommitRecord(txID uint32) []byte {
	buf := make([]byte, commitRecordSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(RecordCommit))
	binary.LittleEndian.PutUint32(buf[4:8], txID)
	binary.LittleEndian.PutUint32(buf[8:12], CommitMagic)
	return buf
}

// decodeRecordAt decodes the record beginning at buf[0:], returning
// either a *PageRecord or a *CommitRecord and the number of bytes it
// occupied. It returns an ErrCorruption-wrapping error if the type tag
// is unrecognized, if buf is too short for the declared record kind, or
// if a Commit Record's magic does not match. Recovery treats that as
// "this is the end of the usable log"; the read path and checkpoint fail
// with it.
func decodeRecordAt(buf []byte) (interface{}, int, error) {
	if len(buf) < 4 {
		return nil, 0, fmt.Errorf("%w: truncated type tag", ErrCorruption)
	}
	rtype := RecordType(binary.LittleEndian.Uint32(buf[0:4]))

	switch rtype {
	case RecordPage:
		if len(buf) < pageRecordSize {
			return nil, 0, fmt.Errorf("%w: truncated page record", ErrCorruption)
		}
		rec := &PageRecord{
			TxID:   binary.LittleEndian.Uint32(buf[4:8]),
			PageID: binary.LittleEndian.Uint32(buf[8:12]),
			Data:   storage.CopyPage(buf[12:pageRecordSize]),
		}
		return rec, pageRecordSize, nil

	case RecordCommit:
		if len(buf) < commitRecordSize {
			return nil, 0, fmt.Errorf("%w: truncated commit record", ErrCorruption)
		}
		txID := binary.LittleEndian.Uint32(buf[4:8])
		magic := binary.LittleEndian.Uint32(buf[8:12])
		if magic != CommitMagic {
			return nil, 0, fmt.Errorf("%w: bad commit magic", ErrCorruption)
		}
		return &CommitRecord{TxID: txID}, commitRecordSize, nil

	default:
		return nil, 0, fmt.Errorf("%w: unknown record type %d", ErrCorruption, rtype)
	}
}
