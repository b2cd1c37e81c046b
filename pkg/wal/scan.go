package wal

import "fmt"

// Visitor is called once per decoded record during a scan. offset is the
// byte position the record started at; rec is either a *PageRecord or a
// *CommitRecord.
type Visitor func(offset int64, rec interface{}) error

// ScanStrict decodes every record in [0, limit) and calls visit for
// each, forward. It is used by the read path and by checkpoint, both of
// which only ever operate on a range this process itself appended —
// any decode failure there is a bug, not an expected crash artifact, so
// it is returned as an error rather than silently truncated.
func (w *WAL) ScanStrict(limit int64, visit Visitor) error {
	buf, err := w.ReadAt(0, limit)
	if err != nil {
		return fmt.Errorf("wal: scan: %w", err)
	}

	var offset int64
	for offset < limit {
		rec, n, err := decodeRecordAt(buf[offset:])
		if err != nil {
			return fmt.Errorf("wal: scan at offset %d: %w", offset, err)
		}
		if err := visit(offset, rec); err != nil {
			return err
		}
		offset += int64(n)
	}
	return nil
}

// ScanTolerant decodes records from the start of the file until it hits
// bytes it cannot decode as a well-formed record, then stops — exactly
// the §4.7/§7 recovery policy of treating a corrupt or truncated trailing
// record as end-of-log. It returns the offset of the first byte not
// covered by a complete, well-formed record (i.e. how much of the file
// is trustworthy) and whether a corrupt (non-clean-EOF) tail was found.
func (w *WAL) ScanTolerant(visit Visitor) (cleanPrefix int64, truncated bool, err error) {
	size := w.Size()
	buf, err := w.ReadAt(0, size)
	if err != nil {
		return 0, false, fmt.Errorf("wal: scan: %w", err)
	}

	var offset int64
	for offset < size {
		rec, n, derr := decodeRecordAt(buf[offset:])
		if derr != nil {
			return offset, true, nil
		}
		if err := visit(offset, rec); err != nil {
			return offset, false, err
		}
		offset += int64(n)
	}
	return offset, false, nil
}
