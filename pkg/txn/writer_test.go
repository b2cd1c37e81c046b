package txn

import (
	"testing"

	"github.com/cobaltdb/walengine/pkg/storage"
)

func TestWriteBufferLastWriteWinsPerPage(t *testing.T) {
	b := NewWriteBuffer()

	first := storage.ZeroPage()
	first[0] = 1
	second := storage.ZeroPage()
	second[0] = 2

	if err := b.StageWrite(9, first); err != nil {
		t.Fatalf("Failed to stage first write: %v", err)
	}
	if err := b.StageWrite(9, second); err != nil {
		t.Fatalf("Failed to stage second write: %v", err)
	}

	if b.Len() != 1 {
		t.Fatalf("Expected 1 distinct staged page, got %d", b.Len())
	}

	staged := b.Drain()
	if len(staged) != 1 {
		t.Fatalf("Expected 1 drained page, got %d", len(staged))
	}
	if staged[0].Data[0] != 2 {
		t.Fatalf("Expected the last staged write to win, got %d", staged[0].Data[0])
	}
}

func TestWriteBufferPreservesFirstWriteOrder(t *testing.T) {
	b := NewWriteBuffer()

	b.StageWrite(3, storage.ZeroPage())
	b.StageWrite(1, storage.ZeroPage())
	b.StageWrite(2, storage.ZeroPage())

	staged := b.Drain()
	order := []uint32{staged[0].PageID, staged[1].PageID, staged[2].PageID}
	want := []uint32{3, 1, 2}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("Expected insertion order %v, got %v", want, order)
		}
	}
}

func TestWriteBufferDrainResets(t *testing.T) {
	b := NewWriteBuffer()
	b.StageWrite(0, storage.ZeroPage())
	b.Drain()

	if b.Len() != 0 {
		t.Fatalf("Expected Len() 0 after drain, got %d", b.Len())
	}
	if len(b.Drain()) != 0 {
		t.Fatalf("Expected a second drain to be empty")
	}
}

func TestWriteBufferRejectsBadPageSize(t *testing.T) {
	b := NewWriteBuffer()
	if err := b.StageWrite(0, []byte("short")); err != storage.ErrBadPageSize {
		t.Fatalf("Expected ErrBadPageSize, got %v", err)
	}
}

func TestWriterHandleDelegatesToBuffer(t *testing.T) {
	w := &WriterHandle{TxID: 1, buffer: NewWriteBuffer()}

	if err := w.StageWrite(0, storage.ZeroPage()); err != nil {
		t.Fatalf("Failed to stage write: %v", err)
	}
	if w.PendingWrites() != 1 {
		t.Fatalf("Expected 1 pending write, got %d", w.PendingWrites())
	}

	staged := w.Drain()
	if len(staged) != 1 {
		t.Fatalf("Expected 1 drained page, got %d", len(staged))
	}
	if w.PendingWrites() != 0 {
		t.Fatalf("Expected 0 pending writes after drain")
	}
}
