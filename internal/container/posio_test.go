package container

import (
	"bytes"
	"os"
	"testing"

	"github.com/h5lib/h5core"
	"github.com/h5lib/h5core/internal/h5coretest"
)

func newTestFile(t *testing.T, intent h5core.AccessFlag) (*File, func()) {
	t.Helper()
	path, cleanup := h5coretest.TempContainerPath(t, "posio.bin")
	handle, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	sf := newSharedFile(FileKey{Dev: 1, Ino: 1}, handle, h5core.WRITE)
	f := &File{Name: path, Intent: intent, Shared: sf}
	return f, func() {
		handle.Close()
		cleanup()
	}
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	f, cleanup := newTestFile(t, h5core.WRITE)
	defer cleanup()

	payload := []byte("hello, container")
	if err := Write(f, 10, payload); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got := make([]byte, len(payload))
	if err := Read(f, 10, got); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("Read got %q, want %q", got, payload)
	}
}

func TestWriteRejectedWithoutIntent(t *testing.T) {
	f, cleanup := newTestFile(t, 0) // read-only intent, even though shared.flags has WRITE
	defer cleanup()

	if err := Write(f, 0, []byte("x")); err == nil {
		t.Fatal("Write succeeded through a read-only intent File")
	}
}

func TestZeroLengthIsNoOp(t *testing.T) {
	f, cleanup := newTestFile(t, h5core.WRITE)
	defer cleanup()

	if err := Write(f, 0, nil); err != nil {
		t.Fatalf("zero-length Write: %v", err)
	}
	if err := Read(f, 0, nil); err != nil {
		t.Fatalf("zero-length Read: %v", err)
	}
}

func TestSeekElisionTransparentToSequentialIO(t *testing.T) {
	f, cleanup := newTestFile(t, h5core.WRITE)
	defer cleanup()

	// Two contiguous writes; the second should not require a host seek
	// because the cursor already sits at the right offset.
	first := []byte("0123456789")
	second := []byte("abcdefghij")
	if err := Write(f, 0, first); err != nil {
		t.Fatalf("first Write: %v", err)
	}
	if f.Shared.LastOp != OpWrite || f.Shared.Cursor != int64(len(first)) {
		t.Fatalf("cursor state after first write = (%v, %d), want (OpWrite, %d)", f.Shared.LastOp, f.Shared.Cursor, len(first))
	}
	if err := Write(f, int64(len(first)), second); err != nil {
		t.Fatalf("second Write: %v", err)
	}

	got := make([]byte, len(first)+len(second))
	if err := Read(f, 0, got); err != nil {
		t.Fatalf("Read: %v", err)
	}
	want := append(append([]byte{}, first...), second...)
	if !bytes.Equal(got, want) {
		t.Errorf("Read got %q, want %q", got, want)
	}
}

func TestFailedIOResetsLastOp(t *testing.T) {
	f, cleanup := newTestFile(t, h5core.WRITE)
	defer cleanup()

	if err := Write(f, 0, []byte("abc")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	f.Shared.Handle.Close() // force the next operation to fail

	buf := make([]byte, 3)
	if err := Read(f, 0, buf); err == nil {
		t.Fatal("Read on closed handle unexpectedly succeeded")
	}
	if f.Shared.LastOp != OpNone {
		t.Errorf("LastOp after failed IO = %v, want OpNone", f.Shared.LastOp)
	}
}
