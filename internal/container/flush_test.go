package container

import (
	"testing"

	"golang.org/x/xerrors"

	"github.com/h5lib/h5core"
	"github.com/h5lib/h5core/internal/h5coretest"
)

func TestFlushStillOpenIsNonFatal(t *testing.T) {
	path, cleanup := h5coretest.TempContainerPath(t, "stillopen.bin")
	defer cleanup()
	reg := NewRegistry()

	f, err := Open(reg, path, h5core.OVERWRITE, h5core.DefaultCreateParams())
	if err != nil {
		t.Fatalf("create Open: %v", err)
	}
	defer Close(reg, f)

	f.Shared.ShadowTable.Open() // simulate a still-open contained object

	err = Flush(f, false)
	if err == nil {
		t.Fatal("Flush with a live shadow reference returned nil, want StillOpen")
	}
	if !xerrors.Is(err, h5core.StillOpen) {
		t.Errorf("Flush error = %v, want StillOpen", err)
	}

	f.Shared.ShadowTable.Close()
}

func TestFlushReopenDecodesSameFields(t *testing.T) {
	path, cleanup := h5coretest.TempContainerPath(t, "reopen.bin")
	defer cleanup()
	reg := NewRegistry()
	params := h5core.DefaultCreateParams()

	f, err := Open(reg, path, h5core.OVERWRITE, params)
	if err != nil {
		t.Fatalf("create Open: %v", err)
	}
	f.Shared.ConsistFlags = 0x03
	if err := Flush(f, true); err != nil && !xerrors.Is(err, h5core.StillOpen) {
		t.Fatalf("Flush: %v", err)
	}
	if err := Close(reg, f); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f2, err := Open(reg, path, 0, params)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer Close(reg, f2)

	if f2.Shared.ConsistFlags != 0x03 {
		t.Errorf("ConsistFlags after reopen = %#x, want 0x03", f2.Shared.ConsistFlags)
	}
	if f2.Shared.CreateParams.OffsetSize != params.OffsetSize {
		t.Errorf("OffsetSize after reopen = %d, want %d", f2.Shared.CreateParams.OffsetSize, params.OffsetSize)
	}
}

func TestFlushNoOpOnReadOnlyShared(t *testing.T) {
	path, cleanup := h5coretest.TempContainerPath(t, "readonly.bin")
	defer cleanup()
	reg := NewRegistry()
	params := h5core.DefaultCreateParams()

	f0, err := Open(reg, path, h5core.OVERWRITE, params)
	if err != nil {
		t.Fatalf("create Open: %v", err)
	}
	if err := Close(reg, f0); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := Open(reg, path, 0, params)
	if err != nil {
		t.Fatalf("read-only Open: %v", err)
	}
	defer Close(reg, f)

	if err := Flush(f, false); err != nil {
		t.Errorf("Flush on read-only shared state returned %v, want nil (no-op)", err)
	}
}
