package h5core

import (
	"bytes"
	"testing"

	"golang.org/x/xerrors"

	"github.com/h5lib/h5core/internal/h5coretest"
)

func TestCreateOpenCloseLifecycle(t *testing.T) {
	path, cleanup := h5coretest.TempContainerPath(t, "api.bin")
	defer cleanup()

	id, err := Create(path, true, DefaultCreateParamsID())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := Close(id); err != nil {
		t.Fatalf("Close: %v", err)
	}

	id2, err := Open(path, 0, DefaultCreateParamsID())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer Close(id2)

	paramsID, err := GetCreateParams(id2)
	if err != nil {
		t.Fatalf("GetCreateParams: %v", err)
	}
	params, err := ResolveCreateParams(paramsID)
	if err != nil {
		t.Fatalf("ResolveCreateParams: %v", err)
	}
	want := DefaultCreateParams()
	if params.OffsetSize != want.OffsetSize || params.LengthSize != want.LengthSize {
		t.Errorf("params = %+v, want offset/length sizes matching %+v", params, want)
	}
}

func TestCreateExclusiveFailsOnExisting(t *testing.T) {
	path, cleanup := h5coretest.TempContainerPath(t, "api2.bin")
	defer cleanup()

	id, err := Create(path, false, DefaultCreateParamsID())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer Close(id)

	if _, err := Create(path, false, DefaultCreateParamsID()); err == nil {
		t.Fatal("second non-overwrite Create on an existing path unexpectedly succeeded")
	} else if !xerrors.Is(err, ErrExists) {
		t.Errorf("error = %v, want File/Exists", err)
	}
}

func TestOperationsOnUnknownHandleFail(t *testing.T) {
	if err := Close(HandleID(999999)); err == nil {
		t.Fatal("Close on an unknown handle id unexpectedly succeeded")
	}
	if err := Flush(HandleID(999999), false); err == nil {
		t.Fatal("Flush on an unknown handle id unexpectedly succeeded")
	}
	if _, err := GetCreateParams(HandleID(999999)); err == nil {
		t.Fatal("GetCreateParams on an unknown handle id unexpectedly succeeded")
	}
}

func TestIsContainerThroughAPI(t *testing.T) {
	path, cleanup := h5coretest.TempContainerPath(t, "api3.bin")
	defer cleanup()

	id, err := Create(path, true, DefaultCreateParamsID())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := Close(id); err != nil {
		t.Fatalf("Close: %v", err)
	}

	ok, err := IsContainer(path)
	if err != nil {
		t.Fatalf("IsContainer: %v", err)
	}
	if !ok {
		t.Error("IsContainer = false, want true")
	}
}

func TestDebugWritesFields(t *testing.T) {
	path, cleanup := h5coretest.TempContainerPath(t, "api4.bin")
	defer cleanup()

	id, err := Create(path, true, DefaultCreateParamsID())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer Close(id)

	var buf bytes.Buffer
	if err := Debug(id, &buf); err != nil {
		t.Fatalf("Debug: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("Debug wrote nothing")
	}
}
