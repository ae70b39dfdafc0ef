package symtab

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, offsetSize := range []uint8{2, 4, 8} {
		entry := Entry{
			LinkNameOffset:      123,
			ObjectHeaderAddress: 456,
			CacheType:           1,
		}
		copy(entry.Scratch[:], "0123456789abcdef")

		buf, err := Encode(nil, offsetSize, entry)
		if err != nil {
			t.Fatalf("offset_size=%d: Encode: %v", offsetSize, err)
		}
		if len(buf) != SizeOfEntry(offsetSize) {
			t.Fatalf("offset_size=%d: Encode produced %d bytes, want %d", offsetSize, len(buf), SizeOfEntry(offsetSize))
		}

		got, err := Decode(bytes.NewReader(buf), offsetSize)
		if err != nil {
			t.Fatalf("offset_size=%d: Decode: %v", offsetSize, err)
		}
		if diff := cmp.Diff(entry, got); diff != "" {
			t.Errorf("offset_size=%d: round trip mismatch (-want +got):\n%s", offsetSize, diff)
		}
	}
}

func TestDecodeShortBufferFails(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte{1, 2, 3}), 4); err == nil {
		t.Fatal("Decode on a truncated buffer unexpectedly succeeded")
	}
}
