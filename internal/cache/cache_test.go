package cache

import (
	"bytes"
	"testing"
)

func TestPutGet(t *testing.T) {
	c := New(4)
	c.Put(0, []byte("hello"), false)
	data, ok := c.Get(0)
	if !ok {
		t.Fatal("Get did not find a just-put entry")
	}
	if !bytes.Equal(data, []byte("hello")) {
		t.Errorf("Get = %q, want %q", data, "hello")
	}
	if _, ok := c.Get(1); ok {
		t.Fatal("Get found an entry that was never put")
	}
}

func TestEviction(t *testing.T) {
	c := New(2)
	c.Put(0, []byte("a"), false)
	c.Put(1, []byte("b"), false)
	c.Put(2, []byte("c"), false) // evicts addr 0

	if _, ok := c.Get(0); ok {
		t.Error("addr 0 should have been evicted")
	}
	if _, ok := c.Get(1); !ok {
		t.Error("addr 1 should still be resident")
	}
	if _, ok := c.Get(2); !ok {
		t.Error("addr 2 should be resident")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestFlushWritesBackDirtyOnly(t *testing.T) {
	c := New(4)
	c.Put(0, []byte("dirty"), true)
	c.Put(1, []byte("clean"), false)

	written := map[int64][]byte{}
	if err := c.Flush(false, func(addr int64, data []byte) error {
		written[addr] = data
		return nil
	}); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if len(written) != 1 {
		t.Fatalf("Flush wrote back %d entries, want 1", len(written))
	}
	if !bytes.Equal(written[0], []byte("dirty")) {
		t.Errorf("Flush wrote %q for addr 0, want %q", written[0], "dirty")
	}
	if c.Len() != 2 {
		t.Errorf("Len() after non-invalidating Flush = %d, want 2", c.Len())
	}
}

func TestFlushInvalidate(t *testing.T) {
	c := New(4)
	c.Put(0, []byte("dirty"), true)

	if err := c.Flush(true, func(addr int64, data []byte) error { return nil }); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() after invalidating Flush = %d, want 0", c.Len())
	}
}

func TestDestroy(t *testing.T) {
	c := New(4)
	c.Put(0, []byte("a"), false)
	c.Destroy()
	if c.Len() != 0 {
		t.Errorf("Len() after Destroy = %d, want 0", c.Len())
	}
}
