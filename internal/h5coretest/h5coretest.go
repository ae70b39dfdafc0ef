// Package h5coretest provides small test helpers shared across the
// container core's test suites.
package h5coretest

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

// RemoveAll wraps os.RemoveAll and fails the test on failure.
func RemoveAll(t testing.TB, path string) {
	t.Helper()
	if err := os.RemoveAll(path); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
}

// TempContainerPath returns a path to a not-yet-existing file inside a
// fresh temporary directory, named like a container file, along with a
// cleanup function that removes the directory.
func TempContainerPath(t testing.TB, name string) (path string, cleanup func()) {
	t.Helper()
	dir, err := ioutil.TempDir("", "h5core-test")
	if err != nil {
		t.Fatalf("TempDir: %v", err)
	}
	return filepath.Join(dir, name), func() { RemoveAll(t, dir) }
}
