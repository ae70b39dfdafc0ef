package h5core

import "fmt"

// Error is the structured error type returned by every h5core operation
// that can fail. Class is the error namespace from the source (e.g.
// "File", "IO", "Args", "Cache", "Sym", "Atom"); Code is the variant
// within that namespace (e.g. "CantOpen", "NotContainer").
type Error struct {
	Class string
	Code  string
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s/%s", e.Class, e.Code)
	}
	return fmt.Sprintf("%s/%s: %s", e.Class, e.Code, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same Class and Code,
// ignoring Msg and the wrapped cause. This lets callers write
// errors.Is(err, h5core.ErrNotContainer) against a sentinel constructed
// with New(class, code, "", nil).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Class == t.Class && e.Code == t.Code
}

// New constructs an *Error. err may be nil.
func New(class, code, msg string, err error) *Error {
	return &Error{Class: class, Code: code, Msg: msg, Err: err}
}

// Wrapf constructs an *Error with a formatted message wrapping err.
func Wrapf(class, code string, err error, format string, args ...interface{}) *Error {
	return &Error{Class: class, Code: code, Msg: fmt.Sprintf(format, args...), Err: err}
}

// StillOpen is the distinguished, non-fatal-yet outcome of Flush/Close:
// contained objects were still open and prevented a complete cache
// invalidation, but the flush/close otherwise proceeded. Compare with
// errors.Is(err, h5core.StillOpen).
var StillOpen = New("Sym", "CantFlush", "contained objects are still open", nil)

// Sentinel error classes/codes, for use with errors.Is.
var (
	ErrBadValue     = New("Args", "BadValue", "", nil)
	ErrBadRange     = New("Args", "BadRange", "", nil)
	ErrBadType      = New("Args", "BadType", "", nil)
	ErrExists       = New("File", "Exists", "", nil)
	ErrFileBadValue = New("File", "BadValue", "", nil)
	ErrFileOpen     = New("File", "FileOpen", "", nil)
	ErrCantCreate   = New("File", "CantCreate", "", nil)
	ErrCantOpen     = New("File", "CantOpen", "", nil)
	ErrCantInit     = New("File", "CantInit", "", nil)
	ErrNotContainer = New("File", "NotContainer", "", nil)
	ErrFileReadErr  = New("File", "ReadError", "", nil)
	ErrFileWriteErr = New("File", "WriteError", "", nil)
	ErrIOSeek       = New("IO", "SeekError", "", nil)
	ErrIORead       = New("IO", "ReadError", "", nil)
	ErrIOWrite      = New("IO", "WriteError", "", nil)
	ErrCacheFlush   = New("Cache", "CantFlush", "", nil)
	ErrBadAtom      = New("Atom", "BadAtom", "", nil)
	ErrCantRegister = New("Atom", "CantRegister", "", nil)
)
