package h5core

import (
	"fmt"
	"io"

	"github.com/h5lib/h5core/internal/container"
	"github.com/h5lib/h5core/internal/handles"
	"github.com/h5lib/h5core/internal/template"
)

// HandleID is the opaque handle_id issued by the HANDLES collaborator
// for every successful Create/Open.
type HandleID = handles.ID

// TemplateID is the opaque creation_params_id / access_params_id issued
// by the TEMPLATE collaborator.
type TemplateID = uint64

var (
	registry  = container.NewRegistry()
	idreg     = handles.New()
	templates = template.New()
)

func init() {
	templates.SetDefault(template.FileCreate, DefaultCreateParams())
}

// Handle is a public handle on an open container file, the thing a
// HandleID refers to. Every operation on it goes through the
// package-level functions that take a HandleID, keeping the identifier
// itself opaque to callers.
type Handle struct {
	file *container.File
}

// DefaultCreateParamsID returns the id of the default creation-parameter
// template, suitable for passing to Create or Open.
func DefaultCreateParamsID() TemplateID {
	id, _ := templates.Default(template.FileCreate)
	return id
}

// ResolveCreateParams returns the CreateParams value registered under a
// TemplateID, e.g. one previously returned by GetCreateParams or
// DefaultCreateParamsID.
func ResolveCreateParams(id TemplateID) (CreateParams, error) {
	return resolveParams(id)
}

// NewCreateParamsID registers p as a fresh template and returns its id,
// suitable for passing to Create or Open to request a non-default
// layout.
func NewCreateParamsID(p CreateParams) TemplateID {
	return templates.Create(template.FileCreate, p)
}

func resolveParams(id TemplateID) (CreateParams, error) {
	var out CreateParams
	found := false
	ok := templates.Init(id, func(p template.Params) {
		if cp, isCP := p.(CreateParams); isCP {
			out = cp
			found = true
		}
	})
	if !ok || !found {
		return CreateParams{}, New("Atom", "BadAtom", "unknown creation-parameter template id", nil)
	}
	return out, nil
}

// Create opens path as a fresh container, creating it. overwrite
// selects between the two documented flag sets: false uses
// (WRITE|CREATE|EXCLUSIVE), true uses the OVERWRITE alias
// (WRITE|CREATE|TRUNCATE).
func Create(path string, overwrite bool, paramsID TemplateID) (HandleID, error) {
	params, err := resolveParams(paramsID)
	if err != nil {
		return 0, err
	}
	flags := defaultCreateFlags
	if overwrite {
		flags = OVERWRITE
	}
	f, err := container.Open(registry, path, flags, params)
	if err != nil {
		return 0, err
	}
	return idreg.Register(&Handle{file: f}), nil
}

// Open opens an existing or new container file at path under flags.
func Open(path string, flags AccessFlag, paramsID TemplateID) (HandleID, error) {
	params, err := resolveParams(paramsID)
	if err != nil {
		return 0, err
	}
	f, err := container.Open(registry, path, flags, params)
	if err != nil {
		return 0, err
	}
	return idreg.Register(&Handle{file: f}), nil
}

func lookupHandle(id HandleID) (*Handle, error) {
	obj, ok := idreg.Lookup(id)
	if !ok {
		return nil, New("Atom", "BadAtom", "unknown handle id", nil)
	}
	h, ok := obj.(*Handle)
	if !ok {
		return nil, New("Atom", "BadType", "handle id does not refer to a file", nil)
	}
	return h, nil
}

// Close closes id. The id is removed from the registry whether or not
// the underlying flush reports StillOpen.
func Close(id HandleID) error {
	h, err := lookupHandle(id)
	if err != nil {
		return err
	}
	cerr := container.Close(registry, h.file)
	idreg.Remove(id)
	return cerr
}

// Flush flushes the container file behind id.
func Flush(id HandleID, invalidate bool) error {
	h, err := lookupHandle(id)
	if err != nil {
		return err
	}
	return container.Flush(h.file, invalidate)
}

// IsContainer reports whether path looks like a container file.
func IsContainer(path string) (bool, error) {
	return container.IsContainer(path)
}

// GetCreateParams returns a fresh creation_params_id for the layout
// parameters of the file behind id, rather than a raw struct. The value
// registered is a copy of shared.create_params, never a live alias, so a
// caller mutating it through the returned template cannot corrupt the
// open file's shared state.
func GetCreateParams(id HandleID) (TemplateID, error) {
	h, err := lookupHandle(id)
	if err != nil {
		return 0, err
	}
	cp := h.file.Shared.CreateParams // struct value: copy
	return templates.Create(template.FileCreate, cp), nil
}

// Debug prints the boot-block fields for the file behind id: consist
// flags, userblock size, and the boot block version fields.
func Debug(id HandleID, w io.Writer) error {
	h, err := lookupHandle(id)
	if err != nil {
		return err
	}
	sf := h.file.Shared
	_, err = fmt.Fprintf(w,
		"File Header:\n"+
			"    Consistency flags: %#08x\n"+
			"    Userblock size: %d\n"+
			"    Boot block version: %d\n"+
			"    Small object heap version: %d\n"+
			"    Free space version: %d\n"+
			"    Object directory version: %d\n"+
			"    Shared header version: %d\n"+
			"    Offset size: %d\n"+
			"    Length size: %d\n"+
			"    Group leaf node k: %d\n"+
			"    Group internal node k: %d\n",
		sf.ConsistFlags,
		sf.CreateParams.UserblockSize,
		sf.CreateParams.BootblockVer,
		sf.CreateParams.SmallobjectVer,
		sf.CreateParams.FreespaceVer,
		sf.CreateParams.ObjectdirVer,
		sf.CreateParams.SharedheaderVer,
		sf.CreateParams.OffsetSize,
		sf.CreateParams.LengthSize,
		sf.CreateParams.SymLeafK,
		sf.CreateParams.BtreeInternalK,
	)
	return err
}
