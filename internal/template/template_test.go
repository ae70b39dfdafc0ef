package template

import "testing"

type params struct {
	OffsetSize uint8
}

func TestSetDefaultAndDefault(t *testing.T) {
	s := New()
	s.SetDefault(FileCreate, params{OffsetSize: 4})

	id, ok := s.Default(FileCreate)
	if !ok {
		t.Fatal("Default did not find a registered default")
	}

	var out params
	if !s.Init(id, func(p Params) { out = p.(params) }) {
		t.Fatal("Init did not find the template instance Default created")
	}
	if out.OffsetSize != 4 {
		t.Errorf("OffsetSize = %d, want 4", out.OffsetSize)
	}
}

func TestDefaultUnknownKind(t *testing.T) {
	s := New()
	if _, ok := s.Default("nonexistent"); ok {
		t.Fatal("Default found a template for an unregistered kind")
	}
}

func TestCreateIsIndependentOfDefault(t *testing.T) {
	s := New()
	s.SetDefault(FileCreate, params{OffsetSize: 4})

	customID := s.Create(FileCreate, params{OffsetSize: 8})
	defaultID, _ := s.Default(FileCreate)

	var custom, def params
	s.Init(customID, func(p Params) { custom = p.(params) })
	s.Init(defaultID, func(p Params) { def = p.(params) })

	if custom.OffsetSize != 8 {
		t.Errorf("custom.OffsetSize = %d, want 8", custom.OffsetSize)
	}
	if def.OffsetSize != 4 {
		t.Errorf("def.OffsetSize = %d, want 4", def.OffsetSize)
	}
}

func TestDefaultInstancesDoNotAlias(t *testing.T) {
	s := New()
	s.SetDefault(FileCreate, params{OffsetSize: 4})

	id1, _ := s.Default(FileCreate)
	id2, _ := s.Default(FileCreate)
	if id1 == id2 {
		t.Fatal("two calls to Default returned the same instance id")
	}
}
