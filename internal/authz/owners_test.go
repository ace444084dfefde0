package authz

import (
	"reflect"
	"testing"
)

func TestOwnerRegistry_RegisterAndResolve(t *testing.T) {
	registry := NewOwnerRegistry()
	registry.Register("project", func(id uint) (uint, bool) {
		if id == 5 {
			return 42, true
		}
		return 0, false
	})

	orgID, ok := registry.Resolve("project", 5)
	if !ok || orgID != 42 {
		t.Errorf("Resolve = (%d, %v), expected (42, true)", orgID, ok)
	}

	if _, ok := registry.Resolve("project", 99); ok {
		t.Error("unknown object should not resolve")
	}

	if _, ok := registry.Resolve("ghost", 5); ok {
		t.Error("unregistered kind should not resolve")
	}
}

func TestOwnerRegistry_DoubleRegisterPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on double registration")
		}
	}()

	registry := NewOwnerRegistry()
	resolver := func(id uint) (uint, bool) { return 0, false }
	registry.Register("project", resolver)
	registry.Register("project", resolver)
}

func TestOwnerRegistry_MustResolve(t *testing.T) {
	registry := NewOwnerRegistry()
	registry.Register("project", func(id uint) (uint, bool) { return 0, false })

	registry.MustResolve("project")

	defer func() {
		if recover() == nil {
			t.Error("expected panic for missing resolver")
		}
	}()
	registry.MustResolve("comment")
}

func TestOwnerRegistry_Kinds(t *testing.T) {
	registry := NewOwnerRegistry()
	resolver := func(id uint) (uint, bool) { return 0, false }
	registry.Register("tag", resolver)
	registry.Register("comment", resolver)
	registry.Register("project", resolver)

	expected := []string{"comment", "project", "tag"}
	if got := registry.Kinds(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Kinds() = %v, expected %v", got, expected)
	}
}
