package resolver_test

import (
	"testing"

	"github.com/fluentgen/fluentgen/internal/handle"
	"github.com/fluentgen/fluentgen/internal/resolver"
	"github.com/fluentgen/fluentgen/internal/typeinfo"
)

// mustResolve resolves a handle and fails the test on error.
func mustResolve(t *testing.T, r *resolver.Resolver, h handle.Type) typeinfo.TypeInfo {
	t.Helper()
	info, err := r.Resolve(h)
	if err != nil {
		t.Fatalf("unexpected resolve error: %v", err)
	}
	return info
}

func assertKind(t *testing.T, info typeinfo.TypeInfo, kind typeinfo.Kind) {
	t.Helper()
	if info.Kind != kind {
		t.Errorf("expected kind %q, got %q", kind, info.Kind)
	}
}

func assertPrimitive(t *testing.T, info typeinfo.TypeInfo, name string) {
	t.Helper()
	assertKind(t, info, typeinfo.KindPrimitive)
	if info.Name != name {
		t.Errorf("expected primitive %q, got %q", name, info.Name)
	}
}

func assertLiteral(t *testing.T, info typeinfo.TypeInfo, value any) {
	t.Helper()
	assertKind(t, info, typeinfo.KindLiteral)
	if info.Literal != value {
		t.Errorf("expected literal %v, got %v", value, info.Literal)
	}
}

func assertReference(t *testing.T, info typeinfo.TypeInfo, name string) {
	t.Helper()
	assertKind(t, info, typeinfo.KindReference)
	if info.Name != name {
		t.Errorf("expected reference to %q, got %q", name, info.Name)
	}
}

func assertUnionLen(t *testing.T, info typeinfo.TypeInfo, n int) {
	t.Helper()
	assertKind(t, info, typeinfo.KindUnion)
	if len(info.UnionTypes) != n {
		t.Fatalf("expected %d union members, got %d", n, len(info.UnionTypes))
	}
}

func assertPropNames(t *testing.T, info typeinfo.TypeInfo, names ...string) {
	t.Helper()
	if len(info.Properties) != len(names) {
		t.Fatalf("expected %d properties, got %d", len(names), len(info.Properties))
	}
	for i, name := range names {
		if info.Properties[i].Name != name {
			t.Errorf("property %d: expected name %q, got %q", i, name, info.Properties[i].Name)
		}
	}
}

// findProp returns the named property or fails.
func findProp(t *testing.T, info typeinfo.TypeInfo, name string) typeinfo.PropertyInfo {
	t.Helper()
	for _, p := range info.Properties {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("property %q not found", name)
	return typeinfo.PropertyInfo{}
}
