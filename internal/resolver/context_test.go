package resolver_test

import (
	"testing"

	"github.com/fluentgen/fluentgen/internal/resolver"
	"github.com/fluentgen/fluentgen/internal/typeinfo"
)

func TestContextLookupUnknownName(t *testing.T) {
	ctx := resolver.NewGenericContext()
	if _, known := ctx.Lookup("T"); known {
		t.Error("expected T unknown in empty context")
	}
}

func TestContextBindAndLookup(t *testing.T) {
	ctx := resolver.NewGenericContext()
	ctx.Push()
	ctx.Bind("T", typeinfo.Primitive("string"))

	bound, known := ctx.Lookup("T")
	if !known || bound == nil {
		t.Fatal("expected T bound")
	}
	assertPrimitive(t, *bound, "string")
}

func TestContextMarkFree(t *testing.T) {
	ctx := resolver.NewGenericContext()
	ctx.Push()
	ctx.MarkFree("T")

	bound, known := ctx.Lookup("T")
	if !known {
		t.Fatal("expected T known")
	}
	if bound != nil {
		t.Error("expected T free")
	}
	if !ctx.IsFree("T") {
		t.Error("expected IsFree true")
	}
}

func TestContextInnerFrameShadowsOuter(t *testing.T) {
	ctx := resolver.NewGenericContext()
	ctx.Push()
	ctx.Bind("T", typeinfo.Primitive("string"))
	ctx.Push()
	ctx.Bind("T", typeinfo.Primitive("number"))

	bound, _ := ctx.Lookup("T")
	assertPrimitive(t, *bound, "number")

	ctx.Pop()
	bound, _ = ctx.Lookup("T")
	assertPrimitive(t, *bound, "string")
}

func TestContextPopDropsFrameBindings(t *testing.T) {
	ctx := resolver.NewGenericContext()
	ctx.Push()
	ctx.Bind("T", typeinfo.Primitive("string"))
	ctx.Pop()

	if _, known := ctx.Lookup("T"); known {
		t.Error("expected T unknown after pop")
	}
}

func TestContextPopEmptyIsNoop(t *testing.T) {
	ctx := resolver.NewGenericContext()
	ctx.Pop()
	if _, known := ctx.Lookup("T"); known {
		t.Error("expected empty context to stay empty")
	}
}

func TestContextFingerprintEmptyIsEmpty(t *testing.T) {
	ctx := resolver.NewGenericContext()
	if fp := ctx.Fingerprint(); fp != "" {
		t.Errorf("expected empty fingerprint, got %q", fp)
	}
}

func TestContextFingerprintIsOrderIndependent(t *testing.T) {
	a := resolver.NewGenericContext()
	a.Push()
	a.Bind("T", typeinfo.Primitive("string"))
	a.Bind("U", typeinfo.Primitive("number"))

	b := resolver.NewGenericContext()
	b.Push()
	b.Bind("U", typeinfo.Primitive("number"))
	b.Bind("T", typeinfo.Primitive("string"))

	if a.Fingerprint() != b.Fingerprint() {
		t.Errorf("expected identical fingerprints:\n%s\n%s", a.Fingerprint(), b.Fingerprint())
	}
}

func TestContextFingerprintDistinguishesBindings(t *testing.T) {
	a := resolver.NewGenericContext()
	a.Push()
	a.Bind("T", typeinfo.Primitive("string"))

	b := resolver.NewGenericContext()
	b.Push()
	b.Bind("T", typeinfo.Primitive("number"))

	if a.Fingerprint() == b.Fingerprint() {
		t.Error("different bindings must produce different fingerprints")
	}
}

func TestContextFingerprintDistinguishesFreeFromBound(t *testing.T) {
	a := resolver.NewGenericContext()
	a.Push()
	a.MarkFree("T")

	b := resolver.NewGenericContext()
	b.Push()
	b.Bind("T", typeinfo.Primitive("string"))

	if a.Fingerprint() == b.Fingerprint() {
		t.Error("free and bound must produce different fingerprints")
	}
}

func TestContextReset(t *testing.T) {
	ctx := resolver.NewGenericContext()
	ctx.Push()
	ctx.Bind("T", typeinfo.Primitive("string"))
	ctx.Reset()

	if _, known := ctx.Lookup("T"); known {
		t.Error("expected context empty after reset")
	}
	if fp := ctx.Fingerprint(); fp != "" {
		t.Errorf("expected empty fingerprint after reset, got %q", fp)
	}
}
