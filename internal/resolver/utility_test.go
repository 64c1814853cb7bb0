package resolver_test

import (
	"errors"
	"testing"

	"github.com/fluentgen/fluentgen/internal/handle"
	"github.com/fluentgen/fluentgen/internal/handle/handletest"
	"github.com/fluentgen/fluentgen/internal/resolver"
	"github.com/fluentgen/fluentgen/internal/typeinfo"
)

func userHandle() *handletest.Handle {
	return handletest.Object("User",
		handletest.Prop("id", handletest.Primitive("string")),
		handletest.Prop("name", handletest.Primitive("string")),
		handletest.OptionalProp("email", handletest.Primitive("string")),
	)
}

// --- Pick / Omit ---

func TestExpandPickSingleKey(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Alias("Pick", userHandle(), handletest.Literal("id")))
	assertKind(t, info, typeinfo.KindObject)
	assertPropNames(t, info, "id")
	if info.Name != "" {
		t.Errorf("expected anonymous result, got name %q", info.Name)
	}
}

func TestExpandPickUnionOfKeys(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Alias("Pick", userHandle(),
		handletest.Union(handletest.Literal("id"), handletest.Literal("email"))))
	assertPropNames(t, info, "id", "email")
	if p := findProp(t, info, "email"); !p.Optional {
		t.Error("picked property must keep its optional flag")
	}
}

func TestExpandPickIgnoresNonStringKeys(t *testing.T) {
	// Non-literal union members in the key set are tolerated, not an error.
	r := resolver.New()
	info := mustResolve(t, r, handletest.Alias("Pick", userHandle(),
		handletest.Union(handletest.Literal("id"), handletest.Literal(7.0))))
	assertPropNames(t, info, "id")
}

func TestExpandPickUnknownKeyYieldsEmptyObject(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Alias("Pick", userHandle(), handletest.Literal("missing")))
	assertKind(t, info, typeinfo.KindObject)
	if len(info.Properties) != 0 {
		t.Errorf("expected no properties, got %d", len(info.Properties))
	}
}

func TestExpandOmit(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Alias("Omit", userHandle(), handletest.Literal("email")))
	assertPropNames(t, info, "id", "name")
}

func TestExpandPickOnNonObjectFails(t *testing.T) {
	r := resolver.New()
	_, err := r.Resolve(handletest.Alias("Pick", handletest.Primitive("string"), handletest.Literal("id")))
	var invalid *resolver.InvalidUtilityTargetError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidUtilityTargetError, got %v", err)
	}
	if invalid.Utility != "Pick" {
		t.Errorf("expected utility Pick, got %q", invalid.Utility)
	}
}

func TestExpandPickCarriesGenericsThrough(t *testing.T) {
	r := resolver.New()
	box := handletest.Object("Box",
		handletest.Prop("value", handletest.TypeParam("T")),
		handletest.Prop("label", handletest.Primitive("string")),
	).WithTypeParameters(handle.TypeParameter{Name: "T"})

	info := mustResolve(t, r, handletest.Alias("Pick", box, handletest.Literal("value")))
	assertPropNames(t, info, "value")
	if len(info.GenericParams) != 1 || info.GenericParams[0].Name != "T" {
		t.Errorf("expected generic param T carried through, got %+v", info.GenericParams)
	}
}

// --- Partial / Required / Readonly ---

func TestExpandPartial(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Alias("Partial", userHandle()))
	for _, p := range info.Properties {
		if !p.Optional {
			t.Errorf("property %q: expected optional", p.Name)
		}
	}
}

func TestExpandRequired(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Alias("Required", userHandle()))
	for _, p := range info.Properties {
		if p.Optional {
			t.Errorf("property %q: expected required", p.Name)
		}
	}
}

func TestExpandReadonly(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Alias("Readonly", userHandle()))
	for _, p := range info.Properties {
		if !p.Readonly {
			t.Errorf("property %q: expected readonly", p.Name)
		}
	}
}

func TestExpandPartialDoesNotMutateRegisteredShape(t *testing.T) {
	r := resolver.New()
	mustResolve(t, r, handletest.Alias("Partial", userHandle()))

	registered, ok := r.Registry().Lookup("User")
	if !ok {
		t.Fatal("expected User in registry")
	}
	if p := findProp(t, *registered, "id"); p.Optional {
		t.Error("registered User.id must stay required after Partial expansion")
	}
}

// --- Record ---

func TestExpandRecordLiteralKeys(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Alias("Record",
		handletest.Union(handletest.Literal("a"), handletest.Literal("b")),
		handletest.Primitive("number")))
	assertPropNames(t, info, "a", "b")
	assertPrimitive(t, findProp(t, info, "a").Type, "number")
}

func TestExpandRecordStringKey(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Alias("Record",
		handletest.Primitive("string"), handletest.Primitive("boolean")))
	if info.IndexSignature == nil {
		t.Fatal("expected index signature")
	}
	if info.IndexSignature.KeyType != "string" {
		t.Errorf("expected string key, got %q", info.IndexSignature.KeyType)
	}
	assertPrimitive(t, info.IndexSignature.ValueType, "boolean")
}

func TestExpandRecordNumberKey(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Alias("Record",
		handletest.Primitive("number"), handletest.Primitive("string")))
	if info.IndexSignature == nil {
		t.Fatal("expected index signature")
	}
	if info.IndexSignature.KeyType != "number" {
		t.Errorf("expected number key, got %q", info.IndexSignature.KeyType)
	}
}

// --- Exclude / Extract / NonNullable ---

func TestExpandExclude(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Alias("Exclude",
		handletest.Union(handletest.Literal("a"), handletest.Literal("b"), handletest.Literal("c")),
		handletest.Literal("a")))
	assertUnionLen(t, info, 2)
	assertLiteral(t, info.UnionTypes[0], "b")
	assertLiteral(t, info.UnionTypes[1], "c")
}

func TestExpandExcludeSingleSurvivorUnwraps(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Alias("Exclude",
		handletest.Union(handletest.Literal("a"), handletest.Literal("b")),
		handletest.Literal("a")))
	assertLiteral(t, info, "b")
}

func TestExpandExcludeEverythingYieldsNever(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Alias("Exclude",
		handletest.Union(handletest.Literal("a"), handletest.Literal("b")),
		handletest.Union(handletest.Literal("a"), handletest.Literal("b"))))
	assertKind(t, info, typeinfo.KindNever)
}

func TestExpandExtract(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Alias("Extract",
		handletest.Union(handletest.Primitive("string"), handletest.Primitive("number")),
		handletest.Primitive("string")))
	assertPrimitive(t, info, "string")
}

func TestExpandExtractNoMatchYieldsNever(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Alias("Extract",
		handletest.Union(handletest.Literal("a"), handletest.Literal("b")),
		handletest.Primitive("number")))
	assertKind(t, info, typeinfo.KindNever)
}

func TestExpandExtractLiteralAgainstPrimitiveWidens(t *testing.T) {
	// "a" is assignable to string, so Extract<"a" | 1, string> keeps "a".
	r := resolver.New()
	info := mustResolve(t, r, handletest.Alias("Extract",
		handletest.Union(handletest.Literal("a"), handletest.Literal(1.0)),
		handletest.Primitive("string")))
	assertLiteral(t, info, "a")
}

func TestExpandNonNullable(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Alias("NonNullable",
		handletest.Union(
			handletest.Primitive("string"),
			handletest.Primitive("null"),
			handletest.Primitive("undefined"),
		)))
	assertPrimitive(t, info, "string")
}

func TestExpandNonNullableOnSingleton(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Alias("NonNullable", handletest.Primitive("string")))
	assertPrimitive(t, info, "string")
}

// --- Recognition boundaries ---

func TestExpandArityMismatchFallsThrough(t *testing.T) {
	// Pick with one argument is not a recognized utility application; the
	// shapeless alias degrades to unknown instead of erroring.
	r := resolver.New()
	info := mustResolve(t, r, handletest.Alias("Pick", userHandle()))
	assertKind(t, info, typeinfo.KindUnknown)
}

func TestExpandUnknownUtilityNameFallsThrough(t *testing.T) {
	r := resolver.New()
	// An alias the catalog doesn't know, applied over a real object shape:
	// normal object dispatch takes over.
	h := userHandle().WithAlias("Wrapped", handletest.Primitive("string"))
	info := mustResolve(t, r, h)
	assertKind(t, info, typeinfo.KindObject)
}

func TestExpandNestedUtilities(t *testing.T) {
	r := resolver.New()
	inner := handletest.Alias("Pick", userHandle(),
		handletest.Union(handletest.Literal("id"), handletest.Literal("email")))
	info := mustResolve(t, r, handletest.Alias("Partial", inner))
	assertPropNames(t, info, "id", "email")
	for _, p := range info.Properties {
		if !p.Optional {
			t.Errorf("property %q: expected optional after Partial", p.Name)
		}
	}
}

func TestExpandUtilityDepthExceeded(t *testing.T) {
	r := resolver.New()
	r.SetMaxUtilityDepth(1)
	inner := handletest.Alias("Pick", userHandle(), handletest.Literal("id"))
	_, err := r.Resolve(handletest.Alias("Partial", inner))
	if !errors.Is(err, resolver.ErrUtilityDepthExceeded) {
		t.Fatalf("expected ErrUtilityDepthExceeded, got %v", err)
	}
}
