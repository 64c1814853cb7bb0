package resolver_test

import (
	"errors"
	"testing"

	"github.com/fluentgen/fluentgen/internal/diagnostic"
	"github.com/fluentgen/fluentgen/internal/handle"
	"github.com/fluentgen/fluentgen/internal/handle/handletest"
	"github.com/fluentgen/fluentgen/internal/resolver"
	"github.com/fluentgen/fluentgen/internal/typeinfo"
)

// --- Primitives and special types ---

func TestResolvePrimitiveString(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Primitive("string"))
	assertPrimitive(t, info, "string")
}

func TestResolvePrimitiveNumber(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Primitive("number"))
	assertPrimitive(t, info, "number")
}

func TestResolveAny(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Any())
	assertPrimitive(t, info, "any")
}

func TestResolveUnknown(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Unknown())
	assertKind(t, info, typeinfo.KindUnknown)
}

func TestResolveNever(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Never())
	assertKind(t, info, typeinfo.KindNever)
}

func TestResolveNilHandle(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, nil)
	assertKind(t, info, typeinfo.KindUnknown)
}

// --- Literals ---

func TestResolveStringLiteral(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Literal("hello"))
	assertLiteral(t, info, "hello")
}

func TestResolveNumberLiteral(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Literal(42.0))
	assertLiteral(t, info, 42.0)
}

func TestResolveBooleanLiteral(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Literal(true))
	assertLiteral(t, info, true)
}

// --- Arrays and tuples ---

func TestResolveArray(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Array(handletest.Primitive("string")))
	assertKind(t, info, typeinfo.KindArray)
	if info.ElementType == nil {
		t.Fatal("expected element type")
	}
	assertPrimitive(t, *info.ElementType, "string")
}

func TestResolveNestedArray(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Array(handletest.Array(handletest.Primitive("number"))))
	assertKind(t, info, typeinfo.KindArray)
	assertKind(t, *info.ElementType, typeinfo.KindArray)
	assertPrimitive(t, *info.ElementType.ElementType, "number")
}

func TestResolveTuple(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Tuple(
		handletest.Primitive("string"),
		handletest.Primitive("number"),
		handletest.Literal(true),
	))
	assertKind(t, info, typeinfo.KindTuple)
	if len(info.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(info.Elements))
	}
	assertPrimitive(t, info.Elements[0], "string")
	assertPrimitive(t, info.Elements[1], "number")
	assertLiteral(t, info.Elements[2], true)
}

// --- Unions and intersections ---

func TestResolveUnion(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Union(
		handletest.Primitive("string"),
		handletest.Primitive("number"),
	))
	assertUnionLen(t, info, 2)
	assertPrimitive(t, info.UnionTypes[0], "string")
	assertPrimitive(t, info.UnionTypes[1], "number")
}

func TestResolveUnionPreservesMemberOrder(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Union(
		handletest.Literal("b"),
		handletest.Literal("a"),
		handletest.Literal("c"),
	))
	assertUnionLen(t, info, 3)
	assertLiteral(t, info.UnionTypes[0], "b")
	assertLiteral(t, info.UnionTypes[1], "a")
	assertLiteral(t, info.UnionTypes[2], "c")
}

func TestResolveUnionDeduplicatesIdenticalMembers(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Union(
		handletest.Literal("a"),
		handletest.Literal("a"),
		handletest.Literal("b"),
	))
	assertUnionLen(t, info, 2)
}

func TestResolveUnionKeepsDistinctLiterals(t *testing.T) {
	// Literals of the same primitive kind must not collapse into each other.
	r := resolver.New()
	info := mustResolve(t, r, handletest.Union(
		handletest.Literal(1.0),
		handletest.Literal(2.0),
	))
	assertUnionLen(t, info, 2)
}

func TestResolveUnionSingletonUnwraps(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Union(handletest.Primitive("string")))
	assertPrimitive(t, info, "string")
}

func TestResolveIntersection(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Intersection(
		handletest.Object("", handletest.Prop("a", handletest.Primitive("string"))),
		handletest.Object("", handletest.Prop("b", handletest.Primitive("number"))),
	))
	assertKind(t, info, typeinfo.KindIntersection)
	if len(info.IntersectionTypes) != 2 {
		t.Fatalf("expected 2 members, got %d", len(info.IntersectionTypes))
	}
}

// --- Objects ---

func TestResolveObjectPropertiesInDeclarationOrder(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Object("",
		handletest.Prop("z", handletest.Primitive("string")),
		handletest.Prop("a", handletest.Primitive("number")),
		handletest.Prop("m", handletest.Primitive("boolean")),
	))
	assertKind(t, info, typeinfo.KindObject)
	assertPropNames(t, info, "z", "a", "m")
}

func TestResolveObjectOptionalAndReadonly(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Object("",
		handletest.OptionalProp("opt", handletest.Primitive("string")),
		handletest.ReadonlyProp("ro", handletest.Primitive("number")),
		handletest.Prop("plain", handletest.Primitive("boolean")),
	))

	if p := findProp(t, info, "opt"); !p.Optional || p.Readonly {
		t.Errorf("opt: expected optional, not readonly; got optional=%v readonly=%v", p.Optional, p.Readonly)
	}
	if p := findProp(t, info, "ro"); !p.Readonly || p.Optional {
		t.Errorf("ro: expected readonly, not optional; got optional=%v readonly=%v", p.Optional, p.Readonly)
	}
	if p := findProp(t, info, "plain"); p.Optional || p.Readonly {
		t.Errorf("plain: expected neither flag; got optional=%v readonly=%v", p.Optional, p.Readonly)
	}
}

func TestResolveObjectCapturesJSDoc(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Object("").AddProperty(handle.Property{
		Name:  "id",
		Type:  handletest.Primitive("string"),
		JSDoc: "The unique identifier.",
	}))
	if p := findProp(t, info, "id"); p.JSDoc != "The unique identifier." {
		t.Errorf("expected jsdoc captured verbatim, got %q", p.JSDoc)
	}
}

func TestResolveObjectIndexSignature(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r,
		handletest.Object("").WithIndexSignature("number", handletest.Primitive("string"), true))
	if info.IndexSignature == nil {
		t.Fatal("expected index signature")
	}
	if info.IndexSignature.KeyType != "number" {
		t.Errorf("expected key type number, got %q", info.IndexSignature.KeyType)
	}
	if !info.IndexSignature.Readonly {
		t.Error("expected readonly index signature")
	}
	assertPrimitive(t, info.IndexSignature.ValueType, "string")
}

func TestResolveObjectIndexSignatureInvalidKeyDefaultsToString(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r,
		handletest.Object("").WithIndexSignature("object", handletest.Primitive("string"), false))
	if info.IndexSignature == nil {
		t.Fatal("expected index signature")
	}
	if info.IndexSignature.KeyType != "string" {
		t.Errorf("expected invalid key type coerced to string, got %q", info.IndexSignature.KeyType)
	}
}

func TestResolveNamedObjectRegistersAndReferencesNested(t *testing.T) {
	r := resolver.New()
	user := handletest.Object("User", handletest.Prop("id", handletest.Primitive("string")))
	order := handletest.Object("Order", handletest.Prop("buyer", user))

	info := mustResolve(t, r, order)
	assertKind(t, info, typeinfo.KindObject)
	if info.Name != "Order" {
		t.Errorf("expected top-level name Order, got %q", info.Name)
	}

	// Nested named shape is a by-name reference; its full shape lives in the
	// registry.
	assertReference(t, findProp(t, info, "buyer").Type, "User")
	registered, ok := r.Registry().Lookup("User")
	if !ok {
		t.Fatal("expected User in registry")
	}
	assertPropNames(t, *registered, "id")
}

func TestResolveSelfReferentialObjectTerminates(t *testing.T) {
	r := resolver.New()
	node := handletest.Object("Node", handletest.Prop("value", handletest.Primitive("string")))
	node.AddProperty(handletest.Prop("next", node))

	info := mustResolve(t, r, node)
	assertKind(t, info, typeinfo.KindObject)
	assertReference(t, findProp(t, info, "next").Type, "Node")
}

func TestResolveMutuallyRecursiveObjectsTerminate(t *testing.T) {
	r := resolver.New()
	a := handletest.Object("A")
	b := handletest.Object("B", handletest.Prop("a", a))
	a.AddProperty(handletest.Prop("b", b))

	info := mustResolve(t, r, a)
	assertKind(t, info, typeinfo.KindObject)
	assertReference(t, findProp(t, info, "b").Type, "B")

	bReg, ok := r.Registry().Lookup("B")
	if !ok {
		t.Fatal("expected B in registry")
	}
	assertReference(t, findProp(t, *bReg, "a").Type, "A")
}

func TestResolveAnonymousSelfReferenceDegradesToUnknown(t *testing.T) {
	r := resolver.New()
	anon := handletest.Object("")
	anon.AddProperty(handletest.Prop("self", anon))

	info := mustResolve(t, r, anon)
	assertKind(t, info, typeinfo.KindObject)
	assertKind(t, findProp(t, info, "self").Type, typeinfo.KindUnknown)
}

func TestResolveIsIdempotent(t *testing.T) {
	build := func() handle.Type {
		user := handletest.Object("User", handletest.Prop("id", handletest.Primitive("string")))
		return handletest.Object("Order",
			handletest.Prop("buyer", user),
			handletest.Prop("total", handletest.Primitive("number")),
		)
	}

	first := mustResolve(t, resolver.New(), build())
	second := mustResolve(t, resolver.New(), build())
	if !first.Equal(second) {
		t.Errorf("expected identical trees across sessions:\n%s\n%s", first.Fingerprint(), second.Fingerprint())
	}
}

// --- Depth guard ---

func TestResolveMaxDepthExceeded(t *testing.T) {
	r := resolver.New()
	r.SetMaxDepth(1)

	deep := handletest.Array(handletest.Array(handletest.Array(handletest.Primitive("string"))))
	_, err := r.Resolve(deep)
	if !errors.Is(err, resolver.ErrMaxDepthExceeded) {
		t.Fatalf("expected ErrMaxDepthExceeded, got %v", err)
	}
}

func TestResolveDepthWithinLimitSucceeds(t *testing.T) {
	r := resolver.New()
	r.SetMaxDepth(3)
	info := mustResolve(t, r, handletest.Array(handletest.Array(handletest.Primitive("string"))))
	assertKind(t, info, typeinfo.KindArray)
}

// --- Enums, functions, type operators ---

func TestResolveEnum(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Enum("Color"))
	assertKind(t, info, typeinfo.KindEnum)
	if info.Name != "Color" {
		t.Errorf("expected enum name Color, got %q", info.Name)
	}
}

func TestResolveFunction(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Function("Callback"))
	assertKind(t, info, typeinfo.KindFunction)
	if info.Name != "Callback" {
		t.Errorf("expected function name Callback, got %q", info.Name)
	}
}

func TestResolveKeyofWithTarget(t *testing.T) {
	r := resolver.New()
	target := handletest.Object("", handletest.Prop("a", handletest.Primitive("string")))
	info := mustResolve(t, r, handletest.Keyof(target))
	assertKind(t, info, typeinfo.KindKeyof)
	if info.Target == nil {
		t.Fatal("expected target")
	}
	assertKind(t, *info.Target, typeinfo.KindObject)
}

func TestResolveKeyofFallsBackToConstraint(t *testing.T) {
	// The host often collapses keyof T to a literal union constraint instead
	// of exposing the operand.
	r := resolver.New()
	h := handletest.Keyof(nil).WithConstraint(handletest.Union(
		handletest.Literal("id"),
		handletest.Literal("name"),
	))
	info := mustResolve(t, r, h)
	assertUnionLen(t, info, 2)
}

func TestResolveTypeofWithTarget(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.Typeof(handletest.Object("Config")))
	assertKind(t, info, typeinfo.KindTypeof)
}

func TestResolveIndexedAccess(t *testing.T) {
	r := resolver.New()
	obj := handletest.Object("User", handletest.Prop("id", handletest.Primitive("string")))
	info := mustResolve(t, r, handletest.IndexedAccess(obj, handletest.Literal("id")))
	assertKind(t, info, typeinfo.KindIndex)
	if info.ObjectType == nil || info.IndexType == nil {
		t.Fatal("expected both operands")
	}
	assertLiteral(t, *info.IndexType, "id")
}

func TestResolveIndexedAccessFallsBackToConstraint(t *testing.T) {
	r := resolver.New()
	h := handletest.IndexedAccess(nil, nil).WithConstraint(handletest.Primitive("string"))
	info := mustResolve(t, r, h)
	assertPrimitive(t, info, "string")
}

func TestResolveUnsupportedShapeDegradesToUnknown(t *testing.T) {
	r := resolver.New()
	collector := diagnostic.NewCollector(false, false)
	r.SetDiagnostics(collector)

	// An alias application outside the utility catalog has no shape predicate.
	info := mustResolve(t, r, handletest.Alias("SomethingOpaque"))
	assertKind(t, info, typeinfo.KindUnknown)
	if collector.WarningCount() == 0 {
		t.Error("expected an unsupported-type warning")
	}
}

// --- Generics ---

func TestResolveFreeTypeParameter(t *testing.T) {
	r := resolver.New()
	info := mustResolve(t, r, handletest.TypeParam("T"))
	assertKind(t, info, typeinfo.KindGeneric)
	if info.Name != "T" {
		t.Errorf("expected generic name T, got %q", info.Name)
	}
}

func TestResolveGenericObjectKeepsFreeParameter(t *testing.T) {
	r := resolver.New()
	box := handletest.Object("Box", handletest.Prop("value", handletest.TypeParam("T"))).
		WithTypeParameters(handle.TypeParameter{Name: "T"})

	info := mustResolve(t, r, box)
	assertKind(t, info, typeinfo.KindObject)
	assertKind(t, findProp(t, info, "value").Type, typeinfo.KindGeneric)
	if len(info.GenericParams) != 1 || info.GenericParams[0].Name != "T" {
		t.Fatalf("expected generic param T, got %+v", info.GenericParams)
	}
	if len(info.UnresolvedGenerics) != 1 || info.UnresolvedGenerics[0] != "T" {
		t.Errorf("expected unresolved generics [T], got %v", info.UnresolvedGenerics)
	}
}

func TestResolveGenericObjectSubstitutesBoundParameter(t *testing.T) {
	r := resolver.New()
	box := handletest.Object("Box", handletest.Prop("value", handletest.TypeParam("T"))).
		WithTypeParameters(handle.TypeParameter{Name: "T"}).
		WithTypeArguments(handletest.Primitive("string"))

	info := mustResolve(t, r, box)
	assertPrimitive(t, findProp(t, info, "value").Type, "string")
	// Fully substituted: the dead parameter list is dropped.
	if len(info.GenericParams) != 0 {
		t.Errorf("expected no generic params after substitution, got %+v", info.GenericParams)
	}
	if len(info.UnresolvedGenerics) != 0 {
		t.Errorf("expected no unresolved generics, got %v", info.UnresolvedGenerics)
	}
	if len(info.TypeArguments) != 1 {
		t.Fatalf("expected 1 type argument, got %d", len(info.TypeArguments))
	}
	assertPrimitive(t, info.TypeArguments[0], "string")
}

func TestResolveGenericInstantiationsGetDistinctResults(t *testing.T) {
	r := resolver.New()
	build := func(arg handle.Type) handle.Type {
		return handletest.Object("", handletest.Prop("value", handletest.TypeParam("T"))).
			WithTypeParameters(handle.TypeParameter{Name: "T"}).
			WithTypeArguments(arg)
	}

	a := mustResolve(t, r, build(handletest.Primitive("string")))
	b := mustResolve(t, r, build(handletest.Primitive("number")))
	assertPrimitive(t, findProp(t, a, "value").Type, "string")
	assertPrimitive(t, findProp(t, b, "value").Type, "number")
}

func TestResolveGenericConstraintAndDefaultCaptured(t *testing.T) {
	r := resolver.New()
	box := handletest.Object("Box", handletest.Prop("value", handletest.TypeParam("T"))).
		WithTypeParameters(handle.TypeParameter{
			Name:       "T",
			Constraint: handletest.Primitive("string"),
			Default:    handletest.Literal("fallback"),
		})

	info := mustResolve(t, r, box)
	if len(info.GenericParams) != 1 {
		t.Fatalf("expected 1 generic param, got %d", len(info.GenericParams))
	}
	gp := info.GenericParams[0]
	if gp.Constraint == nil {
		t.Fatal("expected constraint")
	}
	assertPrimitive(t, *gp.Constraint, "string")
	if gp.Default == nil {
		t.Fatal("expected default")
	}
	assertLiteral(t, *gp.Default, "fallback")
}

// --- ResolveDeclaration ---

func TestResolveDeclarationPromotesAnonymousAlias(t *testing.T) {
	r := resolver.New()
	rt, err := r.ResolveDeclaration("Settings", "src/settings.ts",
		handletest.Object("", handletest.Prop("debug", handletest.Primitive("boolean"))))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rt.TypeInfo.Name != "Settings" {
		t.Errorf("expected promoted name Settings, got %q", rt.TypeInfo.Name)
	}
	if !r.Registry().Has("Settings") {
		t.Error("expected Settings registered")
	}
	if r.Registry().Files["Settings"] != "src/settings.ts" {
		t.Errorf("expected source file recorded, got %q", r.Registry().Files["Settings"])
	}
}

func TestResolveDeclarationCollectsImports(t *testing.T) {
	r := resolver.New()
	user := handletest.Object("User", handletest.Prop("id", handletest.Primitive("string")))
	rt, err := r.ResolveDeclaration("Order", "src/order.ts",
		handletest.Object("Order", handletest.Prop("buyer", user)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rt.Imports) != 1 || rt.Imports[0] != "User" {
		t.Errorf("expected imports [User], got %v", rt.Imports)
	}
}

func TestResolveDeclarationExcludesSelfImport(t *testing.T) {
	r := resolver.New()
	node := handletest.Object("Node")
	node.AddProperty(handletest.Prop("next", node))

	rt, err := r.ResolveDeclaration("Node", "src/node.ts", node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, imp := range rt.Imports {
		if imp == "Node" {
			t.Error("self reference must not appear in imports")
		}
	}
}
