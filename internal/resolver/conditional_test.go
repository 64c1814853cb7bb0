package resolver_test

import (
	"errors"
	"testing"

	"github.com/fluentgen/fluentgen/internal/handle"
	"github.com/fluentgen/fluentgen/internal/handle/handletest"
	"github.com/fluentgen/fluentgen/internal/resolver"
	"github.com/fluentgen/fluentgen/internal/typeinfo"
)

// boundConditional wraps a conditional property inside an object that binds T
// to the given argument, the way an instantiated generic does.
func boundConditional(cond *handletest.Handle, arg handle.Type) handle.Type {
	return handletest.Object("", handletest.Prop("x", cond)).
		WithTypeParameters(handle.TypeParameter{Name: "T"}).
		WithTypeArguments(arg)
}

func TestConditionalConcreteCheckLeftToHost(t *testing.T) {
	// A conditional whose check type has no type parameters is the host's to
	// collapse; the manual evaluator declines it.
	r := resolver.New()
	cond := handletest.Conditional(
		handletest.Literal("a"),
		handletest.Primitive("string"),
		handletest.Literal("yes"),
		handletest.Literal("no"),
	)
	info := mustResolve(t, r, cond)
	// The synthetic handle exposes no collapsed shape, so resolution degrades.
	assertKind(t, info, typeinfo.KindUnknown)
}

func TestConditionalTrueBranch(t *testing.T) {
	r := resolver.New()
	cond := handletest.Conditional(
		handletest.TypeParam("T"),
		handletest.Primitive("string"),
		handletest.Literal("yes"),
		handletest.Literal("no"),
	)
	info := mustResolve(t, r, boundConditional(cond, handletest.Primitive("string")))
	assertLiteral(t, findProp(t, info, "x").Type, "yes")
}

func TestConditionalFalseBranch(t *testing.T) {
	r := resolver.New()
	cond := handletest.Conditional(
		handletest.TypeParam("T"),
		handletest.Primitive("number"),
		handletest.Literal("yes"),
		handletest.Literal("no"),
	)
	info := mustResolve(t, r, boundConditional(cond, handletest.Primitive("string")))
	assertLiteral(t, findProp(t, info, "x").Type, "no")
}

func TestConditionalLiteralWidensToPrimitive(t *testing.T) {
	r := resolver.New()
	cond := handletest.Conditional(
		handletest.TypeParam("T"),
		handletest.Primitive("string"),
		handletest.Literal("yes"),
		handletest.Literal("no"),
	)
	info := mustResolve(t, r, boundConditional(cond, handletest.Literal("a")))
	assertLiteral(t, findProp(t, info, "x").Type, "yes")
}

func TestConditionalDistributesOverUnion(t *testing.T) {
	r := resolver.New()
	cond := handletest.Conditional(
		handletest.TypeParam("T"),
		handletest.Primitive("string"),
		handletest.Literal("str"),
		handletest.Literal("other"),
	).Distributive()

	arg := handletest.Union(handletest.Primitive("string"), handletest.Primitive("number"))
	info := mustResolve(t, r, boundConditional(cond, arg))

	result := findProp(t, info, "x").Type
	assertUnionLen(t, result, 2)
	assertLiteral(t, result.UnionTypes[0], "str")
	assertLiteral(t, result.UnionTypes[1], "other")
}

func TestConditionalDistributionCollapsesIdenticalResults(t *testing.T) {
	r := resolver.New()
	cond := handletest.Conditional(
		handletest.TypeParam("T"),
		handletest.Unknown(),
		handletest.Literal("always"),
		handletest.Literal("never"),
	).Distributive()

	arg := handletest.Union(handletest.Primitive("string"), handletest.Primitive("number"))
	info := mustResolve(t, r, boundConditional(cond, arg))
	assertLiteral(t, findProp(t, info, "x").Type, "always")
}

func TestConditionalNonDistributiveTreatsUnionAsWhole(t *testing.T) {
	r := resolver.New()
	cond := handletest.Conditional(
		handletest.TypeParam("T"),
		handletest.Primitive("string"),
		handletest.Literal("str"),
		handletest.Literal("other"),
	)

	// string | number as a whole is not assignable to string.
	arg := handletest.Union(handletest.Primitive("string"), handletest.Primitive("number"))
	info := mustResolve(t, r, boundConditional(cond, arg))
	assertLiteral(t, findProp(t, info, "x").Type, "other")
}

func TestConditionalInferBindsInTrueBranch(t *testing.T) {
	r := resolver.New()
	// T extends E[] ? E : never, with T = string[]
	cond := handletest.Conditional(
		handletest.TypeParam("T"),
		handletest.Array(handletest.TypeParam("E")),
		handletest.TypeParam("E"),
		handletest.Never(),
	).WithInferNames("E")

	info := mustResolve(t, r, boundConditional(cond, handletest.Array(handletest.Primitive("string"))))
	assertPrimitive(t, findProp(t, info, "x").Type, "string")
}

func TestConditionalInferNotBoundInFalseBranch(t *testing.T) {
	r := resolver.New()
	cond := handletest.Conditional(
		handletest.TypeParam("T"),
		handletest.Array(handletest.TypeParam("E")),
		handletest.TypeParam("E"),
		handletest.Never(),
	).WithInferNames("E")

	info := mustResolve(t, r, boundConditional(cond, handletest.Primitive("number")))
	assertKind(t, findProp(t, info, "x").Type, typeinfo.KindNever)
}

func TestConditionalRepeatedInferSiteMustAgree(t *testing.T) {
	r := resolver.New()
	// T extends [E, E] ? E : never — [string, number] must not match.
	cond := handletest.Conditional(
		handletest.TypeParam("T"),
		handletest.Tuple(handletest.TypeParam("E"), handletest.TypeParam("E")),
		handletest.TypeParam("E"),
		handletest.Never(),
	).WithInferNames("E")

	arg := handletest.Tuple(handletest.Primitive("string"), handletest.Primitive("number"))
	info := mustResolve(t, r, boundConditional(cond, arg))
	assertKind(t, findProp(t, info, "x").Type, typeinfo.KindNever)
}

func TestConditionalUnboundParameterStaysSymbolic(t *testing.T) {
	r := resolver.New()
	cond := handletest.Conditional(
		handletest.TypeParam("T"),
		handletest.Primitive("string"),
		handletest.Literal("yes"),
		handletest.Literal("no"),
	)

	info := mustResolve(t, r, cond)
	assertKind(t, info, typeinfo.KindConditional)
	if info.CheckType == nil || info.CheckType.Kind != typeinfo.KindGeneric {
		t.Fatalf("expected generic check type, got %+v", info.CheckType)
	}
	if info.TrueType == nil || info.FalseType == nil {
		t.Fatal("expected both branches resolved symbolically")
	}
	assertLiteral(t, *info.TrueType, "yes")
	assertLiteral(t, *info.FalseType, "no")
}

func TestConditionalDepthExceeded(t *testing.T) {
	r := resolver.New()
	r.SetMaxConditionalDepth(0)
	cond := handletest.Conditional(
		handletest.TypeParam("T"),
		handletest.Primitive("string"),
		handletest.Literal("yes"),
		handletest.Literal("no"),
	)
	_, err := r.Resolve(cond)
	if !errors.Is(err, resolver.ErrConditionalDepthExceeded) {
		t.Fatalf("expected ErrConditionalDepthExceeded, got %v", err)
	}
}
