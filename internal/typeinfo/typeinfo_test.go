package typeinfo

import (
	"slices"
	"testing"
)

func TestUnionCollapsesEmptyToNever(t *testing.T) {
	got := Union(nil)
	if got.Kind != KindNever {
		t.Errorf("expected never, got %s", got.Kind)
	}
}

func TestUnionUnwrapsSingleton(t *testing.T) {
	got := Union([]TypeInfo{Primitive("string")})
	if got.Kind != KindPrimitive || got.Name != "string" {
		t.Errorf("expected primitive string, got %+v", got)
	}
}

func TestUnionKeepsMemberOrder(t *testing.T) {
	got := Union([]TypeInfo{Primitive("number"), Primitive("string")})
	if got.Kind != KindUnion || len(got.UnionTypes) != 2 {
		t.Fatalf("expected 2-member union, got %+v", got)
	}
	if got.UnionTypes[0].Name != "number" || got.UnionTypes[1].Name != "string" {
		t.Errorf("member order not preserved: %+v", got.UnionTypes)
	}
}

func TestEqualIdenticalTrees(t *testing.T) {
	a := TypeInfo{Kind: KindArray, ElementType: &TypeInfo{Kind: KindPrimitive, Name: "string"}}
	b := TypeInfo{Kind: KindArray, ElementType: &TypeInfo{Kind: KindPrimitive, Name: "string"}}
	if !a.Equal(b) {
		t.Error("identical trees must compare equal")
	}
}

func TestFingerprintDistinguishesLiteralValues(t *testing.T) {
	if Literal("1").Fingerprint() == Literal(1.0).Fingerprint() {
		t.Error(`literal "1" and literal 1 must not share a fingerprint`)
	}
	if Literal(true).Fingerprint() == Literal("true").Fingerprint() {
		t.Error(`literal true and literal "true" must not share a fingerprint`)
	}
}

func TestFingerprintDistinguishesPropertyFlags(t *testing.T) {
	base := func() TypeInfo {
		return TypeInfo{Kind: KindObject, Properties: []PropertyInfo{
			{Name: "id", Type: Primitive("string")},
		}}
	}
	optional := base()
	optional.Properties[0].Optional = true
	readonly := base()
	readonly.Properties[0].Readonly = true

	if base().Fingerprint() == optional.Fingerprint() {
		t.Error("optional flag must change the fingerprint")
	}
	if base().Fingerprint() == readonly.Fingerprint() {
		t.Error("readonly flag must change the fingerprint")
	}
	if optional.Fingerprint() == readonly.Fingerprint() {
		t.Error("optional and readonly must fingerprint differently")
	}
}

func TestFingerprintDistinguishesPropertyOrder(t *testing.T) {
	ab := TypeInfo{Kind: KindObject, Properties: []PropertyInfo{
		{Name: "a", Type: Primitive("string")},
		{Name: "b", Type: Primitive("number")},
	}}
	ba := TypeInfo{Kind: KindObject, Properties: []PropertyInfo{
		{Name: "b", Type: Primitive("number")},
		{Name: "a", Type: Primitive("string")},
	}}
	if ab.Fingerprint() == ba.Fingerprint() {
		t.Error("property order is declaration order and must be significant")
	}
}

func TestFingerprintDistinguishesKinds(t *testing.T) {
	ref := Reference("User")
	obj := TypeInfo{Kind: KindObject, Name: "User"}
	if ref.Fingerprint() == obj.Fingerprint() {
		t.Error("reference and object with the same name must differ")
	}
}

func TestReferencedNamesSortedAndDeduplicated(t *testing.T) {
	tree := TypeInfo{Kind: KindObject, Properties: []PropertyInfo{
		{Name: "user", Type: Reference("User")},
		{Name: "owner", Type: Reference("User")},
		{Name: "status", Type: TypeInfo{Kind: KindEnum, Name: "Status"}},
		{Name: "tags", Type: TypeInfo{Kind: KindArray, ElementType: ptr(Reference("Tag"))}},
	}}
	got := tree.ReferencedNames()
	want := []string{"Status", "Tag", "User"}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestReferencedNamesWalksConditionalParts(t *testing.T) {
	tree := TypeInfo{
		Kind:        KindConditional,
		CheckType:   ptr(TypeInfo{Kind: KindGeneric, Name: "T"}),
		ExtendsType: ptr(Reference("Base")),
		TrueType:    ptr(Reference("Yes")),
		FalseType:   ptr(Reference("No")),
	}
	want := []string{"Base", "No", "Yes"}
	if got := tree.ReferencedNames(); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestReferencedNamesIgnoresPrimitivesAndGenerics(t *testing.T) {
	tree := Union([]TypeInfo{
		Primitive("string"),
		{Kind: KindGeneric, Name: "T"},
	})
	if got := tree.ReferencedNames(); len(got) != 0 {
		t.Errorf("expected no referenced names, got %v", got)
	}
}

func TestContainsGeneric(t *testing.T) {
	names := map[string]bool{"T": true}
	tree := TypeInfo{Kind: KindObject, Properties: []PropertyInfo{
		{Name: "value", Type: TypeInfo{Kind: KindArray, ElementType: ptr(TypeInfo{Kind: KindGeneric, Name: "T"})}},
	}}
	if !tree.ContainsGeneric(names) {
		t.Error("expected T found through array element")
	}
	if tree.ContainsGeneric(map[string]bool{"U": true}) {
		t.Error("U does not occur in the tree")
	}
}

func TestContainsGenericIgnoresMatchingPropertyNames(t *testing.T) {
	tree := TypeInfo{Kind: KindObject, Properties: []PropertyInfo{
		{Name: "T", Type: Primitive("string")},
	}}
	if tree.ContainsGeneric(map[string]bool{"T": true}) {
		t.Error("property names are not generic references")
	}
}

func TestContainsGenericChecksIndexSignature(t *testing.T) {
	tree := TypeInfo{Kind: KindObject, IndexSignature: &IndexSignature{
		KeyType:   "string",
		ValueType: TypeInfo{Kind: KindGeneric, Name: "V"},
	}}
	if !tree.ContainsGeneric(map[string]bool{"V": true}) {
		t.Error("expected V found through index signature value")
	}
}

func TestTypeRegistry(t *testing.T) {
	r := NewTypeRegistry()
	if r.Has("User") {
		t.Error("empty registry must not contain User")
	}

	info := TypeInfo{Kind: KindObject, Name: "User"}
	r.Register("User", &info)

	if !r.Has("User") {
		t.Error("expected User registered")
	}
	got, ok := r.Lookup("User")
	if !ok || got.Name != "User" {
		t.Fatalf("lookup failed: %+v %v", got, ok)
	}
	if _, ok := r.Lookup("Order"); ok {
		t.Error("Order was never registered")
	}
}

func ptr(t TypeInfo) *TypeInfo { return &t }
