// Package typeinfo defines the normalized type description tree produced by
// the resolver — a serializable representation of TypeScript types suitable
// for fluent builder generation.
package typeinfo

import (
	"fmt"
	"sort"
	"strings"
)

// Kind represents the primary classification of a type.
type Kind string

const (
	KindPrimitive    Kind = "primitive"    // string, number, boolean, bigint, symbol, null, undefined, void
	KindLiteral      Kind = "literal"      // string literal, number literal, boolean literal
	KindArray        Kind = "array"        // T[]
	KindTuple        Kind = "tuple"        // [A, B, C]
	KindUnion        Kind = "union"        // A | B
	KindIntersection Kind = "intersection" // A & B
	KindObject       Kind = "object"       // interface, class, type alias with properties
	KindEnum         Kind = "enum"         // named enum
	KindReference    Kind = "reference"    // named pointer to another declaration
	KindGeneric      Kind = "generic"      // free type parameter reference
	KindFunction     Kind = "function"     // callable type
	KindKeyof        Kind = "keyof"        // keyof T
	KindTypeof       Kind = "typeof"       // typeof expr
	KindIndex        Kind = "index"        // T[K] indexed access
	KindConditional  Kind = "conditional"  // A extends B ? T : F, still open
	KindUnknown      Kind = "unknown"
	KindNever        Kind = "never"
)

// TypeInfo is the closed tagged-variant tree describing one type occurrence.
// Kind discriminates which fields are meaningful. Nodes are immutable once
// returned by the resolver; consumers may share subtrees by reference.
type TypeInfo struct {
	Kind Kind `json:"kind"`

	// Name is the type's name: the primitive name for KindPrimitive, the
	// declaration name for KindObject/KindEnum/KindReference, the parameter
	// name for KindGeneric. Empty on an object marks an anonymous shape that
	// must render inline, never be imported.
	Name string `json:"name,omitempty"`

	// Literal holds the fixed value for KindLiteral (string, float64 or bool).
	Literal any `json:"literal,omitempty"`

	// ElementType holds the element type for KindArray.
	ElementType *TypeInfo `json:"elementType,omitempty"`

	// Elements holds the ordered element types for KindTuple.
	Elements []TypeInfo `json:"elements,omitempty"`

	// UnionTypes holds the member types for KindUnion, order-preserving.
	UnionTypes []TypeInfo `json:"unionTypes,omitempty"`

	// IntersectionTypes holds the member types for KindIntersection.
	IntersectionTypes []TypeInfo `json:"intersectionTypes,omitempty"`

	// Properties holds the declared properties for KindObject, in
	// declaration order.
	Properties []PropertyInfo `json:"properties,omitempty"`

	// GenericParams holds the generic parameter declarations still live on a
	// KindObject after dead-parameter elision.
	GenericParams []GenericParam `json:"genericParams,omitempty"`

	// IndexSignature holds the index signature for KindObject, captured
	// separately from the declared property list.
	IndexSignature *IndexSignature `json:"indexSignature,omitempty"`

	// TypeArguments holds applied generic arguments for
	// KindObject/KindReference/KindGeneric.
	TypeArguments []TypeInfo `json:"typeArguments,omitempty"`

	// UnresolvedGenerics lists parameter names that remained free inside a
	// KindObject's properties after substitution.
	UnresolvedGenerics []string `json:"unresolvedGenerics,omitempty"`

	// Target holds the operand for KindKeyof and KindTypeof.
	Target *TypeInfo `json:"target,omitempty"`

	// ObjectType and IndexType hold the two operands of a KindIndex access.
	ObjectType *TypeInfo `json:"objectType,omitempty"`
	IndexType  *TypeInfo `json:"indexType,omitempty"`

	// CheckType, ExtendsType, TrueType and FalseType hold the four parts of
	// a KindConditional that is still open over a free generic parameter.
	CheckType   *TypeInfo `json:"checkType,omitempty"`
	ExtendsType *TypeInfo `json:"extendsType,omitempty"`
	TrueType    *TypeInfo `json:"trueType,omitempty"`
	FalseType   *TypeInfo `json:"falseType,omitempty"`
}

// PropertyInfo describes one declared property of an object type.
// Optional is recorded as declared; stripping an explicit undefined arm from
// the property's union is a consumer concern, not the resolver's.
type PropertyInfo struct {
	Name     string   `json:"name"`
	Type     TypeInfo `json:"type"`
	Optional bool     `json:"optional,omitempty"`
	Readonly bool     `json:"readonly,omitempty"`
	// JSDoc is the documentation comment attached to the property
	// declaration, captured verbatim.
	JSDoc string `json:"jsDoc,omitempty"`
}

// GenericParam describes one generic parameter declaration.
// A parameter with neither constraint nor default is fully free.
type GenericParam struct {
	Name       string    `json:"name"`
	Constraint *TypeInfo `json:"constraint,omitempty"`
	Default    *TypeInfo `json:"default,omitempty"`
}

// IndexSignature describes an index signature like [key: string]: T.
type IndexSignature struct {
	KeyType   string   `json:"keyType"` // "string", "number" or "symbol"
	ValueType TypeInfo `json:"valueType"`
	Readonly  bool     `json:"readonly,omitempty"`
}

// ResolvedType is the resolver's output for one top-level declaration.
type ResolvedType struct {
	Name       string   `json:"name"`
	SourceFile string   `json:"sourceFile,omitempty"`
	TypeInfo   TypeInfo `json:"typeInfo"`
	// Imports lists the named declarations this type references directly or
	// transitively, for downstream import generation.
	Imports []string `json:"imports,omitempty"`
	// Dependencies holds the resolved declarations this one needs.
	Dependencies []*ResolvedType `json:"dependencies,omitempty"`
}

// Primitive returns a primitive TypeInfo with the given name.
func Primitive(name string) TypeInfo {
	return TypeInfo{Kind: KindPrimitive, Name: name}
}

// Never returns the never TypeInfo.
func Never() TypeInfo {
	return TypeInfo{Kind: KindNever}
}

// Unknown returns the unknown TypeInfo.
func Unknown() TypeInfo {
	return TypeInfo{Kind: KindUnknown}
}

// Literal returns a literal TypeInfo holding the given value.
func Literal(value any) TypeInfo {
	return TypeInfo{Kind: KindLiteral, Literal: value}
}

// Reference returns a by-name reference to a declaration.
func Reference(name string) TypeInfo {
	return TypeInfo{Kind: KindReference, Name: name}
}

// Union wraps members into a union, unwrapping the degenerate cases:
// zero members collapse to never, a single member is returned as-is.
func Union(members []TypeInfo) TypeInfo {
	switch len(members) {
	case 0:
		return Never()
	case 1:
		return members[0]
	}
	return TypeInfo{Kind: KindUnion, UnionTypes: members}
}

// Equal reports whether two trees are structurally identical.
func (t TypeInfo) Equal(other TypeInfo) bool {
	return t.Fingerprint() == other.Fingerprint()
}

// Fingerprint returns a canonical textual form of the tree. Two trees share a
// fingerprint exactly when they are structurally identical. Used for union
// deduplication, cache keys and the assignability heuristic.
func (t TypeInfo) Fingerprint() string {
	var sb strings.Builder
	t.writeFingerprint(&sb)
	return sb.String()
}

func (t TypeInfo) writeFingerprint(sb *strings.Builder) {
	sb.WriteString(string(t.Kind))
	if t.Name != "" {
		sb.WriteByte(':')
		sb.WriteString(t.Name)
	}
	if t.Literal != nil {
		fmt.Fprintf(sb, "=%#v", t.Literal)
	}
	writeChild := func(label string, child *TypeInfo) {
		if child == nil {
			return
		}
		sb.WriteString(label)
		sb.WriteByte('(')
		child.writeFingerprint(sb)
		sb.WriteByte(')')
	}
	writeList := func(label string, children []TypeInfo) {
		if len(children) == 0 {
			return
		}
		sb.WriteString(label)
		sb.WriteByte('[')
		for i, c := range children {
			if i > 0 {
				sb.WriteByte(',')
			}
			c.writeFingerprint(sb)
		}
		sb.WriteByte(']')
	}
	writeChild("elem", t.ElementType)
	writeList("tuple", t.Elements)
	writeList("union", t.UnionTypes)
	writeList("inter", t.IntersectionTypes)
	writeList("args", t.TypeArguments)
	if len(t.Properties) > 0 {
		sb.WriteString("props[")
		for i, p := range t.Properties {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(p.Name)
			if p.Optional {
				sb.WriteByte('?')
			}
			if p.Readonly {
				sb.WriteByte('!')
			}
			sb.WriteByte(':')
			p.Type.writeFingerprint(sb)
		}
		sb.WriteByte(']')
	}
	if t.IndexSignature != nil {
		sb.WriteString("index[" + t.IndexSignature.KeyType + ":")
		t.IndexSignature.ValueType.writeFingerprint(sb)
		sb.WriteByte(']')
	}
	if len(t.GenericParams) > 0 {
		sb.WriteString("generics[")
		for i, g := range t.GenericParams {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(g.Name)
			if g.Constraint != nil {
				sb.WriteString(" extends ")
				g.Constraint.writeFingerprint(sb)
			}
			if g.Default != nil {
				sb.WriteString(" = ")
				g.Default.writeFingerprint(sb)
			}
		}
		sb.WriteByte(']')
	}
	writeChild("target", t.Target)
	writeChild("obj", t.ObjectType)
	writeChild("idx", t.IndexType)
	writeChild("check", t.CheckType)
	writeChild("extends", t.ExtendsType)
	writeChild("true", t.TrueType)
	writeChild("false", t.FalseType)
}

// ReferencedNames collects the names of all Reference and Enum nodes in the
// tree, deduplicated and sorted. Nested named objects are emitted as
// references by the resolver, so they are covered too. Used for import
// generation and dependency discovery.
func (t TypeInfo) ReferencedNames() []string {
	seen := make(map[string]bool)
	t.collectReferences(seen)
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (t TypeInfo) collectReferences(seen map[string]bool) {
	switch t.Kind {
	case KindReference, KindEnum:
		if t.Name != "" {
			seen[t.Name] = true
		}
	}
	each := func(child *TypeInfo) {
		if child != nil {
			child.collectReferences(seen)
		}
	}
	each(t.ElementType)
	each(t.Target)
	each(t.ObjectType)
	each(t.IndexType)
	each(t.CheckType)
	each(t.ExtendsType)
	each(t.TrueType)
	each(t.FalseType)
	for _, c := range t.Elements {
		c.collectReferences(seen)
	}
	for _, c := range t.UnionTypes {
		c.collectReferences(seen)
	}
	for _, c := range t.IntersectionTypes {
		c.collectReferences(seen)
	}
	for _, c := range t.TypeArguments {
		c.collectReferences(seen)
	}
	for _, p := range t.Properties {
		p.Type.collectReferences(seen)
	}
	if t.IndexSignature != nil {
		t.IndexSignature.ValueType.collectReferences(seen)
	}
	for _, g := range t.GenericParams {
		each(g.Constraint)
		each(g.Default)
	}
}

// ContainsGeneric reports whether the tree contains a free generic reference
// with one of the given names. Used for dead generic parameter elision.
func (t TypeInfo) ContainsGeneric(names map[string]bool) bool {
	if t.Kind == KindGeneric && names[t.Name] {
		return true
	}
	has := func(child *TypeInfo) bool {
		return child != nil && child.ContainsGeneric(names)
	}
	if has(t.ElementType) || has(t.Target) || has(t.ObjectType) || has(t.IndexType) ||
		has(t.CheckType) || has(t.ExtendsType) || has(t.TrueType) || has(t.FalseType) {
		return true
	}
	for _, c := range t.Elements {
		if c.ContainsGeneric(names) {
			return true
		}
	}
	for _, c := range t.UnionTypes {
		if c.ContainsGeneric(names) {
			return true
		}
	}
	for _, c := range t.IntersectionTypes {
		if c.ContainsGeneric(names) {
			return true
		}
	}
	for _, c := range t.TypeArguments {
		if c.ContainsGeneric(names) {
			return true
		}
	}
	for _, p := range t.Properties {
		if p.Type.ContainsGeneric(names) {
			return true
		}
	}
	if t.IndexSignature != nil && t.IndexSignature.ValueType.ContainsGeneric(names) {
		return true
	}
	return false
}

// TypeRegistry tracks named declarations resolved during one session, to
// support by-name references and utility expansion over named operands.
type TypeRegistry struct {
	Types map[string]*TypeInfo
	// Files maps a declaration name to its defining source file.
	Files map[string]string
}

// NewTypeRegistry creates an empty type registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		Types: make(map[string]*TypeInfo),
		Files: make(map[string]string),
	}
}

// Register adds a named type to the registry.
func (r *TypeRegistry) Register(name string, t *TypeInfo) {
	r.Types[name] = t
}

// Has checks if a named type is already registered.
func (r *TypeRegistry) Has(name string) bool {
	_, ok := r.Types[name]
	return ok
}

// Lookup returns the registered type for a name.
func (r *TypeRegistry) Lookup(name string) (*TypeInfo, bool) {
	t, ok := r.Types[name]
	return t, ok
}
