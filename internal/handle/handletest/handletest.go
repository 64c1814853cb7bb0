// Package handletest provides synthetic, in-memory type handles for testing
// the resolver without a running checker. Handles are built with constructor
// functions and mutated before use; they satisfy handle.Type.
package handletest

import (
	"sync/atomic"

	"github.com/fluentgen/fluentgen/internal/handle"
)

var nextID atomic.Uint64

// Handle is a synthetic handle.Type. The zero value is unusable; always build
// handles through the package constructors.
type Handle struct {
	id uint64

	any, unknown, never bool
	primitive           string
	literal             any
	hasLiteral          bool
	enum                bool
	array               bool
	tuple               bool
	union               bool
	intersection        bool
	object              bool
	function            bool
	typeParameter       bool
	keyof               bool
	typeofOp            bool
	indexedAccess       bool

	name      string
	aliasName string
	aliasArgs []handle.Type

	element     handle.Type
	elems       []handle.Type
	members     []handle.Type
	props       []handle.Property
	indexSig    *handle.IndexSignature
	typeArgs    []handle.Type
	typeParams  []handle.TypeParameter
	callSigs    int
	conditional *handle.Conditional
	target      handle.Type
	accessObj   handle.Type
	accessIdx   handle.Type
	constraint  handle.Type
	sourceFile  string
}

func newHandle() *Handle {
	return &Handle{id: nextID.Add(1)}
}

// Any returns a handle for the any type.
func Any() *Handle {
	h := newHandle()
	h.any = true
	return h
}

// Unknown returns a handle for the unknown type.
func Unknown() *Handle {
	h := newHandle()
	h.unknown = true
	return h
}

// Never returns a handle for the never type.
func Never() *Handle {
	h := newHandle()
	h.never = true
	return h
}

// Primitive returns a handle for a built-in scalar type.
func Primitive(name string) *Handle {
	h := newHandle()
	h.primitive = name
	return h
}

// Literal returns a handle for a literal type (string, float64 or bool).
func Literal(value any) *Handle {
	h := newHandle()
	h.literal = value
	h.hasLiteral = true
	return h
}

// Enum returns a handle for a named enum.
func Enum(name string) *Handle {
	h := newHandle()
	h.enum = true
	h.name = name
	return h
}

// Function returns a handle for a callable type.
func Function(name string) *Handle {
	h := newHandle()
	h.function = true
	h.name = name
	h.callSigs = 1
	return h
}

// Array returns a handle for elem[].
func Array(elem handle.Type) *Handle {
	h := newHandle()
	h.array = true
	h.element = elem
	return h
}

// Tuple returns a handle for an ordered tuple.
func Tuple(elems ...handle.Type) *Handle {
	h := newHandle()
	h.tuple = true
	h.elems = elems
	return h
}

// Union returns a handle for a union of members.
func Union(members ...handle.Type) *Handle {
	h := newHandle()
	h.union = true
	h.members = members
	return h
}

// Intersection returns a handle for an intersection of members.
func Intersection(members ...handle.Type) *Handle {
	h := newHandle()
	h.intersection = true
	h.members = members
	return h
}

// Object returns a handle for an object type. An empty name marks an
// anonymous shape.
func Object(name string, props ...handle.Property) *Handle {
	h := newHandle()
	h.object = true
	h.name = name
	h.props = props
	return h
}

// TypeParam returns a handle for a type parameter reference.
func TypeParam(name string) *Handle {
	h := newHandle()
	h.typeParameter = true
	h.name = name
	return h
}

// Keyof returns a handle for keyof target.
func Keyof(target handle.Type) *Handle {
	h := newHandle()
	h.keyof = true
	h.target = target
	return h
}

// Typeof returns a handle for typeof target.
func Typeof(target handle.Type) *Handle {
	h := newHandle()
	h.typeofOp = true
	h.target = target
	return h
}

// IndexedAccess returns a handle for object[index].
func IndexedAccess(object, index handle.Type) *Handle {
	h := newHandle()
	h.indexedAccess = true
	h.accessObj = object
	h.accessIdx = index
	return h
}

// Conditional returns a handle for check extends extendsT ? trueT : falseT.
func Conditional(check, extendsT, trueT, falseT handle.Type) *Handle {
	h := newHandle()
	h.conditional = &handle.Conditional{
		Check:   check,
		Extends: extendsT,
		True:    trueT,
		False:   falseT,
	}
	return h
}

// Alias returns a handle for an alias application the host did not expand
// (e.g. Pick<User, "id">). No shape predicate holds; recognition happens
// through AliasName and AliasTypeArguments.
func Alias(name string, args ...handle.Type) *Handle {
	h := newHandle()
	h.aliasName = name
	h.aliasArgs = args
	return h
}

// Prop builds a required property.
func Prop(name string, t handle.Type) handle.Property {
	return handle.Property{Name: name, Type: t}
}

// OptionalProp builds an optional property.
func OptionalProp(name string, t handle.Type) handle.Property {
	return handle.Property{Name: name, Type: t, Optional: true}
}

// ReadonlyProp builds a readonly property.
func ReadonlyProp(name string, t handle.Type) handle.Property {
	return handle.Property{Name: name, Type: t, Readonly: true}
}

// AddProperty appends a property after construction. Useful for building
// self-referential objects.
func (h *Handle) AddProperty(p handle.Property) *Handle {
	h.props = append(h.props, p)
	return h
}

// WithAlias marks the handle as an alias application (e.g. Pick<User, "id">).
func (h *Handle) WithAlias(name string, args ...handle.Type) *Handle {
	h.aliasName = name
	h.aliasArgs = args
	return h
}

// WithIndexSignature attaches an index signature.
func (h *Handle) WithIndexSignature(keyType string, valueType handle.Type, readonly bool) *Handle {
	h.indexSig = &handle.IndexSignature{KeyType: keyType, ValueType: valueType, Readonly: readonly}
	return h
}

// WithTypeParameters attaches generic parameter declarations.
func (h *Handle) WithTypeParameters(params ...handle.TypeParameter) *Handle {
	h.typeParams = params
	return h
}

// WithTypeArguments attaches applied generic arguments.
func (h *Handle) WithTypeArguments(args ...handle.Type) *Handle {
	h.typeArgs = args
	return h
}

// WithConstraint sets the base constraint the host would report.
func (h *Handle) WithConstraint(c handle.Type) *Handle {
	h.constraint = c
	return h
}

// WithSourceFile sets the declaring file path.
func (h *Handle) WithSourceFile(path string) *Handle {
	h.sourceFile = path
	return h
}

// Distributive marks a conditional handle as distributing over unions and
// declares its infer binding names.
func (h *Handle) Distributive(inferNames ...string) *Handle {
	if h.conditional != nil {
		h.conditional.Distributive = true
		h.conditional.InferNames = inferNames
	}
	return h
}

// WithInferNames declares infer bindings on a non-distributive conditional.
func (h *Handle) WithInferNames(names ...string) *Handle {
	if h.conditional != nil {
		h.conditional.InferNames = names
	}
	return h
}

func (h *Handle) ID() uint64             { return h.id }
func (h *Handle) IsAny() bool            { return h.any }
func (h *Handle) IsUnknown() bool        { return h.unknown }
func (h *Handle) IsNever() bool          { return h.never }
func (h *Handle) IsPrimitive() bool      { return h.primitive != "" }
func (h *Handle) IsLiteral() bool        { return h.hasLiteral }
func (h *Handle) IsEnum() bool           { return h.enum }
func (h *Handle) IsArray() bool          { return h.array }
func (h *Handle) IsTuple() bool          { return h.tuple }
func (h *Handle) IsUnion() bool          { return h.union }
func (h *Handle) IsIntersection() bool   { return h.intersection }
func (h *Handle) IsObject() bool         { return h.object }
func (h *Handle) IsFunction() bool       { return h.function }
func (h *Handle) IsTypeParameter() bool  { return h.typeParameter }
func (h *Handle) IsConditional() bool    { return h.conditional != nil }
func (h *Handle) IsKeyof() bool          { return h.keyof }
func (h *Handle) IsTypeof() bool         { return h.typeofOp }
func (h *Handle) IsIndexedAccess() bool  { return h.indexedAccess }
func (h *Handle) Name() string           { return h.name }
func (h *Handle) AliasName() string      { return h.aliasName }
func (h *Handle) PrimitiveName() string  { return h.primitive }
func (h *Handle) LiteralValue() any      { return h.literal }
func (h *Handle) ElementType() handle.Type { return h.element }
func (h *Handle) CallSignatureCount() int  { return h.callSigs }
func (h *Handle) SourceFile() string       { return h.sourceFile }

func (h *Handle) AliasTypeArguments() []handle.Type { return h.aliasArgs }
func (h *Handle) TupleElements() []handle.Type      { return h.elems }
func (h *Handle) Members() []handle.Type            { return h.members }
func (h *Handle) Properties() []handle.Property     { return h.props }
func (h *Handle) TypeArguments() []handle.Type      { return h.typeArgs }

func (h *Handle) IndexSignature() *handle.IndexSignature  { return h.indexSig }
func (h *Handle) TypeParameters() []handle.TypeParameter  { return h.typeParams }
func (h *Handle) Conditional() *handle.Conditional        { return h.conditional }
func (h *Handle) Target() handle.Type                     { return h.target }
func (h *Handle) BaseConstraint() handle.Type             { return h.constraint }

func (h *Handle) IndexedAccess() (handle.Type, handle.Type) {
	return h.accessObj, h.accessIdx
}
