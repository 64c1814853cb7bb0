// Package handle defines the capability contract for type handles — opaque
// objects representing one occurrence of a type in the source declarations.
// Handles are supplied by the host type system (the tsgo checker in
// production, synthetic builders in tests) and are queried through predicates
// and structural accessors rather than inspected directly.
package handle

// Type is one type occurrence. The predicate set is fixed and finite; the
// resolver dispatches on the first predicate that matches. Accessors whose
// predicate does not hold return zero values.
type Type interface {
	// ID returns a stable identity for this type within one resolution
	// universe. Two handles with equal IDs denote the same checker type.
	ID() uint64

	IsAny() bool
	IsUnknown() bool
	IsNever() bool
	// IsPrimitive covers string, number, boolean, bigint, symbol, null,
	// undefined and void.
	IsPrimitive() bool
	IsLiteral() bool
	IsEnum() bool
	IsArray() bool
	IsTuple() bool
	IsUnion() bool
	IsIntersection() bool
	IsObject() bool
	IsFunction() bool
	IsTypeParameter() bool
	IsConditional() bool
	IsKeyof() bool
	IsTypeof() bool
	IsIndexedAccess() bool

	// Name returns the declared symbol name, or "" for anonymous and
	// checker-internal shapes (which must render inline, never be imported).
	Name() string
	// AliasName returns the type alias applied at this occurrence, if any
	// (e.g. "Pick" for Pick<User, "id">). Utility recognition keys on it.
	AliasName() string
	// AliasTypeArguments returns the arguments applied to the alias.
	AliasTypeArguments() []Type

	// PrimitiveName returns the primitive's name when IsPrimitive holds.
	PrimitiveName() string
	// LiteralValue returns the fixed value when IsLiteral holds
	// (string, float64 or bool).
	LiteralValue() any

	// ElementType returns the array element type when IsArray holds.
	ElementType() Type
	// TupleElements returns the ordered element types when IsTuple holds.
	TupleElements() []Type
	// Members returns union or intersection members.
	Members() []Type
	// Properties returns the declared properties when IsObject holds, in
	// declaration order.
	Properties() []Property
	// IndexSignature returns the object's index signature, or nil.
	IndexSignature() *IndexSignature
	// TypeArguments returns applied generic arguments, positional with
	// TypeParameters.
	TypeArguments() []Type
	// TypeParameters returns the generic parameter declarations on an
	// object type.
	TypeParameters() []TypeParameter
	// CallSignatureCount returns the number of call signatures.
	CallSignatureCount() int

	// Conditional returns the four parts of a conditional type, or nil when
	// IsConditional does not hold.
	Conditional() *Conditional
	// Target returns the operand of keyof/typeof, or nil.
	Target() Type
	// IndexedAccess returns the object and index operands of T[K], or nils.
	IndexedAccess() (object Type, index Type)

	// BaseConstraint returns the host type system's base constraint for
	// type parameters and for conditional/keyof/indexed-access shapes the
	// checker has already collapsed. Returns nil when unavailable.
	BaseConstraint() Type

	// SourceFile returns the path of the file declaring this type, or "".
	SourceFile() string
}

// Property is one declared property of an object type handle.
type Property struct {
	Name     string
	Type     Type
	Optional bool
	Readonly bool
	// JSDoc is the documentation comment attached to the declaration,
	// verbatim.
	JSDoc string
}

// TypeParameter is one generic parameter declaration.
type TypeParameter struct {
	Name       string
	Constraint Type // nil when unconstrained
	Default    Type // nil when no default
}

// IndexSignature is an object's index signature.
type IndexSignature struct {
	KeyType   string // "string", "number" or "symbol"
	ValueType Type
	Readonly  bool
}

// Conditional is the structure of a `Check extends Extends ? True : False`
// type that the host type system has not collapsed.
type Conditional struct {
	Check   Type
	Extends Type
	True    Type
	False   Type
	// Distributive is true when Check is a naked type parameter, making the
	// conditional distribute over union arguments.
	Distributive bool
	// InferNames lists the infer bindings declared inside Extends, each
	// tracked independently during evaluation.
	InferNames []string
}
