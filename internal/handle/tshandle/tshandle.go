// Package tshandle adapts tsgo checker types to the handle capability
// contract consumed by the resolver. The adapter is a thin mapping from
// checker type flags and accessors onto predicates; it never interprets
// type semantics itself.
package tshandle

import (
	"fmt"
	"strings"

	"github.com/microsoft/typescript-go/shim/ast"
	shimchecker "github.com/microsoft/typescript-go/shim/checker"

	"github.com/fluentgen/fluentgen/internal/handle"
)

// Adapter wraps one checker and produces handles for its types.
type Adapter struct {
	checker *shimchecker.Checker
}

// NewAdapter creates an adapter over the given checker.
func NewAdapter(checker *shimchecker.Checker) *Adapter {
	return &Adapter{checker: checker}
}

// Wrap returns a handle for a checker type. Nil types yield a nil handle.
func (a *Adapter) Wrap(t *shimchecker.Type) handle.Type {
	if t == nil {
		return nil
	}
	return &tsType{a: a, t: t}
}

// tsType implements handle.Type over a checker type.
type tsType struct {
	a *Adapter
	t *shimchecker.Type
}

func (h *tsType) ID() uint64 {
	return uint64(h.t.Id())
}

func (h *tsType) flags() shimchecker.TypeFlags {
	return h.t.Flags()
}

func (h *tsType) IsAny() bool     { return h.flags()&shimchecker.TypeFlagsAny != 0 }
func (h *tsType) IsUnknown() bool { return h.flags()&shimchecker.TypeFlagsUnknown != 0 }
func (h *tsType) IsNever() bool   { return h.flags()&shimchecker.TypeFlagsNever != 0 }

const primitiveFlags = shimchecker.TypeFlagsString |
	shimchecker.TypeFlagsNumber |
	shimchecker.TypeFlagsBoolean |
	shimchecker.TypeFlagsBigInt |
	shimchecker.TypeFlagsESSymbol |
	shimchecker.TypeFlagsNull |
	shimchecker.TypeFlagsUndefined |
	shimchecker.TypeFlagsVoid

const literalFlags = shimchecker.TypeFlagsStringLiteral |
	shimchecker.TypeFlagsNumberLiteral |
	shimchecker.TypeFlagsBooleanLiteral |
	shimchecker.TypeFlagsBigIntLiteral

func (h *tsType) IsPrimitive() bool {
	return h.flags()&primitiveFlags != 0
}

func (h *tsType) IsLiteral() bool {
	// Boolean literals inside a plain `boolean` (true | false) are handled
	// by the primitive predicate, which wins in dispatch order.
	return h.flags()&literalFlags != 0 && h.flags()&shimchecker.TypeFlagsBoolean == 0
}

// IsEnum reports an enum container: a union of enum literal members.
func (h *tsType) IsEnum() bool {
	return h.flags()&shimchecker.TypeFlagsEnumLiteral != 0 &&
		h.flags()&shimchecker.TypeFlagsUnion != 0 &&
		h.Name() != ""
}

func (h *tsType) IsArray() bool {
	return h.flags()&shimchecker.TypeFlagsObject != 0 &&
		shimchecker.Checker_isArrayType(h.a.checker, h.t)
}

func (h *tsType) IsTuple() bool {
	return h.flags()&shimchecker.TypeFlagsObject != 0 && shimchecker.IsTupleType(h.t)
}

func (h *tsType) IsUnion() bool {
	return h.flags()&shimchecker.TypeFlagsUnion != 0 && !h.IsEnum()
}

func (h *tsType) IsIntersection() bool {
	return h.flags()&shimchecker.TypeFlagsIntersection != 0
}

func (h *tsType) IsObject() bool {
	return h.flags()&shimchecker.TypeFlagsObject != 0 && !h.IsArray() && !h.IsTuple() && !h.IsFunction()
}

// IsFunction reports a pure callable: call signatures and no properties.
func (h *tsType) IsFunction() bool {
	if h.flags()&shimchecker.TypeFlagsObject == 0 {
		return false
	}
	sigs := shimchecker.Checker_getSignaturesOfType(h.a.checker, h.t, shimchecker.SignatureKindCall)
	if len(sigs) == 0 {
		return false
	}
	props := shimchecker.Checker_getPropertiesOfType(h.a.checker, h.t)
	return len(props) == 0
}

func (h *tsType) IsTypeParameter() bool {
	return h.flags()&shimchecker.TypeFlagsTypeParameter != 0
}

func (h *tsType) IsConditional() bool {
	return h.flags()&shimchecker.TypeFlagsConditional != 0
}

func (h *tsType) IsKeyof() bool {
	return h.flags()&shimchecker.TypeFlagsIndex != 0
}

// IsTypeof is always false: the checker resolves typeof expressions to the
// value's type before we ever see a handle.
func (h *tsType) IsTypeof() bool { return false }

func (h *tsType) IsIndexedAccess() bool {
	return h.flags()&shimchecker.TypeFlagsIndexedAccess != 0
}

// Name returns the declared symbol name, filtering checker-internal
// anonymous names (__type, __object, instantiation names starting with
// '\xfe') so anonymous shapes render inline instead of being imported.
func (h *tsType) Name() string {
	if h.flags()&shimchecker.TypeFlagsObject != 0 {
		objFlags := shimchecker.Type_objectFlags(h.t)
		if objFlags&shimchecker.ObjectFlagsAnonymous != 0 {
			return ""
		}
	}
	sym := h.t.Symbol()
	if sym == nil {
		return ""
	}
	return filterInternalName(sym.Name)
}

func (h *tsType) AliasName() string {
	alias := shimchecker.Type_alias(h.t)
	if alias == nil {
		return ""
	}
	sym := alias.Symbol()
	if sym == nil {
		return ""
	}
	return filterInternalName(sym.Name)
}

func (h *tsType) AliasTypeArguments() []handle.Type {
	alias := shimchecker.Type_alias(h.t)
	if alias == nil {
		return nil
	}
	return h.wrapAll(alias.TypeArguments())
}

func (h *tsType) PrimitiveName() string {
	flags := h.flags()
	switch {
	case flags&shimchecker.TypeFlagsString != 0:
		return "string"
	case flags&shimchecker.TypeFlagsNumber != 0:
		return "number"
	case flags&shimchecker.TypeFlagsBoolean != 0:
		return "boolean"
	case flags&shimchecker.TypeFlagsBigInt != 0:
		return "bigint"
	case flags&shimchecker.TypeFlagsESSymbol != 0:
		return "symbol"
	case flags&shimchecker.TypeFlagsNull != 0:
		return "null"
	case flags&shimchecker.TypeFlagsUndefined != 0:
		return "undefined"
	case flags&shimchecker.TypeFlagsVoid != 0:
		return "void"
	}
	return ""
}

func (h *tsType) LiteralValue() any {
	lit := h.t.AsLiteralType()
	if lit == nil {
		return nil
	}
	return normalizeLiteralValue(lit.Value())
}

func (h *tsType) ElementType() handle.Type {
	args := shimchecker.Checker_getTypeArguments(h.a.checker, h.t)
	if len(args) == 0 {
		return nil
	}
	return h.a.Wrap(args[0])
}

func (h *tsType) TupleElements() []handle.Type {
	return h.wrapAll(shimchecker.Checker_getTypeArguments(h.a.checker, h.t))
}

func (h *tsType) Members() []handle.Type {
	return h.wrapAll(h.t.Types())
}

func (h *tsType) Properties() []handle.Property {
	syms := shimchecker.Checker_getPropertiesOfType(h.a.checker, h.t)
	props := make([]handle.Property, 0, len(syms))
	for _, sym := range syms {
		propType := shimchecker.Checker_getTypeOfSymbol(h.a.checker, sym)
		props = append(props, handle.Property{
			Name:     sym.Name,
			Type:     h.a.Wrap(propType),
			Optional: sym.Flags&ast.SymbolFlagsOptional != 0,
			Readonly: shimchecker.Checker_isReadonlySymbol(h.a.checker, sym),
			JSDoc:    jsDocText(sym.ValueDeclaration),
		})
	}
	return props
}

func (h *tsType) IndexSignature() *handle.IndexSignature {
	infos := shimchecker.Checker_getIndexInfosOfType(h.a.checker, h.t)
	if len(infos) == 0 {
		return nil
	}
	info := infos[0]
	keyType := shimchecker.IndexInfo_keyType(info)
	keyName := "string"
	if keyType != nil {
		switch {
		case keyType.Flags()&shimchecker.TypeFlagsNumber != 0:
			keyName = "number"
		case keyType.Flags()&shimchecker.TypeFlagsESSymbol != 0:
			keyName = "symbol"
		}
	}
	return &handle.IndexSignature{
		KeyType:   keyName,
		ValueType: h.a.Wrap(shimchecker.IndexInfo_valueType(info)),
	}
}

func (h *tsType) TypeArguments() []handle.Type {
	if h.flags()&shimchecker.TypeFlagsObject == 0 {
		return nil
	}
	return h.wrapAll(shimchecker.Checker_getTypeArguments(h.a.checker, h.t))
}

// TypeParameters returns nil: the checker substitutes generic parameters in
// instantiated types before handles are produced, and open parameters
// surface through the TypeParameter flag and base constraints.
func (h *tsType) TypeParameters() []handle.TypeParameter { return nil }

func (h *tsType) CallSignatureCount() int {
	if h.flags()&shimchecker.TypeFlagsObject == 0 {
		return 0
	}
	return len(shimchecker.Checker_getSignaturesOfType(h.a.checker, h.t, shimchecker.SignatureKindCall))
}

// Conditional returns nil: the checker collapses closed conditionals before
// we see them, and open ones resolve through BaseConstraint. Symbolic
// conditional structure is only supplied by synthetic handles.
func (h *tsType) Conditional() *handle.Conditional { return nil }

func (h *tsType) Target() handle.Type { return nil }

func (h *tsType) IndexedAccess() (handle.Type, handle.Type) { return nil, nil }

func (h *tsType) BaseConstraint() handle.Type {
	constraint := shimchecker.Checker_getBaseConstraintOfType(h.a.checker, h.t)
	if constraint == nil || constraint == h.t {
		return nil
	}
	return h.a.Wrap(constraint)
}

func (h *tsType) SourceFile() string {
	sym := h.t.Symbol()
	if sym == nil || sym.ValueDeclaration == nil {
		return ""
	}
	sf := ast.GetSourceFileOfNode(sym.ValueDeclaration)
	if sf == nil {
		return ""
	}
	return sf.FileName()
}

func (h *tsType) wrapAll(types []*shimchecker.Type) []handle.Type {
	if len(types) == 0 {
		return nil
	}
	out := make([]handle.Type, len(types))
	for i, t := range types {
		out[i] = h.a.Wrap(t)
	}
	return out
}

// filterInternalName drops checker-internal anonymous type names.
func filterInternalName(name string) string {
	if name == "" || name == "__type" || name == "__object" || name == "__function" {
		return ""
	}
	if name[0] == '\xfe' {
		return ""
	}
	return name
}

// normalizeLiteralValue converts checker literal values (e.g. jsnum.Number)
// to plain Go types for consistent handling downstream.
func normalizeLiteralValue(v any) any {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		return val
	case bool:
		return val
	default:
		str := fmt.Sprintf("%v", v)
		var f float64
		if _, err := fmt.Sscanf(str, "%g", &f); err == nil {
			return f
		}
		return v
	}
}

// jsDocText extracts the documentation comment body attached to a
// declaration, verbatim, trimmed of surrounding whitespace.
func jsDocText(decl *ast.Node) string {
	if decl == nil {
		return ""
	}
	jsdocs := decl.JSDoc(nil)
	if len(jsdocs) == 0 {
		return ""
	}
	doc := jsdocs[len(jsdocs)-1].AsJSDoc()
	if doc == nil || doc.Comment == nil {
		return ""
	}
	var sb strings.Builder
	for _, n := range doc.Comment.Nodes {
		sb.WriteString(n.Text())
	}
	return strings.TrimSpace(sb.String())
}
