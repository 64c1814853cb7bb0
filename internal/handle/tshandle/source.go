package tshandle

import (
	"fmt"

	"github.com/microsoft/typescript-go/shim/ast"
	shimchecker "github.com/microsoft/typescript-go/shim/checker"
	shimcompiler "github.com/microsoft/typescript-go/shim/compiler"

	"github.com/fluentgen/fluentgen/internal/handle"
)

// Source locates top-level type declarations in a compiled program by name.
// It satisfies the resolver's DeclarationSource contract for dependency
// discovery. The declaration index is built once, on first lookup.
type Source struct {
	program *shimcompiler.Program
	checker *shimchecker.Checker
	adapter *Adapter
	index   map[string]declarationEntry
}

type declarationEntry struct {
	stmt *ast.Node
	file string
}

// NewSource creates a source over the program's non-declaration files.
func NewSource(program *shimcompiler.Program, checker *shimchecker.Checker) *Source {
	return &Source{
		program: program,
		checker: checker,
		adapter: NewAdapter(checker),
	}
}

// LookupDeclaration returns the type handle and defining file for a top-level
// type alias, interface, enum or class declaration.
func (s *Source) LookupDeclaration(name string) (handle.Type, string, error) {
	if s.index == nil {
		s.buildIndex()
	}
	entry, ok := s.index[name]
	if !ok {
		return nil, "", fmt.Errorf("declaration %q not found", name)
	}

	t, err := s.declaredType(entry.stmt)
	if err != nil {
		return nil, entry.file, err
	}
	return s.adapter.Wrap(t), entry.file, nil
}

func (s *Source) buildIndex() {
	s.index = make(map[string]declarationEntry)
	for _, sf := range s.program.GetSourceFiles() {
		if sf.IsDeclarationFile {
			continue
		}
		for _, stmt := range sf.Statements.Nodes {
			name := declarationName(stmt)
			if name == "" {
				continue
			}
			// First declaration wins on a name collision across files.
			if _, exists := s.index[name]; !exists {
				s.index[name] = declarationEntry{stmt: stmt, file: sf.FileName()}
			}
		}
	}
}

func declarationName(stmt *ast.Node) string {
	switch stmt.Kind {
	case ast.KindTypeAliasDeclaration:
		return stmt.AsTypeAliasDeclaration().Name().Text()
	case ast.KindInterfaceDeclaration:
		return stmt.AsInterfaceDeclaration().Name().Text()
	case ast.KindEnumDeclaration:
		return stmt.AsEnumDeclaration().Name().Text()
	case ast.KindClassDeclaration:
		decl := stmt.AsClassDeclaration()
		if decl.Name() == nil {
			return ""
		}
		return decl.Name().Text()
	}
	return ""
}

// declaredType obtains the checker type for a declaration statement. Type
// aliases resolve through their right-hand type node; the rest resolve
// through the declared symbol.
func (s *Source) declaredType(stmt *ast.Node) (*shimchecker.Type, error) {
	switch stmt.Kind {
	case ast.KindTypeAliasDeclaration:
		decl := stmt.AsTypeAliasDeclaration()
		t := shimchecker.Checker_getTypeFromTypeNode(s.checker, decl.Type)
		if t == nil {
			return nil, fmt.Errorf("no type for alias %q", decl.Name().Text())
		}
		return t, nil

	case ast.KindInterfaceDeclaration, ast.KindEnumDeclaration, ast.KindClassDeclaration:
		nameNode := declarationNameNode(stmt)
		sym := s.checker.GetSymbolAtLocation(nameNode)
		if sym == nil {
			return nil, fmt.Errorf("no symbol for declaration %q", nameNode.Text())
		}
		t := shimchecker.Checker_getDeclaredTypeOfSymbol(s.checker, sym)
		if t == nil {
			return nil, fmt.Errorf("no declared type for %q", nameNode.Text())
		}
		return t, nil
	}
	return nil, fmt.Errorf("unsupported declaration kind %v", stmt.Kind)
}

func declarationNameNode(stmt *ast.Node) *ast.Node {
	switch stmt.Kind {
	case ast.KindInterfaceDeclaration:
		return stmt.AsInterfaceDeclaration().Name()
	case ast.KindEnumDeclaration:
		return stmt.AsEnumDeclaration().Name()
	case ast.KindClassDeclaration:
		return stmt.AsClassDeclaration().Name()
	}
	return nil
}
