package tshandle_test

import (
	"context"
	"testing"

	"github.com/microsoft/typescript-go/shim/bundled"
	shimcompiler "github.com/microsoft/typescript-go/shim/compiler"
	"github.com/microsoft/typescript-go/shim/core"
	"github.com/microsoft/typescript-go/shim/tsoptions"
	"github.com/microsoft/typescript-go/shim/tspath"

	"github.com/fluentgen/fluentgen/internal/handle/tshandle"
	"github.com/fluentgen/fluentgen/internal/resolver"
	"github.com/fluentgen/fluentgen/internal/testutil"
	"github.com/fluentgen/fluentgen/internal/typeinfo"
)

const testRoot = "/fluentgen-test"

// resolveEnv holds a tsgo program, checker, and declaration source built from
// inline TypeScript. The caller must call release() when done.
type resolveEnv struct {
	source  *tshandle.Source
	release func()
}

func setupSource(t *testing.T, tsSource string) *resolveEnv {
	t.Helper()

	files := map[string]string{
		tspath.ResolvePath(testRoot, "test.ts"):       tsSource,
		tspath.ResolvePath(testRoot, "tsconfig.json"): `{"compilerOptions": {"strict": true}}`,
	}
	fs := testutil.NewBundledOverlay(files)
	host := shimcompiler.NewCompilerHost(testRoot, fs, bundled.LibPath(), nil, nil)

	configParseResult, diags := tsoptions.GetParsedCommandLineOfConfigFile(
		"tsconfig.json", &core.CompilerOptions{}, nil, host, nil,
	)
	if len(diags) > 0 {
		t.Fatalf("tsconfig parse errors: %v", diags[0].String())
	}

	program := shimcompiler.NewProgram(shimcompiler.ProgramOptions{
		Config:                      configParseResult,
		SingleThreaded:              core.TSTrue,
		Host:                        host,
		UseSourceOfProjectReference: true,
	})
	if program == nil {
		t.Fatal("failed to create program")
	}
	program.BindSourceFiles()

	checker, release := shimcompiler.Program_GetTypeChecker(program, context.Background())
	if checker == nil {
		t.Fatal("failed to get type checker")
	}

	return &resolveEnv{
		source:  tshandle.NewSource(program, checker),
		release: release,
	}
}

// resolveNamed looks up a declaration by name and resolves it.
func (env *resolveEnv) resolveNamed(t *testing.T, name string) typeinfo.TypeInfo {
	t.Helper()

	h, file, err := env.source.LookupDeclaration(name)
	if err != nil {
		t.Fatalf("lookup %q: %v", name, err)
	}
	r := resolver.New()
	rt, err := r.ResolveDeclaration(name, file, h)
	if err != nil {
		t.Fatalf("resolve %q: %v", name, err)
	}
	return rt.TypeInfo
}

func TestResolveInterfaceProperties(t *testing.T) {
	env := setupSource(t, `
export interface User {
  id: string;
  age?: number;
  readonly tag: string;
}
`)
	defer env.release()

	info := env.resolveNamed(t, "User")
	if info.Kind != typeinfo.KindObject {
		t.Fatalf("expected object, got %s", info.Kind)
	}
	if len(info.Properties) != 3 {
		t.Fatalf("expected 3 properties, got %d", len(info.Properties))
	}
	if info.Properties[0].Name != "id" || info.Properties[0].Type.Name != "string" {
		t.Errorf("unexpected first property: %+v", info.Properties[0])
	}
	if !info.Properties[1].Optional {
		t.Error("age must be optional")
	}
	if !info.Properties[2].Readonly {
		t.Error("tag must be readonly")
	}
}

func TestResolvePrimitiveAlias(t *testing.T) {
	env := setupSource(t, `export type Name = string;`)
	defer env.release()

	info := env.resolveNamed(t, "Name")
	if info.Kind != typeinfo.KindPrimitive || info.Name != "string" {
		t.Errorf("expected primitive string, got %+v", info)
	}
}

func TestResolveTupleAlias(t *testing.T) {
	env := setupSource(t, `export type Pair = [string, number];`)
	defer env.release()

	info := env.resolveNamed(t, "Pair")
	if info.Kind != typeinfo.KindTuple || len(info.Elements) != 2 {
		t.Fatalf("expected 2-element tuple, got %+v", info)
	}
	if info.Elements[0].Name != "string" || info.Elements[1].Name != "number" {
		t.Errorf("unexpected tuple elements: %+v", info.Elements)
	}
}

func TestResolveLiteralUnionAlias(t *testing.T) {
	env := setupSource(t, `export type Status = "active" | "inactive";`)
	defer env.release()

	info := env.resolveNamed(t, "Status")
	if info.Kind != typeinfo.KindUnion || len(info.UnionTypes) != 2 {
		t.Fatalf("expected 2-member union, got %+v", info)
	}
	for _, m := range info.UnionTypes {
		if m.Kind != typeinfo.KindLiteral {
			t.Errorf("expected literal member, got %+v", m)
		}
	}
}

func TestResolveArrayAlias(t *testing.T) {
	env := setupSource(t, `export type Names = string[];`)
	defer env.release()

	info := env.resolveNamed(t, "Names")
	if info.Kind != typeinfo.KindArray {
		t.Fatalf("expected array, got %s", info.Kind)
	}
	if info.ElementType == nil || info.ElementType.Name != "string" {
		t.Errorf("expected string element, got %+v", info.ElementType)
	}
}

func TestResolveEnumDeclaration(t *testing.T) {
	env := setupSource(t, `
export enum Color {
  Red,
  Green,
}
`)
	defer env.release()

	info := env.resolveNamed(t, "Color")
	if info.Kind != typeinfo.KindEnum || info.Name != "Color" {
		t.Errorf("expected enum Color, got %+v", info)
	}
}

func TestResolveNestedDeclarationBecomesReference(t *testing.T) {
	env := setupSource(t, `
export interface User {
  id: string;
}
export interface Order {
  user: User;
}
`)
	defer env.release()

	info := env.resolveNamed(t, "Order")
	if len(info.Properties) != 1 {
		t.Fatalf("expected 1 property, got %d", len(info.Properties))
	}
	user := info.Properties[0].Type
	if user.Kind != typeinfo.KindReference || user.Name != "User" {
		t.Errorf("expected reference to User, got %+v", user)
	}
}

func TestDiscoverDependenciesAcrossDeclarations(t *testing.T) {
	env := setupSource(t, `
export interface User {
  id: string;
}
export interface Order {
  user: User;
}
`)
	defer env.release()

	h, file, err := env.source.LookupDeclaration("Order")
	if err != nil {
		t.Fatal(err)
	}
	r := resolver.New()
	rt, err := r.ResolveDeclaration("Order", file, h)
	if err != nil {
		t.Fatal(err)
	}

	d := resolver.NewDependencyDiscoverer(env.source, nil)
	d.Discover(rt)

	if len(rt.Imports) != 1 || rt.Imports[0] != "User" {
		t.Fatalf("expected imports [User], got %v", rt.Imports)
	}
	if len(rt.Dependencies) != 1 || rt.Dependencies[0].Name != "User" {
		t.Fatalf("expected User dependency, got %d deps", len(rt.Dependencies))
	}
}

func TestLookupUnknownDeclaration(t *testing.T) {
	env := setupSource(t, `export type Name = string;`)
	defer env.release()

	if _, _, err := env.source.LookupDeclaration("Missing"); err == nil {
		t.Error("expected error for unknown declaration")
	}
}
