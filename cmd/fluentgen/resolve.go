package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/microsoft/typescript-go/shim/ast"
	shimchecker "github.com/microsoft/typescript-go/shim/checker"
	shimcompiler "github.com/microsoft/typescript-go/shim/compiler"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/fluentgen/fluentgen/internal/buildcache"
	"github.com/fluentgen/fluentgen/internal/compiler"
	"github.com/fluentgen/fluentgen/internal/config"
	"github.com/fluentgen/fluentgen/internal/diagnostic"
	"github.com/fluentgen/fluentgen/internal/handle/tshandle"
	"github.com/fluentgen/fluentgen/internal/resolver"
	"github.com/fluentgen/fluentgen/internal/typeinfo"
)

// resolveOptions holds parsed CLI flags for the resolve command.
type resolveOptions struct {
	project    string
	configPath string
	output     string
	stdout     bool
	strict     bool
	quiet      bool
	noCache    bool
	watch      bool
}

func parseResolveFlags(args []string) (*resolveOptions, error) {
	opts := &resolveOptions{project: "tsconfig.json"}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--project", "-p":
			i++
			if i >= len(args) {
				return nil, fmt.Errorf("%s requires a path argument", args[i-1])
			}
			opts.project = args[i]
		case "--config":
			i++
			if i >= len(args) {
				return nil, fmt.Errorf("--config requires a path argument")
			}
			opts.configPath = args[i]
		case "--output", "-o":
			i++
			if i >= len(args) {
				return nil, fmt.Errorf("%s requires a path argument", args[i-1])
			}
			opts.output = args[i]
		case "--stdout":
			opts.stdout = true
		case "--strict":
			opts.strict = true
		case "--quiet":
			opts.quiet = true
		case "--no-cache":
			opts.noCache = true
		case "--watch", "-w":
			opts.watch = true
		default:
			return nil, fmt.Errorf("unknown flag: %s", args[i])
		}
	}
	return opts, nil
}

// loadConfig loads the config file if given (or present at the default path),
// falling back to defaults.
func loadConfig(opts *resolveOptions) (*config.Config, string, error) {
	path := opts.configPath
	if path == "" {
		if _, err := os.Stat("fluentgen.config.json"); err == nil {
			path = "fluentgen.config.json"
		}
	}
	if path == "" {
		cfg := config.DefaultConfig()
		return &cfg, "", nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// declarationDump is the per-declaration JSON output.
type declarationDump struct {
	Name       string             `json:"name"`
	SourceFile string             `json:"sourceFile,omitempty"`
	Type       *typeinfo.TypeInfo `json:"type"`
	Imports    []string           `json:"imports,omitempty"`
}

// resolveDump is the JSON output document.
type resolveDump struct {
	Version      string                        `json:"version"`
	Declarations []declarationDump             `json:"declarations"`
	Registry     map[string]*typeinfo.TypeInfo `json:"registry,omitempty"`
	Files        map[string]string             `json:"files,omitempty"`
}

func runResolve(args []string) int {
	opts, err := parseResolveFlags(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	cfg, cfgPath, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if opts.strict {
		cfg.Resolution.Strict = true
	}
	if opts.quiet {
		cfg.Resolution.Quiet = true
	}
	outputPath := cfg.Output.Path
	if opts.output != "" {
		outputPath = opts.output
	}

	if opts.watch {
		return runWatch(opts, cfg, cfgPath, outputPath)
	}
	return resolveOnce(opts, cfg, cfgPath, outputPath)
}

// resolveOnce runs the full resolve pipeline a single time.
func resolveOnce(opts *resolveOptions, cfg *config.Config, cfgPath, outputPath string) int {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	fs := compiler.CreateDefaultFS()
	host := compiler.CreateDefaultHost(cwd, fs)

	result, diags, err := compiler.CreateProgram(false, fs, cwd, opts.project, host)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if len(diags) > 0 {
		fmt.Fprint(os.Stderr, compiler.FormatDiagnostics(diags))
		return 1
	}
	program := result.Program

	// Parse errors don't abort the run; declarations in broken files are
	// skipped and reported.
	reporter := compiler.CreateDiagnosticReporter(os.Stderr, cwd)
	syntaxDiags := compiler.GetSyntacticDiagnostics(program)
	for _, d := range syntaxDiags {
		reporter(d)
	}
	brokenFiles := compiler.FilesWithSyntaxErrors(syntaxDiags)

	sourceFiles := matchedSourceFiles(program, cfg, brokenFiles)

	cachePath := buildcache.CachePath(filepath.Dir(outputPath), opts.project)
	inputHash := hashInputs(cfgPath, sourceFiles)
	if !opts.noCache && !opts.stdout {
		if cache := buildcache.Load(cachePath); cache.IsValid(inputHash) {
			fmt.Fprintln(os.Stderr, "fluentgen: outputs up to date")
			return 0
		}
	}

	checker, release, err := compiler.GetTypeChecker(program)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer release()

	collector := diagnostic.NewCollector(cfg.Resolution.Strict, cfg.Resolution.Quiet)
	adapter := tshandle.NewAdapter(checker)
	source := tshandle.NewSource(program, checker)
	discoverer := resolver.NewDependencyDiscoverer(source, collector)

	dump := resolveDump{Version: version}
	registry := make(map[string]*typeinfo.TypeInfo)
	files := make(map[string]string)

	for _, sf := range sourceFiles {
		for _, stmt := range sf.Statements.Nodes {
			name, t := declaredType(checker, stmt)
			if name == "" || t == nil || cfg.ExcludesType(name) {
				continue
			}

			r := resolver.New()
			r.SetDiagnostics(collector)
			applyResolutionLimits(r, cfg)

			rt, err := r.ResolveDeclaration(name, sf.FileName(), adapter.Wrap(t))
			if err != nil {
				collector.Error(diagnostic.CategoryResolution, sf.FileName(), 0,
					fmt.Sprintf("could not resolve %q: %v", name, err))
				continue
			}
			discoverer.Discover(rt)

			dump.Declarations = append(dump.Declarations, declarationDump{
				Name:       rt.Name,
				SourceFile: rt.SourceFile,
				Type:       &rt.TypeInfo,
				Imports:    rt.Imports,
			})
			for regName, regInfo := range r.Registry().Types {
				registry[regName] = regInfo
			}
			for regName, regFile := range r.Registry().Files {
				files[regName] = regFile
			}
		}
	}

	// Deterministic output order regardless of filesystem iteration order.
	c := collate.New(language.Und)
	sort.SliceStable(dump.Declarations, func(i, j int) bool {
		return c.CompareString(dump.Declarations[i].Name, dump.Declarations[j].Name) < 0
	})
	dump.Registry = registry
	dump.Files = files

	if msg := collector.FormatAll(); msg != "" {
		fmt.Fprint(os.Stderr, msg)
	}
	if collector.HasErrors() {
		fmt.Fprintf(os.Stderr, "fluentgen: %s\n", collector.Summary())
		return 1
	}

	if err := writeDump(&dump, outputPath, opts.stdout, cfg.Output.Pretty); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	if !opts.noCache && !opts.stdout {
		cache := buildcache.New(inputHash, []string{outputPath})
		if err := buildcache.Save(cachePath, cache); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not save cache: %v\n", err)
		}
	}

	return 0
}

// applyResolutionLimits copies config depth overrides onto a resolver.
func applyResolutionLimits(r *resolver.Resolver, cfg *config.Config) {
	if cfg.Resolution.MaxDepth > 0 {
		r.SetMaxDepth(cfg.Resolution.MaxDepth)
	}
	if cfg.Resolution.MaxConditionalDepth > 0 {
		r.SetMaxConditionalDepth(cfg.Resolution.MaxConditionalDepth)
	}
	if cfg.Resolution.MaxUtilityDepth > 0 {
		r.SetMaxUtilityDepth(cfg.Resolution.MaxUtilityDepth)
	}
}

// matchedSourceFiles returns the program's source files selected by the
// config include patterns, skipping files with parse errors.
func matchedSourceFiles(program *shimcompiler.Program, cfg *config.Config, broken map[string]bool) []*ast.SourceFile {
	var out []*ast.SourceFile
	for _, sf := range compiler.GetSourceFiles(program) {
		if broken[sf.FileName()] {
			continue
		}
		if !cfg.MatchesFile(sf.FileName()) {
			continue
		}
		out = append(out, sf)
	}
	return out
}

// declaredType obtains the name and checker type of a top-level type alias,
// interface, enum or class declaration. Other statements yield "".
func declaredType(checker *shimchecker.Checker, stmt *ast.Node) (string, *shimchecker.Type) {
	switch stmt.Kind {
	case ast.KindTypeAliasDeclaration:
		decl := stmt.AsTypeAliasDeclaration()
		return decl.Name().Text(), shimchecker.Checker_getTypeFromTypeNode(checker, decl.Type)

	case ast.KindInterfaceDeclaration:
		decl := stmt.AsInterfaceDeclaration()
		return decl.Name().Text(), symbolDeclaredType(checker, decl.Name())

	case ast.KindEnumDeclaration:
		decl := stmt.AsEnumDeclaration()
		return decl.Name().Text(), symbolDeclaredType(checker, decl.Name())

	case ast.KindClassDeclaration:
		decl := stmt.AsClassDeclaration()
		if decl.Name() == nil {
			return "", nil
		}
		return decl.Name().Text(), symbolDeclaredType(checker, decl.Name())
	}
	return "", nil
}

func symbolDeclaredType(checker *shimchecker.Checker, nameNode *ast.Node) *shimchecker.Type {
	sym := checker.GetSymbolAtLocation(nameNode)
	if sym == nil {
		return nil
	}
	return shimchecker.Checker_getDeclaredTypeOfSymbol(checker, sym)
}

// hashInputs computes a digest over the config file and all matched source
// files. Files are hashed in parallel; any change invalidates the cache.
func hashInputs(cfgPath string, sourceFiles []*ast.SourceFile) string {
	paths := make([]string, 0, len(sourceFiles)+1)
	if cfgPath != "" {
		paths = append(paths, cfgPath)
	}
	for _, sf := range sourceFiles {
		paths = append(paths, sf.FileName())
	}
	sort.Strings(paths)

	hashes := make([]string, len(paths))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range paths {
		g.Go(func() error {
			hashes[i] = buildcache.HashFile(p)
			return nil
		})
	}
	g.Wait()

	h := sha256.New()
	for i, p := range paths {
		fmt.Fprintf(h, "%s:%s\n", p, hashes[i])
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeDump(dump *resolveDump, outputPath string, toStdout, pretty bool) error {
	var w io.Writer
	if toStdout {
		w = os.Stdout
	} else {
		if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	opts := []json.Options{json.Deterministic(true)}
	if pretty {
		opts = append(opts, jsontext.WithIndent("  "))
	}
	if err := json.MarshalWrite(w, dump, opts...); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
