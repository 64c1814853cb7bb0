package main

import (
	"fmt"
	"os"
	"strings"
)

const version = "0.0.1-dev"

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) < 2 {
		// No subcommand — default to resolve
		return runResolve(os.Args[1:])
	}

	switch os.Args[1] {
	case "resolve":
		return runResolve(os.Args[2:])
	case "check":
		return runCheck(os.Args[2:])
	case "--version", "-v":
		fmt.Println("fluentgen", version)
		return 0
	case "--help", "-h":
		printUsage()
		return 0
	default:
		// First arg starting with - is a flag, not a subcommand
		if strings.HasPrefix(os.Args[1], "-") {
			return runResolve(os.Args[1:])
		}
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		return 1
	}
}

func printUsage() {
	fmt.Println("fluentgen - resolves TypeScript type declarations into serializable type trees for builder generation")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  fluentgen [flags]             Resolve types (default)")
	fmt.Println("  fluentgen resolve [flags]     Resolve types")
	fmt.Println("  fluentgen check [flags]       Validate config and exit")
	fmt.Println()
	fmt.Println("Global Flags:")
	fmt.Println("  --version, -v          Print version and exit")
	fmt.Println("  --help, -h             Print this help message")
	fmt.Println()
	fmt.Println("Resolve Flags:")
	fmt.Println("  --project, -p <path>   Path to tsconfig.json (default: tsconfig.json)")
	fmt.Println("  --config <path>        Path to fluentgen.config.json")
	fmt.Println("  --output, -o <path>    Output path (overrides config)")
	fmt.Println("  --stdout               Write resolved types to stdout instead of a file")
	fmt.Println("  --strict               Treat resolution warnings as errors")
	fmt.Println("  --quiet                Suppress resolution warnings")
	fmt.Println("  --no-cache             Ignore the incremental cache")
	fmt.Println("  --watch, -w            Re-resolve whenever source files change")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  fluentgen")
	fmt.Println("  fluentgen resolve --project tsconfig.build.json")
	fmt.Println("  fluentgen resolve --watch")
	fmt.Println("  fluentgen resolve --config fluentgen.config.json --stdout")
	fmt.Println("  fluentgen check --config fluentgen.config.json")
	fmt.Println()
}
