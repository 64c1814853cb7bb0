package main

import (
	"fmt"
	"os"

	"github.com/fluentgen/fluentgen/internal/config"
)

// runCheck validates the config file and reports problems without building a
// program.
func runCheck(args []string) int {
	path := "fluentgen.config.json"
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config":
			i++
			if i >= len(args) {
				fmt.Fprintln(os.Stderr, "error: --config requires a path argument")
				return 1
			}
			path = args[i]
		default:
			fmt.Fprintf(os.Stderr, "error: unknown flag: %s\n", args[i])
			return 1
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	result := cfg.ValidateDetailed()
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "error: %s\n", e)
	}
	if !result.IsValid() {
		return 1
	}

	fmt.Printf("%s: config OK (%d type pattern(s), output %s)\n", path, len(cfg.Types.Include), cfg.Output.Path)
	return 0
}
