package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fluentgen/fluentgen/internal/config"
	"github.com/fluentgen/fluentgen/internal/watcher"
)

// runWatch implements "fluentgen resolve --watch": resolve once, then re-run
// on every batch of source changes until interrupted.
func runWatch(opts *resolveOptions, cfg *config.Config, cfgPath, outputPath string) int {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	fmt.Fprintln(os.Stderr, "performing initial resolve...")
	if resolveOnce(opts, cfg, cfgPath, outputPath) != 0 {
		fmt.Fprintln(os.Stderr, "resolve failed, watching for changes...")
	}

	srcDir := filepath.Join(cwd, "src")
	if cfg.SourceRoot != "" {
		srcDir = filepath.Join(cwd, cfg.SourceRoot)
	}
	if _, err := os.Stat(srcDir); os.IsNotExist(err) {
		srcDir = cwd
	}

	w := watcher.New(
		[]string{srcDir},
		[]string{".ts", ".tsx", ".mts", ".cts"},
		100*time.Millisecond,
		func(events []watcher.Event) {
			fmt.Fprintf(os.Stderr, "\ndetected %d change(s), resolving...\n", len(events))
			if resolveOnce(opts, cfg, cfgPath, outputPath) != 0 {
				fmt.Fprintln(os.Stderr, "resolve failed, waiting for changes...")
			}
		},
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nshutting down...")
		w.Stop()
	}()

	fmt.Fprintln(os.Stderr, "watching for changes...")
	w.Watch()
	return 0
}
