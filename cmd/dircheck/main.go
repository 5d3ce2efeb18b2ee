// Command dircheck loads every directory category from the configured record
// store and reports per-category counts, records whose city reference does
// not resolve, and categories missing a form or a card renderer. It exits
// non-zero on any finding.
//
// Usage:
//
//	SUPABASE_URL=... SUPABASE_KEY=... go run ./cmd/dircheck [-limit 500]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/ajudejf/internal/adapter/recordstore"
	"github.com/couchcryptid/ajudejf/internal/config"
	"github.com/couchcryptid/ajudejf/internal/directory"
	"github.com/couchcryptid/ajudejf/internal/domain"
	"github.com/couchcryptid/ajudejf/internal/intake"
	"github.com/couchcryptid/ajudejf/internal/observability"
)

func main() {
	limit := flag.Int("limit", 0, "records fetched per category (default DIRECTORY_LIMIT)")
	flag.Parse()

	os.Exit(run(*limit))
}

func run(limit int) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load config: %v\n", err)
		return 1
	}
	if limit <= 0 {
		limit = cfg.DirectoryLimit
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := recordstore.Open(ctx, cfg, metrics, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: open record store: %v\n", err)
		return 1
	}
	defer closeStore()

	dir := directory.NewService(store, limit, logger, metrics)
	rep, err := check(ctx, dir, hasForm)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	rep.print(os.Stdout)
	if rep.passed() {
		return 0
	}
	return 1
}

func hasForm(c domain.Category) bool {
	_, ok := intake.Forms[c]
	return ok
}

func (r *report) print(w io.Writer) {
	fmt.Fprintln(w, "=== Ajude JF Directory Check ===")
	fmt.Fprintln(w)
	for _, c := range r.counts {
		fmt.Fprintf(w, "  %-28s %d\n", c.label, c.n)
	}

	r.printSection(w, "Unresolved city references", r.unresolved)
	r.printSection(w, "Configuration gaps", r.gaps)

	if r.passed() {
		fmt.Fprintln(w, "\nAll checks passed.")
		return
	}
	fmt.Fprintln(w, "\nCheck FAILED.")
}

func (r *report) printSection(w io.Writer, name string, findings []string) {
	status := "\033[32mPASS\033[0m"
	if len(findings) > 0 {
		status = fmt.Sprintf("\033[31mFAIL (%d)\033[0m", len(findings))
	}
	fmt.Fprintf(w, "\n%-30s %s\n", name, status)
	for i, f := range findings {
		fmt.Fprintf(w, "  [%d] %s\n", i+1, f)
	}
}
