// Package migrate applies in-place repairs to trees of vCon files. Each
// Migration rewrites a single raw JSON document; the runner scans a
// directory the same way lint does and rewrites only files a migration
// actually changed. Documents are edited key-by-key (sjson) so fields a
// migration does not touch survive byte-for-byte.
package migrate

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/tidwall/pretty"

	"github.com/vcon-dev/fake-vcons/internal/scan"
	"github.com/vcon-dev/fake-vcons/logging"
)

// Migration rewrites one raw vCon document. Apply returns the (possibly
// rewritten) document and whether anything changed.
type Migration interface {
	// Name identifies the migration in logs and reports.
	Name() string
	Apply(data []byte) ([]byte, bool, error)
}

// Registry returns the built-in migrations in application order.
func Registry() []Migration {
	return []Migration{
		TimestampOffsetFix{},
		StripReferences{},
	}
}

// FileResult records the outcome of migrating one file.
type FileResult struct {
	Path    string   `json:"path"`
	Applied []string `json:"applied,omitempty"`
	Err     error    `json:"-"`
}

// Changed reports whether any migration rewrote the file.
func (r FileResult) Changed() bool { return len(r.Applied) > 0 }

// Report aggregates one migration run.
type Report struct {
	Results []FileResult  `json:"results"`
	Scanned int           `json:"scanned"`
	Changed int           `json:"changed"`
	Failed  int           `json:"failed"`
	Elapsed time.Duration `json:"elapsed"`
}

// Options configure a Runner.
type Options struct {
	// Migrations to apply, in order. Defaults to Registry().
	Migrations []Migration
	// Workers bounds concurrent file processing. Defaults to 4.
	Workers int
	// DryRun reports what would change without rewriting files.
	DryRun bool
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Runner applies migrations across a directory tree.
type Runner struct {
	opts Options
}

// New creates a Runner with optional overrides.
func New(optFns ...func(o *Options)) *Runner {
	opts := Options{
		Migrations: Registry(),
		Workers:    4,
		Logger:     logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Workers < 1 {
		opts.Workers = 4
	}
	return &Runner{opts: opts}
}

// Run scans dir for candidate vCon files and applies the configured
// migrations to each. Changed files are rewritten with two-space indenting.
func (r *Runner) Run(ctx context.Context, dir string) (*Report, error) {
	start := time.Now()

	paths, err := scan.Candidates(dir)
	if err != nil {
		return nil, err
	}
	r.opts.Logger.Info("migrating vcon files", "dir", dir, "candidates", len(paths), "dry_run", r.opts.DryRun)

	jobs := make(chan string)
	resultCh := make(chan FileResult)

	var wg sync.WaitGroup
	for range r.opts.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				resultCh <- r.migrateFile(path)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, path := range paths {
			select {
			case jobs <- path:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	report := &Report{}
	for result := range resultCh {
		report.Results = append(report.Results, result)
		if result.Err != nil {
			report.Failed++
		} else if result.Changed() {
			report.Changed++
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(report.Results, func(i, j int) bool {
		return report.Results[i].Path < report.Results[j].Path
	})
	report.Scanned = len(report.Results)
	report.Elapsed = time.Since(start)
	r.opts.Logger.Info("migration complete", "scanned", report.Scanned, "changed", report.Changed, "failed", report.Failed)
	return report, nil
}

func (r *Runner) migrateFile(path string) FileResult {
	result := FileResult{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Err = fmt.Errorf("read file: %w", err)
		return result
	}

	for _, m := range r.opts.Migrations {
		next, changed, err := m.Apply(data)
		if err != nil {
			result.Err = fmt.Errorf("migration %s: %w", m.Name(), err)
			return result
		}
		if changed {
			data = next
			result.Applied = append(result.Applied, m.Name())
		}
	}

	if !result.Changed() || r.opts.DryRun {
		return result
	}

	formatted := pretty.PrettyOptions(data, &pretty.Options{Indent: "  "})
	if err := os.WriteFile(path, formatted, 0o644); err != nil {
		result.Err = fmt.Errorf("write file: %w", err)
	}
	return result
}
