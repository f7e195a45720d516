// Package lint validates directories of vCon files. It finds candidate JSON
// files, validates each bare container with a bounded worker pool and
// aggregates the findings into a Report. Signed and encrypted envelopes are
// recognized and reported by form but not unwrapped; validating their
// payloads requires keys the linter does not have.
package lint

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/vcon-dev/fake-vcons/internal/scan"
	"github.com/vcon-dev/fake-vcons/logging"
	"github.com/vcon-dev/fake-vcons/vcon"
)

// DefaultWorkers is the worker pool size used when none is configured.
const DefaultWorkers = 4

// FileResult holds the findings for one scanned file.
type FileResult struct {
	Path   string       `json:"path"`
	Form   vcon.Form    `json:"-"`
	Issues []vcon.Issue `json:"issues,omitempty"`
}

// Valid reports whether the file produced no findings.
func (r FileResult) Valid() bool { return len(r.Issues) == 0 }

// Report aggregates the results of one lint run.
type Report struct {
	Results []FileResult  `json:"results"`
	Scanned int           `json:"scanned"`
	Valid   int           `json:"valid"`
	Invalid int           `json:"invalid"`
	Elapsed time.Duration `json:"elapsed"`
}

// Options configure a Linter.
type Options struct {
	// Workers bounds concurrent file validation. Defaults to DefaultWorkers.
	Workers int
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Linter validates trees of vCon files.
type Linter struct {
	opts Options
}

// New creates a Linter with optional overrides.
func New(optFns ...func(o *Options)) *Linter {
	opts := Options{
		Workers: DefaultWorkers,
		Logger:  logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Workers < 1 {
		opts.Workers = DefaultWorkers
	}
	return &Linter{opts: opts}
}

// Run scans dir for candidate vCon files and validates them. Results are
// ordered by path. Run returns early if the context is canceled.
func (l *Linter) Run(ctx context.Context, dir string) (*Report, error) {
	start := time.Now()

	paths, err := scan.Candidates(dir)
	if err != nil {
		return nil, err
	}
	l.opts.Logger.Info("linting vcon files", "dir", dir, "candidates", len(paths))

	jobs := make(chan string)
	resultCh := make(chan FileResult)

	var wg sync.WaitGroup
	for range l.opts.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				resultCh <- lintFile(path)
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
		if result.Valid() {
			report.Valid++
		} else {
			report.Invalid++
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
	l.opts.Logger.Info("lint complete", "scanned", report.Scanned, "valid", report.Valid, "invalid", report.Invalid)
	return report, nil
}

// lintFile validates a single candidate file.
func lintFile(path string) FileResult {
	result := FileResult{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Issues = []vcon.Issue{{Message: fmt.Sprintf("read file: %v", err)}}
		return result
	}

	result.Form = vcon.DetectForm(data)
	if result.Form != vcon.FormUnsigned {
		// Envelopes are reported by form only.
		return result
	}

	v, err := vcon.Decode(data)
	if err != nil {
		result.Issues = []vcon.Issue{{Message: fmt.Sprintf("invalid JSON: %v", err)}}
		return result
	}
	result.Issues = v.Validate()
	return result
}
