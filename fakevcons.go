// Package fakevcons provides a high-level façade over the vCon toolkit
// (domain types, stores, generator, lint and migrate tooling) enabling rapid
// construction of synthetic conversation data sets. Most applications
// interact with this package by:
//  1. Creating a Toolkit via New() (optionally overriding the default
//     in-memory store, faker backend and logger)
//  2. Generating containers (Generate / GenerateBatch)
//  3. Linting or migrating directories of existing files (LintDir /
//     MigrateDir)
//
// The façade delegates to the faker, lint and migrate packages while keeping
// setup and usage ergonomics concise. All defaults are safe for offline
// development and testing; production deployments typically supply a durable
// store (store/sqlite), a model-backed faker backend (faker/openai or
// faker/anthropic) and a structured logger.
package fakevcons

import (
	"context"
	"fmt"

	"github.com/vcon-dev/fake-vcons/faker"
	"github.com/vcon-dev/fake-vcons/lint"
	"github.com/vcon-dev/fake-vcons/logging"
	"github.com/vcon-dev/fake-vcons/migrate"
	"github.com/vcon-dev/fake-vcons/store"
	"github.com/vcon-dev/fake-vcons/vcon"
)

// Options configures the Toolkit instance.
type Options struct {
	// Store persists generated containers (defaults to in-memory).
	Store store.Store

	// Backend produces conversation scripts for generation (defaults to
	// the offline StaticBackend).
	Backend faker.Backend

	// Workers bounds concurrency for directory lint/migrate runs.
	Workers int

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Toolkit is the high-level façade aggregating the generator, store and
// file tooling.
type Toolkit struct {
	opts  Options
	faker *faker.Faker
}

// New creates a new Toolkit instance with optional overrides. Any unset
// service is initialized with an offline-safe default.
func New(optFns ...func(o *Options)) *Toolkit {
	opts := Options{
		Store:   store.NewInMemoryStore(),
		Backend: faker.NewStaticBackend(),
		Workers: lint.DefaultWorkers,
		Logger:  logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	f := faker.New(func(o *faker.Options) {
		o.Backend = opts.Backend
		o.Logger = opts.Logger
	})

	return &Toolkit{opts: opts, faker: f}
}

// Store exposes the configured container store.
func (t *Toolkit) Store() store.Store { return t.opts.Store }

// Generate produces one synthetic container and saves it to the store.
func (t *Toolkit) Generate(ctx context.Context, prompt faker.Prompt) (*vcon.Vcon, error) {
	v, err := t.faker.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if err := t.opts.Store.Save(ctx, v); err != nil {
		return nil, fmt.Errorf("save generated vcon: %w", err)
	}
	return v, nil
}

// GenerateBatch produces count containers, saving each, and returns them.
// Generation stops at the first backend or store failure.
func (t *Toolkit) GenerateBatch(ctx context.Context, count int, prompt faker.Prompt) ([]*vcon.Vcon, error) {
	if count < 1 {
		return nil, fmt.Errorf("count must be positive")
	}
	vcons := make([]*vcon.Vcon, 0, count)
	for i := 0; i < count; i++ {
		v, err := t.Generate(ctx, prompt)
		if err != nil {
			return vcons, fmt.Errorf("generate %d of %d: %w", i+1, count, err)
		}
		vcons = append(vcons, v)
	}
	return vcons, nil
}

// LintDir validates every candidate vCon file under dir.
func (t *Toolkit) LintDir(ctx context.Context, dir string) (*lint.Report, error) {
	l := lint.New(func(o *lint.Options) {
		o.Workers = t.opts.Workers
		o.Logger = t.opts.Logger
	})
	return l.Run(ctx, dir)
}

// MigrateDir applies the registered migrations to every candidate vCon file
// under dir.
func (t *Toolkit) MigrateDir(ctx context.Context, dir string, dryRun bool) (*migrate.Report, error) {
	r := migrate.New(func(o *migrate.Options) {
		o.Workers = t.opts.Workers
		o.DryRun = dryRun
		o.Logger = t.opts.Logger
	})
	return r.Run(ctx, dir)
}
