// Command fakevcons generates, validates, migrates and (un)wraps vCon
// conversation container files.
//
// Usage:
//
//	fakevcons generate -count 5 -out ./vcons [-topic "billing dispute"]
//	fakevcons lint ./vcons
//	fakevcons migrate [-dry-run] ./vcons
//	fakevcons sign -in call.json -key private.pem -out call.signed.json
//	fakevcons verify -in call.signed.json -pub public.pem
//	fakevcons encrypt -in call.json -pub public.pem -out call.enc.json
//	fakevcons decrypt -in call.enc.json -key private.pem
//
// Ambient configuration comes from the environment (see Config); a .env
// file in the working directory is loaded if present.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/anthropics/anthropic-sdk-go"

	fakevcons "github.com/vcon-dev/fake-vcons"
	"github.com/vcon-dev/fake-vcons/envelope"
	"github.com/vcon-dev/fake-vcons/faker"
	fakeranthropic "github.com/vcon-dev/fake-vcons/faker/anthropic"
	fakeropenai "github.com/vcon-dev/fake-vcons/faker/openai"
	"github.com/vcon-dev/fake-vcons/store"
	"github.com/vcon-dev/fake-vcons/store/sqlite"
	"github.com/vcon-dev/fake-vcons/vcon"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: fakevcons <generate|lint|migrate|sign|verify|encrypt|decrypt> [flags]")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	switch args[0] {
	case "generate":
		return runGenerate(ctx, cfg, args[1:])
	case "lint":
		return runLint(ctx, cfg, args[1:])
	case "migrate":
		return runMigrate(ctx, cfg, args[1:])
	case "sign":
		return runSign(args[1:])
	case "verify":
		return runVerify(args[1:])
	case "encrypt":
		return runEncrypt(args[1:])
	case "decrypt":
		return runDecrypt(args[1:])
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// newToolkit wires the configured backend and store into a Toolkit.
func newToolkit(cfg Config) (*fakevcons.Toolkit, func(), error) {
	backend, err := newBackend(cfg)
	if err != nil {
		return nil, nil, err
	}

	var st store.Store = store.NewInMemoryStore()
	cleanup := func() {}
	if cfg.DBPath != "" {
		sqliteStore, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		st = sqliteStore
		cleanup = func() { _ = sqliteStore.Close() }
	}

	tk := fakevcons.New(func(o *fakevcons.Options) {
		o.Backend = backend
		o.Store = st
		o.Logger = cfg.logger()
	})
	return tk, cleanup, nil
}

func newBackend(cfg Config) (faker.Backend, error) {
	switch cfg.Backend {
	case "", "static":
		return faker.NewStaticBackend(), nil
	case "openai":
		return fakeropenai.NewBackend(func(o *fakeropenai.Options) {
			if cfg.Model != "" {
				o.Model = cfg.Model
			}
		}), nil
	case "anthropic":
		return fakeranthropic.NewBackend(func(o *fakeranthropic.Options) {
			if cfg.Model != "" {
				o.Model = anthropic.Model(cfg.Model)
			}
		}), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (static, openai or anthropic)", cfg.Backend)
	}
}

func runGenerate(ctx context.Context, cfg Config, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	count := fs.Int("count", 1, "number of containers to generate")
	topic := fs.String("topic", "", "conversation topic hint")
	language := fs.String("language", "", "dialog language")
	out := fs.String("out", ".", "output directory for generated files")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tk, cleanup, err := newToolkit(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := os.MkdirAll(*out, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	vcons, err := tk.GenerateBatch(ctx, *count, faker.Prompt{Topic: *topic, Language: *language})
	for _, v := range vcons {
		data, encErr := v.EncodeIndent()
		if encErr != nil {
			return encErr
		}
		path := filepath.Join(*out, v.UUID+".json")
		if writeErr := os.WriteFile(path, data, 0o644); writeErr != nil {
			return fmt.Errorf("write %s: %w", path, writeErr)
		}
		fmt.Println(path)
	}
	return err
}

func runLint(ctx context.Context, cfg Config, args []string) error {
	fs := flag.NewFlagSet("lint", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: fakevcons lint <dir>")
	}

	tk, cleanup, err := newToolkit(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := tk.LintDir(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	for _, result := range report.Results {
		if result.Valid() {
			continue
		}
		for _, issue := range result.Issues {
			fmt.Printf("%s: %s\n", result.Path, issue)
		}
	}
	fmt.Printf("scanned %d files: %d valid, %d invalid (%.2fs)\n",
		report.Scanned, report.Valid, report.Invalid, report.Elapsed.Seconds())
	if report.Invalid > 0 {
		return fmt.Errorf("%d invalid files", report.Invalid)
	}
	return nil
}

func runMigrate(ctx context.Context, cfg Config, args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	dryRun := fs.Bool("dry-run", false, "report changes without rewriting files")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: fakevcons migrate [-dry-run] <dir>")
	}

	tk, cleanup, err := newToolkit(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := tk.MigrateDir(ctx, fs.Arg(0), *dryRun)
	if err != nil {
		return err
	}
	for _, result := range report.Results {
		if result.Err != nil {
			fmt.Printf("%s: %v\n", result.Path, result.Err)
			continue
		}
		for _, name := range result.Applied {
			fmt.Printf("%s: %s\n", result.Path, name)
		}
	}
	fmt.Printf("scanned %d files: %d changed, %d failed (%.2fs)\n",
		report.Scanned, report.Changed, report.Failed, report.Elapsed.Seconds())
	if report.Failed > 0 {
		return fmt.Errorf("%d files failed", report.Failed)
	}
	return nil
}

func runSign(args []string) error {
	fs := flag.NewFlagSet("sign", flag.ContinueOnError)
	in := fs.String("in", "", "container file to sign")
	keyPath := fs.String("key", "", "RSA private key PEM file")
	out := fs.String("out", "", "output file (defaults to stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" || *keyPath == "" {
		return fmt.Errorf("usage: fakevcons sign -in <file> -key <private.pem> [-out <file>]")
	}

	v, err := readContainer(*in)
	if err != nil {
		return err
	}
	key, err := loadPrivateKey(*keyPath)
	if err != nil {
		return err
	}
	signed, err := envelope.Sign(v, key)
	if err != nil {
		return err
	}
	return writeOutput(*out, signed)
}

func runVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	in := fs.String("in", "", "signed container file")
	pubPath := fs.String("pub", "", "RSA public key PEM file")
	out := fs.String("out", "", "output file for the unwrapped container (defaults to stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" || *pubPath == "" {
		return fmt.Errorf("usage: fakevcons verify -in <file> -pub <public.pem> [-out <file>]")
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		return err
	}
	pub, err := loadPublicKey(*pubPath)
	if err != nil {
		return err
	}
	v, err := envelope.Verify(data, pub)
	if err != nil {
		return err
	}
	plain, err := v.EncodeIndent()
	if err != nil {
		return err
	}
	return writeOutput(*out, plain)
}

func runEncrypt(args []string) error {
	fs := flag.NewFlagSet("encrypt", flag.ContinueOnError)
	in := fs.String("in", "", "container file to encrypt")
	pubPath := fs.String("pub", "", "RSA public key PEM file")
	out := fs.String("out", "", "output file (defaults to stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" || *pubPath == "" {
		return fmt.Errorf("usage: fakevcons encrypt -in <file> -pub <public.pem> [-out <file>]")
	}

	v, err := readContainer(*in)
	if err != nil {
		return err
	}
	pub, err := loadPublicKey(*pubPath)
	if err != nil {
		return err
	}
	encrypted, err := envelope.Encrypt(v, pub)
	if err != nil {
		return err
	}
	return writeOutput(*out, encrypted)
}

func runDecrypt(args []string) error {
	fs := flag.NewFlagSet("decrypt", flag.ContinueOnError)
	in := fs.String("in", "", "encrypted container file")
	keyPath := fs.String("key", "", "RSA private key PEM file")
	out := fs.String("out", "", "output file (defaults to stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" || *keyPath == "" {
		return fmt.Errorf("usage: fakevcons decrypt -in <file> -key <private.pem> [-out <file>]")
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		return err
	}
	key, err := loadPrivateKey(*keyPath)
	if err != nil {
		return err
	}
	v, err := envelope.Decrypt(data, key)
	if err != nil {
		return err
	}
	plain, err := v.EncodeIndent()
	if err != nil {
		return err
	}
	return writeOutput(*out, plain)
}

func readContainer(path string) (*vcon.Vcon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return vcon.Decode(data)
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(path, data, 0o644)
}
