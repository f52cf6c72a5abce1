package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/goliatone/go-wpmigrate/cmd/wpmigrate/internal/bootstrap"
	migratecmd "github.com/goliatone/go-wpmigrate/internal/commands/migrate"
	"github.com/goliatone/go-wpmigrate/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

var errSourceRequired = errors.New("--source is required")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runMigrate(ctx, os.Args[1:], os.Stderr); err != nil {
		log.Fatalf("wpmigrate: %v", err)
	}
}

func runMigrate(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("wpmigrate", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		source             = fs.String("source", "", "Path to the WordPress WXR export (required)")
		out                = fs.String("out", "", "Output location: file path, '-' for stdout, or s3://bucket/key")
		runID              = fs.String("run-id", "", "Run identifier (UUID) attached to log entries")
		dryRun             = fs.Bool("dry-run", false, "Convert and report counts without writing SQL")
		envFile            = fs.String("env-file", ".env", "Optional env file with WPMIGRATE_* settings")
		defaultCategory    = fs.String("default-category", "", "Category used when a post has none")
		legacyURL          = fs.String("legacy-url", "", "Legacy URL template containing {slug}")
		slugStrategy       = fs.String("slug-strategy", "", "Slug strategy: vietnamese or goslug")
		engine             = fs.String("engine", "", "SQL engine: text or bun")
		dialect            = fs.String("dialect", "", "Dialect for the bun engine: postgres or sqlite")
		table              = fs.String("table", "", "Target table name")
		onInvalid          = fs.String("on-invalid", "", "Invalid record policy: abort or skip")
		publishedOnly      = fs.Bool("published-only", false, "Only convert posts with status publish")
		stripBlockComments = fs.Bool("strip-block-comments", false, "Remove Gutenberg block comments from content")
		logProvider        = fs.String("log-provider", "", "Logger provider: console or gologger")
		logLevel           = fs.String("log-level", "", "Minimum log level")
		logFormat          = fs.String("log-format", "", "Log format for gologger: console or json")
	)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*source) == "" {
		fs.Usage()
		return errSourceRequired
	}

	opts := bootstrap.Options{
		EnvFile:           *envFile,
		DefaultCategory:   *defaultCategory,
		LegacyURLTemplate: *legacyURL,
		SlugStrategy:      *slugStrategy,
		Engine:            *engine,
		Dialect:           *dialect,
		Table:             *table,
		OnInvalidRecord:   *onInvalid,
		LogProvider:       *logProvider,
		LogLevel:          *logLevel,
		LogFormat:         *logFormat,
	}
	// Boolean flags only override the environment when given explicitly.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "published-only":
			opts.PublishedOnly = publishedOnly
		case "strip-block-comments":
			opts.StripBlockComments = stripBlockComments
		}
	})

	module, err := moduleBuilder(opts)
	if err != nil {
		return err
	}

	var summary *interfaces.MigrateResult
	handler := migratecmd.NewMigrateExportHandler(module.Service, module.Logger, func(result *interfaces.MigrateResult) {
		summary = result
	})

	cmd := migratecmd.MigrateExportCommand{
		Source: *source,
		Output: *out,
		DryRun: *dryRun,
		RunID:  *runID,
	}
	if err := handler.Execute(ctx, cmd); err != nil {
		return err
	}

	printSummary(stderr, summary)
	return nil
}

func printSummary(w io.Writer, result *interfaces.MigrateResult) {
	if result == nil {
		return
	}
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	target := result.Output
	if result.DryRun {
		target = "dry run, nothing written"
	}
	fmt.Fprintf(w, "%s %d posts -> %s\n", green("converted"), result.Converted, cyan(target))
	if result.Skipped > 0 || result.Invalid > 0 {
		fmt.Fprintf(w, "%s %d non-post items, %d invalid records\n", yellow("skipped"), result.Skipped, result.Invalid)
	}
	for _, err := range result.Errors {
		fmt.Fprintf(w, "  %s %v\n", yellow("-"), err)
	}
}
