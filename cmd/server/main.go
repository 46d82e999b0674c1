// Package main implements the entry point for the UKP API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/ukp-platform/ukp-api/internal/config"
	"github.com/ukp-platform/ukp-api/internal/platform/logger"
	"github.com/ukp-platform/ukp-api/internal/platform/postgres"
)

// options are the command-line flags of the server.
type options struct {
	envDir      string
	migrate     bool
	migrateOnly bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := pflag.NewFlagSet("ukp-api", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.envDir, "env-dir", ".", "directory containing the .env files")
	fs.BoolVar(&opts.migrate, "migrate", false, "apply pending database migrations before serving")
	fs.BoolVar(&opts.migrateOnly, "migrate-only", false, "apply pending database migrations and exit")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.migrateOnly {
		opts.migrate = true
	}
	return opts, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

// run starts the server and returns the process exit code.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.LoadFrom(opts.envDir)
	if err != nil {
		reportConfigError(stderr, err)
		return 1
	}

	log, err := logger.Setup(cfg.App())
	if err != nil {
		fmt.Fprintf(stderr, "failed to set up logger: %v\n", err)
		return 1
	}
	log.Info("configuration loaded", "summary", cfg.String())

	db, err := postgres.Open(ctx, cfg.DatabaseURL(), log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		return 1
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", "error", err)
		}
	}()

	if opts.migrate {
		if err := postgres.Migrate(ctx, db, log); err != nil {
			return 1
		}
		if opts.migrateOnly {
			return 0
		}
	}

	app, err := newApplication(ctx, cfg, log, db)
	if err != nil {
		log.Error("failed to initialize application", "error", err)
		return 1
	}
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		log.Error("server stopped with error", "error", err)
		return 1
	}
	return 0
}

// reportConfigError prints every configuration violation, one per line.
func reportConfigError(w io.Writer, err error) {
	var verr *config.ValidationError
	if !errors.As(err, &verr) {
		fmt.Fprintf(w, "failed to load configuration: %v\n", err)
		return
	}
	fmt.Fprintln(w, "invalid configuration:")
	for _, fe := range verr.Fields {
		fmt.Fprintf(w, "  - %s\n", fe.String())
	}
}
