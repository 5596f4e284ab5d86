package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/opsdash/internal/catalog"
	"github.com/roach88/opsdash/internal/credential"
	"github.com/roach88/opsdash/internal/search"
	"github.com/roach88/opsdash/internal/state"
	"github.com/roach88/opsdash/internal/store"
)

// app is the dashboard core wired for one CLI invocation.
type app struct {
	kv      *store.Store
	creds   *credential.Store
	catalog catalog.Catalog
	state   *state.Store
	index   *search.Index
	logger  *slog.Logger
}

// newLogger logs to w at Warn, or Debug with --verbose.
func newLogger(opts *RootOptions, w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadCatalog returns the catalog named by --catalog, or the seed.
func loadCatalog(opts *RootOptions) (catalog.Catalog, error) {
	if opts.Catalog == "" {
		return catalog.Seed(), nil
	}
	return catalog.Load(opts.Catalog)
}

// openApp opens the credential database and builds the store and search
// index. Failures are reported through f and returned as ExitErrors.
func openApp(ctx context.Context, opts *RootOptions, f *OutputFormatter) (*app, error) {
	logger := newLogger(opts, f.GetErrWriter())

	cat, err := loadCatalog(opts)
	if err != nil {
		return nil, failCatalog(f, err)
	}

	kv, err := store.Open(opts.DB)
	if err != nil {
		return nil, f.Fail(ExitCommandError, ErrCodeDatabase, err.Error(), nil)
	}
	creds, err := credential.Open(ctx, kv, credential.WithLogger(logger))
	if err != nil {
		kv.Close()
		return nil, f.Fail(ExitCommandError, ErrCodeDatabase, err.Error(), nil)
	}
	f.VerboseLog("Opened %s (%d registered account(s))", opts.DB, creds.Len())

	st := state.New(creds, cat.Alerts, state.WithLogger(logger))
	return &app{
		kv:      kv,
		creds:   creds,
		catalog: cat,
		state:   st,
		index:   search.New(cat.Routes, cat.Suppliers, st),
		logger:  logger,
	}, nil
}

func (a *app) Close() error {
	return a.kv.Close()
}

func failCatalog(f *OutputFormatter, err error) error {
	var le *catalog.LoadError
	if errors.As(err, &le) {
		var details any
		if le.Pos.IsValid() {
			details = map[string]any{"position": fmt.Sprintf("%s:%d:%d", le.Pos.Filename(), le.Pos.Line(), le.Pos.Column())}
		}
		return f.Fail(ExitCommandError, le.Code, le.Message, details)
	}
	return f.Fail(ExitCommandError, ErrCodeUsage, fmt.Sprintf("load catalog: %v", err), nil)
}
