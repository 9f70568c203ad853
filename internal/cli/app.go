package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/RichardEWillis/pi-label-inventory/internal/config"
	"github.com/RichardEWillis/pi-label-inventory/internal/inventory"
	"github.com/RichardEWillis/pi-label-inventory/internal/session"
)

// app is what every inventory command starts from: resolved config, an
// output formatter, a logger and an empty session.
type app struct {
	opts    *RootOptions
	cfg     *config.Config
	out     *OutputFormatter
	logger  *slog.Logger
	session *session.Session
}

func newApp(opts *RootOptions, cmd *cobra.Command) (*app, error) {
	out := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, out.Fail("failed to load config", errConfig{err})
	}
	if cfg.Verbose {
		out.Verbose = true
	}

	// Configure logging based on verbose flag
	logLevel := slog.LevelWarn
	if out.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(out.GetErrWriter(), &slog.HandlerOptions{
		Level: logLevel,
	})
	logger := slog.New(handler)

	return &app{
		opts:    opts,
		cfg:     cfg,
		out:     out,
		logger:  logger,
		session: session.New(cfg, logger),
	}, nil
}

// inventoryPath is --file, falling back to the configured inventory.
func (a *app) inventoryPath() string {
	if a.opts.File != "" {
		return a.opts.File
	}
	return a.cfg.Inventory
}

// open loads the inventory. A missing file fails unless create is set, in
// which case an empty inventory is started that saves to the same path.
func (a *app) open(create bool) error {
	path := a.inventoryPath()
	if path == "" {
		return a.out.Fail("failed to open inventory", session.ErrNoFile)
	}
	_, err := a.session.Open(path)
	if err == nil {
		return nil
	}
	if create && inventory.IsNotFound(err) {
		a.session.Create(path)
		return nil
	}
	return a.out.Fail("failed to open inventory", err)
}

// save writes the inventory back to the file it came from.
func (a *app) save() error {
	if _, err := a.session.Save(""); err != nil {
		return a.out.Fail("failed to save inventory", err)
	}
	return nil
}
