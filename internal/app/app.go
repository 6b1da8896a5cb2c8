package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/five82/craftbook/internal/config"
	"github.com/five82/craftbook/internal/icons"
	"github.com/five82/craftbook/internal/localstore"
	"github.com/five82/craftbook/internal/logging"
	"github.com/five82/craftbook/internal/sheet"
	"github.com/five82/craftbook/internal/ui"
	"github.com/five82/craftbook/internal/urlstate"
)

// Options configure the craftbook application.
type Options struct {
	ConfigPath string    // empty uses ~/.config/craftbook/config.toml
	SheetURL   string    // overrides sheet_url when set
	Link       string    // starting deep link or bare query string
	Verbose    bool      // debug-level logging
	Stdout     io.Writer // receives the final share link; nil uses os.Stdout
}

// Env holds the services shared by the browser and the subcommands.
type Env struct {
	Config  config.Config
	Log     *zap.Logger
	Storage *localstore.DB
	Icons   *icons.Table
	Sheet   *sheet.Client
}

// Open loads the configuration and builds every service. Callers must Close
// the returned Env.
func Open(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.SheetURL); v != "" {
		cfg.SheetURL = v
	}

	logger, err := logging.New(cfg.LogPath(), opts.Verbose)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	storage, err := localstore.Open(cfg.StoragePath())
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("open local storage: %w", err)
	}

	env := &Env{Config: cfg, Log: logger, Storage: storage}

	env.Icons, err = icons.Load(cfg.IconsFile)
	if err != nil {
		_ = env.Close()
		return nil, fmt.Errorf("load icons: %w", err)
	}

	env.Sheet, err = sheet.NewClient(cfg.SheetURL, cfg.FetchTimeout, logger)
	if err != nil {
		_ = env.Close()
		return nil, fmt.Errorf("init sheet client: %w", err)
	}

	logger.Debug("environment ready",
		zap.String("sheet", cfg.SheetURL),
		zap.String("storage", cfg.StoragePath()),
		zap.String("icons", cfg.IconsFile))
	return env, nil
}

// Close releases local storage and flushes the logger.
func (e *Env) Close() error {
	var errs []error
	if e.Storage != nil {
		if err := e.Storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close local storage: %w", err))
		}
	}
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	return errors.Join(errs...)
}

// sharer is the part of the final UI model Run needs.
type sharer interface {
	ShareLink() (string, bool)
}

// runUI is swapped out in tests.
var runUI = func(opts ui.Options) (sharer, error) {
	return ui.Run(opts)
}

// Run boots the craftbook browser until the user quits or ctx is cancelled.
// When any filter is active on exit the share link is printed.
func Run(ctx context.Context, opts Options) error {
	env, err := Open(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	link, err := urlstate.Resolve(env.Config.ShareURL, opts.Link)
	if err != nil {
		return fmt.Errorf("resolve link: %w", err)
	}

	env.Log.Info("craftbook starting", zap.String("link", link))
	final, err := runUI(ui.Options{
		Context:    ctx,
		Loader:     env.Sheet,
		Storage:    env.Storage,
		Icons:      env.Icons,
		Link:       link,
		PageLength: env.Config.PageLength,
		Logger:     env.Log,
	})
	if err != nil {
		env.Log.Error("browser stopped", zap.Error(err))
		return fmt.Errorf("run browser: %w", err)
	}

	if share, active := final.ShareLink(); active {
		out := opts.Stdout
		if out == nil {
			out = os.Stdout
		}
		fmt.Fprintln(out, share)
	}
	return nil
}
