// Package bootstrap assembles the runtime graph shared by the interactive
// client and the headless commands.
package bootstrap

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/rs/zerolog"

	"meetlens/api"
	"meetlens/config"
	"meetlens/export"
	"meetlens/logging"
	"meetlens/tui"
	"meetlens/ui"
)

// Options adjust what Build loads. Zero values mean "use the config".
type Options struct {
	ConfigPath string
	BaseURL    string
	LogLevel   string

	// Interactive sends the log to the configured file instead of LogOutput.
	Interactive bool
	LogOutput   io.Writer

	// ClipboardOutput receives OSC 52 sequences; nil means stderr.
	ClipboardOutput io.Writer
}

// App is the assembled runtime graph.
type App struct {
	Config    *config.Config
	Logger    zerolog.Logger
	State     *config.StateStore
	Client    *api.Client
	Presenter *ui.Presenter
	Writer    *export.Writer
	Clipboard export.Clipboard

	logCloser io.Closer
}

// Build wires config, logger, state store, API client and presenter, in
// that order. The first failing step aborts the build.
func Build(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if opts.BaseURL != "" {
		cfg.APIBaseURL = opts.BaseURL
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logCfg := &logging.Config{
		Level:      logging.Level(cfg.LogLevel),
		JSONFormat: cfg.LogJSON,
		Output:     opts.LogOutput,
	}
	// The screen belongs to the client, so interactive runs always log to a file.
	if opts.Interactive {
		logCfg.FilePath = cfg.LogFile
		if logCfg.FilePath == "" {
			logCfg.FilePath = filepath.Join(config.ConfigDir(), config.DefaultLogFile)
		}
	}
	logger, logCloser, err := logging.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("opening log: %w", err)
	}

	state, err := config.OpenStateStore(cfg.StateFile)
	if err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("opening state store: %w", err)
	}

	client := api.NewClient(cfg.APIBaseURL,
		api.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		api.WithLogger(logger.With().Str("component", "api").Logger()),
	)

	app := &App{
		Config:    cfg,
		Logger:    logger,
		State:     state,
		Client:    client,
		Presenter: ui.NewPresenter(state),
		Writer:    export.NewWriter(cfg.DownloadDir),
		Clipboard: export.NewOSC52Clipboard(opts.ClipboardOutput),
		logCloser: logCloser,
	}

	logger.Debug().
		Str("api_base_url", cfg.APIBaseURL).
		Str("download_dir", cfg.DownloadDir).
		Str("state_file", cfg.StateFile).
		Str("theme", app.Presenter.Theme().String()).
		Msg("bootstrap complete")

	return app, nil
}

// Deps returns the dependencies for the interactive client.
func (a *App) Deps() tui.Deps {
	return tui.Deps{
		Service:   a.Client,
		Presenter: a.Presenter,
		Clipboard: a.Clipboard,
		Writer:    a.Writer,
		Logger:    a.Logger.With().Str("component", "tui").Logger(),
	}
}

// Close releases the log file.
func (a *App) Close() error {
	if a == nil || a.logCloser == nil {
		return nil
	}
	return a.logCloser.Close()
}
