// Package app provides the application context and dependency management
// for the cbxmatch CLI. It centralizes configuration, logging and the
// creation of matchers.
package app

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/cbxmatch"
	"github.com/agentstation/cbxmatch/cmd/application"
)

// App represents the cbxmatch application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
}

var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
// Configuration is loaded from the environment and the default config
// file unless an option replaces it.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Settings returns the resolved matching and input settings.
func (a *App) Settings() application.Settings {
	return a.config.Settings
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Matcher creates a matcher from the settings, adjusted by opts.
func (a *App) Matcher(opts ...cbxmatch.Option) (cbxmatch.Matcher, error) {
	return cbxmatch.New(append(a.matcherOptions(), opts...)...)
}

// matcherOptions constructs matcher options from the settings.
func (a *App) matcherOptions() []cbxmatch.Option {
	s := a.config.Settings
	return []cbxmatch.Option{
		cbxmatch.WithCompanyThreshold(s.CompanyThreshold),
		cbxmatch.WithAddressThreshold(s.AddressThreshold),
		cbxmatch.WithListSeparator(s.ListSeparator),
		cbxmatch.WithGenericDomains(s.GenericDomains...),
		cbxmatch.WithGenericNameWords(s.GenericNameWords...),
		cbxmatch.WithIgnoreWarnings(s.IgnoreWarnings),
		cbxmatch.WithWorkers(s.Workers),
	}
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}
