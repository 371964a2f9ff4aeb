// Package application provides the application interface for cbxmatch commands.
//
// Commands accept an Application rather than the concrete App so they can be
// tested with internal/cmd/application.Mock:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            m, err := app.Matcher(cbxmatch.WithWorkers(4))
//	            if err != nil {
//	                return err
//	            }
//	            // ... use m
//	            return nil
//	        },
//	    }
//	}
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/cbxmatch"
)

// Settings are the matching and input settings resolved from the config
// file, the environment and .env files. Command flags default to them.
type Settings struct {
	CompanyThreshold int
	AddressThreshold int
	ListSeparator    string

	// GenericDomains and GenericNameWords extend the built-in lists.
	GenericDomains   []string
	GenericNameWords []string

	RegistryEncoding string
	Workers          int
	IgnoreWarnings   bool
}

// Application provides what commands need from the application.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Settings returns the resolved matching and input settings.
	Settings() Settings

	// Matcher creates a matcher from the settings, adjusted by opts.
	Matcher(opts ...cbxmatch.Option) (cbxmatch.Matcher, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
