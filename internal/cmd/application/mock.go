// Package application provides a mock Application for command tests.
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/cbxmatch"
	"github.com/agentstation/cbxmatch/cmd/application"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default value.
//
// Example Usage:
//
//	mock := &application.Mock{
//	    OutputFormatFunc: func() string { return "json" },
//	}
//	cmd := match.NewCommand(mock)
type Mock struct {
	SettingsFunc     func() application.Settings
	MatcherFunc      func(opts ...cbxmatch.Option) (cbxmatch.Matcher, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

var _ application.Application = (*Mock)(nil)

// Settings returns the mock settings, or the defaults of a matching run.
func (m *Mock) Settings() application.Settings {
	if m.SettingsFunc != nil {
		return m.SettingsFunc()
	}
	return application.Settings{CompanyThreshold: 70, AddressThreshold: 80, ListSeparator: ";", Workers: 1}
}

// Matcher returns a matcher using the mock function, or a real matcher
// built from opts.
func (m *Mock) Matcher(opts ...cbxmatch.Option) (cbxmatch.Matcher, error) {
	if m.MatcherFunc != nil {
		return m.MatcherFunc(opts...)
	}
	return cbxmatch.New(opts...)
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the mock format or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns the mock version or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns the mock commit or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns the mock build date or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns the mock builder or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}
