package cbxmatch

import (
	"time"

	"github.com/agentstation/cbxmatch/pkg/config"
)

// Option adjusts the configuration of a Matcher.
type Option func(*config.Config) error

// WithConfig replaces the whole configuration. Options applied after it
// still adjust it.
func WithConfig(cfg config.Config) Option {
	return func(c *config.Config) error {
		*c = cfg
		return nil
	}
}

// WithCompanyThreshold sets the minimum company-name ratio of a candidate.
func WithCompanyThreshold(ratio int) Option {
	return func(c *config.Config) error {
		c.CompanyThreshold = ratio
		return nil
	}
}

// WithAddressThreshold sets the address ratio that corroborates a match.
func WithAddressThreshold(ratio int) Option {
	return func(c *config.Config) error {
		c.AddressThreshold = ratio
		return nil
	}
}

// WithListSeparator sets the separator of registry list cells.
func WithListSeparator(sep string) Option {
	return func(c *config.Config) error {
		c.ListSeparator = sep
		return nil
	}
}

// WithGenericDomains adds email domains that carry no company identity.
func WithGenericDomains(domains ...string) Option {
	return func(c *config.Config) error {
		*c = c.WithGenericDomains(domains...)
		return nil
	}
}

// WithGenericNameWords adds words removed from company names.
func WithGenericNameWords(words ...string) Option {
	return func(c *config.Config) error {
		*c = c.WithGenericNameWords(words...)
		return nil
	}
}

// WithWeights sets the business-score weights.
func WithWeights(w config.Weights) Option {
	return func(c *config.Config) error {
		c.Weights = w
		return nil
	}
}

// WithIgnoreWarnings keeps matching when data warnings are found.
func WithIgnoreWarnings(ignore bool) Option {
	return func(c *config.Config) error {
		c.IgnoreWarnings = ignore
		return nil
	}
}

// WithWorkers sets how many records are matched concurrently.
func WithWorkers(n int) Option {
	return func(c *config.Config) error {
		c.Workers = n
		return nil
	}
}

// WithClock sets the clock used for expiration windows.
func WithClock(now func() time.Time) Option {
	return func(c *config.Config) error {
		*c = c.WithClock(now)
		return nil
	}
}
