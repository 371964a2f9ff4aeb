// Package config holds the immutable matching configuration threaded through
// every stage of the engine.
//
// A Config is a plain value: build it with Default, adjust it with the With*
// methods (which return modified copies) and check it with Validate before use.
package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/agentstation/cbxmatch/pkg/constants"
	"github.com/agentstation/cbxmatch/pkg/errors"
	"github.com/agentstation/cbxmatch/pkg/normalize"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Weights are the business-score weights used to break ties between candidates.
type Weights struct {
	Module          float64 `validate:"gte=0" yaml:"module" json:"module"`
	Relationship    float64 `validate:"gte=0" yaml:"relationship" json:"relationship"`
	RelationshipCap float64 `validate:"gte=0" yaml:"relationship_cap" json:"relationship_cap"`
	Contact         float64 `validate:"gte=0" yaml:"contact" json:"contact"`
	Postal          float64 `validate:"gte=0" yaml:"postal" json:"postal"`
	Suite           float64 `validate:"gte=0" yaml:"suite" json:"suite"`
	Location        float64 `validate:"gte=0" yaml:"location" json:"location"`
}

// DefaultWeights returns the validated default weights.
func DefaultWeights() Weights {
	return Weights{
		Module:          constants.ModuleWeight,
		Relationship:    constants.RelationshipWeight,
		RelationshipCap: constants.RelationshipCap,
		Contact:         constants.ContactMatchBonus,
		Postal:          constants.PostalMatchBonus,
		Suite:           constants.SuiteMatchBonus,
		Location:        constants.LocationMultiplier,
	}
}

// Config is the matching configuration.
type Config struct {
	// CompanyThreshold is the minimum company-name ratio for a candidate.
	CompanyThreshold int `validate:"gte=0,lte=100"`

	// AddressThreshold is the address ratio above which addresses corroborate a match.
	AddressThreshold int `validate:"gte=0,lte=100"`

	// ListSeparator splits list cells of the registry export.
	ListSeparator string `validate:"required"`

	// GenericDomains are email domains that carry no company identity.
	GenericDomains []string

	// GenericNameWords are removed from company names before comparison.
	GenericNameWords []string

	Weights Weights `validate:"required"`

	// IgnoreWarnings lets a run continue past data warnings.
	IgnoreWarnings bool

	// Workers bounds the number of records matched concurrently.
	Workers int `validate:"gte=1"`

	// Now is the clock used for expiration windows. Nil means time.Now.
	Now func() time.Time `validate:"-"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		CompanyThreshold: constants.DefaultCompanyThreshold,
		AddressThreshold: constants.DefaultAddressThreshold,
		ListSeparator:    constants.DefaultListSeparator,
		GenericDomains:   slices.Clone(BaseGenericDomains),
		GenericNameWords: slices.Clone(BaseGenericNameWords),
		Weights:          DefaultWeights(),
		Workers:          1,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return &errors.ValidationError{
				Field:   fe.StructNamespace(),
				Value:   fe.Value(),
				Message: fmt.Sprintf("rule '%s' expected '%s', got '%v'", fe.Tag(), fe.Param(), fe.Value()),
			}
		}
		return errors.NewConfigError("config", err.Error(), err)
	}
	return nil
}

// WithGenericDomains returns a copy with extra generic domains appended.
// Blank entries are skipped.
func (c Config) WithGenericDomains(extra ...string) Config {
	c.GenericDomains = appendNonBlank(slices.Clone(c.GenericDomains), extra, strings.ToLower)
	return c
}

// WithGenericNameWords returns a copy with extra generic company-name words appended.
func (c Config) WithGenericNameWords(extra ...string) Config {
	c.GenericNameWords = appendNonBlank(slices.Clone(c.GenericNameWords), extra, strings.ToLower)
	return c
}

// WithClock returns a copy using now as its clock.
func (c Config) WithClock(now func() time.Time) Config {
	c.Now = now
	return c
}

// Clock returns the current time according to the configuration.
func (c Config) Clock() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// SplitList splits a list cell using the configured separator.
// An empty cell yields an empty list.
func (c Config) SplitList(cell string) []string {
	if cell == "" {
		return nil
	}
	return strings.Split(cell, c.ListSeparator)
}

// IsGenericDomain reports whether the email's domain is a shared mailbox
// provider. Subdomains of a listed registrable domain are generic too.
// An email without a domain is generic.
func (c Config) IsGenericDomain(email string) bool {
	domain := normalize.EmailDomain(email)
	if domain == "" {
		return true
	}
	if slices.Contains(c.GenericDomains, domain) {
		return true
	}
	registrable := normalize.RegistrableDomain(domain)
	return registrable != domain && slices.Contains(c.GenericDomains, registrable)
}

func appendNonBlank(dst, src []string, fn func(string) string) []string {
	for _, s := range src {
		s = strings.TrimSpace(s)
		if s == "" || slices.Contains(dst, fn(s)) {
			continue
		}
		dst = append(dst, fn(s))
	}
	return dst
}
