// Package constants provides shared constants used throughout the cbxmatch codebase.
// This includes matching thresholds, business-score weights, input limits, file
// permissions, and other values that should be consistent across the application.
package constants

import "time"

// Matching threshold constants define the similarity cut-offs used by the engine
const (
	// DefaultCompanyThreshold is the minimum company-name ratio for a candidate to be eligible
	DefaultCompanyThreshold = 70

	// DefaultAddressThreshold is the minimum address ratio for an address to be considered matching
	DefaultAddressThreshold = 80

	// PerfectNameScore is the name ratio at which a candidate enters the perfect tier
	PerfectNameScore = 95

	// HighNameScore is the name ratio at which a candidate enters the high tier
	HighNameScore = 90

	// AuditNameScore is the minimum name ratio for an entity to appear in the audit trail
	AuditNameScore = 70

	// AmbiguousNameScore is the name ratio from which a match without address corroboration is ambiguous
	AmbiguousNameScore = 70

	// AmbiguousAddressScore is the address ratio below which a name-only match is ambiguous
	AmbiguousAddressScore = 70

	// MinimumNameScore is the final sanity gate; selections below it are discarded
	MinimumNameScore = 50

	// HiringClientFuzzyScore is the ratio at which two hiring-client names are considered the same
	HiringClientFuzzyScore = 85

	// ForcedMatchScore is the synthetic name and address ratio given to forced matches
	ForcedMatchScore = 100
)

// Business score weight constants (validated defaults)
const (
	// ModuleWeight is the score added per registry module
	ModuleWeight = 3.0

	// RelationshipWeight is the score added per hiring-client relationship
	RelationshipWeight = 0.5

	// RelationshipCap caps the total relationship contribution
	RelationshipCap = 5.0

	// ContactMatchBonus is added when email, first and last name all match
	ContactMatchBonus = 30.0

	// PostalMatchBonus is added on strict postal code equality
	PostalMatchBonus = 25.0

	// SuiteMatchBonus is added when suite keywords intersect
	SuiteMatchBonus = 15.0

	// LocationMultiplier scales the location proximity bonus
	LocationMultiplier = 2.0

	// CombinedRelationshipWeight is the per-relationship weight of the combined tier
	CombinedRelationshipWeight = 20.0
)

// Location proximity outcomes, checked in this order
const (
	LocationSameAddress     = 25
	LocationSameCity        = 15
	LocationSameState       = 10
	LocationSameCountry     = 8
	LocationCountryMismatch = -15
)

// Limit constants define input limits and capacities
const (
	// RegistryColumns is the exact number of columns in a CBX registry export
	RegistryColumns = 28

	// HiringClientColumns is the minimum number of columns in a hiring-client sheet
	HiringClientColumns = 41

	// MaxHiringClientRows is the largest hiring-client sheet accepted without a warning
	MaxHiringClientRows = 10000

	// MaxHiringClientColumns is the widest hiring-client sheet accepted without a warning
	MaxHiringClientColumns = 250

	// MinMeaningfulNameLength is the shortest registry name considered meaningful for auditing
	MinMeaningfulNameLength = 3

	// AbbreviationMinLength is the shortest abbreviation considered for hiring-client matching
	AbbreviationMinLength = 2
)

// Time constants
const (
	// AssociationFeeWindow is how far out an expiration must be for an association fee
	AssociationFeeWindow = 60 * 24 * time.Hour

	// ProrationPeriod is the subscription period used to prorate upgrade prices
	ProrationPeriod = 365 * 24 * time.Hour
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Default values
const (
	// DefaultListSeparator separates items inside registry list cells
	DefaultListSeparator = ";"

	// DefaultConfigName is the base name of the optional configuration file
	DefaultConfigName = ".cbxmatch"

	// EnvPrefix is the prefix of environment variables read by the CLI
	EnvPrefix = "CBXMATCH"
)

// Format constants
const (
	// ExpirationDateShort is the first expiration date layout tried (DD/MM/YY)
	ExpirationDateShort = "2/1/06"

	// ExpirationDateLong is the fallback expiration date layout (DD/MM/YYYY)
	ExpirationDateLong = "2/1/2006"

	// ExpirationDateOutput is the layout used when writing expiration dates
	ExpirationDateOutput = "2006-01-02 15:04:05"
)
