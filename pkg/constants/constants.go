// Package constants provides shared constants for the fha-loan-estimate application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DaysPerYear is the day-count basis for per-diem interest
	DaysPerYear = 365

	// InterimInterestDays is the fixed days-to-month-end proration at closing
	InterimInterestDays = 15

	// DefaultTermYears is the default loan term in years
	DefaultTermYears = 30

	// DefaultTermMonths is the default loan term in months
	DefaultTermMonths = DefaultTermYears * MonthsPerYear

	// MinimumCreditScore is the FICO floor for an FHA quote
	MinimumCreditScore = 640

	// PrepaidInsuranceMonths is the months of homeowner's insurance collected as a prepaid
	PrepaidInsuranceMonths = 12

	// EscrowMonths is the months of taxes and insurance collected into the initial escrow
	EscrowMonths = 3
)

// Decline reason codes
const (
	DeclineMissingFields = "missing_fields"
	DeclinePropertyType  = "property_type"
	DeclineCreditScore   = "credit_score"
	DeclineLoanMinimum   = "loan_minimum"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the quote API
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestBytes is the default maximum request body size for quote payloads (64 KB)
	DefaultMaxRequestBytes int64 = 64 * 1024
)
