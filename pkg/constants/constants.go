// Package constants provides shared constants for the equity-unlock application.
package constants

import "time"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// DefaultTermYears is the loan term used for both the existing mortgage
	// proxy and the new mortgage.
	DefaultTermYears = 30

	// SellingCostRate is the share of the current home value lost to agent
	// commission and seller closing costs.
	SellingCostRate = 0.07
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// OutputFormatYAML is the YAML output format
	OutputFormatYAML = "yaml"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes environment variable overrides, e.g. EQUITY_UNLOCK_ADVISOR_APIKEY.
	EnvPrefix = "EQUITY_UNLOCK"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultServerReadTimeout bounds reading a request
	DefaultServerReadTimeout = 15 * time.Second

	// DefaultServerWriteTimeout bounds writing a response; it covers an
	// advisor round trip
	DefaultServerWriteTimeout = 45 * time.Second

	// DefaultServerShutdownTimeout bounds graceful shutdown
	DefaultServerShutdownTimeout = 10 * time.Second
)

// Advisor defaults
const (
	// DefaultAdvisorModel is the generative model queried for insights
	DefaultAdvisorModel = "gemini-3-flash-preview"

	// DefaultAdvisorBaseURL is the Generative Language REST endpoint
	DefaultAdvisorBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultAdvisorTimeoutSeconds bounds a single insight request
	DefaultAdvisorTimeoutSeconds = 30

	// DefaultInsightCacheTTLMinutes is how long a generated insight is reused
	DefaultInsightCacheTTLMinutes = 60

	// DefaultCachePingTimeout bounds the startup check of a redis cache
	DefaultCachePingTimeout = 2 * time.Second
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)
