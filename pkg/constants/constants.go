// Package constants provides shared constants for the contract-handover application.
package constants

// AgreementDateLayout is the format expected for agreement dates entered on
// the form and used in exported filenames.
const AgreementDateLayout = "2006-01-02"

// Financial constants
const (
	// UKVATRate is the VAT rate applied to UK clients.
	UKVATRate = 0.20

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// ContractTermMonths is the standard project term all payment plans are
	// quoted against.
	ContractTermMonths = 4
)

// Wizard step constants
const (
	// FirstStep is the initial wizard step.
	FirstStep = 1

	// FinalStep is the summary/submission step.
	FinalStep = 5
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultNotifierTimeoutSeconds is the default timeout for webhook delivery
	DefaultNotifierTimeoutSeconds = 10
)

// Export constants
const (
	// CSVContentType is the MIME type of the exported artifact.
	CSVContentType = "text/csv; charset=utf-8"

	// ExportFilenameSuffix is appended to every exported artifact name.
	ExportFilenameSuffix = "SalesContractInfo.csv"
)
