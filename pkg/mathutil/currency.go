// Package mathutil provides common mathematical utility functions for
// currency handling.
package mathutil

import (
	"math"
	"strconv"
	"strings"

	"github.com/evergreen-digital/contract-handover/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons and for display.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// ParseAmount performs a best-effort parse of a raw monetary input string.
// Non-numeric or empty input parses to 0; derivation treats such fields as
// absent while validation reports them separately.
func ParseAmount(raw string) float64 {
	val, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return val
}

// IsNumeric reports whether a raw input string parses as a number. An empty
// string is not numeric; required-field checks handle that case first.
func IsNumeric(raw string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	return err == nil
}

// FormatAmount renders a monetary value with exactly two decimal places,
// the fixed precision of the exported record.
func FormatAmount(val float64) string {
	return strconv.FormatFloat(Round(val), 'f', 2, 64)
}
