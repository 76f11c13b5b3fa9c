// Package validate checks the handover record one wizard step at a time and
// reports problems as a field-keyed error map. Validators are pure; the
// caller owns storing or discarding the returned map.
package validate

import (
	"regexp"

	"github.com/evergreen-digital/contract-handover/internal/form"
	"github.com/evergreen-digital/contract-handover/pkg/mathutil"
)

// ErrorMap maps a field or group key to a human-readable message. An empty
// map means the step is satisfiable.
type ErrorMap map[string]string

// ErrorKeySummary keys the confirmation error raised when submission is
// attempted without the summary being confirmed.
const ErrorKeySummary = "summary"

var (
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	ukPostcodePattern = regexp.MustCompile(`(?i)^[A-Z]{1,2}[0-9][A-Z0-9]?\s?[0-9][A-Z]{2}$`)
	usZipcodePattern  = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

// Step validates the record against the rules of the given wizard step.
// Steps outside 1..4 (including the summary step) have no field rules and
// return an empty map.
func Step(step int, fields form.Fields) ErrorMap {
	errs := ErrorMap{}
	switch step {
	case 1:
		validateClientAndSales(fields, errs)
	case 2:
		validateServiceSelection(fields, errs)
	case 3:
		validateFinancialInputs(fields, errs)
	case 4:
		validatePaymentCollection(fields, errs)
	}
	return errs
}

func validateClientAndSales(fields form.Fields, errs ErrorMap) {
	required := []struct {
		key     string
		value   string
		message string
	}{
		{form.FieldClientBusinessName, fields.ClientBusinessName, "Client business name is required"},
		{form.FieldClientRegisteredAddress, fields.ClientRegisteredAddress, "Client registered address is required"},
		{form.FieldClientPostcode, fields.ClientPostcode, "Postcode/zipcode is required"},
		{form.FieldClientRepFirstName, fields.ClientRepFirstName, "Client representative first name is required"},
		{form.FieldClientRepLastName, fields.ClientRepLastName, "Client representative last name is required"},
		{form.FieldClientRepTitle, fields.ClientRepTitle, "Client representative title is required"},
		{form.FieldClientRepEmail, fields.ClientRepEmail, "Client representative email is required"},
		{form.FieldClientLocation, fields.ClientLocation, "Client location is required"},
		{form.FieldSalesRepName, fields.SalesRepName, "Sales representative name is required"},
		{form.FieldSalesRepEmail, fields.SalesRepEmail, "Sales representative email is required"},
		{form.FieldAgreementDate, fields.AgreementDate, "Agreement date is required"},
	}
	for _, field := range required {
		if field.value == "" {
			errs[field.key] = field.message
		}
	}

	if fields.ClientRepEmail != "" && !emailPattern.MatchString(fields.ClientRepEmail) {
		errs[form.FieldClientRepEmail] = "Please enter a valid email address"
	}
	if fields.SalesRepEmail != "" && !emailPattern.MatchString(fields.SalesRepEmail) {
		errs[form.FieldSalesRepEmail] = "Please enter a valid email address"
	}

	// Postcode format is only checked once a location is chosen and a value
	// is present; the required check above covers absence.
	if fields.ClientPostcode != "" {
		switch fields.ClientLocation {
		case form.LocationUK:
			if !ukPostcodePattern.MatchString(fields.ClientPostcode) {
				errs[form.FieldClientPostcode] = "Please enter a valid UK postcode (e.g., SW1A 1AA)"
			}
		case form.LocationNonUK:
			if !usZipcodePattern.MatchString(fields.ClientPostcode) {
				errs[form.FieldClientPostcode] = "Please enter a valid zipcode (e.g., 12345 or 12345-6789)"
			}
		}
	}
}

func validateServiceSelection(fields form.Fields, errs ErrorMap) {
	if fields.IsFullPackage == "" {
		errs[form.FieldIsFullPackage] = "Please select whether this is a full package or individual services"
	}
	if fields.IsFullPackage == form.FullPackageNo && !fields.HasSelectedService() {
		errs["services"] = "Please select at least one individual service"
	}
}

func validateFinancialInputs(fields form.Fields, errs ErrorMap) {
	checkAmount(errs, form.FieldTotalProjectValueExVAT, fields.TotalProjectValueExVAT, "Total project value is required")
	checkAmount(errs, form.FieldOnboardingFeeExVAT, fields.OnboardingFeeExVAT, "Onboarding fee is required")
	checkAmount(errs, form.FieldInitialAdBudgetExVAT, fields.InitialAdBudgetExVAT, "Initial ad budget is required")
}

func validatePaymentCollection(fields form.Fields, errs ErrorMap) {
	if fields.PaymentOption == "" {
		errs[form.FieldPaymentOption] = "Please select a payment option"
	}
	checkAmount(errs, form.FieldPaymentCollectedIncVAT, fields.PaymentCollectedIncVAT, "Payment collected amount is required")
	if fields.HandoverNotes == "" {
		errs[form.FieldHandoverNotes] = "Handover notes are required"
	}
}

// checkAmount distinguishes a missing monetary field from one that was
// entered but does not parse as a number.
func checkAmount(errs ErrorMap, key, value, requiredMessage string) {
	if value == "" {
		errs[key] = requiredMessage
		return
	}
	if !mathutil.IsNumeric(value) {
		errs[key] = "Please enter a valid number"
	}
}
