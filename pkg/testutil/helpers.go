// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/evergreen-digital/contract-handover/internal/form"
)

// CompleteFields returns a fully filled, valid UK handover record matching
// the reference scenario used across the test suites: project value 10000,
// onboarding 2000, ad budget 12000, payment option A.
func CompleteFields() form.Fields {
	fields := form.NewFields()
	fields.ClientBusinessName = "Acme Events Ltd"
	fields.ClientRegisteredAddress = "1 High Street, London"
	fields.ClientPostcode = "SW1A 1AA"
	fields.ClientRepFirstName = "Jordan"
	fields.ClientRepLastName = "Smith"
	fields.ClientRepTitle = "Marketing Director"
	fields.ClientRepEmail = "jordan.smith@acme-events.co.uk"
	fields.ClientLocation = form.LocationUK
	fields.SalesRepName = "Sam Taylor"
	fields.SalesRepEmail = "sam.taylor@evergreen.example"
	fields.AgreementDate = "2025-06-15"
	fields.IsFullPackage = form.FullPackageNo
	fields.Services[form.ServiceGoogleAds] = true
	fields.Services[form.ServiceMetaAds] = true
	fields.TotalProjectValueExVAT = "10000"
	fields.OnboardingFeeExVAT = "2000"
	fields.InitialAdBudgetExVAT = "12000"
	fields.PaymentOption = form.PaymentOptionA
	fields.PaymentCollectedIncVAT = "14400"
	fields.HandoverNotes = "First payment collected on signature."
	return fields
}
