// Package output provides utilities for formatting a handover record for
// human review.
package output

import (
	"fmt"
	"strings"

	"github.com/evergreen-digital/contract-handover/internal/derive"
	"github.com/evergreen-digital/contract-handover/internal/form"
	"github.com/evergreen-digital/contract-handover/pkg/constants"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// SummaryFormat renders the step-5 review summary as plain text. Amounts
// are grouped with thousands separators for readability; the exported CSV
// keeps plain two-decimal formatting.
func SummaryFormat(fields form.Fields, derived derive.Values) string {
	p := message.NewPrinter(language.BritishEnglish)
	var sb strings.Builder

	sb.WriteString("--- Client Information ---\n")
	fmt.Fprintf(&sb, "Business Name: %s\n", fields.ClientBusinessName)
	fmt.Fprintf(&sb, "Location: %s\n", fields.ClientLocation)
	fmt.Fprintf(&sb, "Address: %s\n", fields.ClientRegisteredAddress)
	fmt.Fprintf(&sb, "Postcode: %s\n", fields.ClientPostcode)
	fmt.Fprintf(&sb, "Representative: %s %s (%s)\n", fields.ClientRepFirstName, fields.ClientRepLastName, fields.ClientRepTitle)
	fmt.Fprintf(&sb, "Email: %s\n", fields.ClientRepEmail)
	fmt.Fprintf(&sb, "Agreement Date: %s\n", fields.AgreementDate)

	sb.WriteString("\n--- Services Selected ---\n")
	if fields.IsFullPackage == form.FullPackageYes {
		fmt.Fprintf(&sb, "Package: %s\n", form.FullPackageLabel)
	} else {
		fmt.Fprintf(&sb, "Package: Individual Services\n")
		fmt.Fprintf(&sb, "Selected: %s\n", strings.Join(fields.SelectedServiceLabels(), ", "))
	}

	sb.WriteString("\n--- Financial Details ---\n")
	fmt.Fprintf(&sb, "Project Value (Ex VAT): £%s\n", fields.TotalProjectValueExVAT)
	_, _ = p.Fprintf(&sb, "Project Value (Inc VAT): £%.2f\n", derived.TotalProjectValueIncVAT)
	fmt.Fprintf(&sb, "Onboarding Fee (Ex VAT): £%s\n", fields.OnboardingFeeExVAT)
	_, _ = p.Fprintf(&sb, "Onboarding Fee (Inc VAT): £%.2f\n", derived.OnboardingFeeIncVAT)
	fmt.Fprintf(&sb, "VAT Applicable: %s\n", yesNo(derived.VATApplicable))
	fmt.Fprintf(&sb, "VAT Rate: %.0f%%\n", derived.VATRate*constants.PercentageMultiplier)
	_, _ = p.Fprintf(&sb, "Total VAT Applied: £%.2f\n", derived.TotalVATApplied)

	sb.WriteString("\n--- Ad Budget & Management Fees ---\n")
	fmt.Fprintf(&sb, "Monthly Ad Budget (Ex VAT): £%s\n", fields.InitialAdBudgetExVAT)
	_, _ = p.Fprintf(&sb, "Ad Management Fee (Ex VAT): £%.2f\n", derived.AdSpendManagementFeeExVAT)
	_, _ = p.Fprintf(&sb, "Ad Management Fee (Inc VAT): £%.2f\n", derived.AdSpendManagementFeeIncVAT)

	sb.WriteString("\n--- Payment Structure & Collection ---\n")
	fmt.Fprintf(&sb, "Payment Option: %s\n", fields.PaymentOption)
	if derived.PaymentSchedule.Description != "" {
		fmt.Fprintf(&sb, "Description: %s\n", derived.PaymentSchedule.Description)
	}
	for _, inst := range derived.PaymentSchedule.Installments {
		_, _ = p.Fprintf(&sb, "%s: £%.2f\n", inst.Label, inst.Amount)
	}
	fmt.Fprintf(&sb, "Payment Collected: £%s\n", fields.PaymentCollectedIncVAT)

	sb.WriteString("\n--- Handover Notes ---\n")
	fmt.Fprintf(&sb, "%s\n", fields.HandoverNotes)

	sb.WriteString("\n--- Sales Representative ---\n")
	fmt.Fprintf(&sb, "Name: %s\n", fields.SalesRepName)
	fmt.Fprintf(&sb, "Email: %s\n", fields.SalesRepEmail)

	return sb.String()
}

func yesNo(val bool) string {
	if val {
		return "Y"
	}
	return "N"
}
