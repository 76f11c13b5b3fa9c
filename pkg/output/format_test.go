package output

import (
	"strings"
	"testing"

	"github.com/evergreen-digital/contract-handover/internal/derive"
	"github.com/evergreen-digital/contract-handover/internal/form"
	"github.com/evergreen-digital/contract-handover/pkg/testutil"
)

func TestSummaryFormat(t *testing.T) {
	fields := testutil.CompleteFields()
	summary := SummaryFormat(fields, derive.Derive(fields))

	fragments := []string{
		"--- Client Information ---",
		"Business Name: Acme Events Ltd",
		"Agreement Date: 2025-06-15",
		"Package: Individual Services",
		"Selected: Google Ads, Meta Ads",
		"Project Value (Inc VAT): £12,000.00",
		"VAT Applicable: Y",
		"VAT Rate: 20%",
		"Ad Management Fee (Inc VAT): £1,080.00",
		"Payment Option: A",
		"Description: 100% upfront payment",
		"Upfront Payment: £14,400.00",
		"Payment Collected: £14400",
	}
	for _, fragment := range fragments {
		if !strings.Contains(summary, fragment) {
			t.Errorf("summary missing %q:\n%s", fragment, summary)
		}
	}
}

func TestSummaryFormatFullPackage(t *testing.T) {
	fields := testutil.CompleteFields()
	fields.IsFullPackage = form.FullPackageYes
	summary := SummaryFormat(fields, derive.Derive(fields))

	if !strings.Contains(summary, "Package: "+form.FullPackageLabel) {
		t.Errorf("summary missing the full package label:\n%s", summary)
	}
	if strings.Contains(summary, "Selected:") {
		t.Errorf("full package summary should not list individual services:\n%s", summary)
	}
}

func TestSummaryFormatNonUK(t *testing.T) {
	fields := testutil.CompleteFields()
	fields.ClientLocation = form.LocationNonUK
	summary := SummaryFormat(fields, derive.Derive(fields))

	if !strings.Contains(summary, "VAT Applicable: N") {
		t.Errorf("expected VAT Applicable: N for a non-UK client:\n%s", summary)
	}
	if !strings.Contains(summary, "VAT Rate: 0%") {
		t.Errorf("expected a zero VAT rate for a non-UK client:\n%s", summary)
	}
}

func TestSummaryFormatInstallmentsPerOption(t *testing.T) {
	tests := []struct {
		name   string
		option string
		labels []string
	}{
		{
			name:   "Option B lists three installments",
			option: form.PaymentOptionB,
			labels: []string{"Initial Payment:", "Month 3 Payment:", "Month 4 Payment:"},
		},
		{
			name:   "Option C lists four installments",
			option: form.PaymentOptionC,
			labels: []string{"Initial Payment:", "Month 2 Payment:", "Month 3 Payment:", "Month 4 Payment:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := testutil.CompleteFields()
			fields.PaymentOption = tt.option
			summary := SummaryFormat(fields, derive.Derive(fields))
			for _, label := range tt.labels {
				if !strings.Contains(summary, label) {
					t.Errorf("summary missing %q for option %s:\n%s", label, tt.option, summary)
				}
			}
		})
	}
}
