// Package export serializes a handover record and its derived values into
// the flat CSV artifact handed to the finance team. The column set and
// order are part of the intake contract and must not change without
// coordinating with the downstream sheet.
package export

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/evergreen-digital/contract-handover/internal/derive"
	"github.com/evergreen-digital/contract-handover/internal/form"
	"github.com/evergreen-digital/contract-handover/pkg/constants"
	"github.com/evergreen-digital/contract-handover/pkg/mathutil"
)

// Column is one named cell of the exported record.
type Column struct {
	Name  string
	Value string
}

// Record is the ordered flat form of the combined record. Ordering is
// significant; it becomes the CSV header order.
type Record []Column

// Artifact is the materialized CSV file offered for download.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ErrEmptyRecord is returned when an artifact is requested for a record
// with no columns.
var ErrEmptyRecord = errors.New("export: record has no columns")

var filenameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9]`)

// ToRecord flattens the raw fields and derived values into the fixed column
// layout. Raw inputs pass through verbatim; derived amounts are formatted
// to exactly two decimal places. Payment-schedule columns are appended only
// for the chosen option.
func ToRecord(fields form.Fields, derived derive.Values) Record {
	record := Record{
		{"Client Business Name", fields.ClientBusinessName},
		{"Client Registered Address", fields.ClientRegisteredAddress},
		{"Client Postcode/Zipcode", fields.ClientPostcode},
		{"Client Rep First Name", fields.ClientRepFirstName},
		{"Client Rep Last Name", fields.ClientRepLastName},
		{"Client Rep Title", fields.ClientRepTitle},
		{"Client Rep Email", fields.ClientRepEmail},
		{"Client Location", fields.ClientLocation},
		{"Sales Rep Name", fields.SalesRepName},
		{"Sales Rep Email", fields.SalesRepEmail},
		{"Agreement Date", fields.AgreementDate},
		{"Full Package (Y/N)", yesNo(fields.IsFullPackage == form.FullPackageYes)},
		{"Services Selected", servicesDisplay(fields)},
		{"Total Project Value (Ex VAT) (£)", fields.TotalProjectValueExVAT},
		{"Total Project Value (Inc VAT) (£)", mathutil.FormatAmount(derived.TotalProjectValueIncVAT)},
		{"Onboarding Fee (Ex VAT) (£)", fields.OnboardingFeeExVAT},
		{"Onboarding Fee (Inc VAT) (£)", mathutil.FormatAmount(derived.OnboardingFeeIncVAT)},
		{"VAT Applicable (Y/N)", yesNo(derived.VATApplicable)},
		{"VAT Rate (%)", fmt.Sprintf("%.0f%%", derived.VATRate*constants.PercentageMultiplier)},
		{"Total VAT Applied (£)", mathutil.FormatAmount(derived.TotalVATApplied)},
		{"Initial Ad Budget (Ex VAT) (£)", fields.InitialAdBudgetExVAT},
		{"Ad Spend Management Fee (Ex VAT) (£)", mathutil.FormatAmount(derived.AdSpendManagementFeeExVAT)},
		{"Ad Spend Management Fee (Inc VAT) (£)", mathutil.FormatAmount(derived.AdSpendManagementFeeIncVAT)},
		{"Payment Option Selected", fields.PaymentOption},
		{"Payment Collected (Inc VAT) (£)", fields.PaymentCollectedIncVAT},
		{"Handover Notes", fields.HandoverNotes},
	}

	for _, label := range scheduleColumnLabels(fields.PaymentOption) {
		amount, _ := derived.PaymentSchedule.Amount(label)
		record = append(record, Column{
			Name:  label + " (£)",
			Value: mathutil.FormatAmount(amount),
		})
	}

	return record
}

// scheduleColumnLabels returns the installment labels exported for the
// given payment option, in column order. An unset option contributes no
// schedule columns.
func scheduleColumnLabels(option string) []string {
	switch option {
	case form.PaymentOptionA:
		return []string{derive.InstallmentUpfront}
	case form.PaymentOptionB:
		return []string{derive.InstallmentInitial, derive.InstallmentMonth3, derive.InstallmentMonth4}
	case form.PaymentOptionC:
		return []string{derive.InstallmentInitial, derive.InstallmentMonth2, derive.InstallmentMonth3, derive.InstallmentMonth4}
	default:
		return nil
	}
}

func servicesDisplay(fields form.Fields) string {
	if fields.IsFullPackage == form.FullPackageYes {
		return form.FullPackageLabel
	}
	return strings.Join(fields.SelectedServiceLabels(), ", ")
}

func yesNo(val bool) string {
	if val {
		return "Y"
	}
	return "N"
}

// ToArtifact renders the record as a two-line CSV file (header row and one
// value row) named after the client and agreement date.
func ToArtifact(record Record, fields form.Fields) (*Artifact, error) {
	if len(record) == 0 {
		return nil, ErrEmptyRecord
	}

	var csv strings.Builder
	for i, col := range record {
		if i > 0 {
			csv.WriteByte(',')
		}
		writeQuoted(&csv, col.Name)
	}
	csv.WriteByte('\n')
	for i, col := range record {
		if i > 0 {
			csv.WriteByte(',')
		}
		writeQuoted(&csv, col.Value)
	}

	return &Artifact{
		Filename:    Filename(fields.ClientBusinessName, fields.AgreementDate),
		ContentType: constants.CSVContentType,
		Data:        []byte(csv.String()),
	}, nil
}

// writeQuoted wraps a field in double quotes, doubling any embedded quotes
// so values containing quotes survive the round trip.
func writeQuoted(sb *strings.Builder, value string) {
	sb.WriteByte('"')
	sb.WriteString(strings.ReplaceAll(value, `"`, `""`))
	sb.WriteByte('"')
}

// Filename derives the artifact name from the client business name (with
// non-alphanumeric characters replaced by underscores) and agreement date.
func Filename(businessName, agreementDate string) string {
	sanitized := filenameSanitizer.ReplaceAllString(businessName, "_")
	return fmt.Sprintf("%s_%s_%s", sanitized, agreementDate, constants.ExportFilenameSuffix)
}
