package export

import (
	"strings"
	"testing"

	"github.com/evergreen-digital/contract-handover/internal/derive"
	"github.com/evergreen-digital/contract-handover/internal/form"
	"github.com/evergreen-digital/contract-handover/pkg/constants"
	"github.com/evergreen-digital/contract-handover/pkg/testutil"
)

var fixedColumns = []string{
	"Client Business Name",
	"Client Registered Address",
	"Client Postcode/Zipcode",
	"Client Rep First Name",
	"Client Rep Last Name",
	"Client Rep Title",
	"Client Rep Email",
	"Client Location",
	"Sales Rep Name",
	"Sales Rep Email",
	"Agreement Date",
	"Full Package (Y/N)",
	"Services Selected",
	"Total Project Value (Ex VAT) (£)",
	"Total Project Value (Inc VAT) (£)",
	"Onboarding Fee (Ex VAT) (£)",
	"Onboarding Fee (Inc VAT) (£)",
	"VAT Applicable (Y/N)",
	"VAT Rate (%)",
	"Total VAT Applied (£)",
	"Initial Ad Budget (Ex VAT) (£)",
	"Ad Spend Management Fee (Ex VAT) (£)",
	"Ad Spend Management Fee (Inc VAT) (£)",
	"Payment Option Selected",
	"Payment Collected (Inc VAT) (£)",
	"Handover Notes",
}

func recordColumns(record Record) []string {
	names := make([]string, len(record))
	for i, col := range record {
		names[i] = col.Name
	}
	return names
}

func recordValue(t *testing.T, record Record, name string) string {
	t.Helper()
	for _, col := range record {
		if col.Name == name {
			return col.Value
		}
	}
	t.Fatalf("record has no column %q", name)
	return ""
}

func TestToRecordColumnOrder(t *testing.T) {
	tests := []struct {
		name            string
		option          string
		scheduleColumns []string
	}{
		{
			name:            "Option A appends one schedule column",
			option:          form.PaymentOptionA,
			scheduleColumns: []string{"Upfront Payment (£)"},
		},
		{
			name:            "Option B appends three schedule columns",
			option:          form.PaymentOptionB,
			scheduleColumns: []string{"Initial Payment (£)", "Month 3 Payment (£)", "Month 4 Payment (£)"},
		},
		{
			name:            "Option C appends four schedule columns",
			option:          form.PaymentOptionC,
			scheduleColumns: []string{"Initial Payment (£)", "Month 2 Payment (£)", "Month 3 Payment (£)", "Month 4 Payment (£)"},
		},
		{
			name:            "Unset option appends no schedule columns",
			option:          "",
			scheduleColumns: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := testutil.CompleteFields()
			fields.PaymentOption = tt.option
			record := ToRecord(fields, derive.Derive(fields))

			expected := append(append([]string{}, fixedColumns...), tt.scheduleColumns...)
			got := recordColumns(record)
			if len(got) != len(expected) {
				t.Fatalf("got %d columns, expected %d", len(got), len(expected))
			}
			for i := range expected {
				if got[i] != expected[i] {
					t.Errorf("column %d = %q, expected %q", i, got[i], expected[i])
				}
			}
		})
	}
}

func TestToRecordValues(t *testing.T) {
	fields := testutil.CompleteFields()
	record := ToRecord(fields, derive.Derive(fields))

	tests := []struct {
		column   string
		expected string
	}{
		{"Client Business Name", "Acme Events Ltd"},
		{"Full Package (Y/N)", "N"},
		{"Services Selected", "Google Ads, Meta Ads"},
		{"Total Project Value (Ex VAT) (£)", "10000"},
		{"Total Project Value (Inc VAT) (£)", "12000.00"},
		{"Onboarding Fee (Inc VAT) (£)", "2400.00"},
		{"VAT Applicable (Y/N)", "Y"},
		{"VAT Rate (%)", "20%"},
		{"Total VAT Applied (£)", "2400.00"},
		{"Ad Spend Management Fee (Ex VAT) (£)", "900.00"},
		{"Ad Spend Management Fee (Inc VAT) (£)", "1080.00"},
		{"Payment Option Selected", "A"},
		{"Upfront Payment (£)", "14400.00"},
	}
	for _, tt := range tests {
		if got := recordValue(t, record, tt.column); got != tt.expected {
			t.Errorf("%s = %q, expected %q", tt.column, got, tt.expected)
		}
	}
}

func TestToRecordFullPackageDisplay(t *testing.T) {
	fields := testutil.CompleteFields()
	fields.IsFullPackage = form.FullPackageYes
	record := ToRecord(fields, derive.Derive(fields))

	if got := recordValue(t, record, "Services Selected"); got != form.FullPackageLabel {
		t.Errorf("Services Selected = %q, expected the full package label", got)
	}
	if got := recordValue(t, record, "Full Package (Y/N)"); got != "Y" {
		t.Errorf("Full Package (Y/N) = %q, expected Y", got)
	}
}

func TestToRecordNonUKRates(t *testing.T) {
	fields := testutil.CompleteFields()
	fields.ClientLocation = form.LocationNonUK
	record := ToRecord(fields, derive.Derive(fields))

	if got := recordValue(t, record, "VAT Applicable (Y/N)"); got != "N" {
		t.Errorf("VAT Applicable = %q, expected N", got)
	}
	if got := recordValue(t, record, "VAT Rate (%)"); got != "0%" {
		t.Errorf("VAT Rate = %q, expected 0%%", got)
	}
	if got := recordValue(t, record, "Total VAT Applied (£)"); got != "0.00" {
		t.Errorf("Total VAT Applied = %q, expected 0.00", got)
	}
}

func TestToRecordMissingScheduleEntriesRenderAsZero(t *testing.T) {
	fields := testutil.CompleteFields()
	fields.PaymentOption = form.PaymentOptionB
	// Pair option B's columns with an empty schedule to exercise the
	// fallback rendering.
	derived := derive.Derive(fields)
	derived.PaymentSchedule = derive.PaymentSchedule{}

	record := ToRecord(fields, derived)
	for _, column := range []string{"Initial Payment (£)", "Month 3 Payment (£)", "Month 4 Payment (£)"} {
		if got := recordValue(t, record, column); got != "0.00" {
			t.Errorf("%s = %q, expected 0.00 for a missing schedule entry", column, got)
		}
	}
}

func TestToArtifact(t *testing.T) {
	fields := testutil.CompleteFields()
	artifact, err := ToArtifact(ToRecord(fields, derive.Derive(fields)), fields)
	if err != nil {
		t.Fatalf("ToArtifact() error = %v", err)
	}

	if artifact.ContentType != constants.CSVContentType {
		t.Errorf("ContentType = %q, expected %q", artifact.ContentType, constants.CSVContentType)
	}
	if artifact.Filename != "Acme_Events_Ltd_2025-06-15_SalesContractInfo.csv" {
		t.Errorf("unexpected filename %q", artifact.Filename)
	}

	lines := strings.Split(string(artifact.Data), "\n")
	if len(lines) != 2 {
		t.Fatalf("artifact has %d lines, expected exactly 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], `"Client Business Name","Client Registered Address"`) {
		t.Errorf("unexpected header start: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], `"Acme Events Ltd","1 High Street, London"`) {
		t.Errorf("unexpected data start: %s", lines[1])
	}
	if !strings.HasSuffix(lines[1], `"14400.00"`) {
		t.Errorf("expected the upfront payment as the last field: %s", lines[1])
	}
}

func TestToArtifactEscapesEmbeddedQuotes(t *testing.T) {
	fields := testutil.CompleteFields()
	fields.HandoverNotes = `Client asked for the "gold" treatment`
	artifact, err := ToArtifact(ToRecord(fields, derive.Derive(fields)), fields)
	if err != nil {
		t.Fatalf("ToArtifact() error = %v", err)
	}

	if !strings.Contains(string(artifact.Data), `"Client asked for the ""gold"" treatment"`) {
		t.Errorf("embedded quotes not doubled in: %s", artifact.Data)
	}
}

func TestToArtifactEmptyRecord(t *testing.T) {
	if _, err := ToArtifact(nil, form.NewFields()); err != ErrEmptyRecord {
		t.Errorf("ToArtifact(nil) error = %v, expected ErrEmptyRecord", err)
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name          string
		businessName  string
		agreementDate string
		expected      string
	}{
		{
			name:          "Simple name",
			businessName:  "Acme",
			agreementDate: "2025-06-15",
			expected:      "Acme_2025-06-15_SalesContractInfo.csv",
		},
		{
			name:          "Punctuation replaced",
			businessName:  "O'Brien & Sons (UK)",
			agreementDate: "2025-01-02",
			expected:      "O_Brien___Sons__UK__2025-01-02_SalesContractInfo.csv",
		},
		{
			name:          "Empty name",
			businessName:  "",
			agreementDate: "2025-01-02",
			expected:      "_2025-01-02_SalesContractInfo.csv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Filename(tt.businessName, tt.agreementDate); got != tt.expected {
				t.Errorf("Filename() = %q, expected %q", got, tt.expected)
			}
		})
	}
}
