// Package derive computes the financial figures implied by the raw handover
// record: VAT-adjusted totals, the tiered ad-spend management fee, and the
// payment schedule for the chosen option. Derivation is a total function of
// the record; it never errors and is recomputed on every edit.
package derive

import (
	"github.com/evergreen-digital/contract-handover/internal/form"
	"github.com/evergreen-digital/contract-handover/pkg/constants"
	"github.com/evergreen-digital/contract-handover/pkg/mathutil"
)

// Installment is one named payment within a schedule. Label is the
// human-readable name used in summaries and export columns.
type Installment struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// Installment labels.
const (
	InstallmentUpfront = "Upfront Payment"
	InstallmentInitial = "Initial Payment"
	InstallmentMonth2  = "Month 2 Payment"
	InstallmentMonth3  = "Month 3 Payment"
	InstallmentMonth4  = "Month 4 Payment"
)

// PaymentSchedule is the set of installments for the chosen payment option.
// An unset option yields a zero-value schedule.
type PaymentSchedule struct {
	Description  string        `json:"description,omitempty"`
	Installments []Installment `json:"installments,omitempty"`
}

// Amount returns the installment amount for the given label and whether the
// schedule contains it.
func (s PaymentSchedule) Amount(label string) (float64, bool) {
	for _, inst := range s.Installments {
		if inst.Label == label {
			return inst.Amount, true
		}
	}
	return 0, false
}

// Total is the sum of all installments in the schedule.
func (s PaymentSchedule) Total() float64 {
	var total float64
	for _, inst := range s.Installments {
		total += inst.Amount
	}
	return total
}

// Values holds every derived financial figure. Amounts keep full floating
// precision; rounding happens only at display and export time.
type Values struct {
	VATApplicable bool    `json:"vatApplicable"`
	VATRate       float64 `json:"vatRate"`

	TotalProjectValueIncVAT float64 `json:"totalProjectValueIncVAT"`
	OnboardingFeeIncVAT     float64 `json:"onboardingFeeIncVAT"`
	TotalVATApplied         float64 `json:"totalVATApplied"`

	AdSpendManagementFeeExVAT  float64 `json:"adSpendManagementFeeExVAT"`
	AdSpendManagementFeeIncVAT float64 `json:"adSpendManagementFeeIncVAT"`

	PaymentSchedule PaymentSchedule `json:"paymentSchedule"`
}

// feeTier maps a half-open ad-budget bracket to its flat management fee.
// UpperBound is inclusive; a budget qualifies for the first tier whose bound
// it does not exceed.
type feeTier struct {
	UpperBound float64
	Fee        float64
}

// Ad-spend management fee tiers, exactly as quoted on the rate card. The
// 20000-25000 and 25000-30000 brackets both carry 1500; the duplication is
// deliberate pending product sign-off on a merged bracket.
var feeTiers = []feeTier{
	{UpperBound: 10000, Fee: 500},
	{UpperBound: 15000, Fee: 900},
	{UpperBound: 20000, Fee: 1400},
	{UpperBound: 25000, Fee: 1500},
	{UpperBound: 30000, Fee: 1500},
	{UpperBound: 35000, Fee: 1750},
	{UpperBound: 40000, Fee: 2000},
	{UpperBound: 45000, Fee: 2250},
}

// minimumManagedBudget is the smallest monthly ad budget that attracts a
// management fee.
const minimumManagedBudget = 5000

// maximumTierFee applies to every budget above the last bracket.
const maximumTierFee = 2500

// ManagementFee returns the flat monthly fee for managing the given ad
// budget (ex VAT).
func ManagementFee(budget float64) float64 {
	if budget < minimumManagedBudget {
		return 0
	}
	for _, tier := range feeTiers {
		if budget <= tier.UpperBound {
			return tier.Fee
		}
	}
	return maximumTierFee
}

// Derive computes all derived values from the raw record. Malformed or
// missing numeric inputs are treated as 0 so that partially completed forms
// still produce a consistent set of figures.
func Derive(fields form.Fields) Values {
	vatRate := 0.0
	if fields.ClientLocation == form.LocationUK {
		vatRate = constants.UKVATRate
	}
	incVAT := func(amount float64) float64 {
		return amount * (1 + vatRate)
	}

	projectValueExVAT := mathutil.ParseAmount(fields.TotalProjectValueExVAT)
	onboardingFeeExVAT := mathutil.ParseAmount(fields.OnboardingFeeExVAT)
	adBudget := mathutil.ParseAmount(fields.InitialAdBudgetExVAT)

	managementFee := ManagementFee(adBudget)

	values := Values{
		VATApplicable:              vatRate > 0,
		VATRate:                    vatRate,
		TotalProjectValueIncVAT:    incVAT(projectValueExVAT),
		OnboardingFeeIncVAT:        incVAT(onboardingFeeExVAT),
		TotalVATApplied:            (projectValueExVAT + onboardingFeeExVAT) * vatRate,
		AdSpendManagementFeeExVAT:  managementFee,
		AdSpendManagementFeeIncVAT: incVAT(managementFee),
	}

	values.PaymentSchedule = schedule(fields.PaymentOption, projectValueExVAT,
		values.TotalProjectValueIncVAT, values.OnboardingFeeIncVAT, incVAT)

	return values
}

func schedule(option string, projectValueExVAT, projectValueIncVAT, onboardingFeeIncVAT float64, incVAT func(float64) float64) PaymentSchedule {
	switch option {
	case form.PaymentOptionA:
		return PaymentSchedule{
			Description: "100% upfront payment",
			Installments: []Installment{
				{Label: InstallmentUpfront, Amount: projectValueIncVAT + onboardingFeeIncVAT},
			},
		}
	case form.PaymentOptionB:
		upfrontHalf := projectValueIncVAT * 0.50
		remainingHalf := projectValueIncVAT - upfrontHalf
		return PaymentSchedule{
			Description: "50% + onboarding upfront, then 2 monthly payments",
			Installments: []Installment{
				{Label: InstallmentInitial, Amount: upfrontHalf + onboardingFeeIncVAT},
				{Label: InstallmentMonth3, Amount: remainingHalf / 2},
				{Label: InstallmentMonth4, Amount: remainingHalf / 2},
			},
		}
	case form.PaymentOptionC:
		monthlyIncVAT := incVAT(projectValueExVAT / constants.ContractTermMonths)
		return PaymentSchedule{
			Description: "Monthly payments over 4 months + onboarding upfront",
			Installments: []Installment{
				{Label: InstallmentInitial, Amount: monthlyIncVAT + onboardingFeeIncVAT},
				{Label: InstallmentMonth2, Amount: monthlyIncVAT},
				{Label: InstallmentMonth3, Amount: monthlyIncVAT},
				{Label: InstallmentMonth4, Amount: monthlyIncVAT},
			},
		}
	default:
		return PaymentSchedule{}
	}
}
