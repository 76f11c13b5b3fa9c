// Package form defines the raw handover form record and the fixed sets of
// field and service keys it is built from. The record stores exactly what
// the user typed; all interpretation of the values happens in the derive
// and validate packages.
package form

import "fmt"

// Client location values.
const (
	LocationUK    = "UK"
	LocationNonUK = "Non-UK"
)

// Full-package selection values.
const (
	FullPackageYes = "yes"
	FullPackageNo  = "no"
)

// Payment option values.
const (
	PaymentOptionA = "A"
	PaymentOptionB = "B"
	PaymentOptionC = "C"
)

// FullPackageLabel is the display name used when the full package is chosen.
const FullPackageLabel = "Evergreen Event Profit System (Full Package)"

// Field keys. These key the record itself, the validation error map, and
// the webhook payload.
const (
	FieldClientBusinessName      = "clientBusinessName"
	FieldClientRegisteredAddress = "clientRegisteredAddress"
	FieldClientPostcode          = "clientPostcode"
	FieldClientRepFirstName      = "clientRepFirstName"
	FieldClientRepLastName       = "clientRepLastName"
	FieldClientRepTitle          = "clientRepTitle"
	FieldClientRepEmail          = "clientRepEmail"
	FieldClientLocation          = "clientLocation"
	FieldSalesRepName            = "salesRepName"
	FieldSalesRepEmail           = "salesRepEmail"
	FieldAgreementDate           = "agreementDate"
	FieldIsFullPackage           = "isFullPackage"
	FieldTotalProjectValueExVAT  = "totalProjectValueExVAT"
	FieldOnboardingFeeExVAT      = "onboardingFeeExVAT"
	FieldInitialAdBudgetExVAT    = "initialAdBudgetExVAT"
	FieldPaymentOption           = "paymentOption"
	FieldPaymentCollectedIncVAT  = "paymentCollectedIncVAT"
	FieldHandoverNotes           = "handoverNotes"
)

// Service keys for the five individual services.
const (
	ServiceGoogleAds              = "googleAds"
	ServiceMetaAds                = "metaAds"
	ServiceMarketingAutomationCRM = "marketingAutomationCRM"
	ServiceAISalesSupport         = "aiSalesSupport"
	ServiceMessagingComms         = "messagingComms"
)

// ServiceKeys lists the service keys in their canonical display order.
var ServiceKeys = []string{
	ServiceGoogleAds,
	ServiceMetaAds,
	ServiceMarketingAutomationCRM,
	ServiceAISalesSupport,
	ServiceMessagingComms,
}

var serviceLabels = map[string]string{
	ServiceGoogleAds:              "Google Ads",
	ServiceMetaAds:                "Meta Ads",
	ServiceMarketingAutomationCRM: "Marketing Automation/CRM",
	ServiceAISalesSupport:         "AI Sales/Support",
	ServiceMessagingComms:         "Messaging/Communications",
}

// ServiceLabel returns the human-readable label for a service key, or the
// key itself when it is unknown.
func ServiceLabel(key string) string {
	if label, ok := serviceLabels[key]; ok {
		return label
	}
	return key
}

// Fields holds the raw, user-entered handover record. Monetary fields are
// kept as the entered decimal strings so that "not yet entered" (empty)
// stays distinct from an explicit "0".
type Fields struct {
	// Client information
	ClientBusinessName      string
	ClientRegisteredAddress string
	ClientPostcode          string
	ClientRepFirstName      string
	ClientRepLastName       string
	ClientRepTitle          string
	ClientRepEmail          string
	ClientLocation          string

	// Sales information
	SalesRepName  string
	SalesRepEmail string
	AgreementDate string

	// Service selection
	IsFullPackage string
	Services      map[string]bool

	// Financial data
	TotalProjectValueExVAT string
	OnboardingFeeExVAT     string
	InitialAdBudgetExVAT   string
	PaymentOption          string
	PaymentCollectedIncVAT string
	HandoverNotes          string
}

// NewFields returns an empty record with every service key present and
// unselected.
func NewFields() Fields {
	services := make(map[string]bool, len(ServiceKeys))
	for _, key := range ServiceKeys {
		services[key] = false
	}
	return Fields{Services: services}
}

// Clone returns a deep copy of the record. Controllers hand out clones so
// that derived values are always computed against a consistent snapshot.
func (f Fields) Clone() Fields {
	clone := f
	clone.Services = make(map[string]bool, len(f.Services))
	for key, selected := range f.Services {
		clone.Services[key] = selected
	}
	return clone
}

// Set assigns a raw value to the named field. Unknown keys are an error;
// service flags are set through SetService instead.
func (f *Fields) Set(key, value string) error {
	switch key {
	case FieldClientBusinessName:
		f.ClientBusinessName = value
	case FieldClientRegisteredAddress:
		f.ClientRegisteredAddress = value
	case FieldClientPostcode:
		f.ClientPostcode = value
	case FieldClientRepFirstName:
		f.ClientRepFirstName = value
	case FieldClientRepLastName:
		f.ClientRepLastName = value
	case FieldClientRepTitle:
		f.ClientRepTitle = value
	case FieldClientRepEmail:
		f.ClientRepEmail = value
	case FieldClientLocation:
		f.ClientLocation = value
	case FieldSalesRepName:
		f.SalesRepName = value
	case FieldSalesRepEmail:
		f.SalesRepEmail = value
	case FieldAgreementDate:
		f.AgreementDate = value
	case FieldIsFullPackage:
		f.IsFullPackage = value
	case FieldTotalProjectValueExVAT:
		f.TotalProjectValueExVAT = value
	case FieldOnboardingFeeExVAT:
		f.OnboardingFeeExVAT = value
	case FieldInitialAdBudgetExVAT:
		f.InitialAdBudgetExVAT = value
	case FieldPaymentOption:
		f.PaymentOption = value
	case FieldPaymentCollectedIncVAT:
		f.PaymentCollectedIncVAT = value
	case FieldHandoverNotes:
		f.HandoverNotes = value
	default:
		return fmt.Errorf("unknown form field %q", key)
	}
	return nil
}

// Get returns the raw value of the named field.
func (f Fields) Get(key string) (string, error) {
	switch key {
	case FieldClientBusinessName:
		return f.ClientBusinessName, nil
	case FieldClientRegisteredAddress:
		return f.ClientRegisteredAddress, nil
	case FieldClientPostcode:
		return f.ClientPostcode, nil
	case FieldClientRepFirstName:
		return f.ClientRepFirstName, nil
	case FieldClientRepLastName:
		return f.ClientRepLastName, nil
	case FieldClientRepTitle:
		return f.ClientRepTitle, nil
	case FieldClientRepEmail:
		return f.ClientRepEmail, nil
	case FieldClientLocation:
		return f.ClientLocation, nil
	case FieldSalesRepName:
		return f.SalesRepName, nil
	case FieldSalesRepEmail:
		return f.SalesRepEmail, nil
	case FieldAgreementDate:
		return f.AgreementDate, nil
	case FieldIsFullPackage:
		return f.IsFullPackage, nil
	case FieldTotalProjectValueExVAT:
		return f.TotalProjectValueExVAT, nil
	case FieldOnboardingFeeExVAT:
		return f.OnboardingFeeExVAT, nil
	case FieldInitialAdBudgetExVAT:
		return f.InitialAdBudgetExVAT, nil
	case FieldPaymentOption:
		return f.PaymentOption, nil
	case FieldPaymentCollectedIncVAT:
		return f.PaymentCollectedIncVAT, nil
	case FieldHandoverNotes:
		return f.HandoverNotes, nil
	default:
		return "", fmt.Errorf("unknown form field %q", key)
	}
}

// SetService toggles one of the five individual service flags.
func (f *Fields) SetService(key string, selected bool) error {
	if _, ok := serviceLabels[key]; !ok {
		return fmt.Errorf("unknown service %q", key)
	}
	if f.Services == nil {
		f.Services = make(map[string]bool, len(ServiceKeys))
	}
	f.Services[key] = selected
	return nil
}

// SelectedServiceLabels returns the labels of all selected services in
// canonical order.
func (f Fields) SelectedServiceLabels() []string {
	var labels []string
	for _, key := range ServiceKeys {
		if f.Services[key] {
			labels = append(labels, ServiceLabel(key))
		}
	}
	return labels
}

// HasSelectedService reports whether at least one individual service flag
// is set.
func (f Fields) HasSelectedService() bool {
	for _, selected := range f.Services {
		if selected {
			return true
		}
	}
	return false
}

// Pairs returns every field as a key/value pair keyed by its field key,
// excluding the services map which callers serialize separately.
func (f Fields) Pairs() map[string]string {
	return map[string]string{
		FieldClientBusinessName:      f.ClientBusinessName,
		FieldClientRegisteredAddress: f.ClientRegisteredAddress,
		FieldClientPostcode:          f.ClientPostcode,
		FieldClientRepFirstName:      f.ClientRepFirstName,
		FieldClientRepLastName:       f.ClientRepLastName,
		FieldClientRepTitle:          f.ClientRepTitle,
		FieldClientRepEmail:          f.ClientRepEmail,
		FieldClientLocation:          f.ClientLocation,
		FieldSalesRepName:            f.SalesRepName,
		FieldSalesRepEmail:           f.SalesRepEmail,
		FieldAgreementDate:           f.AgreementDate,
		FieldIsFullPackage:           f.IsFullPackage,
		FieldTotalProjectValueExVAT:  f.TotalProjectValueExVAT,
		FieldOnboardingFeeExVAT:      f.OnboardingFeeExVAT,
		FieldInitialAdBudgetExVAT:    f.InitialAdBudgetExVAT,
		FieldPaymentOption:           f.PaymentOption,
		FieldPaymentCollectedIncVAT:  f.PaymentCollectedIncVAT,
		FieldHandoverNotes:           f.HandoverNotes,
	}
}
