// Package submit orchestrates delivery of a completed handover record: a
// best-effort post to the external intake endpoint followed by an
// unconditional local CSV export. The local artifact is the success
// criterion; delivery failures are logged and swallowed.
package submit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/evergreen-digital/contract-handover/internal/derive"
	"github.com/evergreen-digital/contract-handover/internal/export"
	"github.com/evergreen-digital/contract-handover/internal/form"
	"github.com/evergreen-digital/contract-handover/pkg/mathutil"
	"go.uber.org/zap"
)

// Outcome reports what happened during a submission attempt.
type Outcome struct {
	Notified bool `json:"notified"`
	Exported bool `json:"exported"`
}

// Coordinator runs the two-stage submission pipeline.
type Coordinator struct {
	notifier Notifier
	logger   *zap.Logger
}

// NewCoordinator constructs a coordinator. A nil notifier disables delivery;
// submissions then export locally and report notified=false.
func NewCoordinator(notifier Notifier, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{notifier: notifier, logger: logger}
}

// Submit attempts delivery of the flattened record and then builds the CSV
// artifact regardless of the delivery result. Only artifact construction
// can fail; a failed or absent notification is reflected in the outcome
// but never surfaced as an error.
func (c *Coordinator) Submit(ctx context.Context, fields form.Fields, derived derive.Values) (*Artifact, Outcome, error) {
	outcome := Outcome{}

	if c.notifier == nil {
		c.logger.Debug("no notifier configured, skipping delivery",
			zap.String("op", "submit.Coordinator.Submit"),
		)
	} else {
		payload, err := FlattenRecord(fields, derived)
		if err != nil {
			c.logger.Warn("failed to flatten record for delivery, proceeding with export",
				zap.String("op", "submit.Coordinator.Submit"),
				zap.Error(err),
			)
		} else if err := c.notifier.Notify(ctx, payload); err != nil {
			c.logger.Warn("notification failed, proceeding with export",
				zap.String("op", "submit.Coordinator.Submit"),
				zap.Error(err),
			)
		} else {
			outcome.Notified = true
		}
	}

	artifact, err := export.ToArtifact(export.ToRecord(fields, derived), fields)
	if err != nil {
		return nil, outcome, fmt.Errorf("failed to build export artifact: %w", err)
	}
	outcome.Exported = true

	c.logger.Info("handover record submitted",
		zap.String("op", "submit.Coordinator.Submit"),
		zap.String("client", fields.ClientBusinessName),
		zap.Bool("notified", outcome.Notified),
		zap.String("artifact", artifact.Filename),
	)

	return artifact, outcome, nil
}

// Artifact aliases the export artifact so callers of the coordinator do not
// need to import the export package directly.
type Artifact = export.Artifact

// FlattenRecord turns the raw fields and derived values into a single
// form-encoded payload. Nested structures (the services map and the payment
// schedule) are serialized to JSON strings, mirroring what the intake
// endpoint already accepts.
func FlattenRecord(fields form.Fields, derived derive.Values) (url.Values, error) {
	payload := url.Values{}
	for key, value := range fields.Pairs() {
		payload.Set(key, value)
	}

	services, err := json.Marshal(fields.Services)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize services: %w", err)
	}
	payload.Set("services", string(services))

	payload.Set("vatApplicable", yesNo(derived.VATApplicable))
	payload.Set("vatRate", mathutil.FormatAmount(derived.VATRate))
	payload.Set("totalProjectValueIncVAT", mathutil.FormatAmount(derived.TotalProjectValueIncVAT))
	payload.Set("onboardingFeeIncVAT", mathutil.FormatAmount(derived.OnboardingFeeIncVAT))
	payload.Set("totalVATApplied", mathutil.FormatAmount(derived.TotalVATApplied))
	payload.Set("adSpendManagementFeeExVAT", mathutil.FormatAmount(derived.AdSpendManagementFeeExVAT))
	payload.Set("adSpendManagementFeeIncVAT", mathutil.FormatAmount(derived.AdSpendManagementFeeIncVAT))

	schedule, err := json.Marshal(derived.PaymentSchedule)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize payment schedule: %w", err)
	}
	payload.Set("paymentSchedule", string(schedule))

	return payload, nil
}

func yesNo(val bool) string {
	if val {
		return "Y"
	}
	return "N"
}
