// Package wizard drives the five-step handover form as a small state
// machine: edits mutate the record and recompute derived values, forward
// navigation is gated by step validation, and the terminal submit action is
// gated by an explicit confirmation flag.
package wizard

import (
	"context"
	"errors"
	"fmt"

	"github.com/evergreen-digital/contract-handover/internal/derive"
	"github.com/evergreen-digital/contract-handover/internal/export"
	"github.com/evergreen-digital/contract-handover/internal/form"
	"github.com/evergreen-digital/contract-handover/internal/submit"
	"github.com/evergreen-digital/contract-handover/internal/validate"
	"github.com/evergreen-digital/contract-handover/pkg/constants"
	"go.uber.org/zap"
)

// ErrSubmissionInProgress is returned when submit is called while a
// previous submission is still outstanding.
var ErrSubmissionInProgress = errors.New("wizard: submission already in progress")

// ErrNotOnSummaryStep is returned when submit is called before the wizard
// has reached the summary step.
var ErrNotOnSummaryStep = errors.New("wizard: submit is only valid on the summary step")

// Controller owns one form session: the raw record, its derived values, the
// active error map, and the step cursor. It is not safe for concurrent use;
// callers serializing access (e.g. the HTTP session store) hold their own
// lock.
type Controller struct {
	coordinator *submit.Coordinator
	logger      *zap.Logger

	fields     form.Fields
	derived    derive.Values
	errors     validate.ErrorMap
	step       int
	confirmed  bool
	submitting bool
}

// NewController returns a controller in the initial state: step 1, empty
// record, no errors, unconfirmed.
func NewController(coordinator *submit.Coordinator, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{coordinator: coordinator, logger: logger}
	c.Reset()
	return c
}

// Reset returns the controller to the initial state.
func (c *Controller) Reset() {
	c.fields = form.NewFields()
	c.derived = derive.Derive(c.fields)
	c.errors = validate.ErrorMap{}
	c.step = constants.FirstStep
	c.confirmed = false
	c.submitting = false
}

// Step returns the current step, 1 through 5.
func (c *Controller) Step() int { return c.step }

// Confirmed reports whether the summary has been confirmed.
func (c *Controller) Confirmed() bool { return c.confirmed }

// Fields returns a snapshot of the raw record.
func (c *Controller) Fields() form.Fields { return c.fields.Clone() }

// Derived returns the derived values for the current record.
func (c *Controller) Derived() derive.Values { return c.derived }

// Errors returns the active error map from the last forward validation.
func (c *Controller) Errors() validate.ErrorMap {
	errs := validate.ErrorMap{}
	for key, msg := range c.errors {
		errs[key] = msg
	}
	return errs
}

// SetField updates a raw field and synchronously recomputes derived values.
// Edits never touch the error map; only navigation does.
func (c *Controller) SetField(key, value string) error {
	if err := c.fields.Set(key, value); err != nil {
		return err
	}
	c.derived = derive.Derive(c.fields)
	return nil
}

// SetService toggles a service flag and recomputes derived values.
func (c *Controller) SetService(key string, selected bool) error {
	if err := c.fields.SetService(key, selected); err != nil {
		return err
	}
	c.derived = derive.Derive(c.fields)
	return nil
}

// SetConfirmed records the summary confirmation checkbox.
func (c *Controller) SetConfirmed(confirmed bool) {
	c.confirmed = confirmed
}

// Advance validates the current step and moves forward when it passes.
// On failure the step is unchanged and the error map is replaced. Advancing
// past the final step is a no-op.
func (c *Controller) Advance() bool {
	errs := validate.Step(c.step, c.fields)
	c.errors = errs
	if len(errs) > 0 {
		c.logger.Debug("step validation failed",
			zap.String("op", "wizard.Controller.Advance"),
			zap.Int("step", c.step),
			zap.Int("errors", len(errs)),
		)
		return false
	}
	if c.step < constants.FinalStep {
		c.step++
	}
	return true
}

// Retreat moves one step back and unconditionally clears the error map;
// errors only describe the step being validated forward. Retreating below
// the first step is a no-op.
func (c *Controller) Retreat() {
	if c.step > constants.FirstStep {
		c.step--
	}
	c.errors = validate.ErrorMap{}
}

// Submit runs the submission pipeline. It is only valid on the summary step
// with the confirmation flag set; an unconfirmed submit records a summary
// error and returns nil results without invoking the coordinator. Only an
// export failure is returned as an error.
func (c *Controller) Submit(ctx context.Context) (*export.Artifact, *submit.Outcome, error) {
	if c.step != constants.FinalStep {
		return nil, nil, ErrNotOnSummaryStep
	}
	if !c.confirmed {
		c.errors = validate.ErrorMap{
			validate.ErrorKeySummary: "Please confirm the accuracy of the information before submitting",
		}
		return nil, nil, nil
	}
	if c.submitting {
		return nil, nil, ErrSubmissionInProgress
	}

	c.submitting = true
	defer func() { c.submitting = false }()

	artifact, outcome, err := c.coordinator.Submit(ctx, c.fields.Clone(), c.derived)
	if err != nil {
		return nil, &outcome, fmt.Errorf("submission failed: %w", err)
	}
	return artifact, &outcome, nil
}
