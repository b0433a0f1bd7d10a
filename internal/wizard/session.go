package wizard

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrUnknownField is returned when a set-field action names a field the
	// record does not have.
	ErrUnknownField = errors.New("unknown form field")

	// ErrMissingFields is returned when a step's required fields are not all
	// filled.
	ErrMissingFields = errors.New("required fields missing")

	// ErrAtFirstStep is returned when backing out of the first step.
	ErrAtFirstStep = errors.New("already at first step")

	// ErrAtFinalStep is returned when advancing past the final step.
	ErrAtFinalStep = errors.New("already at final step")
)

// Session is one user's in-flight wizard run. The form data record is owned
// exclusively by the session; steps mutate it only through Dispatch.
type Session struct {
	ID        string   `json:"id"`
	DocType   string   `json:"doc_type"`
	FormType  string   `json:"form_type"`
	Category  string   `json:"category"`
	Data      FormData `json:"data"`
	// CurrentStep is a 1-based index into Steps().
	CurrentStep int      `json:"current_step"`
	CostCenters []string `json:"cost_centers,omitempty"`
	CreatedBy   string   `json:"created_by"`
	CreatorBP   string   `json:"creator_bp"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewSession starts a wizard run for a doc type.
func NewSession(docType, createdBy, creatorBP string) *Session {
	now := time.Now()
	return &Session{
		ID:          uuid.NewString(),
		DocType:     docType,
		CurrentStep: 1,
		CreatedBy:   createdBy,
		CreatorBP:   creatorBP,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Action is a dispatched intent mutating the session.
type Action interface{ isAction() }

// SetField sets one form field, or the session-level form type / category
// choices.
type SetField struct {
	Name  string
	Value string
}

// ResetStepAction clears every field a step owns.
type ResetStepAction struct {
	Step Step
}

// ResetAllAction restores the all-empty record. Options pick which auxiliary
// wizard state resets alongside it.
type ResetAllAction struct {
	Options ResetOptions
}

// ResetOptions selects the auxiliary state ResetAll touches, standing in for
// the optional setters of the original reset contract.
type ResetOptions struct {
	FormType    bool
	Category    bool
	CostCenters bool
	CurrentStep bool
}

func (SetField) isAction()        {}
func (ResetStepAction) isAction() {}
func (ResetAllAction) isAction()  {}

// Dispatch applies an action to the session.
func (s *Session) Dispatch(action Action) error {
	switch a := action.(type) {
	case SetField:
		return s.setField(a.Name, a.Value)
	case ResetStepAction:
		s.resetStep(a.Step)
	case ResetAllAction:
		s.resetAll(a.Options)
	default:
		return fmt.Errorf("unsupported action %T", action)
	}
	s.touch()
	return nil
}

func (s *Session) setField(name, value string) error {
	switch name {
	case "form_type":
		s.FormType = value
	case "category":
		s.Category = value
	default:
		if !s.Data.Set(name, value) {
			return fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
	}
	s.touch()
	return nil
}

func (s *Session) resetStep(step Step) {
	switch step {
	case StepFormType:
		s.FormType = ""
	case StepCategory:
		s.Category = ""
	}
	for _, field := range OwnedFields(step) {
		s.Data.Set(field, "")
	}
}

func (s *Session) resetAll(opts ResetOptions) {
	s.Data.Reset()
	if opts.FormType {
		s.FormType = ""
	}
	if opts.Category {
		s.Category = ""
	}
	if opts.CostCenters {
		s.CostCenters = nil
	}
	if opts.CurrentStep {
		s.CurrentStep = 1
	}
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now()
}

// Steps returns the ordered step list given the current category choice.
func (s *Session) Steps() []Step {
	return Sequence(s.DocType, s.Category)
}

// Current returns the step the session sits at.
func (s *Session) Current() Step {
	steps := s.Steps()
	if s.CurrentStep < 1 || s.CurrentStep > len(steps) {
		return ""
	}
	return steps[s.CurrentStep-1]
}

// CanAdvance reports whether the current step's required fields are filled;
// the missing list names the blanks. Re-evaluation with unchanged data
// yields the same answer.
func (s *Session) CanAdvance() (bool, []string) {
	step := s.Current()

	var missing []string
	switch step {
	case StepFormType:
		if s.FormType == "" {
			missing = append(missing, "form_type")
		}
	case StepCategory:
		if s.Category == "" {
			missing = append(missing, "category")
		}
	}
	for _, field := range RequiredFields(step) {
		if value, ok := s.Data.Get(field); ok && value == "" {
			missing = append(missing, field)
		}
	}

	return len(missing) == 0, missing
}

// Advance moves to the next step after validating the current one. Leaving
// the category step applies the domestic-only rule: listed categories get
// destination scope forced to domestic, the region group cleared, and the
// international step never sequenced.
func (s *Session) Advance() error {
	if ok, missing := s.CanAdvance(); !ok {
		return fmt.Errorf("%w: %v", ErrMissingFields, missing)
	}

	if s.Current() == StepCategory && IsDomesticOnly(s.Category) {
		s.Data.DestinationScope = "domestic"
		s.Data.RegionGroup = ""
	}

	if s.CurrentStep >= len(s.Steps()) {
		return ErrAtFinalStep
	}
	s.CurrentStep++
	s.touch()
	return nil
}

// Back leaves the current step, clearing only the fields that step owns.
func (s *Session) Back() error {
	if s.CurrentStep <= 1 {
		return ErrAtFirstStep
	}
	s.resetStep(s.Current())
	s.CurrentStep--
	s.touch()
	return nil
}

// HasInput reports whether any form field or auxiliary choice is filled,
// which is what gates the navigate-away confirmation.
func (s *Session) HasInput() bool {
	return s.FormType != "" || s.Category != "" || !s.Data.IsEmpty()
}
