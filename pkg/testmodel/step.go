package testmodel

import (
	"fmt"
	"strings"
)

// StepType is one of the four BDD step kinds.
type StepType string

const (
	StepGiven StepType = "given"
	StepWhen  StepType = "when"
	StepThen  StepType = "then"
	StepAnd   StepType = "and"
)

// TestStep is one BDD-style step of a test: its kind, description, the
// actions performed inside it, and the selectors those actions touched.
type TestStep struct {
	Type        StepType
	Description string
	Actions     []string
	Selectors   []Selector
}

// NewTestStep normalizes the step type to lowercase and rejects anything
// outside given/when/then/and. The description must be non-empty.
func NewTestStep(stepType, description string, actions []string, selectors []Selector) (TestStep, error) {
	normalized := StepType(strings.ToLower(strings.TrimSpace(stepType)))
	switch normalized {
	case StepGiven, StepWhen, StepThen, StepAnd:
	default:
		return TestStep{}, fmt.Errorf("invalid step type: %q (must be given, when, then or and)", stepType)
	}
	if strings.TrimSpace(description) == "" {
		return TestStep{}, fmt.Errorf("step description cannot be empty")
	}
	return TestStep{
		Type:        normalized,
		Description: description,
		Actions:     actions,
		Selectors:   selectors,
	}, nil
}

// GherkinPrefix returns the display prefix for the step type.
func (s TestStep) GherkinPrefix() string {
	switch s.Type {
	case StepGiven:
		return "Given:"
	case StepWhen:
		return "When:"
	case StepThen:
		return "Then:"
	default:
		return "And:"
	}
}

// ToGherkin renders the step as "<Prefix>: <description>".
func (s TestStep) ToGherkin() string {
	return s.GherkinPrefix() + " " + s.Description
}

func (s TestStep) HasSelectors() bool {
	return len(s.Selectors) > 0
}

func (s TestStep) String() string {
	return s.ToGherkin()
}
