package testmodel

import (
	"fmt"
	"strings"
)

// SelectorKind classifies how a locator string addresses an element.
type SelectorKind string

const (
	SelectorKindTestID SelectorKind = "data-testid"
	SelectorKindXPath  SelectorKind = "xpath"
	SelectorKindCSS    SelectorKind = "css"
)

// Selector is a single locator occurrence pulled out of a test, together
// with the action performed on it and the step it was found under.
type Selector struct {
	Value       string
	ElementType string
	Action      string
	Context     string
}

// NewSelector validates and builds a Selector. Value, element type and
// action must be non-empty.
func NewSelector(value, elementType, action, context string) (Selector, error) {
	if strings.TrimSpace(value) == "" {
		return Selector{}, fmt.Errorf("selector value cannot be empty")
	}
	if strings.TrimSpace(elementType) == "" {
		return Selector{}, fmt.Errorf("selector element type cannot be empty")
	}
	if strings.TrimSpace(action) == "" {
		return Selector{}, fmt.Errorf("selector action cannot be empty")
	}
	return Selector{
		Value:       value,
		ElementType: elementType,
		Action:      action,
		Context:     context,
	}, nil
}

// Kind is derived from the locator value, never stored.
func (s Selector) Kind() SelectorKind {
	switch {
	case strings.Contains(s.Value, "data-testid"):
		return SelectorKindTestID
	case strings.HasPrefix(s.Value, "//"):
		return SelectorKindXPath
	default:
		return SelectorKindCSS
	}
}

func (s Selector) String() string {
	return fmt.Sprintf("%s(%s) -> %s", s.Action, s.Value, s.ElementType)
}
