package extract

import (
	"regexp"
	"strings"

	"github.com/alantheprice/pomgen/pkg/testmodel"
)

var stepPattern = regexp.MustCompile(`await\s+test\.step\(['"]([^'"]+)['"]\s*,\s*async`)

// actionPatterns are the call shapes scanned for inside a step's window,
// paired with the action name they report.
var actionPatterns = []struct {
	shape  string
	action string
}{
	{".fill(", "fill"},
	{".click(", "click"},
	{".check(", "check"},
	{".select(", "select"},
	{"expect(", "expect"},
	{".goto(", "goto"},
}

var (
	givenKeywords = []string{"navega", "abre", "accede", "se encuentra", "navigate", "open"}
	whenKeywords  = []string{"pulsa", "hace click", "rellena", "selecciona", "click", "fill", "select"}
	thenKeywords  = []string{"verifica", "comprueba", "debe", "verify", "should", "expect"}
)

// Steps scans raw test content for test.step declarations and returns
// them in document order as typed steps.
func Steps(content string) []testmodel.TestStep {
	var steps []testmodel.TestStep
	for _, m := range stepPattern.FindAllStringSubmatchIndex(content, -1) {
		description := content[m[2]:m[3]]
		step, err := testmodel.NewTestStep(
			string(classifyStep(description)),
			description,
			stepActions(content, m[0]),
			nil,
		)
		if err != nil {
			continue
		}
		steps = append(steps, step)
	}
	return steps
}

// classifyStep maps a step description to its BDD type: an explicit
// Given/When/Then/And prefix wins, otherwise verb keywords decide.
func classifyStep(description string) testmodel.StepType {
	desc := strings.ToLower(description)

	switch {
	case strings.HasPrefix(desc, "given"):
		return testmodel.StepGiven
	case strings.HasPrefix(desc, "when"):
		return testmodel.StepWhen
	case strings.HasPrefix(desc, "then"):
		return testmodel.StepThen
	case strings.HasPrefix(desc, "and"):
		return testmodel.StepAnd
	}

	switch {
	case containsAny(desc, givenKeywords):
		return testmodel.StepGiven
	case containsAny(desc, whenKeywords):
		return testmodel.StepWhen
	case containsAny(desc, thenKeywords):
		return testmodel.StepThen
	default:
		return testmodel.StepAnd
	}
}

// stepActions reports which action call shapes appear in the bounded
// window after a step declaration.
func stepActions(content string, start int) []string {
	end := start + contextWindow
	if end > len(content) {
		end = len(content)
	}
	chunk := content[start:end]

	var actions []string
	for _, p := range actionPatterns {
		if strings.Contains(chunk, p.shape) {
			actions = append(actions, p.action)
		}
	}
	return actions
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
