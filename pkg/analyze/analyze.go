package analyze

import (
	"sort"
	"strings"

	"github.com/alantheprice/pomgen/pkg/extract"
	"github.com/alantheprice/pomgen/pkg/testmodel"
)

// SelectorCount is one entry of the selector frequency ranking.
type SelectorCount struct {
	Value string
	Count int
}

// Group is a proposed page/component bucket of selector values, in
// first-seen order.
type Group struct {
	Name      string
	Selectors []string
}

// Analysis is the read-only aggregate produced from one batch of test
// files. It is prompt-building input and is never mutated downstream.
type Analysis struct {
	AllSelectors []testmodel.Selector
	UniqueValues []string
	Frequency    []SelectorCount
	Groups       []Group
	StepTypes    map[testmodel.StepType]int
	TotalSteps   int
	TestCount    int
}

// Batch extracts every file and merges the results. Files are consumed
// in the order given, which keeps frequency and grouping output
// reproducible for a given input order.
func Batch(files []*testmodel.TestFile) *Analysis {
	a := &Analysis{
		StepTypes: map[testmodel.StepType]int{
			testmodel.StepGiven: 0,
			testmodel.StepWhen:  0,
			testmodel.StepThen:  0,
			testmodel.StepAnd:   0,
		},
		TestCount: len(files),
	}

	seen := make(map[string]bool)
	counts := make(map[string]int)
	groupIndex := make(map[string]int)

	for _, file := range files {
		for _, sel := range extract.Selectors(file.Content) {
			a.AllSelectors = append(a.AllSelectors, sel)

			if !seen[sel.Value] {
				seen[sel.Value] = true
				a.UniqueValues = append(a.UniqueValues, sel.Value)
			}
			counts[sel.Value]++

			name := GroupName(sel.Context)
			idx, ok := groupIndex[name]
			if !ok {
				idx = len(a.Groups)
				groupIndex[name] = idx
				a.Groups = append(a.Groups, Group{Name: name})
			}
			a.Groups[idx].Selectors = append(a.Groups[idx].Selectors, sel.Value)
		}

		for _, step := range file.Steps {
			a.StepTypes[step.Type]++
		}
		a.TotalSteps += len(file.Steps)
	}

	a.Frequency = make([]SelectorCount, 0, len(a.UniqueValues))
	for _, value := range a.UniqueValues {
		a.Frequency = append(a.Frequency, SelectorCount{Value: value, Count: counts[value]})
	}
	// Stable sort so first-seen order wins among equal counts.
	sort.SliceStable(a.Frequency, func(i, j int) bool {
		return a.Frequency[i].Count > a.Frequency[j].Count
	})

	return a
}

// GroupName maps a selector's step context to a proposed page or
// component bucket by keyword containment.
func GroupName(context string) string {
	c := strings.ToLower(context)
	switch {
	case strings.Contains(c, "login"):
		return "LoginPage"
	case strings.Contains(c, "customer"):
		return "CustomerPage"
	case strings.Contains(c, "form") || strings.Contains(c, "formulario"):
		return "FormPage"
	case strings.Contains(c, "nav") || strings.Contains(c, "menu"):
		return "NavigationComponent"
	default:
		return "BasePage"
	}
}
