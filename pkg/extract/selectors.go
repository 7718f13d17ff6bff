package extract

import (
	"regexp"
	"strings"

	"github.com/alantheprice/pomgen/pkg/testmodel"
)

// GeneralContext is assigned to selectors that cannot be tied to a step.
const GeneralContext = "General context"

// contextWindow bounds how far past a step declaration we look when
// binding a selector to that step.
const contextWindow = 500

// recognizer pairs an action tag with the call shape that produces it.
// Recognizers are applied in declared order; matches within one follow
// document order, so identical input always yields identical output.
type recognizer struct {
	action  string
	pattern *regexp.Regexp
}

var selectorRecognizers = []recognizer{
	{"fill", regexp.MustCompile(`page\.locator\(['"](.+?)['"]\)\.fill\(`)},
	{"click", regexp.MustCompile(`page\.locator\(['"](.+?)['"]\)\.click\(`)},
	{"interact", regexp.MustCompile(`page\.locator\(['"](.+?)['"]\)`)},
	{"expect", regexp.MustCompile(`expect\(page\.locator\(['"](.+?)['"]\)\)`)},
}

var stepDeclPattern = regexp.MustCompile(`test\.step\(['"](.+?)['"]\s*,\s*async`)

// Selectors scans raw test content and returns every selector occurrence
// found by the fixed recognizer set, in recognizer-then-document order.
func Selectors(content string) []testmodel.Selector {
	var out []testmodel.Selector
	for _, rec := range selectorRecognizers {
		for _, m := range rec.pattern.FindAllStringSubmatch(content, -1) {
			value := m[1]
			sel, err := testmodel.NewSelector(value, inferElementType(value), rec.action, selectorContext(content, value))
			if err != nil {
				continue
			}
			out = append(out, sel)
		}
	}
	return out
}

// inferElementType tags a locator by keyword scan. The branch order is
// load-bearing: "button" wins over "input", and the bare "a" check makes
// the link branch greedy for anything not caught earlier.
func inferElementType(selector string) string {
	s := strings.ToLower(selector)
	switch {
	case strings.Contains(s, "button") || strings.Contains(s, `type="submit"`):
		return "button"
	case strings.Contains(s, "input"):
		switch {
		case strings.Contains(s, `type="checkbox"`):
			return "checkbox"
		case strings.Contains(s, `type="radio"`):
			return "radio"
		default:
			return "input"
		}
	case strings.Contains(s, "select"):
		return "select"
	case strings.Contains(s, "textarea"):
		return "textarea"
	case strings.Contains(s, "a") || strings.Contains(s, "link"):
		return "link"
	default:
		return "element"
	}
}

// selectorContext finds the nearest step declaration whose bounded
// following window contains the locator, else GeneralContext.
func selectorContext(content, selector string) string {
	for _, m := range stepDeclPattern.FindAllStringSubmatchIndex(content, -1) {
		end := m[1] + contextWindow
		if end > len(content) {
			end = len(content)
		}
		chunk := content[m[0]:end]
		if strings.Contains(chunk, selector) {
			return content[m[2]:m[3]]
		}
	}
	return GeneralContext
}
