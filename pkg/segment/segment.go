package segment

import "strings"

// Segmenter splits one composite generation response into two named
// documents. Splitting strategies are tried in priority order until one
// succeeds, so the function is total: it always yields two non-empty
// documents.
type Segmenter struct {
	// PrimaryHeading is the canonical top-level heading for document A,
	// e.g. "# POM.md".
	PrimaryHeading string
	// SecondaryHeading is the canonical top-level heading for document B
	// and also the fallback split marker when the separator is absent.
	SecondaryHeading string
	// Separator is the literal token the response is expected to use
	// between the two documents.
	Separator string
	// StubReference names document A inside the placeholder emitted when
	// the response contains no recognizable second document.
	StubReference string
}

type splitFunc func(response string) (first, second string, ok bool)

// Split divides the response into (document A, document B), normalizing
// each document's leading heading to the canonical one.
func (s Segmenter) Split(response string) (string, string) {
	strategies := []splitFunc{
		s.bySeparator,
		s.bySecondaryHeading,
		s.byStub,
	}

	var first, second string
	for _, strategy := range strategies {
		if a, b, ok := strategy(response); ok {
			first, second = a, b
			break
		}
	}

	return normalizeHeading(first, s.PrimaryHeading),
		normalizeHeading(second, s.SecondaryHeading)
}

// bySeparator splits on the literal separator token. Segments beyond the
// second are ignored.
func (s Segmenter) bySeparator(response string) (string, string, bool) {
	parts := strings.Split(response, s.Separator)
	if len(parts) < 2 {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}

// bySecondaryHeading splits at the secondary document's heading literal.
func (s Segmenter) bySecondaryHeading(response string) (string, string, bool) {
	idx := strings.Index(response, s.SecondaryHeading)
	if idx < 0 {
		return "", "", false
	}
	first := strings.TrimSpace(response[:idx])
	second := strings.TrimSpace(response[idx+len(s.SecondaryHeading):])
	return first, second, true
}

// byStub keeps the whole response as document A and emits a placeholder
// for document B. It always succeeds.
func (s Segmenter) byStub(response string) (string, string, bool) {
	return strings.TrimSpace(response), "(See " + s.StubReference + ")", true
}

// normalizeHeading strips any duplicate occurrence of the canonical
// heading and re-prefixes it, so every document leads with exactly one
// top-level heading.
func normalizeHeading(text, heading string) string {
	text = strings.TrimSpace(strings.ReplaceAll(text, heading, ""))
	if text == "" {
		return heading + "\n"
	}
	return heading + "\n\n" + text
}

// EnsureHeading prefixes a default top-level heading when the text does
// not already begin with one.
func EnsureHeading(text, defaultHeading string) string {
	if strings.HasPrefix(strings.TrimSpace(text), "# ") {
		return text
	}
	return defaultHeading + "\n\n" + text
}
