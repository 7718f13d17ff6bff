package segment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var pomSegmenter = Segmenter{
	PrimaryHeading:   "# POM.md",
	SecondaryHeading: "# POM-components.md",
	Separator:        "---",
	StubReference:    "POM.md",
}

func TestSplitOnSeparatorRoundTrip(t *testing.T) {
	first, second := pomSegmenter.Split("DocA\n---\nDocB")

	assert.Equal(t, "# POM.md\n\nDocA", first)
	assert.Equal(t, "# POM-components.md\n\nDocB", second)
}

func TestSplitIgnoresExtraSegments(t *testing.T) {
	first, second := pomSegmenter.Split("DocA\n---\nDocB\n---\nDocC")

	assert.Contains(t, first, "DocA")
	assert.Contains(t, second, "DocB")
	assert.NotContains(t, second, "DocC")
}

func TestSplitFallsBackToSecondaryHeading(t *testing.T) {
	response := "# POM.md\nstructure overview\n# POM-components.md\ncomponent detail"
	first, second := pomSegmenter.Split(response)

	assert.True(t, strings.HasPrefix(first, "# POM.md\n"))
	assert.Contains(t, first, "structure overview")
	assert.True(t, strings.HasPrefix(second, "# POM-components.md\n"))
	assert.Contains(t, second, "component detail")
}

func TestSplitFallsBackToStub(t *testing.T) {
	first, second := pomSegmenter.Split("just one document without markers")

	assert.Contains(t, first, "just one document without markers")
	assert.Equal(t, "# POM-components.md\n\n(See POM.md)", second)
}

func TestSplitStripsDuplicateHeadings(t *testing.T) {
	response := "# POM.md\n\ncontent A\n---\n# POM-components.md\n\ncontent B"
	first, second := pomSegmenter.Split(response)

	assert.Equal(t, 1, strings.Count(first, "# POM.md"))
	assert.Equal(t, 1, strings.Count(second, "# POM-components.md"))
}

func TestSplitIsTotal(t *testing.T) {
	for _, response := range []string{"", "   ", "---", "x"} {
		first, second := pomSegmenter.Split(response)
		assert.NotEmpty(t, strings.TrimSpace(first), "response %q", response)
		assert.NotEmpty(t, strings.TrimSpace(second), "response %q", response)
	}
}

func TestEnsureHeading(t *testing.T) {
	assert.Equal(t, "# GUIDE.md\n\nplain text", EnsureHeading("plain text", "# GUIDE.md"))

	already := "# Custom Title\n\nbody"
	assert.Equal(t, already, EnsureHeading(already, "# GUIDE.md"))
}
