package extract

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	testNamePattern     = regexp.MustCompile(`test\(['"]([^'"]+)['"]\s*,`)
	objectivePattern    = regexp.MustCompile(`\* 🎯 OBJETIVO DEL TEST:\s*\n\s*\* (.+)`)
	objectiveAltPattern = regexp.MustCompile(`// OBJETIVO: (.+)`)

	strategyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)STRATEGY[:\s]+(\d+)`),
		regexp.MustCompile(`(?i)Strategy\s+(\d+)`),
		regexp.MustCompile(`(?i)strategy-(\d+)`),
	}

	titleCaser = cases.Title(language.Und)
)

// TestName extracts the test name from the first test('...') declaration,
// falling back to a title-cased form of the filename.
func TestName(content, path string) string {
	if m := testNamePattern.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	stem = strings.TrimSuffix(stem, ".spec")
	return titleCaser.String(strings.ReplaceAll(stem, "-", " "))
}

// Objective extracts the test objective from the documentation comment
// conventions used in the suites we ingest.
func Objective(content string) string {
	if m := objectivePattern.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := objectiveAltPattern.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return "No objective specified"
}

// Strategy extracts the "Strategy N" label, if the test declares one.
func Strategy(content string) string {
	for _, p := range strategyPatterns {
		if m := p.FindStringSubmatch(content); m != nil {
			return fmt.Sprintf("Strategy %s", m[1])
		}
	}
	return "Unknown Strategy"
}
