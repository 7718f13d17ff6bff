package prompts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alantheprice/pomgen/pkg/extract"
	"github.com/alantheprice/pomgen/pkg/pom"
	"github.com/alantheprice/pomgen/pkg/testmodel"
)

const (
	// maxSelectorsPerTest bounds the selector listing in the structure
	// prompt so large suites do not blow the context budget.
	maxSelectorsPerTest = 10
	// maxTestExcerpts bounds how many raw test excerpts the refactor and
	// BDD prompts carry.
	maxTestExcerpts = 2
	// excerptLength is how much of each raw test is quoted.
	excerptLength = 800
	// existingDocLimit caps how much of an existing structure document
	// is folded into the prompt.
	existingDocLimit = 2000
)

// StructureSystemPrompt primes the structure stage.
const StructureSystemPrompt = `You are an expert in the Page Object Model (POM) for Playwright with TypeScript.

Your responsibilities:
- Design clear, maintainable POM structures
- Follow Playwright best practices
- Prefer data-testid selectors where possible
- Create reusable, well-named methods
- Document each component clearly`

// PlaywrightSystemPrompt primes the Playwright refactor stage.
const PlaywrightSystemPrompt = `You are an expert in E2E testing with Playwright and TypeScript.

Your responsibilities:
- Refactor tests to use the POM
- Keep the BDD structure with test.step()
- Create efficient fixtures and data providers
- Organize tests modularly
- Apply Playwright best practices`

// CucumberSystemPrompt primes the Cucumber/BDD stage.
const CucumberSystemPrompt = `You are an expert in BDD testing with Cucumber and Playwright.

Your responsibilities:
- Write features in clear Gherkin syntax
- Create well-structured TypeScript step definitions
- Integrate Cucumber with Playwright correctly
- Follow standard BDD patterns
- Use the World context appropriately`

// BuildStructurePrompt asks for the two structure documents, fed by the
// per-test selector summaries, the synthesized architecture proposal,
// and optionally an existing structure document to update.
func BuildStructurePrompt(files []*testmodel.TestFile, existing string, proposal pom.Structure) string {
	var b strings.Builder
	b.WriteString("Analyze the following Playwright tests and generate POM documentation.\n")

	for _, test := range files {
		b.WriteString(fmt.Sprintf("\n## Test: %s\n**Objective:** %s\n**Strategy:** %s\n\n**Selectors found:**\n",
			test.Name, test.Objective, test.Strategy))
		for i, sel := range extract.Selectors(test.Content) {
			if i >= maxSelectorsPerTest {
				break
			}
			b.WriteString(fmt.Sprintf("  - %s: %s (%s)\n", sel.Action, sel.Value, sel.ElementType))
		}
	}

	writeProposalSection(&b, proposal)

	if existing != "" {
		if len(existing) > existingDocLimit {
			existing = existing[:existingDocLimit]
		}
		b.WriteString("\n## Existing POM\n\nUpdate and improve this existing structure:\n\n```markdown\n")
		b.WriteString(existing)
		b.WriteString("\n```\n")
	}

	b.WriteString(`
## Generate TWO markdown documents:

### 1. POM.md
Directory structure and POM methods:
- Folder tree (tests/pages/, tests/components/)
- Page Objects with their public methods
- Naming conventions
- Dependency diagram

### 2. POM-components.md
Detailed TypeScript implementations:
- Complete code for each Page Object
- Recommended path for each file
- Why each selector was chosen
- Usage examples for every method
- Required imports

**Response format:**

` + "```markdown" + `
# POM.md

[POM.md content here]

---

# POM-components.md

[POM-components.md content here]
` + "```" + `

**Requirements:**
- Prefer data-testid selectors where possible
- Methods must return Page Objects (fluent interface)
- Group logically by pages/sections
- Use strict TypeScript types
- Document every method with JSDoc`)

	return b.String()
}

// writeProposalSection renders the synthesized architecture so the model
// can reuse the proposed names instead of inventing new ones.
func writeProposalSection(b *strings.Builder, proposal pom.Structure) {
	if proposal.TotalPages() == 0 && proposal.TotalComponents() == 0 {
		return
	}
	b.WriteString("\n## Proposed grouping (heuristic, refine as needed)\n")
	for _, name := range sortedKeys(proposal.Pages) {
		page := proposal.Pages[name]
		b.WriteString(fmt.Sprintf("- Page %s (%s): %s\n", page.Name, page.Path, strings.Join(page.Methods, ", ")))
	}
	for _, name := range sortedKeys(proposal.Components) {
		component := proposal.Components[name]
		b.WriteString(fmt.Sprintf("- Component %s (%s): %s\n", component.Name, component.Path, strings.Join(component.Methods, ", ")))
	}
}

// BuildPlaywrightPrompt asks for the refactored Playwright suite, built
// on top of the structure established earlier in the conversation.
func BuildPlaywrightPrompt(files []*testmodel.TestFile) string {
	var b strings.Builder
	b.WriteString("Refactor these Playwright tests to use the POM you just designed.\n")
	writeExcerpts(&b, files, "Original test")
	b.WriteString(`
## Generate playwright.md with:

### 1. Refactored tests
- Use Page Objects instead of raw selectors
- Keep test.step() with Gherkin descriptions
- Correct Page Object imports

### 2. Fixtures
- Shared setup via Playwright fixtures
- Test data providers

### 3. Migration notes
- What changed per test and why

**Format:** markdown with clear sections and executable code blocks.`)
	return b.String()
}

// BuildCucumberPrompt asks for the Cucumber conversion, again building
// on the conversation so far.
func BuildCucumberPrompt(files []*testmodel.TestFile) string {
	var b strings.Builder
	b.WriteString("Convert these Playwright tests to Cucumber + Playwright, reusing the POM and the refactored suite you already produced.\n")
	writeExcerpts(&b, files, "Example test")
	b.WriteString(`
## Generate cucumber.md with:

### 1. Feature files (.feature)
- Full Gherkin syntax
- Well-structured scenarios
- Background where it applies
- Examples for data-driven tests

### 2. Step definitions (.ts)
- Implementation using the POM
- Configured World context
- Required Before/After hooks
- Error handling

### 3. Configuration
- cucumber.config.ts
- Playwright integration
- package.json scripts

### 4. Usage guide
- How to run the tests
- How to add new scenarios
- Best practices

**Format:** markdown with clear sections and executable code blocks.`)
	return b.String()
}

// BuildGuidePrompt closes the conversation: it references everything
// generated so far rather than restating the tests.
func BuildGuidePrompt() string {
	return `Now, using ALL the documentation you just generated (POM.md, POM-components.md, playwright.md and cucumber.md), create a GUIDE.md.

## GUIDE.md structure:

### 1. Introduction
What this refactoring delivers and why.

### 2. The designed POM
A short tour of the pages and components, referencing the names you established.

### 3. Implementation guide
Step-by-step migration order, file by file.

### 4. Useful commands
How to run the refactored and BDD suites.

### 5. Conventions
Naming, selector preferences and review checklist for future tests.`
}

func writeExcerpts(b *strings.Builder, files []*testmodel.TestFile, label string) {
	for i, test := range files {
		if i >= maxTestExcerpts {
			break
		}
		content := test.Content
		if len(content) > excerptLength {
			content = content[:excerptLength] + "..."
		}
		b.WriteString(fmt.Sprintf("\n## %s\n\n```typescript\n// %s\n// Objective: %s\n\n%s\n```\n",
			label, test.Name, test.Objective, content))
	}
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
