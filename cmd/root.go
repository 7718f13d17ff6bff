package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pomgen",
	Short: "Generate Page Object Model documentation from Playwright tests",
	Long: `Pomgen reads a directory of Playwright .spec.ts end-to-end tests,
extracts their selectors and BDD steps, and drives a staged LLM
conversation that produces refactoring documentation for the suite:

  POM.md             - proposed page object structure (overview)
  POM-components.md  - per-component detail
  playwright.md      - the suite refactored against the proposed POM
  cucumber.md        - an equivalent Cucumber/Gherkin suite
  GUIDE.md           - a migration guide tying the documents together

Run 'pomgen analyze' first to preview what the extractor sees without
spending any tokens.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// ExecuteContext runs the root command. It is called by main.main() and
// carries the process signal context down into every stage.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(versionCmd)
}
