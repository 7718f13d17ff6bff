package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/alantheprice/pomgen/pkg/analyze"
	"github.com/alantheprice/pomgen/pkg/pom"
	"github.com/alantheprice/pomgen/pkg/testmodel"
	"github.com/alantheprice/pomgen/pkg/testsource"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var analyzeInputDir string

// topSelectorRows caps the frequency table at the selectors worth reading.
const topSelectorRows = 10

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Report what the extractor sees, without calling any LLM",
	Long: `Analyze runs only the extraction and aggregation half of the
pipeline: it scans the input directory, extracts selectors and BDD
steps from every .spec.ts file, and prints the frequency ranking,
step distribution and the page object structure the generate command
would propose. No provider is contacted and no files are written.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeInputDir, "input", "i", "tests", "Directory scanned for .spec.ts files")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	source := testsource.NewFileSource()
	paths, err := source.List(analyzeInputDir)
	if err != nil {
		return err
	}

	var files []*testmodel.TestFile
	excluded := 0
	for _, path := range paths {
		tf, err := source.Read(path)
		if err != nil {
			var taintErr *testsource.TaintedContentError
			if errors.As(err, &taintErr) {
				excluded++
				continue
			}
			fmt.Fprintf(os.Stderr, "Warning: skipping %s: %v\n", filepath.Base(path), err)
			continue
		}
		files = append(files, tf)
	}
	if len(files) == 0 {
		return fmt.Errorf("no valid test files found in %s", analyzeInputDir)
	}

	summary := analyze.Batch(files)
	structure := pom.Synthesize(summary.Groups)

	printAnalysisSummary(summary, excluded)
	printFrequencyTable(summary)
	printStepDistribution(summary)
	printProposedStructure(structure)
	return nil
}

func printAnalysisSummary(summary *analyze.Analysis, excluded int) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Test files", strconv.Itoa(summary.TestCount)})
	table.Append([]string{"Selector occurrences", strconv.Itoa(len(summary.AllSelectors))})
	table.Append([]string{"Unique selectors", strconv.Itoa(len(summary.UniqueValues))})
	table.Append([]string{"BDD steps", strconv.Itoa(summary.TotalSteps)})
	if excluded > 0 {
		table.Append([]string{"MCP tests excluded", strconv.Itoa(excluded)})
	}
	table.Render()
}

func printFrequencyTable(summary *analyze.Analysis) {
	rows := summary.Frequency
	if len(rows) > topSelectorRows {
		rows = rows[:topSelectorRows]
	}
	if len(rows) == 0 {
		return
	}

	fmt.Println("\nMost used selectors:")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Selector", "Count"})
	for _, row := range rows {
		table.Append([]string{row.Value, strconv.Itoa(row.Count)})
	}
	table.Render()
}

func printStepDistribution(summary *analyze.Analysis) {
	fmt.Println("\nStep distribution:")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Type", "Count"})
	for _, stepType := range []testmodel.StepType{
		testmodel.StepGiven,
		testmodel.StepWhen,
		testmodel.StepThen,
		testmodel.StepAnd,
	} {
		table.Append([]string{string(stepType), strconv.Itoa(summary.StepTypes[stepType])})
	}
	table.Render()
}

func printProposedStructure(structure pom.Structure) {
	fmt.Println("\nProposed structure:")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Kind", "Name", "Methods", "Path"})

	pageNames := make([]string, 0, len(structure.Pages))
	for name := range structure.Pages {
		pageNames = append(pageNames, name)
	}
	sort.Strings(pageNames)
	for _, name := range pageNames {
		page := structure.Pages[name]
		table.Append([]string{"page", name, strings.Join(page.Methods, ", "), page.Path})
	}

	componentNames := make([]string, 0, len(structure.Components))
	for name := range structure.Components {
		componentNames = append(componentNames, name)
	}
	sort.Strings(componentNames)
	for _, name := range componentNames {
		component := structure.Components[name]
		table.Append([]string{"component", name, strings.Join(component.Methods, ", "), component.Path})
	}
	table.Render()
}
