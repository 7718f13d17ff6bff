package cmd

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/alantheprice/pomgen/pkg/config"
	"github.com/alantheprice/pomgen/pkg/llm"
	"github.com/alantheprice/pomgen/pkg/output"
	"github.com/alantheprice/pomgen/pkg/pipeline"
	"github.com/alantheprice/pomgen/pkg/testsource"
	"github.com/alantheprice/pomgen/pkg/utils"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	generateInputDir   string
	generateOutputDir  string
	generatePOMPath    string
	generateModel      string
	generateProvider   string
	generateSkipPrompt bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the full four-stage documentation pipeline",
	Long: `Generate scans the input directory for .spec.ts files, analyzes
them, and runs the staged LLM conversation that produces the five
output documents. Stages run strictly in order over one shared
conversation; a failed stage keeps the artifacts persisted before it.

An existing POM.md can be passed with --pom to fold the current
structure into the first prompt, turning the run into an update
instead of a from-scratch proposal.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateInputDir, "input", "i", "tests", "Directory scanned for .spec.ts files")
	generateCmd.Flags().StringVarP(&generateOutputDir, "output", "o", "", "Directory the documents are written to (default: 'output')")
	generateCmd.Flags().StringVar(&generatePOMPath, "pom", "", "Path to an existing POM.md to update against")
	generateCmd.Flags().StringVarP(&generateModel, "model", "m", "", "Model name passed to the provider")
	generateCmd.Flags().StringVar(&generateProvider, "provider", "", "Generation provider (openai, ollama)")
	generateCmd.Flags().BoolVar(&generateSkipPrompt, "skip-prompts", false, "Skip the confirmation prompt before generation")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logger := utils.GetLogger()

	cfg := config.Default()
	if generateOutputDir != "" {
		cfg.OutputRoot = generateOutputDir
	}
	if generateModel != "" {
		cfg.Model = generateModel
	}
	cfg.SkipPrompt = generateSkipPrompt
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		// Non-interactive invocations (CI, pipes) cannot answer prompts.
		cfg.SkipPrompt = true
	}

	provider, err := llm.DetermineProvider(generateProvider)
	if err != nil {
		return err
	}
	cfg.Provider = string(provider)

	if !cfg.SkipPrompt {
		ok, err := confirmGeneration(provider, cfg.Model)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	service, err := llm.NewService(cmd.Context(), provider, cfg.Model)
	if err != nil {
		return fmt.Errorf("initializing %s provider: %w", provider, err)
	}

	sink, err := output.NewMarkdownSink(cfg.OutputRoot)
	if err != nil {
		return err
	}

	p := pipeline.New(testsource.NewFileSource(), service, sink, cfg, logger)
	result := p.Run(cmd.Context(), pipeline.RunOptions{
		InputDir:              generateInputDir,
		ExistingStructurePath: generatePOMPath,
	})

	printRunReport(result)
	if !result.Success {
		return fmt.Errorf("generation failed with %d error(s)", len(result.Errors))
	}
	return nil
}

// confirmGeneration asks before any tokens are spent.
func confirmGeneration(provider llm.ProviderType, model string) (bool, error) {
	fmt.Printf("About to run 4 generation stages against %s (model %s).\n", provider, model)
	fmt.Print("Proceed? [y/N]: ")

	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

func printRunReport(result *pipeline.Result) {
	fmt.Println()
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Document", "Path"})
	for _, kind := range []output.ArtifactKind{
		output.StructureOverview,
		output.StructureDetail,
		output.PlaywrightRefactor,
		output.CucumberSuite,
		output.Guide,
	} {
		if path, ok := result.Artifacts[kind]; ok {
			table.Append([]string{output.Filenames[kind], path})
		}
	}
	table.Render()

	if len(result.Metadata) > 0 {
		meta := tablewriter.NewWriter(os.Stdout)
		meta.SetHeader([]string{"Metric", "Value"})
		keys := make([]string, 0, len(result.Metadata))
		for k := range result.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			meta.Append([]string{k, fmt.Sprintf("%v", result.Metadata[k])})
		}
		meta.Render()
	}

	for _, warning := range result.Warnings {
		fmt.Printf("Warning: %s\n", warning)
	}
	for _, errMsg := range result.Errors {
		fmt.Fprintf(os.Stderr, "Error: %s\n", errMsg)
	}
	if result.Success {
		fmt.Println("Generation complete.")
	}
}
