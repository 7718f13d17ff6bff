package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alantheprice/pomgen/pkg/analyze"
	"github.com/alantheprice/pomgen/pkg/config"
	"github.com/alantheprice/pomgen/pkg/llm"
	"github.com/alantheprice/pomgen/pkg/output"
	"github.com/alantheprice/pomgen/pkg/pom"
	"github.com/alantheprice/pomgen/pkg/prompts"
	"github.com/alantheprice/pomgen/pkg/segment"
	"github.com/alantheprice/pomgen/pkg/testmodel"
	"github.com/alantheprice/pomgen/pkg/testsource"
	"github.com/alantheprice/pomgen/pkg/utils"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Pipeline drives the sequential generation stages over one shared,
// growing conversation. Stage N+1 never starts before stage N's
// artifacts are persisted; its prompt and context depend on them.
type Pipeline struct {
	source  testsource.Source
	service llm.Service
	sink    output.Sink
	cfg     config.Config
	logger  *utils.Logger
}

func New(source testsource.Source, service llm.Service, sink output.Sink, cfg config.Config, logger *utils.Logger) *Pipeline {
	return &Pipeline{
		source:  source,
		service: service,
		sink:    sink,
		cfg:     cfg,
		logger:  logger,
	}
}

// RunOptions parameterizes one run.
type RunOptions struct {
	// InputDir is the directory scanned for spec files.
	InputDir string
	// ExistingStructurePath optionally points at a prior POM.md to fold
	// into the structure prompt.
	ExistingStructurePath string
}

// stage is one step of the generation sequence. Each stage receives the
// conversation so far and returns it extended with its own exchange.
type stage struct {
	name string
	run  func(ctx context.Context, history []llm.Message, result *Result) ([]llm.Message, error)
}

// Run executes the full pipeline and returns the terminal report. A
// fresh Result and a fresh conversation are created per run; nothing is
// shared across runs.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) *Result {
	result := NewResult()
	start := time.Now()

	paths, err := p.source.List(opts.InputDir)
	if err != nil {
		result.AddError(err.Error())
		return result
	}

	files := p.readBatch(paths, result)
	if len(files) == 0 {
		result.AddError("no valid test files to process")
		return result
	}
	result.SetMetadata("test_count", len(files))

	p.logger.LogProcessStep(fmt.Sprintf("Analyzing %d test file(s)...", len(files)))
	summary := analyze.Batch(files)
	proposal := pom.Synthesize(summary.Groups)
	result.SetMetadata("selector_count", len(summary.AllSelectors))
	result.SetMetadata("unique_selectors", len(summary.UniqueValues))
	result.SetMetadata("total_steps", summary.TotalSteps)

	stages := []stage{
		{"structure", func(ctx context.Context, history []llm.Message, result *Result) ([]llm.Message, error) {
			return p.runStructureStage(ctx, files, proposal, opts.ExistingStructurePath, history, result)
		}},
		{"playwright refactor", func(ctx context.Context, history []llm.Message, result *Result) ([]llm.Message, error) {
			return p.runDocStage(ctx, output.PlaywrightRefactor, prompts.BuildPlaywrightPrompt(files),
				prompts.PlaywrightSystemPrompt, "# playwright.md", history, result)
		}},
		{"cucumber", func(ctx context.Context, history []llm.Message, result *Result) ([]llm.Message, error) {
			return p.runDocStage(ctx, output.CucumberSuite, prompts.BuildCucumberPrompt(files),
				prompts.CucumberSystemPrompt, "# cucumber.md", history, result)
		}},
		{"guide", func(ctx context.Context, history []llm.Message, result *Result) ([]llm.Message, error) {
			return p.runDocStage(ctx, output.Guide, prompts.BuildGuidePrompt(),
				"", "# GUIDE.md", history, result)
		}},
	}

	history := []llm.Message{}
	for _, st := range stages {
		p.logger.LogProcessStep(fmt.Sprintf("Running %s stage...", st.name))
		history, err = st.run(ctx, history, result)
		if err != nil {
			result.AddError(describeStageFailure(st.name, err))
			return result
		}
	}

	result.SetMetadata("duration_seconds", time.Since(start).Round(10*time.Millisecond).Seconds())
	result.SetMetadata("output_dir", p.sink.Root())
	result.SetMetadata("conversation_length", len(history))
	p.recordUsageEstimate(history, result)
	return result
}

// readBatch reads every listed file, recovering locally from tainted or
// unreadable files so one bad file never aborts the batch.
func (p *Pipeline) readBatch(paths []string, result *Result) []*testmodel.TestFile {
	var files []*testmodel.TestFile
	tainted := 0

	for _, path := range paths {
		tf, err := p.source.Read(path)
		if err != nil {
			var taintErr *testsource.TaintedContentError
			if errors.As(err, &taintErr) {
				tainted++
				result.AddWarning(err.Error())
				continue
			}
			result.AddWarning(fmt.Sprintf("skipping %s: %v", filepath.Base(path), err))
			continue
		}
		files = append(files, tf)
	}

	if tainted > 0 {
		result.SetMetadata("mcp_tests_excluded", tainted)
	}
	return files
}

// runStructureStage produces the overview/detail document pair from one
// composite response.
func (p *Pipeline) runStructureStage(ctx context.Context, files []*testmodel.TestFile, proposal pom.Structure,
	existingPath string, history []llm.Message, result *Result) ([]llm.Message, error) {

	existing := ""
	if existingPath != "" {
		data, err := os.ReadFile(existingPath)
		if err != nil {
			result.AddWarning(fmt.Sprintf("cannot read existing structure document %s: %v", existingPath, err))
		} else {
			existing = string(data)
		}
	}

	prompt := prompts.BuildStructurePrompt(files, existing, proposal)
	text, updated, err := p.generate(ctx, prompt, prompts.StructureSystemPrompt, history)
	if err != nil {
		return history, err
	}

	segmenter := segment.Segmenter{
		PrimaryHeading:   "# POM.md",
		SecondaryHeading: "# POM-components.md",
		Separator:        "---",
		StubReference:    output.Filenames[output.StructureOverview],
	}
	overview, detail := segmenter.Split(text)

	path, err := p.sink.Save(output.StructureOverview, overview)
	if err != nil {
		return updated, err
	}
	result.AddArtifact(output.StructureOverview, path)

	path, err = p.sink.Save(output.StructureDetail, detail)
	if err != nil {
		return updated, err
	}
	result.AddArtifact(output.StructureDetail, path)

	if existing != "" {
		p.logStructureDrift(existing, overview)
	}
	return updated, nil
}

// runDocStage is the shape shared by the single-document stages.
func (p *Pipeline) runDocStage(ctx context.Context, kind output.ArtifactKind, prompt, systemPrompt,
	defaultHeading string, history []llm.Message, result *Result) ([]llm.Message, error) {

	text, updated, err := p.generate(ctx, prompt, systemPrompt, history)
	if err != nil {
		return history, err
	}

	text = segment.EnsureHeading(text, defaultHeading)
	path, err := p.sink.Save(kind, text)
	if err != nil {
		return updated, err
	}
	result.AddArtifact(kind, path)
	return updated, nil
}

func (p *Pipeline) generate(ctx context.Context, prompt, systemPrompt string, history []llm.Message) (string, []llm.Message, error) {
	req := llm.Request{
		Prompt:       prompt,
		SystemPrompt: systemPrompt,
		Temperature:  p.cfg.Temperature,
		MaxTokens:    p.cfg.MaxTokens,
	}
	return p.service.GenerateWithHistory(ctx, req, history)
}

// logStructureDrift logs how far the regenerated overview moved from the
// provided structure document.
func (p *Pipeline) logStructureDrift(existing, regenerated string) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(existing, regenerated, false)

	inserted, deleted := 0, 0
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			inserted += len(d.Text)
		case diffmatchpatch.DiffDelete:
			deleted += len(d.Text)
		}
	}
	p.logger.Logf("structure drift vs existing document: +%d/-%d chars", inserted, deleted)
}

// recordUsageEstimate approximates token and cost totals from the final
// conversation.
func (p *Pipeline) recordUsageEstimate(history []llm.Message, result *Result) {
	inputTokens, outputTokens := 0, 0
	for _, msg := range history {
		if msg.Role == "assistant" {
			outputTokens += p.service.CountTokens(msg.Content)
		} else {
			inputTokens += p.service.CountTokens(msg.Content)
		}
	}
	result.SetMetadata("estimated_input_tokens", inputTokens)
	result.SetMetadata("estimated_output_tokens", outputTokens)
	result.SetMetadata("estimated_cost_usd", p.service.EstimateCost(inputTokens, outputTokens))
}

// describeStageFailure distinguishes generation failures from
// persistence failures in the terminal report.
func describeStageFailure(stageName string, err error) string {
	var rateErr *llm.RateLimitError
	var timeoutErr *llm.TimeoutError
	var svcErr *llm.ServiceError
	var persistErr *output.PersistenceError

	switch {
	case errors.As(err, &rateErr):
		return fmt.Sprintf("%s stage aborted by rate limiting: %v", stageName, err)
	case errors.As(err, &timeoutErr):
		return fmt.Sprintf("%s stage timed out: %v", stageName, err)
	case errors.As(err, &svcErr):
		return fmt.Sprintf("%s stage failed in the generation service: %v", stageName, err)
	case errors.As(err, &persistErr):
		return fmt.Sprintf("%s stage could not persist its artifact: %v", stageName, err)
	default:
		return fmt.Sprintf("%s stage failed: %v", stageName, err)
	}
}
