package testmodel

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// mcpMarkers are the substrings that mark a test as using MCP automation
// sequences. Tests carrying any of them are excluded from processing.
var mcpMarkers = []string{
	"MCPUse.executeSequence",
	"from '@ppia/mcp/MCPUse'",
	"import { MCPUse }",
	"MCPAction[]",
}

// TestFile is the unit of work for the pipeline: one end-to-end test
// source file plus the metadata and steps recognized in it.
type TestFile struct {
	Path      string
	Content   string
	Name      string
	Objective string
	Strategy  string
	Steps     []TestStep
}

// NewTestFile builds a TestFile. The underlying path must exist and the
// content and test name must be non-blank.
func NewTestFile(path, content, name, objective, strategy string, steps []TestStep) (*TestFile, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("test file does not exist: %s", path)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("test content cannot be empty: %s", path)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("test name cannot be empty: %s", path)
	}
	return &TestFile{
		Path:      path,
		Content:   content,
		Name:      name,
		Objective: objective,
		Strategy:  strategy,
		Steps:     steps,
	}, nil
}

// IsTainted reports whether the content contains any MCP marker.
func (t *TestFile) IsTainted() bool {
	for _, marker := range mcpMarkers {
		if strings.Contains(t.Content, marker) {
			return true
		}
	}
	return false
}

// FilterTainted drops MCP-tainted files from a batch. Filtering an
// already-filtered batch is a no-op.
func FilterTainted(files []*TestFile) []*TestFile {
	kept := make([]*TestFile, 0, len(files))
	for _, f := range files {
		if !f.IsTainted() {
			kept = append(kept, f)
		}
	}
	return kept
}

func (t *TestFile) StepCount() int {
	return len(t.Steps)
}

func (t *TestFile) String() string {
	return fmt.Sprintf("TestFile(path=%s, name=%q, steps=%d, strategy=%q)",
		filepath.Base(t.Path), t.Name, t.StepCount(), t.Strategy)
}
