package output

import (
	"fmt"
	"os"
	"path/filepath"
)

// ArtifactKind names one canonical document produced by the pipeline.
type ArtifactKind string

const (
	StructureOverview  ArtifactKind = "structure-overview"
	StructureDetail    ArtifactKind = "structure-detail"
	PlaywrightRefactor ArtifactKind = "playwright-refactor"
	CucumberSuite      ArtifactKind = "cucumber-suite"
	Guide              ArtifactKind = "guide"
)

// Filenames maps each artifact kind to its on-disk name.
var Filenames = map[ArtifactKind]string{
	StructureOverview:  "POM.md",
	StructureDetail:    "POM-components.md",
	PlaywrightRefactor: "playwright.md",
	CucumberSuite:      "cucumber.md",
	Guide:              "GUIDE.md",
}

// PersistenceError wraps any failure to write an artifact.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("cannot write %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Sink is the document persistence port the pipeline consumes.
type Sink interface {
	// Save persists the content under the kind's canonical filename and
	// returns the destination path.
	Save(kind ArtifactKind, content string) (string, error)
	// Root returns the destination directory.
	Root() string
}

// MarkdownSink writes artifacts as markdown files under one directory.
type MarkdownSink struct {
	root string
}

// NewMarkdownSink creates the output directory if needed.
func NewMarkdownSink(root string) (*MarkdownSink, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, &PersistenceError{Path: root, Err: err}
	}
	return &MarkdownSink{root: root}, nil
}

func (s *MarkdownSink) Save(kind ArtifactKind, content string) (string, error) {
	name, ok := Filenames[kind]
	if !ok {
		return "", fmt.Errorf("unknown artifact kind: %s", kind)
	}
	path := filepath.Join(s.root, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", &PersistenceError{Path: path, Err: err}
	}
	return path, nil
}

func (s *MarkdownSink) Root() string {
	return s.root
}
