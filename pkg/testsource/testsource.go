package testsource

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alantheprice/pomgen/pkg/extract"
	"github.com/alantheprice/pomgen/pkg/testmodel"
)

// specSuffix is the test-file naming convention we ingest.
const specSuffix = ".spec.ts"

// TaintedContentError marks a test that uses MCP sequences. Callers
// treat it as a warning and drop the file, not as a batch failure.
type TaintedContentError struct {
	Path string
}

func (e *TaintedContentError) Error() string {
	return fmt.Sprintf("test uses MCP sequences and is excluded: %s", filepath.Base(e.Path))
}

// Source is the test ingestion port the pipeline consumes.
type Source interface {
	// List returns the spec files under dir in a stable sorted order.
	List(dir string) ([]string, error)
	// Read parses one spec file into a TestFile, failing with a
	// *TaintedContentError when MCP markers are present.
	Read(path string) (*testmodel.TestFile, error)
}

// FileSource reads Playwright spec files from the local filesystem,
// honoring .gitignore rules under the listing root.
type FileSource struct{}

func NewFileSource() *FileSource {
	return &FileSource{}
}

func (s *FileSource) List(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("directory not found: %s", dir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	ignorer := ignoreRules(dir)

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), specSuffix) {
			return nil
		}
		if ignorer != nil {
			if rel, rerr := filepath.Rel(dir, path); rerr == nil && ignorer.MatchesPath(rel) {
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}

	sort.Strings(files)
	return files, nil
}

func (s *FileSource) Read(path string) (*testmodel.TestFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", path, err)
	}
	content := string(data)

	tf, err := testmodel.NewTestFile(
		path,
		content,
		extract.TestName(content, path),
		extract.Objective(content),
		extract.Strategy(content),
		extract.Steps(content),
	)
	if err != nil {
		return nil, err
	}

	if tf.IsTainted() {
		return nil, &TaintedContentError{Path: path}
	}
	return tf, nil
}
