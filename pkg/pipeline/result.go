package pipeline

import "github.com/alantheprice/pomgen/pkg/output"

// Result is the mutable accumulator for one pipeline run. It starts
// successful, collects artifacts, warnings and errors as the run
// proceeds, and is the terminal report returned to the caller. A Result
// is never reused across runs.
type Result struct {
	Success   bool
	Artifacts map[output.ArtifactKind]string
	Errors    []string
	Warnings  []string
	Metadata  map[string]any
}

func NewResult() *Result {
	return &Result{
		Success:   true,
		Artifacts: make(map[output.ArtifactKind]string),
		Metadata:  make(map[string]any),
	}
}

func (r *Result) AddArtifact(kind output.ArtifactKind, path string) {
	r.Artifacts[kind] = path
}

// AddError records an error and forces the run into failure.
func (r *Result) AddError(message string) {
	r.Errors = append(r.Errors, message)
	r.Success = false
}

func (r *Result) AddWarning(message string) {
	r.Warnings = append(r.Warnings, message)
}

func (r *Result) SetMetadata(key string, value any) {
	r.Metadata[key] = value
}

func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}
