package testmodel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelectorRejectsEmptyFields(t *testing.T) {
	_, err := NewSelector("", "input", "fill", "ctx")
	assert.Error(t, err)

	_, err = NewSelector("#uid", "", "fill", "ctx")
	assert.Error(t, err)

	_, err = NewSelector("#uid", "input", "", "ctx")
	assert.Error(t, err)

	sel, err := NewSelector("#uid", "input", "fill", "")
	require.NoError(t, err)
	assert.Equal(t, "#uid", sel.Value)
}

func TestSelectorKind(t *testing.T) {
	sel, err := NewSelector(`[data-testid="submit"]`, "button", "click", "")
	require.NoError(t, err)
	assert.Equal(t, SelectorKindTestID, sel.Kind())

	sel, err = NewSelector(`//div[@id='main']`, "element", "interact", "")
	require.NoError(t, err)
	assert.Equal(t, SelectorKindXPath, sel.Kind())

	sel, err = NewSelector(`input[name="uid"]`, "input", "fill", "")
	require.NoError(t, err)
	assert.Equal(t, SelectorKindCSS, sel.Kind())
}

func TestNewTestStepNormalizesType(t *testing.T) {
	step, err := NewTestStep("Given", "usuario accede al login", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, StepGiven, step.Type)
	assert.Equal(t, "Given: usuario accede al login", step.ToGherkin())
}

func TestNewTestStepRejectsUnknownType(t *testing.T) {
	_, err := NewTestStep("maybe", "something happens", nil, nil)
	assert.Error(t, err)

	_, err = NewTestStep("then", "   ", nil, nil)
	assert.Error(t, err)
}

func TestGherkinPrefixes(t *testing.T) {
	for stepType, prefix := range map[string]string{
		"given": "Given:",
		"when":  "When:",
		"then":  "Then:",
		"and":   "And:",
	} {
		step, err := NewTestStep(stepType, "desc", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, prefix, step.GherkinPrefix())
	}
}

func writeSpec(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewTestFileValidation(t *testing.T) {
	path := writeSpec(t, "login.spec.ts", "test('login', async () => {})")

	_, err := NewTestFile(filepath.Join(t.TempDir(), "missing.spec.ts"), "content", "name", "", "", nil)
	assert.Error(t, err)

	_, err = NewTestFile(path, "   ", "name", "", "", nil)
	assert.Error(t, err)

	_, err = NewTestFile(path, "content", "", "", "", nil)
	assert.Error(t, err)

	tf, err := NewTestFile(path, "content", "login", "obj", "Strategy 1", nil)
	require.NoError(t, err)
	assert.False(t, tf.IsTainted())
}

func TestTaintDetection(t *testing.T) {
	path := writeSpec(t, "mcp.spec.ts", "import { MCPUse } from '@ppia/mcp/MCPUse';\nawait MCPUse.executeSequence(actions);")
	tf, err := NewTestFile(path, "import { MCPUse } from '@ppia/mcp/MCPUse';", "mcp test", "", "", nil)
	require.NoError(t, err)
	assert.True(t, tf.IsTainted())
}

func TestFilterTaintedIsIdempotent(t *testing.T) {
	clean, err := NewTestFile(writeSpec(t, "a.spec.ts", "x"), "test('a')", "a", "", "", nil)
	require.NoError(t, err)
	tainted, err := NewTestFile(writeSpec(t, "b.spec.ts", "x"), "const actions: MCPAction[] = []", "b", "", "", nil)
	require.NoError(t, err)

	once := FilterTainted([]*TestFile{clean, tainted})
	require.Len(t, once, 1)
	assert.Equal(t, "a", once[0].Name)

	twice := FilterTainted(once)
	assert.Equal(t, once, twice)
}
