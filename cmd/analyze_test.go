package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const analyzeFixture = `
test('login valido', async ({ page }) => {
  await test.step('Given usuario accede al login', async () => {
    await page.locator('input[name="uid"]').fill('user');
    await page.locator('button[type="submit"]').click();
  });
});
`

func TestRunAnalyzeMissingDir(t *testing.T) {
	analyzeInputDir = filepath.Join(t.TempDir(), "missing")
	err := runAnalyze(analyzeCmd, nil)
	assert.Error(t, err)
}

func TestRunAnalyzeEmptyDir(t *testing.T) {
	analyzeInputDir = t.TempDir()
	err := runAnalyze(analyzeCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid test files")
}

func TestRunAnalyzeSucceedsOnFixture(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "login.spec.ts"), []byte(analyzeFixture), 0644))

	analyzeInputDir = dir
	assert.NoError(t, runAnalyze(analyzeCmd, nil))
}
