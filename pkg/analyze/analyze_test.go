package analyze

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alantheprice/pomgen/pkg/extract"
	"github.com/alantheprice/pomgen/pkg/testmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFileFromContent(t *testing.T, name, content string) *testmodel.TestFile {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	tf, err := testmodel.NewTestFile(path, content, extract.TestName(content, path), extract.Objective(content), extract.Strategy(content), extract.Steps(content))
	require.NoError(t, err)
	return tf
}

const fileA = `
test('login basico', async ({ page }) => {
  await test.step('Given usuario accede al login', async () => {
    await page.locator('input[name="uid"]').fill('u');
    await page.locator('input[name="password"]').fill('p');
    await page.locator('button[type="submit"]').click();
  });
});
`

const fileB = `
test('login repetido', async ({ page }) => {
  await test.step('When rellena el formulario de login', async () => {
    await page.locator('input[name="uid"]').fill('otro');
    await page.locator('input[name="uid"]').fill('mas');
  });
});
`

func TestFrequencySumMatchesAllSelectors(t *testing.T) {
	a := Batch([]*testmodel.TestFile{
		testFileFromContent(t, "a.spec.ts", fileA),
		testFileFromContent(t, "b.spec.ts", fileB),
	})

	total := 0
	for _, fc := range a.Frequency {
		total += fc.Count
	}
	assert.Equal(t, len(a.AllSelectors), total)
}

func TestBatchOverlapScenario(t *testing.T) {
	a := Batch([]*testmodel.TestFile{
		testFileFromContent(t, "a.spec.ts", fileA),
		testFileFromContent(t, "b.spec.ts", fileB),
	})

	// File A contributes 3 distinct values, file B only repeats one of
	// them, so the distinct set stays at 3.
	assert.Len(t, a.UniqueValues, 3)

	// The repeated uid locator must rank first with its true count: each
	// fill is also seen by the generic recognizer, so 3 fills count 6.
	require.NotEmpty(t, a.Frequency)
	top := a.Frequency[0]
	assert.Equal(t, `input[name="uid"]`, top.Value)
	assert.Equal(t, 6, top.Count)
	assert.Equal(t, 2, a.TestCount)
}

func TestStepTypeDistributionInitializedForAllTypes(t *testing.T) {
	a := Batch([]*testmodel.TestFile{testFileFromContent(t, "a.spec.ts", fileA)})

	require.Len(t, a.StepTypes, 4)
	assert.Equal(t, 1, a.StepTypes[testmodel.StepGiven])
	assert.Equal(t, 0, a.StepTypes[testmodel.StepWhen])
	assert.Equal(t, 0, a.StepTypes[testmodel.StepThen])
	assert.Equal(t, 0, a.StepTypes[testmodel.StepAnd])
	assert.Equal(t, 1, a.TotalSteps)
}

func TestGrouping(t *testing.T) {
	a := Batch([]*testmodel.TestFile{
		testFileFromContent(t, "a.spec.ts", fileA),
		testFileFromContent(t, "b.spec.ts", fileB),
	})

	require.NotEmpty(t, a.Groups)
	assert.Equal(t, "LoginPage", a.Groups[0].Name)
	assert.Contains(t, a.Groups[0].Selectors, `input[name="uid"]`)
}

func TestGroupName(t *testing.T) {
	cases := map[string]string{
		"Given usuario accede al login":   "LoginPage",
		"When crea un customer nuevo":     "CustomerPage",
		"rellena el formulario":           "FormPage",
		"abre el menu principal":          "NavigationComponent",
		"General context":                 "BasePage",
		"Then navega usando el nav-panel": "NavigationComponent",
	}
	for context, want := range cases {
		assert.Equal(t, want, GroupName(context), "context %q", context)
	}
}
