package pom

import (
	"testing"

	"github.com/alantheprice/pomgen/pkg/analyze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeSplitsPagesAndComponents(t *testing.T) {
	groups := []analyze.Group{
		{Name: "LoginPage", Selectors: []string{`input[name="uid"]`, `button[type="submit"]`}},
		{Name: "NavigationComponent", Selectors: []string{`.nav-item`}},
	}

	s := Synthesize(groups)

	assert.Equal(t, 1, s.TotalPages())
	assert.Equal(t, 1, s.TotalComponents())
	assert.Equal(t, "tests", s.BasePath)

	page, ok := s.Pages["LoginPage"]
	require.True(t, ok)
	assert.Equal(t, "tests/pages/login.page.ts", page.Path)
	assert.Equal(t, groups[0].Selectors, page.Selectors)

	component, ok := s.Components["NavigationComponent"]
	require.True(t, ok)
	assert.Equal(t, "tests/components/navigation.component.ts", component.Path)
}

func TestRecommendedPathKebabCase(t *testing.T) {
	assert.Equal(t, "tests/pages/new-customer.page.ts", recommendedPath("NewCustomerPage"))
	assert.Equal(t, "tests/pages/base.page.ts", recommendedPath("BasePage"))
	assert.Equal(t, "tests/components/form.component.ts", recommendedPath("FormComponent"))
}

func TestMethodSynthesisKeywords(t *testing.T) {
	methods := methodsForSelectors([]string{`#login-form`, `input[name="first-name"]`, `button[type="submit"]`, `#reset-btn`})
	assert.Equal(t, []string{
		"login(username: string, password: string): Promise<void>",
		"fillName(name: string): Promise<void>",
		"submit(): Promise<void>",
		"reset(): Promise<void>",
	}, methods)
}

func TestMethodSynthesisFallback(t *testing.T) {
	methods := methodsForSelectors([]string{`.widget`})
	assert.Equal(t, []string{"interact(): Promise<void>"}, methods)
}

func TestConstructorsRejectEmptyNames(t *testing.T) {
	_, err := NewPageObject("", nil, nil, "tests/pages/x.page.ts")
	assert.Error(t, err)
	_, err = NewPageObject("XPage", nil, nil, " ")
	assert.Error(t, err)
	_, err = NewComponent("", nil, "tests/components/x.component.ts")
	assert.Error(t, err)
}
