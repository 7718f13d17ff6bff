package pom

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alantheprice/pomgen/pkg/analyze"
)

// basePath is the configured test root the proposed files hang off.
const basePath = "tests"

var camelBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)

// Synthesize turns the page/component grouping into a typed proposed
// architecture. A group whose name contains "Component" becomes a
// Component, everything else a Page. This is best-effort scaffolding for
// the generation prompts, not a correctness-guaranteed inference.
func Synthesize(groups []analyze.Group) Structure {
	s := Structure{
		Pages:      make(map[string]PageObject),
		Components: make(map[string]Component),
		BasePath:   basePath,
	}

	for _, group := range groups {
		methods := methodsForSelectors(group.Selectors)
		if strings.Contains(group.Name, "Component") {
			component, err := NewComponent(group.Name, methods, recommendedPath(group.Name))
			if err != nil {
				continue
			}
			s.Components[group.Name] = component
		} else {
			page, err := NewPageObject(group.Name, methods, group.Selectors, recommendedPath(group.Name))
			if err != nil {
				continue
			}
			s.Pages[group.Name] = page
		}
	}

	return s
}

// methodsForSelectors derives TypeScript method signatures from keyword
// presence in the group's selector values.
func methodsForSelectors(selectors []string) []string {
	var methods []string

	if anyContains(selectors, "login") {
		methods = append(methods, "login(username: string, password: string): Promise<void>")
	}
	if anyContains(selectors, "name") {
		methods = append(methods, "fillName(name: string): Promise<void>")
	}
	if anyContains(selectors, "submit") || anyContains(selectors, "button") {
		methods = append(methods, "submit(): Promise<void>")
	}
	if anyContains(selectors, "reset") {
		methods = append(methods, "reset(): Promise<void>")
	}

	if len(methods) == 0 {
		methods = append(methods, "interact(): Promise<void>")
	}
	return methods
}

// recommendedPath converts a CamelCase group name to its kebab-case file
// path: LoginPage -> tests/pages/login.page.ts, NavigationComponent ->
// tests/components/navigation.component.ts.
func recommendedPath(name string) string {
	stem := strings.ReplaceAll(name, "Page", "")
	stem = strings.ReplaceAll(stem, "Component", "")
	stem = strings.ToLower(camelBoundary.ReplaceAllString(stem, "$1-$2"))

	if strings.Contains(strings.ToLower(name), "component") {
		return fmt.Sprintf("%s/components/%s.component.ts", basePath, stem)
	}
	return fmt.Sprintf("%s/pages/%s.page.ts", basePath, stem)
}

func anyContains(values []string, keyword string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), keyword) {
			return true
		}
	}
	return false
}
