package pom

import (
	"fmt"
	"strings"
)

// PageObject is a proposed class-like grouping of selectors and methods
// scoped to one logical screen.
type PageObject struct {
	Name      string
	Methods   []string
	Selectors []string
	Path      string
}

// NewPageObject validates name and path, which must be non-empty.
func NewPageObject(name string, methods, selectors []string, path string) (PageObject, error) {
	if strings.TrimSpace(name) == "" {
		return PageObject{}, fmt.Errorf("page object name cannot be empty")
	}
	if strings.TrimSpace(path) == "" {
		return PageObject{}, fmt.Errorf("page object path cannot be empty")
	}
	return PageObject{Name: name, Methods: methods, Selectors: selectors, Path: path}, nil
}

// Component is a proposed reusable grouping of methods not scoped to a
// single page.
type Component struct {
	Name    string
	Methods []string
	Path    string
}

// NewComponent validates name and path, which must be non-empty.
func NewComponent(name string, methods []string, path string) (Component, error) {
	if strings.TrimSpace(name) == "" {
		return Component{}, fmt.Errorf("component name cannot be empty")
	}
	if strings.TrimSpace(path) == "" {
		return Component{}, fmt.Errorf("component path cannot be empty")
	}
	return Component{Name: name, Methods: methods, Path: path}, nil
}

// Structure is the proposed page-object architecture for a batch.
type Structure struct {
	Pages      map[string]PageObject
	Components map[string]Component
	BasePath   string
}

func (s Structure) TotalPages() int {
	return len(s.Pages)
}

func (s Structure) TotalComponents() int {
	return len(s.Components)
}

func (s Structure) String() string {
	return fmt.Sprintf("Structure(pages=%d, components=%d, basePath=%q)",
		s.TotalPages(), s.TotalComponents(), s.BasePath)
}
