package template

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// Context holds all variables available for prompt template resolution.
type Context struct {
	// Entity is the value being injected into the prompt.
	Entity string
	// Category is the site's business category, when known.
	Category string
}

// Render resolves template expressions in the given string.
// Uses Go's text/template syntax: {{.Entity}}, {{.Category}}.
// Returns the input unchanged if it contains no template delimiters.
func Render(tmpl string, ctx *Context) (string, error) {
	// Fast path: no template delimiters means no work to do.
	if !strings.Contains(tmpl, "{{") {
		return tmpl, nil
	}

	t, err := template.New("").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("template: parse: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("template: render: %w", err)
	}

	return buf.String(), nil
}

// Check parses the template without rendering it, so catalogs can reject
// malformed templates at load time.
func Check(tmpl string) error {
	if !strings.Contains(tmpl, "{{") {
		return nil
	}
	if _, err := template.New("").Option("missingkey=error").Parse(tmpl); err != nil {
		return fmt.Errorf("template: parse: %w", err)
	}
	return nil
}
