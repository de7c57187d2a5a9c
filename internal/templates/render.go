package templates

import (
	"bytes"
	"fmt"
	"text/template"
)

// Delims are the action delimiters of a template.
type Delims struct {
	Left  string
	Right string
}

// DefaultDelims are text/template's own.
var DefaultDelims = Delims{Left: "{{", Right: "}}"}

// LaTeXDelims keep actions clear of TeX's braces.
var LaTeXDelims = Delims{Left: "<<", Right: ">>"}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"latex": EscapeLaTeX,
		"md":    EscapeMarkdown,
	}
}

// RenderTemplateBody renders body with data. Referencing a key missing from
// data is an error.
func RenderTemplateBody(name, body string, delims Delims, data map[string]any) (string, error) {
	tpl, err := template.New(name).
		Delims(delims.Left, delims.Right).
		Funcs(funcMap()).
		Option("missingkey=error").
		Parse(body)
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.String(), nil
}
