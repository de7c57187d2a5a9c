package templates

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/inful/mdfp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

// frontMatterKeys are copied from the data map into the revision page front matter.
var frontMatterKeys = []string{"title", "githash", "gittime", "copyright"}

// RenderRevisionPage renders the Markdown revision page. Its YAML front matter
// carries the revision values and a content fingerprint.
func RenderRevisionPage(data map[string]any) (string, error) {
	body, err := renderBuiltin(builtins[FormatMarkdown], data)
	if err != nil {
		return "", err
	}

	fields := make(map[string]any, len(frontMatterKeys)+1)
	for _, k := range frontMatterKeys {
		v, ok := data[k]
		if !ok {
			return "", fmt.Errorf("front matter key %q missing from data", k)
		}
		fields[k] = v
	}

	unsigned, err := marshalFrontMatter(fields)
	if err != nil {
		return "", err
	}
	fields[mdfp.FingerprintField] = mdfp.CalculateFingerprintFromParts(strings.TrimSuffix(unsigned, "\n"), body)

	signed, err := marshalFrontMatter(fields)
	if err != nil {
		return "", err
	}
	return "---\n" + signed + "---\n\n" + body, nil
}

func marshalFrontMatter(fields map[string]any) (string, error) {
	out, err := yaml.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("serialize front matter: %w", err)
	}
	return string(out), nil
}

// MarkdownToHTML converts a Markdown body (no front matter) to an HTML fragment.
func MarkdownToHTML(body string) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var buf bytes.Buffer
	if err := md.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

// RenderHTMLPage renders the revision page body to a standalone HTML document.
func RenderHTMLPage(data map[string]any) (string, error) {
	body, err := renderBuiltin(builtins[FormatMarkdown], data)
	if err != nil {
		return "", err
	}
	fragment, err := MarkdownToHTML(body)
	if err != nil {
		return "", err
	}

	page, err := builtinFS.ReadFile("builtin/page.html.tmpl")
	if err != nil {
		return "", fmt.Errorf("read builtin template page.html.tmpl: %w", err)
	}
	tpl, err := template.New("page.html.tmpl").Option("missingkey=error").Parse(string(page))
	if err != nil {
		return "", fmt.Errorf("parse template page.html.tmpl: %w", err)
	}

	pageData := make(map[string]any, len(data)+1)
	for k, v := range data {
		pageData[k] = v
	}
	// #nosec G203 -- fragment is goldmark output, which escapes raw HTML by default
	pageData["body"] = template.HTML(fragment)

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, pageData); err != nil {
		return "", fmt.Errorf("render template page.html.tmpl: %w", err)
	}
	return buf.String(), nil
}
