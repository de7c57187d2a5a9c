package templates

import (
	"embed"
	"fmt"

	"git.home.luguber.info/inful/docstamp/internal/foundation/normalization"
)

//go:embed builtin/*.tmpl
var builtinFS embed.FS

// Format names a built-in output.
type Format string

const (
	FormatRST           Format = "rst"
	FormatLaTeXPreamble Format = "latex-preamble"
	FormatLaTeXTitle    Format = "latex-title"
	FormatMarkdown      Format = "markdown"
	FormatHTML          Format = "html"
)

// AllFormats lists the built-in formats in render order.
func AllFormats() []Format {
	return []Format{FormatRST, FormatLaTeXPreamble, FormatLaTeXTitle, FormatMarkdown, FormatHTML}
}

var formatNormalizer = normalization.NewNormalizer(map[string]Format{
	"rst":            FormatRST,
	"latex-preamble": FormatLaTeXPreamble,
	"latex-title":    FormatLaTeXTitle,
	"markdown":       FormatMarkdown,
	"md":             FormatMarkdown,
	"html":           FormatHTML,
}, "")

// ValidFormats lists the accepted format spellings.
func ValidFormats() []string {
	return formatNormalizer.ValidKeys()
}

// ParseFormat normalizes a format name.
func ParseFormat(raw string) (Format, error) {
	f, err := formatNormalizer.NormalizeWithError(raw)
	if err != nil {
		return "", err
	}
	if f == "" {
		return "", fmt.Errorf("empty format, valid options: %v", ValidFormats())
	}
	return f, nil
}

type builtinSpec struct {
	template string
	output   string
	delims   Delims
}

var builtins = map[Format]builtinSpec{
	FormatRST:           {template: "epilog.rst.tmpl", output: "epilog.rst", delims: DefaultDelims},
	FormatLaTeXPreamble: {template: "preamble.tex.tmpl", output: "preamble.tex", delims: LaTeXDelims},
	FormatLaTeXTitle:    {template: "titlepage.tex.tmpl", output: "titlepage.tex", delims: LaTeXDelims},
	FormatMarkdown:      {template: "revision.md.tmpl", output: "revision.md", delims: DefaultDelims},
	FormatHTML:          {template: "page.html.tmpl", output: "revision.html", delims: DefaultDelims},
}

// FileName is the output file name of the format.
func (f Format) FileName() string {
	return builtins[f].output
}

// Render produces the document for format f.
func Render(f Format, data map[string]any) (string, error) {
	switch f {
	case FormatMarkdown:
		return RenderRevisionPage(data)
	case FormatHTML:
		return RenderHTMLPage(data)
	}
	spec, ok := builtins[f]
	if !ok {
		return "", fmt.Errorf("unknown format %q", f)
	}
	return renderBuiltin(spec, data)
}

func renderBuiltin(spec builtinSpec, data map[string]any) (string, error) {
	body, err := builtinFS.ReadFile("builtin/" + spec.template)
	if err != nil {
		return "", fmt.Errorf("read builtin template %s: %w", spec.template, err)
	}
	return RenderTemplateBody(spec.template, string(body), spec.delims, data)
}
