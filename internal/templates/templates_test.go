package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inful/mdfp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleData() map[string]any {
	return NewData(map[string]string{
		"githash":   "abc1234",
		"gittime":   "January 16, 2023",
		"today":     "October 19, 2026",
		"copyright": "2020-2023",
		"pdf_link":  "pdf/code-packaging-revabc1234.pdf",
	}, Project{
		Name:        "code-packaging-minicourse",
		Title:       "Python code packaging for scientific software",
		Author:      "Jo Bovy",
		Affiliation: "University of Toronto",
	})
}

func TestRenderTemplateBody(t *testing.T) {
	out, err := RenderTemplateBody("t", "Rev. {{ .githash }}", DefaultDelims, map[string]any{"githash": "abc1234"})
	require.NoError(t, err)
	assert.Equal(t, "Rev. abc1234", out)

	_, err = RenderTemplateBody("t", "{{ .nope }}", DefaultDelims, map[string]any{})
	require.Error(t, err)

	_, err = RenderTemplateBody("t", "{{ .x ", DefaultDelims, map[string]any{})
	require.Error(t, err)
}

func TestNewData(t *testing.T) {
	data := NewData(map[string]string{"githash": "1"}, Project{Name: "notes"})
	assert.Equal(t, "notes", data["title"])
	assert.Equal(t, "1", data["githash"])
	assert.Equal(t, PDFCaption, data["pdf_caption"])
}

func TestEscapeLaTeX(t *testing.T) {
	assert.Equal(t, `R\&D 50\% \$x\_1\$ \#1`, EscapeLaTeX(`R&D 50% $x_1$ #1`))
	assert.Equal(t, `\textbackslash{}cmd\{\}`, EscapeLaTeX(`\cmd{}`))
	assert.Equal(t, "abc1234", EscapeLaTeX("abc1234"))
}

func TestRender_RST(t *testing.T) {
	out, err := Render(FormatRST, sampleData())
	require.NoError(t, err)
	assert.Contains(t, out, ".. |gitHash| replace:: abc1234\n")
	assert.Contains(t, out, ".. |gitTime| replace:: January 16, 2023\n")
	assert.Contains(t, out, ".. |copyright| replace:: 2020-2023, Jo Bovy\n")
	assert.Contains(t, out, "`PDF version <pdf/code-packaging-revabc1234.pdf>`__")
}

func TestRender_LaTeX(t *testing.T) {
	data := sampleData()
	data["author"] = "A & B"

	preamble, err := Render(FormatLaTeXPreamble, data)
	require.NoError(t, err)
	assert.Contains(t, preamble, `\newcommand{\githash}{abc1234}`)
	assert.Contains(t, preamble, `\newcommand{\gittime}{January 16, 2023}`)
	assert.Contains(t, preamble, `\newcommand{\mytoday}{October 19, 2026}`)
	assert.Contains(t, preamble, `\newcommand{\mycopyright}{2020-2023, A \& B}`)

	title, err := Render(FormatLaTeXTitle, data)
	require.NoError(t, err)
	assert.Contains(t, title, `{Rev. \githash}`)
	assert.Contains(t, title, `{\large\scshape A \& B\\ (University of Toronto)\par}`)

	data["affiliation"] = ""
	title, err = Render(FormatLaTeXTitle, data)
	require.NoError(t, err)
	assert.Contains(t, title, `{\large\scshape A \& B\par}`)
}

func TestRender_MarkdownFrontMatter(t *testing.T) {
	out, err := Render(FormatMarkdown, sampleData())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "---\n"))

	parts := strings.SplitN(strings.TrimPrefix(out, "---\n"), "---\n\n", 2)
	require.Len(t, parts, 2)

	var fields map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(parts[0]), &fields))
	assert.Equal(t, "abc1234", fields["githash"])
	assert.Equal(t, "2020-2023", fields["copyright"])
	assert.NotEmpty(t, fields[mdfp.FingerprintField])
	assert.Contains(t, parts[1], "| Revision | `abc1234` |")

	again, err := Render(FormatMarkdown, sampleData())
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestRender_MarkdownFingerprintTracksContent(t *testing.T) {
	a, err := RenderRevisionPage(sampleData())
	require.NoError(t, err)
	data := sampleData()
	data["githash"] = "def5678"
	b, err := RenderRevisionPage(data)
	require.NoError(t, err)

	fp := func(doc string) any {
		var fields map[string]any
		head := strings.SplitN(strings.TrimPrefix(doc, "---\n"), "---\n", 2)[0]
		require.NoError(t, yaml.Unmarshal([]byte(head), &fields))
		return fields[mdfp.FingerprintField]
	}
	assert.NotEqual(t, fp(a), fp(b))
}

func TestRender_HTML(t *testing.T) {
	out, err := Render(FormatHTML, sampleData())
	require.NoError(t, err)
	assert.Contains(t, out, `<meta name="revision" content="abc1234">`)
	assert.Contains(t, out, "<title>Python code packaging for scientific software</title>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, `<a href="pdf/code-packaging-revabc1234.pdf">PDF version</a>`)
	assert.Contains(t, out, "<code>abc1234</code>")
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, `Jo\_Bovy\_`, EscapeMarkdown("Jo_Bovy_"))
	assert.Equal(t, `\*nix \[draft\] a\|b`, EscapeMarkdown("*nix [draft] a|b"))
	assert.Equal(t, "March 01, 2020", EscapeMarkdown("March 01, 2020"))
}

func TestRender_HTMLEscapesProjectMarkdown(t *testing.T) {
	data := sampleData()
	data["author"] = "Jo_Bovy_"
	data["title"] = "Packaging *for* <scientists>"

	out, err := Render(FormatHTML, data)
	require.NoError(t, err)
	assert.Contains(t, out, "2020-2023, Jo_Bovy_")
	assert.NotContains(t, out, "<em>")
	assert.Contains(t, out, "<h1>Packaging *for* &lt;scientists&gt;</h1>")

	md, err := Render(FormatMarkdown, data)
	require.NoError(t, err)
	assert.Contains(t, md, `, Jo\_Bovy\_`)
}

func TestMarkdownToHTML_EscapesRawHTML(t *testing.T) {
	out, err := MarkdownToHTML("<script>alert(1)</script>\n")
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
}

func TestRender_MissingKey(t *testing.T) {
	data := sampleData()
	delete(data, "author")
	for _, f := range AllFormats() {
		_, err := Render(f, data)
		assert.Error(t, err, f)
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" MD ")
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, f)

	_, err = ParseFormat("docx")
	require.Error(t, err)
	_, err = ParseFormat("")
	require.Error(t, err)

	for _, f := range AllFormats() {
		assert.NotEmpty(t, f.FileName(), f)
	}
	_, err = Render(Format("docx"), sampleData())
	require.Error(t, err)
}

func TestRenderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf_stamp.py.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("release = '{{ .githash }}'\ncopyright = '{{ .copyright }}, {{ .author }}'\n"), 0o600))

	name, content, err := RenderFile(path, sampleData())
	require.NoError(t, err)
	assert.Equal(t, "conf_stamp.py", name)
	assert.Equal(t, "release = 'abc1234'\ncopyright = '2020-2023, Jo Bovy'\n", content)

	_, _, err = RenderFile(filepath.Join(t.TempDir(), "missing.tmpl"), sampleData())
	require.Error(t, err)
}

func TestWriteGeneratedFile(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "_build", "stamp")

	fullPath, err := WriteGeneratedFile(outDir, "tex/preamble.tex", "first")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(outDir, "tex", "preamble.tex"), fullPath)

	// Regeneration replaces the previous version.
	_, err = WriteGeneratedFile(outDir, "tex/preamble.tex", "second")
	require.NoError(t, err)

	// #nosec G304 -- fullPath is controlled by test.
	data, err := os.ReadFile(fullPath)
	require.NoError(t, err)
	require.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Dir(fullPath))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestWriteGeneratedFile_PathTraversal(t *testing.T) {
	outDir := t.TempDir()

	_, err := WriteGeneratedFile(outDir, "../outside.md", "content")
	require.Error(t, err)
	_, err = WriteGeneratedFile(outDir, "/abs.md", "content")
	require.Error(t, err)
	_, err = WriteGeneratedFile("", "a.md", "content")
	require.Error(t, err)
	_, err = WriteGeneratedFile(outDir, "", "content")
	require.Error(t, err)
}
