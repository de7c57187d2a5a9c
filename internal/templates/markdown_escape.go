package templates

import "strings"

var markdownReplacer = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `\<`,
	`>`, `\>`,
	`#`, `\#`,
	`|`, `\|`,
	`~`, `\~`,
	`!`, `\!`,
)

// EscapeMarkdown backslash-escapes the punctuation that would start emphasis,
// links, code spans, raw HTML or table cells in inline Markdown text.
func EscapeMarkdown(s string) string {
	return markdownReplacer.Replace(s)
}
