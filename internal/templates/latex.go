package templates

import "strings"

var latexReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`#`, `\#`,
	`%`, `\%`,
	`_`, `\_`,
	`^`, `\textasciicircum{}`,
	`~`, `\textasciitilde{}`,
)

// EscapeLaTeX makes s safe inside a TeX argument.
func EscapeLaTeX(s string) string {
	return latexReplacer.Replace(s)
}
