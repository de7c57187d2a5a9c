// Package templates renders documentation fragments from revision substitutions.
//
// Built-in formats cover the pieces a Sphinx-style build consumes: an rST
// epilog, a LaTeX preamble defining \githash, \gittime and \mytoday, a LaTeX
// title page, and a Markdown revision page (with fingerprinted front matter)
// plus its HTML rendering. User template files can be rendered with the same
// data. Unknown keys are render errors, never empty strings.
package templates
