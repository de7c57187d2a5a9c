// Package build runs one stamping pass: resolve revision metadata, derive the
// substitutions, render every configured output.
//
// All execution paths (render, watch, tests) route through BuildService so
// logging, metrics and error classification are identical everywhere.
package build
