// Package revision resolves the revision metadata stamped onto generated
// documentation and turns it into named template substitutions.
//
// A Resolver runs once per build: it asks a git.Querier for the latest
// commit's short hash and author date, reads the clock for the build date and
// derives the copyright year range. The result is an immutable Info. Values
// that could not be resolved stay absent on Info (see Optional) and are
// reported as warnings; Substitutions replaces them with FallbackValue so
// rendered documents stay legible.
package revision
