// Package git answers the revision questions a documentation build asks of a
// repository: the short hash of the latest commit and that commit's author date.
//
// Two interchangeable backends implement Querier:
//   - ExecGit runs the git binary under a bounded wait and always reaps it
//   - GoGit reads the object database in-process with go-git
//
// Failures are classified: a process that could not run (missing binary, not a
// repository, timeout) is a tool invocation error; a process that ran but had
// nothing to report (no commits) is a no-output error.
package git
