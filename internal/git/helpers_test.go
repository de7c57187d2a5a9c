package git

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// writeStubGit writes an executable shell script standing in for git.
func writeStubGit(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub git scripts need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "git")
	// #nosec G306 -- test stub must be executable
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o700))
	return path
}

// initRepo creates a repository with one commit authored at when.
func initRepo(t *testing.T, when time.Time) (string, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "repo")
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "notes", "source"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes", "source", "index.rst"), []byte("Notes\n=====\n"), 0o600))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(".")
	require.NoError(t, err)
	hash, err := wt.Commit("Initial commit", &gogit.CommitOptions{
		Author: &object.Signature{Name: "Test User", Email: "test@example.com", When: when},
	})
	require.NoError(t, err)
	return dir, hash.String()
}
