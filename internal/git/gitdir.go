package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FindGitDir walks up from start to the repository's git directory. A `.git`
// file (worktrees, submodules) is followed through its "gitdir:" line.
func FindGitDir(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, ".git")
		info, statErr := os.Stat(candidate)
		if statErr == nil {
			if info.IsDir() {
				return candidate, nil
			}
			return readGitFile(dir, candidate)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no git repository found above %s", start)
		}
		dir = parent
	}
}

func readGitFile(workTree, path string) (string, error) {
	// #nosec G304 -- path is the .git file of a work tree we located ourselves
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	line := strings.TrimSpace(string(data))
	if !strings.HasPrefix(line, "gitdir:") {
		return "", fmt.Errorf("malformed .git file %s", path)
	}
	target := strings.TrimSpace(strings.TrimPrefix(line, "gitdir:"))
	if !filepath.IsAbs(target) {
		target = filepath.Join(workTree, target)
	}
	return filepath.Clean(target), nil
}

// CommonDir returns the directory holding refs and objects shared by all
// work trees. For a linked work tree's git directory that is the target of
// its "commondir" file; otherwise it is gitDir itself.
func CommonDir(gitDir string) (string, error) {
	// #nosec G304 -- commondir inside a git directory we located ourselves
	data, err := os.ReadFile(filepath.Join(gitDir, "commondir"))
	if err != nil {
		if os.IsNotExist(err) {
			return gitDir, nil
		}
		return "", err
	}
	target := strings.TrimSpace(string(data))
	if target == "" {
		return "", fmt.Errorf("empty commondir file in %s", gitDir)
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(gitDir, target)
	}
	return filepath.Clean(target), nil
}
