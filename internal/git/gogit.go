package git

import (
	"context"
	stderrors "errors"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GoGit queries the repository in-process. It needs no git binary, so the
// timeout in Options does not apply; context cancellation is honored between steps.
type GoGit struct {
	dir string
}

// NewGoGit creates a go-git backend rooted at opts.Dir (or the working directory).
func NewGoGit(opts Options) *GoGit {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	return &GoGit{dir: dir}
}

func (g *GoGit) Name() string { return string(BackendGoGit) }

// ShortHash abbreviates the HEAD commit's object name to ShortHashLength.
func (g *GoGit) ShortHash(ctx context.Context) (string, error) {
	commit, err := g.headCommit(ctx, OpShortHash)
	if err != nil {
		return "", err
	}
	return commit.Hash.String()[:ShortHashLength], nil
}

// CommitDate renders the HEAD commit's author date in the author's zone, as git does.
func (g *GoGit) CommitDate(ctx context.Context) (string, error) {
	commit, err := g.headCommit(ctx, OpCommitDate)
	if err != nil {
		return "", err
	}
	return commit.Author.When.Format(CommitDateLayout), nil
}

func (g *GoGit) headCommit(ctx context.Context, op string) (*object.Commit, error) {
	if err := ctx.Err(); err != nil {
		return nil, toolInvocation(op, g.dir, err)
	}
	repo, err := gogit.PlainOpenWithOptions(g.dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, toolInvocation(op, g.dir, err)
	}
	ref, err := repo.Head()
	if err != nil {
		if stderrors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, noOutput(op, g.dir, err)
		}
		return nil, toolInvocation(op, g.dir, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, toolInvocation(op, g.dir, err)
	}
	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, toolInvocation(op, g.dir, err)
	}
	return commit, nil
}
