package git

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"
)

const defaultWaitDelay = 2 * time.Second

// ExecGit queries the repository by running the git binary.
type ExecGit struct {
	dir       string
	binary    string
	timeout   time.Duration
	waitDelay time.Duration
}

// NewExecGit creates an exec backend; zero options fall back to defaults.
func NewExecGit(opts Options) *ExecGit {
	g := &ExecGit{
		dir:       opts.Dir,
		binary:    opts.Binary,
		timeout:   opts.Timeout,
		waitDelay: defaultWaitDelay,
	}
	if g.binary == "" {
		g.binary = "git"
	}
	if g.timeout <= 0 {
		g.timeout = DefaultTimeout
	}
	return g
}

func (g *ExecGit) Name() string { return string(BackendExec) }

// ShortHash runs `git log -1 --format=%h`.
func (g *ExecGit) ShortHash(ctx context.Context) (string, error) {
	return g.query(ctx, OpShortHash, "log", "-1", "--format=%h")
}

// CommitDate runs `git log -1 --date=format:<CommitDateFormat> --format=%ad`.
func (g *ExecGit) CommitDate(ctx context.Context) (string, error) {
	return g.query(ctx, OpCommitDate, "log", "-1", "--date=format:"+CommitDateFormat, "--format=%ad")
}

// query runs one git process and returns its trimmed stdout. The process is
// killed when the timeout expires and is always waited for; WaitDelay bounds
// how long Wait blocks on pipes held open by stray children.
func (g *ExecGit) query(ctx context.Context, op string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if g.dir != "" {
		args = append([]string{"-C", g.dir}, args...)
	}

	// #nosec G204 -- fixed subcommands; the binary comes from trusted configuration
	cmd := exec.CommandContext(ctx, g.binary, args...)
	cmd.WaitDelay = g.waitDelay
	// strftime month and weekday names must not follow the user's locale.
	cmd.Env = append(os.Environ(), "LC_ALL=C")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := strings.TrimSpace(stdout.String())
	if err != nil {
		return "", classifyExecError(ctx, op, g.dir, err, stderr.String())
	}
	if out == "" {
		return "", noOutput(op, g.dir, nil)
	}
	return out, nil
}
