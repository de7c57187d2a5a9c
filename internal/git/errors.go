package git

import (
	"context"
	stderrors "errors"
	"os/exec"
	"strings"

	"git.home.luguber.info/inful/docstamp/internal/foundation/errors"
)

func toolInvocation(op, dir string, cause error) error {
	return errors.ToolInvocationError("git query could not run").
		WithCause(cause).
		WithContext("op", op).
		WithContext("dir", dir).
		Build()
}

func noOutput(op, dir string, cause error) error {
	return errors.NoOutputError("git query produced no output").
		WithCause(cause).
		WithContext("op", op).
		WithContext("dir", dir).
		Build()
}

// classifyExecError translates a failed git process into a classified error.
// A repository without commits makes `git log` exit non-zero with nothing on
// stdout; that counts as no output rather than a tool failure.
func classifyExecError(ctx context.Context, op, dir string, err error, stderr string) error {
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.ToolInvocationError("git query timed out").
			WithCause(err).
			WithContext("op", op).
			WithContext("dir", dir).
			WithContext("timeout", true).
			Build()
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		msg := strings.TrimSpace(stderr)
		l := strings.ToLower(msg)
		builder := errors.ToolInvocationError("git query failed")
		if strings.Contains(l, "does not have any commits") || strings.Contains(l, "bad default revision") {
			builder = errors.NoOutputError("git query produced no output")
		}
		return builder.
			WithCause(err).
			WithContext("op", op).
			WithContext("dir", dir).
			WithContext("stderr", msg).
			Build()
	}

	return toolInvocation(op, dir, err)
}
