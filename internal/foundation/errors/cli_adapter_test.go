package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: ExitOK},
		{name: "validation", err: ValidationError("bad flag").Build(), expected: ExitValidation},
		{name: "config", err: ConfigError("bad config").Build(), expected: ExitConfig},
		{name: "tool invocation", err: ToolInvocationError("git missing").Build(), expected: ExitToolInvocation},
		{name: "no output", err: NoOutputError("no commits").Build(), expected: ExitNoOutput},
		{name: "wrapped tool invocation", err: fmt.Errorf("resolve: %w", ToolInvocationError("x").Build()), expected: ExitToolInvocation},
		{name: "generic vcs", err: NewError(CategoryVCS, "odd").Build(), expected: ExitVCS},
		{name: "undefined year", err: UndefinedYearError("no year").Build(), expected: ExitRender},
		{name: "render", err: RenderError("template").Build(), expected: ExitRender},
		{name: "internal", err: InternalError("bug").Build(), expected: ExitInternal},
		{name: "unclassified", err: stderrors.New("unknown error"), expected: ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, slog.Default())
	verbose := NewCLIErrorAdapter(true, slog.Default())
	cause := stderrors.New("exit status 128")
	err := ToolInvocationError("git log failed").WithCause(cause).Build()

	assert.Equal(t, "", quiet.FormatError(nil))
	assert.Equal(t, "Error: git log failed: exit status 128", quiet.FormatError(err))
	assert.Equal(t, "[vcs:error] git log failed: exit status 128", verbose.FormatError(err))
	assert.Equal(t, "Error: plain", quiet.FormatError(stderrors.New("plain")))
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var stderr, logs bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	adapter.stderr = &stderr
	code := -1
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(nil)
	assert.Equal(t, -1, code)

	adapter.HandleError(ConfigError("missing doc_name").WithContext("file", "docstamp.yaml").Build())
	assert.Equal(t, ExitConfig, code)
	assert.Equal(t, "Error: missing doc_name\n", stderr.String())
	assert.Contains(t, logs.String(), "category=config")
	assert.Contains(t, logs.String(), "file=docstamp.yaml")
}

func TestCLIErrorAdapter_WarningSeverityLogsAtWarn(t *testing.T) {
	var logs bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	adapter.stderr = &bytes.Buffer{}
	adapter.exit = func(int) {}

	cause := NoOutputError("git query produced no output").Build()
	adapter.HandleError(WrapError(cause, GetCategory(cause), "Could not resolve commit hash").Warning().Build())

	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "category=vcs")
}
