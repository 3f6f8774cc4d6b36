// Package lessc compiles stylesheets by running the external lessc binary.
package lessc

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/lessen/internal/core/domain"
	"go.trai.ch/lessen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Compiler = (*Compiler)(nil)

// Compiler implements ports.Compiler by invoking a command with the file path
// appended to its arguments.
type Compiler struct {
	command []string
	logger  ports.Logger
}

// New creates a Compiler. command is the executable followed by its flags.
func New(command []string, logger ports.Logger) *Compiler {
	return &Compiler{command: command, logger: logger}
}

// Compile runs the compiler on path and returns its standard output.
func (c *Compiler) Compile(ctx context.Context, path string) (string, error) {
	if len(c.command) == 0 {
		return "", zerr.With(domain.ErrCompileFailed, "reason", "empty compiler command")
	}

	name := c.command[0]
	args := append(append([]string{}, c.command[1:]...), filepath.FromSlash(path))

	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // compiler command comes from project config
	cmd.Dir = filepath.Dir(filepath.FromSlash(path))
	cmd.Env = resolveEnvironment(os.Environ())

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if diag := ParseDiagnostic(stderr.String()); diag != nil {
			return "", diag
		}

		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		failure := zerr.With(zerr.Wrap(err, domain.ErrCompileFailed.Error()), "exit_code", exitCode)
		failure = zerr.With(failure, "file", path)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			failure = zerr.With(failure, "stderr", msg)
		}
		return "", failure
	}

	c.logWarnings(stderr.Bytes())
	return stdout.String(), nil
}

// logWarnings forwards non-empty stderr lines of a successful run.
func (c *Compiler) logWarnings(out []byte) {
	if c.logger == nil {
		return
	}
	for line := range bytes.Lines(out) {
		msg := strings.TrimRight(string(line), "\r\n")
		if strings.TrimSpace(msg) != "" {
			c.logger.Warn(msg)
		}
	}
}

// allowListedEnvVars are the variables inherited by the compiler process.
var allowListedEnvVars = map[string]struct{}{
	"HOME":      {},
	"PATH":      {},
	"USER":      {},
	"TERM":      {},
	"NODE_PATH": {},
	"TMPDIR":    {},
}

func resolveEnvironment(sysEnv []string) []string {
	env := make([]string, 0, len(allowListedEnvVars))
	for _, entry := range sysEnv {
		k, _, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, allowed := allowListedEnvVars[k]; allowed {
			env = append(env, entry)
		}
	}
	return env
}
