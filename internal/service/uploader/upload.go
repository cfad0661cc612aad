package uploader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"slices"
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/oshokin/pixi-ci/internal/logger"
)

const (
	// ForceFlag asks rattler-build to overwrite an existing package.
	ForceFlag = "--force"
	// GhostPackageMarker is printed by prefix.dev when a forced upload targets
	// a package that repodata lists but the channel no longer stores.
	GhostPackageMarker = "The package does not exist"

	maskedToken = "***"
)

var errEmptyCommand = errors.New("upload command is empty")

// ExitError carries a non-zero exit status of the upload command.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("upload command exited with status %d", e.Code)
}

// CommandResult is the captured outcome of a finished command.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// CommandRunner runs an external command to completion.
// An error means the command could not be run at all; a non-zero exit
// status is reported through CommandResult.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (CommandResult, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements CommandRunner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (CommandResult, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		// Killed by a signal.
		if result.ExitCode <= 0 {
			result.ExitCode = 1
		}

		return result, nil
	}

	if err != nil {
		return result, fmt.Errorf("run %s: %w", name, err)
	}

	return result, nil
}

// Uploader pushes packages to one channel.
type Uploader struct {
	runner  CommandRunner
	command []string
	channel string
	token   string

	outputLevel zapcore.Level
}

// NewUploader returns an Uploader running command (e.g. pixi run rattler-build
// upload prefix) with the channel, API key and package path appended.
func NewUploader(runner CommandRunner, command []string, channel, token string) (*Uploader, error) {
	if len(command) == 0 {
		return nil, errEmptyCommand
	}

	if runner == nil {
		runner = ExecRunner{}
	}

	return &Uploader{
		runner:  runner,
		command: slices.Clone(command),
		channel: channel,
		token:   token,

		outputLevel: zapcore.InfoLevel,
	}, nil
}

// SetOutputLevel sets the level gating the logged command output.
// Output of a successful run is logged at info, of a failed run at warn.
func (u *Uploader) SetOutputLevel(level zapcore.Level) {
	u.outputLevel = level
}

// Args returns the full argument list after the executable name.
func (u *Uploader) Args(path string, force bool) []string {
	args := make([]string, 0, len(u.command)+6)
	args = append(args, u.command[1:]...)

	if force {
		args = append(args, ForceFlag)
	}

	return append(args,
		"--channel", u.channel,
		"--api-key", u.token,
		path,
	)
}

// Upload runs the upload command. A forced upload that fails because the
// channel has no such package is retried once without force. Any other
// failure is returned as *ExitError.
func (u *Uploader) Upload(ctx context.Context, path string, force bool) error {
	result, err := u.run(ctx, path, force)
	if err != nil {
		return err
	}

	if result.ExitCode != 0 && force && strings.Contains(result.Stderr, GhostPackageMarker) {
		logger.Warn(ctx, "Forced upload failed because the package seems missing, retrying without "+ForceFlag)

		result, err = u.run(ctx, path, false)
		if err != nil {
			return err
		}
	}

	u.logOutput(ctx, result)

	if result.ExitCode != 0 {
		logger.ErrorKV(ctx, "Upload failed", "exit_code", result.ExitCode)
		return &ExitError{Code: result.ExitCode}
	}

	return nil
}

func (u *Uploader) run(ctx context.Context, path string, force bool) (CommandResult, error) {
	args := u.Args(path, force)

	logger.InfoKV(ctx, "Running upload command",
		"command", u.mask(strings.Join(append([]string{u.command[0]}, args...), " ")))

	return u.runner.Run(ctx, u.command[0], args...)
}

// logOutput dumps the masked command output through a logger gated at the
// output level.
func (u *Uploader) logOutput(ctx context.Context, result CommandResult) {
	l := logger.FromContext(ctx).Desugar().WithOptions(logger.WithLevel(u.outputLevel)).Sugar()

	log := l.Infow
	if result.ExitCode != 0 {
		log = l.Warnw
	}

	log("Upload command output",
		"exit_code", result.ExitCode,
		"stdout", u.mask(result.Stdout),
		"stderr", u.mask(result.Stderr))
}

// mask hides the API key in s.
func (u *Uploader) mask(s string) string {
	if u.token == "" {
		return s
	}

	return strings.ReplaceAll(s, u.token, maskedToken)
}
