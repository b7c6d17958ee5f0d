package command

import (
	"errors"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"dnsdhcpapi/internal/metrics"
	"dnsdhcpapi/pkg/models"
)

var log = logrus.WithField("prefix", "command")

// ExitStartFailure is reported when the command could not be started
const ExitStartFailure = -1

// Runner executes an external command to completion
type Runner interface {
	Run(name string, args ...string) models.CommandResult
}

// ExecRunner runs commands with os/exec, optionally through sudo
type ExecRunner struct {
	sudo string
}

// NewExecRunner creates a runner. When sudo is non-empty every command is
// prefixed with it.
func NewExecRunner(sudo string) *ExecRunner {
	return &ExecRunner{sudo: sudo}
}

// Run blocks until the command exits and captures stdout and stderr
// together. It is never retried.
func (r *ExecRunner) Run(name string, args ...string) models.CommandResult {
	cmdArgs := append([]string{name}, args...)
	if r.sudo != "" {
		cmdArgs = append([]string{r.sudo}, cmdArgs...)
	}

	cmd := exec.Command(cmdArgs[0], cmdArgs[1:]...)

	log.Infof("Running %v", cmdArgs)
	output, err := cmd.CombinedOutput()
	result := models.CommandResult{
		Output: strings.TrimRight(string(output), "\r\n"),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		result.ExitCode = 0
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		result.ExitCode = ExitStartFailure
		if result.Output == "" {
			result.Output = err.Error()
		}
	}

	label := "success"
	if !result.Success() {
		label = "failure"
		log.Errorf("%v exited with status %d: %s", cmdArgs, result.ExitCode, result.Output)
	}
	metrics.CommandRuns.WithLabelValues(filepath.Base(name), label).Inc()

	return result
}
