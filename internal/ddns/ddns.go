// Package ddns drives the external Cloudflare dynamic DNS updater: it
// reports the updater's last known state and runs the update script.
package ddns

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/sirupsen/logrus"

	"dnsdhcpapi/internal/command"
	"dnsdhcpapi/pkg/models"
)

var log = logrus.WithField("prefix", "ddns")

// ForceFlag asks the updater to push records even when the address is unchanged
const ForceFlag = "--force-update"

// ErrStateUnavailable matches every StateError
var ErrStateUnavailable = errors.New("DDNS state unavailable")

// StateError explains why the state file could not be used. Its message
// is safe to return to clients.
type StateError struct {
	Reason string
	Err    error
}

func (e *StateError) Error() string { return e.Reason }

func (e *StateError) Unwrap() error { return e.Err }

func (e *StateError) Is(target error) bool { return target == ErrStateUnavailable }

// Updater reads the updater's state file and runs its script
type Updater struct {
	runner      command.Runner
	stateFile   string
	interpreter string
	script      string
	zones       string
}

// NewUpdater creates an Updater. The script is run as
// <interpreter> <script> <zones> [--force-update].
func NewUpdater(runner command.Runner, stateFile, interpreter, script, zones string) *Updater {
	return &Updater{
		runner:      runner,
		stateFile:   stateFile,
		interpreter: interpreter,
		script:      script,
		zones:       zones,
	}
}

// State returns the decoded content of the state file
func (u *Updater) State() (interface{}, error) {
	if _, err := os.Stat(u.stateFile); err != nil {
		return nil, &StateError{Reason: "File does not exist.", Err: err}
	}

	content, err := os.ReadFile(u.stateFile)
	if err != nil {
		log.Warnf("Error reading state file %s: %v", u.stateFile, err)
		return nil, &StateError{Reason: "Failed to read file contents.", Err: err}
	}

	var state interface{}
	if err := json.Unmarshal(content, &state); err != nil || state == nil {
		log.Warnf("Error decoding state file %s: %v", u.stateFile, err)
		return nil, &StateError{Reason: "Failed to decode JSON content.", Err: err}
	}

	return state, nil
}

// Run executes the update script once and returns its exit status and output
func (u *Updater) Run(force bool) models.CommandResult {
	args := []string{u.script, u.zones}
	if force {
		args = append(args, ForceFlag)
	}

	log.Infof("Running DDNS update (force=%t)", force)
	return u.runner.Run(u.interpreter, args...)
}
