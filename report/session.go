package report

import "github.com/Netcracker/qubership-accessibility-scanner/view"

type Status string

const StatusIdle Status = "idle"
const StatusScanning Status = "scanning"
const StatusResults Status = "results"
const StatusError Status = "error"

// SessionState is a value: every transition returns a new state and leaves
// the receiver untouched.
type SessionState struct {
	Url        string
	Violations []view.Violation
	Status     Status
	Err        string
}

func NewSessionState() SessionState {
	return SessionState{Status: StatusIdle}
}

func (s SessionState) WithUrl(url string) SessionState {
	s.Url = url
	return s
}

func (s SessionState) Scanning() SessionState {
	s.Status = StatusScanning
	s.Err = ""
	return s
}

// WithResults replaces the previous result wholesale.
func (s SessionState) WithResults(violations []view.Violation) SessionState {
	s.Violations = violations
	s.Status = StatusResults
	s.Err = ""
	return s
}

func (s SessionState) WithError(err error) SessionState {
	s.Status = StatusError
	if err != nil {
		s.Err = err.Error()
	}
	return s
}

// Idle ends the current operation; results of a successful scan stay visible.
func (s SessionState) Idle() SessionState {
	s.Status = StatusIdle
	return s
}

func (s SessionState) HasResults() bool {
	return s.Violations != nil
}
