package report

import (
	"errors"
	"testing"

	"github.com/Netcracker/qubership-accessibility-scanner/view"
)

func TestSessionStateTransitions(t *testing.T) {
	t.Parallel()

	idle := NewSessionState().WithUrl("https://example.com")
	if idle.Status != StatusIdle || idle.HasResults() {
		t.Fatalf("initial state = %+v", idle)
	}

	scanning := idle.Scanning()
	if scanning.Status != StatusScanning {
		t.Errorf("status = %s", scanning.Status)
	}
	if idle.Status != StatusIdle {
		t.Error("transition mutated the previous state")
	}

	results := scanning.WithResults([]view.Violation{{Id: "image-alt"}})
	if results.Status != StatusResults || !results.HasResults() {
		t.Errorf("results state = %+v", results)
	}
	if results.Idle().Status != StatusIdle || !results.Idle().HasResults() {
		t.Error("returning to idle keeps the results")
	}

	failed := results.Scanning().WithError(errors.New("boom"))
	if failed.Status != StatusError || failed.Err != "boom" {
		t.Errorf("error state = %+v", failed)
	}
	if failed.Scanning().Err != "" {
		t.Error("a new scan clears the previous error")
	}
}

func TestSessionStateEmptyResultIsStillAResult(t *testing.T) {
	t.Parallel()

	state := NewSessionState().WithResults([]view.Violation{})
	if !state.HasResults() {
		t.Error("an empty violation list is a result")
	}
}
