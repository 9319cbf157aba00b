package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/Netcracker/qubership-accessibility-scanner/client"
	"github.com/Netcracker/qubership-accessibility-scanner/view"
	log "github.com/sirupsen/logrus"
)

const EmptyUrlAlert = "Please enter a URL"
const ScanFailedAlertPrefix = "Failed to scan: "

var ErrEmptyUrl = errors.New("url is empty")

// Alerter shows a message to the user.
type Alerter interface {
	Alert(msg string)
}

// ProgressIndicator is started when a scan begins and always stopped when it ends.
type ProgressIndicator interface {
	Start()
	Stop()
}

// Dashboard holds the report UI session: the url input and the last scan result.
type Dashboard struct {
	mutex      sync.Mutex
	state      SessionState
	scanClient client.ScanApiClient
	alerter    Alerter
	progress   ProgressIndicator
	clipboard  Clipboard
}

func NewDashboard(scanClient client.ScanApiClient, alerter Alerter, progress ProgressIndicator, opts ...DashboardOption) *Dashboard {
	d := &Dashboard{
		state:      NewSessionState(),
		scanClient: scanClient,
		alerter:    alerter,
		progress:   progress,
		clipboard:  SystemClipboard,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dashboard) State() SessionState {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.state
}

func (d *Dashboard) transition(f func(SessionState) SessionState) SessionState {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.state = f(d.state)
	return d.state
}

func (d *Dashboard) SetUrl(url string) {
	d.transition(func(s SessionState) SessionState { return s.WithUrl(url) })
}

// ScanSite scans the current url. A second call while one is in flight is not
// cancelled; whichever response arrives last wins.
func (d *Dashboard) ScanSite(ctx context.Context) error {
	url := strings.TrimSpace(d.State().Url)
	if url == "" {
		d.alerter.Alert(EmptyUrlAlert)
		return ErrEmptyUrl
	}

	d.transition(SessionState.Scanning)
	d.progress.Start()
	defer func() {
		d.progress.Stop()
		d.transition(SessionState.Idle)
	}()

	violations, err := d.scan(ctx, url)
	if err != nil {
		d.transition(func(s SessionState) SessionState { return s.WithError(err) })
		d.alerter.Alert(ScanFailedAlertPrefix + err.Error())
		return err
	}
	d.transition(func(s SessionState) SessionState { return s.WithResults(violations) })
	log.Debugf("Scan of %s returned %d violation(s)", url, len(violations))
	return nil
}

func (d *Dashboard) scan(ctx context.Context, url string) ([]view.Violation, error) {
	body, err := d.scanClient.Scan(ctx, url)
	if err != nil {
		return nil, err
	}
	violations, err := view.NormalizeScanResult(body)
	if err != nil {
		return nil, fmt.Errorf("invalid scan response: %w", err)
	}
	return violations, nil
}

const ExportFailedAlertPrefix = "Failed to export: "

func (d *Dashboard) ExportJSON(w io.Writer) error {
	return d.export(func(state SessionState) error {
		return ExportJSON(w, state.Violations)
	})
}

func (d *Dashboard) ExportPDF(ctx context.Context, w io.Writer, capturer ElementCapturer) error {
	return d.export(func(state SessionState) error {
		return ExportPDF(ctx, w, capturer, state.Url, state.Violations)
	})
}

func (d *Dashboard) ExportMarkdown(w io.Writer) error {
	return d.export(func(state SessionState) error {
		return ExportMarkdown(w, state.Url, state.Violations)
	})
}

func (d *Dashboard) export(f func(state SessionState) error) error {
	state := d.State()
	if !state.HasResults() {
		err := errors.New("no scan results to export")
		d.alerter.Alert(ExportFailedAlertPrefix + err.Error())
		return err
	}
	if err := f(state); err != nil {
		d.alerter.Alert(ExportFailedAlertPrefix + err.Error())
		return err
	}
	return nil
}
