package report

import (
	"github.com/atotto/clipboard"
)

const CopiedAlert = "Copied to clipboard!"
const CopyFailedAlertPrefix = "Failed to copy: "

type Clipboard interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// SystemClipboard writes to the OS clipboard (xclip/xsel/wl-copy on Linux).
var SystemClipboard Clipboard = systemClipboard{}

type DashboardOption func(d *Dashboard)

func WithClipboard(c Clipboard) DashboardOption {
	return func(d *Dashboard) {
		d.clipboard = c
	}
}

// CopyToClipboard copies a violation node snippet and alerts on both outcomes.
func (d *Dashboard) CopyToClipboard(text string) error {
	if err := d.clipboard.WriteAll(text); err != nil {
		d.alerter.Alert(CopyFailedAlertPrefix + err.Error())
		return err
	}
	d.alerter.Alert(CopiedAlert)
	return nil
}
