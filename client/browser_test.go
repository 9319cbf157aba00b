package client

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"syscall"
	"testing"
	"time"

	"github.com/Netcracker/qubership-accessibility-scanner/view"
)

func findChrome(t *testing.T) string {
	t.Helper()
	for _, name := range []string{"headless-shell", "chromium", "chromium-browser", "google-chrome", "google-chrome-stable"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	t.Skip("no Chrome binary available")
	return ""
}

func TestBrowserClientRunEngine(t *testing.T) {
	chromePath := findChrome(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html lang="en"><body><img src="data:,"></body></html>`))
	}))
	defer server.Close()

	browser := NewBrowserClient(BrowserOptions{ChromePath: chromePath, NavigationTimeout: 20 * time.Second})
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	script := `window.axe = { run: function () { return Promise.resolve({ violations: [{ id: "image-alt", description: "d", impact: "critical", nodes: [{ html: document.querySelector("img").outerHTML }] }] }); } };`
	raw, err := browser.RunEngine(ctx, server.URL, script)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	violations, err := view.NormalizeScanResult(raw)
	if err != nil {
		t.Fatalf("failed to normalize %s: %v", raw, err)
	}
	if len(violations) != 1 || violations[0].Id != "image-alt" {
		t.Errorf("violations = %+v", violations)
	}
}

func TestBrowserClientRunEngineUnreachableHost(t *testing.T) {
	chromePath := findChrome(t)

	browser := NewBrowserClient(BrowserOptions{ChromePath: chromePath, NavigationTimeout: 10 * time.Second}).(*chromeBrowserClientImpl)
	var processes []*os.Process
	browser.onStart = func(process *os.Process) {
		processes = append(processes, process)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := browser.RunEngine(ctx, "http://unreachable.invalid/", fakeAxeSource); err == nil {
		t.Error("expected navigation error")
	}
	if len(processes) != 1 || processes[0] == nil {
		t.Fatalf("expected one browser process, got %v", processes)
	}
	// release waits for the allocator, so the process must already be reaped
	if err := processes[0].Signal(syscall.Signal(0)); !errors.Is(err, os.ErrProcessDone) {
		t.Errorf("browser process %d is still running after the scan failed: %v", processes[0].Pid, err)
	}
}

func TestBrowserClientCaptureElement(t *testing.T) {
	chromePath := findChrome(t)

	browser := NewBrowserClient(BrowserOptions{ChromePath: chromePath, NavigationTimeout: 10 * time.Second})
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	doc := `<html><body><div id="results-panel" style="width:200px;height:100px">ok</div></body></html>`
	image, err := browser.CaptureElement(ctx, doc, "#results-panel")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(image, []byte("\x89PNG")) {
		t.Error("capture is not a PNG image")
	}

	if _, err := browser.CaptureElement(ctx, doc, "#missing"); err == nil {
		t.Error("expected error for missing element")
	}
}
