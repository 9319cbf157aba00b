package main

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/Netcracker/qubership-accessibility-scanner/report"
	"github.com/Netcracker/qubership-accessibility-scanner/view"
	"github.com/fatih/color"
)

type terminalAlerter struct {
	out io.Writer
}

func (a terminalAlerter) Alert(msg string) {
	color.New(color.FgYellow, color.Bold).Fprintln(a.out, msg)
}

// spinner prints dots while a scan is running.
type spinner struct {
	out  io.Writer
	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func (s *spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	fmt.Fprint(s.out, "Scanning")
	go func(stop, done chan struct{}) {
		defer close(done)
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				fmt.Fprintln(s.out)
				return
			case <-ticker.C:
				fmt.Fprint(s.out, ".")
			}
		}
	}(s.stop, s.done)
}

func (s *spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop == nil {
		return
	}
	close(s.stop)
	<-s.done
	s.stop = nil
	s.done = nil
}

var impactColors = map[view.Impact]*color.Color{
	view.ImpactCritical: color.New(color.FgRed, color.Bold),
	view.ImpactSerious:  color.New(color.FgRed),
	view.ImpactModerate: color.New(color.FgYellow),
	view.ImpactMinor:    color.New(color.FgBlue),
}

const chartWidth = 40

func printResults(out io.Writer, url string, violations []view.Violation) {
	bold := color.New(color.Bold)
	bold.Fprintf(out, "Accessibility Analyzer: %s\n\n", url)
	bold.Fprintf(out, "Score: %d/100\n", report.CalculateAccessibilityScore(violations))
	bold.Fprintf(out, "Issues Found: %d\n\n", len(violations))

	for _, bucket := range report.GetImpactDistribution(violations) {
		width := bucket.Value * chartWidth / len(violations)
		if width == 0 {
			width = 1
		}
		impactColors[bucket.Name].Fprintf(out, "%-9s %s %d\n", bucket.Name, strings.Repeat("█", width), bucket.Value)
	}
	if len(violations) > 0 {
		fmt.Fprintln(out)
	}

	for i, v := range violations {
		impact := v.Impact.OrMinor()
		impactColors[impact].Fprintf(out, "[%s] ", impact)
		bold.Fprintf(out, "%d. %s", i+1, v.Id)
		fmt.Fprintf(out, ": %s\n", v.Description)
		for j, node := range v.Nodes {
			fmt.Fprintf(out, "    %d.%d  %s\n", i+1, j+1, node.Html)
		}
	}
}
