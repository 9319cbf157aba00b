package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Netcracker/qubership-accessibility-scanner/client"
	"github.com/Netcracker/qubership-accessibility-scanner/report"
	"github.com/Netcracker/qubership-accessibility-scanner/view"
	"github.com/spf13/cobra"
)

var (
	exportJson     bool
	exportPdf      bool
	exportMarkdown bool
	outputDir      string
	copyNode       string
)

var scanCmd = &cobra.Command{
	Use:   "scan <url>",
	Short: "Scan a web page and show its accessibility violations",
	Example: `  a11y-report scan https://example.com
  a11y-report scan https://example.com --json --pdf --output-dir reports
  a11y-report scan https://example.com --copy 1.2`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&exportJson, "json", false, "export results to "+report.JsonReportFileName)
	scanCmd.Flags().BoolVar(&exportPdf, "pdf", false, "export results panel to "+report.PdfReportFileName)
	scanCmd.Flags().BoolVar(&exportMarkdown, "markdown", false, "export results to "+report.MarkdownReportFileName)
	scanCmd.Flags().StringVar(&outputDir, "output-dir", ".", "directory for exported reports")
	scanCmd.Flags().StringVar(&copyNode, "copy", "", "copy the HTML of node <violation>.<node> (as numbered in the output) to the clipboard")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	alerter := terminalAlerter{out: cmd.ErrOrStderr()}
	dashboard := report.NewDashboard(
		client.NewScanApiClient(serviceUrl, scanTimeout),
		alerter,
		&spinner{out: cmd.ErrOrStderr()},
	)
	if len(args) > 0 {
		dashboard.SetUrl(args[0])
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := dashboard.ScanSite(ctx); err != nil {
		return err
	}

	state := dashboard.State()
	printResults(out, state.Url, state.Violations)

	if exportJson {
		if err := exportTo(out, report.JsonReportFileName, dashboard.ExportJSON); err != nil {
			return err
		}
	}
	if exportMarkdown {
		if err := exportTo(out, report.MarkdownReportFileName, dashboard.ExportMarkdown); err != nil {
			return err
		}
	}
	if exportPdf {
		browser := client.NewBrowserClient(client.BrowserOptions{ChromePath: chromePath})
		err := exportTo(out, report.PdfReportFileName, func(w io.Writer) error {
			return dashboard.ExportPDF(ctx, w, browser)
		})
		if err != nil {
			return err
		}
	}
	if copyNode != "" {
		snippet, err := findNodeHtml(state.Violations, copyNode)
		if err != nil {
			alerter.Alert(report.CopyFailedAlertPrefix + err.Error())
			return err
		}
		return dashboard.CopyToClipboard(snippet)
	}
	return nil
}

func exportTo(out io.Writer, name string, export func(w io.Writer) error) error {
	path, err := report.WriteReportFile(outputDir, name, export)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Saved %s\n", path)
	return nil
}

// findNodeHtml resolves a 1-based "<violation>.<node>" reference.
func findNodeHtml(violations []view.Violation, ref string) (string, error) {
	parts := strings.SplitN(ref, ".", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("node reference %q must look like <violation>.<node>", ref)
	}
	vi, err := strconv.Atoi(parts[0])
	if err != nil || vi < 1 || vi > len(violations) {
		return "", fmt.Errorf("violation %q does not exist", parts[0])
	}
	nodes := violations[vi-1].Nodes
	ni, err := strconv.Atoi(parts[1])
	if err != nil || ni < 1 || ni > len(nodes) {
		return "", fmt.Errorf("node %q does not exist in violation %d", parts[1], vi)
	}
	return nodes[ni-1].Html, nil
}
