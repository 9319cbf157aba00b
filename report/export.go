package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Netcracker/qubership-accessibility-scanner/view"
	"github.com/go-pdf/fpdf"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

const JsonReportFileName = "accessibility-report.json"
const PdfReportFileName = "accessibility-report.pdf"
const MarkdownReportFileName = "accessibility-report.md"

// ElementCapturer rasterizes one element of an HTML document to PNG.
type ElementCapturer interface {
	CaptureElement(ctx context.Context, htmlDoc string, selector string) ([]byte, error)
}

func ExportJSON(w io.Writer, violations []view.Violation) error {
	if violations == nil {
		violations = make([]view.Violation, 0)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(violations)
}

// ExportPDF renders the results panel, rasterizes it and places the image on a
// single PDF page with the same aspect ratio.
func ExportPDF(ctx context.Context, w io.Writer, capturer ElementCapturer, url string, violations []view.Violation) error {
	if violations == nil {
		return fmt.Errorf("results panel is not rendered")
	}
	doc, err := RenderResultsPanel(url, violations)
	if err != nil {
		return fmt.Errorf("failed to render results panel: %w", err)
	}
	img, err := capturer.CaptureElement(ctx, doc, "#"+ResultsPanelId)
	if err != nil {
		return err
	}
	return writeImagePdf(w, img)
}

func writeImagePdf(w io.Writer, img []byte) error {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(img))
	if err != nil {
		return fmt.Errorf("failed to decode panel image: %w", err)
	}
	if format != "png" {
		return fmt.Errorf("unexpected panel image format %s", format)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return fmt.Errorf("panel image is empty")
	}
	width, height := float64(cfg.Width), float64(cfg.Height)

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("results-panel", opts, bytes.NewReader(img))
	pdf.ImageOptions("results-panel", 0, 0, width, height, false, opts, 0, "")
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to build pdf: %w", err)
	}
	return pdf.Output(w)
}

// ExportMarkdown writes a shareable report with a pie chart of the impact distribution.
func ExportMarkdown(w io.Writer, url string, violations []view.Violation) error {
	md := markdown.NewMarkdown(w)
	md.H1("Accessibility Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"URL", url},
			{"Accessibility Score", strconv.Itoa(CalculateAccessibilityScore(violations)) + "/100"},
			{"Issues Found", strconv.Itoa(len(violations))},
		},
	})
	md.PlainText("")

	distribution := GetImpactDistribution(violations)
	if len(distribution) > 0 {
		chart := piechart.NewPieChart(
			io.Discard,
			piechart.WithTitle("Impact Distribution"),
			piechart.WithShowData(true),
		)
		for _, bucket := range distribution {
			chart.LabelAndIntValue(string(bucket.Name), uint64(bucket.Value))
		}
		md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
		md.PlainText("")
	} else {
		md.Tip("No accessibility violations detected.")
		md.PlainText("")
	}

	md.H2("Violations")
	md.PlainText("")
	for _, v := range violations {
		md.H3(fmt.Sprintf("%s (%s)", v.Id, v.Impact.OrMinor()))
		md.PlainText(v.Description)
		md.PlainText("")
		for _, node := range v.Nodes {
			md.CodeBlocks(markdown.SyntaxHighlight("html"), node.Html)
		}
		md.PlainText("")
	}
	return md.Build()
}

// WriteReportFile stores an exported report as dir/name.
func WriteReportFile(dir string, name string, write func(io.Writer) error) (string, error) {
	path := filepath.Join(dir, name)
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
