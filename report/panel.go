package report

import (
	"bytes"
	"html/template"

	"github.com/Netcracker/qubership-accessibility-scanner/view"
)

// ResultsPanelId is the DOM id of the rendered results panel; PDF export
// rasterizes exactly this element.
const ResultsPanelId = "results-panel"

var impactColors = map[view.Impact]template.CSS{
	view.ImpactCritical: "#dc2626",
	view.ImpactSerious:  "#ea580c",
	view.ImpactModerate: "#ca8a04",
	view.ImpactMinor:    "#2563eb",
}

type panelBar struct {
	Name    view.Impact
	Value   int
	Percent int
	Color   template.CSS
}

type panelViolation struct {
	view.Violation
	Impact view.Impact
	Color  template.CSS
}

type panelData struct {
	PanelId    string
	Url        string
	Score      int
	Count      int
	Bars       []panelBar
	Violations []panelViolation
}

var panelTemplate = template.Must(template.New("panel").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Accessibility Analyzer</title>
<style>
body { font-family: sans-serif; margin: 0; padding: 32px; background: #fff; color: #111827; }
#results-panel { width: 960px; }
.score { font-size: 48px; font-weight: bold; }
.bar { height: 16px; margin: 4px 0; color: #fff; font-size: 12px; padding-left: 4px; }
.violation { border: 1px solid #e5e7eb; border-radius: 4px; padding: 12px; margin-bottom: 8px; }
.badge { color: #fff; border-radius: 4px; padding: 2px 6px; font-size: 12px; }
code { background: #f3f4f6; display: block; padding: 4px; margin: 4px 0; white-space: pre-wrap; word-break: break-all; }
</style>
</head>
<body>
<div id="{{.PanelId}}">
<h1>Accessibility Analyzer</h1>
{{if .Url}}<p>{{.Url}}</p>{{end}}
<div class="score">{{.Score}}/100</div>
<h2>Issues Found: {{.Count}}</h2>
{{range .Bars}}<div class="bar" style="width: {{.Percent}}%; background: {{.Color}}">{{.Name}} ({{.Value}})</div>
{{end}}
<ul>
{{range .Violations}}<li class="violation">
<span class="badge" style="background: {{.Color}}">{{.Impact}}</span>
<strong>{{.Id}}</strong>: {{.Description}}
{{range .Nodes}}<code>{{.Html}}</code>
{{end}}</li>
{{end}}</ul>
</div>
</body>
</html>
`))

// RenderResultsPanel renders the dashboard results panel as a standalone HTML document.
func RenderResultsPanel(url string, violations []view.Violation) (string, error) {
	data := panelData{
		PanelId: ResultsPanelId,
		Url:     url,
		Score:   CalculateAccessibilityScore(violations),
		Count:   len(violations),
	}
	for _, bucket := range GetImpactDistribution(violations) {
		data.Bars = append(data.Bars, panelBar{
			Name:    bucket.Name,
			Value:   bucket.Value,
			Percent: bucket.Value * 100 / len(violations),
			Color:   impactColors[bucket.Name],
		})
	}
	for _, v := range violations {
		impact := v.Impact.OrMinor()
		data.Violations = append(data.Violations, panelViolation{Violation: v, Impact: impact, Color: impactColors[impact]})
	}

	var buf bytes.Buffer
	if err := panelTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
