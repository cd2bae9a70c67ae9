// Package report - HTML renderer
package report

import (
	"html/template"
	"io"

	"quotecalc/core/types"
	"quotecalc/core/validate"
)

// HTMLFormatter renders a standalone HTML report
type HTMLFormatter struct{}

// Format returns the format type
func (f *HTMLFormatter) Format() Format { return FormatHTML }

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"failingFields": func(r types.ValidationResult) []types.FieldComparison {
		return FailingFields(&r)
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Validation report {{.Batch.RunID}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 4px 10px; text-align: left; }
.pass { color: #2a7d2a; }
.fail { color: #b22222; }
</style>
</head>
<body>
<h1>Validation report</h1>
<p>Run {{.Batch.RunID}} &mdash; {{.Batch.Mode}} mode, tolerance {{.Batch.Tolerance}}</p>
<p>
  Files: {{len .Batch.Files}} total,
  <span class="pass">{{.Batch.PassedCount}} passed</span>,
  <span class="fail">{{.Batch.FailedCount}} failed</span>
  ({{printf "%.1f" .PassRatePct}}% pass rate)
</p>
{{if .Worst}}
<h2>Worst deviations</h2>
<table>
<tr><th>File</th><th>Sheet</th><th>Max deviation</th><th>Error</th></tr>
{{range .Worst}}
<tr>
  <td>{{.File}}</td>
  <td>{{.Sheet}}</td>
  <td>{{.MaxDeviation}}</td>
  <td>{{.Err}}</td>
</tr>
{{end}}
</table>
{{range .Worst}}
{{$fields := failingFields .}}
{{if $fields}}
<h3>{{.File}}</h3>
<table>
<tr><th>Field</th><th>Phase</th><th>Expected</th><th>Actual</th><th>Diff</th></tr>
{{range $fields}}
<tr class="fail">
  <td>{{.Field}}</td><td>{{.Phase}}</td>
  <td>{{.Expected}}</td><td>{{.Actual}}</td><td>{{.Diff}}</td>
</tr>
{{end}}
</table>
{{end}}
{{end}}
{{else}}
<p class="pass">All files passed.</p>
{{end}}
</body>
</html>
`))

type htmlData struct {
	Batch       *validate.BatchResult
	Worst       []types.ValidationResult
	PassRatePct float64
}

// Render writes the HTML report
func (f *HTMLFormatter) Render(w io.Writer, batch *validate.BatchResult) error {
	return htmlTemplate.Execute(w, htmlData{
		Batch:       batch,
		Worst:       WorstFiles(batch, 10),
		PassRatePct: batch.PassRate() * 100,
	})
}
