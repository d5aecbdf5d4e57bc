// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package report

import "html/template"

var page = template.Must(template.New("report").Funcs(template.FuncMap{
	"status": func(ok bool) string {
		if ok {
			return "pass"
		}
		return "fail"
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Test Results</title>
<style>
body { font-family: Arial, sans-serif; margin: 2em; }
.summary { font-size: 1.2em; margin-bottom: 1em; }
.case { margin-bottom: 0.5em; border: 1px solid #ddd; }
.case > button { width: 100%; text-align: left; padding: 8px; font-size: 1em; border: none; cursor: pointer; }
.case .steps { display: none; padding: 8px; }
.case.open .steps { display: block; }
.pass { background-color: lightgreen; }
.fail { background-color: lightcoral; }
.skipped { background-color: #eee; }
.step { margin: 4px 0; padding: 4px 8px; }
pre { white-space: pre-wrap; margin: 4px 0 0; font-size: 0.9em; }
</style>
</head>
<body>
<h1>Test Results</h1>
<div class="summary {{status .Passed}}">
Overall: {{if .Passed}}PASSED{{else}}FAILED{{end}}
({{.StepsPassed}} passed, {{.StepsFailed}} failed{{if .Skipped}}, {{.Skipped}} test cases skipped{{end}})
</div>
<p>Run {{.ID}} started {{.Started}}, took {{.Duration}}.</p>
{{range .Containers}}
<div class="case">
<button class="{{if .Skipped}}skipped{{else}}{{status .Passed}}{{end}}" onclick="toggle(this)">{{.Label}}{{if .Skipped}} (skipped){{else if .Interrupted}} (interrupted){{end}}</button>
<div class="steps">
{{- range .Steps}}
<div class="step {{status .Success}}">
<strong>{{.Label}}: {{.Ref.Block}}</strong> ({{.Ref.Module}}, {{.Duration}})
<pre>{{.Log}}</pre>
</div>
{{- else}}
<p>No steps were executed.</p>
{{- end}}
</div>
</div>
{{end}}
<script>
function toggle(button) {
  button.parentElement.classList.toggle("open");
}
</script>
</body>
</html>
`))
