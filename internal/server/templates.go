// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import "html/template"

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Diet Recommendation System</title>
</head>
<body>
<h1>Diet Recommendation System</h1>
<p>Select your nutrient preferences to get customized recipe recommendations.</p>
<form method="post" action="/recommend">
{{- range .Nutrients}}
<label>{{.Label}}
<select name="{{.Name}}">
{{- $sel := .Selected}}
{{- range $.Categories}}
<option{{if eq . $sel}} selected{{end}}>{{.}}</option>
{{- end}}
</select>
</label><br>
{{- end}}
<button type="submit">Get Recommendations</button>
</form>
{{- if .Error}}
<p class="error">{{.Error}}</p>
{{- end}}
{{- with .Result}}
<h2>Recommended Recipes (Cluster {{.Cluster}})</h2>
{{- range .Recipes}}
<details>
<summary>{{.Name}}</summary>
<p><strong>Description:</strong> {{.Description}}</p>
<p><strong>Nutrients:</strong> {{.Summary}}</p>
</details>
{{- end}}
{{- end}}
</body>
</html>
`))
