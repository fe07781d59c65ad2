package forecast

import (
	"html/template"
	"net/http"

	coreforecast "github.com/kilianp07/evload/core/forecast"
)

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>EV Charging Load Forecast</title>
</head>
<body>
<h1>EV Charging Load Forecast</h1>
<p>Model: {{.Model.Name}} ({{.Model.Type}}{{with .Model.Version}} {{.}}{{end}})</p>
<form action="/predict" method="post">
  <label>Last timestamp <input name="last_timestamp" placeholder="2024-01-01T00:00:00" required></label><br>
  <label>Hours <input name="hours" type="number" min="1" max="{{.MaxHours}}" value="{{.DefaultHours}}"></label><br>
  <label>Start hour <input name="start_hour" type="number" min="0" max="23" value="0" required></label><br>
  <label>End hour <input name="end_hour" type="number" min="0" max="23" value="23" required></label><br>
  <fieldset>
    <legend>Feature overrides</legend>
    {{range .Keys}}<label>{{.}} <input name="{{.}}" type="number" step="any"></label><br>
    {{end}}
  </fieldset>
  <button type="submit">Predict</button>
</form>
</body>
</html>
`))

// NewIndexHandler serves the HTML form of GET /.
func NewIndexHandler(svc Forecaster, opts Options) http.Handler {
	opts = opts.withDefaults()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = indexTmpl.Execute(w, map[string]any{
			"Model":        svc.Model(),
			"DefaultHours": opts.DefaultHours,
			"MaxHours":     opts.MaxHorizonHours,
			"Keys":         coreforecast.Keys(),
		})
	})
}
