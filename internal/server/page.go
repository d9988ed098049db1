package server

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/raysh454/phishlens/internal/app"
	"github.com/raysh454/phishlens/internal/features"
	"github.com/raysh454/phishlens/internal/logging"
	"github.com/raysh454/phishlens/internal/model"
)

// Chart geometry, in SVG user units.
const (
	chartLabelWidth = 190
	chartBarMax     = 420
	chartRowHeight  = 22
)

type chartBar struct {
	Feature     string
	Description string
	Category    string
	Importance  float64
	Y           int
	Width       int
}

type pageData struct {
	Input       string
	Result      *model.CheckResult
	Err         string
	Bars        []chartBar
	ChartHeight int
	Unmodeled   int
}

// ChartWidth leaves room for labels, the longest bar and its value.
func (pageData) ChartWidth() int { return chartLabelWidth + chartBarMax + 60 }

// LabelX places the value just past the end of the bar.
func (b chartBar) LabelX() int { return chartLabelWidth + b.Width + 4 }

var pageTmpl = template.Must(template.New("page").Parse(pageHTML))

// buildChart lays out one horizontal bar per importance, scaled to the largest.
func buildChart(imps []model.FeatureImportance) []chartBar {
	top := 0.0
	for _, fi := range imps {
		if fi.Importance > top {
			top = fi.Importance
		}
	}
	bars := make([]chartBar, len(imps))
	for i, fi := range imps {
		w := 0
		if top > 0 {
			w = int(fi.Importance / top * chartBarMax)
		}
		bars[i] = chartBar{
			Feature:     fi.Feature,
			Description: fi.Description,
			Category:    features.CategoryForFeature(fi.Feature),
			Importance:  fi.Importance,
			Y:           i * chartRowHeight,
			Width:       w,
		}
	}
	return bars
}

// handlePage renders the form and, when ?url= is set, the verdict.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Input:     r.URL.Query().Get("url"),
		Unmodeled: len(features.UnmodeledColumns),
	}

	if data.Input != "" {
		res, err := s.checker.Check(r.Context(), data.Input)
		switch {
		case errors.Is(err, app.ErrEmptyURL):
		case err != nil:
			s.logger.Warn("checking url", logging.Field{Key: "url", Value: data.Input}, logging.Err(err))
			data.Err = err.Error()
		default:
			data.Result = res
			data.Bars = buildChart(res.Importances)
			data.ChartHeight = len(data.Bars) * chartRowHeight
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, data); err != nil {
		s.logger.Error("rendering page", logging.Err(err))
	}
}

const pageHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>PhishLens</title>
    <style>
        body { font-family: sans-serif; max-width: 760px; margin: 2em auto; }
        input[type=text] { width: 70%; padding: 6px; }
        .trusted { color: #1a7f37; }
        .legitimate { color: #1a7f37; }
        .phishing { color: #cf222e; }
        .feature_count_mismatch { color: #9a6700; }
        .note { color: #57606a; font-size: 0.9em; }
        svg text { font-size: 12px; }
        .bar-length { fill: #0969da; }
        .bar-count { fill: #8250df; }
        .bar-token { fill: #bf8700; }
        .bar-host { fill: #cf222e; }
        .bar-unmodeled { fill: #8c959f; }
    </style>
</head>
<body>
    <h1>PhishLens</h1>
    <form method="GET" action="/">
        <input type="text" name="url" value="{{.Input}}" placeholder="https://example.com/login">
        <button type="submit">Check</button>
    </form>

    {{if .Err}}
    <p class="phishing">Error: {{.Err}}</p>
    {{end}}

    {{with .Result}}
    {{if eq .Verdict "trusted"}}
    <h2 class="trusted">Trusted site</h2>
    <p>This URL is on the list of known sites and was not classified.</p>
    {{else if eq .Verdict "feature_count_mismatch"}}
    <h2 class="feature_count_mismatch">Feature count mismatch</h2>
    <p>{{.Error}}</p>
    {{else if eq .Verdict "phishing"}}
    <h2 class="phishing">Phishing suspected</h2>
    {{else}}
    <h2 class="legitimate">Looks legitimate</h2>
    {{end}}
    {{if .UnicodeHost}}<p>Host: {{.Host}} ({{.UnicodeHost}})</p>{{end}}
    {{end}}

    {{if .Bars}}
    <h3>Top feature importances</h3>
    <svg width="{{.ChartWidth}}" height="{{.ChartHeight}}" role="img" aria-label="feature importances">
        {{range .Bars}}
        <g transform="translate(0,{{.Y}})">
            <title>{{.Description}}</title>
            <text x="185" y="15" text-anchor="end">{{.Feature}}</text>
            <rect x="190" y="3" width="{{.Width}}" height="16" class="bar-{{.Category}}"></rect>
            <text x="{{.LabelX}}" y="15">{{printf "%.3f" .Importance}}</text>
        </g>
        {{end}}
    </svg>
    {{end}}

    {{with .Result}}{{if .Explanations}}
    <h3>Why</h3>
    <ul>
        {{range .Explanations}}<li class="{{.CloserTo}}">{{.Text}}</li>
        {{end}}
    </ul>
    {{end}}{{end}}

    {{if .Result}}
    <p class="note">Only lexical features of the URL text are computed; {{.Unmodeled}} page, domain and
    reputation features of the training data are always 0, so this is a demonstration, not a reliable detector.</p>
    {{end}}
</body>
</html>
`
