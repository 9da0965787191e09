package export

import (
	"html/template"
	"io"
	"strings"
	"time"

	"cpolar-export/internal/tunnel"
)

// reportCss keeps the report self-contained: light/dark aware, badge chips
// per protocol.
const reportCss = `
:root { color-scheme: light dark; }
body { margin: 24px; font-family: system-ui, -apple-system, Segoe UI, Roboto, Helvetica, Arial, sans-serif; }
h1 { margin: 0 0 8px; font-size: 20px; }
.meta { color: gray; margin-bottom: 16px; }
.section { margin: 18px 0; }
table { width: 100%; border-collapse: collapse; margin-top: 8px; }
th, td { border: 1px solid #ddd; padding: 8px; vertical-align: top; }
th { background: #f6f6f6; }
.proto { display: inline-block; padding: 2px 8px; border-radius: 12px; font-size: 12px; color: #fff; background: #6b7280; }
.proto-http { background: #0ea5e9; }
.proto-https { background: #22c55e; }
.proto-tcp { background: #f59e0b; }
.url a { word-break: break-all; text-decoration: none; color: #2563eb; }
.group-title { font-weight: 600; margin-top: 22px; }
.footer { margin-top: 20px; font-size: 12px; color: gray; }
.count { font-weight: 600; }
`

const reportBody = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width,initial-scale=1" />
<title>cpolar online tunnels</title>
<style>{{.Css}}</style>
</head>
<body>
  <h1>cpolar online tunnels</h1>
  <div class="meta">Generated {{.GeneratedAt}} &middot; <span class="count">{{.Total}}</span> online addresses, grouped by tunnel name</div>
{{- range .Groups}}
  <div class="section">
    <div class="group-title">Tunnel: {{.Name}} ({{len .Records}} addresses)</div>
    <table>
      <thead><tr><th>Protocol</th><th>Public URL</th><th>Local address</th><th>Region</th></tr></thead>
      <tbody>
{{- range .Records}}
        <tr>
          <td><span class="{{protoClass .Proto}}">{{protoLabel .Proto}}</span></td>
          <td class="url">{{if .Url}}<a href="{{href .Url}}">{{deref .Url}}</a>{{end}}</td>
          <td>{{deref .Local}}</td>
          <td>{{deref .Region}}</td>
        </tr>
{{- end}}
      </tbody>
    </table>
  </div>
{{- end}}
  <div class="footer">Source: cpolar dashboard status page ({{.StatusUrl}})</div>
</body>
</html>
`

var reportTemplate = template.Must(
	template.New("report").Funcs(template.FuncMap{
		"deref": orEmpty,
		// tcp:// links would be rejected by the template url filter, so they
		// are marked trusted explicitly; every href comes from the scraped
		// status page itself.
		"href": func(u *string) template.URL {
			return template.URL(orEmpty(u))
		},
		"protoClass": func(p *string) string {
			if p == nil {
				return "proto"
			}
			return "proto proto-" + *p
		},
		"protoLabel": func(p *string) string {
			if p == nil {
				return "unknown"
			}
			return strings.ToUpper(*p)
		},
	}).Parse(reportBody),
)

type reportData struct {
	Css         template.CSS
	GeneratedAt string
	Total       int
	Groups      []tunnel.Group
	StatusUrl   string
}

// WriteReport renders the styled report: one section per tunnel name, a
// header with the generation time (local, second precision) and the total
// address count. The output depends on no external assets.
func WriteReport(w io.Writer, records []tunnel.Record, generatedAt time.Time) error {
	return reportTemplate.Execute(w, reportData{
		Css:         template.CSS(reportCss),
		GeneratedAt: generatedAt.Format("2006-01-02 15:04:05"),
		Total:       len(records),
		Groups:      tunnel.GroupByName(records),
		StatusUrl:   "https://dashboard.cpolar.com/status",
	})
}
