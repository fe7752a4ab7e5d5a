package report

import (
	"bytes"
	"html/template"
)

// RenderHTML emits the printable view of a document. It walks the same
// tree as the PDF generator, in the same order, including the page-break
// hint before every work-order section except the first.
func RenderHTML(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := printTemplate.Execute(&buf, htmlData{Doc: doc, Placeholder: PlaceholderText()}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type htmlData struct {
	Doc         *Document
	Placeholder string
}

var printTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html lang="id">
<head>
<meta charset="utf-8">
<title>{{.Doc.Title}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; margin: 40px; color: #111; }
h1, h2 { text-align: center; margin: 4px 0; }
h3 { text-decoration: underline; }
table { border-collapse: collapse; width: 100%; margin-top: 8px; }
th, td { border-bottom: 1px solid #999; text-align: left; padding: 4px 8px; font-size: 13px; }
.field b { margin-right: 4px; }
.section { page-break-before: always; }
.section:first-of-type { page-break-before: auto; }
.placeholder { font-style: italic; font-size: 13px; }
footer { margin-top: 32px; text-align: center; font-style: italic; font-size: 12px; }
</style>
</head>
<body>
<h1>{{.Doc.Title}}</h1>
<h2>{{.Doc.OrgName}}</h2>
<h2>{{.Doc.OrgUnit}}</h2>

<h3>{{.Doc.ContractHeading}}</h3>
{{range .Doc.ContractFields}}<p class="field"><b>{{.Label}}:</b> {{.Value}}</p>
{{end}}

<h3>{{.Doc.SummaryHeading}}</h3>
{{range .Doc.SummaryLines}}<p>{{.}}</p>
{{end}}

{{range .Doc.Sections}}<div class="section">
<h3>{{.Heading}}</h3>
{{range .Fields}}<p class="field"><b>{{.Label}}:</b> {{.Value}}</p>
{{end}}
{{if .NoNotifications}}<p class="placeholder">{{$.Placeholder}}</p>
{{else}}<table>
<tr><th>No. Notif</th><th>Judul Notifikasi</th><th>Lokasi</th></tr>
{{range .Rows}}<tr><td>{{.NoNotif}}</td><td>{{.Judul}}</td><td>{{.Lokasi}}</td></tr>
{{end}}</table>
{{end}}</div>
{{end}}

<footer>{{.Doc.Footer}}</footer>
</body>
</html>
`))
