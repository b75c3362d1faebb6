package html

import (
	"bytes"
	"html/template"
	"log"
	"time"

	"github.com/vegarsti/tablecsv/csv"
	"github.com/vegarsti/tablecsv/format"
)

type Cell struct {
	Text   string
	Header bool
}

type Row struct {
	Cells []Cell
}

type Table struct {
	Rows []Row
}

// Strings returns the cell texts of t row by row.
func (t Table) Strings() [][]string {
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			rows[i][j] = cell.Text
		}
	}
	return rows
}

// Preview describes the page rendered next to a CSV export.
type Preview struct {
	CSVURL   string
	Exported time.Time
	// ReportDate is shown when set, already formatted.
	ReportDate string
}

type page struct {
	Table
	CSVURL     string
	Exported   string
	ReportDate string
	RowCount   string
}

var tmplString = `<!DOCTYPE html>
<html>
	<head>
		<style>
			table, th, td {
				border: 1px solid black;
				border-collapse: collapse;
				padding: 5px;
			}
		</style>
	</head>
	<body>
		<table>{{range .Rows}}
			<tr>{{range .Cells}}{{if .Header}}
				<th>{{.Text}}</th>{{else}}
				<td>{{.Text}}</td>{{end}}{{end}}
			</tr>{{end}}
		</table>
		<a href="{{.CSVURL}}">Download CSV.</a>{{if .ReportDate}}
		<p>Report date {{.ReportDate}}</p>{{end}}
		<p>{{.RowCount}} rows, exported {{.Exported}}</p>
	</body>
</html>
`

var tmpl = template.Must(template.New("table").Parse(tmplString))

// FromTable renders a preview page of the table with a link to its CSV
// export. Cell text is normalized the same way as the CSV fields.
func FromTable(table Table, preview Preview) string {
	p := page{
		CSVURL:     preview.CSVURL,
		Exported:   format.Time(preview.Exported),
		ReportDate: preview.ReportDate,
		RowCount:   format.Count(len(table.Rows)),
	}
	for _, row := range table.Rows {
		r := Row{Cells: make([]Cell, len(row.Cells))}
		for j, cell := range row.Cells {
			r.Cells[j] = Cell{Text: csv.Normalize(cell.Text), Header: cell.Header}
		}
		p.Rows = append(p.Rows, r)
	}
	buf := bytes.NewBufferString("")
	if err := tmpl.Execute(buf, p); err != nil {
		log.Println("html: render preview:", err)
		return ""
	}
	return buf.String()
}
