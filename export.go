// Package tablecsv exports tables of rendered HTML pages as CSV documents.
package tablecsv

import (
	"io"

	xhtml "golang.org/x/net/html"

	"github.com/vegarsti/tablecsv/csv"
	"github.com/vegarsti/tablecsv/html"
)

// Result is the table matched on a page and its CSV document.
type Result struct {
	Table html.Table
	CSV   string
}

// Empty reports whether the export has no content to hand out.
func (r Result) Empty() bool {
	return r.CSV == ""
}

// Export parses the HTML page read from r and exports the first table
// matching selector. ok is false when no element matches; that is not an
// error.
func Export(r io.Reader, selector string, opts csv.Options) (res Result, ok bool, err error) {
	page, err := html.Parse(r)
	if err != nil {
		return Result{}, false, err
	}
	return ExportNode(page, selector, opts)
}

// ExportNode is Export for an already parsed page.
func ExportNode(page *xhtml.Node, selector string, opts csv.Options) (Result, bool, error) {
	n, err := html.Find(page, selector)
	if err != nil || n == nil {
		return Result{}, false, err
	}
	table := html.Rows(n)
	return Result{
		Table: table,
		CSV:   csv.FromTableWithOptions(table.Strings(), opts),
	}, true, nil
}
