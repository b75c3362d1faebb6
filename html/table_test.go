package html

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"
)

const lowStockPage = `<!DOCTYPE html>
<html>
<body>
	<h1>Low stock</h1>
	<table id="summary" class="table"><tr><td>Total</td><td>3</td></tr></table>
	<table id="low-stock" class="table table-striped">
		<thead>
			<tr><th>Item</th><th>Qty</th></tr>
		</thead>
		<tbody>
			<tr><td>  Coffee
				Beans </td><td>12, 500g bags</td></tr>
			<tr><td>Milk &amp; <b>Cream</b></td><td>10<!-- litres --></td></tr>
			<tr></tr>
		</tbody>
	</table>
</body>
</html>`

func parseLowStock(t *testing.T, s string) Table {
	t.Helper()
	doc, err := Parse(strings.NewReader(s))
	assert.Equal(t, err, nil)
	n, err := Find(doc, "#low-stock")
	assert.Equal(t, err, nil)
	if n == nil {
		t.Fatal("table #low-stock not found")
	}
	return Rows(n)
}

func TestRows(t *testing.T) {
	table := parseLowStock(t, lowStockPage)
	want := [][]string{
		{"Item", "Qty"},
		{"  Coffee\n\t\t\t\tBeans ", "12, 500g bags"},
		{"Milk & Cream", "10"},
		{},
	}
	if diff := cmp.Diff(want, table.Strings()); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, table.Rows[0].Cells[0].Header, true)
	assert.Equal(t, table.Rows[1].Cells[0].Header, false)
}

func TestFind(t *testing.T) {
	doc, err := Parse(strings.NewReader(lowStockPage))
	assert.Equal(t, err, nil)

	tests := []struct {
		selector string
		wantID   string
	}{
		{"table", "summary"},
		{".table-striped", "low-stock"},
		{"table.table", "summary"},
		{"#low-stock, #summary", "summary"},
		{"body > table#low-stock", "low-stock"},
		{"#missing", ""},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			n, err := Find(doc, tt.selector)
			assert.Equal(t, err, nil)
			if tt.wantID == "" {
				if n != nil {
					t.Fatalf("Find(%q) = %v, want nil", tt.selector, n.Data)
				}
				return
			}
			if n == nil {
				t.Fatalf("Find(%q) = nil", tt.selector)
			}
			assert.Equal(t, attr(n.Attr, "id"), tt.wantID)
		})
	}
}

func TestFindInvalidSelector(t *testing.T) {
	doc, err := Parse(strings.NewReader(lowStockPage))
	assert.Equal(t, err, nil)
	_, err = Find(doc, "table[")
	if !errors.Is(err, ErrInvalidSelector) {
		t.Fatalf("err = %v, want ErrInvalidSelector", err)
	}
}

func TestRowsNestedTable(t *testing.T) {
	page := `<table id="outer">
		<tr><td>a<table><tr><td>x</td></tr></table></td><td>b</td></tr>
	</table>`
	doc, err := Parse(strings.NewReader(page))
	assert.Equal(t, err, nil)
	n, err := Find(doc, "#outer")
	assert.Equal(t, err, nil)
	want := [][]string{
		{"ax", "x", "b"},
		{"x"},
	}
	if diff := cmp.Diff(want, Rows(n).Strings()); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestRowsEmptyTable(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<table id="t"></table>`))
	assert.Equal(t, err, nil)
	n, err := Find(doc, "#t")
	assert.Equal(t, err, nil)
	assert.Equal(t, len(Rows(n).Rows), 0)
}

func attr(attrs []html.Attribute, key string) string {
	for _, a := range attrs {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
