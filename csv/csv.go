package csv

import (
	"strings"
	"unicode"
)

// Quoting selects how fields are quoted.
type Quoting int

const (
	// QuoteCommas wraps fields containing a comma in double quotes and
	// leaves embedded quotes as they are.
	QuoteCommas Quoting = iota
	// QuoteEscaped wraps fields containing a comma or a double quote in
	// double quotes and doubles the embedded quotes.
	QuoteEscaped
)

type Options struct {
	Quoting Quoting
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// Normalize collapses every run of whitespace in s to a single space
// and trims leading and trailing whitespace.
func Normalize(s string) string {
	return strings.Join(strings.FieldsFunc(s, isSpace), " ")
}

// Field normalizes the cell text and quotes it according to q.
func Field(text string, q Quoting) string {
	s := Normalize(text)
	switch q {
	case QuoteEscaped:
		if strings.ContainsAny(s, `,"`) {
			return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
		}
	default:
		if strings.Contains(s, ",") {
			return `"` + s + `"`
		}
	}
	return s
}

// Record joins the fields of one row with commas.
func Record(cells []string, q Quoting) string {
	fields := make([]string, len(cells))
	for i, cell := range cells {
		fields[i] = Field(cell, q)
	}
	return strings.Join(fields, ",")
}

func FromTable(table [][]string) string {
	return FromTableWithOptions(table, Options{})
}

// FromTableWithOptions writes one record per row, joined by newlines.
// There is no trailing newline; a table without rows gives "".
func FromTableWithOptions(table [][]string, opts Options) string {
	records := make([]string, len(table))
	for i, row := range table {
		records[i] = Record(row, opts.Quoting)
	}
	return strings.Join(records, "\n")
}
