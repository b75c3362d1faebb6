package html

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

var ErrInvalidSelector = errors.New("invalid selector")

var (
	rowSelector  = cascadia.MustCompile("tr")
	cellSelector = cascadia.MustCompile("td, th")
)

func Parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// Find returns the first element below doc, in document order, that matches
// selector. It returns a nil node and a nil error when nothing matches.
func Find(doc *html.Node, selector string) (*html.Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSelector, selector, err)
	}
	if doc == nil {
		return nil, nil
	}
	return sel.MatchFirst(doc), nil
}

// Rows reads every tr below table and, for each row, every td and th below
// it, both in document order. Cells of nested tables are included.
func Rows(table *html.Node) Table {
	var t Table
	for _, tr := range rowSelector.MatchAll(table) {
		if tr == table {
			continue
		}
		var row Row
		for _, c := range cellSelector.MatchAll(tr) {
			if c == tr {
				continue
			}
			row.Cells = append(row.Cells, Cell{
				Text:   TextContent(c),
				Header: c.Data == "th",
			})
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// TextContent concatenates the text nodes below n.
func TextContent(n *html.Node) string {
	var sb strings.Builder
	textContent(n, &sb)
	return sb.String()
}

func textContent(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		textContent(c, sb)
	}
}
