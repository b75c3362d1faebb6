// Package format renders counts and dates the way the inventory pages show them.
package format

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Count formats n with grouped thousands, e.g. 1,234.
func Count(n int) string {
	return printer.Sprintf("%d", n)
}

// Layouts with an offset are moved into the target location; the others
// are read as wall-clock dates and keep their calendar day.
var (
	zonedLayouts = []string{time.RFC3339}
	wallLayouts  = []string{"2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02"}
)

// Date parses an ISO date or timestamp and formats it as Jan 2, 2006 in
// the local time zone.
func Date(s string) (string, error) {
	return DateIn(s, time.Local)
}

func DateIn(s string, loc *time.Location) (string, error) {
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Time(t.In(loc)), nil
		}
	}
	for _, layout := range wallLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Time(t), nil
		}
	}
	return "", fmt.Errorf("parse date %q: unsupported layout", s)
}

func Time(t time.Time) string {
	return t.Format("Jan 2, 2006")
}
