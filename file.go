package tablecsv

import (
	"crypto/sha256"
	"fmt"
	"path"
	"strings"
)

type FileType string

const HTML = FileType("html")
const CSV = FileType("csv")

type File struct {
	Bytes       []byte
	ContentType FileType
	Checksum    string
}

func checksum(bs []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(bs))
}

func NewHTML(bs []byte) *File {
	return &File{
		Bytes:       bs,
		ContentType: HTML,
		Checksum:    checksum(bs),
	}
}

func NewCSV(bs []byte) *File {
	return &File{
		Bytes:       bs,
		ContentType: CSV,
		Checksum:    checksum(bs),
	}
}

// ExportKey identifies the export of the table matching selector on page.
func ExportKey(page *File, selector string) string {
	return checksum([]byte(page.Checksum + "\x00" + selector))
}

const defaultFilename = "export.csv"

// Filename returns the base name of name with a .csv extension.
func Filename(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), `\`, "/"))
	if name == "." || name == "/" || name == "" {
		return defaultFilename
	}
	if strings.EqualFold(path.Ext(name), ".csv") {
		return name
	}
	return name + ".csv"
}
