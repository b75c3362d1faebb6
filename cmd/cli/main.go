package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"

	"github.com/vegarsti/tablecsv"
	"github.com/vegarsti/tablecsv/csv"
	"github.com/vegarsti/tablecsv/html"
)

const usage = `usage: tablecsv [flags] <selector> [file.html]

Export the first table matching selector as CSV. Reads stdin when no file is given.

Flags:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	flagSet := flag.NewFlagSet("tablecsv", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	output := flagSet.StringP("output", "o", "", "Write CSV to `file` (.csv is appended when missing)")
	escapeQuotes := flagSet.Bool("escape-quotes", false, "Double embedded quotes and quote fields containing them")
	preview := flagSet.Bool("preview", false, "Print an aligned table instead of CSV")
	help := flagSet.BoolP("help", "h", false, "Show help")

	if err := flagSet.Parse(args); err != nil {
		fmt.Fprintf(stderr, "tablecsv: %v\n", err)
		fmt.Fprint(stderr, usage+flagSet.FlagUsages())
		return 2
	}
	if *help {
		fmt.Fprint(stdout, usage+flagSet.FlagUsages())
		return 0
	}
	if flagSet.NArg() < 1 || flagSet.NArg() > 2 {
		fmt.Fprint(stderr, usage+flagSet.FlagUsages())
		return 2
	}
	selector := flagSet.Arg(0)

	in := stdin
	if flagSet.NArg() == 2 && flagSet.Arg(1) != "-" {
		f, err := os.Open(flagSet.Arg(1))
		if err != nil {
			return die(stderr, err)
		}
		defer f.Close()
		in = f
	}

	page, err := html.Parse(in)
	if err != nil {
		return die(stderr, err)
	}
	var opts csv.Options
	if *escapeQuotes {
		opts.Quoting = csv.QuoteEscaped
	}
	res, ok, err := tablecsv.ExportNode(page, selector, opts)
	if err != nil {
		return die(stderr, err)
	}
	if !ok {
		return die(stderr, fmt.Errorf("no table matches selector %q", selector))
	}

	if *preview {
		writeTable(stdout, res.Table.Strings())
		return 0
	}
	// An empty document is not written anywhere.
	if res.Empty() {
		return 0
	}

	if *output != "" {
		path := outputPath(*output)
		if err := atomic.WriteFile(path, strings.NewReader(res.CSV)); err != nil {
			return die(stderr, fmt.Errorf("write %s: %w", path, err))
		}
		return 0
	}
	fmt.Fprintln(stdout, res.CSV)
	return 0
}

// outputPath keeps the directory of name and gives the file a .csv extension.
func outputPath(name string) string {
	dir, file := filepath.Split(name)
	return filepath.Join(dir, tablecsv.Filename(file))
}

func die(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "tablecsv: %v\n", err)
	if errors.Is(err, html.ErrInvalidSelector) {
		return 2
	}
	return 1
}

// writeTable to w
func writeTable(w io.Writer, table [][]string) {
	tw := tabwriter.NewWriter(w, 4, 4, 2, ' ', tabwriter.Debug)
	for _, row := range table {
		for j, cell := range row {
			fmt.Fprint(tw, csv.Normalize(cell))
			if j < len(row)-1 {
				fmt.Fprintf(tw, "\t")
			}
		}
		fmt.Fprintf(tw, "\n")
	}
	tw.Flush()
}
