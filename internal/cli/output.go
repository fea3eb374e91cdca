package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/mattn/go-isatty"
)

// newTable returns a tabwriter for aligned column output.
func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// printHeader writes a column header row, with a separator when writing to a
// terminal.
func printHeader(w io.Writer, columns ...string) {
	for i, c := range columns {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, c)
	}
	fmt.Fprintln(w)

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return
	}
	for i, c := range columns {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		for range c {
			fmt.Fprint(w, "─")
		}
	}
	fmt.Fprintln(w)
}

// truncate shortens s to max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
