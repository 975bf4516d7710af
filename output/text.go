// Package output renders operator-facing status text.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/roasbeef/remerge/diff"
)

// Colors for terminal output.
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorDim   = "\033[2m"
)

// RefSummary writes a two-line summary of a ref: the label with name
// and short hash, then the padded commit description.
func RefSummary(w io.Writer, label, name, hash, desc string) {
	fmt.Fprintf(w, "%s: %s (%s)\n", label, name, hash)

	if desc != "" {
		fmt.Fprintf(w, "  %s\n", desc)
	}
}

// PathList writes a header followed by one indented path per line.
// When paths is empty it writes the sentinel instead, or nothing if the
// sentinel is empty too.
func PathList(w io.Writer, header string, paths []string, sentinel string) {
	if len(paths) == 0 {
		if sentinel != "" {
			fmt.Fprintf(w, "%s\n  %s\n", header, sentinel)
		}

		return
	}

	fmt.Fprintln(w, header)
	for _, path := range paths {
		fmt.Fprintf(w, "  %s\n", path)
	}
}

// MarkerReport writes git's literal conflict-marker report, dimmed.
// The report is diagnostic only; an empty report writes nothing.
func MarkerReport(w io.Writer, report string) {
	report = strings.TrimRight(report, "\n")
	if report == "" {
		return
	}

	fmt.Fprintln(w, "Leftover conflict markers:")
	for _, line := range strings.Split(report, "\n") {
		fmt.Fprintf(w, "  %s%s%s\n", colorDim, line, colorReset)
	}
}

// ResidualSummary writes a per-file summary of the diff the
// reconciliation commit is about to apply. Unparseable diff text is
// reported as such rather than failing the run.
func ResidualSummary(w io.Writer, diffText string) {
	parsed, err := diff.Parse(diffText)
	if err != nil {
		fmt.Fprintln(w, "Rebase result differs from the hidden merge.")

		return
	}

	if parsed.FileCount() == 0 {
		return
	}

	fmt.Fprintln(w, "Rebase result differs from the hidden merge:")

	for file := range parsed.Files() {
		name := file.Path()
		if file.IsRenamed {
			name = fmt.Sprintf("%s -> %s", file.OldName, file.NewName)
		}

		if file.IsBinary {
			fmt.Fprintf(w, "  %s (binary)\n", name)

			continue
		}

		fmt.Fprintf(
			w, "  %s %s+%d%s %s-%d%s\n",
			name,
			colorGreen, file.Added, colorReset,
			colorRed, file.Deleted, colorReset,
		)
	}

	added, deleted := parsed.Stats()
	fmt.Fprintf(w, "%d insertions(+), %d deletions(-)\n", added, deleted)
}
