// Package diff summarizes unified diffs for operator-facing reports.
package diff

import (
	"bytes"
	"fmt"
	"iter"
	"strings"

	godiff "github.com/sourcegraph/go-diff/diff"
)

// ParsedDiff wraps a parsed multi-file diff.
type ParsedDiff struct {
	files []*FileDiff
}

// Parse parses a unified diff string into a structured representation.
func Parse(diffText string) (*ParsedDiff, error) {
	if strings.TrimSpace(diffText) == "" {
		return &ParsedDiff{}, nil
	}

	files, err := godiff.ParseMultiFileDiff([]byte(diffText))
	if err != nil {
		return nil, fmt.Errorf("failed to parse diff: %w", err)
	}

	parsed := &ParsedDiff{
		files: make([]*FileDiff, 0, len(files)),
	}

	for _, f := range files {
		parsed.files = append(parsed.files, convertFileDiff(f))
	}

	return parsed, nil
}

// Files returns an iterator over all file diffs.
func (d *ParsedDiff) Files() iter.Seq[*FileDiff] {
	return func(yield func(*FileDiff) bool) {
		for _, f := range d.files {
			if !yield(f) {
				return
			}
		}
	}
}

// FileCount returns the number of files in the diff.
func (d *ParsedDiff) FileCount() int {
	return len(d.files)
}

// FileByPath finds a file diff by path.
func (d *ParsedDiff) FileByPath(path string) *FileDiff {
	for _, f := range d.files {
		if f.Path() == path || f.OldName == path || f.NewName == path {
			return f
		}
	}

	return nil
}

// Stats returns total addition and deletion counts across all files.
func (d *ParsedDiff) Stats() (added, deleted int) {
	for _, f := range d.files {
		added += f.Added
		deleted += f.Deleted
	}

	return added, deleted
}

// convertFileDiff converts from go-diff types to our summary type.
func convertFileDiff(f *godiff.FileDiff) *FileDiff {
	fd := &FileDiff{
		OldName:   stripPrefix(f.OrigName),
		NewName:   stripPrefix(f.NewName),
		IsNew:     f.OrigName == "/dev/null",
		IsDeleted: f.NewName == "/dev/null",
	}

	// Check for renames.
	if fd.OldName != fd.NewName && !fd.IsNew && !fd.IsDeleted {
		fd.IsRenamed = true
	}

	// Check for binary.
	for _, ex := range f.Extended {
		if strings.Contains(ex, "Binary files") {
			fd.IsBinary = true

			break
		}
	}

	for _, h := range f.Hunks {
		added, deleted := countHunk(h.Body)
		fd.Added += added
		fd.Deleted += deleted
	}

	return fd
}

// countHunk tallies added and deleted lines in a hunk body.
func countHunk(body []byte) (added, deleted int) {
	for _, line := range bytes.Split(body, []byte("\n")) {
		if len(line) == 0 {
			continue
		}

		switch line[0] {
		case '+':
			added++
		case '-':
			deleted++
		}
	}

	return added, deleted
}

// stripPrefix removes the a/ or b/ prefix from a diff path.
func stripPrefix(name string) string {
	if strings.HasPrefix(name, "a/") || strings.HasPrefix(name, "b/") {
		return name[2:]
	}

	return name
}
