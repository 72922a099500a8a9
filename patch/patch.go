// Package patch rewrites individual quoted fields on matching lines of the
// systems file while leaving every other byte alone. It deliberately treats
// the file as text rather than parsing it: comments, spacing, and field order
// survive exactly as they are. The trade-off is a supported-format
// requirement: one record per line, fields quoted, no multi-line entries.
package patch

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	srcRe    = regexp.MustCompile(`src:\s*"([^"]+)"`)
	rgsRe    = regexp.MustCompile(`retrobat_rgs:\s*"([^"]*)"`)
	idRe     = regexp.MustCompile(`retrobat:\s*"([^"]+)"`)
	markerRe = regexp.MustCompile(`(retrobat:\s*"[^"]*",)`)
)

// Change records one field rewrite for the console diff output.
type Change struct {
	Line  int // 1-based line number in the target file
	ID    string
	Field string
	Old   string
	New   string
}

// Result accumulates what a patch pass did to the file.
type Result struct {
	SrcUpdated int
	RGSUpdated int
	RGSAdded   int
	Changes    []Change
	Warnings   []string
}

// Changed reports whether the pass rewrote anything.
func (r *Result) Changed() bool {
	return r.SrcUpdated+r.RGSUpdated+r.RGSAdded > 0
}

func (r *Result) record(c Change) {
	r.Changes = append(r.Changes, c)
}

// CheckYAML parses the patched lines to confirm the file is still
// well-formed YAML. The patcher never touches structure, so a failure here
// means the input was already broken or a rewritten value fought the quoting.
func CheckYAML(lines []string) error {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(strings.Join(lines, "")), &doc); err != nil {
		return fmt.Errorf("patched output is not valid YAML: %w", err)
	}
	return nil
}
