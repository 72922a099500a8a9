package patch

import (
	"fmt"
	"strings"

	"retrosync/sysmap"
)

// SyncRGS walks the target lines and, for every line claimed by a known
// system, brings the src path up to date and updates or inserts the
// retrobat_rgs field. A line is claimed when it contains either the system's
// quoted retrobat id or its quoted expected src path; candidates are tried
// longest id first (sysmap.Mapping.IDs order) so the winner never depends on
// map iteration. Lines claimed by no system come back byte-for-byte
// untouched. Lines are mutated in place.
func SyncRGS(lines []string, mapping sysmap.Mapping) *Result {
	result := &Result{}
	ids := mapping.IDs()

	for i, line := range lines {
		id := claimLine(line, mapping, ids)
		if id == "" {
			continue
		}
		system := mapping[id]

		srcMatch := srcRe.FindStringSubmatch(line)
		if srcMatch == nil {
			// No src field means there is nothing safe to anchor a
			// rewrite on; leave the line for manual attention.
			continue
		}

		if srcMatch[1] != system.Src {
			line = srcRe.ReplaceAllLiteralString(line, `src: "`+system.Src+`"`)
			result.SrcUpdated++
			result.record(Change{Line: i + 1, ID: id, Field: "src", Old: srcMatch[1], New: system.Src})
		}

		if rgsMatch := rgsRe.FindStringSubmatch(line); rgsMatch != nil {
			if rgsMatch[1] != id {
				line = rgsRe.ReplaceAllLiteralString(line, `retrobat_rgs: "`+id+`"`)
				result.RGSUpdated++
				result.record(Change{Line: i + 1, ID: id, Field: "retrobat_rgs", Old: rgsMatch[1], New: id})
			}
		} else if markerRe.MatchString(line) {
			// Insert the new field right after the retrobat marker so the
			// record reads retrobat, retrobat_rgs, rest.
			line = markerRe.ReplaceAllString(line, `${1} retrobat_rgs: "`+id+`",`)
			result.RGSAdded++
			result.record(Change{Line: i + 1, ID: id, Field: "retrobat_rgs", New: id})
		}

		lines[i] = line
	}

	return result
}

// claimLine returns the first system id that matches the line, trying the
// retrobat id field and then the expected src path for each candidate.
func claimLine(line string, mapping sysmap.Mapping, ids []string) string {
	for _, id := range ids {
		if containsField(line, "retrobat", id) {
			return id
		}
		if containsField(line, "src", mapping[id].Src) {
			return id
		}
	}
	return ""
}

func containsField(line, field, value string) bool {
	return value != "" && strings.Contains(line, fmt.Sprintf(`%s: "%s"`, field, value))
}
