package patch

import (
	"fmt"

	"retrosync/sysmap"
)

// SyncSrc walks the target lines and rewrites the src path on every line
// whose quoted retrobat id is known to the mapping. Lines without a retrobat
// field, or with an id the CSV does not know, are skipped. A known id on a
// line with no src field earns a warning, since the record exists but cannot
// be updated in place. Lines are mutated in place.
func SyncSrc(lines []string, mapping sysmap.Mapping) *Result {
	result := &Result{}

	for i, line := range lines {
		idMatch := idRe.FindStringSubmatch(line)
		if idMatch == nil {
			continue
		}

		id := idMatch[1]
		system, known := mapping[id]
		if !known {
			continue
		}

		srcMatch := srcRe.FindStringSubmatch(line)
		if srcMatch == nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("found retrobat: %q but no src field on line %d", id, i+1))
			continue
		}

		if srcMatch[1] == system.Src {
			continue
		}

		lines[i] = srcRe.ReplaceAllLiteralString(line, `src: "`+system.Src+`"`)
		result.SrcUpdated++
		result.record(Change{Line: i + 1, ID: id, Field: "src", Old: srcMatch[1], New: system.Src})
	}

	return result
}
