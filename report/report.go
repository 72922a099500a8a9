// Package report handles the console side of a sync run: styled progress
// and warning lines, the closing summary, and the post-pass scan for systems
// the CSV knows but the target file never resolved.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"retrosync/sysmap"
)

var (
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	headerStyle = lipgloss.NewStyle().Bold(true)
)

// Unresolved returns, sorted, every id whose resolution marker (the quoted
// "field: id" pair) is absent from the final file text. For the rgs sync the
// field is retrobat_rgs; for the src sync it is retrobat.
func Unresolved(content string, mapping sysmap.Mapping, field string) []string {
	var missing []string
	for id := range mapping {
		if !strings.Contains(content, fmt.Sprintf(`%s: "%s"`, field, id)) {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	return missing
}

// Header prints the tool banner followed by a rule.
func Header(title string) {
	fmt.Println(headerStyle.Render(title))
	fmt.Println(strings.Repeat("=", 60))
}

// Rule prints the separator that closes the change listing.
func Rule() {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
}

// OK prints a green check line.
func OK(format string, args ...any) {
	fmt.Println(okStyle.Render("✓ " + fmt.Sprintf(format, args...)))
}

// Warn prints a yellow warning line.
func Warn(format string, args ...any) {
	fmt.Println(warnStyle.Render("⚠ " + fmt.Sprintf(format, args...)))
}

// Fail prints a red error line.
func Fail(format string, args ...any) {
	fmt.Println(failStyle.Render("✗ " + fmt.Sprintf(format, args...)))
}

// Update prints one per-change diff line.
func Update(verb, id, from, to string) {
	if from == "" {
		fmt.Printf("  %s: %-20s %q\n", verb, id, to)
		return
	}
	fmt.Printf("  %s: %-20s %q → %q\n", verb, id, from, to)
}

// ListUnresolved prints the unresolved ids with their display names.
func ListUnresolved(unresolved []string, mapping sysmap.Mapping) {
	for _, id := range unresolved {
		fmt.Printf("  - %s: %s\n", id, mapping[id].FullName)
	}
}
