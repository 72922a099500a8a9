// check-retrobat cross-checks the RetroBat compatibility CSV against a
// RetroBat es_systems.cfg export. Read-only: it reports systems missing on
// either side and ROM folders the two files disagree on, and exits 1 when
// anything is off.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"retrosync/esconfig"
	"retrosync/internal/fileutil"
	"retrosync/report"
	"retrosync/sysmap"
	"retrosync/version"
)

const (
	defaultCSV       = "local_docs/Retrobat Supported Systems.csv"
	defaultESSystems = "local_docs/es_systems.cfg"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) > 0 && args[0] == "--version" {
		version.Print("check-retrobat")
		return 0
	}

	var csvPath, esPath string

	flags := pflag.NewFlagSet("check-retrobat", pflag.ContinueOnError)
	flags.StringVar(&csvPath, "csv", defaultCSV, "RetroBat systems CSV export")
	flags.StringVar(&esPath, "es-systems", defaultESSystems, "RetroBat es_systems.cfg export")
	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	report.Header("RetroBat Cross-Check")
	fmt.Printf("CSV:        %s\n", csvPath)
	fmt.Printf("es_systems: %s\n\n", esPath)

	for _, path := range []string{csvPath, esPath} {
		if !fileutil.FileExists(path) {
			report.Fail("Error: input file not found: %s", path)
			return 1
		}
	}

	mapping, err := sysmap.LoadCSV(csvPath)
	if err != nil {
		report.Fail("Error: %v", err)
		return 1
	}
	report.OK("Loaded %d systems from CSV", len(mapping))

	config, err := esconfig.Load(esPath)
	if err != nil {
		report.Fail("Error: %v", err)
		return 1
	}
	report.OK("Loaded %d systems from es_systems.cfg", len(config.Names()))

	missing, extra, mismatches := config.CrossCheck(mapping)

	clean := true
	if len(missing) > 0 {
		clean = false
		fmt.Println()
		report.Warn("%d CSV systems missing from es_systems.cfg:", len(missing))
		report.ListUnresolved(missing, mapping)
	}
	if len(extra) > 0 {
		clean = false
		fmt.Println()
		report.Warn("%d es_systems.cfg systems missing from CSV:", len(extra))
		for _, name := range extra {
			system, _ := config.Lookup(name)
			fmt.Printf("  - %s: %s\n", name, system.FullName)
		}
	}
	if len(mismatches) > 0 {
		clean = false
		fmt.Println()
		report.Warn("%d systems with disagreeing ROM folders:", len(mismatches))
		for _, mismatch := range mismatches {
			fmt.Printf("  - %s: CSV %q, es_systems %q\n", mismatch.ID, mismatch.CSVPath, mismatch.ESPath)
		}
	}

	report.Rule()
	if !clean {
		report.Warn("Cross-check found discrepancies")
		return 1
	}

	report.OK("CSV and es_systems.cfg agree")
	return 0
}
