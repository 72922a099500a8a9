// update-systems syncs the src field in the RetroNAS systems file against
// the RetroBat compatibility CSV. For every record whose quoted retrobat id
// appears in the CSV, the src path is rewritten to the canonical path with
// the /roms/ root stripped; every other byte of the file is left alone.
//
// Run from the repository root. Defaults match the checked-in layout and can
// be overridden with --csv and --target.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"retrosync/internal/fileutil"
	"retrosync/report"
	"retrosync/sync"
	"retrosync/version"
)

const (
	defaultCSV    = "local_docs/Retrobat Supported Systems.csv"
	defaultTarget = "ansible/retronas_systems.yml"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) > 0 && args[0] == "--version" {
		version.Print("update-systems")
		return 0
	}

	opts := sync.Options{}

	flags := pflag.NewFlagSet("update-systems", pflag.ContinueOnError)
	flags.StringVar(&opts.CSVPath, "csv", defaultCSV, "RetroBat systems CSV export")
	flags.StringVar(&opts.TargetPath, "target", defaultTarget, "systems YAML file to update")
	flags.BoolVar(&opts.DryRun, "dry-run", false, "report changes without writing anything")
	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	report.Header("RetroBat Systems Updater")
	fmt.Printf("CSV:    %s\n", opts.CSVPath)
	fmt.Printf("Target: %s\n\n", opts.TargetPath)

	for _, path := range []string{opts.CSVPath, opts.TargetPath} {
		if !fileutil.FileExists(path) {
			report.Fail("Error: input file not found: %s", path)
			return 1
		}
	}

	summary, err := sync.UpdateSrc(opts)
	if err != nil {
		report.Fail("Error: %v", err)
		return 1
	}

	report.OK("Loaded %d systems from CSV", len(summary.Mapping))
	if summary.BackupPath != "" {
		report.OK("Created backup: %s (%.0f%% copied)", summary.BackupPath, summary.BackupProgress*100)
	}

	fmt.Println("\nUpdating systems file...")
	for _, change := range summary.Result.Changes {
		report.Update("Updated", change.ID, change.Old, change.New)
	}
	for _, warning := range summary.Result.Warnings {
		report.Warn("%s", warning)
	}
	if summary.YAMLIssue != nil {
		report.Warn("%v", summary.YAMLIssue)
	}

	report.Rule()
	fmt.Printf("Summary: %d systems updated\n", summary.Result.SrcUpdated)

	if len(summary.Unresolved) > 0 {
		report.Warn("%d systems from CSV not found in the systems file:", len(summary.Unresolved))
		report.ListUnresolved(summary.Unresolved, summary.Mapping)
		return 1
	}

	report.OK("All systems from CSV are present in the systems file")
	return 0
}
