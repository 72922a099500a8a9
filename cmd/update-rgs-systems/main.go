// update-rgs-systems syncs the retrobat_rgs field in the RetroNAS systems
// file against the RGS compatibility CSV. Lines claimed by a known system
// get their src path corrected and their retrobat_rgs field updated, or
// inserted right after the retrobat marker when it is missing. Everything
// else in the file survives byte-for-byte.
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
	defaultCSV    = "local_docs/Retrobat Supported Systems With RGS.csv"
	defaultTarget = "ansible/retronas_systems.yml"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) > 0 && args[0] == "--version" {
		version.Print("update-rgs-systems")
		return 0
	}

	opts := sync.Options{}

	flags := pflag.NewFlagSet("update-rgs-systems", pflag.ContinueOnError)
	flags.StringVar(&opts.CSVPath, "csv", defaultCSV, "RetroBat RGS systems CSV export")
	flags.StringVar(&opts.TargetPath, "target", defaultTarget, "systems YAML file to update")
	flags.BoolVar(&opts.DryRun, "dry-run", false, "report changes without writing anything")
	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	report.Header("RetroBat RGS Systems Updater")
	fmt.Printf("CSV:    %s\n", opts.CSVPath)
	fmt.Printf("Target: %s\n\n", opts.TargetPath)

	for _, path := range []string{opts.CSVPath, opts.TargetPath} {
		if !fileutil.FileExists(path) {
			report.Fail("Error: input file not found: %s", path)
			return 1
		}
	}

	summary, err := sync.UpdateRGS(opts)
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
		verb := "Updated"
		if change.Old == "" && change.Field == "retrobat_rgs" {
			verb = "Added"
		}
		report.Update(verb, change.ID, change.Old, change.New)
	}
	if summary.YAMLIssue != nil {
		report.Warn("%v", summary.YAMLIssue)
	}

	report.Rule()
	fmt.Printf("Summary: %d updated, %d added, %d src paths corrected\n",
		summary.Result.RGSUpdated, summary.Result.RGSAdded, summary.Result.SrcUpdated)

	if len(summary.Unresolved) > 0 {
		report.Warn("%d systems from CSV not found or retrobat_rgs empty:", len(summary.Unresolved))
		report.ListUnresolved(summary.Unresolved, summary.Mapping)
		return 1
	}

	report.OK("All systems from CSV have retrobat_rgs populated")
	return 0
}
