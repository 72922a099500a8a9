// Package sync drives one full update run: load the CSV mapping, back up the
// target, patch its lines, write it back, and scan for systems left
// unresolved. The two entry points differ only in which patch pass they run
// and which marker field proves a system resolved.
package sync

import (
	"fmt"
	"strings"

	"go.uber.org/atomic"

	"retrosync/internal/fileutil"
	"retrosync/patch"
	"retrosync/report"
	"retrosync/sysmap"
)

const (
	// BackupSuffixSrc is appended to the target path by the src sync.
	BackupSuffixSrc = ".backup"
	// BackupSuffixRGS is appended to the target path by the rgs sync.
	BackupSuffixRGS = ".backup-rgs"
)

type Options struct {
	CSVPath    string
	TargetPath string
	// DryRun patches in memory and reports, but writes neither the backup
	// nor the target.
	DryRun bool
}

// Summary is everything a run learned, for the caller to print and to turn
// into an exit code.
type Summary struct {
	Mapping    sysmap.Mapping
	Result     *patch.Result
	Unresolved []string
	BackupPath string
	// BackupProgress is the fraction of the target copied into the backup,
	// 1.0 on a completed copy of a non-empty file.
	BackupProgress float64
	// YAMLIssue is set when the patched output no longer parses as YAML.
	// The file is written regardless; the backup is the recovery path.
	YAMLIssue error
}

// UpdateSrc syncs the src field of every record whose retrobat id appears in
// the CSV.
func UpdateSrc(opts Options) (*Summary, error) {
	return update(opts, BackupSuffixSrc, patch.SyncSrc, "retrobat")
}

// UpdateRGS syncs the src field and updates or inserts the retrobat_rgs
// field for every record the CSV claims.
func UpdateRGS(opts Options) (*Summary, error) {
	return update(opts, BackupSuffixRGS, patch.SyncRGS, "retrobat_rgs")
}

type patchFunc func([]string, sysmap.Mapping) *patch.Result

func update(opts Options, backupSuffix string, apply patchFunc, resolvedField string) (*Summary, error) {
	mapping, err := sysmap.LoadCSV(opts.CSVPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load system mappings: %w", err)
	}

	summary := &Summary{Mapping: mapping}

	if !opts.DryRun {
		summary.BackupPath = opts.TargetPath + backupSuffix
		progress := atomic.NewFloat64(0)
		if err := fileutil.CopyFile(opts.TargetPath, summary.BackupPath, progress); err != nil {
			return nil, fmt.Errorf("failed to create backup: %w", err)
		}
		summary.BackupProgress = progress.Load()
	}

	lines, err := fileutil.ReadLines(opts.TargetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read target file: %w", err)
	}

	summary.Result = apply(lines, mapping)

	if !opts.DryRun {
		summary.YAMLIssue = patch.CheckYAML(lines)
		if err := fileutil.WriteLines(opts.TargetPath, lines); err != nil {
			return nil, fmt.Errorf("failed to write target file: %w", err)
		}
	}

	summary.Unresolved = report.Unresolved(strings.Join(lines, ""), mapping, resolvedField)
	return summary, nil
}
