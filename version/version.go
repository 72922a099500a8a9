package version

import (
	"fmt"
	"os"
)

// Injected at build time via -ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

type BuildInfo struct {
	Version   string
	GitCommit string
	BuildDate string
}

func Get() BuildInfo {
	v := Version
	if override := os.Getenv("RETROSYNC_VERSION"); override != "" {
		v = override
	}
	return BuildInfo{
		Version:   v,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
	}
}

// Print writes the one-line version banner for a binary.
func Print(name string) {
	info := Get()
	fmt.Printf("%s %s (commit %s, built %s)\n", name, info.Version, info.GitCommit, info.BuildDate)
}
