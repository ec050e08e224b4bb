package cli

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// BuildInfo identifies the running binary. cmd/rebuttal fills it from
// variables set with -ldflags "-X main.version=...".
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

var build = BuildInfo{Version: "dev", Commit: "none", Date: "unknown"}

// SetBuildInfo records the binary's version for the version command and --version.
// Empty fields keep their defaults. A dev build installed with go install
// reports the module version and VCS revision instead.
func SetBuildInfo(b BuildInfo) {
	if b.Version != "" {
		build.Version = b.Version
	}
	if b.Commit != "" {
		build.Commit = b.Commit
	}
	if b.Date != "" {
		build.Date = b.Date
	}
	if build.Version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			fromModule(info)
		}
	}
	rootCmd.Version = build.Version
}

func fromModule(info *debug.BuildInfo) {
	if v := info.Main.Version; v != "" && v != "(devel)" {
		build.Version = v
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if build.Commit == "none" {
				build.Commit = s.Value
			}
		case "vcs.time":
			if build.Date == "unknown" {
				build.Date = s.Value
			}
		}
	}
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("rebuttal %s (commit %s, built %s)", b.Version, b.Commit, b.Date)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), build)
	},
}
