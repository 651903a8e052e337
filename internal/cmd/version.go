package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/igaisin/playwright/cmd/state"
	"github.com/igaisin/playwright/internal/build"
)

func versionString() string {
	return build.Version
}

// fullVersion returns the maximally full version and build information for
// the currently running binary.
func fullVersion() string {
	goVersionArch := fmt.Sprintf("%s, %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return fmt.Sprintf("%s (%s)", versionString(), goVersionArch)
	}

	var commit string
	var dirty bool
	for _, s := range buildInfo.Settings {
		switch s.Key {
		case "vcs.revision":
			commit = s.Value
			if len(commit) > 10 {
				commit = commit[:10]
			}
		case "vcs.modified":
			if s.Value == "true" {
				dirty = true
			}
		default:
		}
	}

	if commit == "" {
		return fmt.Sprintf("%s (%s)", versionString(), goVersionArch)
	}

	if dirty {
		commit += "-dirty"
	}

	return fmt.Sprintf("%s (commit/%s, %s)", versionString(), commit, goVersionArch)
}

func getCmdVersion(gs *state.GlobalState) *cobra.Command {
	// versionCmd represents the version command.
	return &cobra.Command{
		Use:   "version",
		Short: "Show application version",
		Long:  "Show the application version and exit.",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			printToStdout(gs, fmt.Sprintf("%s v%s\n", gs.BinaryName, fullVersion()))
		},
	}
}
