package cmd

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version, VCS revision and Go toolchain",
	RunE: func(cmd *cobra.Command, args []string) error {
		short, _ := cmd.Flags().GetBool("short")
		info, _ := debug.ReadBuildInfo()
		writeVersion(cmd.OutOrStdout(), describeBuild(version, info), short)
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("short", false, "Print only the version")
}

// buildDescription is what the version command reports.
type buildDescription struct {
	Version   string
	Revision  string
	Dirty     bool
	GoVersion string
}

// describeBuild prefers the ldflags version, then the module version stamped
// by "go install", and takes the VCS revision from the build settings.
func describeBuild(ldflags string, info *debug.BuildInfo) buildDescription {
	d := buildDescription{Version: ldflags}
	if info == nil {
		return d
	}
	d.GoVersion = info.GoVersion
	if d.Version == "(devel)" && info.Main.Version != "" {
		d.Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			d.Revision = s.Value
			if len(d.Revision) > 12 {
				d.Revision = d.Revision[:12]
			}
		case "vcs.modified":
			d.Dirty = s.Value == "true"
		}
	}
	return d
}

func writeVersion(w io.Writer, d buildDescription, short bool) {
	if short {
		fmt.Fprintln(w, d.Version)
		return
	}
	fmt.Fprintln(w, "italiano", d.Version)
	if d.Revision != "" {
		rev := d.Revision
		if d.Dirty {
			rev += " (modified)"
		}
		fmt.Fprintf(w, "  revision: %s\n", rev)
	}
	if d.GoVersion != "" {
		fmt.Fprintf(w, "  go:       %s\n", d.GoVersion)
	}
}
