package main

import (
	"runtime"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if short {
				return writeln(out, version)
			}
			if err := writef(out, "ludika %s\n", version); err != nil {
				return err
			}
			if err := writef(out, "  Commit:     %s\n", commit); err != nil {
				return err
			}
			if err := writef(out, "  Built:      %s\n", date); err != nil {
				return err
			}
			return writef(out, "  Go version: %s\n", runtime.Version())
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only the version number")
	return cmd
}
