package cmd

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		titleColor := color.New(color.FgCyan, color.Bold)
		out := cmd.OutOrStdout()

		titleColor.Fprint(out, "spade version: ")
		fmt.Fprintln(out, Version)
		titleColor.Fprint(out, "Git commit: ")
		fmt.Fprintln(out, GitCommit)
		titleColor.Fprint(out, "Build date: ")
		fmt.Fprintln(out, BuildDate)
		titleColor.Fprint(out, "Go version: ")
		fmt.Fprintln(out, runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
