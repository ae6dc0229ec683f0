package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mensylisir/coexm/pkg/util"
	"github.com/mensylisir/coexm/pkg/version"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, util.GenerateASCIIArt("coexm", ""))
		fmt.Fprintf(out, "Version:    %s\n", version.Version)
		fmt.Fprintf(out, "Git commit: %s\n", version.GitCommit)
		fmt.Fprintf(out, "Built:      %s\n", version.BuildDate)
	},
}
