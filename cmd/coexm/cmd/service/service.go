package service

import (
	"github.com/spf13/cobra"
)

// ServiceCmd represents the service command group
var ServiceCmd = &cobra.Command{
	Use:     "service",
	Aliases: []string{"services", "mservice"},
	Short:   "Inspect Magnum services",
	Long:    `Commands for inspecting the control-plane services of the cluster API.`,
}

// AddServiceCommand attaches the service group to the root command.
func AddServiceCommand(rootCmd *cobra.Command) {
	rootCmd.AddCommand(ServiceCmd)
}
