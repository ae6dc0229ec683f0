// Package cliutil holds the plumbing shared by every coexm subcommand:
// profile resolution, output rendering, attribute parsing and terminal
// niceties.
package cliutil

import (
	"github.com/spf13/cobra"

	"github.com/mensylisir/coexm/pkg/cloud"
	"github.com/mensylisir/coexm/pkg/config"
)

// Connect builds the cloud facade from the root command's --config and
// --cloud flags, falling back to the usual file locations and environment
// variables.
func Connect(cmd *cobra.Command) (*cloud.Cloud, error) {
	name, profile, err := config.LoadCloud(FlagString(cmd, "config"), FlagString(cmd, "cloud"))
	if err != nil {
		return nil, err
	}
	return cloud.New(name, profile)
}

// FlagString reads a string flag visible from cmd, including persistent
// flags inherited from parent commands.
func FlagString(cmd *cobra.Command, name string) string {
	if f := cmd.Flag(name); f != nil {
		return f.Value.String()
	}
	return ""
}
