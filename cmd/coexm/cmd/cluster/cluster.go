package cluster

import (
	"github.com/spf13/cobra"
)

// ClusterCmd represents the cluster command group
var ClusterCmd = &cobra.Command{
	Use:     "cluster",
	Aliases: []string{"clusters"},
	Short:   "Manage COE clusters",
	Long:    `Commands for listing, inspecting, creating, scaling and deleting COE clusters.`,
}
