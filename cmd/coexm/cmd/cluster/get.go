package cluster

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mensylisir/coexm/cmd/coexm/cmd/cliutil"
	"github.com/mensylisir/coexm/pkg/cloud"
)

func init() {
	ClusterCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get NAME_OR_ID",
	Short: "Show one COE cluster",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cl, err := cliutil.Connect(cmd)
		if err != nil {
			return err
		}

		record, err := cl.GetCOECluster(cmd.Context(), args[0], nil)
		if err != nil {
			return err
		}
		if record == nil {
			return fmt.Errorf("COE cluster %s not found", args[0])
		}
		cluster, err := cl.NormalizeCOECluster(record)
		if err != nil {
			return err
		}

		return cliutil.Print(cmd, cluster, func(w io.Writer) {
			renderClusterTable(w, []*cloud.COECluster{cluster})
		})
	},
}
