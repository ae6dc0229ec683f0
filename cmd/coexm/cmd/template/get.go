package template

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mensylisir/coexm/cmd/coexm/cmd/cliutil"
	"github.com/mensylisir/coexm/pkg/cloud"
)

func init() {
	TemplateCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get NAME_OR_ID",
	Short: "Show one cluster template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cl, err := cliutil.Connect(cmd)
		if err != nil {
			return err
		}

		record, err := cl.GetClusterTemplate(cmd.Context(), args[0], nil)
		if err != nil {
			return err
		}
		if record == nil {
			return fmt.Errorf("cluster template %s not found", args[0])
		}
		template, err := cl.NormalizeClusterTemplate(record)
		if err != nil {
			return err
		}

		return cliutil.Print(cmd, template, func(w io.Writer) {
			renderTemplateTable(w, []*cloud.ClusterTemplate{template})
		})
	},
}
