package template

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mensylisir/coexm/cmd/coexm/cmd/cliutil"
	"github.com/mensylisir/coexm/pkg/cloud"
)

type UpdateOptions struct {
	Set []string
}

var updateOptions = &UpdateOptions{}

func init() {
	TemplateCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringArrayVar(&updateOptions.Set, "set", nil, "Attribute to change as key=value; repeatable. Use key=null to remove")

	if err := updateCmd.MarkFlagRequired("set"); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to mark 'set' flag as required: %v\n", err)
	}
}

var updateCmd = &cobra.Command{
	Use:   "update NAME_OR_ID",
	Short: "Update attributes of a cluster template",
	Long: `Updates a cluster template in place. Each --set pair becomes one patch
operation; values parse as JSON where possible, so --set public=true
changes a boolean and --set dns_nameserver=null removes the attribute.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cl, err := cliutil.Connect(cmd)
		if err != nil {
			return err
		}

		attrs, err := cliutil.ParseSetArgs(updateOptions.Set)
		if err != nil {
			return err
		}

		updated, err := cl.UpdateClusterTemplate(cmd.Context(), args[0], attrs)
		if err != nil {
			return err
		}
		template, err := cl.NormalizeClusterTemplate(updated)
		if err != nil {
			return err
		}

		return cliutil.Print(cmd, template, func(w io.Writer) {
			renderTemplateTable(w, []*cloud.ClusterTemplate{template})
		})
	},
}
