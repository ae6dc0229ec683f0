package template

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mensylisir/coexm/cmd/coexm/cmd/cliutil"
)

type DeleteOptions struct {
	YesAssume bool
}

var deleteOptions = &DeleteOptions{}

func init() {
	TemplateCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteOptions.YesAssume, "yes", "y", false, "Assume yes to all prompts and run non-interactively")
}

var deleteCmd = &cobra.Command{
	Use:   "delete NAME_OR_ID",
	Short: "Delete a cluster template",
	Long:  `Deletes a cluster template. Templates still referenced by clusters cannot be removed.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cl, err := cliutil.Connect(cmd)
		if err != nil {
			return err
		}
		nameOrID := args[0]

		if !deleteOptions.YesAssume {
			prompt := fmt.Sprintf("This will delete cluster template '%s'. Proceed?", nameOrID)
			if !cliutil.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt) {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		deleted, err := cl.DeleteClusterTemplate(cmd.Context(), nameOrID)
		if err != nil {
			return err
		}
		if !deleted {
			fmt.Fprintf(cmd.OutOrStdout(), "Cluster template %s does not exist\n", nameOrID)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted cluster template %s\n", nameOrID)
		return nil
	},
}
