package cluster

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mensylisir/coexm/cmd/coexm/cmd/cliutil"
	"github.com/mensylisir/coexm/pkg/cloud"
)

type DeleteOptions struct {
	YesAssume   bool
	Wait        bool
	WaitTimeout time.Duration
}

var deleteOptions = &DeleteOptions{}

func init() {
	ClusterCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteOptions.YesAssume, "yes", "y", false, "Assume yes to all prompts and run non-interactively")
	deleteCmd.Flags().BoolVar(&deleteOptions.Wait, "wait", false, "Wait until the cluster is gone")
	deleteCmd.Flags().DurationVar(&deleteOptions.WaitTimeout, "wait-timeout", 30*time.Minute, "How long --wait may take before giving up")
}

var deleteCmd = &cobra.Command{
	Use:   "delete NAME_OR_ID",
	Short: "Delete a COE cluster",
	Long:  `Deletes a COE cluster. This operation is destructive and cannot be undone.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cl, err := cliutil.Connect(cmd)
		if err != nil {
			return err
		}
		nameOrID := args[0]

		if !deleteOptions.YesAssume {
			prompt := fmt.Sprintf("This will delete COE cluster '%s'. Proceed?", nameOrID)
			if !cliutil.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt) {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		deleted, err := cl.DeleteCOECluster(cmd.Context(), nameOrID)
		if err != nil {
			return err
		}
		if !deleted {
			fmt.Fprintf(cmd.OutOrStdout(), "COE cluster %s does not exist\n", nameOrID)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Requested deletion of COE cluster %s\n", nameOrID)

		if !deleteOptions.Wait {
			return nil
		}
		description := fmt.Sprintf("Waiting for COE cluster %s to be deleted", nameOrID)
		err = cliutil.WithSpinner(description, func() error {
			return cl.WaitForCOEClusterDeleted(cmd.Context(), nameOrID, cloud.WaitOptions{Timeout: deleteOptions.WaitTimeout})
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "COE cluster %s deleted\n", nameOrID)
		return nil
	},
}
