package certs

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mensylisir/coexm/cmd/coexm/cmd/cliutil"
)

type ShowOptions struct {
	File string
}

var showOptions = &ShowOptions{}

func init() {
	CertsCmd.AddCommand(showCmd)
	showCmd.Flags().StringVar(&showOptions.File, "file", "", "Write the CA certificate to this path instead of stdout")
}

var showCmd = &cobra.Command{
	Use:   "show CLUSTER_NAME_OR_ID",
	Short: "Show the CA certificate of a cluster",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cl, err := cliutil.Connect(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		clusterID, err := resolveClusterID(ctx, cl, args[0])
		if err != nil {
			return err
		}
		cert, err := cl.GetCOEClusterCertificate(ctx, clusterID)
		if err != nil {
			return err
		}
		pem := cert.StringValue("pem")
		if pem == "" {
			return fmt.Errorf("cluster %s returned no CA certificate", args[0])
		}

		if showOptions.File == "" {
			fmt.Fprint(cmd.OutOrStdout(), pem)
			return nil
		}
		if err := os.WriteFile(showOptions.File, []byte(pem), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "CA certificate for COE cluster %s saved to %s\n", args[0], showOptions.File)
		return nil
	},
}
