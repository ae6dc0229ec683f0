package cluster

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mensylisir/coexm/cmd/coexm/cmd/cliutil"
)

type ConfigOptions struct {
	File string
}

var configOptions = &ConfigOptions{}

func init() {
	ClusterCmd.AddCommand(configCmd)
	configCmd.Flags().StringVar(&configOptions.File, "file", "", "Write the kubeconfig to this path instead of stdout")
}

var configCmd = &cobra.Command{
	Use:   "config NAME_OR_ID",
	Short: "Build a kubeconfig for a COE cluster",
	Long: `Generates a ready-to-use kubeconfig for a cluster: a fresh client key
is created locally, signed by the cluster CA, and assembled with the CA
certificate and the cluster's API address. Clusters built from TLS-disabled
templates get a certificate-less config.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cl, err := cliutil.Connect(cmd)
		if err != nil {
			return err
		}

		data, err := cl.ClusterKubeconfig(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if configOptions.File == "" {
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		}

		dir := filepath.Dir(configOptions.File)
		if dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory %s: %w", dir, err)
			}
		}
		// Kubeconfigs carry a private key.
		if err := os.WriteFile(configOptions.File, data, 0o600); err != nil {
			return fmt.Errorf("failed to write kubeconfig to %s: %w", configOptions.File, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Kubeconfig for COE cluster %s saved to %s\n", args[0], configOptions.File)
		return nil
	},
}
