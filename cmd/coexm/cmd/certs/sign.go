package certs

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mensylisir/coexm/cmd/coexm/cmd/cliutil"
)

type SignOptions struct {
	CSR  string
	File string
}

var signOptions = &SignOptions{}

func init() {
	CertsCmd.AddCommand(signCmd)
	signCmd.Flags().StringVar(&signOptions.CSR, "csr", "", "Path to a PEM-encoded certificate signing request (required)")
	signCmd.Flags().StringVar(&signOptions.File, "file", "", "Write the signed certificate to this path instead of stdout")

	if err := signCmd.MarkFlagRequired("csr"); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to mark 'csr' flag as required: %v\n", err)
	}
}

var signCmd = &cobra.Command{
	Use:   "sign CLUSTER_NAME_OR_ID",
	Short: "Sign a certificate request with a cluster's CA",
	Long: `Submits a PEM-encoded certificate signing request to the cluster's CA
and prints the signed certificate. The subject of the request decides the
user and groups the certificate authenticates as.`,
	Args: cobra.ExactArgs(1),
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
		csr, err := os.ReadFile(signOptions.CSR)
		if err != nil {
			return fmt.Errorf("failed to read CSR from %s: %w", signOptions.CSR, err)
		}

		signed, err := cl.SignCOEClusterCertificate(ctx, clusterID, string(csr))
		if err != nil {
			return err
		}
		pem := signed.StringValue("pem")
		if pem == "" {
			return fmt.Errorf("signing response for cluster %s carried no certificate", args[0])
		}

		if signOptions.File == "" {
			fmt.Fprint(cmd.OutOrStdout(), pem)
			return nil
		}
		if err := os.WriteFile(signOptions.File, []byte(pem), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Signed certificate for COE cluster %s saved to %s\n", args[0], signOptions.File)
		return nil
	},
}
