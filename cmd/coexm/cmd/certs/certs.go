package certs

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mensylisir/coexm/pkg/cloud"
)

// CertsCmd represents the certs command group
var CertsCmd = &cobra.Command{
	Use:   "certs",
	Short: "Manage cluster certificates",
	Long:  `Commands for fetching cluster CA certificates and signing certificate requests.`,
}

// AddCertsCommand attaches the certs group to the root command.
func AddCertsCommand(rootCmd *cobra.Command) {
	rootCmd.AddCommand(CertsCmd)
}

// resolveClusterID turns a cluster name or ID into the cluster UUID the
// certificates endpoints want. UUIDs pass through without a lookup.
func resolveClusterID(ctx context.Context, cl *cloud.Cloud, nameOrID string) (string, error) {
	if _, err := uuid.Parse(nameOrID); err == nil {
		return nameOrID, nil
	}
	record, err := cl.GetCOECluster(ctx, nameOrID, nil)
	if err != nil {
		return "", err
	}
	if record == nil {
		return "", fmt.Errorf("COE cluster %s not found", nameOrID)
	}
	return record.ID(), nil
}
