package cluster

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mensylisir/coexm/cmd/coexm/cmd/cliutil"
	"github.com/mensylisir/coexm/pkg/cloud"
	"github.com/mensylisir/coexm/pkg/common"
	"github.com/mensylisir/coexm/pkg/containerinfra"
)

type CreateOptions struct {
	ClusterTemplate string
	Keypair         string
	MasterCount     int
	NodeCount       int
	CreateTimeout   int
	DiscoveryURL    string
	Flavor          string
	MasterFlavor    string
	FixedNetwork    string
	FixedSubnet     string
	FloatingIP      bool
	MasterLB        bool
	Labels          map[string]string
	Wait            bool
	WaitTimeout     time.Duration
}

var createOptions = &CreateOptions{}

func init() {
	ClusterCmd.AddCommand(createCmd)
	createCmd.Flags().StringVar(&createOptions.ClusterTemplate, "cluster-template", "", "Cluster template name or ID to build from (required)")
	createCmd.Flags().StringVar(&createOptions.Keypair, "keypair", "", "Keypair for node access")
	createCmd.Flags().IntVar(&createOptions.MasterCount, "master-count", 0, "Number of master nodes")
	createCmd.Flags().IntVar(&createOptions.NodeCount, "node-count", 0, "Number of worker nodes")
	createCmd.Flags().IntVar(&createOptions.CreateTimeout, "timeout", 0, "Creation timeout in minutes")
	createCmd.Flags().StringVar(&createOptions.DiscoveryURL, "discovery-url", "", "Etcd discovery URL")
	createCmd.Flags().StringVar(&createOptions.Flavor, "flavor", "", "Flavor for worker nodes")
	createCmd.Flags().StringVar(&createOptions.MasterFlavor, "master-flavor", "", "Flavor for master nodes")
	createCmd.Flags().StringVar(&createOptions.FixedNetwork, "fixed-network", "", "Network to attach nodes to")
	createCmd.Flags().StringVar(&createOptions.FixedSubnet, "fixed-subnet", "", "Subnet to attach nodes to")
	createCmd.Flags().BoolVar(&createOptions.FloatingIP, "floating-ip", false, "Assign floating IPs to nodes")
	createCmd.Flags().BoolVar(&createOptions.MasterLB, "master-lb", false, "Front masters with a load balancer")
	createCmd.Flags().StringToStringVar(&createOptions.Labels, "labels", nil, "Cluster labels as key=value pairs")
	createCmd.Flags().BoolVar(&createOptions.Wait, "wait", false, "Wait until the cluster reaches CREATE_COMPLETE")
	createCmd.Flags().DurationVar(&createOptions.WaitTimeout, "wait-timeout", 60*time.Minute, "How long --wait may take before giving up")

	if err := createCmd.MarkFlagRequired("cluster-template"); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to mark 'cluster-template' flag as required: %v\n", err)
	}
}

var createCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a COE cluster",
	Long: `Creates a COE cluster from a cluster template. Flags left unset are
omitted from the request so the template's values apply.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cl, err := cliutil.Connect(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		name := args[0]

		// The template flag accepts a name; the API wants its ID.
		template, err := cl.GetClusterTemplate(ctx, createOptions.ClusterTemplate, nil)
		if err != nil {
			return err
		}
		if template == nil {
			return fmt.Errorf("cluster template %s not found", createOptions.ClusterTemplate)
		}

		opts := containerinfra.CreateClusterOpts{
			Name:              name,
			ClusterTemplateID: template.ID(),
			Keypair:           createOptions.Keypair,
			DiscoveryURL:      createOptions.DiscoveryURL,
			FlavorID:          createOptions.Flavor,
			MasterFlavorID:    createOptions.MasterFlavor,
			FixedNetwork:      createOptions.FixedNetwork,
			FixedSubnet:       createOptions.FixedSubnet,
			Labels:            createOptions.Labels,
		}
		if cmd.Flags().Changed("master-count") {
			opts.MasterCount = &createOptions.MasterCount
		}
		if cmd.Flags().Changed("node-count") {
			opts.NodeCount = &createOptions.NodeCount
		}
		if cmd.Flags().Changed("timeout") {
			opts.CreateTimeout = &createOptions.CreateTimeout
		}
		if cmd.Flags().Changed("floating-ip") {
			opts.FloatingIPEnabled = &createOptions.FloatingIP
		}
		if cmd.Flags().Changed("master-lb") {
			opts.MasterLBEnabled = &createOptions.MasterLB
		}

		created, err := cl.CreateCOECluster(ctx, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Requested creation of COE cluster %s (%s)\n", name, created.ID())

		if !createOptions.Wait {
			return nil
		}
		return waitForStatus(cmd, cl, created.ID(), common.StatusCreateComplete, createOptions.WaitTimeout)
	},
}

func waitForStatus(cmd *cobra.Command, cl *cloud.Cloud, nameOrID, target string, timeout time.Duration) error {
	description := fmt.Sprintf("Waiting for COE cluster %s to reach %s", nameOrID, target)
	err := cliutil.WithSpinner(description, func() error {
		_, err := cl.WaitForCOEClusterStatus(cmd.Context(), nameOrID, target, cloud.WaitOptions{Timeout: timeout})
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "COE cluster %s reached %s\n", nameOrID, target)
	return nil
}
