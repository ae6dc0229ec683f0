package template

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mensylisir/coexm/cmd/coexm/cmd/cliutil"
	"github.com/mensylisir/coexm/pkg/cloud"
	"github.com/mensylisir/coexm/pkg/containerinfra"
)

type CreateOptions struct {
	COE                 string
	Image               string
	ExternalNetwork     string
	Flavor              string
	MasterFlavor        string
	Keypair             string
	NetworkDriver       string
	VolumeDriver        string
	DockerStorageDriver string
	DockerVolumeSize    int
	DNSNameserver       string
	FixedNetwork        string
	FixedSubnet         string
	HTTPProxy           string
	HTTPSProxy          string
	NoProxy             string
	ServerType          string
	Public              bool
	RegistryEnabled     bool
	TLSDisabled         bool
	FloatingIP          bool
	MasterLB            bool
	Labels              map[string]string
}

var createOptions = &CreateOptions{}

func init() {
	TemplateCmd.AddCommand(createCmd)
	createCmd.Flags().StringVar(&createOptions.COE, "coe", "", "Container orchestration engine, e.g. kubernetes or swarm (required)")
	createCmd.Flags().StringVar(&createOptions.Image, "image", "", "Glance image ID for cluster nodes (required)")
	createCmd.Flags().StringVar(&createOptions.ExternalNetwork, "external-network", "", "External network for floating IPs")
	createCmd.Flags().StringVar(&createOptions.Flavor, "flavor", "", "Default flavor for worker nodes")
	createCmd.Flags().StringVar(&createOptions.MasterFlavor, "master-flavor", "", "Default flavor for master nodes")
	createCmd.Flags().StringVar(&createOptions.Keypair, "keypair", "", "Default keypair for node access")
	createCmd.Flags().StringVar(&createOptions.NetworkDriver, "network-driver", "", "Container network driver, e.g. flannel or calico")
	createCmd.Flags().StringVar(&createOptions.VolumeDriver, "volume-driver", "", "Container volume driver, e.g. cinder")
	createCmd.Flags().StringVar(&createOptions.DockerStorageDriver, "docker-storage-driver", "", "Docker storage driver, e.g. overlay2")
	createCmd.Flags().IntVar(&createOptions.DockerVolumeSize, "docker-volume-size", 0, "Docker volume size in GB")
	createCmd.Flags().StringVar(&createOptions.DNSNameserver, "dns-nameserver", "", "DNS nameserver for cluster nodes")
	createCmd.Flags().StringVar(&createOptions.FixedNetwork, "fixed-network", "", "Network to attach nodes to")
	createCmd.Flags().StringVar(&createOptions.FixedSubnet, "fixed-subnet", "", "Subnet to attach nodes to")
	createCmd.Flags().StringVar(&createOptions.HTTPProxy, "http-proxy", "", "HTTP proxy for cluster nodes")
	createCmd.Flags().StringVar(&createOptions.HTTPSProxy, "https-proxy", "", "HTTPS proxy for cluster nodes")
	createCmd.Flags().StringVar(&createOptions.NoProxy, "no-proxy", "", "Comma-separated hosts that bypass the proxy")
	createCmd.Flags().StringVar(&createOptions.ServerType, "server-type", "", "Node server type, vm or bm")
	createCmd.Flags().BoolVar(&createOptions.Public, "public", false, "Make the template visible to all projects")
	createCmd.Flags().BoolVar(&createOptions.RegistryEnabled, "registry-enabled", false, "Enable a per-cluster insecure registry")
	createCmd.Flags().BoolVar(&createOptions.TLSDisabled, "tls-disabled", false, "Disable TLS on cluster API endpoints")
	createCmd.Flags().BoolVar(&createOptions.FloatingIP, "floating-ip", false, "Assign floating IPs to nodes by default")
	createCmd.Flags().BoolVar(&createOptions.MasterLB, "master-lb", false, "Front masters with a load balancer by default")
	createCmd.Flags().StringToStringVar(&createOptions.Labels, "labels", nil, "Template labels as key=value pairs")

	for _, name := range []string{"coe", "image"} {
		if err := createCmd.MarkFlagRequired(name); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to mark '%s' flag as required: %v\n", name, err)
		}
	}
}

var createCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Register a cluster template",
	Long: `Registers a cluster template. Flags left unset are omitted from the
request so the service's defaults apply.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cl, err := cliutil.Connect(cmd)
		if err != nil {
			return err
		}

		opts := containerinfra.CreateClusterTemplateOpts{
			Name:                args[0],
			COE:                 createOptions.COE,
			ImageID:             createOptions.Image,
			ExternalNetworkID:   createOptions.ExternalNetwork,
			FlavorID:            createOptions.Flavor,
			MasterFlavorID:      createOptions.MasterFlavor,
			KeypairID:           createOptions.Keypair,
			NetworkDriver:       createOptions.NetworkDriver,
			VolumeDriver:        createOptions.VolumeDriver,
			DockerStorageDriver: createOptions.DockerStorageDriver,
			DNSNameserver:       createOptions.DNSNameserver,
			FixedNetwork:        createOptions.FixedNetwork,
			FixedSubnet:         createOptions.FixedSubnet,
			HTTPProxy:           createOptions.HTTPProxy,
			HTTPSProxy:          createOptions.HTTPSProxy,
			NoProxy:             createOptions.NoProxy,
			ServerType:          createOptions.ServerType,
			Labels:              createOptions.Labels,
		}
		if cmd.Flags().Changed("docker-volume-size") {
			opts.DockerVolumeSize = &createOptions.DockerVolumeSize
		}
		if cmd.Flags().Changed("public") {
			opts.Public = &createOptions.Public
		}
		if cmd.Flags().Changed("registry-enabled") {
			opts.RegistryEnabled = &createOptions.RegistryEnabled
		}
		if cmd.Flags().Changed("tls-disabled") {
			opts.TLSDisabled = &createOptions.TLSDisabled
		}
		if cmd.Flags().Changed("floating-ip") {
			opts.FloatingIPEnabled = &createOptions.FloatingIP
		}
		if cmd.Flags().Changed("master-lb") {
			opts.MasterLBEnabled = &createOptions.MasterLB
		}

		created, err := cl.CreateClusterTemplate(cmd.Context(), opts)
		if err != nil {
			return err
		}
		template, err := cl.NormalizeClusterTemplate(created)
		if err != nil {
			return err
		}

		return cliutil.Print(cmd, template, func(w io.Writer) {
			renderTemplateTable(w, []*cloud.ClusterTemplate{template})
		})
	},
}
