package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mensylisir/coexm/cmd/coexm/cmd/certs"
	"github.com/mensylisir/coexm/cmd/coexm/cmd/cluster"
	"github.com/mensylisir/coexm/cmd/coexm/cmd/service"
	"github.com/mensylisir/coexm/cmd/coexm/cmd/template"
	"github.com/mensylisir/coexm/pkg/logger"
)

var (
	// Global flags
	cloudFlag    string
	configFlag   string
	verboseFlag  bool
	outputFlag   string
	templateFlag string
	logFileFlag  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "coexm",
	Short: "coexm manages COE clusters through the container-infra API.",
	Long: `coexm is a command-line interface for OpenStack-style container
infrastructure services: it creates, inspects, scales and deletes COE
clusters and cluster templates, fetches cluster certificates, and builds
ready-to-use kubeconfig files.

Connection profiles come from a clouds file (see --config); pick one with
--cloud or the COEXM_CLOUD environment variable.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logOpts := logger.DefaultOptions()
		if verboseFlag {
			logOpts.ConsoleLevel = logger.DebugLevel
		}
		if logFileFlag != "" {
			logOpts.FileOutput = true
			logOpts.LogFilePath = logFileFlag
		}
		logger.Init(logOpts)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to the clouds file (default: ./clouds.yaml, ~/.coexm/clouds.yaml, /etc/coexm/clouds.yaml)")
	rootCmd.PersistentFlags().StringVar(&cloudFlag, "cloud", "", "Cloud profile to use (default: $COEXM_CLOUD, or the only profile in the file)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "Also write JSON logs to this file (rotated)")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "table", "Output format. One of: table|json|yaml|template")
	rootCmd.PersistentFlags().StringVar(&templateFlag, "template", "", "Go template for -o template (sprig functions available)")

	rootCmd.AddCommand(cluster.ClusterCmd)
	template.AddTemplateCommand(rootCmd)
	service.AddServiceCommand(rootCmd)
	certs.AddCertsCommand(rootCmd)
}
