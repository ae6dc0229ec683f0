package cluster

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/mensylisir/coexm/cmd/coexm/cmd/cliutil"
	"github.com/mensylisir/coexm/pkg/cloud"
	"github.com/mensylisir/coexm/pkg/resolve"
)

type ListOptions struct {
	Status string
	Query  string
}

var listOptions = &ListOptions{}

func init() {
	ClusterCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listOptions.Status, "status", "", "Only show clusters in this status (e.g. CREATE_COMPLETE)")
	listCmd.Flags().StringVar(&listOptions.Query, "query", "", "GJSON filter expression applied to each cluster record")
}

var listCmd = &cobra.Command{
	Use:   "list [NAME_OR_ID]",
	Short: "List COE clusters",
	Long: `Lists COE clusters known to the cloud. An optional positional argument
narrows the listing by name or ID; shell-style globs match against both.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cl, err := cliutil.Connect(cmd)
		if err != nil {
			return err
		}

		nameOrID := ""
		if len(args) == 1 {
			nameOrID = args[0]
		}
		filters := listFilters(listOptions.Status, listOptions.Query)

		records, err := cl.SearchCOEClusters(cmd.Context(), nameOrID, filters)
		if err != nil {
			return err
		}
		clusters, err := cl.NormalizeCOEClusters(records)
		if err != nil {
			return err
		}

		return cliutil.Print(cmd, clusters, func(w io.Writer) {
			if len(clusters) == 0 {
				fmt.Fprintln(w, "No clusters found.")
				return
			}
			renderClusterTable(w, clusters)
		})
	},
}

func listFilters(status, query string) *resolve.Filters {
	filters := &resolve.Filters{Query: query}
	if status != "" {
		filters.Match = map[string]interface{}{"status": status}
	}
	return filters
}

func renderClusterTable(w io.Writer, clusters []*cloud.COECluster) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"NAME", "ID", "STATUS", "MASTERS", "NODES", "TEMPLATE"})
	table.SetBorder(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, c := range clusters {
		table.Append([]string{
			c.Name(),
			c.ID(),
			cliutil.ColorizeStatus(c.Status()),
			strconv.Itoa(c.MasterCount()),
			strconv.Itoa(c.NodeCount()),
			c.TemplateID(),
		})
	}
	table.Render()
}
