package template

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/mensylisir/coexm/pkg/cloud"
)

// TemplateCmd represents the template command group
var TemplateCmd = &cobra.Command{
	Use:     "template",
	Aliases: []string{"templates", "cluster-template"},
	Short:   "Manage cluster templates",
	Long:    `Commands for listing, inspecting, registering and deleting cluster templates.`,
}

// AddTemplateCommand attaches the template group to the root command.
func AddTemplateCommand(rootCmd *cobra.Command) {
	rootCmd.AddCommand(TemplateCmd)
}

func renderTemplateTable(w io.Writer, templates []*cloud.ClusterTemplate) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"NAME", "ID", "COE", "IMAGE", "NETWORK DRIVER", "SERVER TYPE", "PUBLIC"})
	table.SetBorder(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, t := range templates {
		public := "no"
		if t.IsPublic() {
			public = "yes"
		}
		table.Append([]string{
			t.Name(),
			t.ID(),
			t.COE(),
			t.ImageID(),
			t.NetworkDriver(),
			t.ServerType(),
			public,
		})
	}
	table.Render()
}
