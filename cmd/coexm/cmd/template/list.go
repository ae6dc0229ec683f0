package template

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mensylisir/coexm/cmd/coexm/cmd/cliutil"
	"github.com/mensylisir/coexm/pkg/resolve"
)

type ListOptions struct {
	COE   string
	Query string
}

var listOptions = &ListOptions{}

func init() {
	TemplateCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listOptions.COE, "coe", "", "Only show templates for this orchestration engine (e.g. kubernetes)")
	listCmd.Flags().StringVar(&listOptions.Query, "query", "", "GJSON filter expression applied to each template record")
}

var listCmd = &cobra.Command{
	Use:   "list [NAME_OR_ID]",
	Short: "List cluster templates",
	Long: `Lists cluster templates known to the cloud. An optional positional
argument narrows the listing by name or ID; shell-style globs match against both.`,
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
		filters := &resolve.Filters{Query: listOptions.Query}
		if listOptions.COE != "" {
			filters.Match = map[string]interface{}{"coe": listOptions.COE}
		}

		records, err := cl.SearchClusterTemplates(cmd.Context(), nameOrID, filters)
		if err != nil {
			return err
		}
		templates, err := cl.NormalizeClusterTemplates(records)
		if err != nil {
			return err
		}

		return cliutil.Print(cmd, templates, func(w io.Writer) {
			if len(templates) == 0 {
				fmt.Fprintln(w, "No cluster templates found.")
				return
			}
			renderTemplateTable(w, templates)
		})
	},
}
