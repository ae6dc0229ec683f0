package service

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/mensylisir/coexm/cmd/coexm/cmd/cliutil"
	"github.com/mensylisir/coexm/pkg/cloud"
)

func init() {
	ServiceCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List Magnum services",
	Long:  `Lists the control-plane services reported by the cluster API, one row per binary and host.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cl, err := cliutil.Connect(cmd)
		if err != nil {
			return err
		}

		services, err := cl.ListMagnumServices(cmd.Context())
		if err != nil {
			return err
		}

		return cliutil.Print(cmd, services, func(w io.Writer) {
			if len(services) == 0 {
				fmt.Fprintln(w, "No services reported.")
				return
			}
			renderServiceTable(w, services)
		})
	},
}

func renderServiceTable(w io.Writer, services []*cloud.MagnumService) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"BINARY", "ID", "HOST", "STATE", "REPORT COUNT", "UPDATED", "DISABLED REASON"})
	table.SetBorder(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, s := range services {
		updated := ""
		if v, ok := s.Field("updated_at"); ok && v != nil {
			updated = fmt.Sprintf("%v", v)
		}
		table.Append([]string{
			s.Binary(),
			strconv.Itoa(s.ID()),
			s.Host(),
			cliutil.ColorizeState(s.State()),
			strconv.Itoa(s.ReportCount()),
			updated,
			s.DisabledReason(),
		})
	}
	table.Render()
}
