package cliutil

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/mensylisir/coexm/pkg/common"
	"github.com/mensylisir/coexm/pkg/util"
)

// Output formats accepted by the global -o flag.
const (
	FormatTable    = "table"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatTemplate = "template"
)

// Print renders v in the format selected by -o. renderTable draws the
// human-readable default; the other formats serialize v itself, so table
// columns and structured output can diverge.
func Print(cmd *cobra.Command, v interface{}, renderTable func(w io.Writer)) error {
	w := cmd.OutOrStdout()
	switch format := FlagString(cmd, "output"); format {
	case "", FormatTable:
		renderTable(w)
		return nil
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal output")
		}
		fmt.Fprintln(w, string(data))
		return nil
	case FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return errors.Wrap(err, "failed to marshal output")
		}
		fmt.Fprint(w, string(data))
		return nil
	case FormatTemplate:
		tmplStr := FlagString(cmd, "template")
		if tmplStr == "" {
			return errors.New("-o template requires --template")
		}
		doc, err := genericize(v)
		if err != nil {
			return err
		}
		rendered, err := util.RenderTemplate(tmplStr, doc)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, rendered)
		return nil
	default:
		return errors.Errorf("unsupported output format %q (want table, json, yaml or template)", format)
	}
}

// genericize round-trips v through JSON so templates see plain maps and
// slices regardless of the concrete record types underneath.
func genericize(v interface{}) (interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal output")
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode output document")
	}
	return doc, nil
}

// ColorizeStatus paints cluster lifecycle states: green when settled, yellow
// while in flight, red on failure.
func ColorizeStatus(status string) string {
	switch {
	case common.IsFailedStatus(status):
		return color.RedString(status)
	case strings.HasSuffix(status, "_COMPLETE"):
		return color.GreenString(status)
	case strings.HasSuffix(status, "_IN_PROGRESS"):
		return color.YellowString(status)
	}
	return status
}

// ColorizeState paints service registry states (up/down).
func ColorizeState(state string) string {
	switch state {
	case common.ServiceStateUp:
		return color.GreenString(state)
	case common.ServiceStateDown:
		return color.RedString(state)
	}
	return state
}
