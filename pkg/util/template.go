package util

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// RenderTemplate executes tmplStr against data with the sprig function map.
// Missing keys are errors so a typo in an output template fails loudly
// instead of printing "<no value>".
func RenderTemplate(tmplStr string, data interface{}) (string, error) {
	tmpl, err := template.New("render").
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}
