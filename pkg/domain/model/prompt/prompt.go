package prompt

import (
	"bytes"
	"context"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
)

// Generate renders a prompt template with the given data. Data is passed
// directly to the template so fields and map keys are accessible as-is.
func Generate(ctx context.Context, tmpl string, data map[string]any) (string, error) {
	builtTemplate, err := template.New("prompt").Parse(tmpl)
	if err != nil {
		return "", goerr.Wrap(err, "failed to parse template")
	}

	var buf bytes.Buffer
	if err := builtTemplate.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to execute template")
	}
	return buf.String(), nil
}
