package cmdutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/cli/go-gh/v2/pkg/jq"
	"github.com/go-faster/errors"
	"github.com/yacchi/mdsummary/internal/ui"
	"gopkg.in/yaml.v3"
)

// JSONOutputOptions holds options for JSON output with optional jq filtering.
type JSONOutputOptions struct {
	JQFilter string // jq filter expression
	Pretty   bool   // Pretty-print output
}

// OutputJSON outputs data as JSON with optional jq filtering.
func OutputJSON(w io.Writer, data any, opts JSONOutputOptions) error {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "failed to marshal data")
	}

	if opts.JQFilter != "" {
		return applyJQFilter(w, jsonBytes, opts.JQFilter, opts.Pretty)
	}

	if opts.Pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, jsonBytes, "", "  "); err != nil {
			return errors.Wrap(err, "failed to indent JSON")
		}
		jsonBytes = buf.Bytes()
	}

	if _, err := w.Write(jsonBytes); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w)
	return err
}

// applyJQFilter applies a jq filter to JSON data.
func applyJQFilter(w io.Writer, jsonBytes []byte, filter string, colorize bool) error {
	input := bytes.NewReader(jsonBytes)
	useColor := colorize && ui.IsColorEnabled()
	if err := jq.EvaluateFormatted(input, w, filter, "  ", useColor); err != nil {
		return errors.Wrapf(err, "jq filter %q", filter)
	}
	return nil
}

// OutputYAML outputs data as YAML.
func OutputYAML(w io.Writer, data any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return errors.Wrap(err, "failed to encode YAML")
	}
	return enc.Close()
}
