package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/siereport/internal/render"
)

// Output formats.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
)

// renderers are the optional non-JSON encodings of one result.
type renderers struct {
	markdown func() string
	csv      func(io.Writer) error
}

// emit writes v in the selected format.
func (a *app) emit(cmd *cobra.Command, v any, r renderers) error {
	w := cmd.OutOrStdout()
	if a.query != "" && a.format != FormatJSON {
		return fmt.Errorf("--query needs --format %s", FormatJSON)
	}

	switch a.format {
	case FormatJSON, "":
		return writeJSON(w, v, a.query)
	case FormatMarkdown, "md":
		if r.markdown == nil {
			return fmt.Errorf("%s does not support markdown output", cmd.Name())
		}
		md := r.markdown()
		if a.pretty {
			out, err := render.Pretty(md, render.DefaultWidth)
			if err != nil {
				return err
			}
			md = out
		}
		_, err := io.WriteString(w, md)
		return err
	case FormatCSV:
		if r.csv == nil {
			return fmt.Errorf("%s does not support csv output", cmd.Name())
		}
		return r.csv(w)
	}
	return fmt.Errorf("unknown format %q", a.format)
}

func writeJSON(w io.Writer, v any, query string) error {
	if query != "" {
		selected, err := Query(v, query)
		if err != nil {
			return err
		}
		v = selected
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

// Query evaluates a JSONPath expression against the JSON form of v.
func Query(v any, path string) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding json: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("decoding json: %w", err)
	}
	out, err := jsonpath.Get(path, tree)
	if err != nil {
		return nil, fmt.Errorf("evaluating query %q: %w", path, err)
	}
	return out, nil
}
