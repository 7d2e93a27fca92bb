// Package output renders projected results and error records.
package output

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/vietdv277/rdsctl/internal/ui"
)

// Format is an output encoding
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	Text Format = "text"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case JSON, YAML, Text:
		return f, nil
	case "":
		return JSON, nil
	}
	return "", fmt.Errorf("unknown output format %q (json, yaml or text)", s)
}

// Render writes v to w in the given format
func Render(w io.Writer, format Format, v any) error {
	if format != YAML && format != Text {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		_, err = w.Write(append(data, '\n'))
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	if format == YAML {
		return renderYAML(w, data)
	}
	return renderText(w, data)
}

// renderYAML converts through a yaml.Node so field order matches the JSON form
func renderYAML(w io.Writer, data []byte) error {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return fmt.Errorf("failed to convert output to yaml: %w", err)
	}
	blockStyle(&node)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// renderText prints one "path<TAB>value" line per scalar. A bare scalar is
// printed on its own.
func renderText(w io.Writer, data []byte) error {
	theme := ui.NewTheme(w)
	root := gjson.ParseBytes(data)

	if !root.IsObject() && !root.IsArray() {
		if root.Type == gjson.Null {
			return nil
		}
		_, err := fmt.Fprintln(w, root.String())
		return err
	}

	var sb strings.Builder
	var walk func(prefix string, r gjson.Result)
	walk = func(prefix string, r gjson.Result) {
		if r.IsObject() || r.IsArray() {
			i := 0
			r.ForEach(func(k, v gjson.Result) bool {
				key := k.String()
				if r.IsArray() {
					key = fmt.Sprint(i)
				}
				i++
				if prefix != "" {
					key = prefix + "." + key
				}
				walk(key, v)
				return true
			})
			return
		}
		if r.Type == gjson.Null {
			return
		}
		sb.WriteString(theme.Key.Render(prefix))
		sb.WriteString("\t")
		sb.WriteString(theme.Value.Render(r.String()))
		sb.WriteString("\n")
	}
	walk("", root)

	_, err := io.WriteString(w, sb.String())
	return err
}
