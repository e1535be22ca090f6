// Package formatter renders Value and Node trees back to JSON and XML text.
package formatter

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/mcncl/jsonxml/internal/config"
	"github.com/mcncl/jsonxml/internal/errors"
	"github.com/mcncl/jsonxml/internal/models"
)

const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>`

// Formatter renders trees to indented text. The indent width and XML
// declaration come from configuration; the default is 4 spaces with the
// declaration on.
type Formatter struct {
	config *config.Config
}

// NewFormatter creates a Formatter with default settings
func NewFormatter() *Formatter {
	return &Formatter{config: config.NewConfig()}
}

// NewFormatterWithConfig creates a Formatter with custom settings
func NewFormatterWithConfig(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg}
}

// FormatJSON renders a Value tree as indented JSON text. Object members
// render in their stored order. No trailing newline is added.
func (f *Formatter) FormatJSON(v models.Value) (string, error) {
	var b strings.Builder
	if err := f.writeJSONValue(&b, v, 0); err != nil {
		return "", errors.NewRenderError("failed to render JSON", err)
	}
	return b.String(), nil
}

func (f *Formatter) writeJSONValue(b *strings.Builder, v models.Value, depth int) error {
	switch v.Kind {
	case models.Null:
		b.WriteString("null")
	case models.Bool, models.Number:
		b.WriteString(v.ScalarString())
	case models.String:
		return writeJSONString(b, v.Str)
	case models.Object:
		return f.writeJSONObject(b, v.Members, depth)
	case models.Array:
		return f.writeJSONArray(b, v.Items, depth)
	default:
		return fmt.Errorf("unknown value kind %v", v.Kind)
	}
	return nil
}

func (f *Formatter) writeJSONObject(b *strings.Builder, members []models.Member, depth int) error {
	if len(members) == 0 {
		b.WriteString("{}")
		return nil
	}

	b.WriteString("{\n")
	for i, m := range members {
		b.WriteString(f.pad(depth + 1))
		if err := writeJSONString(b, m.Key); err != nil {
			return err
		}
		b.WriteString(": ")
		if err := f.writeJSONValue(b, m.Value, depth+1); err != nil {
			return err
		}
		if i < len(members)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(f.pad(depth))
	b.WriteString("}")
	return nil
}

func (f *Formatter) writeJSONArray(b *strings.Builder, items []models.Value, depth int) error {
	if len(items) == 0 {
		b.WriteString("[]")
		return nil
	}

	b.WriteString("[\n")
	for i, item := range items {
		b.WriteString(f.pad(depth + 1))
		if err := f.writeJSONValue(b, item, depth+1); err != nil {
			return err
		}
		if i < len(items)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(f.pad(depth))
	b.WriteString("]")
	return nil
}

// writeJSONString writes s as a quoted, escaped JSON string
func writeJSONString(b *strings.Builder, s string) error {
	quoted, err := json.Marshal(s)
	if err != nil {
		return err
	}
	b.Write(quoted)
	return nil
}

// FormatXML renders a Node tree as indented XML text, one element per line,
// preceded by the XML declaration when configured. Elements without element
// children render as <name>text</name>; element text on structured nodes is
// not rendered (the mapping convention discards mixed content). No trailing
// newline is added.
func (f *Formatter) FormatXML(root *models.Node) (string, error) {
	var b strings.Builder
	if f.config.Output.XMLDeclaration {
		b.WriteString(xmlDeclaration)
		b.WriteString("\n")
	}
	if err := f.writeXMLElement(&b, root, 0); err != nil {
		return "", errors.NewRenderError("failed to render XML", err)
	}
	return b.String(), nil
}

func (f *Formatter) writeXMLElement(b *strings.Builder, n *models.Node, depth int) error {
	pad := f.pad(depth)
	b.WriteString(pad)
	b.WriteString("<")
	b.WriteString(n.Name)
	for _, a := range n.Attrs {
		b.WriteString(" ")
		b.WriteString(a.Name)
		b.WriteString(`="`)
		if err := xml.EscapeText(b, []byte(a.Value)); err != nil {
			return err
		}
		b.WriteString(`"`)
	}
	b.WriteString(">")

	if n.TextOnly() {
		if err := xml.EscapeText(b, []byte(n.Text)); err != nil {
			return err
		}
		b.WriteString("</")
		b.WriteString(n.Name)
		b.WriteString(">")
		return nil
	}

	for _, child := range n.Children {
		b.WriteString("\n")
		if err := f.writeXMLElement(b, child, depth+1); err != nil {
			return err
		}
	}
	b.WriteString("\n")
	b.WriteString(pad)
	b.WriteString("</")
	b.WriteString(n.Name)
	b.WriteString(">")
	return nil
}

func (f *Formatter) pad(depth int) string {
	return strings.Repeat(" ", depth*f.config.Output.Indent)
}
