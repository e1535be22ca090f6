// Package converter implements the canonical mapping convention between
// JSON value trees and XML element trees.
//
// The convention is deliberately lossy in documented ways: all scalars
// become XML text (type information is gone), attributes map one-way into
// "@"-prefixed keys, single-element arrays collapse to scalars, and mixed
// content on structured elements is discarded.
package converter

import (
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/jsonxml/internal/config"
	"github.com/mcncl/jsonxml/internal/models"
)

// Converter performs pure, stateless tree-to-tree conversions. A single
// Converter is safe for concurrent use on independent inputs.
type Converter struct {
	config *config.Config
}

// NewConverter creates a Converter with the default mapping convention.
func NewConverter() *Converter {
	return &Converter{config: config.NewConfig()}
}

// NewConverterWithConfig creates a Converter with a custom configuration.
func NewConverterWithConfig(cfg *config.Config) *Converter {
	return &Converter{config: cfg}
}

// JSONToXML converts a JSON value tree into an XML element tree rooted at a
// synthetic wrapper element. Object pairs and array items become child
// elements of the root; a bare scalar fills the root element directly. The
// conversion is total: it cannot fail on a well-formed Value.
func (c *Converter) JSONToXML(v models.Value) *models.Node {
	root := &models.Node{Name: c.config.Conversion.RootElement}
	c.fillElement(root, v)
	return root
}

// fillElement writes the contents of v into el, recursing depth-first.
func (c *Converter) fillElement(el *models.Node, v models.Value) {
	switch v.Kind {
	case models.Object:
		c.objectToElements(el, v.Members)
	case models.Array:
		c.arrayToElements(el, v.Items)
	case models.Null:
		el.SetAttr(c.config.Conversion.NullAttribute, "true")
	case models.Bool, models.Number, models.String:
		el.Text = v.ScalarString()
	}
}

// objectToElements appends one child element per member, in insertion
// order. A repeated key overwrites the earlier child in place.
func (c *Converter) objectToElements(parent *models.Node, members []models.Member) {
	seen := make(map[string]int, len(members))
	for _, m := range members {
		child := &models.Node{Name: c.elementName(m.Key)}
		c.fillElement(child, m.Value)

		if i, ok := seen[m.Key]; ok {
			parent.Children[i] = child
			continue
		}
		seen[m.Key] = len(parent.Children)
		parent.AppendChild(child)
	}
}

// arrayToElements appends one identically named child per item. Order is
// carried by the sibling sequence alone; no index attribute is added.
func (c *Converter) arrayToElements(parent *models.Node, items []models.Value) {
	for _, item := range items {
		child := &models.Node{Name: c.config.Conversion.ItemElement}
		c.fillElement(child, item)
		parent.AppendChild(child)
	}
}

// elementName resolves a JSON object key to an element name: explicit key
// mappings win, then the configured case transform, then sanitization.
func (c *Converter) elementName(key string) string {
	if mapped, ok := c.config.Naming.KeyMappings[key]; ok {
		return SanitizeName(mapped)
	}

	switch c.config.Naming.ElementCase {
	case "snake":
		key = strcase.ToSnake(key)
	case "camel":
		key = strcase.ToLowerCamel(key)
	case "pascal":
		key = strcase.ToCamel(key)
	case "kebab":
		key = strcase.ToKebab(key)
	}

	return SanitizeName(key)
}

// textMemberKey holds the text run of an element that also carries
// attributes, since the text alone can no longer represent the element.
const textMemberKey = "value"

// XMLToJSON converts an XML element tree into a JSON value tree. The
// conversion is total: it cannot fail on a well-formed Node.
//
// A root with no element children and no attributes collapses to
// {rootName: trimmedText} so the root name survives even when nothing else
// carries it. Otherwise the root's attributes and children build an object,
// which is wrapped as {rootName: object} unless it ended up empty, in which
// case the empty object itself is returned.
func (c *Converter) XMLToJSON(root *models.Node) models.Value {
	if root.TextOnly() && len(root.Attrs) == 0 {
		return models.ObjectValue(models.Member{
			Key:   root.Name,
			Value: models.StringValue(strings.TrimSpace(root.Text)),
		})
	}

	obj := c.elementToObject(root)
	if len(obj.Members) == 0 {
		return obj
	}
	return models.ObjectValue(models.Member{Key: root.Name, Value: obj})
}

// childContent computes the JSON content of one element. A text-only node
// without attributes collapses to its trimmed text; anything else builds an
// object so attributes are never silently dropped.
func (c *Converter) childContent(child *models.Node) models.Value {
	if child.TextOnly() && len(child.Attrs) == 0 {
		return models.StringValue(strings.TrimSpace(child.Text))
	}
	return c.elementToObject(child)
}

// elementToObject builds the object for a node: attributes first as
// prefixed string pairs, then element children in document order. Repeated
// sibling names are the only XML signal for "this was an array", so the
// first occurrence is stored raw and promoted to an array when a second
// occurrence shows up. Stray text between element children is ignored;
// mixed content is not reconstructable under this convention. On a
// text-only node the text survives as a "value" member instead.
func (c *Converter) elementToObject(n *models.Node) models.Value {
	members := make([]models.Member, 0, len(n.Attrs)+len(n.Children))
	index := make(map[string]int, len(n.Attrs)+len(n.Children))

	for _, a := range n.Attrs {
		key := c.config.Conversion.AttributePrefix + a.Name
		index[key] = len(members)
		members = append(members, models.Member{Key: key, Value: models.StringValue(a.Value)})
	}

	if n.TextOnly() {
		if text := strings.TrimSpace(n.Text); text != "" {
			members = append(members, models.Member{Key: textMemberKey, Value: models.StringValue(text)})
		}
		return models.Value{Kind: models.Object, Members: members}
	}

	for _, child := range n.Children {
		content := c.childContent(child)

		i, ok := index[child.Name]
		if !ok {
			index[child.Name] = len(members)
			members = append(members, models.Member{Key: child.Name, Value: content})
			continue
		}

		existing := members[i].Value
		if existing.Kind != models.Array {
			existing = models.ArrayValue(existing)
		}
		existing.Items = append(existing.Items, content)
		members[i].Value = existing
	}

	return models.Value{Kind: models.Object, Members: members}
}
