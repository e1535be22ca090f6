// Package models defines the in-memory trees the converters operate on:
// Value for JSON data and Node for XML elements.
package models

import (
	"encoding/json"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Object
	Array
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Null:
		return "Null"
	case Bool:
		return "Bool"
	case Number:
		return "Number"
	case String:
		return "String"
	case Object:
		return "Object"
	case Array:
		return "Array"
	default:
		return "<unknown kind>"
	}
}

// Value is one node of a JSON data tree. Exactly one of the payload fields
// is meaningful, selected by Kind. Object members keep their insertion
// order; a Go map cannot represent that, which is why this is not a
// map-based model.
type Value struct {
	Kind    Kind
	BoolVal bool
	Num     json.Number // decimal representation preserved verbatim
	Str     string
	Members []Member // Object only, ordered
	Items   []Value  // Array only, ordered
}

// Member is one (key, value) pair of an Object. Keys are not required to be
// unique; the JSON to XML converter treats a repeated key as an overwrite.
type Member struct {
	Key   string
	Value Value
}

// NullValue returns the JSON null value.
func NullValue() Value {
	return Value{Kind: Null}
}

// BoolValue returns a JSON boolean.
func BoolValue(b bool) Value {
	return Value{Kind: Bool, BoolVal: b}
}

// NumberValue returns a JSON number carrying its original textual form.
func NumberValue(n json.Number) Value {
	return Value{Kind: Number, Num: n}
}

// StringValue returns a JSON string.
func StringValue(s string) Value {
	return Value{Kind: String, Str: s}
}

// ObjectValue returns a JSON object with the given members, in order.
func ObjectValue(members ...Member) Value {
	return Value{Kind: Object, Members: members}
}

// ArrayValue returns a JSON array with the given items, in order.
func ArrayValue(items ...Value) Value {
	return Value{Kind: Array, Items: items}
}

// IsScalar reports whether the value is a leaf (null, bool, number or
// string) as opposed to an object or array.
func (v Value) IsScalar() bool {
	switch v.Kind {
	case Object, Array:
		return false
	default:
		return true
	}
}

// ScalarString returns the canonical textual form of a non-null scalar:
// booleans as "true"/"false", numbers in their original decimal form,
// strings unchanged. It returns "" for any other kind.
func (v Value) ScalarString() string {
	switch v.Kind {
	case Bool:
		return strconv.FormatBool(v.BoolVal)
	case Number:
		return v.Num.String()
	case String:
		return v.Str
	default:
		return ""
	}
}

// Node is one element of an XML tree. Children holds element children only,
// in document order; character data is accumulated into Text. A node with
// element children is "structured" and its Text is ignored by the mapping
// convention (mixed content is intentionally lossy).
type Node struct {
	Name     string
	Attrs    []Attr
	Children []*Node
	Text     string
}

// Attr is a single XML attribute.
type Attr struct {
	Name  string
	Value string
}

// TextOnly reports whether the node has no element children. Attributes do
// not affect this classification.
func (n *Node) TextOnly() bool {
	return len(n.Children) == 0
}

// SetAttr sets an attribute, overwriting an existing attribute of the same
// name so attribute names stay unique.
func (n *Node) SetAttr(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// Attr returns the value of the named attribute and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AppendChild appends an element child, keeping document order.
func (n *Node) AppendChild(child *Node) {
	n.Children = append(n.Children, child)
}
