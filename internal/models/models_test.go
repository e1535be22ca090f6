package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{Null, "Null"},
		{Bool, "Bool"},
		{Number, "Number"},
		{String, "String"},
		{Object, "Object"},
		{Array, "Array"},
		{Kind(99), "<unknown kind>"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.kind.String())
	}
}

func TestValue_ScalarString(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		expected string
	}{
		{"true bool", BoolValue(true), "true"},
		{"false bool", BoolValue(false), "false"},
		{"integer", NumberValue(json.Number("42")), "42"},
		{"decimal keeps original form", NumberValue(json.Number("3.1400")), "3.1400"},
		{"string", StringValue("hello"), "hello"},
		{"null has no text", NullValue(), ""},
		{"object has no text", ObjectValue(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.value.ScalarString())
		})
	}
}

func TestValue_IsScalar(t *testing.T) {
	assert.True(t, NullValue().IsScalar())
	assert.True(t, BoolValue(true).IsScalar())
	assert.True(t, NumberValue(json.Number("1")).IsScalar())
	assert.True(t, StringValue("x").IsScalar())
	assert.False(t, ObjectValue().IsScalar())
	assert.False(t, ArrayValue().IsScalar())
}

func TestNode_TextOnly(t *testing.T) {
	leaf := &Node{Name: "name", Text: "John"}
	assert.True(t, leaf.TextOnly())

	// Attributes do not affect the classification
	leaf.SetAttr("id", "1")
	assert.True(t, leaf.TextOnly())

	parent := &Node{Name: "person"}
	parent.AppendChild(leaf)
	assert.False(t, parent.TextOnly())
}

func TestNode_SetAttr_OverwritesDuplicates(t *testing.T) {
	n := &Node{Name: "x"}
	n.SetAttr("null", "true")
	n.SetAttr("other", "1")
	n.SetAttr("null", "false")

	assert.Len(t, n.Attrs, 2)
	v, ok := n.Attr("null")
	assert.True(t, ok)
	assert.Equal(t, "false", v)

	_, ok = n.Attr("missing")
	assert.False(t, ok)
}
