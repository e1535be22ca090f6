package parser

import (
	"encoding/xml"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/mcncl/jsonxml/internal/errors"
	"github.com/mcncl/jsonxml/internal/models"
)

// ParseXML decodes an XML document from reader into a Node tree rooted at
// the document's single root element. Namespaces are flattened to local
// names; processing instructions, comments and directives are skipped.
// Character data accumulates on the enclosing element's Text, including on
// elements that also have element children (the converter decides what to
// do with mixed content, not the parser).
func ParseXML(reader io.Reader) (*models.Node, error) {
	dec := xml.NewDecoder(reader)

	var root *models.Node
	var stack []*models.Node

	for {
		tok, err := dec.Token()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.NewParsingError(
				fmt.Sprintf("XML syntax error: %v", err),
				errors.ErrInvalidXML,
			)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &models.Node{Name: t.Name.Local}
			for _, a := range t.Attr {
				// xmlns declarations are namespace plumbing, not data
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				node.SetAttr(a.Name.Local, a.Value)
			}

			if len(stack) == 0 {
				if root != nil {
					return nil, errors.NewParsingError(
						"document has more than one root element",
						errors.ErrMultipleRoots,
					)
				}
				root = node
			} else {
				stack[len(stack)-1].AppendChild(node)
			}
			stack = append(stack, node)

		case xml.EndElement:
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, errors.NewParsingError("document has no root element", errors.ErrEmptyInput)
	}
	return root, nil
}

// ParseXMLString parses XML from a string
func ParseXMLString(xmlString string) (*models.Node, error) {
	if strings.TrimSpace(xmlString) == "" {
		return nil, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return ParseXML(strings.NewReader(xmlString))
}

// ParseXMLFile parses XML from a file path
func ParseXMLFile(filePath string) (*models.Node, error) {
	file, err := openInputFile(filePath)
	if err != nil {
		return nil, err
	}
	defer closeInputFile(file)

	return ParseXML(file)
}
