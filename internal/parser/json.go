// Package parser turns raw JSON and XML text into the tree models. It is
// the failure boundary of the pipeline: the converters downstream are total,
// so anything malformed must be rejected here.
package parser

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcncl/jsonxml/internal/errors"
	"github.com/mcncl/jsonxml/internal/models"
)

// ParseJSON decodes a single JSON document from reader into a Value tree.
// Object member order is preserved, which is why this walks the decoder's
// token stream instead of unmarshalling into maps. Numbers keep their
// original decimal form. The top-level value must be an object or an array.
func ParseJSON(reader io.Reader) (models.Value, error) {
	dec := json.NewDecoder(reader)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return models.Value{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		return models.Value{}, wrapJSONError(err)
	}

	delim, ok := tok.(json.Delim)
	if !ok || (delim != '{' && delim != '[') {
		return models.Value{}, errors.NewParsingError(
			fmt.Sprintf("top-level JSON value must be an object or array, got %v", tok),
			errors.ErrInvalidJSON,
		)
	}

	value, err := parseContainer(dec, delim)
	if err != nil {
		return models.Value{}, err
	}

	// Anything but EOF after the first document means trailing data
	if _, err := dec.Token(); !stderrors.Is(err, io.EOF) {
		if err != nil {
			return models.Value{}, errors.NewParsingError("invalid trailing data after first JSON value", err)
		}
		return models.Value{}, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	}

	return value, nil
}

// parseContainer decodes the remainder of an object or array whose opening
// delimiter has already been consumed.
func parseContainer(dec *json.Decoder, open json.Delim) (models.Value, error) {
	if open == '{' {
		return parseObject(dec)
	}
	return parseArray(dec)
}

func parseObject(dec *json.Decoder) (models.Value, error) {
	var members []models.Member
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return models.Value{}, wrapJSONError(err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return models.Value{}, errors.NewParsingError(
				fmt.Sprintf("object key must be a string, got %v", keyTok),
				errors.ErrInvalidJSON,
			)
		}

		value, err := parseNext(dec)
		if err != nil {
			return models.Value{}, err
		}
		members = append(members, models.Member{Key: key, Value: value})
	}

	// Consume the closing '}'
	if _, err := dec.Token(); err != nil {
		return models.Value{}, wrapJSONError(err)
	}
	return models.Value{Kind: models.Object, Members: members}, nil
}

func parseArray(dec *json.Decoder) (models.Value, error) {
	var items []models.Value
	for dec.More() {
		item, err := parseNext(dec)
		if err != nil {
			return models.Value{}, err
		}
		items = append(items, item)
	}

	// Consume the closing ']'
	if _, err := dec.Token(); err != nil {
		return models.Value{}, wrapJSONError(err)
	}
	return models.Value{Kind: models.Array, Items: items}, nil
}

// parseNext decodes the next value of any kind from the token stream.
func parseNext(dec *json.Decoder) (models.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return models.Value{}, wrapJSONError(err)
	}

	switch t := tok.(type) {
	case json.Delim:
		return parseContainer(dec, t)
	case string:
		return models.StringValue(t), nil
	case json.Number:
		return models.NumberValue(t), nil
	case bool:
		return models.BoolValue(t), nil
	case nil:
		return models.NullValue(), nil
	default:
		return models.Value{}, errors.NewParsingError(
			fmt.Sprintf("unexpected JSON token %v", tok),
			errors.ErrInvalidJSON,
		)
	}
}

// wrapJSONError converts decoder failures into parsing errors with useful
// positions where available.
func wrapJSONError(err error) error {
	if stderrors.Is(err, io.EOF) || stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
	}
	var syntaxError *json.SyntaxError
	if stderrors.As(err, &syntaxError) {
		return errors.NewParsingError(
			fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
			errors.ErrInvalidJSON,
		)
	}
	return errors.NewParsingError("failed to decode JSON", err)
}

// ParseJSONString parses JSON from a string
func ParseJSONString(jsonString string) (models.Value, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.Value{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return ParseJSON(strings.NewReader(jsonString))
}

// ParseJSONFile parses JSON from a file path
func ParseJSONFile(filePath string) (models.Value, error) {
	file, err := openInputFile(filePath)
	if err != nil {
		return models.Value{}, err
	}
	defer closeInputFile(file)

	return ParseJSON(file)
}

// openInputFile opens a file for parsing with the usual preflight checks:
// non-empty path, existence, and non-empty content.
func openInputFile(filePath string) (*os.File, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}

	stat, err := file.Stat()
	if err != nil {
		closeInputFile(file)
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		closeInputFile(file)
		return nil, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return file, nil
}

func closeInputFile(file *os.File) {
	if err := file.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
	}
}
