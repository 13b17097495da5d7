// Package jsondata extracts sample values from JSON documents with gjson
// paths, so test data can come straight from an API response or an export.
package jsondata

import (
	"fmt"
	"os"

	"gofit/internal/errors"
	"gofit/internal/gof"

	"github.com/tidwall/gjson"
)

// ReadSamples returns the numbers at path in body. The path must resolve to
// an array (for example "results.#.value"); an empty path selects the whole
// document. Numeric strings are accepted, anything else is an input error.
func ReadSamples(body []byte, path string) ([]float64, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.InvalidInput("invalid JSON document")
	}
	if path == "" {
		path = "@this"
	}

	result := gjson.GetBytes(body, path)
	if !result.Exists() {
		return nil, errors.InvalidInput(fmt.Sprintf("data path '%s' not found", path))
	}
	if !result.IsArray() {
		return nil, errors.InvalidInput(fmt.Sprintf("data path '%s' is not an array", path))
	}

	elements := result.Array()
	if len(elements) == 0 {
		return nil, errors.InvalidInput(fmt.Sprintf("data path '%s' is empty", path))
	}
	values := make([]float64, len(elements))
	for i, element := range elements {
		switch element.Type {
		case gjson.Number:
			values[i] = element.Float()
		case gjson.String:
			v, err := gof.ParseValue(element.Str)
			if err != nil {
				return nil, errors.Wrapf(err, "element %d of '%s'", i, path)
			}
			values[i] = v
		default:
			return nil, errors.InvalidInput(fmt.Sprintf("element %d of '%s' is not a number: %s", i, path, element.Raw))
		}
	}
	return values, nil
}

// ReadFile reads a JSON file and extracts the samples at path.
func ReadFile(filePath, path string) ([]float64, error) {
	body, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.InvalidInput("JSON file not found: " + filePath)
		}
		return nil, errors.Wrap(err, "failed to read JSON file")
	}
	values, err := ReadSamples(body, path)
	if err != nil {
		return nil, errors.Wrap(err, filePath)
	}
	return values, nil
}
