package converter

import (
	"io"

	"github.com/ohler55/ojg/oj"

	"github.com/plugboard/plugboard/pkg/content"
	"github.com/plugboard/plugboard/pkg/helper"
)

// JSONConverter converts between JSON representations and Go values.
type JSONConverter struct{}

// NewJSONConverter creates a JSON converter helper.
func NewJSONConverter() *JSONConverter { return &JSONConverter{} }

// Descriptor implements helper.Helper.
func (c *JSONConverter) Descriptor() helper.Descriptor {
	return helper.Descriptor{Kind: helper.KindConverter, Name: "json"}
}

// MediaTypes implements helper.ConverterHelper.
func (c *JSONConverter) MediaTypes() []string {
	return []string{"application/json", "text/json"}
}

// Decode parses the representation's JSON into value.
func (c *JSONConverter) Decode(rep content.Representation, value any) error {
	stream, err := rep.Stream()
	if err != nil {
		return err
	}
	defer func() { _ = stream.Close() }()
	data, err := io.ReadAll(stream)
	if err != nil {
		return err
	}
	return oj.Unmarshal(data, value)
}

// Encode serializes value as JSON.
func (c *JSONConverter) Encode(value any) (content.Representation, error) {
	data, err := oj.Marshal(value)
	if err != nil {
		return nil, err
	}
	return content.NewBytes(data, "application/json"), nil
}
