package converter

import (
	"fmt"
	"io"

	"github.com/plugboard/plugboard/pkg/content"
	"github.com/plugboard/plugboard/pkg/helper"
)

// DefaultConverter handles the trivial cases: strings, byte slices and
// representations themselves. It is the converter of last resort.
type DefaultConverter struct{}

// NewDefaultConverter creates the fallback converter.
func NewDefaultConverter() *DefaultConverter { return &DefaultConverter{} }

// Descriptor implements helper.Helper.
func (c *DefaultConverter) Descriptor() helper.Descriptor {
	return helper.Descriptor{Kind: helper.KindConverter, Name: "default"}
}

// MediaTypes implements helper.ConverterHelper. The default converter
// accepts any media type.
func (c *DefaultConverter) MediaTypes() []string { return []string{"*/*"} }

// Decode reads the representation into a *string, *[]byte or
// *content.Representation target.
func (c *DefaultConverter) Decode(rep content.Representation, value any) error {
	switch target := value.(type) {
	case *string:
		text, err := rep.Text()
		if err != nil {
			return err
		}
		*target = text
		return nil
	case *[]byte:
		stream, err := rep.Stream()
		if err != nil {
			return err
		}
		defer func() { _ = stream.Close() }()
		data, err := io.ReadAll(stream)
		if err != nil {
			return err
		}
		*target = data
		return nil
	case *content.Representation:
		*target = rep
		return nil
	default:
		return fmt.Errorf("%w: %T", helper.ErrUnsupportedValue, value)
	}
}

// Encode wraps strings and byte slices; representations pass through.
func (c *DefaultConverter) Encode(value any) (content.Representation, error) {
	switch v := value.(type) {
	case string:
		return content.NewString(v, "text/plain"), nil
	case []byte:
		return content.NewBytes(v, "application/octet-stream"), nil
	case content.Representation:
		return v, nil
	default:
		return nil, fmt.Errorf("%w: %T", helper.ErrUnsupportedValue, value)
	}
}
