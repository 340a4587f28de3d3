package converter

import (
	"fmt"
	"io"

	"github.com/beevik/etree"

	"github.com/plugboard/plugboard/pkg/content"
	"github.com/plugboard/plugboard/pkg/helper"
)

// XMLConverter converts between XML representations and etree documents.
type XMLConverter struct{}

// NewXMLConverter creates an XML converter helper.
func NewXMLConverter() *XMLConverter { return &XMLConverter{} }

// Descriptor implements helper.Helper.
func (c *XMLConverter) Descriptor() helper.Descriptor {
	return helper.Descriptor{Kind: helper.KindConverter, Name: "xml"}
}

// MediaTypes implements helper.ConverterHelper.
func (c *XMLConverter) MediaTypes() []string {
	return []string{"application/xml", "text/xml"}
}

// Decode parses the representation's XML into a *etree.Document target.
func (c *XMLConverter) Decode(rep content.Representation, value any) error {
	target, ok := value.(*etree.Document)
	if !ok {
		return fmt.Errorf("%w: %T", helper.ErrUnsupportedValue, value)
	}
	stream, err := rep.Stream()
	if err != nil {
		return err
	}
	defer func() { _ = stream.Close() }()
	data, err := io.ReadAll(stream)
	if err != nil {
		return err
	}
	return target.ReadFromBytes(data)
}

// Encode serializes an *etree.Document as XML.
func (c *XMLConverter) Encode(value any) (content.Representation, error) {
	doc, ok := value.(*etree.Document)
	if !ok {
		return nil, fmt.Errorf("%w: %T", helper.ErrUnsupportedValue, value)
	}
	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, err
	}
	return content.NewBytes(data, "application/xml"), nil
}
