package converter

import (
	"fmt"
	"html"
	"net/http"

	"github.com/plugboard/plugboard/pkg/content"
	"github.com/plugboard/plugboard/pkg/helper"
	"github.com/plugboard/plugboard/pkg/message"
)

// StatusConverter renders response statuses as minimal HTML error pages.
// Encode only; statuses are not parsed back out of HTML.
type StatusConverter struct{}

// NewStatusConverter creates a status page converter helper.
func NewStatusConverter() *StatusConverter { return &StatusConverter{} }

// Descriptor implements helper.Helper.
func (c *StatusConverter) Descriptor() helper.Descriptor {
	return helper.Descriptor{Kind: helper.KindConverter, Name: "status"}
}

// MediaTypes implements helper.ConverterHelper.
func (c *StatusConverter) MediaTypes() []string { return []string{"text/html"} }

// Decode is not supported.
func (c *StatusConverter) Decode(rep content.Representation, value any) error {
	return fmt.Errorf("%w: status pages are encode-only", helper.ErrUnsupportedValue)
}

// Encode renders a message.Status as an HTML page.
func (c *StatusConverter) Encode(value any) (content.Representation, error) {
	status, ok := value.(message.Status)
	if !ok {
		return nil, fmt.Errorf("%w: %T", helper.ErrUnsupportedValue, value)
	}
	reason := http.StatusText(int(status))
	if reason == "" {
		reason = "Unknown Status"
	}
	page := fmt.Sprintf(
		"<html>\n<head><title>Status %d</title></head>\n<body>\n<h1>%d %s</h1>\n</body>\n</html>\n",
		int(status), int(status), html.EscapeString(reason),
	)
	return content.NewString(page, "text/html"), nil
}
