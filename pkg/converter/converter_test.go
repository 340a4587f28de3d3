package converter

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plugboard/plugboard/pkg/content"
	"github.com/plugboard/plugboard/pkg/helper"
	"github.com/plugboard/plugboard/pkg/message"
)

func TestDefaultConverter(t *testing.T) {
	t.Parallel()

	c := NewDefaultConverter()

	t.Run("decodes into string", func(t *testing.T) {
		t.Parallel()
		var s string
		err := c.Decode(content.NewString("plain text", "text/plain"), &s)
		require.NoError(t, err)
		assert.Equal(t, "plain text", s)
	})

	t.Run("decodes into byte slice", func(t *testing.T) {
		t.Parallel()
		var b []byte
		err := c.Decode(content.NewBytes([]byte{1, 2, 3}, "application/octet-stream"), &b)
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 3}, b)
	})

	t.Run("passes representations through", func(t *testing.T) {
		t.Parallel()
		rep := content.NewString("x", "text/plain")
		out, err := c.Encode(rep)
		require.NoError(t, err)
		assert.Same(t, content.Representation(rep), out)
	})

	t.Run("rejects unsupported targets", func(t *testing.T) {
		t.Parallel()
		var n int
		err := c.Decode(content.NewString("5", "text/plain"), &n)
		assert.ErrorIs(t, err, helper.ErrUnsupportedValue)

		_, err = c.Encode(struct{}{})
		assert.ErrorIs(t, err, helper.ErrUnsupportedValue)
	})
}

func TestJSONConverter(t *testing.T) {
	t.Parallel()

	c := NewJSONConverter()

	t.Run("decodes a document", func(t *testing.T) {
		t.Parallel()
		rep := content.NewString(`{"name":"plug","count":3}`, "application/json")
		var value map[string]any
		require.NoError(t, c.Decode(rep, &value))
		assert.Equal(t, "plug", value["name"])
	})

	t.Run("encodes a value", func(t *testing.T) {
		t.Parallel()
		rep, err := c.Encode(map[string]any{"ok": true})
		require.NoError(t, err)
		assert.Equal(t, "application/json", rep.MediaType())
		text, err := rep.Text()
		require.NoError(t, err)
		assert.JSONEq(t, `{"ok":true}`, text)
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		t.Parallel()
		var value map[string]any
		err := c.Decode(content.NewString(`{"broken`, "application/json"), &value)
		assert.Error(t, err)
	})
}

func TestXMLConverter(t *testing.T) {
	t.Parallel()

	c := NewXMLConverter()

	t.Run("round trips a document", func(t *testing.T) {
		t.Parallel()
		doc := etree.NewDocument()
		root := doc.CreateElement("plug")
		root.SetText("board")

		rep, err := c.Encode(doc)
		require.NoError(t, err)
		assert.Equal(t, "application/xml", rep.MediaType())

		parsed := etree.NewDocument()
		require.NoError(t, c.Decode(rep, parsed))
		require.NotNil(t, parsed.Root())
		assert.Equal(t, "plug", parsed.Root().Tag)
		assert.Equal(t, "board", parsed.Root().Text())
	})

	t.Run("rejects non-document values", func(t *testing.T) {
		t.Parallel()
		_, err := c.Encode("not a document")
		assert.ErrorIs(t, err, helper.ErrUnsupportedValue)

		var s string
		err = c.Decode(content.NewString("<x/>", "application/xml"), &s)
		assert.ErrorIs(t, err, helper.ErrUnsupportedValue)
	})
}

func TestStatusConverter(t *testing.T) {
	t.Parallel()

	c := NewStatusConverter()

	t.Run("renders a status page", func(t *testing.T) {
		t.Parallel()
		rep, err := c.Encode(message.StatusNotFound)
		require.NoError(t, err)
		assert.Equal(t, "text/html", rep.MediaType())
		text, err := rep.Text()
		require.NoError(t, err)
		assert.Contains(t, text, "404 Not Found")
	})

	t.Run("decode is unsupported", func(t *testing.T) {
		t.Parallel()
		err := c.Decode(content.NewString("<html/>", "text/html"), new(message.Status))
		assert.ErrorIs(t, err, helper.ErrUnsupportedValue)
	})
}
