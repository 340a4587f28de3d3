package content

import (
	"bytes"
	"io"
	"strings"
	"sync"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// SizeUnknown is returned by Size when the byte size cannot be determined
// without consuming the content.
const SizeUnknown int64 = -1

// Representation is a piece of content with a media type.
//
// Stream returns a fresh reader over the bytes; for one-shot sources the
// second call may find the content no longer available. Text decodes the
// bytes using the declared character set.
type Representation interface {
	// MediaType returns the media type of the content, e.g. "application/json".
	MediaType() string

	// CharacterSet returns the declared character set, or "" for UTF-8.
	CharacterSet() string

	// Available reports whether the content can currently be read.
	Available() bool

	// Size returns the exact byte size, or SizeUnknown.
	Size() int64

	// Stream returns a fresh byte stream over the content.
	Stream() (io.ReadCloser, error)

	// Text returns the content decoded as text.
	Text() (string, error)

	// WriteTo writes the raw bytes to the sink.
	WriteTo(w io.Writer) (int64, error)

	// WriteText writes the decoded text to the sink.
	WriteText(w io.Writer) error
}

// decodeText decodes data using the named character set.
// An empty name or any UTF-8 alias decodes as-is.
func decodeText(data []byte, charset string) (string, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
		return string(data), nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", err
	}
	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), enc.NewDecoder()))
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// Bytes is an in-memory byte representation. It is always available and
// every Stream call returns an independent reader.
type Bytes struct {
	data      []byte
	mediaType string
	charset   string
}

// NewBytes creates a byte representation.
func NewBytes(data []byte, mediaType string) *Bytes {
	return &Bytes{data: data, mediaType: mediaType}
}

// NewString creates a byte representation from a string.
func NewString(s, mediaType string) *Bytes {
	return &Bytes{data: []byte(s), mediaType: mediaType}
}

// SetCharacterSet sets the declared character set.
func (b *Bytes) SetCharacterSet(charset string) { b.charset = charset }

func (b *Bytes) MediaType() string    { return b.mediaType }
func (b *Bytes) CharacterSet() string { return b.charset }
func (b *Bytes) Available() bool      { return b.data != nil }
func (b *Bytes) Size() int64          { return int64(len(b.data)) }

func (b *Bytes) Stream() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.data)), nil
}

func (b *Bytes) Text() (string, error) {
	return decodeText(b.data, b.charset)
}

func (b *Bytes) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.data)
	return int64(n), err
}

func (b *Bytes) WriteText(w io.Writer) error {
	text, err := b.Text()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text)
	return err
}

// Reader is a one-shot representation over an io.Reader, typically a
// network response body. It is available until consumed or closed.
type Reader struct {
	mu        sync.Mutex
	src       io.ReadCloser
	size      int64
	mediaType string
	charset   string
	consumed  bool
}

// NewReader creates a one-shot representation. size may be SizeUnknown.
func NewReader(src io.ReadCloser, size int64, mediaType string) *Reader {
	return &Reader{src: src, size: size, mediaType: mediaType}
}

// SetCharacterSet sets the declared character set.
func (r *Reader) SetCharacterSet(charset string) { r.charset = charset }

func (r *Reader) MediaType() string    { return r.mediaType }
func (r *Reader) CharacterSet() string { return r.charset }

func (r *Reader) Available() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src != nil && !r.consumed
}

func (r *Reader) Size() int64 { return r.size }

// Stream hands out the underlying reader. The caller owns closing it;
// a second call fails because the content is gone.
func (r *Reader) Stream() (io.ReadCloser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.src == nil || r.consumed {
		return nil, ErrNotAvailable
	}
	r.consumed = true
	return r.src, nil
}

func (r *Reader) Text() (string, error) {
	stream, err := r.Stream()
	if err != nil {
		return "", err
	}
	defer func() { _ = stream.Close() }()
	data, err := io.ReadAll(stream)
	if err != nil {
		return "", err
	}
	return decodeText(data, r.charset)
}

func (r *Reader) WriteTo(w io.Writer) (int64, error) {
	stream, err := r.Stream()
	if err != nil {
		return 0, err
	}
	defer func() { _ = stream.Close() }()
	return io.Copy(w, stream)
}

func (r *Reader) WriteText(w io.Writer) error {
	text, err := r.Text()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text)
	return err
}

// Error is a simple error type for content errors.
type Error string

// Error implements the error interface.
func (e Error) Error() string { return string(e) }

// ErrNotAvailable is returned when a representation's content has been
// consumed or was never present.
var ErrNotAvailable = Error("content is not available")
