package content

import (
	"bytes"
	"io"
	"sync"
)

// Buffered wraps a representation and caches its bytes on first read.
//
// Once the wrapped source has been drained successfully, every query
// (size, stream, text, writes, availability) is answered from the cache
// and the source is never touched again. This makes transient sources
// such as network bodies reusable, at the cost of holding the full
// content in memory.
type Buffered struct {
	mu       sync.Mutex
	source   Representation
	buffer   []byte
	buffered bool
}

// NewBuffered wraps source with a caching decorator.
func NewBuffered(source Representation) *Buffered {
	return &Buffered{source: source}
}

// fill drains the source into the cache if not already done.
// A source that is not available is left alone; the next call retries.
func (b *Buffered) fill() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.buffered {
		return nil
	}
	if !b.source.Available() {
		return nil
	}
	var buf bytes.Buffer
	if _, err := b.source.WriteTo(&buf); err != nil {
		return err
	}
	b.buffer = buf.Bytes()
	b.buffered = true
	return nil
}

// Buffered reports whether the source content has been cached.
func (b *Buffered) Buffered() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buffered
}

func (b *Buffered) MediaType() string    { return b.source.MediaType() }
func (b *Buffered) CharacterSet() string { return b.source.CharacterSet() }

func (b *Buffered) Available() bool {
	if err := b.fill(); err != nil {
		return false
	}
	return b.Buffered()
}

func (b *Buffered) Size() int64 {
	if err := b.fill(); err != nil {
		return SizeUnknown
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.buffered {
		return SizeUnknown
	}
	return int64(len(b.buffer))
}

func (b *Buffered) Stream() (io.ReadCloser, error) {
	if err := b.fill(); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.buffered {
		return nil, ErrNotAvailable
	}
	return io.NopCloser(bytes.NewReader(b.buffer)), nil
}

func (b *Buffered) Text() (string, error) {
	if err := b.fill(); err != nil {
		return "", err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.buffered {
		return "", ErrNotAvailable
	}
	return decodeText(b.buffer, b.source.CharacterSet())
}

func (b *Buffered) WriteTo(w io.Writer) (int64, error) {
	if err := b.fill(); err != nil {
		return 0, err
	}
	b.mu.Lock()
	data := b.buffer
	ok := b.buffered
	b.mu.Unlock()
	if !ok {
		return 0, ErrNotAvailable
	}
	n, err := w.Write(data)
	return int64(n), err
}

func (b *Buffered) WriteText(w io.Writer) error {
	text, err := b.Text()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text)
	return err
}
