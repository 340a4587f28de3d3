package content

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSource is a one-shot representation that tracks how many times
// its bytes were produced.
type countingSource struct {
	mu       sync.Mutex
	data     []byte
	charset  string
	reads    int
	consumed bool
}

func (s *countingSource) MediaType() string    { return "text/plain" }
func (s *countingSource) CharacterSet() string { return s.charset }
func (s *countingSource) Size() int64          { return SizeUnknown }

func (s *countingSource) Available() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.consumed
}

func (s *countingSource) Stream() (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.consumed {
		return nil, ErrNotAvailable
	}
	s.reads++
	s.consumed = true
	return io.NopCloser(bytes.NewReader(s.data)), nil
}

func (s *countingSource) Text() (string, error) {
	stream, err := s.Stream()
	if err != nil {
		return "", err
	}
	data, _ := io.ReadAll(stream)
	return string(data), nil
}

func (s *countingSource) WriteTo(w io.Writer) (int64, error) {
	stream, err := s.Stream()
	if err != nil {
		return 0, err
	}
	return io.Copy(w, stream)
}

func (s *countingSource) WriteText(w io.Writer) error {
	text, err := s.Text()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text)
	return err
}

func (s *countingSource) readCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

func TestBufferedReadsSourceOnce(t *testing.T) {
	t.Parallel()

	src := &countingSource{data: []byte("hello world")}
	buf := NewBuffered(src)

	// Every query after the first full read must come from the cache.
	assert.Equal(t, int64(11), buf.Size())
	assert.True(t, buf.Available())

	stream, err := buf.Stream()
	require.NoError(t, err)
	data, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))

	text, err := buf.Text()
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)

	var sink strings.Builder
	n, err := buf.WriteTo(&sink)
	require.NoError(t, err)
	assert.Equal(t, int64(11), n)

	assert.Equal(t, 1, src.readCount())
}

func TestBufferedStreamIsRepeatable(t *testing.T) {
	t.Parallel()

	src := &countingSource{data: []byte("abc")}
	buf := NewBuffered(src)

	for i := 0; i < 3; i++ {
		stream, err := buf.Stream()
		require.NoError(t, err)
		data, err := io.ReadAll(stream)
		require.NoError(t, err)
		assert.Equal(t, "abc", string(data))
	}
	assert.Equal(t, 1, src.readCount())
}

func TestBufferedUnavailableSource(t *testing.T) {
	t.Parallel()

	src := &countingSource{data: []byte("x"), consumed: true}
	buf := NewBuffered(src)

	assert.False(t, buf.Available())
	assert.Equal(t, SizeUnknown, buf.Size())
	_, err := buf.Stream()
	assert.ErrorIs(t, err, ErrNotAvailable)
}

func TestBytesRepresentation(t *testing.T) {
	t.Parallel()

	b := NewString("ping", "text/plain")
	assert.True(t, b.Available())
	assert.Equal(t, int64(4), b.Size())

	// Streams are independent.
	s1, err := b.Stream()
	require.NoError(t, err)
	s2, err := b.Stream()
	require.NoError(t, err)
	d1, _ := io.ReadAll(s1)
	d2, _ := io.ReadAll(s2)
	assert.Equal(t, d1, d2)
}

func TestReaderIsOneShot(t *testing.T) {
	t.Parallel()

	r := NewReader(io.NopCloser(strings.NewReader("once")), 4, "text/plain")
	assert.True(t, r.Available())

	text, err := r.Text()
	require.NoError(t, err)
	assert.Equal(t, "once", text)

	assert.False(t, r.Available())
	_, err = r.Stream()
	assert.ErrorIs(t, err, ErrNotAvailable)
}

func TestTextDecodesCharset(t *testing.T) {
	t.Parallel()

	// "é" in ISO 8859-1 is the single byte 0xE9.
	b := NewBytes([]byte{0xE9}, "text/plain")
	b.SetCharacterSet("iso-8859-1")
	text, err := b.Text()
	require.NoError(t, err)
	assert.Equal(t, "é", text)
}
