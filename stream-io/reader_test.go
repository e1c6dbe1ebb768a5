package streamio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadExact(t *testing.T) {
	for size := 1; size <= 12; size++ {
		r := &chunkSource{data: []byte("hello world"), max: size}
		p := make([]byte, 11)
		require.NoError(t, ReadExact(r, p), "max=%d", size)
		assert.Equal(t, "hello world", string(p))
	}
}

func TestReadExactReissuesRetry(t *testing.T) {
	r := &scriptedReader{steps: []step{
		{retry: true},
		{data: []byte("ab")},
		{retry: true},
		{retry: true},
		{data: []byte("cd")},
	}}
	p := make([]byte, 4)
	assert.Empty(t, ReadExact(r, p))
	assert.Equal(t, "abcd", string(p))
}

func TestReadExactUnexpectedEOF(t *testing.T) {
	r := NewSliceReader([]byte("ab"))
	err := ReadExact(r, make([]byte, 4))
	assert.True(t, errors.Is(err, ErrUnexpectedEOF))
	assert.True(t, IsKind(err, KindUnexpectedEOF))
	assert.False(t, errors.Is(err, ErrInvalidUTF8))
}

func TestReadExactPropagatesError(t *testing.T) {
	r := &scriptedReader{steps: []step{{data: []byte("a")}, {err: errBroken}}}
	err := ReadExact(r, make([]byte, 4))
	assert.Equal(t, errBroken, err)
}

func TestReadExactEmptyBuffer(t *testing.T) {
	r := &scriptedReader{}
	assert.Empty(t, ReadExact(r, nil))
	assert.Equal(t, 0, r.calls)
}

func TestReadExactCustomError(t *testing.T) {
	r := &appReader{scriptedReader{steps: []step{{data: []byte("a")}}}}
	err := ReadExact(r, make([]byte, 2))
	assert.Equal(t, appUnexpectedEOF, err)
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Kind: KindFormatter, Op: "write_fmt", Err: errBroken}
	assert.Equal(t, "streamio: write_fmt: formatter error: broken pipe", err.Error())
	assert.True(t, errors.Is(err, errBroken))
	assert.True(t, errors.Is(err, ErrFormatter))
	assert.Equal(t, "streamio: unexpected end of stream", ErrUnexpectedEOF.Error())
}
