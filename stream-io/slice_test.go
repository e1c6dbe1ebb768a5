package streamio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSliceReader(t *testing.T) {
	r := NewSliceReader([]byte("ABC"))
	p := make([]byte, 2)

	o, err := r.Read(p)
	assert.Empty(t, err)
	assert.Equal(t, Complete(2), o)
	assert.Equal(t, 1, r.Len())

	o, _ = r.Read(p)
	assert.Equal(t, Partial(1), o)
	o, _ = r.Read(p)
	assert.True(t, o.IsEndOfStream())
	assert.False(t, r.Initializer().ShouldInitialize())
}

func TestSliceWriter(t *testing.T) {
	w := NewSliceWriter(make([]byte, 3))
	o, err := w.Write([]byte{0, 1})
	assert.Empty(t, err)
	assert.Equal(t, Complete(2), o)
	o, _ = w.Write([]byte{2, 3})
	assert.Equal(t, Partial(1), o)
	o, _ = w.Write([]byte{3})
	assert.True(t, o.IsEndOfStream())
	assert.Equal(t, []byte{0, 1, 2}, w.Bytes())
	assert.Empty(t, w.Flush())
}
