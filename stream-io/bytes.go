package streamio

import (
	"io"
	"iter"
)

// Bytes 将Reader转换为逐字节的惰性序列, 不可重新开始.
type Bytes struct {
	inner Reader
	buf   [1]byte
	done  bool
}

// Next returns the next byte. io.EOF marks the end of the sequence. A source error is
// returned once, after which the sequence is over and Next keeps returning io.EOF.
func (b *Bytes) Next() (byte, error) {
	c, ok, err := b.next()
	if !ok && err == nil {
		return 0, io.EOF
	}
	return c, err
}

// next reports ok == false once the sequence is over. err is the source's error, if it ended with one.
func (b *Bytes) next() (byte, bool, error) {
	if b.done {
		return 0, false, nil
	}
	for {
		o, err := b.inner.Read(b.buf[:])
		if err != nil {
			b.done = true
			return 0, false, err
		}
		switch o.Kind() {
		case KindEndOfStream:
			b.done = true
			return 0, false, nil
		case KindRetry:
		default:
			return b.buf[0], true, nil
		}
	}
}

// All ranges over the remaining bytes. A source error, io.EOF included, is yielded as the last element.
func (b *Bytes) All() iter.Seq2[byte, error] {
	return func(yield func(byte, error) bool) {
		for {
			c, ok, err := b.next()
			if err != nil {
				yield(0, err)
				return
			}
			if !ok || !yield(c, nil) {
				return
			}
		}
	}
}

// NewError hands canonical failures to the inner source's constructor.
func (b *Bytes) NewError(kind Kind, cause error) error {
	return ConstructError(b.inner, kind, cause)
}

// Inner gives back the wrapped source.
func (b *Bytes) Inner() Reader {
	return b.inner
}
