package streamio

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"syscall"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
)

type readFunc func(p []byte) (int, error)

func (f readFunc) Read(p []byte) (int, error) { return f(p) }

type writeFunc func(p []byte) (int, error)

func (f writeFunc) Write(p []byte) (int, error) { return f(p) }

func TestFromReader(t *testing.T) {
	b, err := ReadAll(FromReader(strings.NewReader("hello")))
	assert.Empty(t, err)
	assert.Equal(t, "hello", string(b))

	b, err = ReadAll(FromReader(iotest.DataErrReader(iotest.OneByteReader(strings.NewReader("abc")))))
	assert.Empty(t, err)
	assert.Equal(t, "abc", string(b))
}

func TestFromReaderRetry(t *testing.T) {
	calls := 0
	r := FromReader(readFunc(func(p []byte) (int, error) {
		calls++
		switch calls {
		case 1:
			return 0, nil
		case 2:
			return 0, syscall.EINTR
		case 3:
			return 0, ErrInterrupted
		}
		return 0, io.EOF
	}))
	for i := 0; i < 3; i++ {
		o, err := r.Read(make([]byte, 4))
		assert.Empty(t, err)
		assert.True(t, o.IsRetry())
	}
	o, err := r.Read(make([]byte, 4))
	assert.Empty(t, err)
	assert.True(t, o.IsEndOfStream())
}

func TestFromReaderHoldsBackError(t *testing.T) {
	r := FromReader(readFunc(func(p []byte) (int, error) {
		copy(p, "ab")
		return 2, errBroken
	}))
	buf := []byte("")
	n, err := ReadToEnd(r, &buf)
	assert.Equal(t, errBroken, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "ab", string(buf))
}

func TestToReader(t *testing.T) {
	src := &scriptedReader{steps: []step{{data: []byte("ab")}, {retry: true}, {data: []byte("cd")}}}
	b, err := io.ReadAll(ToReader(src))
	assert.Empty(t, err)
	assert.Equal(t, "abcd", string(b))

	r := ToReader(&scriptedReader{steps: []step{{retry: true}, {err: errBroken}}})
	n, err := r.Read(make([]byte, 2))
	assert.Equal(t, 0, n)
	assert.Empty(t, err)
	_, err = r.Read(make([]byte, 2))
	assert.Equal(t, errBroken, err)
	n, err = r.Read(make([]byte, 2))
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)
}

func TestToReaderPassesIOTest(t *testing.T) {
	content := []byte("the quick brown fox jumps over the lazy dog")
	assert.Empty(t, iotest.TestReader(ToReader(NewSliceReader(content)), content))
}

func TestFromWriter(t *testing.T) {
	var out bytes.Buffer
	w := FromWriter(&out)
	assert.Empty(t, WriteAll(w, []byte("hello")))
	assert.Empty(t, Fprintf(w, " %s", "world"))
	assert.Empty(t, w.Flush())
	assert.Equal(t, "hello world", out.String())
}

func TestFromWriterOutcomes(t *testing.T) {
	calls := 0
	w := FromWriter(writeFunc(func(p []byte) (int, error) {
		calls++
		switch calls {
		case 1:
			return 0, syscall.EINTR
		case 2:
			return 1, io.ErrShortWrite
		case 3:
			return 1, errBroken
		}
		return 0, nil
	}))
	o, err := w.Write([]byte("abc"))
	assert.Empty(t, err)
	assert.True(t, o.IsRetry())

	o, err = w.Write([]byte("abc"))
	assert.Empty(t, err)
	assert.Equal(t, Partial(1), o)

	o, err = w.Write([]byte("bc"))
	assert.Empty(t, err)
	assert.Equal(t, Partial(1), o)
	_, err = w.Write([]byte("c"))
	assert.Equal(t, errBroken, err)

	o, err = w.Write([]byte("c"))
	assert.Empty(t, err)
	assert.True(t, o.IsEndOfStream())
}

func TestToWriter(t *testing.T) {
	sink := newLimitedSink(3)
	sink.retries = 1
	w := ToWriter(sink)

	n, err := w.Write([]byte("abcd"))
	assert.Equal(t, 0, n)
	assert.Equal(t, ErrInterrupted, err)

	n, err = w.Write([]byte("abcd"))
	assert.Equal(t, 3, n)
	assert.Equal(t, io.ErrShortWrite, err)

	n, err = w.Write([]byte("d"))
	assert.Equal(t, 0, n)
	assert.Equal(t, io.ErrShortWrite, err)

	assert.Empty(t, w.(interface{ Flush() error }).Flush())
	assert.Equal(t, 1, sink.flushed)
}

func TestToWriterWithFmt(t *testing.T) {
	sink := newLimitedSink(32)
	_, err := fmt.Fprintf(ToWriter(sink), "%03d|%s", 7, "ok")
	assert.Empty(t, err)
	assert.Equal(t, "007|ok", string(sink.Bytes()))
}

func TestBridgeRoundTrip(t *testing.T) {
	r := FromReader(ToReader(NewSliceReader([]byte("round trip"))))
	var s string
	_, err := ReadToString(r, &s)
	assert.Empty(t, err)
	assert.Equal(t, "round trip", s)
}

func TestRetryRoundTrips(t *testing.T) {
	r := FromReader(ToReader(&scriptedReader{steps: []step{{retry: true}, {data: []byte("a")}}}))
	o, err := r.Read(make([]byte, 1))
	assert.Empty(t, err)
	assert.True(t, o.IsRetry())
	o, err = r.Read(make([]byte, 1))
	assert.Empty(t, err)
	assert.Equal(t, Complete(1), o)

	sink := newLimitedSink(4)
	sink.retries = 1
	w := FromWriter(ToWriter(sink))
	o, err = w.Write([]byte("b"))
	assert.Empty(t, err)
	assert.True(t, o.IsRetry())
	o, err = w.Write([]byte("b"))
	assert.Empty(t, err)
	assert.Equal(t, Complete(1), o)
}
