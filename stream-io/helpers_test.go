package streamio

import (
	"errors"
)

var errBroken = errors.New("broken pipe")

// step is one scripted attempt: data to hand out, or a retry, or an error.
type step struct {
	data  []byte
	retry bool
	err   error
	panic bool
}

// scriptedReader replays steps, one per Read, then reports EndOfStream forever.
// A data step larger than the destination is split across calls.
type scriptedReader struct {
	steps []step
	calls int
	nop   bool
}

func (r *scriptedReader) Read(p []byte) (Outcome, error) {
	r.calls++
	if len(r.steps) == 0 {
		return EndOfStream(), nil
	}
	s := &r.steps[0]
	switch {
	case s.panic:
		panic("scripted panic")
	case s.err != nil:
		r.steps = r.steps[1:]
		return EndOfStream(), s.err
	case s.retry:
		r.steps = r.steps[1:]
		return Retry(), nil
	}
	n := copy(p, s.data)
	s.data = s.data[n:]
	if len(s.data) == 0 {
		r.steps = r.steps[1:]
	}
	return Transferred(n, len(p)), nil
}

func (r *scriptedReader) Initializer() Initializer {
	if r.nop {
		return Nop()
	}
	return Zeroing()
}

// chunkSource hands out data at most max bytes per call.
type chunkSource struct {
	data []byte
	max  int
}

func (r *chunkSource) Read(p []byte) (Outcome, error) {
	want := len(p)
	if len(p) > r.max {
		p = p[:r.max]
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return Transferred(n, want), nil
}

// infiniteReader never ends and counts how often it is asked.
type infiniteReader struct {
	b     byte
	calls int
}

func (r *infiniteReader) Read(p []byte) (Outcome, error) {
	r.calls++
	for i := range p {
		p[i] = r.b
	}
	return Transferred(len(p), len(p)), nil
}

// dirtyReader writes p[0] but reports two bytes, so p[1] shows whatever the buffer held.
type dirtyReader struct {
	sent bool
	nop  bool
}

func (r *dirtyReader) Initializer() Initializer {
	if r.nop {
		return Nop()
	}
	return Zeroing()
}

func (r *dirtyReader) Read(p []byte) (Outcome, error) {
	if r.sent || len(p) < 2 {
		return EndOfStream(), nil
	}
	r.sent = true
	p[0] = 'x'
	return Transferred(2, len(p)), nil
}

// appError is an application-defined error enum.
type appError int

const (
	appUnexpectedEOF appError = iota + 1
	appInvalidUTF8
	appFormatter
)

func (e appError) Error() string {
	return [...]string{"", "app: eof", "app: utf8", "app: fmt"}[e]
}

type appReader struct {
	scriptedReader
}

func (r *appReader) NewError(kind Kind, cause error) error {
	switch kind {
	case KindUnexpectedEOF:
		return appUnexpectedEOF
	case KindInvalidUTF8:
		return appInvalidUTF8
	}
	return appFormatter
}

// limitedSink keeps at most len(buf) bytes, then reports EndOfStream.
type limitedSink struct {
	SliceWriter
	retries int
	flushed int
}

func newLimitedSink(capacity int) *limitedSink {
	return &limitedSink{SliceWriter: SliceWriter{data: make([]byte, capacity)}}
}

func (s *limitedSink) Write(p []byte) (Outcome, error) {
	if s.retries > 0 {
		s.retries--
		return Retry(), nil
	}
	return s.SliceWriter.Write(p)
}

func (s *limitedSink) Flush() error {
	s.flushed++
	return nil
}

// failingSink fails every write.
type failingSink struct{}

func (failingSink) Write(p []byte) (Outcome, error) {
	return EndOfStream(), errBroken
}

func (failingSink) Flush() error {
	return nil
}

func (failingSink) NewError(kind Kind, cause error) error {
	return appFormatter
}
