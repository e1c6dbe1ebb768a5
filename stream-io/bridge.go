package streamio

import (
	"errors"
	"io"
	"syscall"

	"github.com/rs/zerolog/log"
)

// isInterrupted reports whether err is the other contract's "try again" signal.
func isInterrupted(err error) bool {
	return errors.Is(err, syscall.EINTR) || errors.Is(err, ErrInterrupted)
}

// ioReader 将io.Reader适配为Reader.
type ioReader struct {
	r       io.Reader
	pending error
}

// FromReader adapts an io.Reader.
// io.EOF is EndOfStream, (0, nil) and interruptions are Retry. An error that comes together
// with data is held back and returned by the next call.
func FromReader(r io.Reader) Reader {
	return &ioReader{r: r}
}

func (a *ioReader) Read(p []byte) (Outcome, error) {
	if a.pending != nil {
		err := a.pending
		a.pending = nil
		return EndOfStream(), err
	}
	if len(p) == 0 {
		return EndOfStream(), nil
	}
	n, err := a.r.Read(p)
	if n > 0 {
		if err != nil && err != io.EOF && !isInterrupted(err) {
			log.Debug().Err(err).Int("n", n).Msg("streamio: holding back read error until the data is consumed")
			a.pending = err
		}
		return Transferred(n, len(p)), nil
	}
	switch {
	case err == nil:
		return Retry(), nil
	case err == io.EOF:
		return EndOfStream(), nil
	case isInterrupted(err):
		return Retry(), nil
	}
	return EndOfStream(), err
}

// ioReaderOf 将Reader适配为io.Reader.
type ioReaderOf struct {
	r Reader
}

// ToReader adapts a Reader for code written against io.Reader.
// EndOfStream is (0, io.EOF). Retry is (0, nil): io.Reader documents it as "nothing happened",
// so io.Copy and io.ReadAll simply call again, while an error would end them. FromReader maps
// (0, nil) back to Retry. io.Writer has no such value, because a short write must carry an error,
// so ToWriter uses ErrInterrupted and FromWriter maps it back. Both directions round-trip.
func ToReader(r Reader) io.Reader {
	return ioReaderOf{r: r}
}

func (a ioReaderOf) Read(p []byte) (int, error) {
	o, err := a.r.Read(p)
	if err != nil {
		return 0, err
	}
	switch o.Kind() {
	case KindEndOfStream:
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	case KindRetry:
		return 0, nil
	}
	return o.N(), nil
}

// ioWriter 将io.Writer适配为Writer.
type ioWriter struct {
	w       io.Writer
	pending error
}

// FromWriter adapts an io.Writer. Flush is forwarded when w has a Flush() error or Sync() error method.
func FromWriter(w io.Writer) Writer {
	return &ioWriter{w: w}
}

func (a *ioWriter) Write(p []byte) (Outcome, error) {
	if a.pending != nil {
		err := a.pending
		a.pending = nil
		return EndOfStream(), err
	}
	if len(p) == 0 {
		return EndOfStream(), nil
	}
	n, err := a.w.Write(p)
	if n > 0 {
		if err != nil && err != io.ErrShortWrite && !isInterrupted(err) {
			log.Debug().Err(err).Int("n", n).Msg("streamio: holding back write error until the next attempt")
			a.pending = err
		}
		return Transferred(n, len(p)), nil
	}
	switch {
	case err == nil, err == io.ErrShortWrite:
		return EndOfStream(), nil
	case isInterrupted(err):
		return Retry(), nil
	}
	return EndOfStream(), err
}

func (a *ioWriter) Flush() error {
	switch f := a.w.(type) {
	case interface{ Flush() error }:
		return f.Flush()
	case interface{ Sync() error }:
		return f.Sync()
	}
	return nil
}

// ioWriterOf 将Writer适配为io.Writer.
type ioWriterOf struct {
	w Writer
}

// ToWriter adapts a Writer for code written against io.Writer. One Write is one attempt:
// Retry is ErrInterrupted, EndOfStream and Partial come with io.ErrShortWrite.
// The returned value also has Flush() error.
func ToWriter(w Writer) io.Writer {
	return ioWriterOf{w: w}
}

func (a ioWriterOf) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	o, err := a.w.Write(p)
	if err != nil {
		return 0, err
	}
	switch o.Kind() {
	case KindEndOfStream:
		return 0, io.ErrShortWrite
	case KindRetry:
		return 0, ErrInterrupted
	case KindPartial:
		return o.N(), io.ErrShortWrite
	}
	return o.N(), nil
}

func (a ioWriterOf) Flush() error {
	return a.w.Flush()
}
