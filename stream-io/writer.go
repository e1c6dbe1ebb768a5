package streamio

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Writer 写能力的最小接口.
type Writer interface {
	// Write transfers at most len(p) bytes out of p and reports what happened.
	Write(p []byte) (Outcome, error)
	// Flush has no default, every sink defines its own durability.
	Flush() error
}

// WriteAll 将p全部写入w.
// Retry is reissued, Partial advances, EndOfStream with bytes still pending is an unexpected end of stream
// (the sink refused to take more).
func WriteAll(w Writer, p []byte) error {
	for len(p) > 0 {
		o, err := w.Write(p)
		if err != nil {
			return err
		}
		switch o.Kind() {
		case KindEndOfStream:
			return newError(w, "write_all", KindUnexpectedEOF, nil)
		case KindRetry:
		default:
			p = p[o.N():]
		}
	}
	return nil
}

// StringWriter receives the text fragments emitted by a FormatFunc.
type StringWriter interface {
	Write(p []byte) (int, error)
	WriteString(s string) (int, error)
}

// FormatFunc emits text through sw. It returns the error sw gave it, or its own failure.
type FormatFunc func(sw StringWriter) error

// formatAdaptor pushes every fragment through WriteAll and remembers the sink's error,
// so a sink failure is never mistaken for a formatter failure.
type formatAdaptor struct {
	w   Writer
	err error
}

func (a *formatAdaptor) Write(p []byte) (int, error) {
	if a.err != nil {
		return 0, a.err
	}
	if err := WriteAll(a.w, p); err != nil {
		a.err = err
		return 0, err
	}
	return len(p), nil
}

func (a *formatAdaptor) WriteString(s string) (int, error) {
	return a.Write([]byte(s))
}

// WriteFormatted 将格式化回调产生的文本写入w.
// A failure of the sink is returned unchanged. A failure of format while the sink did not fail
// is reported as a formatter error carrying format's error as cause.
func WriteFormatted(w Writer, format FormatFunc) error {
	a := &formatAdaptor{w: w}
	err := format(a)
	if a.err != nil {
		return a.err
	}
	if err != nil {
		log.Debug().Err(err).Msg("streamio: formatter failed without a sink error")
		return newError(w, "write_fmt", KindFormatter, err)
	}
	return nil
}

// Fprintf formats according to format and writes the result to w.
func Fprintf(w Writer, format string, args ...interface{}) error {
	return WriteFormatted(w, func(sw StringWriter) error {
		_, err := fmt.Fprintf(sw, format, args...)
		return err
	})
}
