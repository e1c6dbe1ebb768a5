package streamio

import (
	"errors"
	"fmt"
)

// Kind 派生操作自身能够产生的错误类别.
type Kind uint8

const (
	// KindUnexpectedEOF more data was mandatory but the stream ended.
	KindUnexpectedEOF Kind = iota + 1
	// KindInvalidUTF8 accumulated bytes are not valid UTF-8.
	KindInvalidUTF8
	// KindFormatter the formatting callback failed while the sink did not.
	KindFormatter
)

func (k Kind) String() string {
	switch k {
	case KindUnexpectedEOF:
		return "unexpected end of stream"
	case KindInvalidUTF8:
		return "stream did not contain valid UTF-8"
	case KindFormatter:
		return "formatter error"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

var (
	ErrUnexpectedEOF = &Error{Kind: KindUnexpectedEOF}
	ErrInvalidUTF8   = &Error{Kind: KindInvalidUTF8}
	ErrFormatter     = &Error{Kind: KindFormatter}

	// ErrInterrupted is the "try again" signal on the io.Writer side of the bridge.
	ErrInterrupted = errors.New("streamio: operation interrupted, retry")
)

// Error is the default representation of the canonical failures.
type Error struct {
	Kind Kind
	Op   string // operation that failed, e.g. "read_exact"
	Err  error  // underlying cause, if any
}

func (e *Error) Error() string {
	msg := "streamio: " + e.Kind.String()
	if e.Op != "" {
		msg = "streamio: " + e.Op + ": " + e.Kind.String()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same Kind, so errors.Is(err, ErrUnexpectedEOF) works
// regardless of Op and cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// ErrorConstructor 由Reader/Writer可选实现, 用于构造自定义的错误类型.
// Derived operations raise canonical failures through it, so a source with its own error
// enum receives its own values instead of *Error.
type ErrorConstructor interface {
	NewError(kind Kind, cause error) error
}

// ConstructError 使用v自身的ErrorConstructor构造错误, v未实现时返回nil.
// Wrappers implement NewError by calling it on what they wrap, so the wrapped value's
// error type survives any number of layers.
func ConstructError(v interface{}, kind Kind, cause error) error {
	if c, ok := v.(ErrorConstructor); ok {
		return c.NewError(kind, cause)
	}
	return nil
}

// newError builds the canonical failure for v, preferring v's own constructor.
func newError(v interface{}, op string, kind Kind, cause error) error {
	if err := ConstructError(v, kind, cause); err != nil {
		return err
	}
	return &Error{Kind: kind, Op: op, Err: cause}
}

// IsKind reports whether err is a canonical failure of the given kind in the default representation.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
