package streamio

import (
	"slices"
	"unicode/utf8"

	ftc "github.com/usherasnick/stream-gadgets/fast-type-conversion"
)

// DefaultReservation 每次扩容时预留的默认字节数.
const DefaultReservation = 32

// ReservationHinter lets a source bound how much the growth loop reserves per extension.
type ReservationHinter interface {
	ReservationSize() int
}

func reservationSize(r Reader) int {
	n := DefaultReservation
	if h, ok := r.(ReservationHinter); ok {
		n = h.ReservationSize()
	}
	if n < 1 {
		n = 1
	}
	return n
}

// growGuard keeps the committed length of a buffer whose exposed length may run ahead of it.
// release puts the committed length back, it runs on every exit path.
type growGuard struct {
	buf *[]byte
	len int
}

func (g *growGuard) release() {
	*g.buf = (*g.buf)[:g.len]
}

// ReadToEnd 读取r直到EndOfStream, 将数据追加到*buf.
// It returns the number of bytes appended. Whatever happens (error or panic in the source),
// *buf is left holding its previous content plus exactly the bytes the source reported as read.
func ReadToEnd(r Reader, buf *[]byte) (int, error) {
	if rr, ok := r.(ReaderToEnd); ok {
		return rr.ReadToEnd(buf)
	}
	return readToEnd(r, buf)
}

func readToEnd(r Reader, buf *[]byte) (int, error) {
	start := len(*buf)
	g := &growGuard{buf: buf, len: start}
	defer g.release()

	for {
		if g.len == len(*buf) {
			b := *buf
			if len(b) == cap(b) {
				b = slices.Grow(b, reservationSize(r))
			}
			b = b[:cap(b)]
			InitializerOf(r).Initialize(b[g.len:])
			*buf = b
		}

		o, err := r.Read((*buf)[g.len:])
		if err != nil {
			return g.len - start, err
		}
		switch o.Kind() {
		case KindEndOfStream:
			return g.len - start, nil
		case KindRetry:
		default:
			g.len += o.N()
		}
	}
}

// ReadAll drains r into a new slice.
func ReadAll(r Reader) ([]byte, error) {
	var b []byte
	_, err := ReadToEnd(r, &b)
	return b, err
}

// ReadToString 读取r直到EndOfStream, 将文本追加到*s.
// Only the appended bytes are validated. *s changes only on success; on a read error or
// invalid UTF-8 it keeps its previous value.
func ReadToString(r Reader, s *string) (int, error) {
	// the view has cap == len, so the first extension copies and the string memory is never written
	b := ftc.String2Bytes(*s)
	start := len(b)
	n, err := ReadToEnd(r, &b)
	if err != nil {
		return 0, err
	}
	if !utf8.Valid(b[start:]) {
		return 0, newError(r, "read_to_string", KindInvalidUTF8, nil)
	}
	*s = ftc.Bytes2String(b)
	return n, nil
}
