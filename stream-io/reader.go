package streamio

// Reader 读能力的最小接口.
type Reader interface {
	// Read transfers at most len(p) bytes into p[0:] and reports what happened.
	Read(p []byte) (Outcome, error)
}

// ReaderToEnd may be implemented by a source that can drain itself faster than
// the generic growth loop. It must keep the same contract as ReadToEnd.
type ReaderToEnd interface {
	ReadToEnd(buf *[]byte) (int, error)
}

// ReadExact 将p完整填满.
// Retry is reissued immediately. EndOfStream before p is full is an unexpected end of stream,
// and p's content is unspecified in that case.
func ReadExact(r Reader, p []byte) error {
	for len(p) > 0 {
		o, err := r.Read(p)
		if err != nil {
			return err
		}
		switch o.Kind() {
		case KindEndOfStream:
			return newError(r, "read_exact", KindUnexpectedEOF, nil)
		case KindRetry:
		default:
			// a Complete for the remaining suffix is progress like any other
			p = p[o.N():]
		}
	}
	return nil
}

// NewBytes wraps r into a byte at a time sequence.
func NewBytes(r Reader) *Bytes {
	return &Bytes{inner: r}
}

// NewChain reads first to exhaustion, then second.
func NewChain(first, second Reader) *Chain {
	return &Chain{first: first, second: second}
}

// NewTake presents at most limit bytes of r.
func NewTake(r Reader, limit uint64) *Take {
	return &Take{inner: r, limit: limit}
}
