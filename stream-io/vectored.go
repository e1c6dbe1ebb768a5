package streamio

// VectoredReader may be implemented by a source with a real scatter read.
type VectoredReader interface {
	ReadVectored(bufs [][]byte) (Outcome, error)
}

// VectoredWriter may be implemented by a sink with a real gather write.
type VectoredWriter interface {
	WriteVectored(bufs [][]byte) (Outcome, error)
}

// ReadVectored reads into bufs. Without a VectoredReader it reads into the first non-empty buffer.
func ReadVectored(r Reader, bufs [][]byte) (Outcome, error) {
	if vr, ok := r.(VectoredReader); ok {
		return vr.ReadVectored(bufs)
	}
	for _, b := range bufs {
		if len(b) > 0 {
			return r.Read(b)
		}
	}
	return r.Read(nil)
}

// WriteVectored writes from bufs. Without a VectoredWriter it writes the first non-empty buffer.
func WriteVectored(w Writer, bufs [][]byte) (Outcome, error) {
	if vw, ok := w.(VectoredWriter); ok {
		return vw.WriteVectored(bufs)
	}
	for _, b := range bufs {
		if len(b) > 0 {
			return w.Write(b)
		}
	}
	return w.Write(nil)
}

// WriteAllVectored writes every byte of bufs, with the same rules as WriteAll.
// bufs is consumed: its elements are re-sliced as data goes out.
func WriteAllVectored(w Writer, bufs [][]byte) error {
	bufs = advance(bufs, 0)
	for len(bufs) > 0 {
		o, err := WriteVectored(w, bufs)
		if err != nil {
			return err
		}
		switch o.Kind() {
		case KindEndOfStream:
			return newError(w, "write_all_vectored", KindUnexpectedEOF, nil)
		case KindRetry:
		default:
			bufs = advance(bufs, o.N())
		}
	}
	return nil
}

// advance drops n bytes from the front of bufs and skips empty buffers.
func advance(bufs [][]byte, n int) [][]byte {
	for len(bufs) > 0 && n >= len(bufs[0]) {
		n -= len(bufs[0])
		bufs = bufs[1:]
	}
	if len(bufs) > 0 {
		bufs[0] = bufs[0][n:]
	}
	return bufs
}
