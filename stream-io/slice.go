package streamio

// SliceReader 从内存字节切片读取数据.
type SliceReader struct {
	data []byte
	i    int
}

func NewSliceReader(data []byte) *SliceReader {
	return &SliceReader{data: data}
}

func (r *SliceReader) Read(p []byte) (Outcome, error) {
	n := copy(p, r.data[r.i:])
	r.i += n
	return Transferred(n, len(p)), nil
}

// Initializer is Nop: only copied bytes are ever reported.
func (r *SliceReader) Initializer() Initializer {
	return Nop()
}

// Len returns the number of unread bytes.
func (r *SliceReader) Len() int {
	return len(r.data) - r.i
}

// SliceWriter 向固定容量的字节切片写入数据, 写满后返回EndOfStream.
type SliceWriter struct {
	data []byte
	i    int
}

func NewSliceWriter(data []byte) *SliceWriter {
	return &SliceWriter{data: data}
}

func (w *SliceWriter) Write(p []byte) (Outcome, error) {
	n := copy(w.data[w.i:], p)
	w.i += n
	return Transferred(n, len(p)), nil
}

func (w *SliceWriter) Flush() error {
	return nil
}

// Bytes returns what has been written so far.
func (w *SliceWriter) Bytes() []byte {
	return w.data[:w.i]
}
