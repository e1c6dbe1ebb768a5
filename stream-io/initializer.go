package streamio

// Initializer tells the growth algorithm whether a destination region must be zeroed
// before it is handed to a source.
type Initializer struct {
	zero bool
}

// Zeroing is the safe default: the source may leave parts of the destination unwritten.
func Zeroing() Initializer {
	return Initializer{zero: true}
}

// Nop may only be returned by a source that never reads from, or reports as transferred,
// destination bytes it did not just write.
func Nop() Initializer {
	return Initializer{}
}

func (i Initializer) ShouldInitialize() bool {
	return i.zero
}

// Initialize zeroes p if the policy requires it.
func (i Initializer) Initialize(p []byte) {
	if i.zero {
		clear(p)
	}
}

// Initializable 由关心缓冲区初始化策略的Reader实现.
type Initializable interface {
	Initializer() Initializer
}

// InitializerOf returns r's policy, Zeroing for sources that do not declare one.
func InitializerOf(r Reader) Initializer {
	if i, ok := r.(Initializable); ok {
		return i.Initializer()
	}
	return Zeroing()
}
