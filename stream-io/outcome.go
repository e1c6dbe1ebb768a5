package streamio

import (
	"fmt"
)

// OutcomeKind 单次读写尝试结果的类别.
type OutcomeKind uint8

const (
	// KindEndOfStream nothing was transferred and nothing will follow.
	KindEndOfStream OutcomeKind = iota
	// KindRetry nothing was transferred, the attempt must be reissued.
	KindRetry
	// KindPartial some bytes, but fewer than requested, were transferred.
	KindPartial
	// KindComplete exactly the requested number of bytes were transferred.
	KindComplete
)

func (k OutcomeKind) String() string {
	switch k {
	case KindEndOfStream:
		return "EndOfStream"
	case KindRetry:
		return "Retry"
	case KindPartial:
		return "Partial"
	case KindComplete:
		return "Complete"
	}
	return fmt.Sprintf("OutcomeKind(%d)", uint8(k))
}

// Outcome 描述一次Read/Write尝试完成了什么.
// The zero value is EndOfStream.
type Outcome struct {
	kind OutcomeKind
	n    int
}

// EndOfStream 返回流结束的结果.
func EndOfStream() Outcome {
	return Outcome{kind: KindEndOfStream}
}

// Retry 返回需要重试的结果.
func Retry() Outcome {
	return Outcome{kind: KindRetry}
}

// Partial 返回部分传输了n个字节的结果, n必须大于0.
func Partial(n int) Outcome {
	if n <= 0 {
		panic(fmt.Sprintf("streamio: Partial(%d), transferred count must be positive", n))
	}
	return Outcome{kind: KindPartial, n: n}
}

// Complete 返回完整传输了n个字节的结果, n必须大于0.
func Complete(n int) Outcome {
	if n <= 0 {
		panic(fmt.Sprintf("streamio: Complete(%d), transferred count must be positive", n))
	}
	return Outcome{kind: KindComplete, n: n}
}

// Transferred classifies a transfer of n bytes out of requested.
// 0 is EndOfStream, n == requested is Complete, anything else is Partial.
func Transferred(n, requested int) Outcome {
	switch {
	case n <= 0:
		return EndOfStream()
	case n >= requested:
		return Complete(n)
	default:
		return Partial(n)
	}
}

// Kind returns the variant.
func (o Outcome) Kind() OutcomeKind {
	return o.kind
}

// N returns the number of bytes transferred, 0 for EndOfStream and Retry.
func (o Outcome) N() int {
	return o.n
}

func (o Outcome) IsEndOfStream() bool {
	return o.kind == KindEndOfStream
}

func (o Outcome) IsRetry() bool {
	return o.kind == KindRetry
}

// Progressed reports whether any byte was transferred.
func (o Outcome) Progressed() bool {
	return o.kind == KindPartial || o.kind == KindComplete
}

func (o Outcome) String() string {
	if o.Progressed() {
		return fmt.Sprintf("%s(%d)", o.kind, o.n)
	}
	return o.kind.String()
}
