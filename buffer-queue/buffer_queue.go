package bufferqueue

import (
	"errors"
	"sync"

	"github.com/gammazero/deque"
	"github.com/rs/zerolog/log"

	streamio "github.com/usherasnick/stream-gadgets/stream-io"
)

const (
	__DefaultMaxChunks = 128
)

var (
	ErrClosed = errors.New("buffer queue has been closed")
)

// LimitBufferQueueCfg LimitBufferQueue配置
type LimitBufferQueueCfg struct {
	MaxChunks   int  `json:"max_chunks"`   // 最多可缓存的数据块数量
	NonBlocking bool `json:"non_blocking"` // 队列空/满时返回Retry, 而不是阻塞等待
}

// LimitBufferQueue 有界的内存字节管道, 同时实现streamio.Reader和streamio.Writer.
// Every Write is queued as one chunk; Read drains chunks in order and may split them.
// After Close, Read drains what is left and then reports EndOfStream; Write reports EndOfStream.
type LimitBufferQueue struct {
	cond *sync.Cond

	q      deque.Deque
	head   []byte // unread rest of the front chunk
	cap    int
	block  bool
	closed bool
	size   int // unread bytes, head included
}

// NewLimitBufferQueue 返回LimitBufferQueue实例.
func NewLimitBufferQueue(cfg *LimitBufferQueueCfg) *LimitBufferQueue {
	if cfg == nil {
		cfg = &LimitBufferQueueCfg{}
	}
	cap := cfg.MaxChunks
	if cap <= 0 {
		cap = __DefaultMaxChunks
	}
	return &LimitBufferQueue{
		cond:  sync.NewCond(&sync.Mutex{}),
		cap:   cap,
		block: !cfg.NonBlocking,
	}
}

// Write 拷贝p并作为一个数据块放入队列.
func (q *LimitBufferQueue) Write(p []byte) (streamio.Outcome, error) {
	q.cond.L.Lock()
	defer q.cond.L.Unlock()

	if len(p) == 0 {
		return streamio.EndOfStream(), nil
	}
	for !q.closed && q.q.Len() >= q.cap {
		if !q.block {
			return streamio.Retry(), nil
		}
		q.cond.Wait()
	}
	if q.closed {
		return streamio.EndOfStream(), nil
	}

	chunk := make([]byte, len(p))
	copy(chunk, p)
	q.q.PushBack(chunk)
	q.size += len(chunk)
	q.cond.Broadcast()
	return streamio.Complete(len(p)), nil
}

// Flush 等待队列中的数据全部被读走.
// In non-blocking mode it returns at once.
func (q *LimitBufferQueue) Flush() error {
	q.cond.L.Lock()
	defer q.cond.L.Unlock()

	for q.block && q.size > 0 && !q.closed {
		q.cond.Wait()
	}
	return nil
}

// Read 从队列中读取数据.
func (q *LimitBufferQueue) Read(p []byte) (streamio.Outcome, error) {
	q.cond.L.Lock()
	defer q.cond.L.Unlock()

	if len(p) == 0 {
		return streamio.EndOfStream(), nil
	}
	for q.size == 0 {
		if q.closed {
			return streamio.EndOfStream(), nil
		}
		if !q.block {
			return streamio.Retry(), nil
		}
		q.cond.Wait()
	}

	n := 0
	for n < len(p) && q.size > 0 {
		if len(q.head) == 0 {
			q.head = q.q.PopFront().([]byte)
		}
		c := copy(p[n:], q.head)
		q.head = q.head[c:]
		q.size -= c
		n += c
	}
	q.cond.Broadcast()
	return streamio.Transferred(n, len(p)), nil
}

// Initializer is Nop: Read only reports bytes it copied.
func (q *LimitBufferQueue) Initializer() streamio.Initializer {
	return streamio.Nop()
}

// Close 关闭队列, 已缓存的数据仍可读出.
func (q *LimitBufferQueue) Close() error {
	q.cond.L.Lock()
	defer q.cond.L.Unlock()

	if q.closed {
		return ErrClosed
	}
	q.closed = true
	q.cond.Broadcast()
	log.Debug().Int("pending_bytes", q.size).Msg("buffer queue closed")
	return nil
}

// Len 返回未读的字节数.
func (q *LimitBufferQueue) Len() int {
	q.cond.L.Lock()
	defer q.cond.L.Unlock()

	return q.size
}

// Chunks 返回队列中完整未读的数据块数量.
func (q *LimitBufferQueue) Chunks() int {
	q.cond.L.Lock()
	defer q.cond.L.Unlock()

	return q.q.Len()
}
