package tpsctrl

import (
	"time"

	"github.com/juju/ratelimit"
	"github.com/rs/zerolog/log"

	streamio "github.com/usherasnick/stream-gadgets/stream-io"
)

// TPSController 用于调控TPS, 在这里一个令牌对应一个字节.
type TPSController struct {
	quota  int
	bucket *ratelimit.Bucket
}

// NewTPSController 返回TPSController实例.
// Max(TPS) == quota
func NewTPSController(quota int) *TPSController {
	ctrl := TPSController{}
	ctrl.quota = quota
	if ctrl.quota <= 0 {
		return &ctrl
	}

	interval := time.Second / time.Duration(ctrl.quota)
	if interval <= 0 {
		interval = time.Nanosecond
	}
	ctrl.bucket = ratelimit.NewBucket(interval, int64(ctrl.quota))

	return &ctrl
}

// Take 从事务桶中取1个令牌, 如果当前无可用令牌, 等待y秒时间, 直到出现可用令牌.
func (ctrl *TPSController) Take() {
	ctrl.TakeX(1)
}

// TakeX 从事务桶中取x个令牌, 如果当前无可用令牌, 等待y秒时间, 直到出现可用令牌.
func (ctrl *TPSController) TakeX(x int64) {
	if ctrl.bucket == nil {
		return
	}
	waitUntilAvailable := ctrl.bucket.Take(x)
	if waitUntilAvailable != 0 {
		log.Warn().Msgf("tps quota limit exceeds, wait %s secs until resource turns to be available", waitUntilAvailable.String())
		time.Sleep(waitUntilAvailable)
	}
}

// allow 返回本次尝试允许传输的字节数, 不超过桶容量.
func (ctrl *TPSController) allow(want int) int {
	if ctrl.bucket == nil || want <= ctrl.quota {
		return want
	}
	return ctrl.quota
}

// charge 为实际传输的n个字节扣除令牌.
// Only transferred bytes cost tokens, so attempts that move nothing are free.
// The wait happens inside the attempt, so callers never see Retry for it.
func (ctrl *TPSController) charge(n int) {
	if n > 0 {
		ctrl.TakeX(int64(n))
	}
}

// Reader 返回限速的streamio.Reader.
func (ctrl *TPSController) Reader(r streamio.Reader) *Reader {
	return &Reader{ctrl: ctrl, inner: r}
}

// Writer 返回限速的streamio.Writer.
func (ctrl *TPSController) Writer(w streamio.Writer) *Writer {
	return &Writer{ctrl: ctrl, inner: w}
}

// Reader 限速读取.
type Reader struct {
	ctrl  *TPSController
	inner streamio.Reader
}

func (r *Reader) Read(p []byte) (streamio.Outcome, error) {
	o, err := r.inner.Read(p[:r.ctrl.allow(len(p))])
	if err != nil || !o.Progressed() {
		return o, err
	}
	r.ctrl.charge(o.N())
	return streamio.Transferred(o.N(), len(p)), nil
}

func (r *Reader) Initializer() streamio.Initializer {
	return streamio.InitializerOf(r.inner)
}

func (r *Reader) NewError(kind streamio.Kind, cause error) error {
	return streamio.ConstructError(r.inner, kind, cause)
}

// Writer 限速写入.
type Writer struct {
	ctrl  *TPSController
	inner streamio.Writer
}

func (w *Writer) Write(p []byte) (streamio.Outcome, error) {
	o, err := w.inner.Write(p[:w.ctrl.allow(len(p))])
	if err != nil || !o.Progressed() {
		return o, err
	}
	w.ctrl.charge(o.N())
	return streamio.Transferred(o.N(), len(p)), nil
}

func (w *Writer) Flush() error {
	return w.inner.Flush()
}

func (w *Writer) NewError(kind streamio.Kind, cause error) error {
	return streamio.ConstructError(w.inner, kind, cause)
}
