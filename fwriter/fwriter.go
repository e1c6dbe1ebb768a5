package fwriter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	streamio "github.com/usherasnick/stream-gadgets/stream-io"
)

var ErrFinished = errors.New("fwriter: writer already committed or aborted")

// SafeWriter 先写临时文件, Commit时原子替换目标文件, 实现streamio.Writer.
// Only one SafeWriter per target file can exist at a time, across processes.
type SafeWriter struct {
	flock     *FLock
	writer    *os.File
	fn        string
	tmpSuffix string
	done      bool
}

// NewSafeWriter 新建SafeWriter对象.
func NewSafeWriter(fn string) (*SafeWriter, error) {
	if err := os.MkdirAll(filepath.Dir(fn), 0750); err != nil {
		return nil, err
	}

	flock := NewFLock(fn)
	if err := flock.Acquire(); err != nil {
		return nil, err
	}

	tmpSuffix := fmt.Sprintf(".tmp%v", time.Now().UnixNano())

	writer, err := os.OpenFile(fn+tmpSuffix, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		flock.Release() // nolint
		flock.Remove()  // nolint
		return nil, err
	}

	return &SafeWriter{
		flock:     flock,
		writer:    writer,
		fn:        fn,
		tmpSuffix: tmpSuffix,
	}, nil
}

// Write 写一次字节流. An interrupted write is Retry, a finished writer is EndOfStream.
func (w *SafeWriter) Write(p []byte) (streamio.Outcome, error) {
	if w.done || len(p) == 0 {
		return streamio.EndOfStream(), nil
	}
	n, err := w.writer.Write(p)
	if n > 0 {
		return streamio.Transferred(n, len(p)), nil
	}
	if errors.Is(err, syscall.EINTR) {
		return streamio.Retry(), nil
	}
	return streamio.EndOfStream(), err
}

// WriteString 写字符串, 直到全部写入或出错.
func (w *SafeWriter) WriteString(s string) error {
	return streamio.WriteAll(w, []byte(s))
}

// Flush 将临时文件刷到硬盘, 不改变目标文件.
func (w *SafeWriter) Flush() error {
	if w.done {
		return ErrFinished
	}
	return w.writer.Sync()
}

// Commit 持久化内存数据到硬盘, 并替换目标文件.
func (w *SafeWriter) Commit() error {
	if w.done {
		return ErrFinished
	}
	defer w.exit()
	if err := w.writer.Sync(); err != nil {
		return err
	}
	if err := os.Rename(w.fn+w.tmpSuffix, w.fn); err != nil {
		return err
	}
	log.Debug().Msgf("committed %s", w.fn)
	return nil
}

// Abort 放弃当前写操作.
func (w *SafeWriter) Abort() {
	if w.done {
		return
	}
	w.exit()
}

func (w *SafeWriter) exit() {
	w.done = true
	w.writer.Close()              // nolint
	w.flock.Release()             // nolint
	w.flock.Remove()              // nolint
	os.Remove(w.fn + w.tmpSuffix) // nolint
}
