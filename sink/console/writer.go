package console

import (
	"io"
	"strconv"
	"sync"
	"sync/atomic"
)

const (
	lineWriterDefaultCap = 256
	lineWriterMaxCap     = 64 << 10

	lineHintMaxPrealloc   = 8 << 10
	lineHintDecayShift    = 3
	lineHintDecayMinDelta = 64
)

// lineWriter accumulates one rendered line and hands it to dst in a single
// Write, so concurrent publishes to an *os.File do not interleave.
type lineWriter struct {
	dst     io.Writer
	buf     []byte
	lastLen int
}

var lineWriterPool = sync.Pool{
	New: func() any {
		return &lineWriter{buf: make([]byte, 0, lineWriterDefaultCap)}
	},
}

func acquireLineWriter(dst io.Writer) *lineWriter {
	lw := lineWriterPool.Get().(*lineWriter)
	lw.dst = dst
	lw.buf = lw.buf[:0]
	lw.lastLen = 0
	return lw
}

func releaseLineWriter(lw *lineWriter) {
	lw.dst = nil
	if cap(lw.buf) > lineWriterMaxCap {
		lw.buf = make([]byte, 0, lineWriterDefaultCap)
	} else {
		lw.buf = lw.buf[:0]
	}
	lw.lastLen = 0
	lineWriterPool.Put(lw)
}

func (lw *lineWriter) reserve(n int) {
	if n <= 0 {
		return
	}
	need := len(lw.buf) + n
	if need <= cap(lw.buf) {
		return
	}
	newCap := max(cap(lw.buf)*2+n, need)
	if newCap > lineWriterMaxCap {
		newCap = need
	}
	newBuf := make([]byte, len(lw.buf), newCap)
	copy(newBuf, lw.buf)
	lw.buf = newBuf
}

func (lw *lineWriter) preallocate(n int) {
	if n <= 0 || len(lw.buf) != 0 {
		return
	}
	lw.reserve(min(n, lineWriterMaxCap))
}

func (lw *lineWriter) writeByte(b byte) {
	lw.buf = append(lw.buf, b)
}

func (lw *lineWriter) writeString(s string) {
	lw.buf = append(lw.buf, s...)
}

func (lw *lineWriter) writeInt(n int64) {
	lw.buf = strconv.AppendInt(lw.buf, n, 10)
}

// writeTail writes the last n bytes of s, or all of s when it is shorter.
func (lw *lineWriter) writeTail(s string, n int) {
	if len(s) > n {
		s = s[len(s)-n:]
	}
	lw.buf = append(lw.buf, s...)
}

func (lw *lineWriter) commit() {
	if len(lw.buf) == 0 || lw.dst == nil {
		lw.lastLen = 0
		lw.buf = lw.buf[:0]
		return
	}
	lw.lastLen = len(lw.buf)
	_, _ = lw.dst.Write(lw.buf)
	lw.buf = lw.buf[:0]
}

// updateLineHint keeps preallocation hints bounded while gradually adapting
// down after transient long lines.
func updateLineHint(hint *atomic.Int64, lineLen int) {
	if hint == nil || lineLen <= 0 {
		return
	}
	if lineLen > lineHintMaxPrealloc {
		lineLen = lineHintMaxPrealloc
	}
	next := int64(lineLen)
	current := hint.Load()
	if current <= 0 {
		hint.Store(next)
		return
	}
	if next >= current {
		if next != current {
			hint.Store(next)
		}
		return
	}
	// Ignore normal line-length jitter; only decay after substantial drops.
	if next*2 > current {
		return
	}
	delta := current - next
	if delta < lineHintDecayMinDelta {
		return
	}
	decayed := current - (delta >> lineHintDecayShift)
	if decayed <= next {
		decayed = next
	} else if decayed == current {
		decayed = current - 1
	}
	if decayed != current {
		hint.Store(decayed)
	}
}
