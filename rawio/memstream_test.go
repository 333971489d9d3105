package rawio_test

import (
	"fmt"
	"sync"
)

// memStream is an in-memory Stream fake, growing on write, used by every
// test in this package instead of a real file.
type memStream struct {
	mu        sync.Mutex
	data      []byte
	flushes   int
	closed    bool
	failReads bool
}

func newMemStream(data []byte) *memStream {
	return &memStream{data: append([]byte(nil), data...)}
}

func (m *memStream) ReadAt(p []byte, off int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failReads {
		return 0, fmt.Errorf("simulated read failure")
	}
	if off < 0 || off >= int64(len(m.data)) {
		return 0, fmt.Errorf("read at %d: EOF", off)
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, fmt.Errorf("read at %d: short (EOF)", off)
	}
	return n, nil
}

func (m *memStream) WriteAt(p []byte, off int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	end := off + int64(len(p))
	if end > int64(len(m.data)) {
		grown := make([]byte, end)
		copy(grown, m.data)
		m.data = grown
	}
	n := copy(m.data[off:end], p)
	return n, nil
}

func (m *memStream) Size() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.data)), nil
}

func (m *memStream) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flushes++
	return nil
}

func (m *memStream) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *memStream) snapshot() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...)
}
