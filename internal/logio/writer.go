package logio

import (
	"bytes"
	"sync"
)

// Writer copies program output into a log, one Logf call per output line,
// as with the --log-output flag or when dumping a VM into test logs.
type Writer struct {
	Logf func(string, ...interface{})

	mu      sync.Mutex
	partial []byte
}

// Write logs each line that p completes; a trailing partial line is held
// until a later write ends it, or until Flush.
func (lw *Writer) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	n := len(p)
	for {
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			lw.partial = append(lw.partial, p...)
			return n, nil
		}
		lw.partial = append(lw.partial, p[:i]...)
		lw.emit()
		p = p[i+1:]
	}
}

// Flush logs any held partial line.
func (lw *Writer) Flush() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	if len(lw.partial) > 0 {
		lw.emit()
	}
	return nil
}

// Close calls Flush.
func (lw *Writer) Close() error { return lw.Flush() }

func (lw *Writer) emit() {
	lw.Logf("%s", lw.partial)
	lw.partial = lw.partial[:0]
}
