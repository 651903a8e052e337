// Package console contains interfaces and structs to work with the console.
package console

import (
	"bytes"
	"io"
	"sync"
)

// Writer wraps one of the standard output streams and synchronizes the
// writes to it through a shared mutex.
type Writer struct {
	RawOut io.Writer
	Mutex  *sync.Mutex
	Writer io.Writer
	IsTTY  bool
}

// Write implements io.Writer. On a TTY every line also erases till the
// end of the line, so partially overwritten terminal content does not
// leak through.
func (w *Writer) Write(p []byte) (n int, err error) {
	origLen := len(p)
	if w.IsTTY {
		p = bytes.ReplaceAll(p, []byte{'\n'}, []byte("\x1b[0K\n"))
	}

	w.Mutex.Lock()
	n, err = w.Writer.Write(p)
	w.Mutex.Unlock()

	if err != nil && n < origLen {
		return n, err
	}
	return origLen, err
}
