// Package flushio buffers engine output until the engine asks for it to be
// flushed: before reading another line, before presenting a frame, and when
// a session ends.
package flushio

import (
	"bufio"
	"bytes"
	"io"
	"io/ioutil"
	"strings"
)

// WriteFlusher is an output stream with an explicit Flush.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

// Discard drops all output.
var Discard WriteFlusher = nopFlusher{ioutil.Discard}

// NewWriteFlusher returns w if it already flushes, and a buffered writer
// over it otherwise. In-memory builders are written directly.
func NewWriteFlusher(w io.Writer) WriteFlusher {
	switch impl := w.(type) {
	case nil:
		return Discard
	case WriteFlusher:
		return impl
	case *strings.Builder, *bytes.Buffer:
		return nopFlusher{w}
	}
	if w == ioutil.Discard {
		return Discard
	}
	return bufio.NewWriter(w)
}

type nopFlusher struct{ io.Writer }

func (nopFlusher) Flush() error { return nil }

// Tee returns a WriteFlusher copying every write to each of wfs; nested tees
// are flattened and Discard-s dropped.
func Tee(wfs ...WriteFlusher) WriteFlusher {
	var all tee
	for _, wf := range wfs {
		switch impl := wf.(type) {
		case nil:
		case tee:
			all = append(all, impl...)
		default:
			if wf != Discard {
				all = append(all, wf)
			}
		}
	}
	switch len(all) {
	case 0:
		return Discard
	case 1:
		return all[0]
	}
	return all
}

type tee []WriteFlusher

func (all tee) Write(p []byte) (int, error) {
	for _, wf := range all {
		if _, err := wf.Write(p); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

// Flush flushes every stream, returning the first error.
func (all tee) Flush() error {
	var first error
	for _, wf := range all {
		if err := wf.Flush(); first == nil {
			first = err
		}
	}
	return first
}
