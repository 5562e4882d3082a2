package main

import (
	"io"
	"io/fs"
	"io/ioutil"
	"strings"

	"github.com/fatih/color"
	"github.com/jcorbin/primeforth/internal/flushio"
	"github.com/jcorbin/primeforth/internal/runeio"
)

type VMOption interface{ apply(vm *VM) }

type VMOptions []VMOption

func (opts VMOptions) apply(vm *VM) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(vm)
		}
	}
}

var defaultOptions = VMOptions{
	withOutput(ioutil.Discard),
	withHeapSize(defaultHeapSize),
	withCallDepth(defaultCallDepth),
	withColor(false),
	paletteOption{defaultColor, defaultBackground},
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(vm *VM) { vm.logfn = logfn }

type inputOption struct{ io.Reader }
type inputWriterOption struct{ io.WriterTo }
type lineReaderOption struct{ LineReader }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type hostOption struct{ Host }
type paletteOption struct{ color, bg int }
type withHeapSize int
type withCallDepth int
type withColor bool
type bareOption bool
type filesOption struct{ fs.FS }

func withInput(r io.Reader) inputOption   { return inputOption{r} }
func withOutput(w io.Writer) outputOption { return outputOption{w} }
func withTee(w io.Writer) teeOption       { return teeOption{w} }

func (i inputOption) apply(vm *VM) {
	vm.src.Queue = append(vm.src.Queue, i.Reader)
}

func (i inputWriterOption) apply(vm *VM) {
	vm.src.Queue = append(vm.src.Queue, writerToReader(i.WriterTo))
}

func (lr lineReaderOption) apply(vm *VM) { vm.src.lines = lr.LineReader }

func (o outputOption) apply(vm *VM) {
	if vm.out != nil {
		vm.out.Flush()
	}
	vm.out = flushio.NewWriteFlusher(o.Writer)
}

func (o teeOption) apply(vm *VM) {
	vm.out = flushio.Tee(vm.out, flushio.NewWriteFlusher(o.Writer))
}

func (h hostOption) apply(vm *VM) { vm.host = h.Host }

func (p paletteOption) apply(vm *VM) { vm.color, vm.bg = p.color, p.bg }

func (size withHeapSize) apply(vm *VM) {
	vm.heap.Limit = uint(size)
}

func (depth withCallDepth) apply(vm *VM) { vm.maxDepth = int(depth) }

func (enabled withColor) apply(vm *VM) {
	if !enabled {
		vm.errColor = nil
		return
	}
	vm.errColor = color.New(color.FgRed)
	vm.errColor.EnableColor()
}

func (bare bareOption) apply(vm *VM) { vm.bare = bool(bare) }

// writerToReader renders a source generator, like the kernel, into a
// reader that keeps the generator's name.
func writerToReader(wt io.WriterTo) io.Reader {
	var sb strings.Builder
	if _, err := wt.WriteTo(&sb); err != nil {
		return errReader{err}
	}
	r := io.Reader(strings.NewReader(sb.String()))
	if nom, ok := wt.(interface{ Name() string }); ok {
		r = runeio.NamedReader(nom.Name(), r)
	}
	return r
}

type errReader struct{ err error }

func (er errReader) Read([]byte) (int, error) { return 0, er.err }

func kernelReader() io.Reader { return writerToReader(kernel) }

func (f filesOption) apply(vm *VM) { vm.files = f.FS }
