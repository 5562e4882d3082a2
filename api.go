package main

import (
	"context"
	"errors"
	"io"
	"io/fs"

	"github.com/jcorbin/primeforth/internal/num"
	"github.com/jcorbin/primeforth/internal/panicerr"
)

// New creates a VM; unless WithoutKernel is given, the kernel prelude is
// queued ahead of all other input.
func New(opts ...VMOption) *VM {
	var vm VM
	defaultOptions.apply(&vm)
	VMOptions(opts).apply(&vm)
	vm.init()
	return &vm
}

// Run interprets input until it is exhausted, the word bye is read, or ctx
// is done. Errors in the interpreted program are reported to the output and
// do not end the session; only context and output failures are returned.
// Concurrent calls are serialized.
func (vm *VM) Run(ctx context.Context) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	err := panicerr.Recover("VM", func() error {
		return vm.interpret(ctx)
	})
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	if panicerr.IsPanic(err) {
		vm.logf("!", "%v\n%s", err, panicerr.PanicStack(err))
	}
	return err
}

// Stack returns a copy of the data stack.
func (vm *VM) Stack() []num.Value {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return append([]num.Value(nil), vm.stack...)
}

func WithInput(r io.Reader) VMOption             { return withInput(r) }
func WithInputWriter(w io.WriterTo) VMOption     { return inputWriterOption{w} }
func WithLineReader(lr LineReader) VMOption      { return lineReaderOption{lr} }
func WithOutput(w io.Writer) VMOption            { return withOutput(w) }
func WithTee(w io.Writer) VMOption               { return withTee(w) }
func WithHeapSize(cells int) VMOption            { return withHeapSize(cells) }
func WithCallDepth(depth int) VMOption           { return withCallDepth(depth) }
func WithHost(host Host) VMOption                { return hostOption{host} }
func WithPalette(color, background int) VMOption { return paletteOption{color, background} }
func WithColor(enabled bool) VMOption            { return withColor(enabled) }
func WithoutKernel() VMOption                    { return bareOption(true) }
func WithFiles(files fs.FS) VMOption             { return filesOption{files} }

func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }
