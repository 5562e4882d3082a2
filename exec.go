package main

import (
	"context"
	"errors"
	"fmt"
	"io"
)

const defaultCallDepth = 1024

var errCallDepth = errors.New("call depth exceeded")

// exec runs code from position p until it runs off the end.
func (vm *VM) exec(code thread, p int) {
	for p < len(code) {
		o, ok := code[p].(*op)
		if !ok {
			vm.halt(codeError(p))
		}
		if vm.logfn != nil {
			vm.logf("@", "%v %v s:%v r:%v", p, o.name, vm.stack, vm.rstack)
		}
		p = o.run(vm, code, p+1)
		if err := vm.ctx.Err(); err != nil {
			vm.halt(err)
		}
	}
}

// call runs the word currently bound to ref; an unknown word is reported
// and execution continues.
func (vm *VM) call(ref wordRef) {
	w := vm.dict.resolve(ref)
	if w == nil {
		vm.report("", unknownWordError(vm.dict.name(ref)))
		return
	}
	vm.runWord(w)
}

func (vm *VM) runWord(w *word) {
	if vm.maxDepth > 0 && vm.depth >= vm.maxDepth {
		vm.halt(errCallDepth)
	}
	vm.depth++
	defer func() { vm.depth-- }()
	if vm.logfn != nil {
		vm.logf(">", "%v", w.name)
	}
	w.body.exec(vm)
}

// cycle compiles and then executes one top level unit.
func (vm *VM) cycle() (err error) {
	defer func() {
		if e := recover(); e != nil {
			he, ok := e.(haltError)
			if !ok {
				panic(e)
			}
			err = he.error
		}
	}()
	code, err := vm.compile()
	if err != nil {
		return err
	}
	vm.depth = 0
	vm.exec(code, 0)
	return nil
}

// interpret runs cycles until input ends, the context is done, or output
// fails. Other errors are reported, after which the rest of the offending
// line is discarded and the return stack reset; the data stack persists.
func (vm *VM) interpret(ctx context.Context) error {
	vm.ctx = ctx
	defer func() { vm.ctx = nil }()
	for {
		err := vm.cycle()
		if err == nil {
			continue
		}
		if errors.Is(err, io.EOF) {
			return vm.flush()
		}
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			vm.flush()
			return err
		}
		var ioe ioError
		if errors.As(err, &ioe) {
			return err
		}
		if err := vm.reportError(err); err != nil {
			return err
		}
		vm.src.flush()
		vm.rstack = vm.rstack[:0]
		vm.comp.reset()
	}
}

func (vm *VM) flush() error {
	if err := vm.out.Flush(); err != nil {
		return ioError{err}
	}
	return nil
}

// reportError writes an error line, prefixed by the location of any
// non-interactive input that caused it.
func (vm *VM) reportError(err error) (rerr error) {
	defer func() {
		if e := recover(); e != nil {
			he, ok := e.(haltError)
			if !ok {
				panic(e)
			}
			rerr = he.error
		}
	}()
	vm.logf("!", "%v", err)
	prefix := "error"
	if !vm.src.interactive && vm.src.loc.Name != "" {
		prefix = fmt.Sprintf("%v: error", vm.src.loc)
	}
	vm.report(prefix, err)
	return nil
}
