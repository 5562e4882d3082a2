package main

import (
	"fmt"

	"github.com/jcorbin/primeforth/internal/num"
)

func (vm *VM) push(vals ...num.Value) {
	vm.stack = append(vm.stack, vals...)
}

func (vm *VM) pop() num.Value {
	i := len(vm.stack) - 1
	if i < 0 {
		vm.halt(errStackUnderflow)
	}
	val := vm.stack[i]
	vm.stack = vm.stack[:i]
	return val
}

func (vm *VM) peek(depth int) num.Value {
	i := len(vm.stack) - 1 - depth
	if i < 0 {
		vm.halt(errStackUnderflow)
	}
	return vm.stack[i]
}

// popInt pops a value truncated to an integer, for addresses, counts and
// coordinates.
func (vm *VM) popInt() int { return vm.pop().Int() }

type frameKind int

const (
	loopFrame frameKind = iota + 1
	valueFrame
)

func (kind frameKind) String() string {
	switch kind {
	case loopFrame:
		return "loop"
	case valueFrame:
		return "value"
	}
	return fmt.Sprintf("frameKind(%d)", int(kind))
}

// frame is one entry on the return stack: either an active counted loop or
// a value moved there by >r.
type frame struct {
	kind  frameKind
	index num.Value
	limit num.Value
}

func (f frame) String() string {
	if f.kind == loopFrame {
		return fmt.Sprintf("loop(%v<%v)", f.index, f.limit)
	}
	return fmt.Sprintf("value(%v)", f.index)
}

func (vm *VM) rpush(f frame) {
	if vm.maxDepth > 0 && len(vm.rstack) >= vm.maxDepth {
		vm.halt(errReturnOverflow)
	}
	vm.rstack = append(vm.rstack, f)
}

// rtop returns the top frame, which must be of the given kind.
func (vm *VM) rtop(word string, kind frameKind) *frame {
	i := len(vm.rstack) - 1
	if i < 0 {
		if kind == valueFrame {
			vm.halt(errReturnUnderflow)
		}
		vm.halt(frameError{Word: word, Want: kind})
	}
	if f := &vm.rstack[i]; f.kind != kind {
		vm.halt(frameError{Word: word, Want: kind, Have: f.kind})
	}
	return &vm.rstack[i]
}

func (vm *VM) rdrop() {
	vm.rstack = vm.rstack[:len(vm.rstack)-1]
}

// loopIndex returns the index of an enclosing loop, 0 being the innermost,
// passing over any value frames.
func (vm *VM) loopIndex(word string, outer int) num.Value {
	for i := len(vm.rstack) - 1; i >= 0; i-- {
		if vm.rstack[i].kind != loopFrame {
			continue
		}
		if outer == 0 {
			return vm.rstack[i].index
		}
		outer--
	}
	vm.halt(frameError{Word: word, Want: loopFrame})
	return num.Value{}
}
