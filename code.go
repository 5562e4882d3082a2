package main

import (
	"github.com/jcorbin/primeforth/internal/num"
)

// thread is a sequence of compiled steps, each followed by any operands it
// consumes. Operands are literal values, word references, or branch targets.
type thread []interface{}

// op is one executable step. Its run function receives the code being
// executed and the position just past the op; it returns the position to
// continue at, having consumed any operands or taken a branch.
type op struct {
	name string
	args int
	run  func(vm *VM, code thread, p int) int
}

// simpleOp builds an op that consumes no operands.
func simpleOp(name string, fn func(vm *VM)) *op {
	return &op{name, 0, func(vm *VM, _ thread, p int) int {
		fn(vm)
		return p
	}}
}

// target is a branch destination within a thread.
type target int

// wordRef names a word by dictionary symbol, resolved when called.
type wordRef uint

var (
	opLit = &op{"lit", 1, func(vm *VM, code thread, p int) int {
		vm.push(code[p].(num.Value))
		return p + 1
	}}

	opCall = &op{"call", 1, func(vm *VM, code thread, p int) int {
		vm.call(code[p].(wordRef))
		return p + 1
	}}

	opBranch = &op{"branch", 1, func(vm *VM, code thread, p int) int {
		return int(code[p].(target))
	}}

	opBranchZero = &op{"0branch", 1, func(vm *VM, code thread, p int) int {
		if !vm.pop().Truth() {
			return int(code[p].(target))
		}
		return p + 1
	}}

	opDo = simpleOp("(do)", func(vm *VM) {
		start, limit := vm.pop(), vm.pop()
		vm.rpush(frame{kind: loopFrame, index: start, limit: limit})
	})

	opLoop = &op{"(loop)", 1, func(vm *VM, code thread, p int) int {
		f := vm.rtop("loop", loopFrame)
		f.index = num.Add(f.index, num.Int(1))
		if num.Compare(f.index, f.limit) >= 0 {
			vm.rdrop()
			return p + 1
		}
		return int(code[p].(target))
	}}

	opPlusLoop = &op{"(+loop)", 1, func(vm *VM, code thread, p int) int {
		step := vm.pop()
		f := vm.rtop("+loop", loopFrame)
		f.index = num.Add(f.index, step)
		var done bool
		if num.Compare(step, num.Int(0)) >= 0 {
			done = num.Compare(f.index, f.limit) >= 0
		} else {
			done = num.Compare(f.index, f.limit) < 0
		}
		if done {
			vm.rdrop()
			return p + 1
		}
		return int(code[p].(target))
	}}

	opI = simpleOp("i", func(vm *VM) { vm.push(vm.loopIndex("i", 0)) })
	opJ = simpleOp("j", func(vm *VM) { vm.push(vm.loopIndex("j", 1)) })
)

// emit appends a step and its operands to the code being compiled.
func (code *thread) emit(o *op, operands ...interface{}) {
	*code = append(*code, o)
	*code = append(*code, operands...)
}

// placeholder emits a branching op with an unresolved target, returning the
// operand position for a later patch.
func (code *thread) placeholder(o *op) int {
	code.emit(o, target(-1))
	return len(*code) - 1
}

// patch resolves a placeholder to branch to the current end of code.
func (code thread) patch(at int) {
	code[at] = target(len(code))
}
