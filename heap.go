package main

import (
	"github.com/jcorbin/primeforth/internal/mem"
	"github.com/jcorbin/primeforth/internal/num"
)

const defaultHeapSize = 2048

// heap is the bounded cell memory behind create, allot and ",".
type heap struct {
	mem.Cells
	next int // next free cell
}

func numAddr(addr int) num.Value { return num.Int(addr) }

func (vm *VM) allot(n int) int {
	if n < 0 {
		vm.halt(errNegativeAllot)
	}
	addr := vm.heap.next
	if limit := int(vm.heap.Limit); addr+n > limit {
		vm.halt(mem.LimitError{Addr: limit, Op: "allot"})
	}
	vm.heap.next += n
	return addr
}

func (vm *VM) comma(val num.Value) {
	addr := vm.allot(1)
	vm.haltif(vm.heap.Stor(addr, val))
}

func (vm *VM) load(addr int) num.Value {
	val, err := vm.heap.Load(addr)
	vm.haltif(err)
	return val
}

func (vm *VM) store(addr int, val num.Value) {
	vm.haltif(vm.heap.Stor(addr, val))
}
