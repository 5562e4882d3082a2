package main

import (
	"context"
	"io"
	"io/fs"
	"os"
	"sync"

	"github.com/jcorbin/primeforth/internal/canvas"
	"github.com/jcorbin/primeforth/internal/num"
)

// VM is a Forth engine: it tokenizes input, compiles each top level unit to
// threaded code, and executes it. Words are bound by name when called, so a
// redefinition takes effect in every word that refers to it.
type VM struct {
	Core
	mu sync.Mutex

	src  wordSource
	dict dictionary
	comp compiler
	heap heap

	stack  []num.Value
	rstack []frame

	depth    int
	maxDepth int

	// lastCreated is the data word that a following does> modifies.
	lastCreated *dataWord

	host      Host
	color, bg int

	// files holds the scripts named by load and list.
	files fs.FS

	bare bool
	ctx  context.Context
}

func (vm *VM) init() {
	for _, o := range primitiveOps() {
		vm.dict.define(o.name, primitive{o})
	}
	vm.dict.last = nil
	if vm.host == nil {
		vm.host = &canvas.Canvas{}
	}
	if vm.files == nil {
		vm.files = os.DirFS(".")
	}
	if !vm.bare {
		vm.src.Queue = append([]io.Reader{kernelReader()}, vm.src.Queue...)
	}
	vm.src.beforeRead = vm.out.Flush
}
