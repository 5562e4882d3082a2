package main

import (
	"errors"
	"io"
	"io/fs"
	"io/ioutil"
	"math"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/jcorbin/primeforth/internal/num"
	"github.com/jcorbin/primeforth/internal/runeio"
)

// primitiveOps returns the builtin words installed in every dictionary.
func primitiveOps() []*op {
	var ops []*op
	add := func(name string, fn func(vm *VM)) { ops = append(ops, simpleOp(name, fn)) }

	//// Arithmetic and logic

	add("+", binary(num.Add))
	add("-", binary(num.Sub))
	add("*", binary(num.Mul))
	add("/", checked(num.Div))
	add("mod", checked(num.Mod))
	add("and", binary(num.And))
	add("or", binary(num.Or))
	add("=", compare(func(c int) bool { return c == 0 }))
	add("<>", compare(func(c int) bool { return c != 0 }))
	add("<", compare(func(c int) bool { return c < 0 }))
	add(">", compare(func(c int) bool { return c > 0 }))
	add("lte", compare(func(c int) bool { return c <= 0 }))
	add("1+", func(vm *VM) { vm.push(num.Add(vm.pop(), num.Int(1))) })
	add("floor", func(vm *VM) { vm.push(num.Floor(vm.pop())) })
	add("sqrt", unaryMath(math.Sqrt))
	add("sin", unaryMath(math.Sin))
	add("cos", unaryMath(math.Cos))
	add("tan", unaryMath(math.Tan))
	add("asin", unaryMath(math.Asin))
	add("acos", unaryMath(math.Acos))
	add("atan", unaryMath(math.Atan))

	//// Stack manipulation

	add("dup", func(vm *VM) { vm.push(vm.peek(0)) })
	add("drop", func(vm *VM) { vm.pop() })
	add("swap", func(vm *VM) {
		b, a := vm.pop(), vm.pop()
		vm.push(b, a)
	})
	add("over", func(vm *VM) { vm.push(vm.peek(1)) })
	add("rot", func(vm *VM) {
		c, b, a := vm.pop(), vm.pop(), vm.pop()
		vm.push(b, c, a)
	})
	add(">r", func(vm *VM) { vm.rpush(frame{kind: valueFrame, index: vm.pop()}) })
	add("r>", func(vm *VM) {
		f := vm.rtop("r>", valueFrame)
		val := f.index
		vm.rdrop()
		vm.push(val)
	})
	add("r@", func(vm *VM) { vm.push(vm.rtop("r@", valueFrame).index) })

	//// Output

	add(".", func(vm *VM) { vm.writef("%v ", vm.pop()) })
	add("emit", func(vm *VM) { vm.writeRune(rune(vm.popInt() & 0xff)) })
	add("type", func(vm *VM) {
		n, addr := vm.popInt(), vm.popInt()
		var sb strings.Builder
		for i := 0; i < n; i++ {
			sb.WriteRune(rune(vm.load(addr+i).Int() & 0xff))
		}
		vm.write(sb.String())
	})
	add("dump", func(vm *VM) { vm.writef("ds = %v\n", vm.stack) })
	add("words", func(vm *VM) { vm.writef("%v\n", strings.Join(vm.dict.names(), " ")) })
	add("ddump", func(vm *VM) {
		vm.write(repr.String(vmDumper{vm: vm}.summarize(), repr.Indent("  ")) + "\n")
	})
	add("idump", func(vm *VM) {
		var names []string
		for _, name := range vm.dict.names() {
			if vm.dict.lookup(name).immediate {
				names = append(names, name)
			}
		}
		vm.write(repr.String(names) + "\n")
	})

	//// Words from the input

	add("word", func(vm *VM) {
		token := vm.nextWord()
		for _, r := range token {
			vm.push(num.Int(int(r)))
		}
		vm.push(num.Int(len(token)))
	})
	add("char", func(vm *VM) {
		r, err := runeio.ParseChar(vm.nextWord())
		vm.haltif(err)
		vm.push(num.Int(int(r)))
	})
	add("see", func(vm *VM) {
		name := vm.nextWord()
		w := vm.dict.lookup(name)
		if w == nil {
			vm.report("", unknownWordError(name))
			return
		}
		vm.write(vmDumper{vm: vm}.describe(w))
	})
	add("load", func(vm *VM) {
		f, err := vm.openSource(vm.nextWord())
		if err != nil {
			vm.report("", err)
			return
		}
		vm.src.Push(f)
	})
	add("list", func(vm *VM) {
		f, err := vm.openSource(vm.nextWord())
		if err != nil {
			vm.report("", err)
			return
		}
		defer f.Close()
		b, err := ioutil.ReadAll(f)
		vm.haltif(err)
		vm.write(string(b))
	})

	//// Heap and defining words

	add("here", func(vm *VM) { vm.push(numAddr(vm.heap.next)) })
	add(",", func(vm *VM) { vm.comma(vm.pop()) })
	add("@", func(vm *VM) { vm.push(vm.load(vm.popInt())) })
	add("!", func(vm *VM) {
		addr, val := vm.popInt(), vm.pop()
		vm.store(addr, val)
	})
	add("allot", func(vm *VM) { vm.allot(vm.popInt()) })
	add("create", func(vm *VM) {
		name := vm.nextWord()
		data := &dataWord{addr: vm.heap.next}
		vm.dict.define(name, data)
		vm.lastCreated = data
	})
	add("immediate", func(vm *VM) {
		if vm.dict.last != nil {
			vm.dict.last.immediate = true
		}
	})
	ops = append(ops, &op{"does>", 0, func(vm *VM, code thread, p int) int {
		if vm.lastCreated == nil {
			vm.halt(errNoCreate)
		}
		vm.lastCreated.does, vm.lastCreated.at = code, p
		return len(code)
	}})

	return append(ops, hostOps()...)
}

// nextWord reads a word from the input at run time, as create does for the
// name it defines.
func (vm *VM) nextWord() string {
	token, err := vm.src.next(promptMore)
	if err != nil {
		if errors.Is(err, io.EOF) {
			vm.halt(errNoWord)
		}
		vm.halt(err)
	}
	return token
}

func binary(fn func(a, b num.Value) num.Value) func(vm *VM) {
	return func(vm *VM) {
		b, a := vm.pop(), vm.pop()
		vm.push(fn(a, b))
	}
}

func checked(fn func(a, b num.Value) (num.Value, error)) func(vm *VM) {
	return func(vm *VM) {
		b, a := vm.pop(), vm.pop()
		val, err := fn(a, b)
		vm.haltif(err)
		vm.push(val)
	}
}

func compare(test func(c int) bool) func(vm *VM) {
	return func(vm *VM) {
		b, a := vm.pop(), vm.pop()
		vm.push(num.Bool(test(num.Compare(a, b))))
	}
}

func unaryMath(fn func(float64) float64) func(vm *VM) {
	return func(vm *VM) { vm.push(num.Math(fn, vm.pop())) }
}

// sourceExt is appended to the names given to load and list.
const sourceExt = ".fth"

// openSource opens a named script from the VM's file system.
func (vm *VM) openSource(name string) (io.ReadCloser, error) {
	fname := name + sourceExt
	f, err := vm.files.Open(fname)
	if err != nil {
		return nil, missingSourceError(fname)
	}
	return sourceFile{f, fname}, nil
}

type sourceFile struct {
	fs.File
	name string
}

func (sf sourceFile) Name() string { return sf.name }
