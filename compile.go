package main

import (
	"fmt"
	"strings"

	"github.com/jcorbin/primeforth/internal/num"
)

type ctlTag int

const (
	ctlColon ctlTag = iota + 1
	ctlIf
	ctlElse
	ctlBegin
	ctlWhile
	ctlDo
)

var ctlNames = [...]string{
	ctlColon: ":",
	ctlIf:    "if",
	ctlElse:  "else",
	ctlBegin: "begin",
	ctlWhile: "while",
	ctlDo:    "do",
}

func (tag ctlTag) String() string {
	if int(tag) < len(ctlNames) && ctlNames[tag] != "" {
		return ctlNames[tag]
	}
	return fmt.Sprintf("ctlTag(%d)", int(tag))
}

// ctlFrame records an open control construct: the position of its branch
// placeholder or loop head, or the name of a colon definition.
type ctlFrame struct {
	tag  ctlTag
	pos  int
	name string
}

// compiler holds the state of the top level unit being compiled.
type compiler struct {
	ctl  []ctlFrame
	code thread
}

func (comp *compiler) reset() {
	comp.ctl = comp.ctl[:0]
	comp.code = nil
}

func (comp *compiler) open(tag ctlTag, pos int) {
	comp.ctl = append(comp.ctl, ctlFrame{tag: tag, pos: pos})
}

// close pops the innermost open construct, which must carry one of the
// wanted tags.
func (comp *compiler) close(word string, want ...ctlTag) (ctlFrame, error) {
	i := len(comp.ctl) - 1
	if i < 0 {
		return ctlFrame{}, structError{word, "without " + tagList(want)}
	}
	frame := comp.ctl[i]
	for _, tag := range want {
		if frame.tag == tag {
			comp.ctl = comp.ctl[:i]
			return frame, nil
		}
	}
	return ctlFrame{}, structError{word, fmt.Sprintf("preceded by %v (not %v)", frame.tag, tagList(want))}
}

func tagList(tags []ctlTag) string {
	parts := make([]string, len(tags))
	for i, tag := range tags {
		parts[i] = tag.String()
	}
	return strings.Join(parts, " or ")
}

// controlWords are handled by the compiler itself, rather than by compiling
// a reference to a dictionary word.
var controlWords map[string]func(vm *VM) error

func init() {
	controlWords = map[string]func(vm *VM) error{
		":":      (*VM).compileColon,
		";":      (*VM).compileSemi,
		"if":     (*VM).compileIf,
		"else":   (*VM).compileElse,
		"then":   (*VM).compileThen,
		"begin":  (*VM).compileBegin,
		"until":  (*VM).compileUntil,
		"again":  (*VM).compileAgain,
		"while":  (*VM).compileWhile,
		"repeat": (*VM).compileRepeat,
		"do":     (*VM).compileDo,
		"loop":   func(vm *VM) error { return vm.compileLoop("loop", opLoop) },
		"+loop":  func(vm *VM) error { return vm.compileLoop("+loop", opPlusLoop) },
		"i":      func(vm *VM) error { vm.comp.code.emit(opI); return nil },
		"j":      func(vm *VM) error { vm.comp.code.emit(opJ); return nil },
	}
}

// compile reads words until a complete unit has been compiled: a single
// word, or everything up to the close of an outer construct such as a colon
// definition or a top level loop.
func (vm *VM) compile() (thread, error) {
	vm.comp.reset()
	prompt := promptEmpty
	if len(vm.stack) > 0 {
		prompt = promptStack
	}
	for {
		token, err := vm.src.next(prompt)
		if err != nil {
			return nil, err
		}
		if err := vm.compileWord(token); err != nil {
			vm.comp.reset()
			return nil, err
		}
		if len(vm.comp.ctl) == 0 {
			code := vm.comp.code
			vm.comp.code = nil
			return code, nil
		}
		prompt = promptMore
	}
}

func (vm *VM) compileWord(token string) error {
	if handle, ok := controlWords[token]; ok {
		return handle(vm)
	}

	if w := vm.dict.lookup(token); w != nil {
		if w.immediate {
			vm.logf(">", "immediate %v", token)
			vm.runWord(w)
			return nil
		}
		if prim, ok := w.body.(primitive); ok {
			vm.comp.code.emit(prim.op)
			return nil
		}
		vm.comp.code.emit(opCall, vm.dict.ref(token))
		return nil
	}

	if val, ok := num.Parse(token); ok {
		vm.comp.code.emit(opLit, val)
		return nil
	}

	// a forward reference, resolved when called
	vm.comp.code.emit(opCall, vm.dict.ref(token))
	return nil
}

func (vm *VM) compileColon() error {
	if len(vm.comp.ctl) > 0 {
		var open []string
		for _, frame := range vm.comp.ctl {
			open = append(open, frame.tag.String())
		}
		return structError{":", "inside " + strings.Join(open, " ")}
	}
	name, err := vm.src.next(promptMore)
	if err != nil {
		return err
	}
	vm.comp.ctl = append(vm.comp.ctl, ctlFrame{tag: ctlColon, pos: len(vm.comp.code), name: name})
	return nil
}

func (vm *VM) compileSemi() error {
	frame, err := vm.comp.close(";", ctlColon)
	if err != nil {
		return err
	}
	code := make(thread, len(vm.comp.code)-frame.pos)
	copy(code, vm.comp.code[frame.pos:])
	vm.comp.code = vm.comp.code[:frame.pos]
	vm.dict.define(frame.name, compiled(code))
	if vm.logfn != nil {
		vm.logf(":", "%v %v", frame.name, vmDumper{vm: vm}.formatCode(code, 0))
	}
	return nil
}

func (vm *VM) compileIf() error {
	vm.comp.open(ctlIf, vm.comp.code.placeholder(opBranchZero))
	return nil
}

func (vm *VM) compileElse() error {
	frame, err := vm.comp.close("else", ctlIf)
	if err != nil {
		return err
	}
	vm.comp.open(ctlElse, vm.comp.code.placeholder(opBranch))
	vm.comp.code.patch(frame.pos)
	return nil
}

func (vm *VM) compileThen() error {
	frame, err := vm.comp.close("then", ctlIf, ctlElse)
	if err != nil {
		return err
	}
	vm.comp.code.patch(frame.pos)
	return nil
}

func (vm *VM) compileBegin() error {
	vm.comp.open(ctlBegin, len(vm.comp.code))
	return nil
}

func (vm *VM) compileUntil() error {
	frame, err := vm.comp.close("until", ctlBegin)
	if err != nil {
		return err
	}
	vm.comp.code.emit(opBranchZero, target(frame.pos))
	return nil
}

func (vm *VM) compileAgain() error {
	frame, err := vm.comp.close("again", ctlBegin)
	if err != nil {
		return err
	}
	vm.comp.code.emit(opBranch, target(frame.pos))
	return nil
}

func (vm *VM) compileWhile() error {
	i := len(vm.comp.ctl) - 1
	if i < 0 {
		return structError{"while", "without begin"}
	}
	if tag := vm.comp.ctl[i].tag; tag != ctlBegin {
		return structError{"while", fmt.Sprintf("preceded by %v (not begin)", tag)}
	}
	vm.comp.open(ctlWhile, vm.comp.code.placeholder(opBranchZero))
	return nil
}

func (vm *VM) compileRepeat() error {
	while, err := vm.comp.close("repeat", ctlWhile)
	if err != nil {
		return err
	}
	begin, err := vm.comp.close("repeat", ctlBegin)
	if err != nil {
		return err
	}
	vm.comp.code.emit(opBranch, target(begin.pos))
	vm.comp.code.patch(while.pos)
	return nil
}

func (vm *VM) compileDo() error {
	vm.comp.code.emit(opDo)
	vm.comp.open(ctlDo, len(vm.comp.code))
	return nil
}

func (vm *VM) compileLoop(word string, step *op) error {
	frame, err := vm.comp.close(word, ctlDo)
	if err != nil {
		return err
	}
	vm.comp.code.emit(step, target(frame.pos))
	return nil
}
