package main

import "sort"

// wordBody is the behavior of a dictionary entry.
type wordBody interface {
	exec(vm *VM)
}

// primitive is a host implemented word; compiled references to it are
// inlined rather than called by name.
type primitive struct{ *op }

func (prim primitive) exec(vm *VM) { prim.run(vm, nil, 0) }

// compiled is a colon definition.
type compiled thread

func (code compiled) exec(vm *VM) { vm.exec(thread(code), 0) }

// dataWord is made by create: it pushes its heap address, then runs any
// action installed by does>.
type dataWord struct {
	addr int
	does thread
	at   int
}

func (data *dataWord) exec(vm *VM) {
	vm.push(numAddr(data.addr))
	if data.does != nil {
		vm.exec(data.does, data.at)
	}
}

type word struct {
	name      string
	immediate bool
	body      wordBody
}

// dictionary maps names to words through an interned symbol table, so that
// compiled references are resolved at call time: redefining a word affects
// all callers, and a reference may precede its definition.
type dictionary struct {
	strings []string
	symbols map[string]wordRef
	defs    []*word
	last    *word
}

func (dict *dictionary) name(ref wordRef) string {
	if i := int(ref) - 1; i >= 0 && i < len(dict.strings) {
		return dict.strings[i]
	}
	return ""
}

// ref returns the symbol for name, interning it if necessary.
func (dict *dictionary) ref(name string) wordRef {
	ref, defined := dict.symbols[name]
	if !defined {
		if dict.symbols == nil {
			dict.symbols = make(map[string]wordRef)
		}
		dict.strings = append(dict.strings, name)
		dict.defs = append(dict.defs, nil)
		ref = wordRef(len(dict.strings))
		dict.symbols[name] = ref
	}
	return ref
}

// resolve returns the current definition of ref, or nil if undefined.
func (dict *dictionary) resolve(ref wordRef) *word {
	if i := int(ref) - 1; i >= 0 && i < len(dict.defs) {
		return dict.defs[i]
	}
	return nil
}

func (dict *dictionary) lookup(name string) *word {
	if ref, defined := dict.symbols[name]; defined {
		return dict.resolve(ref)
	}
	return nil
}

// define binds name to a new word, replacing any prior definition.
func (dict *dictionary) define(name string, body wordBody) *word {
	w := &word{name: name, body: body}
	ref := dict.ref(name)
	dict.defs[ref-1] = w
	dict.last = w
	return w
}

// names returns the sorted names of all defined words.
func (dict *dictionary) names() []string {
	names := make([]string, 0, len(dict.defs))
	for i, w := range dict.defs {
		if w != nil {
			names = append(names, dict.strings[i])
		}
	}
	sort.Strings(names)
	return names
}
