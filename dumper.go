package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/primeforth/internal/num"
)

type vmDumper struct {
	vm  *VM
	out io.Writer
}

func (dump vmDumper) dump() {
	fmt.Fprintf(dump.out, "# VM Dump\n")
	fmt.Fprintf(dump.out, "  stack: %v\n", dump.vm.stack)
	fmt.Fprintf(dump.out, "  return: %v\n", dump.vm.rstack)
	dump.dumpHeap()
	dump.dumpWords()
}

func (dump vmDumper) dumpHeap() {
	fmt.Fprintf(dump.out, "# Heap %v/%v\n", dump.vm.heap.next, dump.vm.heap.Limit)
	if dump.vm.heap.next == 0 {
		return
	}
	cells := make([]num.Value, dump.vm.heap.next)
	if err := dump.vm.heap.LoadInto(0, cells); err != nil {
		fmt.Fprintf(dump.out, "  %v\n", err)
		return
	}
	const perLine = 8
	for addr := 0; addr < len(cells); addr += perLine {
		end := addr + perLine
		if end > len(cells) {
			end = len(cells)
		}
		fmt.Fprintf(dump.out, "  @%-4v %v\n", addr, cells[addr:end])
	}
}

func (dump vmDumper) dumpWords() {
	fmt.Fprintf(dump.out, "# Words\n")
	for _, name := range dump.vm.dict.names() {
		w := dump.vm.dict.lookup(name)
		if _, isPrim := w.body.(primitive); isPrim {
			continue
		}
		fmt.Fprintf(dump.out, "  %v", dump.describe(w))
	}
}

// describe renders a word the way see prints it.
func (dump vmDumper) describe(w *word) string {
	var sb strings.Builder
	switch body := w.body.(type) {
	case primitive:
		fmt.Fprintf(&sb, "primitive %v", w.name)
	case compiled:
		fmt.Fprintf(&sb, ": %v", w.name)
		if listing := dump.formatCode(thread(body), 0); listing != "" {
			sb.WriteByte(' ')
			sb.WriteString(listing)
		}
		sb.WriteString(" ;")
	case *dataWord:
		fmt.Fprintf(&sb, "create %v @%v", w.name, body.addr)
		if body.does != nil {
			sb.WriteString(" does>")
			if listing := dump.formatCode(body.does, body.at); listing != "" {
				sb.WriteByte(' ')
				sb.WriteString(listing)
			}
		}
	}
	if w.immediate {
		sb.WriteString(" immediate")
	}
	sb.WriteByte('\n')
	return sb.String()
}

// formatCode lists threaded code from position from as words, marking branch
// targets with their position.
func (dump vmDumper) formatCode(code thread, from int) string {
	targets := make(map[int]bool)
	for p := 0; p < len(code); p++ {
		if at, ok := code[p].(target); ok {
			targets[int(at)] = true
		}
	}

	var parts []string
	for p := from; p <= len(code); {
		if targets[p] {
			parts = append(parts, fmt.Sprintf("@%v:", p))
		}
		if p == len(code) {
			break
		}
		o, ok := code[p].(*op)
		if !ok {
			parts = append(parts, fmt.Sprintf("?%v", code[p]))
			p++
			continue
		}
		p++
		if o.args == 0 || p >= len(code) {
			parts = append(parts, o.name)
			continue
		}
		switch arg := code[p].(type) {
		case num.Value:
			parts = append(parts, arg.String())
		case wordRef:
			parts = append(parts, dump.vm.dict.name(arg))
		case target:
			parts = append(parts, fmt.Sprintf("%v(@%v)", o.name, int(arg)))
		default:
			parts = append(parts, fmt.Sprintf("%v(%v)", o.name, arg))
		}
		p += o.args
	}
	return strings.Join(parts, " ")
}

// wordSummary is the form in which ddump prints dictionary entries.
type wordSummary struct {
	Name      string
	Kind      string
	Immediate bool
	Code      string
}

func (dump vmDumper) summarize() []wordSummary {
	names := dump.vm.dict.names()
	summaries := make([]wordSummary, 0, len(names))
	for _, name := range names {
		w := dump.vm.dict.lookup(name)
		sum := wordSummary{Name: name, Immediate: w.immediate}
		switch body := w.body.(type) {
		case primitive:
			sum.Kind = "primitive"
		case compiled:
			sum.Kind = "compiled"
			sum.Code = dump.formatCode(thread(body), 0)
		case *dataWord:
			sum.Kind = "data"
			if body.does != nil {
				sum.Code = dump.formatCode(body.does, body.at)
			}
		}
		summaries = append(summaries, sum)
	}
	return summaries
}
