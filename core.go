package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/jcorbin/primeforth/internal/flushio"
	"github.com/jcorbin/primeforth/internal/runeio"
)

// Core holds the engine's output stream and logging.
type Core struct {
	logging
	out      flushio.WriteFlusher
	errColor *color.Color
}

// halt aborts the current execution with err, unwinding to the top level
// read/compile/execute cycle.
func (core *Core) halt(err error) {
	core.logf("halt", "%v", err)
	panic(haltError{err})
}

func (core *Core) haltif(err error) {
	if err != nil {
		core.halt(err)
	}
}

func (core *Core) write(s string) {
	if _, err := runeio.WriteANSIString(core.out, s); err != nil {
		core.halt(ioError{err})
	}
}

func (core *Core) writef(mess string, args ...interface{}) {
	core.write(fmt.Sprintf(mess, args...))
}

func (core *Core) writeRune(r rune) {
	if _, err := runeio.WriteANSIRune(core.out, r); err != nil {
		core.halt(ioError{err})
	}
}

// report writes an error message to the output, colored if enabled.
func (core *Core) report(prefix string, err error) {
	mess := err.Error()
	if prefix != "" {
		mess = prefix + ": " + mess
	}
	if core.errColor != nil {
		mess = core.errColor.Sprint(mess)
	}
	core.write(mess + "\n")
}

type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		mark += strings.Repeat(" ", n)
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
