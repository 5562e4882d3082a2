package main

import (
	"bytes"
	"io"
)

//// The kernel prelude

// The kernel is compiled ahead of any other input, building the rest of the
// everyday vocabulary out of the builtin primitives.
var kernel = kernelSource{}

type kernelSource struct{}

func (kernelSource) Name() string { return "kernel.fs" }

func (kernelSource) WriteTo(w io.Writer) (n int64, err error) {
	var buf bytes.Buffer
	line := func(parts ...string) {
		if err != nil {
			return
		}
		for _, s := range parts {
			buf.WriteString(s)
		}
		buf.WriteByte('\n')
		var m int64
		m, err = buf.WriteTo(w)
		n += m
	}

	line(`: cr 10 emit ;`)
	line(`: bl 32 ;`)
	line(`: space bl emit ;`)

	// Defining words: create names the next free heap cell, and does> gives
	// the new word an action to run after pushing that address.
	line(`: constant create , does> @ ;`)
	line(`: variable create 1 allot ;`)
	line(`: +! dup @ rot + swap ! ;`)

	line(`: true -1 ;`)
	line(`: false 0 ;`)

	line(`: 2dup over over ;`)
	line(`: 2drop drop drop ;`)
	line(`: 2swap rot >r rot r> ;`)
	line(`: nip swap drop ;`)
	line(`: 2nip 2swap 2drop ;`)
	line(`: tuck swap over ;`)

	line(`: negate 0 swap - ;`)
	line(`: abs dup 0 < if negate then ;`)
	line(`: 1- 1 - ;`)
	line(`: 2+ 2 + ;`)
	line(`: 2- 2 - ;`)
	line(`: 2* 2 * ;`)
	line(`: 2/ 2 / ;`)

	line(`: 0= 0 = ;`)
	line(`: 0< 0 < ;`)
	line(`: 0> 0 > ;`)
	line(`: <= > 0= ;`)
	line(`: >= < 0= ;`)
	line(`: 0<= 0 <= ;`)
	line(`: 0>= 0 >= ;`)
	line(`: d0= or 0= ;`)

	line(`: min 2dup < if drop else nip then ;`)
	line(`: max 2dup > if drop else nip then ;`)

	// cells refers to cell before it exists; calls are bound by name.
	line(`: cells cell * ;`)
	line(`1 constant cell`)

	return n, err
}
