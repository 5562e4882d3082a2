/* Package main: primeforth, a small threaded code Forth

primeforth reads whitespace separated words, case folded to lower case, and
compiles them one top level unit at a time into threaded code: a sequence of
steps, each optionally followed by an operand. A unit is normally a single
word; an open control construct, like a colon definition or a top level
do ... loop, extends the unit until the construct is closed. Each unit runs as
soon as it is compiled.

Words

Primitive words, like + or dup, are implemented in Go and inlined into
compiled code. All other words, whether defined with : or by create, are
called by name: the dictionary is consulted each time the call runs. So
redefining a word changes the behavior of every word that uses it, and a
definition may refer to a word that does not exist yet. Calling a word that is
still undefined prints "name unknown" and carries on.

Control flow

	if ... then
	if ... else ... then
	begin ... until
	begin ... again
	begin ... while ... repeat
	do ... loop
	do ... +loop

The compiler tracks open constructs on a control stack, emitting branches
with placeholder targets that are patched once the construct closes. Counted
loops keep their index and limit on the return stack, read by i and j; >r, r>
and r@ share that stack.

Data

Numbers are integers or floats; mixing the two yields a float, as does /,
which leaves the true quotient (floor recovers an integer). Flags are -1
for true and 0 for false, and any non-zero value counts as true. create names
the next free cell of a bounded heap; ",", allot, @ and ! work on that heap,
and does> gives the most recently created word an action of its own:

	: constant create , does> @ ;
	5 constant five

Errors

A compile error, like then without if, discards the partial unit. A runtime
error, like stack underflow, abandons the current line and clears the return
stack, but keeps the data stack. Both are reported on the output as
"error: ..." and the session continues.

Graphics, keyboard input, time and random numbers come from a Host; the
default is an in-memory canvas.

Unless WithoutKernel is given, a prelude defining words like cr, constant,
variable, min and max is compiled before any other input; see kernel.go.
*/
package main
