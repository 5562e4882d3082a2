package main

import (
	"errors"
	"fmt"
)

var (
	errStackUnderflow  = errors.New("stack underflow")
	errReturnUnderflow = errors.New("return stack underflow")
	errReturnOverflow  = errors.New("return stack overflow")
	errNoCreate        = errors.New("does> without a preceding create")
	errNoWord          = errors.New("expected a word, found end of input")
	errNegativeAllot   = errors.New("cannot allot a negative number of cells")
)

// structError is a compile time error in the nesting of control constructs.
type structError struct {
	Construct string
	Mess      string
}

func (err structError) Error() string { return fmt.Sprintf("%v %v", err.Construct, err.Mess) }

// unknownWordError is reported, without stopping execution, when a called
// word has no definition.
type unknownWordError string

func (name unknownWordError) Error() string { return fmt.Sprintf("%v unknown", string(name)) }

// frameError reports a return stack frame of the wrong kind, like r> finding
// a loop frame on top.
type frameError struct {
	Word string
	Want frameKind
	Have frameKind
}

func (err frameError) Error() string {
	if err.Have == 0 {
		return fmt.Sprintf("%v: no %v frame on the return stack", err.Word, err.Want)
	}
	return fmt.Sprintf("%v: expected a %v frame, found a %v frame", err.Word, err.Want, err.Have)
}

// codeError indicates threaded code that does not have a step where one is
// expected, which only a compiler bug could produce.
type codeError int

func (at codeError) Error() string { return fmt.Sprintf("invalid code @%v", int(at)) }

// ioError wraps failures of the output stream; unlike other errors it ends
// the session.
type ioError struct{ error }

func (err ioError) Error() string { return fmt.Sprintf("output failed: %v", err.error) }
func (err ioError) Unwrap() error { return err.error }

// haltError carries a fatal runtime error up to the top level cycle.
type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}
func (err haltError) Unwrap() error { return err.error }

type missingSourceError string

func (name missingSourceError) Error() string { return fmt.Sprintf("%v: does not exist", string(name)) }
