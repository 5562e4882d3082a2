package main

import (
	"io"
	"strings"

	"github.com/jcorbin/primeforth/internal/fileinput"
)

// LineReader supplies interactive input one line at a time, presenting the
// given prompt. It returns io.EOF when no more input is available.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

const (
	promptEmpty = "Ok "
	promptStack = "Ok: "
	promptMore  = "...    "

	// endWord ends the session when read from any input.
	endWord = "bye"
)

// wordSource tokenizes input into lowercase words, first draining queued
// input streams, then reading from an optional LineReader.
type wordSource struct {
	fileinput.Input
	lines LineReader

	// beforeRead runs before each new line is read, to flush output ahead
	// of any prompt.
	beforeRead func() error

	words       []string
	loc         fileinput.Location
	interactive bool
	readLines   int
}

// next returns the next word, reading more lines as needed.
func (src *wordSource) next(prompt string) (string, error) {
	for len(src.words) == 0 {
		if err := src.refill(prompt); err != nil {
			return "", err
		}
	}
	word := src.words[0]
	if word == endWord {
		return "", io.EOF
	}
	src.words = src.words[1:]
	return word, nil
}

// flush discards any words remaining from the current line.
func (src *wordSource) flush() {
	src.words = src.words[:0]
}

func (src *wordSource) refill(prompt string) error {
	if src.beforeRead != nil {
		if err := src.beforeRead(); err != nil {
			return ioError{err}
		}
	}

	if src.Input.Pending() {
		line, err := src.Input.ReadLine()
		if err == nil {
			src.loc, src.interactive = line.Location, false
			src.tokenize(line.Text)
			return nil
		}
		if err != io.EOF {
			return err
		}
	}

	if src.lines == nil {
		return io.EOF
	}
	text, err := src.lines.ReadLine(prompt)
	if err != nil {
		return err
	}
	src.readLines++
	src.loc = fileinput.Location{Name: "<stdin>", Line: src.readLines}
	src.interactive = true
	src.tokenize(text)
	return nil
}

func (src *wordSource) tokenize(text string) {
	src.words = append(src.words[:0], strings.Fields(strings.ToLower(text))...)
}
