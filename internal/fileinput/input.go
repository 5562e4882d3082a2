// Package fileinput reads source lines sequentially from a queue of named
// input streams, tracking where each line came from.
package fileinput

import (
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/primeforth/internal/runeio"
)

// Location names a line in an Input file.
type Location struct {
	Name string
	Line int
}

func (loc Location) String() string {
	if loc.Name == "" {
		return fmt.Sprintf("<input>:%v", loc.Line)
	}
	return fmt.Sprintf("%v:%v", loc.Name, loc.Line)
}

// Line is one line of input along with its Location.
type Line struct {
	Location
	Text string
}

func (il Line) String() string { return fmt.Sprintf("%v %q", il.Location, il.Text) }

// Input implements sequential line reading through a Queue of one or more
// input streams. Each stream is consumed exactly once; streams implementing
// io.Closer are closed once exhausted.
type Input struct {
	Queue []io.Reader
	Last  Line

	stream
	held []stream
	sb   strings.Builder
}

// stream is an open input along with the position read so far.
type stream struct {
	cur  io.Reader
	rr   io.RuneReader
	scan Line
}

// Pending reports whether any input stream remains, current, held or queued.
func (in *Input) Pending() bool {
	return in.rr != nil || len(in.held) > 0 || len(in.Queue) > 0
}

// Push makes r the current stream, ahead of any other. The stream it
// displaces resumes, at its next line, once r is exhausted.
func (in *Input) Push(r io.Reader) {
	if in.rr != nil {
		in.held = append(in.held, in.stream)
	}
	in.open(r)
}

// ReadLine returns the next line, without its line terminator, from the
// current input stream, moving on to the next queued stream as each is
// exhausted. A final line lacking a line feed is still returned. Returns
// io.EOF once all streams have been consumed.
func (in *Input) ReadLine() (Line, error) {
	for {
		if in.rr == nil && !in.nextIn() {
			return Line{}, io.EOF
		}

		r, _, err := in.rr.ReadRune()
		if err == nil {
			if r == '\n' {
				return in.nextLine(), nil
			}
			in.sb.WriteRune(r)
			continue
		}

		had := in.sb.Len() > 0
		in.closeIn()
		if err != io.EOF {
			return Line{}, err
		}
		if had {
			return in.nextLine(), nil
		}
	}
}

func (in *Input) nextLine() Line {
	in.scan.Line++
	in.scan.Text = strings.TrimSuffix(in.sb.String(), "\r")
	in.sb.Reset()
	in.Last = in.scan
	return in.scan
}

func (in *Input) closeIn() {
	if in.rr != nil {
		if cl, ok := in.cur.(io.Closer); ok {
			cl.Close()
		}
		in.cur, in.rr = nil, nil
	}
}

func (in *Input) nextIn() bool {
	if i := len(in.held) - 1; i >= 0 {
		in.stream = in.held[i]
		in.held = in.held[:i]
	} else if len(in.Queue) > 0 {
		r := in.Queue[0]
		in.Queue = in.Queue[1:]
		in.open(r)
	}
	return in.rr != nil
}

func (in *Input) open(r io.Reader) {
	in.stream = stream{
		cur:  r,
		rr:   runeio.NewReader(r),
		scan: Line{Location: Location{Name: nameOf(r)}},
	}
	in.sb.Reset()
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
