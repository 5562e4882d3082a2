package main

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/jcorbin/primeforth/internal/canvas"
	"github.com/jcorbin/primeforth/internal/logio"
	"github.com/jcorbin/primeforth/internal/num"
	"github.com/jcorbin/primeforth/internal/runeio"
	"github.com/stretchr/testify/assert"
)

type vmTestCases []vmTestCase

func (vmts vmTestCases) run(t *testing.T) {
	{
		var exclusive []vmTestCase
		for _, vmt := range vmts {
			if vmt.exclusive {
				exclusive = append(exclusive, vmt)
			}
		}
		if len(exclusive) > 0 {
			vmts = exclusive
		}
	}
	for _, vmt := range vmts {
		t.Run(vmt.name, vmt.run)
	}
}

func vmTest(name string) (vmt vmTestCase) {
	vmt.name = name
	return vmt
}

type optFunc func(vm *VM)

func (f optFunc) apply(vm *VM) { f(vm) }

type vmTestCase struct {
	name    string
	opts    []interface{}
	lines   []string
	expect  []func(t *testing.T, vm *VM)
	timeout time.Duration
	wantErr error

	exclusive   bool
	nextInputID int
}

func (vmt vmTestCase) apply(wraps ...func(vmTestCase) vmTestCase) vmTestCase {
	for _, wrap := range wraps {
		vmt = wrap(vmt)
	}
	return vmt
}

func (vmt vmTestCase) exclusiveTest() vmTestCase {
	vmt.exclusive = true
	return vmt
}

func (vmt vmTestCase) withOptions(opts ...VMOption) vmTestCase {
	for _, opt := range opts {
		vmt.opts = append(vmt.opts, opt)
	}
	return vmt
}

func (vmt vmTestCase) bare() vmTestCase {
	vmt.opts = append(vmt.opts, WithoutKernel())
	return vmt
}

// withInput provides lines as if typed interactively.
func (vmt vmTestCase) withInput(lines ...string) vmTestCase {
	vmt.lines = append(vmt.lines[:len(vmt.lines):len(vmt.lines)], lines...)
	return vmt
}

// withScript queues input as if read from a source file.
func (vmt vmTestCase) withScript(script string) vmTestCase {
	vmt.opts = append(vmt.opts, func(vmt *vmTestCase, t *testing.T) VMOption {
		name := t.Name() + "/input"
		if id := vmt.nextInputID; id > 0 {
			name += "_" + strconv.Itoa(id+1)
		}
		vmt.nextInputID++
		return WithInput(runeio.NamedReader(name, strings.NewReader(script)))
	})
	return vmt
}

func (vmt vmTestCase) withNamedScript(name string, script string) vmTestCase {
	vmt.opts = append(vmt.opts, WithInput(runeio.NamedReader(name, strings.NewReader(script))))
	return vmt
}

func (vmt vmTestCase) withStack(values ...int) vmTestCase {
	vmt.opts = append(vmt.opts, optFunc(func(vm *VM) {
		for _, val := range values {
			vm.stack = append(vm.stack, num.Int(val))
		}
	}))
	return vmt
}

func (vmt vmTestCase) withHeapSize(cells int) vmTestCase {
	vmt.opts = append(vmt.opts, WithHeapSize(cells))
	return vmt
}

func (vmt vmTestCase) withCallDepth(depth int) vmTestCase {
	vmt.opts = append(vmt.opts, WithCallDepth(depth))
	return vmt
}

func (vmt vmTestCase) withKeys(keys ...int) vmTestCase {
	vmt.opts = append(vmt.opts, optFunc(func(vm *VM) {
		vm.host.(*canvas.Canvas).Press(keys...)
	}))
	return vmt
}

// withFiles provides named scripts for load and list.
func (vmt vmTestCase) withFiles(files map[string]string) vmTestCase {
	fsys := make(fstest.MapFS, len(files))
	for name, data := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(data)}
	}
	vmt.opts = append(vmt.opts, WithFiles(fsys))
	return vmt
}

func (vmt vmTestCase) withTimeout(timeout time.Duration) vmTestCase {
	vmt.timeout = timeout
	return vmt
}

func (vmt vmTestCase) expectError(err error) vmTestCase {
	vmt.wantErr = err
	return vmt
}

func (vmt vmTestCase) expectStack(values ...num.Value) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		if values == nil {
			values = []num.Value{}
		}
		stack := vm.stack
		if stack == nil {
			stack = []num.Value{}
		}
		assert.Equal(t, values, stack, "expected stack values")
	})
	return vmt
}

func (vmt vmTestCase) expectInts(values ...int) vmTestCase {
	vals := make([]num.Value, len(values))
	for i, val := range values {
		vals[i] = num.Int(val)
	}
	return vmt.expectStack(vals...)
}

func (vmt vmTestCase) expectRDepth(depth int) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Len(t, vm.rstack, depth, "expected return stack depth")
	})
	return vmt
}

func (vmt vmTestCase) expectHeap(addr int, values ...int) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		buf := make([]num.Value, len(values))
		if assert.NoError(t, vm.heap.LoadInto(addr, buf), "expected heap load @%v", addr) {
			want := make([]num.Value, len(values))
			for i, val := range values {
				want[i] = num.Int(val)
			}
			assert.Equal(t, want, buf, "expected heap values @%v", addr)
		}
	})
	return vmt
}

func (vmt vmTestCase) expectHere(addr int) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, addr, vm.heap.next, "expected next free heap cell")
	})
	return vmt
}

func (vmt vmTestCase) expectOutput(output string) vmTestCase {
	var out strings.Builder
	vmt.opts = append(vmt.opts, WithOutput(&out))
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, output, out.String(), "expected output")
	})
	return vmt
}

func (vmt vmTestCase) expectOutputContains(parts ...string) vmTestCase {
	var out strings.Builder
	vmt.opts = append(vmt.opts, WithOutput(&out))
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		for _, part := range parts {
			assert.Contains(t, out.String(), part, "expected output")
		}
	})
	return vmt
}

func (vmt vmTestCase) expectPrompts(prompts ...string) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, prompts, vm.src.lines.(*scriptedLines).prompts, "expected prompts")
	})
	return vmt
}

func (vmt vmTestCase) expectSee(name string, listing string) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		if w := vm.dict.lookup(name); assert.NotNil(t, w, "expected %q to be defined", name) {
			assert.Equal(t, listing, strings.TrimSuffix(vmDumper{vm: vm}.describe(w), "\n"), "expected %q listing", name)
		}
	})
	return vmt
}

func (vmt vmTestCase) expectUndefined(name string) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Nil(t, vm.dict.lookup(name), "expected %q to be undefined", name)
	})
	return vmt
}

func (vmt vmTestCase) expectPixel(x int, y int, color int) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, color, vm.host.GetPixel(x, y), "expected pixel color @%v,%v", x, y)
	})
	return vmt
}

func (vmt vmTestCase) expectFrames(frames int) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, frames, vm.host.(*canvas.Canvas).Frames(), "expected shown frames")
	})
	return vmt
}

func (vmt vmTestCase) expectColors(color int, background int) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, color, vm.color, "expected drawing color")
		assert.Equal(t, background, vm.bg, "expected background color")
	})
	return vmt
}

func (vmt vmTestCase) run(t *testing.T) {
	vmt.runVMTest(t, vmt.buildVM(t))
	if t.Failed() {
		t.Logf("re-running with trace logging")
		var log logio.Logger
		log.SetOutput(&testLogWriter{t})
		vm := vmt.buildVM(t, WithLogf(log.Leveledf("TRACE")))
		vmt.runVM(vm)
	}
}

func (vmt vmTestCase) runVMTest(t *testing.T, vm *VM) {
	defer func() {
		if t.Failed() {
			vmt.dumpToTest(t, vm)
		}
	}()

	if err := vmt.runVM(vm); vmt.wantErr != nil {
		assert.True(t, errors.Is(err, vmt.wantErr), "expected error: %v\ngot: %+v", vmt.wantErr, err)
	} else {
		assert.NoError(t, err, "unexpected VM run error")
	}

	if !t.Failed() {
		for _, expect := range vmt.expect {
			expect(t, vm)
		}
	}
}

func (vmt vmTestCase) runVM(vm *VM) error {
	const defaultTimeout = time.Second
	timeout := vmt.timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return vm.Run(ctx)
}

func (vmt vmTestCase) buildVM(t *testing.T, extra ...VMOption) *VM {
	opts := []VMOption{WithHost(newTestCanvas())}
	if len(vmt.lines) > 0 {
		opts = append(opts, WithLineReader(&scriptedLines{lines: vmt.lines}))
	}
	for _, o := range vmt.opts {
		switch impl := o.(type) {
		case func(vmt *vmTestCase, t *testing.T) VMOption:
			opts = append(opts, impl(&vmt, t))
		case VMOption:
			opts = append(opts, impl)
		default:
			t.Logf("unsupported vmTestCase opt type %T", o)
			t.FailNow()
		}
	}
	return New(append(opts, extra...)...)
}

func (vmt vmTestCase) dumpToTest(t *testing.T, vm *VM) {
	lw := logio.Writer{Logf: t.Logf}
	defer lw.Close()
	vmDumper{vm: vm, out: &lw}.dump()
}

//// utilities

// newTestCanvas returns a canvas with a fake clock, where sleeping simply
// advances time, and a fixed random sequence.
func newTestCanvas() *canvas.Canvas {
	now := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	return &canvas.Canvas{
		Now:       func() time.Time { return now },
		SleepFunc: func(d time.Duration) { now = now.Add(d) },
		Rand:      rand.New(rand.NewSource(1)),
	}
}

// scriptedLines is a LineReader over canned lines, recording each prompt.
type scriptedLines struct {
	lines   []string
	prompts []string
}

func (sl *scriptedLines) ReadLine(prompt string) (string, error) {
	if len(sl.lines) == 0 {
		return "", io.EOF
	}
	sl.prompts = append(sl.prompts, prompt)
	line := sl.lines[0]
	sl.lines = sl.lines[1:]
	return line, nil
}

type testLogWriter struct{ t *testing.T }

func (tlw *testLogWriter) Write(p []byte) (int, error) {
	tlw.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}
