package mem_test

import (
	"testing"

	"github.com/jcorbin/primeforth/internal/mem"
	"github.com/jcorbin/primeforth/internal/num"
	"github.com/jcorbin/primeforth/internal/panicerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Cells(t *testing.T) {
	for _, tc := range []cellsTestCase{
		cellsTest("basic",
			"init", func(t *testing.T, m *mem.Cells) {
				m.PageSize = 4
				val, err := m.Load(0)
				require.NoError(t, err, "unexpected load error")
				require.Equal(t, num.Int(0), val, "expected 0 @0")
				require.Equal(t, 0, m.Size(), "expected 0 initial size")
			},

			"9 -> 0", func(t *testing.T, m *mem.Cells) {
				require.NoError(t, m.Stor(0, num.Int(9)), "must stor @0")
				expectMemValueAt(t, m, 0, num.Int(9))
				//  0  1  2  3  :  9  0  0  0
				//  4  5  6  7  :  -  -  -  -
				//  8  9  a  b  :  -  -  -  -
				expectMemValuesAt(t, m, 2, ints(0, 0, 0, 0, 0, 0, 0, 0)...)
			},

			"{1, 2, 3, 4, 5, 6} -> 0x9", func(t *testing.T, m *mem.Cells) {
				require.NoError(t, m.Stor(0x9, ints(1, 2, 3, 4, 5, 6)...), "must stor @0x9")
				require.Equal(t, [][]num.Value{
					ints(9, 0, 0, 0),
					nil,
					ints(0, 1, 2, 3),
					ints(4, 5, 6, 0),
				}, m.Pages(), "expected a page hole")
				//  0  1  2  3  :  9  0  0  0
				//  4  5  6  7  :  -  -  -  -
				//  8  9  a  b  :  0  1  2  3
				//  c  d  e  f  :  4  5  6  0
				expectMemValuesAt(t, m, 6, ints(
					0, 0,
					0, 1, 2, 3,
					4, 5, 6, 0,
					0, 0)...)
				require.Equal(t, 0x10, m.Size())
			},

			"2.5 -> 0x5", func(t *testing.T, m *mem.Cells) {
				require.NoError(t, m.Stor(0x5, num.Float(2.5)), "must stor @0x5")
				require.NotNil(t, m.Pages()[1], "expected hole filled")
				expectMemValuesAt(t, m, 4,
					num.Int(0), num.Float(2.5), num.Int(0), num.Int(0),
					num.Int(0), num.Int(1))
			},
		),

		cellsTest("capacity",
			"init", func(t *testing.T, m *mem.Cells) {
				m.PageSize = 8
				m.Limit = 10
			},

			"last cell", func(t *testing.T, m *mem.Cells) {
				require.NoError(t, m.Stor(9, num.Int(42)))
				expectMemValueAt(t, m, 9, num.Int(42))
			},

			"past the end", func(t *testing.T, m *mem.Cells) {
				err := m.Stor(10, num.Int(1))
				assert.Equal(t, mem.LimitError{Addr: 10, Op: "store"}, err)
				_, err = m.Load(10)
				assert.Equal(t, mem.LimitError{Addr: 10, Op: "load"}, err)
				assert.EqualError(t, err, "heap load out of bounds @10")
			},

			"straddling the end", func(t *testing.T, m *mem.Cells) {
				err := m.Stor(8, ints(1, 2, 3)...)
				assert.Equal(t, mem.LimitError{Addr: 10, Op: "store"}, err)
				expectMemValuesAt(t, m, 8, ints(0, 42)...)
			},

			"negative", func(t *testing.T, m *mem.Cells) {
				_, err := m.Load(-1)
				assert.Equal(t, mem.LimitError{Addr: -1, Op: "load"}, err)
				assert.Error(t, m.LoadInto(-2, make([]num.Value, 4)))
			},
		),
	} {
		t.Run(tc.name, tc.run)
	}
}

func ints(is ...int) []num.Value {
	vs := make([]num.Value, len(is))
	for i, n := range is {
		vs[i] = num.Int(n)
	}
	return vs
}

func expectMemValueAt(t *testing.T, m *mem.Cells, addr int, value num.Value) {
	val, err := m.Load(addr)
	require.NoError(t, err, "unexpected load @0x%x error", addr)
	require.Equal(t, value, val, "expected value @0x%x", addr)
}

func expectMemValuesAt(t *testing.T, m *mem.Cells, addr int, values ...num.Value) {
	buf := make([]num.Value, len(values))
	require.NoError(t, m.LoadInto(addr, buf),
		"must load %v values from @0x%x", len(values), addr)
	require.Equal(t, values, buf, "expected values @0x%x", addr)
}

func cellsTest(name string, args ...interface{}) (tc cellsTestCase) {
	tc.name = name
	for i := 0; i < len(args); i++ {
		var step cellsTestStep
		step.name = args[i].(string)
		if i++; i >= len(args) {
			panic("cellsTest: missing function argument after name")
		}
		step.f = args[i].(func(t *testing.T, m *mem.Cells))
		tc.steps = append(tc.steps, step)
	}
	return tc
}

type cellsTestCase struct {
	name  string
	steps []cellsTestStep
}

type cellsTestStep struct {
	name string
	f    func(t *testing.T, m *mem.Cells)
}

func (tc cellsTestCase) run(t *testing.T) {
	var m mem.Cells
	defer func() {
		if t.Failed() {
			t.Logf("memory: %+v", m.Pages())
		}
	}()
	for _, step := range tc.steps {
		step := step
		if !t.Run(step.name, func(t *testing.T) {
			if err := panicerr.Recover(t.Name(), func() error {
				step.f(t, &m)
				return nil
			}); err != nil {
				t.Logf("%+v", err)
				t.Fail()
			}
		}) {
			break
		}
	}
}
