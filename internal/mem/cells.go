package mem

import (
	"fmt"

	"github.com/jcorbin/primeforth/internal/num"
)

// DefaultCellsPageSize provides a default for Cells.PageSize.
const DefaultCellsPageSize = 256

// Cells implements a paged memory of numeric cells. Pages are only allocated
// once written, so a large capacity costs nothing until used.
type Cells struct {
	// PageSize specifies the length of every page; it must not change once
	// the first page is allocated.
	PageSize uint

	// Limit specifies the capacity of the memory: any load or store at or
	// beyond it results in a LimitError. A zero Limit means unbounded.
	Limit uint

	// pages is indexed by addr / PageSize; unwritten pages are nil.
	pages [][]num.Value
}

// LimitError indicates that a memory operation, like load or store, fell
// outside the addressable range.
type LimitError struct {
	Addr int
	Op   string
}

func (lim LimitError) Error() string {
	return fmt.Sprintf("heap %v out of bounds @%v", lim.Op, lim.Addr)
}

// Size returns an address one past the end of the highest page allocated so
// far.
func (m *Cells) Size() int {
	return len(m.pages) * int(m.PageSize)
}

// Load returns the cell at addr; cells never stored read as integer 0.
func (m *Cells) Load(addr int) (num.Value, error) {
	if err := m.checkRange(addr, addr+1, "load"); err != nil {
		return num.Value{}, err
	}
	return m.load(addr), nil
}

// LoadInto reads len(buf) cells starting at addr. No partial load is done if
// the range is out of bounds.
func (m *Cells) LoadInto(addr int, buf []num.Value) error {
	if len(buf) == 0 {
		return nil
	}
	if err := m.checkRange(addr, addr+len(buf), "load"); err != nil {
		return err
	}
	for i := range buf {
		buf[i] = m.load(addr + i)
	}
	return nil
}

// Stor stores values at addr, allocating pages if necessary. No partial
// store is done if the range is out of bounds.
func (m *Cells) Stor(addr int, values ...num.Value) error {
	if len(values) == 0 {
		return nil
	}
	if err := m.checkRange(addr, addr+len(values), "store"); err != nil {
		return err
	}
	if m.PageSize == 0 {
		m.PageSize = DefaultCellsPageSize
	}
	for len(values) > 0 {
		page, off := m.page(addr, true)
		n := copy(page[off:], values)
		values = values[n:]
		addr += n
	}
	return nil
}

func (m *Cells) load(addr int) num.Value {
	if page, off := m.page(addr, false); page != nil {
		return page[off]
	}
	return num.Value{}
}

// page returns the page holding addr and the offset of addr within it,
// allocating the page when alloc is set.
func (m *Cells) page(addr int, alloc bool) (page []num.Value, off int) {
	if m.PageSize == 0 {
		return nil, 0
	}
	size := int(m.PageSize)
	id, off := addr/size, addr%size
	if id < len(m.pages) {
		page = m.pages[id]
	}
	if page == nil && alloc {
		for id >= len(m.pages) {
			m.pages = append(m.pages, nil)
		}
		page = make([]num.Value, size)
		m.pages[id] = page
	}
	return page, off
}

// checkRange validates the half open address range [addr, end).
func (m *Cells) checkRange(addr, end int, op string) error {
	if addr < 0 {
		return LimitError{addr, op}
	}
	if lim := m.Limit; lim != 0 && end > int(lim) {
		if addr < int(lim) {
			addr = int(lim)
		}
		return LimitError{addr, op}
	}
	return nil
}
