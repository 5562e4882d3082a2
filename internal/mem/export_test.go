package mem

import "github.com/jcorbin/primeforth/internal/num"

// Pages exposes the page table for testing; holes are nil.
func (m *Cells) Pages() [][]num.Value { return m.pages }
