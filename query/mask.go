package query

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Mask is a boolean selection vector of fixed length, aligned
// positionally with a document collection and its point array:
// selecting index i in the mask selects index i in both.
//
// The selected set is backed by a roaring bitmap, which keeps sparse
// selections cheap and set operations fast.
type Mask struct {
	n  int
	rb *roaring.Bitmap
}

// NewMask creates an empty mask of length n.
func NewMask(n int) *Mask {
	return &Mask{n: n, rb: roaring.New()}
}

// MaskFromBools builds a mask from a boolean slice.
func MaskFromBools(bits []bool) *Mask {
	m := NewMask(len(bits))
	for i, b := range bits {
		if b {
			m.rb.Add(uint32(i))
		}
	}
	return m
}

// Len returns the mask length (the size of the original collection).
func (m *Mask) Len() int { return m.n }

// Set marks index i as selected.
func (m *Mask) Set(i int) { m.rb.Add(uint32(i)) }

// Test reports whether index i is selected.
func (m *Mask) Test(i int) bool {
	if i < 0 || i >= m.n {
		return false
	}
	return m.rb.Contains(uint32(i))
}

// Count returns the number of selected indices.
func (m *Mask) Count() int { return int(m.rb.GetCardinality()) }

// Bools expands the mask to a boolean slice of length Len.
func (m *Mask) Bools() []bool {
	bits := make([]bool, m.n)
	it := m.rb.Iterator()
	for it.HasNext() {
		bits[it.Next()] = true
	}
	return bits
}

// Indices returns the selected indices in ascending order.
func (m *Mask) Indices() []int {
	out := make([]int, 0, m.rb.GetCardinality())
	it := m.rb.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

// Iterator yields the selected indices in ascending order.
func (m *Mask) Iterator() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := m.rb.Iterator()
		for it.HasNext() {
			if !yield(int(it.Next())) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the mask.
func (m *Mask) Clone() *Mask {
	return &Mask{n: m.n, rb: m.rb.Clone()}
}

// And intersects the mask with another mask of the same length.
func (m *Mask) And(other *Mask) { m.rb.And(other.rb) }

// Or unions the mask with another mask of the same length.
func (m *Mask) Or(other *Mask) { m.rb.Or(other.rb) }

// SelectRows applies the mask to a row-aligned matrix, preserving
// relative order. The input is not modified.
func (m *Mask) SelectRows(rows [][]float32) [][]float32 {
	out := make([][]float32, 0, m.Count())
	it := m.rb.Iterator()
	for it.HasNext() {
		i := int(it.Next())
		if i < len(rows) {
			out = append(out, rows[i])
		}
	}
	return out
}
