// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package gf2 implements a dense binary (GF(2)) linear-algebra kernel over
// row vectors and matrices: a packed bit-matrix type with aligned row
// storage, element-wise XOR/AND, whole-word shifts, and a nibble-dispatch
// vector-by-matrix multiply. It is the hard inner loop beneath the mpc
// package's three-party share arithmetic.
package gf2

import (
	"errors"
	"unsafe"

	"github.com/fishbegol/mpccore/ints"
)

// ErrDimensionMismatch is returned by MulV/AddMulV (and their left-multiply
// variants) when the operand shapes don't admit a product. The caller must
// treat this as fatal for the signature operation in progress; the kernel
// never attempts to recover from it.
var ErrDimensionMismatch = errors.New("gf2: dimension mismatch")

// ErrShiftCount is returned when a shift amount is not in [0, wordBits).
var ErrShiftCount = errors.New("gf2: shift count out of range")

const (
	wordBytes     = 8
	avxBoundWords = 256 / wordBits // 4 words triggers 32-byte row alignment
)

// BitMat is a dense r x c matrix over GF(2), stored as nrows rows of width
// words each, padded to rowstride words so every row starts at an aligned
// offset. A vector is a BitMat with nrows == 1.
type BitMat struct {
	nrows     int
	ncols     int
	width     int    // ceil(ncols / wordBits)
	rowstride int    // words per row, >= width, alignment-padded
	highMask  uint64 // mask for live bits in the last word of each row
	data      []uint64
}

// NRows returns the row count.
func (m *BitMat) NRows() int { return m.nrows }

// NCols returns the column count.
func (m *BitMat) NCols() int { return m.ncols }

// Width returns the number of words used per row (excluding stride padding).
func (m *BitMat) Width() int { return m.width }

// rowAlignBytes returns the byte alignment a row of the given width (in
// words) must start at: 32 bytes once the AVX2 lane bound is reached,
// otherwise 16 bytes for SSE2.
func rowAlignBytes(width int) int {
	if width >= avxBoundWords {
		return 32
	}
	return 16
}

// rowStride computes the word count of one aligned row, reusing ints'
// generic AlignUp rather than re-deriving the same round-up-to-alignment
// arithmetic here.
func rowStride(width int) int {
	rowBytes := int(ints.AlignUp(uint(width*wordBytes), uint(rowAlignBytes(width))))
	return rowBytes / wordBytes
}

// wordWidth returns the number of words needed to store ncols bits.
func wordWidth(ncols int) int {
	return int(ints.ChunkCount(uint(ncols), uint(wordBits)))
}

// highBitMask computes the mask for the live bits of the last word of a row
// with ncols columns: all positions [0, ncols mod wordBits) are set, and the
// mask is all-ones when ncols is a multiple of wordBits.
func highBitMask(ncols int) uint64 {
	rem := ncols % wordBits
	if rem == 0 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(rem)) - 1
}

// newAlignedWords returns a []uint64 of exactly n words whose address is a
// multiple of alignBytes, by over-allocating and slicing off the
// misaligned prefix -- the same trick vm/bytecode.go's alignVStackBuffer
// uses to align its virtual-machine stack without cgo or a custom
// allocator.
func newAlignedWords(n, alignBytes int) []uint64 {
	if n == 0 {
		return nil
	}
	alignWords := alignBytes / wordBytes
	if alignWords <= 1 {
		return make([]uint64, n)
	}
	buf := make([]uint64, n+alignWords-1)
	addr := uintptr(unsafe.Pointer(&buf[0]))
	misalign := (uintptr(alignWords) - (addr/wordBytes)%uintptr(alignWords)) % uintptr(alignWords)
	return buf[misalign : misalign+uintptr(n) : misalign+uintptr(n)]
}

// New allocates a zero-filled r x c BitMat. Descriptor and backing storage
// are two separate Go allocations (unlike the original's single co-allocated
// slab: Go's GC-managed pointers make a C-style "descriptor glued to its
// own data" layout impossible to express safely), but the data is one
// contiguous, alignment-padded slice shared by every row, preserving the
// locality the original's single-block scheme was after.
func New(nrows, ncols int) *BitMat {
	if nrows <= 0 || ncols <= 0 {
		panic("gf2: nrows and ncols must be positive")
	}
	width := wordWidth(ncols)
	stride := rowStride(width)
	data := newAlignedWords(nrows*stride, rowAlignBytes(width))
	return &BitMat{
		nrows:     nrows,
		ncols:     ncols,
		width:     width,
		rowstride: stride,
		highMask:  highBitMask(ncols),
		data:      data,
	}
}

// NewVectorBatch allocates n vectors of the same column count sharing one
// backing slab, the way the original's mzd_local_init_multiple avoids n
// separate allocations when a round needs many same-shaped vectors at
// once (e.g. a fresh share triple, or a batch of mask vectors from one
// PRNG stream).
func NewVectorBatch(n, ncols int) []*BitMat {
	if n <= 0 {
		return nil
	}
	width := wordWidth(ncols)
	stride := rowStride(width)
	alignBytes := rowAlignBytes(width)
	data := newAlignedWords(n*stride, alignBytes)
	mask := highBitMask(ncols)
	out := make([]*BitMat, n)
	for i := range out {
		out[i] = &BitMat{
			nrows:     1,
			ncols:     ncols,
			width:     width,
			rowstride: stride,
			highMask:  mask,
			data:      data[i*stride : (i+1)*stride : (i+1)*stride],
		}
	}
	return out
}

// row returns the usable (unpadded) word slice for row i.
func (m *BitMat) row(i int) []uint64 {
	off := i * m.rowstride
	return m.data[off : off+m.width : off+m.width]
}

// Words copies row i's live words (length Width(), excluding stride
// padding) out to the caller. This is the kernel's load/store boundary for
// callers outside this package -- e.g. an outer cipher driver moving a
// plaintext or round-key block into vector form.
func (m *BitMat) Words(row int) []uint64 {
	out := make([]uint64, m.width)
	copy(out, m.row(row))
	return out
}

// SetWords overwrites row i with words, masking the last word so the
// padding-bits-are-zero invariant holds. len(words) must equal Width().
func (m *BitMat) SetWords(row int, words []uint64) {
	if len(words) != m.width {
		panic("gf2: SetWords: word count mismatch")
	}
	r := m.row(row)
	copy(r, words)
	m.maskLastWord(r)
}

// Bit reports the value of column col of row i.
func (m *BitMat) Bit(row, col int) bool {
	return ints.TestBit(m.row(row), col)
}

// SetBit sets column col of row i to 1.
func (m *BitMat) SetBit(row, col int) {
	ints.SetBit(m.row(row), col)
}

// ClearBit sets column col of row i to 0.
func (m *BitMat) ClearBit(row, col int) {
	ints.ClearBit(m.row(row), col)
}

func sameShape(a, b *BitMat) bool {
	return a.nrows == b.nrows && a.ncols == b.ncols
}

func (m *BitMat) maskLastWord(r []uint64) {
	r[len(r)-1] &= m.highMask
}

// Copy copies src into dst row by row. If dst is nil a matching BitMat is
// allocated. Copying into a differently-shaped destination is a caller bug
// (per the kernel's ownership contract, source and destination widths must
// be equal) and panics rather than silently truncating or zero-extending.
func Copy(dst, src *BitMat) *BitMat {
	if dst == nil {
		dst = New(src.nrows, src.ncols)
	}
	if !sameShape(dst, src) {
		panic("gf2: Copy: shape mismatch")
	}
	for i := 0; i < src.nrows; i++ {
		copy(dst.row(i), src.row(i))
	}
	return dst
}

// Equal reports whether a and b have identical shape and bit content.
func Equal(a, b *BitMat) bool {
	if a.nrows != b.nrows || a.ncols != b.ncols {
		return false
	}
	t := equalTier(a.ncols)
	for i := 0; i < a.nrows; i++ {
		if !rowEqual(a.row(i), b.row(i), t) {
			return false
		}
	}
	return true
}
