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

import (
	"golang.org/x/exp/slices"

	"github.com/fishbegol/mpccore/internal/simd"
)

// Xor computes dst = a ^ b element-wise over every row, masking the last
// word of each row so trailing padding bits stay zero. If dst is nil a
// BitMat matching a's shape is allocated.
func Xor(dst, a, b *BitMat) *BitMat {
	if dst == nil {
		dst = New(a.nrows, a.ncols)
	}
	if !sameShape(dst, a) || !sameShape(a, b) {
		panic("gf2: Xor: shape mismatch")
	}
	t := xorAndTier(a.ncols)
	for i := 0; i < a.nrows; i++ {
		rowXor(dst.row(i), a.row(i), b.row(i), t)
		if t == tierScalar {
			dst.maskLastWord(dst.row(i))
		}
	}
	return dst
}

// And computes dst = a & b element-wise over every row, masking the last
// word of each row. If dst is nil a BitMat matching a's shape is allocated.
func And(dst, a, b *BitMat) *BitMat {
	if dst == nil {
		dst = New(a.nrows, a.ncols)
	}
	if !sameShape(dst, a) || !sameShape(a, b) {
		panic("gf2: And: shape mismatch")
	}
	t := xorAndTier(a.ncols)
	for i := 0; i < a.nrows; i++ {
		rowAnd(dst.row(i), a.row(i), b.row(i), t)
		if t == tierScalar {
			dst.maskLastWord(dst.row(i))
		}
	}
	return dst
}

// rowXor computes dst = a ^ b over one row's words, using lane-array
// emulation (package internal/simd) for the SSE2/AVX2 tiers and a plain
// word loop for scalar. xorAndTier only requires a word-aligned column count,
// so a vector tier can see a row length that is not a multiple of the lane
// width; the trailing words are finished by the scalar loop.
func rowXor(dst, a, b []uint64, t tier) {
	i := 0
	switch t {
	case tierAVX2:
		for ; i+4 <= len(a); i += 4 {
			v := simd.XorVec256(simd.LoadVec256(a[i:]), simd.LoadVec256(b[i:]))
			simd.StoreVec256(dst[i:], v)
		}
	case tierSSE2, tierSSE41:
		for ; i+2 <= len(a); i += 2 {
			v := simd.XorVec128(simd.LoadVec128(a[i:]), simd.LoadVec128(b[i:]))
			simd.StoreVec128(dst[i:], v)
		}
	}
	for ; i < len(a); i++ {
		dst[i] = a[i] ^ b[i]
	}
}

func rowAnd(dst, a, b []uint64, t tier) {
	i := 0
	switch t {
	case tierAVX2:
		for ; i+4 <= len(a); i += 4 {
			v := simd.AndVec256(simd.LoadVec256(a[i:]), simd.LoadVec256(b[i:]))
			simd.StoreVec256(dst[i:], v)
		}
	case tierSSE2, tierSSE41:
		for ; i+2 <= len(a); i += 2 {
			v := simd.AndVec128(simd.LoadVec128(a[i:]), simd.LoadVec128(b[i:]))
			simd.StoreVec128(dst[i:], v)
		}
	}
	for ; i < len(a); i++ {
		dst[i] = a[i] & b[i]
	}
}

// rowEqual compares a and b word-for-word. Unlike xor/and the tiers here
// don't change the result, only how many words are compared per step, so
// there is no masking concern: padding words are identical by construction
// whenever both operands came out of this package's constructors.
func rowEqual(a, b []uint64, t tier) bool {
	switch t {
	case tierAVX2:
		i := 0
		for ; i+4 <= len(a); i += 4 {
			if simd.LoadVec256(a[i:]) != simd.LoadVec256(b[i:]) {
				return false
			}
		}
		for ; i < len(a); i++ {
			if a[i] != b[i] {
				return false
			}
		}
		return true
	case tierSSE2, tierSSE41:
		i := 0
		for ; i+2 <= len(a); i += 2 {
			if simd.LoadVec128(a[i:]) != simd.LoadVec128(b[i:]) {
				return false
			}
		}
		for ; i < len(a); i++ {
			if a[i] != b[i] {
				return false
			}
		}
		return true
	default:
		return slices.Equal(a, b)
	}
}
