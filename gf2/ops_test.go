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
	"math/rand"
	"testing"
)

func randomRow(rng *rand.Rand, width int) []uint64 {
	row := make([]uint64, width)
	for i := range row {
		row[i] = rng.Uint64()
	}
	return row
}

func fromRow(ncols int, row []uint64) *BitMat {
	v := New(1, ncols)
	copy(v.row(0), row)
	v.maskLastWord(v.row(0))
	return v
}

// TestXorLiteralExample is scenario 4 of the worked examples: xor of the
// alternating-bit patterns yields all-ones with the final-word mask
// applied.
func TestXorLiteralExample(t *testing.T) {
	a := fromRow(128, []uint64{0xaaaaaaaaaaaaaaaa, 0x5555555555555555})
	b := fromRow(128, []uint64{0x5555555555555555, 0xaaaaaaaaaaaaaaaa})
	got := Xor(nil, a, b)
	want := fromRow(128, []uint64{^uint64(0), ^uint64(0)})
	if !Equal(got, want) {
		t.Fatalf("xor mismatch: got %#v want %#v", got.row(0), want.row(0))
	}
}

func TestXorLaws(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, ncols := range []int{64, 70, 128, 256, 320} {
		a := fromRow(ncols, randomRow(rng, (ncols+63)/64))
		b := fromRow(ncols, randomRow(rng, (ncols+63)/64))
		c := fromRow(ncols, randomRow(rng, (ncols+63)/64))
		zero := New(1, ncols)

		if !Equal(Xor(nil, a, a), zero) {
			t.Fatalf("ncols=%d: a^a != 0", ncols)
		}
		if !Equal(Xor(nil, a, zero), a) {
			t.Fatalf("ncols=%d: a^0 != a", ncols)
		}
		if !Equal(Xor(nil, a, b), Xor(nil, b, a)) {
			t.Fatalf("ncols=%d: xor not commutative", ncols)
		}
		lhs := Xor(nil, Xor(nil, a, b), c)
		rhs := Xor(nil, a, Xor(nil, b, c))
		if !Equal(lhs, rhs) {
			t.Fatalf("ncols=%d: xor not associative", ncols)
		}

		x := Xor(nil, a, b)
		if x.highMask != 0 && x.row(0)[x.Width()-1]&^x.highMask != 0 {
			t.Fatalf("ncols=%d: padding bits set after xor", ncols)
		}
	}
}

func TestAndLaws(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, ncols := range []int{64, 70, 128, 256, 320} {
		width := (ncols + 63) / 64
		a := fromRow(ncols, randomRow(rng, width))
		b := fromRow(ncols, randomRow(rng, width))
		c := fromRow(ncols, randomRow(rng, width))
		zero := New(1, ncols)

		if !Equal(And(nil, a, a), a) {
			t.Fatalf("ncols=%d: a&a != a", ncols)
		}
		if !Equal(And(nil, a, zero), zero) {
			t.Fatalf("ncols=%d: a&0 != 0", ncols)
		}

		lhs := And(nil, a, Xor(nil, b, c))
		rhs := Xor(nil, And(nil, a, b), And(nil, a, c))
		if !Equal(lhs, rhs) {
			t.Fatalf("ncols=%d: distributivity failed", ncols)
		}
	}
}

// TestOpsTiersAgree forces each dispatch tier directly (bypassing CPU
// capability detection) and checks the outputs are bit-identical, per the
// SIMD-equals-scalar testable property.
func TestOpsTiersAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	ncols := 256
	width := ncols / 64
	a := fromRow(ncols, randomRow(rng, width))
	b := fromRow(ncols, randomRow(rng, width))

	outScalar := make([]uint64, width)
	outSSE2 := make([]uint64, width)
	outAVX2 := make([]uint64, width)
	rowXor(outScalar, a.row(0), b.row(0), tierScalar)
	rowXor(outSSE2, a.row(0), b.row(0), tierSSE2)
	rowXor(outAVX2, a.row(0), b.row(0), tierAVX2)

	for i := range outScalar {
		if outScalar[i] != outSSE2[i] || outScalar[i] != outAVX2[i] {
			t.Fatalf("tier mismatch at word %d: scalar=%#x sse2=%#x avx2=%#x", i, outScalar[i], outSSE2[i], outAVX2[i])
		}
	}

	outScalarAnd := make([]uint64, width)
	outSSE2And := make([]uint64, width)
	outAVX2And := make([]uint64, width)
	rowAnd(outScalarAnd, a.row(0), b.row(0), tierScalar)
	rowAnd(outSSE2And, a.row(0), b.row(0), tierSSE2)
	rowAnd(outAVX2And, a.row(0), b.row(0), tierAVX2)
	for i := range outScalarAnd {
		if outScalarAnd[i] != outSSE2And[i] || outScalarAnd[i] != outAVX2And[i] {
			t.Fatalf("and tier mismatch at word %d", i)
		}
	}
}

// TestRowOpsTailHandling exercises widths that are NOT multiples of the
// vector lane width (e.g. 5 words qualifies for the AVX2 dispatch
// precondition ncols>=256 at ncols=320 but isn't itself a multiple of 4),
// guarding against the bounds-unsafe loop this package previously had.
func TestRowOpsTailHandling(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for _, width := range []int{1, 2, 3, 5, 6, 7, 9} {
		a := randomRow(rng, width)
		b := randomRow(rng, width)
		for _, tr := range []tier{tierScalar, tierSSE2, tierAVX2} {
			out := make([]uint64, width)
			rowXor(out, a, b, tr)
			for i := range out {
				if out[i] != a[i]^b[i] {
					t.Fatalf("width=%d tier=%d: rowXor[%d] = %#x, want %#x", width, tr, i, out[i], a[i]^b[i])
				}
			}
		}
	}
}
