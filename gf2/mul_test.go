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

func newIdentity(n int) *BitMat {
	m := New(n, n)
	for i := 0; i < n; i++ {
		m.SetBit(i, i)
	}
	return m
}

func randomMatrix(rng *rand.Rand, nrows, ncols int) *BitMat {
	m := New(nrows, ncols)
	width := (ncols + wordBits - 1) / wordBits
	for i := 0; i < nrows; i++ {
		copy(m.row(i), randomRow(rng, width))
		m.maskLastWord(m.row(i))
	}
	return m
}

// TestMulVIdentity covers scenarios 1 and 2 of the worked examples: v*I = v
// for the 64x64 identity matrix.
func TestMulVIdentity(t *testing.T) {
	id := newIdentity(64)

	v1 := fromRow(64, []uint64{0x0000000000000001})
	got1, err := MulV(nil, v1, id)
	if err != nil {
		t.Fatalf("MulV: %v", err)
	}
	if !Equal(got1, v1) {
		t.Fatalf("mul_v(1, I) = %#v, want %#v", got1.row(0), v1.row(0))
	}

	v2 := fromRow(64, []uint64{0xffffffffffffffff})
	got2, err := MulV(nil, v2, id)
	if err != nil {
		t.Fatalf("MulV: %v", err)
	}
	if !Equal(got2, v2) {
		t.Fatalf("mul_v(-1, I) = %#v, want %#v", got2.row(0), v2.row(0))
	}
}

func TestMulLinearity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const n, m = 192, 70
	A := randomMatrix(rng, n, m)
	u := fromRow(n, randomRow(rng, (n+63)/64))
	v := fromRow(n, randomRow(rng, (n+63)/64))

	lhs, err := MulV(nil, Xor(nil, u, v), A)
	if err != nil {
		t.Fatalf("MulV: %v", err)
	}
	rhs := Xor(nil, mustMulV(t, u, A), mustMulV(t, v, A))
	if !Equal(lhs, rhs) {
		t.Fatalf("mul_v not linear: lhs=%#v rhs=%#v", lhs.row(0), rhs.row(0))
	}

	c := fromRow(m, randomRow(rng, (m+63)/64))
	want := Xor(nil, c, mustMulV(t, v, A))
	cCopy := Copy(nil, c)
	if err := AddMulV(cCopy, v, A); err != nil {
		t.Fatalf("AddMulV: %v", err)
	}
	if !Equal(cCopy, want) {
		t.Fatalf("addmul_v(c,v,A) != c ^ mul_v(v,A)")
	}
}

func mustMulV(t *testing.T, v, A *BitMat) *BitMat {
	t.Helper()
	out, err := MulV(nil, v, A)
	if err != nil {
		t.Fatalf("MulV: %v", err)
	}
	return out
}

func TestMulDimensionMismatch(t *testing.T) {
	A := New(64, 64)
	v := New(1, 70)
	if _, err := MulV(nil, v, A); err != ErrDimensionMismatch {
		t.Fatalf("err = %v, want ErrDimensionMismatch", err)
	}
}

// TestMulTiersAgree forces the scalar and both vector nibble-dispatch paths
// directly over dimensions that satisfy every tier's alignment precondition
// and checks they produce bit-identical output, independent of what the
// host CPU actually supports.
func TestMulTiersAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	const nrows, ncols = 128, 256 // nrows%64==0, ncols%128==0 and %256==0
	A := randomMatrix(rng, nrows, ncols)
	v := fromRow(nrows, randomRow(rng, nrows/wordBits))

	scalar := make([]uint64, ncols/wordBits)
	sse2 := make([]uint64, ncols/wordBits)
	avx2 := make([]uint64, ncols/wordBits)

	addMulVScalar(scalar, v.row(0), A)
	addMulVVector(sse2, v.row(0), A, 2)
	addMulVVector(avx2, v.row(0), A, 4)

	for i := range scalar {
		if scalar[i] != sse2[i] || scalar[i] != avx2[i] {
			t.Fatalf("tier mismatch at word %d: scalar=%#x sse2=%#x avx2=%#x", i, scalar[i], sse2[i], avx2[i])
		}
	}
}
