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

// Package mpc implements the three-party MPC arithmetic layer on top of
// gf2: additive share triples over GF(2), share-wise linear operations, and
// the nonlinear AND gate (prover and verifier variants) that read and write
// the per-party view tape.
package mpc

import (
	"github.com/fishbegol/mpccore/gf2"
	"github.com/fishbegol/mpccore/prng"
)

// Share is an additive triple [s0, s1, s2] over GF(2): the logical
// plaintext is s0 ^ s1 ^ s2. The triple owns its three vectors.
type Share struct {
	S [3]*gf2.BitMat
}

// ShareEmpty returns three zero vectors of width ncols.
func ShareEmpty(ncols int) *Share {
	return &Share{S: [3]*gf2.BitMat{
		gf2.New(1, ncols),
		gf2.New(1, ncols),
		gf2.New(1, ncols),
	}}
}

// ShareRandom returns three vectors independently filled from src.
func ShareRandom(ncols int, src prng.Source) (*Share, error) {
	s := ShareEmpty(ncols)
	for i := range s.S {
		if err := gf2.Randomize(s.S[i], src); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// SharePlain returns three copies of v, used for publicly known inputs
// (every party already knows the value, so there's nothing to hide).
func SharePlain(v *gf2.BitMat) *Share {
	return &Share{S: [3]*gf2.BitMat{
		gf2.Copy(nil, v),
		gf2.Copy(nil, v),
		gf2.Copy(nil, v),
	}}
}

// ShareSecret splits v into a fresh additive triple: s0, s1 are drawn from
// src and s2 = s0 ^ s1 ^ v, so Reconstruct(ShareSecret(v, src)) == v.
func ShareSecret(v *gf2.BitMat, src prng.Source) (*Share, error) {
	s0 := gf2.New(1, v.NCols())
	s1 := gf2.New(1, v.NCols())
	if err := gf2.Randomize(s0, src); err != nil {
		return nil, err
	}
	if err := gf2.Randomize(s1, src); err != nil {
		return nil, err
	}
	s2 := gf2.Xor(nil, s0, s1)
	gf2.Xor(s2, s2, v)
	return &Share{S: [3]*gf2.BitMat{s0, s1, s2}}, nil
}

// Reconstruct returns s0 ^ s1 ^ s2.
func Reconstruct(s *Share) *gf2.BitMat {
	r := gf2.Xor(nil, s.S[0], s.S[1])
	return gf2.Xor(r, r, s.S[2])
}

// Xor computes r = a ^ b slot-wise. If r is nil a fresh Share is allocated.
func Xor(r, a, b *Share) *Share {
	if r == nil {
		r = &Share{}
	}
	for i := range r.S {
		r.S[i] = gf2.Xor(r.S[i], a.S[i], b.S[i])
	}
	return r
}

// ConstXor XORs the public constant k into share slot 0 or 2 of a, writing
// the result into r (allocated from a if nil). Every other slot value is a
// silent no-op: per the kernel's documented open question, this behavior
// is preserved exactly rather than "fixed", since a caller porting LowMC's
// round-constant addition against the original's semantics depends on
// slots other than 0/2 being left untouched.
func ConstXor(r, a *Share, k *gf2.BitMat, slot int) *Share {
	if r == nil {
		r = &Share{S: a.S}
	} else if r != a {
		r.S = a.S
	}
	switch slot {
	case 0:
		r.S[0] = gf2.Xor(nil, a.S[0], k)
	case 2:
		r.S[2] = gf2.Xor(nil, a.S[2], k)
	}
	return r
}

// ConstMatMul applies gf2.MulV(r[i], a[i], M) to every slot, the share-wise
// lift of the kernel's vector-by-matrix multiply.
func ConstMatMul(r *Share, M *gf2.BitMat, a *Share) (*Share, error) {
	if r == nil {
		r = &Share{}
	}
	for i := 0; i < 3; i++ {
		out, err := gf2.MulV(r.S[i], a.S[i], M)
		if err != nil {
			return nil, err
		}
		r.S[i] = out
	}
	return r, nil
}

// ConstMatMulLeft is ConstMatMul using the LowMC linear-layer matrix
// convention (gf2.MulVLeft); see gf2.MulVLeft for why it delegates to the
// same algorithm as MulV.
func ConstMatMulLeft(r *Share, M *gf2.BitMat, a *Share) (*Share, error) {
	if r == nil {
		r = &Share{}
	}
	for i := 0; i < 3; i++ {
		out, err := gf2.MulVLeft(r.S[i], a.S[i], M)
		if err != nil {
			return nil, err
		}
		r.S[i] = out
	}
	return r, nil
}

// Copy copies src slot-wise into dst, allocating dst if nil.
func Copy(dst, src *Share) *Share {
	if dst == nil {
		dst = &Share{}
	}
	for i := range dst.S {
		dst.S[i] = gf2.Copy(dst.S[i], src.S[i])
	}
	return dst
}
