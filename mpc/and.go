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

package mpc

import "github.com/fishbegol/mpccore/gf2"

// ScProof is the number of parties a prover computes over: every AND gate
// is evaluated by all three simulated parties.
const ScProof = 3

// ScVerify is the number of parties a verifier handles: party 0's output is
// computed directly and party ScVerify-1's output is read back from the
// committed view; the third party is not evaluated, since revealing all
// three views would leak the secret.
const ScVerify = 2

// Pair is the two-slot result an ANDVerify call produces: only the parties
// the verifier actually simulates have a live share.
type Pair struct {
	S [2]*gf2.BitMat
}

// ANDProver evaluates one multiply-accumulate round of the three-party AND
// gate: for each party m (with its cyclic neighbor j = (m+1) mod 3),
//
//	res[m] = (a[m] & b[m]) ^ (a[j] & b[m]) ^ (a[m] & b[j]) ^ r[m] ^ r[j]
//
// where r is a share of zero supplying the randomness the gate consumes.
// Each party's contribution is also shifted right by viewshift and XORed
// into that party's slot of view, packing this gate's (possibly narrow)
// output into the correct bit range of the round's tape.
func ANDProver(a, b, r *Share, view *View, viewshift uint) (*Share, error) {
	res := &Share{}
	for m := 0; m < 3; m++ {
		j := (m + 1) % 3
		t := gf2.And(nil, a.S[m], b.S[m])
		gf2.Xor(t, t, gf2.And(nil, a.S[j], b.S[m]))
		gf2.Xor(t, t, gf2.And(nil, a.S[m], b.S[j]))
		gf2.Xor(t, t, r.S[m])
		gf2.Xor(t, t, r.S[j])
		res.S[m] = t

		shifted, err := gf2.ShiftRight(nil, t, viewshift)
		if err != nil {
			return nil, err
		}
		gf2.Xor(view.S[m], view.S[m], shifted)
	}
	return res, nil
}

// ANDVerify is the verifier-side counterpart to ANDProver. Party 0 is
// computed directly from a, b, r exactly as ANDProver would, and that
// contribution is folded into view.S[0] so a later comparison against the
// prover's committed view can catch a cheating prover. Party 1 (index
// ScVerify-1) is never computed -- it is read back from the committed
// view.S[ScVerify-1], shifted left to undo the packing ANDProver applied,
// and masked down to the bit range this gate owns.
func ANDVerify(a, b, r *Share, view *View, mask *gf2.BitMat, viewshift uint) (*Pair, error) {
	res := &Pair{}

	t := gf2.And(nil, a.S[0], b.S[0])
	gf2.Xor(t, t, gf2.And(nil, a.S[1], b.S[0]))
	gf2.Xor(t, t, gf2.And(nil, a.S[0], b.S[1]))
	gf2.Xor(t, t, r.S[0])
	gf2.Xor(t, t, r.S[1])
	res.S[0] = t

	shifted, err := gf2.ShiftRight(nil, t, viewshift)
	if err != nil {
		return nil, err
	}
	gf2.Xor(view.S[0], view.S[0], shifted)

	committed, err := gf2.ShiftLeft(nil, view.S[ScVerify-1], viewshift)
	if err != nil {
		return nil, err
	}
	res.S[ScVerify-1] = gf2.And(nil, committed, mask)

	return res, nil
}
