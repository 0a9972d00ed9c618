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

// ShiftRight applies gf2.ShiftRight to every slot of a, the share-wise lift
// of the kernel's whole-word shift (shifting a public amount commutes with
// the additive sharing, so no cross-party randomness is needed here unlike
// the AND gate).
func ShiftRight(r *Share, a *Share, k uint) (*Share, error) {
	if r == nil {
		r = &Share{}
	}
	for i := 0; i < 3; i++ {
		out, err := gf2.ShiftRight(r.S[i], a.S[i], k)
		if err != nil {
			return nil, err
		}
		r.S[i] = out
	}
	return r, nil
}

// ShiftLeft is the share-wise lift of gf2.ShiftLeft.
func ShiftLeft(r *Share, a *Share, k uint) (*Share, error) {
	if r == nil {
		r = &Share{}
	}
	for i := 0; i < 3; i++ {
		out, err := gf2.ShiftLeft(r.S[i], a.S[i], k)
		if err != nil {
			return nil, err
		}
		r.S[i] = out
	}
	return r, nil
}
