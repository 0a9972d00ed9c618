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

// View is the per-party tape a prover commits to and a verifier later
// checks: one vector per party, accumulating the broadcast message of
// every AND gate evaluated over the course of a round. Gates pack their
// (typically narrow) output into consecutive bit positions of the same
// view vector via the viewshift argument to ANDProver/ANDVerify, so one
// View vector can record every S-box's AND output for a whole round.
type View struct {
	S [3]*gf2.BitMat
}

// NewView allocates a zero-filled, nbits-wide tape for all three parties.
func NewView(nbits int) *View {
	return &View{S: [3]*gf2.BitMat{
		gf2.New(1, nbits),
		gf2.New(1, nbits),
		gf2.New(1, nbits),
	}}
}
