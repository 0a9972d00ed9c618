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

// ShiftRight treats v's words as one little-endian-word-ordered bitstream
// and shifts it right by k bits (0 <= k < wordBits), writing the result
// into dst. A shift of 0 degenerates to a copy. Dispatch rules never route
// shifts through the SSE2/AVX2 tiers (the nibble-dispatch mul_v and
// plain xor/and paths are the only ones with a vector variant), so this is
// always the scalar word-carry loop.
func ShiftRight(dst, v *BitMat, k uint) (*BitMat, error) {
	if dst == nil {
		dst = New(v.nrows, v.ncols)
	}
	if k >= wordBits {
		return nil, ErrShiftCount
	}
	if k == 0 {
		return Copy(dst, v), nil
	}
	for r := 0; r < v.nrows; r++ {
		src := v.row(r)
		out := dst.row(r)
		n := len(src)
		for i := 0; i < n-1; i++ {
			out[i] = (src[i] >> k) | (src[i+1] << (wordBits - k))
		}
		out[n-1] = src[n-1] >> k
	}
	return dst, nil
}

// ShiftLeft is the mirror of ShiftRight: words are processed high to low so
// bits carry from the next-lower word into the current one.
func ShiftLeft(dst, v *BitMat, k uint) (*BitMat, error) {
	if dst == nil {
		dst = New(v.nrows, v.ncols)
	}
	if k >= wordBits {
		return nil, ErrShiftCount
	}
	if k == 0 {
		return Copy(dst, v), nil
	}
	for r := 0; r < v.nrows; r++ {
		src := v.row(r)
		out := dst.row(r)
		n := len(src)
		for i := n - 1; i > 0; i-- {
			out[i] = (src[i] << k) | (src[i-1] >> (wordBits - k))
		}
		out[0] = src[0] << k
		dst.maskLastWord(out)
	}
	return dst, nil
}
