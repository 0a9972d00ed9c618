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
	"encoding/binary"

	"github.com/fishbegol/mpccore/ints"
	"github.com/fishbegol/mpccore/prng"
)

// Randomize fills v uniformly from src (either the system CSPRNG or a
// seeded AES-CTR stream, see package prng) and masks the last word of
// every row so the padding-bits-are-zero invariant holds. Mirrors the
// original's mzd_randomize_ssl/mzd_randomize_aes_prng dual-source
// randomize, generalized behind the prng.Source interface instead of a
// compile-time choice of function.
func Randomize(v *BitMat, src prng.Source) error {
	buf := make([]byte, v.width*wordBytes)
	for r := 0; r < v.nrows; r++ {
		if err := src.GetBytes(buf); err != nil {
			return err
		}
		row := v.row(r)
		for i := range row {
			row[i] = binary.LittleEndian.Uint64(buf[i*wordBytes:])
		}
		v.maskLastWord(row)
	}
	return nil
}

// RandomizeFast fills v directly from the OS CSPRNG into native words,
// skipping the byte-buffer-plus-little-endian-decode step Randomize uses to
// give a seeded AES-CTR stream the same output on any machine. Only valid
// when reproducibility doesn't matter, i.e. against prng.System: unlike
// Randomize, RandomizeFast is not parameterized over prng.Source because
// ints.RandomFillSlice writes native-endian words straight into the row.
func RandomizeFast(v *BitMat) error {
	for r := 0; r < v.nrows; r++ {
		row := v.row(r)
		if err := ints.RandomFillSlice(row); err != nil {
			return err
		}
		v.maskLastWord(row)
	}
	return nil
}

// RandomVectorsFromSeed allocates count vectors of width ncols sharing one
// backing slab (via NewVectorBatch) and fills them from a single seeded
// stream, the Go counterpart to the original's
// mzd_init_random_vectors_from_seed: unlike Randomize called count times
// against prng.System, every vector here is drawn from the SAME AES-CTR
// stream in sequence, so the whole batch is reproducible from one seed.
func RandomVectorsFromSeed(seed [prng.SeedSize]byte, ncols, count int) ([]*BitMat, error) {
	src, err := prng.NewCTR(seed)
	if err != nil {
		return nil, err
	}
	vecs := NewVectorBatch(count, ncols)
	for _, v := range vecs {
		if err := Randomize(v, src); err != nil {
			return nil, err
		}
	}
	return vecs, nil
}
