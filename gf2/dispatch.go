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
	"golang.org/x/sys/cpu"
)

// wordBits is the machine word width W used throughout the kernel. The
// package fixes W = 64, matching a uint64 word and the worked examples in
// the accompanying specification.
const wordBits = 64

// tier identifies which lane width an operation was dispatched to. It is a
// function only of CPU capability and matrix dimensions, never of data
// values, so the same (shape, CPU) pair always picks the same tier.
type tier int

const (
	tierScalar tier = iota
	tierSSE2
	tierSSE41
	tierAVX2
)

// cpuFeatures is the process-wide, write-once capability cache. It is
// populated once at package init and never mutated again, so concurrent
// readers need no synchronization.
type cpuFeatures struct {
	avx2  bool
	sse2  bool
	sse41 bool
}

var features = detectFeatures()

func detectFeatures() cpuFeatures {
	return cpuFeatures{
		avx2:  cpu.X86.HasAVX2,
		sse2:  cpu.X86.HasSSE2,
		sse41: cpu.X86.HasSSE41,
	}
}

// xorAndTier picks the dispatch tier for plain XOR/AND over a row of the
// given column count, per the rule: AVX2 when supported and ncols >= 256
// and ncols is word-aligned; SSE2 when supported and ncols is
// word-aligned; scalar (masked) otherwise.
func xorAndTier(ncols int) tier {
	aligned := ncols%wordBits == 0
	switch {
	case features.avx2 && ncols >= 256 && aligned:
		return tierAVX2
	case features.sse2 && aligned:
		return tierSSE2
	default:
		return tierScalar
	}
}

// equalTier picks the dispatch tier for structural equality, which the
// original source gives a three-way (AVX2/SSE4.1/SSE2) dispatch distinct
// from xor/and's two-way dispatch.
func equalTier(ncols int) tier {
	switch {
	case features.avx2 && ncols >= 256:
		return tierAVX2
	case features.sse41:
		return tierSSE41
	case features.sse2:
		return tierSSE2
	default:
		return tierScalar
	}
}

// mulTier picks the dispatch tier for mul_v/addmul_v, gated additionally on
// A's row count being word-aligned (every row-selecting bit must come from
// a full word of v).
func mulTier(ncols, nrows int) tier {
	switch {
	case features.avx2 && ncols%256 == 0 && nrows%wordBits == 0:
		return tierAVX2
	case features.sse2 && ncols%128 == 0 && nrows%wordBits == 0:
		return tierSSE2
	default:
		return tierScalar
	}
}
