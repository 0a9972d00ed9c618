// Copyright 2023 Sneller, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

// Package simd provides lane-array emulation of the SSE2/AVX2 opcodes the
// gf2 kernel dispatches to. Each vector type is a fixed-size array of
// machine words standing in for one hardware register; the operations
// below compute exactly what the corresponding intrinsic would, word by
// word, so a scalar build and a "vector" build are bit-identical by
// construction.
package simd

// Vec128 stands in for one SSE2 128-bit register: two 64-bit lanes.
type Vec128 [2]uint64

// Vec256 stands in for one AVX2 256-bit register: four 64-bit lanes.
type Vec256 [4]uint64

// XorVec128 computes a ^ b lane-wise (PXOR).
func XorVec128(a, b Vec128) Vec128 {
	return Vec128{a[0] ^ b[0], a[1] ^ b[1]}
}

// AndVec128 computes a & b lane-wise (PAND).
func AndVec128(a, b Vec128) Vec128 {
	return Vec128{a[0] & b[0], a[1] & b[1]}
}

// XorVec256 computes a ^ b lane-wise (VPXOR).
func XorVec256(a, b Vec256) Vec256 {
	return Vec256{a[0] ^ b[0], a[1] ^ b[1], a[2] ^ b[2], a[3] ^ b[3]}
}

// AndVec256 computes a & b lane-wise (VPAND).
func AndVec256(a, b Vec256) Vec256 {
	return Vec256{a[0] & b[0], a[1] & b[1], a[2] & b[2], a[3] & b[3]}
}

// LoadVec128 reads two words starting at p[0] as one 128-bit register.
func LoadVec128(p []uint64) Vec128 {
	return Vec128{p[0], p[1]}
}

// StoreVec128 writes v back to p[0], p[1].
func StoreVec128(p []uint64, v Vec128) {
	p[0], p[1] = v[0], v[1]
}

// LoadVec256 reads four words starting at p[0] as one 256-bit register.
func LoadVec256(p []uint64) Vec256 {
	return Vec256{p[0], p[1], p[2], p[3]}
}

// StoreVec256 writes v back to p[0..3].
func StoreVec256(p []uint64, v Vec256) {
	p[0], p[1], p[2], p[3] = v[0], v[1], v[2], v[3]
}
