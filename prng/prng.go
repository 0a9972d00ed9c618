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

// Package prng provides the two randomness sources the gf2 and mpc
// packages consume through one seam: the OS CSPRNG, and a seeded AES-CTR
// stream for reproducible rounds (challenge re-derivation, testing). It
// corresponds to the external interface named in the kernel's contract:
// sys_random_bytes and a keyed prng_get_bytes.
package prng

// Source produces uniformly random bytes on demand. GetBytes fills buf
// entirely or returns an error; it never partially fills buf on success.
type Source interface {
	GetBytes(buf []byte) error
}
