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

package prng

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
)

// SeedSize is the width of the AES-CTR key, matching the original's
// aes_prng_t seed (a 128-bit key).
const SeedSize = 16

// ErrBadSeed is returned by NewCTRFromSlice when the seed isn't SeedSize bytes.
var ErrBadSeed = errors.New("prng: seed must be 16 bytes")

// ctrSource is a deterministic stream keyed by a 128-bit seed, the Go
// counterpart to the original's aes_prng_t: same seed, same output stream,
// every time, on any machine. Used where a signature round needs
// reproducible randomness (challenge re-derivation, golden-vector tests)
// rather than fresh OS entropy.
type ctrSource struct {
	stream cipher.Stream
}

// NewCTR derives a fresh AES-CTR stream from a 128-bit seed. The returned
// Source is stateful (each GetBytes call advances the stream) and must not
// be shared across goroutines without external synchronization -- matching
// the original's aes_prng_t, which is owned by exactly one caller for the
// lifetime of one round.
func NewCTR(seed [SeedSize]byte) (Source, error) {
	block, err := aes.NewCipher(seed[:])
	if err != nil {
		return nil, err
	}
	var iv [aes.BlockSize]byte // zero IV: the seed itself is the single-use secret
	return &ctrSource{stream: cipher.NewCTR(block, iv[:])}, nil
}

// NewCTRFromSlice is NewCTR for callers holding the seed as a []byte
// (e.g. freshly read from another Source) rather than a fixed array.
func NewCTRFromSlice(seed []byte) (Source, error) {
	if len(seed) != SeedSize {
		return nil, ErrBadSeed
	}
	var s [SeedSize]byte
	copy(s[:], seed)
	return NewCTR(s)
}

func (c *ctrSource) GetBytes(buf []byte) error {
	for i := range buf {
		buf[i] = 0
	}
	c.stream.XORKeyStream(buf, buf)
	return nil
}
