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

import "crypto/rand"

// sysSource reads directly from the OS CSPRNG, mirroring the original's
// mzd_randomize_ssl (backed by RAND_bytes).
type sysSource struct{}

// System is the cryptographically secure, OS-backed Source. It has no
// state, so a single value may be shared across goroutines.
var System Source = sysSource{}

func (sysSource) GetBytes(buf []byte) error {
	_, err := rand.Read(buf)
	return err
}
