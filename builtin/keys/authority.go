// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package keys

import (
	"bytes"

	"github.com/vechain/fungstake/common"
)

// Authority proves the right to move funds owned by an address.
type Authority interface {
	Authorizes(owner common.Address) bool
}

// Signer is an identity whose signature was verified by the caller.
type Signer common.Address

func (s Signer) Authorizes(owner common.Address) bool {
	return common.Address(s) == owner
}

func (s Signer) Address() common.Address {
	return common.Address(s)
}

// Capability is the authority of a program over an identity derived from it.
type Capability struct {
	program common.Address
	seeds   [][]byte
}

func (c Capability) Address() common.Address {
	return Derive(c.program, c.seeds...)
}

func (c Capability) Authorizes(owner common.Address) bool {
	return !c.program.IsZero() && c.Address() == owner
}

// Equal reports whether both capabilities derive from the same program and seeds.
func (c Capability) Equal(other Capability) bool {
	if c.program != other.program || len(c.seeds) != len(other.seeds) {
		return false
	}
	for i := range c.seeds {
		if !bytes.Equal(c.seeds[i], other.seeds[i]) {
			return false
		}
	}
	return true
}
