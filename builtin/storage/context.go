// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"github.com/vechain/fungstake/common"
	"github.com/vechain/fungstake/state"
)

// Usage counts storage slots touched through a Context.
type Usage struct {
	Reads  uint64
	Writes uint64
}

// Context binds typed storage to the address owning it.
type Context struct {
	address common.Address
	state   *state.State
	usage   *Usage
}

func NewContext(address common.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
		usage:   &Usage{},
	}
}

func (c *Context) Address() common.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}

// Usage returns the slot counters accumulated so far.
func (c *Context) Usage() Usage {
	return *c.usage
}

func slots(n int) uint64 {
	return (uint64(n) + 31) / 32
}
