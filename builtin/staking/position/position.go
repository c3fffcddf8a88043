// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package position

import (
	"github.com/vechain/fungstake/builtin/staking/vault"
	"github.com/vechain/fungstake/common"
)

// Status of a position relative to its vault.
type Status uint8

const (
	StatusUnstaked Status = iota
	StatusStaked
	StatusLocked
	StatusClaimed
)

func (s Status) String() string {
	switch s {
	case StatusUnstaked:
		return "unstaked"
	case StatusStaked:
		return "staked"
	case StatusLocked:
		return "locked"
	case StatusClaimed:
		return "claimed"
	default:
		return "unknown"
	}
}

type body struct {
	Vault          common.Address
	Staker         common.Address
	StakeAmount    uint64 // principal currently held by the vault
	SnapshotAmount uint64 // reward-share basis, frozen once the vault locks
	UnlockTime     uint64 // earliest time the principal can be withdrawn
	HasClaimed     bool
}

// Position is the stake of one staker in one vault.
type Position struct {
	body *body
}

func New(vaultID, staker common.Address) *Position {
	return &Position{
		body: &body{
			Vault:  vaultID,
			Staker: staker,
		},
	}
}

func (p *Position) Vault() common.Address  { return p.body.Vault }
func (p *Position) Staker() common.Address { return p.body.Staker }
func (p *Position) StakeAmount() uint64    { return p.body.StakeAmount }
func (p *Position) SnapshotAmount() uint64 { return p.body.SnapshotAmount }
func (p *Position) UnlockTime() uint64     { return p.body.UnlockTime }
func (p *Position) HasClaimed() bool       { return p.body.HasClaimed }

// IsStaked returns whether the position holds principal.
func (p *Position) IsStaked() bool {
	return p.body.StakeAmount > 0
}

// Unlocked returns whether the principal can be withdrawn at now.
func (p *Position) Unlocked(now uint64) bool {
	return now >= p.body.UnlockTime
}

// Status returns the status of the position in v.
func (p *Position) Status(v *vault.Vault) Status {
	switch {
	case p.body.HasClaimed:
		return StatusClaimed
	case p.body.StakeAmount == 0 && p.body.SnapshotAmount == 0:
		return StatusUnstaked
	case v != nil && !v.IsOpen():
		return StatusLocked
	default:
		return StatusStaked
	}
}

// Add increases the stake and restarts the unlock timer.
// The snapshot follows the stake while the vault is open.
// It reports false on overflow, leaving the position untouched.
func (p *Position) Add(amount, unlockTime uint64, open bool) bool {
	stake := p.body.StakeAmount + amount
	if stake < p.body.StakeAmount {
		return false
	}
	p.body.StakeAmount = stake
	p.body.UnlockTime = unlockTime
	if open {
		p.body.SnapshotAmount = stake
	}
	return true
}

// Remove withdraws up to amount of stake and returns what was withdrawn.
// The snapshot follows the stake while the vault is open.
func (p *Position) Remove(amount uint64, open bool) uint64 {
	unstake := min(amount, p.body.StakeAmount)
	p.body.StakeAmount -= unstake
	if open {
		p.body.SnapshotAmount = p.body.StakeAmount
	}
	return unstake
}

// MarkClaimed latches the claimed flag.
func (p *Position) MarkClaimed() {
	p.body.HasClaimed = true
}
