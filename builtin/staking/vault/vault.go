// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"github.com/pkg/errors"

	"github.com/vechain/fungstake/common"
)

// Version of the vault record layout.
const Version = 1

// Phase is the persisted lifecycle stage of a vault. It only moves forward.
type Phase uint8

const (
	PhaseOpen         Phase = iota // soft cap not reached
	PhaseLocked                    // soft cap reached, EndTime is the lock-extension deadline
	PhaseDistributing              // reward pool snapshotted, claims pay out of TotalReward
)

func (p Phase) String() string {
	switch p {
	case PhaseOpen:
		return "open"
	case PhaseLocked:
		return "locked"
	case PhaseDistributing:
		return "distributing"
	default:
		return "unknown"
	}
}

// Status is the phase of a vault as observed at a point in time.
type Status uint8

const (
	StatusOpen Status = iota
	StatusLockedPendingTGE
	StatusTgeReady
	StatusDistributing
)

func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "open"
	case StatusLockedPendingTGE:
		return "locked-pending-tge"
	case StatusTgeReady:
		return "tge-ready"
	case StatusDistributing:
		return "distributing"
	default:
		return "unknown"
	}
}

type body struct {
	Config      common.Address
	RewardAsset common.Address
	TotalStaked uint64
	Phase       Phase
	EndTime     uint64 // set on lock
	TotalReward uint64 // set when distribution starts
	Version     uint8
}

// Vault is the aggregate of one staking pool.
type Vault struct {
	body *body
}

func New(config, rewardAsset common.Address) *Vault {
	return &Vault{
		body: &body{
			Config:      config,
			RewardAsset: rewardAsset,
			Phase:       PhaseOpen,
			Version:     Version,
		},
	}
}

func (v *Vault) Config() common.Address      { return v.body.Config }
func (v *Vault) RewardAsset() common.Address { return v.body.RewardAsset }
func (v *Vault) TotalStaked() uint64         { return v.body.TotalStaked }
func (v *Vault) Phase() Phase                { return v.body.Phase }
func (v *Vault) EndTime() uint64             { return v.body.EndTime }
func (v *Vault) TotalReward() uint64         { return v.body.TotalReward }
func (v *Vault) Version() uint8              { return v.body.Version }

// IsOpen returns whether the soft cap has not been reached yet.
func (v *Vault) IsOpen() bool {
	return v.body.Phase == PhaseOpen
}

// ReachSoftCap returns whether the soft cap latch is set.
func (v *Vault) ReachSoftCap() bool {
	return v.body.Phase >= PhaseLocked
}

// ReachTGE returns whether the reward pool has been snapshotted.
func (v *Vault) ReachTGE() bool {
	return v.body.Phase == PhaseDistributing
}

// Ended returns whether the lock-extension deadline has passed at now.
func (v *Vault) Ended(now uint64) bool {
	return !v.IsOpen() && now > v.body.EndTime
}

// Status returns the observed phase at now.
func (v *Vault) Status(now uint64) Status {
	switch {
	case v.body.Phase == PhaseOpen:
		return StatusOpen
	case v.body.Phase == PhaseDistributing:
		return StatusDistributing
	case now <= v.body.EndTime:
		return StatusLockedPendingTGE
	default:
		return StatusTgeReady
	}
}

// Deposit adds amount to the total staked. It reports false on overflow.
func (v *Vault) Deposit(amount uint64) bool {
	total := v.body.TotalStaked + amount
	if total < v.body.TotalStaked {
		return false
	}
	v.body.TotalStaked = total
	return true
}

// Withdraw subtracts amount from the total staked. Only an open vault releases stake.
func (v *Vault) Withdraw(amount uint64) error {
	if !v.IsOpen() {
		return errors.New("vault total is frozen once locked")
	}
	if amount > v.body.TotalStaked {
		return errors.Errorf("withdraw %d exceeds total staked %d", amount, v.body.TotalStaked)
	}
	v.body.TotalStaked -= amount
	return nil
}

// Lock latches the soft cap and sets the lock-extension deadline.
func (v *Vault) Lock(endTime uint64) error {
	if v.body.Phase != PhaseOpen {
		return errors.Errorf("cannot lock a vault in phase %v", v.body.Phase)
	}
	v.body.Phase = PhaseLocked
	v.body.EndTime = endTime
	return nil
}

// StartDistribution latches the reward snapshot.
func (v *Vault) StartDistribution(totalReward uint64) error {
	if v.body.Phase != PhaseLocked {
		return errors.Errorf("cannot start distribution of a vault in phase %v", v.body.Phase)
	}
	v.body.Phase = PhaseDistributing
	v.body.TotalReward = totalReward
	return nil
}
