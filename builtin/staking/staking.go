// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staking implements the pooled-token staking vault: configs, vaults
// with a one-shot soft-cap lock, time-locked positions and pro-rata reward
// distribution out of a reward pool funded by a third party.
package staking

import (
	"github.com/vechain/fungstake/builtin/keys"
	"github.com/vechain/fungstake/builtin/staking/config"
	"github.com/vechain/fungstake/builtin/staking/position"
	"github.com/vechain/fungstake/builtin/staking/vault"
	"github.com/vechain/fungstake/builtin/storage"
	"github.com/vechain/fungstake/common"
	"github.com/vechain/fungstake/log"
	"github.com/vechain/fungstake/state"
)

var logger = log.WithContext("pkg", "staking")

func SetLogger(l log.Logger) {
	logger = l
}

// Ledger moves and reports asset balances.
type Ledger interface {
	BalanceOf(asset, holder common.Address) (uint64, error)
	Transfer(asset, from, to common.Address, auth keys.Authority, amount uint64) error
}

// Engine implements the staking operations over a state.
// Every operation either applies all its effects, including its final
// transfer, or none of them.
type Engine struct {
	state  *state.State
	sctx   *storage.Context
	keys   *keys.Deriver
	ledger Ledger

	configService   *config.Service
	vaultService    *vault.Service
	positionService *position.Service

	events []*Event
}

// New create a new engine. Records are stored under, and derived from, the program address.
func New(program common.Address, state *state.State, ledger Ledger) *Engine {
	sctx := storage.NewContext(program, state)
	return &Engine{
		state:  state,
		sctx:   sctx,
		keys:   keys.New(program),
		ledger: ledger,

		configService:   config.NewService(sctx),
		vaultService:    vault.NewService(sctx),
		positionService: position.NewService(sctx),
	}
}

// Keys returns the deriver of record identities.
func (e *Engine) Keys() *keys.Deriver {
	return e.keys
}

// Events returns the events of the operations that succeeded so far.
func (e *Engine) Events() []*Event {
	return e.events
}

// Usage returns the storage slots touched by the engine.
func (e *Engine) Usage() storage.Usage {
	return e.sctx.Usage()
}

// atomic runs fn inside a state checkpoint, reverting state and events if it fails.
func (e *Engine) atomic(fn func() error) error {
	checkpoint := e.state.NewCheckpoint()
	emitted := len(e.events)
	if err := fn(); err != nil {
		e.state.RevertTo(checkpoint)
		e.events = e.events[:emitted]
		return err
	}
	return nil
}

func (e *Engine) emit(ev *Event) {
	e.events = append(e.events, ev)
}

// ConfigID returns the config identity of stakeAsset.
func (e *Engine) ConfigID(stakeAsset common.Address) common.Address {
	return e.keys.ConfigAddress(stakeAsset)
}

// VaultID returns the vault identity of the pair. The vault custodial accounts are held under it.
func (e *Engine) VaultID(stakeAsset, rewardAsset common.Address) common.Address {
	return e.keys.VaultAddress(e.ConfigID(stakeAsset), rewardAsset)
}

// PositionID returns the position identity of staker in the vault of the pair.
func (e *Engine) PositionID(stakeAsset, rewardAsset, staker common.Address) common.Address {
	return e.keys.PositionAddress(e.VaultID(stakeAsset, rewardAsset), staker)
}

//
// Getters - no state change
//

// GetConfig returns the config of stakeAsset, nil if not initialized.
func (e *Engine) GetConfig(stakeAsset common.Address) (*config.Config, error) {
	return e.configService.Get(e.ConfigID(stakeAsset))
}

// GetVault returns the vault of the pair, nil if not created.
func (e *Engine) GetVault(stakeAsset, rewardAsset common.Address) (*vault.Vault, error) {
	return e.vaultService.Get(e.VaultID(stakeAsset, rewardAsset))
}

// GetPosition returns the position of staker, nil if staker never staked.
func (e *Engine) GetPosition(stakeAsset, rewardAsset, staker common.Address) (*position.Position, error) {
	return e.positionService.Get(e.PositionID(stakeAsset, rewardAsset, staker))
}

// VaultStatus returns the observed phase of the vault at now.
func (e *Engine) VaultStatus(stakeAsset, rewardAsset common.Address, now uint64) (vault.Status, error) {
	v, err := e.GetVault(stakeAsset, rewardAsset)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, ErrVaultNotFound
	}
	return v.Status(now), nil
}

// PositionStatus returns the status of the position of staker.
func (e *Engine) PositionStatus(stakeAsset, rewardAsset, staker common.Address) (position.Status, error) {
	v, err := e.GetVault(stakeAsset, rewardAsset)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, ErrVaultNotFound
	}
	p, err := e.GetPosition(stakeAsset, rewardAsset, staker)
	if err != nil {
		return 0, err
	}
	if p == nil {
		return position.StatusUnstaked, nil
	}
	return p.Status(v), nil
}

// PreviewReward returns what a claim by staker would pay at now.
// It fails the same way the claim would, without changing any state.
func (e *Engine) PreviewReward(stakeAsset, rewardAsset, staker common.Address, now uint64) (uint64, error) {
	vaultID := e.VaultID(stakeAsset, rewardAsset)
	v, p, err := e.claimable(vaultID, staker, now)
	if err != nil {
		return 0, err
	}
	totalReward := v.TotalReward()
	if !v.ReachTGE() {
		if totalReward, err = e.rewardPool(rewardAsset, vaultID); err != nil {
			return 0, err
		}
	}
	return ComputeReward(p.SnapshotAmount(), v.TotalStaked(), totalReward)
}

// RewardPool returns the balance of the vault reward custodial account.
func (e *Engine) RewardPool(stakeAsset, rewardAsset common.Address) (uint64, error) {
	return e.ledger.BalanceOf(rewardAsset, e.VaultID(stakeAsset, rewardAsset))
}

// rewardPool reads the funded reward balance, rejecting an unfunded pool.
func (e *Engine) rewardPool(rewardAsset, vaultID common.Address) (uint64, error) {
	balance, err := e.ledger.BalanceOf(rewardAsset, vaultID)
	if err != nil {
		return 0, err
	}
	if balance == 0 {
		return 0, ErrTgeNotYetReached
	}
	return balance, nil
}

// claimable checks the claim preconditions in order.
func (e *Engine) claimable(vaultID, staker common.Address, now uint64) (*vault.Vault, *position.Position, error) {
	v, err := e.vaultService.Get(vaultID)
	if err != nil {
		return nil, nil, err
	}
	if v == nil {
		return nil, nil, ErrVaultNotFound
	}
	if v.IsOpen() {
		return nil, nil, ErrVaultNotStarted
	}
	p, err := e.positionService.Get(e.keys.PositionAddress(vaultID, staker))
	if err != nil {
		return nil, nil, err
	}
	if p == nil {
		return nil, nil, ErrNotStaked
	}
	if p.HasClaimed() {
		return nil, nil, ErrAlreadyClaimed
	}
	if !v.Ended(now) {
		return nil, nil, ErrTgeNotYetReached
	}
	return v, p, nil
}
