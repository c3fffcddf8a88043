// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package executor

import (
	"context"

	"github.com/vechain/fungstake/builtin/keys"
	"github.com/vechain/fungstake/builtin/reverts"
	"github.com/vechain/fungstake/builtin/staking"
	"github.com/vechain/fungstake/builtin/staking/position"
	"github.com/vechain/fungstake/builtin/staking/vault"
	"github.com/vechain/fungstake/common"
)

func (e *Executor) InitializeConfig(
	ctx context.Context,
	signer keys.Signer,
	stakeAsset common.Address,
	lockPeriod uint64,
	lockExtendTime uint64,
	softCap uint64,
) error {
	return e.Execute(ctx, "initialize_config", func(c *Context) error {
		return c.Engine.InitializeConfig(signer, stakeAsset, lockPeriod, lockExtendTime, softCap)
	})
}

func (e *Executor) CreateVault(ctx context.Context, signer keys.Signer, stakeAsset, rewardAsset common.Address) (vaultID common.Address, err error) {
	err = e.Execute(ctx, "create_vault", func(c *Context) (err error) {
		vaultID, err = c.Engine.CreateVault(signer, stakeAsset, rewardAsset)
		return
	})
	return
}

func (e *Executor) Stake(ctx context.Context, staker keys.Signer, stakeAsset, rewardAsset common.Address, amount uint64) error {
	return e.Execute(ctx, "stake", func(c *Context) error {
		return c.Engine.Stake(staker, stakeAsset, rewardAsset, amount, c.Now)
	})
}

func (e *Executor) Destake(ctx context.Context, staker keys.Signer, stakeAsset, rewardAsset common.Address, amount uint64) (returned uint64, err error) {
	err = e.Execute(ctx, "destake", func(c *Context) (err error) {
		returned, err = c.Engine.Destake(staker, stakeAsset, rewardAsset, amount, c.Now)
		return
	})
	return
}

func (e *Executor) ClaimReward(ctx context.Context, staker keys.Signer, stakeAsset, rewardAsset common.Address) (reward uint64, err error) {
	err = e.Execute(ctx, "claim_reward", func(c *Context) (err error) {
		reward, err = c.Engine.ClaimReward(staker, stakeAsset, rewardAsset, c.Now)
		return
	})
	return
}

// Fund mints amount of the reward asset into the reward pool of an existing vault.
func (e *Executor) Fund(ctx context.Context, stakeAsset, rewardAsset common.Address, amount uint64) error {
	return e.Execute(ctx, "fund", func(c *Context) error {
		v, err := c.Engine.GetVault(stakeAsset, rewardAsset)
		if err != nil {
			return err
		}
		if v == nil {
			return staking.ErrVaultNotFound
		}
		return c.Ledger.Mint(rewardAsset, c.Engine.VaultID(stakeAsset, rewardAsset), amount)
	})
}

// Mint credits amount of asset to holder.
func (e *Executor) Mint(ctx context.Context, asset, holder common.Address, amount uint64) error {
	return e.Execute(ctx, "mint", func(c *Context) error {
		return c.Ledger.Mint(asset, holder, amount)
	})
}

// Snapshot is a read-only view of a vault and optionally one of its positions.
type Snapshot struct {
	Now        uint64
	VaultID    common.Address
	Vault      *vault.Vault
	Status     vault.Status
	RewardPool uint64
	Position   *position.Position // nil if no staker given or never staked
	Claimable  uint64             // zero unless the position can claim now
}

// Inspect reads the vault of the pair and, if staker is not zero, the staker's position.
func (e *Executor) Inspect(ctx context.Context, stakeAsset, rewardAsset, staker common.Address) (*Snapshot, error) {
	var snap *Snapshot
	err := e.View(ctx, func(c *Context) error {
		v, err := c.Engine.GetVault(stakeAsset, rewardAsset)
		if err != nil {
			return err
		}
		if v == nil {
			return staking.ErrVaultNotFound
		}
		pool, err := c.Engine.RewardPool(stakeAsset, rewardAsset)
		if err != nil {
			return err
		}
		snap = &Snapshot{
			Now:        c.Now,
			VaultID:    c.Engine.VaultID(stakeAsset, rewardAsset),
			Vault:      v,
			Status:     v.Status(c.Now),
			RewardPool: pool,
		}
		if staker.IsZero() {
			return nil
		}
		if snap.Position, err = c.Engine.GetPosition(stakeAsset, rewardAsset, staker); err != nil {
			return err
		}
		reward, err := c.Engine.PreviewReward(stakeAsset, rewardAsset, staker, c.Now)
		if err != nil {
			if reverts.IsRevertErr(err) {
				return nil
			}
			return err
		}
		snap.Claimable = reward
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// BalanceOf reads the committed balance of holder.
func (e *Executor) BalanceOf(ctx context.Context, asset, holder common.Address) (balance uint64, err error) {
	err = e.View(ctx, func(c *Context) (err error) {
		balance, err = c.Ledger.BalanceOf(asset, holder)
		return
	})
	return
}
