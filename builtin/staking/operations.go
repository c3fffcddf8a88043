// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/pkg/errors"

	"github.com/vechain/fungstake/builtin/keys"
	"github.com/vechain/fungstake/builtin/staking/config"
	"github.com/vechain/fungstake/builtin/staking/position"
	"github.com/vechain/fungstake/builtin/staking/vault"
	"github.com/vechain/fungstake/common"
)

//
// Setters - state change
//

// InitializeConfig creates the staking policy of stakeAsset, owned by signer.
func (e *Engine) InitializeConfig(
	signer keys.Signer,
	stakeAsset common.Address,
	lockPeriod uint64,
	lockExtendTime uint64,
	softCap uint64,
) error {
	logger.Debug("initializing config", "authority", signer.Address(), "stakeAsset", stakeAsset,
		"lockPeriod", lockPeriod,
		"lockExtendTime", lockExtendTime,
		"softCap", softCap,
	)

	configID := e.ConfigID(stakeAsset)
	err := e.atomic(func() error {
		existing, err := e.configService.Get(configID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrConfigExists
		}
		cfg := config.New(signer.Address(), stakeAsset, lockPeriod, lockExtendTime, softCap)
		if err := e.configService.Add(configID, cfg); err != nil {
			return err
		}
		e.emit(&Event{Type: EventConfigInitialized, Config: configID, Account: signer.Address()})
		return nil
	})
	if err != nil {
		logger.Info("initialize config failed", "stakeAsset", stakeAsset, "error", err)
		return err
	}

	logger.Info("initialized config", "config", configID)
	return nil
}

// CreateVault opens the vault paying rewardAsset to stakers of stakeAsset.
// Only the config authority can create vaults.
func (e *Engine) CreateVault(signer keys.Signer, stakeAsset, rewardAsset common.Address) (common.Address, error) {
	logger.Debug("creating vault", "signer", signer.Address(), "stakeAsset", stakeAsset, "rewardAsset", rewardAsset)

	configID := e.ConfigID(stakeAsset)
	vaultID := e.keys.VaultAddress(configID, rewardAsset)
	err := e.atomic(func() error {
		cfg, err := e.configService.Get(configID)
		if err != nil {
			return err
		}
		if cfg == nil {
			return ErrConfigNotFound
		}
		if !signer.Authorizes(cfg.Authority()) {
			return ErrIncorrectAuthority
		}
		existing, err := e.vaultService.Get(vaultID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrVaultExists
		}
		if err := e.vaultService.Add(vaultID, vault.New(configID, rewardAsset)); err != nil {
			return err
		}
		e.emit(&Event{Type: EventVaultCreated, Config: configID, Vault: vaultID, Account: signer.Address()})
		return nil
	})
	if err != nil {
		logger.Info("create vault failed", "stakeAsset", stakeAsset, "rewardAsset", rewardAsset, "error", err)
		return common.Address{}, err
	}

	logger.Info("created vault", "vault", vaultID)
	return vaultID, nil
}

// Stake moves amount of the stake asset from staker into the vault and
// restarts the lock of the staker's position. The stake that brings the
// vault total to the soft cap locks the vault until now + lock extension.
func (e *Engine) Stake(staker keys.Signer, stakeAsset, rewardAsset common.Address, amount uint64, now uint64) error {
	logger.Debug("staking", "staker", staker.Address(), "stakeAsset", stakeAsset, "rewardAsset", rewardAsset,
		"amount", amount,
		"now", now,
	)

	configID := e.ConfigID(stakeAsset)
	vaultID := e.keys.VaultAddress(configID, rewardAsset)
	err := e.atomic(func() error {
		if amount == 0 {
			return ErrNoTokens
		}
		v, err := e.vaultService.Get(vaultID)
		if err != nil {
			return err
		}
		if v == nil {
			return ErrVaultNotFound
		}
		if v.Ended(now) {
			return ErrVaultEnded
		}
		cfg, err := e.configService.Get(configID)
		if err != nil {
			return err
		}
		if cfg == nil {
			return ErrConfigNotFound
		}

		unlockTime := now + cfg.LockPeriod()
		if unlockTime < now {
			return ErrOverflow
		}

		positionID := e.keys.PositionAddress(vaultID, staker.Address())
		p, err := e.positionService.Get(positionID)
		if err != nil {
			return err
		}
		if p == nil {
			p = position.New(vaultID, staker.Address())
		}
		if !p.Add(amount, unlockTime, v.IsOpen()) {
			return ErrOverflow
		}
		if !v.Deposit(amount) {
			return ErrOverflow
		}
		e.emit(&Event{Type: EventStaked, Config: configID, Vault: vaultID, Account: staker.Address(), Amount: amount})

		if v.IsOpen() && v.TotalStaked() >= cfg.SoftCap() {
			endTime := now + cfg.LockExtendTime()
			if endTime < now {
				return ErrOverflow
			}
			if err := v.Lock(endTime); err != nil {
				return err
			}
			logger.Info("soft cap reached", "vault", vaultID, "totalStaked", v.TotalStaked(), "endTime", endTime)
			e.emit(&Event{Type: EventSoftCapReached, Config: configID, Vault: vaultID, Account: staker.Address(), Amount: endTime})
		}

		if err := e.positionService.Upsert(positionID, p); err != nil {
			return err
		}
		if err := e.vaultService.Update(vaultID, v); err != nil {
			return err
		}

		if err := e.ledger.Transfer(stakeAsset, staker.Address(), vaultID, staker, amount); err != nil {
			return errors.Wrap(err, "transfer stake to vault")
		}
		return nil
	})
	if err != nil {
		logger.Info("stake failed", "staker", staker.Address(), "vault", vaultID, "error", err)
		return err
	}

	logger.Info("staked", "staker", staker.Address(), "vault", vaultID, "amount", amount)
	return nil
}

// Destake withdraws up to amount of the staker's principal once its lock is
// over. While the vault is open the withdrawal also lowers the vault total and
// the reward-share basis; once locked both stay frozen.
func (e *Engine) Destake(staker keys.Signer, stakeAsset, rewardAsset common.Address, amount uint64, now uint64) (uint64, error) {
	logger.Debug("destaking", "staker", staker.Address(), "stakeAsset", stakeAsset, "rewardAsset", rewardAsset,
		"amount", amount,
		"now", now,
	)

	configID := e.ConfigID(stakeAsset)
	vaultID := e.keys.VaultAddress(configID, rewardAsset)
	var unstaked uint64
	err := e.atomic(func() error {
		v, err := e.vaultService.Get(vaultID)
		if err != nil {
			return err
		}
		if v == nil {
			return ErrVaultNotFound
		}
		positionID := e.keys.PositionAddress(vaultID, staker.Address())
		p, err := e.positionService.Get(positionID)
		if err != nil {
			return err
		}
		if p == nil || !p.IsStaked() {
			return ErrNotStaked
		}
		if !p.Unlocked(now) {
			return ErrUnbondingTimeNotOverYet
		}
		if !v.IsOpen() && !v.Ended(now) {
			return ErrTgeNotYetReached
		}

		open := v.IsOpen()
		unstaked = p.Remove(amount, open)
		if open {
			if err := v.Withdraw(unstaked); err != nil {
				return err
			}
		}

		if err := e.positionService.Upsert(positionID, p); err != nil {
			return err
		}
		if err := e.vaultService.Update(vaultID, v); err != nil {
			return err
		}
		e.emit(&Event{Type: EventDestaked, Config: configID, Vault: vaultID, Account: staker.Address(), Amount: unstaked})

		capability := e.keys.VaultCapability(configID, rewardAsset)
		if err := e.ledger.Transfer(stakeAsset, vaultID, staker.Address(), capability, unstaked); err != nil {
			return errors.Wrap(err, "transfer stake to staker")
		}
		return nil
	})
	if err != nil {
		logger.Info("destake failed", "staker", staker.Address(), "vault", vaultID, "error", err)
		return 0, err
	}

	logger.Info("destaked", "staker", staker.Address(), "vault", vaultID, "amount", unstaked)
	return unstaked, nil
}

// ClaimReward pays the staker's pro-rata share of the reward pool, once.
// The first claim after the lock extension snapshots the funded pool.
func (e *Engine) ClaimReward(staker keys.Signer, stakeAsset, rewardAsset common.Address, now uint64) (uint64, error) {
	logger.Debug("claiming reward", "staker", staker.Address(), "stakeAsset", stakeAsset, "rewardAsset", rewardAsset,
		"now", now,
	)

	configID := e.ConfigID(stakeAsset)
	vaultID := e.keys.VaultAddress(configID, rewardAsset)
	var earned uint64
	err := e.atomic(func() error {
		v, p, err := e.claimable(vaultID, staker.Address(), now)
		if err != nil {
			return err
		}

		if !v.ReachTGE() {
			totalReward, err := e.rewardPool(rewardAsset, vaultID)
			if err != nil {
				return err
			}
			if err := v.StartDistribution(totalReward); err != nil {
				return err
			}
			logger.Info("distribution started", "vault", vaultID, "totalReward", totalReward)
			e.emit(&Event{Type: EventDistributionStarted, Config: configID, Vault: vaultID, Account: staker.Address(), Amount: totalReward})
		}

		if earned, err = ComputeReward(p.SnapshotAmount(), v.TotalStaked(), v.TotalReward()); err != nil {
			return err
		}
		p.MarkClaimed()

		if err := e.positionService.Upsert(e.keys.PositionAddress(vaultID, staker.Address()), p); err != nil {
			return err
		}
		if err := e.vaultService.Update(vaultID, v); err != nil {
			return err
		}
		e.emit(&Event{Type: EventRewardClaimed, Config: configID, Vault: vaultID, Account: staker.Address(), Amount: earned})

		capability := e.keys.VaultCapability(configID, rewardAsset)
		if err := e.ledger.Transfer(rewardAsset, vaultID, staker.Address(), capability, earned); err != nil {
			return errors.Wrap(err, "transfer reward to staker")
		}
		return nil
	})
	if err != nil {
		logger.Info("claim reward failed", "staker", staker.Address(), "vault", vaultID, "error", err)
		return 0, err
	}

	logger.Info("claimed reward", "staker", staker.Address(), "vault", vaultID, "amount", earned)
	return earned, nil
}
