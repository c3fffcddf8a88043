// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/fungstake/builtin/keys"
	"github.com/vechain/fungstake/builtin/reverts"
	"github.com/vechain/fungstake/builtin/staking/config"
	"github.com/vechain/fungstake/builtin/staking/position"
	"github.com/vechain/fungstake/builtin/staking/vault"
	"github.com/vechain/fungstake/builtin/token"
	"github.com/vechain/fungstake/test/datagen"
)

func TestInitializeConfig(t *testing.T) {
	env := newBareEnv(t)

	require.NoError(t, env.engine.InitializeConfig(env.authority, env.stakeAsset, 100, 50, 1000))

	cfg, err := env.engine.GetConfig(env.stakeAsset)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, env.authority.Address(), cfg.Authority())
	assert.Equal(t, env.stakeAsset, cfg.StakeAsset())
	assert.Equal(t, uint64(100), cfg.LockPeriod())
	assert.Equal(t, uint64(50), cfg.LockExtendTime())
	assert.Equal(t, uint64(1000), cfg.SoftCap())
	assert.Equal(t, uint8(config.Version), cfg.Version())

	err = env.engine.InitializeConfig(keys.Signer(datagen.RandAddress()), env.stakeAsset, 1, 1, 1)
	assert.ErrorIs(t, err, ErrConfigExists)

	cfg, err = env.engine.GetConfig(env.stakeAsset)
	require.NoError(t, err)
	assert.Equal(t, env.authority.Address(), cfg.Authority(), "re-initialization must not overwrite")
}

func TestCreateVault(t *testing.T) {
	env := newBareEnv(t)

	_, err := env.engine.CreateVault(env.authority, env.stakeAsset, env.rewardAsset)
	assert.ErrorIs(t, err, ErrConfigNotFound)

	require.NoError(t, env.engine.InitializeConfig(env.authority, env.stakeAsset, 100, 50, 1000))

	_, err = env.engine.CreateVault(keys.Signer(datagen.RandAddress()), env.stakeAsset, env.rewardAsset)
	assert.ErrorIs(t, err, ErrIncorrectAuthority)
	assert.Equal(t, reverts.Authorization, reverts.KindOf(err))

	id, err := env.engine.CreateVault(env.authority, env.stakeAsset, env.rewardAsset)
	require.NoError(t, err)
	assert.Equal(t, env.vaultID(), id)

	v := env.vault()
	assert.Equal(t, env.engine.ConfigID(env.stakeAsset), v.Config())
	assert.Equal(t, env.rewardAsset, v.RewardAsset())
	assert.Equal(t, uint64(0), v.TotalStaked())
	assert.Equal(t, uint64(0), v.EndTime())
	assert.False(t, v.ReachSoftCap())
	assert.False(t, v.ReachTGE())
	assert.Equal(t, uint64(0), v.TotalReward())
	assert.Equal(t, uint8(vault.Version), v.Version())

	_, err = env.engine.CreateVault(env.authority, env.stakeAsset, env.rewardAsset)
	assert.ErrorIs(t, err, ErrVaultExists)

	// another reward asset under the same config gets its own vault
	other, err := env.engine.CreateVault(env.authority, env.stakeAsset, datagen.RandAddress())
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}

func TestStakeBelowSoftCap(t *testing.T) {
	env := newTestEnv(t, 100, 50, 1000)
	staker := env.newStaker(1000)

	require.NoError(t, env.stake(staker, 300, 10))
	require.NoError(t, env.stake(staker, 200, 20))

	p := env.position(staker)
	assert.Equal(t, uint64(500), p.StakeAmount())
	assert.Equal(t, uint64(500), p.SnapshotAmount())
	assert.Equal(t, uint64(120), p.UnlockTime(), "each stake restarts the lock")
	assert.Equal(t, position.StatusStaked, p.Status(env.vault()))

	v := env.vault()
	assert.Equal(t, uint64(500), v.TotalStaked())
	assert.True(t, v.IsOpen())

	assert.Equal(t, uint64(500), env.balance(env.stakeAsset, staker.Address()))
	assert.Equal(t, uint64(500), env.balance(env.stakeAsset, env.vaultID()))
}

func TestStakeRejections(t *testing.T) {
	t.Run("zero amount", func(t *testing.T) {
		env := newTestEnv(t, 100, 50, 1000)
		staker := env.newStaker(10)
		assert.ErrorIs(t, env.stake(staker, 0, 0), ErrNoTokens)
		assert.Nil(t, env.position(staker))
	})

	t.Run("zero amount is rejected before vault lookup", func(t *testing.T) {
		env := newBareEnv(t)
		assert.ErrorIs(t, env.stake(keys.Signer(datagen.RandAddress()), 0, 0), ErrNoTokens)
	})

	t.Run("missing vault", func(t *testing.T) {
		env := newBareEnv(t)
		assert.ErrorIs(t, env.stake(keys.Signer(datagen.RandAddress()), 1, 0), ErrVaultNotFound)
	})

	t.Run("unlock time overflow", func(t *testing.T) {
		env := newTestEnv(t, math.MaxUint64, 50, 1000)
		staker := env.newStaker(10)
		err := env.stake(staker, 1, 1)
		assert.ErrorIs(t, err, ErrOverflow)
		assert.Equal(t, reverts.Arithmetic, reverts.KindOf(err))
	})

	t.Run("ended vault", func(t *testing.T) {
		env := newTestEnv(t, 100, 50, 1000)
		staker := env.newStaker(2000)
		require.NoError(t, env.stake(staker, 1000, 0))

		require.NoError(t, env.stake(staker, 1, 50), "stake at the deadline is still accepted")
		assert.ErrorIs(t, env.stake(staker, 1, 51), ErrVaultEnded)
	})

	t.Run("zero amount on locked vault", func(t *testing.T) {
		env := newTestEnv(t, 100, 50, 1000)
		staker := env.newStaker(1000)
		require.NoError(t, env.stake(staker, 1000, 0))
		require.Equal(t, vault.PhaseLocked, env.vault().Phase())

		assert.ErrorIs(t, env.stake(staker, 0, 10), ErrNoTokens)
		assert.Equal(t, uint64(1000), env.vault().TotalStaked())
	})

	t.Run("zero amount on ended vault", func(t *testing.T) {
		env := newTestEnv(t, 100, 50, 1000)
		staker := env.newStaker(1000)
		require.NoError(t, env.stake(staker, 1000, 0))

		assert.ErrorIs(t, env.stake(staker, 0, 51), ErrNoTokens, "amount is checked before the deadline")
		assert.ErrorIs(t, env.stake(staker, 1, 51), ErrVaultEnded)
	})
}

func TestStakeTransferFailureLeavesNoTrace(t *testing.T) {
	env := newTestEnv(t, 100, 50, 1000)
	staker := env.newStaker(500)

	err := env.stake(staker, 1000, 0)
	require.Error(t, err)
	assert.False(t, reverts.IsRevertErr(err))
	assert.Equal(t, token.ErrInsufficientBalance, errors.Cause(err))

	assert.Nil(t, env.position(staker))
	v := env.vault()
	assert.Equal(t, uint64(0), v.TotalStaked())
	assert.True(t, v.IsOpen(), "soft cap latch must not survive a failed transfer")
	assert.Equal(t, uint64(500), env.balance(env.stakeAsset, staker.Address()))
	assert.Len(t, env.engine.Events(), 2, "only config and vault creation were emitted")
}

func TestSoftCapLatch(t *testing.T) {
	env := newTestEnv(t, 100, 50, 1000)
	alice, bob := env.newStaker(1000), env.newStaker(1000)

	require.NoError(t, env.stake(alice, 600, 5))
	assert.True(t, env.vault().IsOpen())

	require.NoError(t, env.stake(bob, 400, 10))
	v := env.vault()
	assert.True(t, v.ReachSoftCap())
	assert.Equal(t, uint64(60), v.EndTime())
	assert.Equal(t, vault.StatusLockedPendingTGE, v.Status(10))

	// the crossing stake still counts towards the snapshot
	assert.Equal(t, uint64(400), env.position(bob).SnapshotAmount())

	// the latch is one-shot
	require.NoError(t, env.stake(alice, 100, 20))
	v = env.vault()
	assert.Equal(t, uint64(60), v.EndTime())
	assert.Equal(t, uint64(1100), v.TotalStaked())

	// stakes after the lock do not move the snapshot
	p := env.position(alice)
	assert.Equal(t, uint64(700), p.StakeAmount())
	assert.Equal(t, uint64(600), p.SnapshotAmount())
	assert.Equal(t, uint64(120), p.UnlockTime())
}

func TestZeroSoftCapLocksOnFirstStake(t *testing.T) {
	env := newTestEnv(t, 0, 10, 0)
	staker := env.newStaker(5)

	require.NoError(t, env.stake(staker, 1, 7))
	v := env.vault()
	assert.True(t, v.ReachSoftCap())
	assert.Equal(t, uint64(17), v.EndTime())
}

func TestDestakeWhileOpen(t *testing.T) {
	env := newTestEnv(t, 100, 50, 1000)
	staker := env.newStaker(500)
	require.NoError(t, env.stake(staker, 500, 0))

	_, err := env.destake(staker, 100, 99)
	assert.ErrorIs(t, err, ErrUnbondingTimeNotOverYet)

	unstaked, err := env.destake(staker, 100, 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), unstaked)

	p := env.position(staker)
	assert.Equal(t, uint64(400), p.StakeAmount())
	assert.Equal(t, uint64(400), p.SnapshotAmount())
	assert.Equal(t, uint64(400), env.vault().TotalStaked())
	assert.Equal(t, uint64(100), env.balance(env.stakeAsset, staker.Address()))

	// over-requesting clamps
	unstaked, err = env.destake(staker, math.MaxUint64, 200)
	require.NoError(t, err)
	assert.Equal(t, uint64(400), unstaked)
	assert.Equal(t, uint64(0), env.vault().TotalStaked())
	assert.Equal(t, uint64(500), env.balance(env.stakeAsset, staker.Address()))

	// the emptied position persists
	p = env.position(staker)
	require.NotNil(t, p)
	assert.Equal(t, uint64(0), p.StakeAmount())
	assert.Equal(t, position.StatusUnstaked, p.Status(env.vault()))

	_, err = env.destake(staker, 1, 300)
	assert.ErrorIs(t, err, ErrNotStaked)
}

func TestDestakeRejections(t *testing.T) {
	env := newTestEnv(t, 10, 50, 100)

	_, err := env.destake(keys.Signer(datagen.RandAddress()), 1, 0)
	assert.ErrorIs(t, err, ErrNotStaked)

	bare := newBareEnv(t)
	_, err = bare.destake(keys.Signer(datagen.RandAddress()), 1, 0)
	assert.ErrorIs(t, err, ErrVaultNotFound)

	staker := env.newStaker(100)
	require.NoError(t, env.stake(staker, 100, 0)) // locks until 50, unlock at 10

	_, err = env.destake(staker, 1, 50)
	assert.ErrorIs(t, err, ErrTgeNotYetReached)
	assert.Equal(t, reverts.Timing, reverts.KindOf(err))

	unstaked, err := env.destake(staker, 1, 51)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), unstaked)
}

func TestDestakeZeroAmount(t *testing.T) {
	env := newTestEnv(t, 0, 50, 1000)
	staker := env.newStaker(10)
	require.NoError(t, env.stake(staker, 10, 0))

	unstaked, err := env.destake(staker, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), unstaked)
	assert.Equal(t, uint64(10), env.position(staker).StakeAmount())
	assert.Equal(t, uint64(10), env.vault().TotalStaked())
}

func TestClaimRejections(t *testing.T) {
	env := newTestEnv(t, 0, 50, 100)
	staker := env.newStaker(100)

	bare := newBareEnv(t)
	_, err := bare.claim(staker, 0)
	assert.ErrorIs(t, err, ErrVaultNotFound)

	_, err = env.claim(staker, 1000)
	assert.ErrorIs(t, err, ErrVaultNotStarted, "open vault")

	require.NoError(t, env.stake(staker, 100, 0))

	_, err = env.claim(keys.Signer(datagen.RandAddress()), 1000)
	assert.ErrorIs(t, err, ErrNotStaked)

	_, err = env.claim(staker, 50)
	assert.ErrorIs(t, err, ErrTgeNotYetReached, "deadline not passed")

	_, err = env.claim(staker, 51)
	assert.ErrorIs(t, err, ErrTgeNotYetReached, "pool not funded")
	assert.False(t, env.vault().ReachTGE())
	assert.False(t, env.position(staker).HasClaimed())
}

func TestClaimIsOneShot(t *testing.T) {
	env := newTestEnv(t, 0, 50, 100)
	staker := env.newStaker(100)
	require.NoError(t, env.stake(staker, 100, 0))
	env.fundRewards(10)

	earned, err := env.claim(staker, 51)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), earned)

	_, err = env.claim(staker, 52)
	assert.ErrorIs(t, err, ErrAlreadyClaimed)
	assert.Equal(t, uint64(10), env.balance(env.rewardAsset, staker.Address()))
	assert.Equal(t, uint64(0), env.balance(env.rewardAsset, env.vaultID()))

	// a claimed position reports claimed before the timing check
	_, err = env.claim(staker, 0)
	assert.ErrorIs(t, err, ErrAlreadyClaimed)
}

func TestRoundTripWhileOpen(t *testing.T) {
	env := newTestEnv(t, 0, 50, 1000)
	staker := env.newStaker(1000)
	require.NoError(t, env.stake(staker, 250, 0))

	beforeTotal := env.vault().TotalStaked()
	beforeStake := env.position(staker).StakeAmount()

	require.NoError(t, env.stake(staker, 300, 1))
	unstaked, err := env.destake(staker, 300, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(300), unstaked)

	assert.Equal(t, beforeTotal, env.vault().TotalStaked())
	assert.Equal(t, beforeStake, env.position(staker).StakeAmount())
	assert.Equal(t, uint64(750), env.balance(env.stakeAsset, staker.Address()))
}

func TestQueries(t *testing.T) {
	env := newTestEnv(t, 10, 50, 100)
	staker := env.newStaker(100)

	status, err := env.engine.VaultStatus(env.stakeAsset, env.rewardAsset, 0)
	require.NoError(t, err)
	assert.Equal(t, vault.StatusOpen, status)

	_, err = env.engine.VaultStatus(env.stakeAsset, datagen.RandAddress(), 0)
	assert.ErrorIs(t, err, ErrVaultNotFound)

	pstatus, err := env.engine.PositionStatus(env.stakeAsset, env.rewardAsset, staker.Address())
	require.NoError(t, err)
	assert.Equal(t, position.StatusUnstaked, pstatus)

	require.NoError(t, env.stake(staker, 100, 0))

	pstatus, err = env.engine.PositionStatus(env.stakeAsset, env.rewardAsset, staker.Address())
	require.NoError(t, err)
	assert.Equal(t, position.StatusLocked, pstatus)

	status, err = env.engine.VaultStatus(env.stakeAsset, env.rewardAsset, 51)
	require.NoError(t, err)
	assert.Equal(t, vault.StatusTgeReady, status)

	_, err = env.engine.PreviewReward(env.stakeAsset, env.rewardAsset, staker.Address(), 51)
	assert.ErrorIs(t, err, ErrTgeNotYetReached)

	env.fundRewards(40)
	pool, err := env.engine.RewardPool(env.stakeAsset, env.rewardAsset)
	require.NoError(t, err)
	assert.Equal(t, uint64(40), pool)

	preview, err := env.engine.PreviewReward(env.stakeAsset, env.rewardAsset, staker.Address(), 51)
	require.NoError(t, err)
	assert.Equal(t, uint64(40), preview)
	assert.False(t, env.vault().ReachTGE(), "preview does not snapshot")

	earned, err := env.claim(staker, 51)
	require.NoError(t, err)
	assert.Equal(t, preview, earned)

	status, err = env.engine.VaultStatus(env.stakeAsset, env.rewardAsset, 51)
	require.NoError(t, err)
	assert.Equal(t, vault.StatusDistributing, status)

	pstatus, err = env.engine.PositionStatus(env.stakeAsset, env.rewardAsset, staker.Address())
	require.NoError(t, err)
	assert.Equal(t, position.StatusClaimed, pstatus)
}

func TestEvents(t *testing.T) {
	env := newTestEnv(t, 0, 10, 100)
	staker := env.newStaker(100)

	require.NoError(t, env.stake(staker, 100, 0))
	env.fundRewards(7)
	_, err := env.claim(staker, 11)
	require.NoError(t, err)
	_, err = env.destake(staker, 100, 11)
	require.NoError(t, err)

	var types []EventType
	for _, ev := range env.engine.Events() {
		types = append(types, ev.Type)
	}
	assert.Equal(t, []EventType{
		EventConfigInitialized,
		EventVaultCreated,
		EventStaked,
		EventSoftCapReached,
		EventDistributionStarted,
		EventRewardClaimed,
		EventDestaked,
	}, types)

	last := env.engine.Events()[len(types)-1]
	assert.Equal(t, env.vaultID(), last.Vault)
	assert.Equal(t, staker.Address(), last.Account)
	assert.Equal(t, uint64(100), last.Amount)
}
