// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vechain/fungstake/builtin/keys"
	"github.com/vechain/fungstake/builtin/staking/position"
	"github.com/vechain/fungstake/builtin/staking/vault"
	"github.com/vechain/fungstake/builtin/token"
	"github.com/vechain/fungstake/common"
	"github.com/vechain/fungstake/lvldb"
	"github.com/vechain/fungstake/state"
	"github.com/vechain/fungstake/test/datagen"
)

type testEnv struct {
	t *testing.T

	state  *state.State
	ledger *token.Ledger
	engine *Engine

	authority   keys.Signer
	stakeAsset  common.Address
	rewardAsset common.Address
}

func newState(t *testing.T) *state.State {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	stater, err := state.NewStater(db, 128)
	require.NoError(t, err)
	return stater.NewState()
}

// newBareEnv returns an environment without config or vault.
func newBareEnv(t *testing.T) *testEnv {
	st := newState(t)
	ledger := token.New(token.Address, st)
	return &testEnv{
		t:           t,
		state:       st,
		ledger:      ledger,
		engine:      New(datagen.RandAddress(), st, ledger),
		authority:   keys.Signer(datagen.RandAddress()),
		stakeAsset:  datagen.RandAddress(),
		rewardAsset: datagen.RandAddress(),
	}
}

// newTestEnv returns an environment with an initialized config and an open vault.
func newTestEnv(t *testing.T, lockPeriod, lockExtendTime, softCap uint64) *testEnv {
	env := newBareEnv(t)
	require.NoError(t, env.engine.InitializeConfig(env.authority, env.stakeAsset, lockPeriod, lockExtendTime, softCap))
	_, err := env.engine.CreateVault(env.authority, env.stakeAsset, env.rewardAsset)
	require.NoError(t, err)
	return env
}

// newStaker returns a staker holding balance of the stake asset.
func (env *testEnv) newStaker(balance uint64) keys.Signer {
	staker := keys.Signer(datagen.RandAddress())
	require.NoError(env.t, env.ledger.Mint(env.stakeAsset, staker.Address(), balance))
	return staker
}

func (env *testEnv) vaultID() common.Address {
	return env.engine.VaultID(env.stakeAsset, env.rewardAsset)
}

func (env *testEnv) fundRewards(amount uint64) {
	require.NoError(env.t, env.ledger.Mint(env.rewardAsset, env.vaultID(), amount))
}

func (env *testEnv) stake(staker keys.Signer, amount, now uint64) error {
	return env.engine.Stake(staker, env.stakeAsset, env.rewardAsset, amount, now)
}

func (env *testEnv) destake(staker keys.Signer, amount, now uint64) (uint64, error) {
	return env.engine.Destake(staker, env.stakeAsset, env.rewardAsset, amount, now)
}

func (env *testEnv) claim(staker keys.Signer, now uint64) (uint64, error) {
	return env.engine.ClaimReward(staker, env.stakeAsset, env.rewardAsset, now)
}

func (env *testEnv) vault() *vault.Vault {
	v, err := env.engine.GetVault(env.stakeAsset, env.rewardAsset)
	require.NoError(env.t, err)
	require.NotNil(env.t, v)
	return v
}

func (env *testEnv) position(staker keys.Signer) *position.Position {
	p, err := env.engine.GetPosition(env.stakeAsset, env.rewardAsset, staker.Address())
	require.NoError(env.t, err)
	return p
}

func (env *testEnv) balance(asset, holder common.Address) uint64 {
	bal, err := env.ledger.BalanceOf(asset, holder)
	require.NoError(env.t, err)
	return bal
}
