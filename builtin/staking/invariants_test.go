// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/fungstake/builtin/keys"
	"github.com/vechain/fungstake/builtin/reverts"
)

type fuzzOp struct {
	Kind    uint8
	Staker  uint8
	Amount  uint16
	Advance uint8
}

type observed struct {
	reachSoftCap bool
	reachTGE     bool
	endTime      uint64
	totalReward  uint64
	claimed      map[int]bool
}

func TestRandomOperationsKeepInvariants(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		var ops []fuzzOp
		fuzz.NewWithSeed(seed).NilChance(0).NumElements(50, 300).Fuzz(&ops)

		env := newTestEnv(t, 20, 30, 5000)
		stakers := make([]keys.Signer, 4)
		for i := range stakers {
			stakers[i] = env.newStaker(1e9)
		}

		var (
			now    uint64
			paid   uint64
			before = observed{claimed: map[int]bool{}}
		)
		for _, op := range ops {
			now += uint64(op.Advance % 8)
			staker := stakers[int(op.Staker)%len(stakers)]
			amount := uint64(op.Amount % 1500)

			var err error
			switch op.Kind % 5 {
			case 0, 1:
				err = env.stake(staker, amount, now)
			case 2:
				_, err = env.destake(staker, amount, now)
			case 3:
				var earned uint64
				earned, err = env.claim(staker, now)
				paid += earned
			case 4:
				env.fundRewards(amount)
			}
			if err != nil {
				require.True(t, reverts.IsRevertErr(err), "seed %d: unexpected failure %v", seed, err)
			}

			before = checkInvariants(t, env, stakers, before, paid)
		}
	}
}

func checkInvariants(t *testing.T, env *testEnv, stakers []keys.Signer, before observed, paid uint64) observed {
	v := env.vault()

	var sumStake uint64
	after := observed{
		reachSoftCap: v.ReachSoftCap(),
		reachTGE:     v.ReachTGE(),
		endTime:      v.EndTime(),
		totalReward:  v.TotalReward(),
		claimed:      map[int]bool{},
	}
	for i, s := range stakers {
		p := env.position(s)
		if p == nil {
			continue
		}
		sumStake += p.StakeAmount()
		after.claimed[i] = p.HasClaimed()
		if before.claimed[i] {
			assert.True(t, p.HasClaimed(), "claimed latch reversed")
		}
		if v.IsOpen() {
			assert.Equal(t, p.StakeAmount(), p.SnapshotAmount(), "snapshot follows stake while open")
		}
	}

	if v.IsOpen() {
		assert.Equal(t, v.TotalStaked(), sumStake, "total staked equals sum of positions while open")
		assert.Equal(t, uint64(0), v.EndTime())
	}
	assert.Equal(t, sumStake, env.balance(env.stakeAsset, env.vaultID()), "custody holds all principal")

	if before.reachSoftCap {
		assert.True(t, after.reachSoftCap, "soft cap latch reversed")
		assert.Equal(t, before.endTime, after.endTime, "end time changed after lock")
	}
	if before.reachTGE {
		assert.True(t, after.reachTGE, "tge latch reversed")
		assert.Equal(t, before.totalReward, after.totalReward, "total reward changed after snapshot")
	}
	if after.reachTGE {
		assert.LessOrEqual(t, paid, after.totalReward, "paid more than the pool")
	}
	return after
}
