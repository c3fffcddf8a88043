// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package position

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/fungstake/builtin/staking/vault"
	"github.com/vechain/fungstake/builtin/storage"
	"github.com/vechain/fungstake/lvldb"
	"github.com/vechain/fungstake/state"
	"github.com/vechain/fungstake/test/datagen"
)

func TestAddRemoveWhileOpen(t *testing.T) {
	p := New(datagen.RandAddress(), datagen.RandAddress())
	assert.False(t, p.IsStaked())

	assert.True(t, p.Add(100, 50, true))
	assert.Equal(t, uint64(100), p.StakeAmount())
	assert.Equal(t, uint64(100), p.SnapshotAmount())
	assert.Equal(t, uint64(50), p.UnlockTime())
	assert.False(t, p.Unlocked(49))
	assert.True(t, p.Unlocked(50))

	assert.Equal(t, uint64(30), p.Remove(30, true))
	assert.Equal(t, uint64(70), p.StakeAmount())
	assert.Equal(t, uint64(70), p.SnapshotAmount())

	assert.Equal(t, uint64(70), p.Remove(1000, true), "withdrawal is clamped")
	assert.False(t, p.IsStaked())
	assert.Equal(t, uint64(0), p.SnapshotAmount())
}

func TestSnapshotFreezesOnceLocked(t *testing.T) {
	p := New(datagen.RandAddress(), datagen.RandAddress())
	require.True(t, p.Add(100, 10, true))

	assert.True(t, p.Add(50, 20, false))
	assert.Equal(t, uint64(150), p.StakeAmount())
	assert.Equal(t, uint64(100), p.SnapshotAmount())
	assert.Equal(t, uint64(20), p.UnlockTime())

	assert.Equal(t, uint64(150), p.Remove(150, false))
	assert.Equal(t, uint64(100), p.SnapshotAmount())
}

func TestAddOverflow(t *testing.T) {
	p := New(datagen.RandAddress(), datagen.RandAddress())
	require.True(t, p.Add(math.MaxUint64, 10, true))

	assert.False(t, p.Add(1, 20, true))
	assert.Equal(t, uint64(math.MaxUint64), p.StakeAmount())
	assert.Equal(t, uint64(10), p.UnlockTime())
}

func TestStatus(t *testing.T) {
	v := vault.New(datagen.RandAddress(), datagen.RandAddress())
	p := New(datagen.RandAddress(), datagen.RandAddress())

	assert.Equal(t, StatusUnstaked, p.Status(v))
	p.Add(10, 0, true)
	assert.Equal(t, StatusStaked, p.Status(v))

	require.NoError(t, v.Lock(100))
	assert.Equal(t, StatusLocked, p.Status(v))

	p.MarkClaimed()
	assert.Equal(t, StatusClaimed, p.Status(v))
	assert.Equal(t, "claimed", p.Status(v).String())
}

func TestService(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	stater, err := state.NewStater(db, 16)
	require.NoError(t, err)
	svc := NewService(storage.NewContext(datagen.RandAddress(), stater.NewState()))

	id := datagen.RandAddress()
	got, err := svc.Get(id)
	require.NoError(t, err)
	assert.Nil(t, got)

	p := New(datagen.RandAddress(), datagen.RandAddress())
	p.Add(5, 9, true)
	require.NoError(t, svc.Upsert(id, p))

	got, err = svc.Get(id)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}
