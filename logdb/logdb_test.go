// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/fungstake/common"
	"github.com/vechain/fungstake/logdb"
	"github.com/vechain/fungstake/test/datagen"
)

func newDB(t *testing.T) *logdb.LogDB {
	db, err := logdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestEvents(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	config := datagen.RandAddress()
	vaultA, vaultB := datagen.RandAddress(), datagen.RandAddress()
	alice, bob := datagen.RandAddress(), datagen.RandAddress()

	require.NoError(t, db.NewBatch("op-1", 10).
		AddEvent("Staked", config, vaultA, alice, 100).
		AddEvent("SoftCapReached", config, vaultA, alice, 60).
		Commit())
	require.NoError(t, db.NewBatch("op-2", 20).
		AddEvent("Staked", config, vaultB, bob, ^uint64(0)).
		Commit())
	require.NoError(t, db.NewBatch("op-3", 30).Commit(), "empty batch")

	all, err := db.FilterEvents(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, &logdb.Event{
		OpID:    "op-1",
		Index:   1,
		Time:    10,
		Type:    "SoftCapReached",
		Config:  config,
		Vault:   vaultA,
		Account: alice,
		Amount:  60,
	}, all[1])
	assert.Equal(t, ^uint64(0), all[2].Amount)

	byVault, err := db.FilterEvents(ctx, &logdb.EventFilter{
		CriteriaSet: []*logdb.EventCriteria{{Vault: &vaultA}},
	})
	require.NoError(t, err)
	assert.Len(t, byVault, 2)

	byTypeOrAccount, err := db.FilterEvents(ctx, &logdb.EventFilter{
		CriteriaSet: []*logdb.EventCriteria{{Type: "SoftCapReached"}, {Account: &bob}},
		Order:       logdb.DESC,
	})
	require.NoError(t, err)
	require.Len(t, byTypeOrAccount, 2)
	assert.Equal(t, bob, byTypeOrAccount[0].Account)

	inRange, err := db.FilterEvents(ctx, &logdb.EventFilter{
		Range: &logdb.Range{From: 15, To: 25},
	})
	require.NoError(t, err)
	require.Len(t, inRange, 1)
	assert.Equal(t, "op-2", inRange[0].OpID)

	paged, err := db.FilterEvents(ctx, &logdb.EventFilter{
		Options: &logdb.Options{Offset: 1, Limit: 1},
	})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, "SoftCapReached", paged[0].Type)
}

func TestTransfers(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	asset := datagen.RandAddress()
	vault, alice := datagen.RandAddress(), datagen.RandAddress()

	require.NoError(t, db.NewBatch("fund", 1).AddTransfer(asset, common.Address{}, vault, 500).Commit())
	require.NoError(t, db.NewBatch("claim", 2).AddTransfer(asset, vault, alice, 300).Commit())

	fromVault, err := db.FilterTransfers(ctx, &logdb.TransferFilter{
		CriteriaSet: []*logdb.TransferCriteria{{Sender: &vault}},
	})
	require.NoError(t, err)
	require.Len(t, fromVault, 1)
	assert.Equal(t, alice, fromVault[0].Recipient)
	assert.Equal(t, uint64(300), fromVault[0].Amount)

	byOp, err := db.FilterTransfers(ctx, &logdb.TransferFilter{OpID: "fund"})
	require.NoError(t, err)
	require.Len(t, byOp, 1)
	assert.True(t, byOp[0].Sender.IsZero())

	touching, err := db.FilterTransfers(ctx, &logdb.TransferFilter{
		CriteriaSet: []*logdb.TransferCriteria{{Sender: &vault}, {Recipient: &vault}},
		Range:       &logdb.Range{From: 0, To: 10},
	})
	require.NoError(t, err)
	assert.Len(t, touching, 2)
}

func TestCanceledContext(t *testing.T) {
	db := newDB(t)
	require.NoError(t, db.NewBatch("op", 1).AddEvent("Staked", common.Address{}, common.Address{}, common.Address{}, 1).Commit())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := db.FilterEvents(ctx, nil)
	assert.Error(t, err)
}
