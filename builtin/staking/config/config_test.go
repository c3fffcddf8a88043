// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/fungstake/builtin/storage"
	"github.com/vechain/fungstake/lvldb"
	"github.com/vechain/fungstake/state"
	"github.com/vechain/fungstake/test/datagen"
)

func newService(t *testing.T) *Service {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	stater, err := state.NewStater(db, 16)
	require.NoError(t, err)
	return NewService(storage.NewContext(datagen.RandAddress(), stater.NewState()))
}

func TestConfigService(t *testing.T) {
	svc := newService(t)
	id := datagen.RandAddress()
	authority, asset := datagen.RandAddress(), datagen.RandAddress()

	cfg, err := svc.Get(id)
	require.NoError(t, err)
	assert.Nil(t, cfg)

	require.NoError(t, svc.Add(id, New(authority, asset, 3600, 600, 1000)))
	assert.Error(t, svc.Add(id, New(authority, asset, 1, 1, 1)))

	cfg, err = svc.Get(id)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, authority, cfg.Authority())
	assert.Equal(t, asset, cfg.StakeAsset())
	assert.Equal(t, uint64(3600), cfg.LockPeriod())
	assert.Equal(t, uint64(600), cfg.LockExtendTime())
	assert.Equal(t, uint64(1000), cfg.SoftCap())
	assert.Equal(t, uint8(Version), cfg.Version())
}
