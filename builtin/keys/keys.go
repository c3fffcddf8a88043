// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package keys derives the deterministic identities of staking records and
// the capabilities that let a program act for them.
package keys

import (
	"github.com/vechain/fungstake/common"
)

// Seed tags prefixing every derivation.
var (
	ConfigSeed   = []byte("staking_config")
	VaultSeed    = []byte("staking_vault")
	PositionSeed = []byte("staker_info")
)

// Derive returns the address derived from the program and seeds.
func Derive(program common.Address, seeds ...[]byte) common.Address {
	data := make([][]byte, 0, len(seeds)+1)
	data = append(data, program.Bytes())
	data = append(data, seeds...)
	h := common.Blake2b(data...)
	return common.BytesToAddress(h[12:])
}

// Deriver derives record identities rooted at one program address.
type Deriver struct {
	program common.Address
}

func New(program common.Address) *Deriver {
	return &Deriver{program: program}
}

func (d *Deriver) Program() common.Address {
	return d.program
}

func (d *Deriver) ConfigSeeds(stakeAsset common.Address) [][]byte {
	return [][]byte{ConfigSeed, stakeAsset.Bytes()}
}

func (d *Deriver) VaultSeeds(config, rewardAsset common.Address) [][]byte {
	return [][]byte{VaultSeed, config.Bytes(), rewardAsset.Bytes()}
}

func (d *Deriver) PositionSeeds(vault, staker common.Address) [][]byte {
	return [][]byte{PositionSeed, vault.Bytes(), staker.Bytes()}
}

// ConfigAddress is the identity of the config for a stake asset.
func (d *Deriver) ConfigAddress(stakeAsset common.Address) common.Address {
	return Derive(d.program, d.ConfigSeeds(stakeAsset)...)
}

// VaultAddress is the identity of the vault for a (config, reward asset) pair.
// The vault's custodial accounts are held under this address.
func (d *Deriver) VaultAddress(config, rewardAsset common.Address) common.Address {
	return Derive(d.program, d.VaultSeeds(config, rewardAsset)...)
}

// PositionAddress is the identity of the position of staker in vault.
func (d *Deriver) PositionAddress(vault, staker common.Address) common.Address {
	return Derive(d.program, d.PositionSeeds(vault, staker)...)
}

// VaultCapability returns the capability to act for the vault identity.
func (d *Deriver) VaultCapability(config, rewardAsset common.Address) Capability {
	return Capability{program: d.program, seeds: d.VaultSeeds(config, rewardAsset)}
}
