// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package config

import (
	"github.com/vechain/fungstake/common"
)

// Version of the config record layout.
const Version = 1

type body struct {
	Authority      common.Address // the only identity allowed to create vaults under this config
	StakeAsset     common.Address
	LockPeriod     uint64 // seconds a stake stays locked
	LockExtendTime uint64 // seconds the vault stays locked once the soft cap is reached
	SoftCap        uint64
	Version        uint8
}

// Config is the immutable staking policy of one stake asset.
type Config struct {
	body *body
}

func New(authority, stakeAsset common.Address, lockPeriod, lockExtendTime, softCap uint64) *Config {
	return &Config{
		body: &body{
			Authority:      authority,
			StakeAsset:     stakeAsset,
			LockPeriod:     lockPeriod,
			LockExtendTime: lockExtendTime,
			SoftCap:        softCap,
			Version:        Version,
		},
	}
}

func (c *Config) Authority() common.Address  { return c.body.Authority }
func (c *Config) StakeAsset() common.Address { return c.body.StakeAsset }
func (c *Config) LockPeriod() uint64         { return c.body.LockPeriod }
func (c *Config) LockExtendTime() uint64     { return c.body.LockExtendTime }
func (c *Config) SoftCap() uint64            { return c.body.SoftCap }
func (c *Config) Version() uint8             { return c.body.Version }
