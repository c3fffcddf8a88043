// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/vechain/fungstake/builtin/reverts"
)

var (
	ErrNoTokens = reverts.New(reverts.Validation, "NoTokens", "no tokens to stake")

	ErrNotStaked       = reverts.New(reverts.State, "NotStaked", "tokens not staked")
	ErrVaultEnded      = reverts.New(reverts.State, "VaultEnded", "vault has ended")
	ErrVaultNotStarted = reverts.New(reverts.State, "VaultNotStarted", "vault has not reached soft cap")
	ErrAlreadyClaimed  = reverts.New(reverts.State, "AlreadyClaimed", "reward already claimed")
	ErrConfigExists    = reverts.New(reverts.State, "ConfigExists", "config already initialized")
	ErrConfigNotFound  = reverts.New(reverts.State, "ConfigNotFound", "config not found")
	ErrVaultExists     = reverts.New(reverts.State, "VaultExists", "vault already exists")
	ErrVaultNotFound   = reverts.New(reverts.State, "VaultNotFound", "vault not found")

	ErrUnbondingTimeNotOverYet = reverts.New(reverts.Timing, "UnbondingTimeNotOverYet", "unbonding time not over yet")
	ErrTgeNotYetReached        = reverts.New(reverts.Timing, "TgeNotYetReached", "tge not yet reached")

	ErrOverflow     = reverts.New(reverts.Arithmetic, "Overflow", "arithmetic overflow")
	ErrDivideByZero = reverts.New(reverts.Arithmetic, "DivideByZero", "divide by zero")

	ErrIncorrectAuthority = reverts.New(reverts.Authorization, "IncorrectAuthority", "signer is not the config authority")
)
