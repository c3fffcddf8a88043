// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token is the asset ledger holding fungible balances per (asset, holder).
package token

import (
	"github.com/pkg/errors"

	"github.com/vechain/fungstake/builtin/keys"
	"github.com/vechain/fungstake/builtin/storage"
	"github.com/vechain/fungstake/common"
	"github.com/vechain/fungstake/log"
	"github.com/vechain/fungstake/state"
)

var logger = log.WithContext("pkg", "token")

// Address owns the ledger storage.
var Address = common.BytesToAddress([]byte("Ledger"))

var (
	ErrUnauthorized        = errors.New("transfer not authorized by owner")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrBalanceOverflow     = errors.New("balance overflow")

	slotBalances = common.BytesToBytes32([]byte("balances"))
	slotSupply   = common.BytesToBytes32([]byte("supply"))
)

// Transfer records a completed movement of funds. A mint has a zero From.
type Transfer struct {
	Asset  common.Address
	From   common.Address
	To     common.Address
	Amount uint64
}

// Ledger moves balances of fungible assets between holders.
type Ledger struct {
	context   *storage.Context
	balances  *storage.Mapping[common.Bytes32, uint64]
	supply    *storage.Mapping[common.Address, uint64]
	transfers []Transfer
}

func New(addr common.Address, state *state.State) *Ledger {
	ctx := storage.NewContext(addr, state)
	return &Ledger{
		context:  ctx,
		balances: storage.NewMapping[common.Bytes32, uint64](ctx, slotBalances),
		supply:   storage.NewMapping[common.Address, uint64](ctx, slotSupply),
	}
}

func accountKey(asset, holder common.Address) common.Bytes32 {
	return common.Blake2b(asset.Bytes(), holder.Bytes())
}

// BalanceOf returns the balance of holder in asset.
func (l *Ledger) BalanceOf(asset, holder common.Address) (uint64, error) {
	return l.balances.Get(accountKey(asset, holder))
}

// TotalSupply returns the amount of asset ever minted.
func (l *Ledger) TotalSupply(asset common.Address) (uint64, error) {
	return l.supply.Get(asset)
}

// Transfer moves amount of asset from one holder to another.
// auth must authorize the sender. Nothing is written if any check fails.
func (l *Ledger) Transfer(asset, from, to common.Address, auth keys.Authority, amount uint64) error {
	if auth == nil || !auth.Authorizes(from) {
		return errors.Wrapf(ErrUnauthorized, "from %v", from)
	}
	if amount == 0 || from == to {
		return nil
	}

	fromBal, err := l.BalanceOf(asset, from)
	if err != nil {
		return err
	}
	if fromBal < amount {
		return errors.Wrapf(ErrInsufficientBalance, "holder %v has %d, needs %d", from, fromBal, amount)
	}
	toBal, err := l.BalanceOf(asset, to)
	if err != nil {
		return err
	}
	if toBal+amount < toBal {
		return errors.Wrapf(ErrBalanceOverflow, "holder %v", to)
	}

	if err := l.balances.Set(accountKey(asset, from), fromBal-amount); err != nil {
		return err
	}
	if err := l.balances.Set(accountKey(asset, to), toBal+amount); err != nil {
		return err
	}
	l.transfers = append(l.transfers, Transfer{Asset: asset, From: from, To: to, Amount: amount})
	logger.Debug("transfer", "asset", asset, "from", from, "to", to, "amount", amount)
	return nil
}

// Mint credits amount of asset to holder, e.g. funding a reward pool.
func (l *Ledger) Mint(asset, to common.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	supply, err := l.TotalSupply(asset)
	if err != nil {
		return err
	}
	bal, err := l.BalanceOf(asset, to)
	if err != nil {
		return err
	}
	if supply+amount < supply || bal+amount < bal {
		return errors.Wrapf(ErrBalanceOverflow, "mint %d to %v", amount, to)
	}
	if err := l.supply.Set(asset, supply+amount); err != nil {
		return err
	}
	if err := l.balances.Set(accountKey(asset, to), bal+amount); err != nil {
		return err
	}
	l.transfers = append(l.transfers, Transfer{Asset: asset, To: to, Amount: amount})
	logger.Debug("mint", "asset", asset, "to", to, "amount", amount)
	return nil
}

// Transfers returns the movements made through this ledger instance.
func (l *Ledger) Transfers() []Transfer {
	return l.transfers
}

// Usage returns the storage slots touched through this ledger instance.
func (l *Ledger) Usage() storage.Usage {
	return l.context.Usage()
}
