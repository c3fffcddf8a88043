// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"github.com/vechain/fungstake/common"
)

// Event is a staking event as persisted.
type Event struct {
	OpID    string
	Index   uint32
	Time    uint64
	Type    string
	Config  common.Address
	Vault   common.Address
	Account common.Address
	Amount  uint64
}

// Transfer is a ledger movement as persisted. A mint has a zero Sender.
type Transfer struct {
	OpID      string
	Index     uint32
	Time      uint64
	Asset     common.Address
	Sender    common.Address
	Recipient common.Address
	Amount    uint64
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range bounds the time of rows, both ends included. To < From means unbounded.
type Range struct {
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

type EventCriteria struct {
	Vault   *common.Address
	Account *common.Address
	Type    string
}

// EventFilter selects events matching any of the criteria.
type EventFilter struct {
	CriteriaSet []*EventCriteria
	Range       *Range
	Options     *Options
	Order       Order // default asc
}

type TransferCriteria struct {
	Asset     *common.Address
	Sender    *common.Address
	Recipient *common.Address
}

// TransferFilter selects transfers matching any of the criteria.
type TransferFilter struct {
	OpID        string
	CriteriaSet []*TransferCriteria
	Range       *Range
	Options     *Options
	Order       Order // default asc
}
