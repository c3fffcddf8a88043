// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/vechain/fungstake/common"
)

// EventType names what a committed operation did.
type EventType string

const (
	EventConfigInitialized   EventType = "ConfigInitialized"
	EventVaultCreated        EventType = "VaultCreated"
	EventStaked              EventType = "Staked"
	EventSoftCapReached      EventType = "SoftCapReached"
	EventDestaked            EventType = "Destaked"
	EventDistributionStarted EventType = "DistributionStarted"
	EventRewardClaimed       EventType = "RewardClaimed"
)

// Event is emitted by a successful operation.
// Amount carries the staked, unstaked or paid amount, the reward pool for
// DistributionStarted, and the lock-extension deadline for SoftCapReached.
type Event struct {
	Type    EventType
	Config  common.Address
	Vault   common.Address
	Account common.Address
	Amount  uint64
}
