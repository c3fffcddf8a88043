// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/holiman/uint256"
)

// ComputeReward returns floor(snapshot * totalReward / totalStaked).
// The product is computed in 256 bits and the result must fit 64 bits.
func ComputeReward(snapshot, totalStaked, totalReward uint64) (uint64, error) {
	if totalStaked == 0 {
		return 0, ErrDivideByZero
	}
	earned, overflow := new(uint256.Int).MulDivOverflow(
		uint256.NewInt(snapshot),
		uint256.NewInt(totalReward),
		uint256.NewInt(totalStaked),
	)
	if overflow || !earned.IsUint64() {
		return 0, ErrOverflow
	}
	return earned.Uint64(), nil
}
