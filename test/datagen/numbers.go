// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"math"
	mathrand "math/rand/v2"
)

func RandInt() int {
	return mathrand.Int() //#nosec G404
}

func RandIntN(n int) int {
	return mathrand.N(n) //#nosec G404
}

// RandUint64Range returns a value in [lo, hi].
func RandUint64Range(lo, hi uint64) uint64 {
	if hi <= lo {
		return lo
	}
	if lo == 0 && hi == math.MaxUint64 {
		return mathrand.Uint64() //#nosec G404
	}
	return lo + mathrand.Uint64N(hi-lo+1) //#nosec G404
}
