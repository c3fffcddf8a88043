// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package executor

import (
	"time"

	"github.com/vechain/fungstake/metrics"
)

var (
	metricOpsCount     = metrics.LazyLoadCounterVec("ops_count", []string{"op", "status"})
	metricOpDuration   = metrics.LazyLoadHistogramVec("op_duration_ms", []string{"op"}, metrics.BucketOpDuration)
	metricSlotsWritten = metrics.LazyLoadHistogramVec("op_slots_written", []string{"op"}, metrics.BucketSlots)
	metricCacheHit     = metrics.LazyLoadGauge("state_cache_hit")
	metricCacheMiss    = metrics.LazyLoadGauge("state_cache_miss")
)

func observe(op, status string, start time.Time, slotsWritten *uint64) {
	metricOpsCount().AddWithLabel(1, map[string]string{"op": op, "status": status})
	metricOpDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"op": op})
	if slotsWritten != nil {
		metricSlotsWritten().ObserveWithLabels(int64(*slotsWritten), map[string]string{"op": op})
	}
}

func observeCache(hit, miss int64) {
	metricCacheHit().Set(hit)
	metricCacheMiss().Set(miss)
}
