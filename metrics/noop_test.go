// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoopMetrics(t *testing.T) {
	metrics = defaultNoopMetrics()
	require.True(t, NoOp())

	server := httptest.NewServer(HTTPHandler())
	t.Cleanup(server.Close)

	Counter("ops").Add(1)
	CounterVec("ops_count", []string{"op", "status"}).AddWithLabel(1, map[string]string{"op": "stake", "unknown": "label"})
	Histogram("op_duration_ms", nil).Observe(1)
	HistogramVec("op_slots_written", []string{"op"}, nil).ObserveWithLabels(1, map[string]string{"unknown": "label"})
	Gauge("state_cache_hit").Set(1)

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
