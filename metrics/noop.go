// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import "net/http"

// noopMetrics hands out meters discarding every measurement.
type noopMetrics struct{}

func defaultNoopMetrics() Metrics { return &noopMetrics{} }

var discard = discardMeter{}

func (*noopMetrics) GetOrCreateCountMeter(string) CountMeter                  { return discard }
func (*noopMetrics) GetOrCreateCountVecMeter(string, []string) CountVecMeter  { return discard }
func (*noopMetrics) GetOrCreateGaugeMeter(string) GaugeMeter                  { return discard }
func (*noopMetrics) GetOrCreateHistogramMeter(string, []int64) HistogramMeter { return discard }
func (*noopMetrics) GetOrCreateHistogramVecMeter(string, []string, []int64) HistogramVecMeter {
	return discard
}

// GetOrCreateHandler answers 404, there is nothing to expose.
func (*noopMetrics) GetOrCreateHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "metrics disabled", http.StatusNotFound)
	})
}

type discardMeter struct{}

func (discardMeter) Add(int64)                                  {}
func (discardMeter) Set(int64)                                  {}
func (discardMeter) Observe(int64)                              {}
func (discardMeter) AddWithLabel(int64, map[string]string)      {}
func (discardMeter) ObserveWithLabels(int64, map[string]string) {}
