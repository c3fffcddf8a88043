// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"strings"

	"github.com/vechain/fungstake/metrics"
)

var (
	metricCriteriaLengthBucket = metrics.LazyLoadHistogramVec("logdb_criteria_length_bucket", []string{"type"}, []int64{0, 1, 2, 5, 10, 25})
	metricQueryParameters      = metrics.LazyLoadCounterVec("logdb_query_parameters", []string{"type", "parameters"})
	metricQueryOrderCounter    = metrics.LazyLoadCounterVec("logdb_query_order", []string{"type", "order"})
	metricLimitBucket          = metrics.LazyLoadHistogramVec("logdb_query_limit_bucket", []string{"type"}, []int64{
		0, 5, 10, 25, 50, 100, 250, 500, 1000,
	})
)

func metricsHandleEventsFilter(filter *EventFilter) {
	if metrics.NoOp() {
		return
	}
	metricsHandleCommon(filter.Options, filter.Order, len(filter.CriteriaSet), "event")

	for _, c := range filter.CriteriaSet {
		params := make([]string, 0, 3)
		if c.Vault != nil {
			params = append(params, "vault")
		}
		if c.Account != nil {
			params = append(params, "account")
		}
		if c.Type != "" {
			params = append(params, "type")
		}
		metricQueryParameters().AddWithLabel(1, map[string]string{"type": "event", "parameters": strings.Join(params, ",")})
	}
}

func metricsHandleTransfersFilter(filter *TransferFilter) {
	if metrics.NoOp() {
		return
	}
	metricsHandleCommon(filter.Options, filter.Order, len(filter.CriteriaSet), "transfer")

	for _, c := range filter.CriteriaSet {
		params := make([]string, 0, 3)
		if c.Asset != nil {
			params = append(params, "asset")
		}
		if c.Sender != nil {
			params = append(params, "sender")
		}
		if c.Recipient != nil {
			params = append(params, "recipient")
		}
		metricQueryParameters().AddWithLabel(1, map[string]string{"type": "transfer", "parameters": strings.Join(params, ",")})
	}
}

func metricsHandleCommon(options *Options, order Order, criteriaLen int, queryType string) {
	metricCriteriaLengthBucket().ObserveWithLabels(int64(criteriaLen), map[string]string{"type": queryType})

	if order == DESC {
		metricQueryOrderCounter().AddWithLabel(1, map[string]string{"type": queryType, "order": "desc"})
	} else {
		metricQueryOrderCounter().AddWithLabel(1, map[string]string{"type": queryType, "order": "asc"})
	}

	if options != nil {
		limit := min(options.Limit, 1001)
		metricLimitBucket().ObserveWithLabels(int64(limit), map[string]string{"type": queryType})
	}
}
