// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopMetrics(t *testing.T) {
	noop := defaultNoopMetrics()
	assert.Nil(t, noop.GetOrCreateHandler())

	// none of these may panic
	noop.GetOrCreateCountMeter("c").Add(1)
	noop.GetOrCreateCountVecMeter("cv", []string{"op"}).AddWithLabel(1, map[string]string{"op": "x"})
	noop.GetOrCreateGaugeVecMeter("gv", nil).SetWithLabel(3, nil)
	noop.GetOrCreateHistogramVecMeter("hv", nil, nil).ObserveWithLabels(2, nil)
}

func TestPromMetrics(t *testing.T) {
	InitializePrometheusMetrics()

	count := LazyLoadCounter("test_count")
	count().Add(2)
	Counter("test_count").Add(3)

	ops := LazyLoadCounterVec("test_ops", []string{"op"})
	ops().AddWithLabel(1, map[string]string{"op": "stake"})
	ops().AddWithLabel(1, map[string]string{"op": "stake"})
	ops().AddWithLabel(1, map[string]string{"op": "claim"})

	staked := LazyLoadGaugeVec("test_staked", []string{"pool"})
	staked().SetWithLabel(7, map[string]string{"pool": "a"})
	staked().AddWithLabel(-2, map[string]string{"pool": "a"})

	exec := LazyLoadHistogramVec("test_exec", []string{"op"}, BucketExecution)
	exec().ObserveWithLabels(30, map[string]string{"op": "stake"})

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	byName := make(map[string]*dto.MetricFamily)
	for _, mf := range families {
		byName[mf.GetName()] = mf
	}

	require.Contains(t, byName, "nftstake_test_count")
	assert.Equal(t, float64(5), byName["nftstake_test_count"].Metric[0].GetCounter().GetValue())

	var total float64
	for _, m := range byName["nftstake_test_ops"].Metric {
		total += m.GetCounter().GetValue()
	}
	assert.Equal(t, float64(3), total)
	assert.Equal(t, float64(5), byName["nftstake_test_staked"].Metric[0].GetGauge().GetValue())
	assert.Equal(t, uint64(1), byName["nftstake_test_exec"].Metric[0].GetHistogram().GetSampleCount())

	server := httptest.NewServer(HTTPHandler())
	defer server.Close()
	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
