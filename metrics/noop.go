// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import "net/http"

type noopMetrics struct{}

func defaultNoopMetrics() Metrics { return noopMetrics{} }

func (noopMetrics) GetOrCreateCountMeter(string) CountMeter                { return discard{} }
func (noopMetrics) GetOrCreateCountVecMeter(string, []string) CountVecMeter { return discard{} }
func (noopMetrics) GetOrCreateGaugeVecMeter(string, []string) GaugeVecMeter { return discard{} }
func (noopMetrics) GetOrCreateHistogramVecMeter(string, []string, []int64) HistogramVecMeter {
	return discard{}
}
func (noopMetrics) GetOrCreateHandler() http.Handler { return nil }

// discard drops every observation.
type discard struct{}

func (discard) Add(int64)                                  {}
func (discard) AddWithLabel(int64, map[string]string)      {}
func (discard) SetWithLabel(int64, map[string]string)      {}
func (discard) ObserveWithLabels(int64, map[string]string) {}
