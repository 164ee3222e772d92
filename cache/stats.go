// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import "sync/atomic"

// Snapshot hit and miss counts at one point in time.
type Snapshot struct {
	Hit  int64
	Miss int64
}

// HitRate in per mille, 0 when nothing was looked up.
func (s Snapshot) HitRate() int64 {
	if total := s.Hit + s.Miss; total > 0 {
		return s.Hit * 1000 / total
	}
	return 0
}

// Stats counts lookups of a cache.
type Stats struct {
	hit, miss atomic.Int64
	lastRate  atomic.Int64
}

func (cs *Stats) Hit() int64  { return cs.hit.Add(1) }
func (cs *Stats) Miss() int64 { return cs.miss.Add(1) }

// Report returns the current counts and whether the hit rate moved since the
// previous report, so callers only log when something changed.
func (cs *Stats) Report() (bool, Snapshot) {
	snap := Snapshot{Hit: cs.hit.Load(), Miss: cs.miss.Load()}
	rate := snap.HitRate()
	return cs.lastRate.Swap(rate) != rate, snap
}
