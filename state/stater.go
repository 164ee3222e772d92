// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/vechain/nftstake/cache"
	"github.com/vechain/nftstake/kv"
)

const defaultCacheSize = 4096

// Stater is the state creator.
type Stater struct {
	store kv.Store
	cache *cache.LRU
}

// NewStater create a new stater.
func NewStater(store kv.Store) *Stater {
	c, _ := cache.NewLRU(defaultCacheSize)
	return &Stater{store, c}
}

// NewState create a new state object.
func (s *Stater) NewState() *State {
	return newState(s.store, s.cache)
}

// CacheStats returns the read cache stats.
func (s *Stater) CacheStats() *cache.Stats {
	return s.cache.Stats()
}
