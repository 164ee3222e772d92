// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package derive

import (
	"github.com/vechain/nftstake/cache"
	"github.com/vechain/nftstake/thor"
)

type derived struct {
	addr  thor.Address
	nonce uint8
}

type cachedDeriver struct {
	Deriver
	cache *cache.LRU
}

// NewCached wraps d, memoising Derive results of the most recent seeds.
func NewCached(d Deriver, size int) (Deriver, error) {
	c, err := cache.NewLRU(size)
	if err != nil {
		return nil, err
	}
	return &cachedDeriver{d, c}, nil
}

func (c *cachedDeriver) Derive(seeds ...[]byte) (thor.Address, uint8, error) {
	if err := checkSeeds(seeds); err != nil {
		return thor.Address{}, 0, err
	}
	v, err := c.cache.GetOrLoad(cacheKey(seeds), func(any) (any, error) {
		addr, nonce, err := c.Deriver.Derive(seeds...)
		if err != nil {
			return nil, err
		}
		return derived{addr, nonce}, nil
	})
	if err != nil {
		return thor.Address{}, 0, err
	}
	d := v.(derived)
	return d.addr, d.nonce, nil
}

// cacheKey joins length prefixed seeds, so ["ab","c"] and ["a","bc"] differ.
func cacheKey(seeds [][]byte) string {
	var b []byte
	for _, s := range seeds {
		b = append(b, byte(len(s)))
		b = append(b, s...)
	}
	return string(b)
}
