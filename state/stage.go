// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"io"
	"sort"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/nftstake/cache"
	"github.com/vechain/nftstake/kv"
	"github.com/vechain/nftstake/thor"
)

// Stage abstracts changes on the program storage.
type Stage struct {
	store kv.Store
	cache *cache.LRU
	keys  []storageKey
	vals  map[storageKey]rlp.RawValue
}

func newStage(store kv.Store, c *cache.LRU, changes map[storageKey]rlp.RawValue) *Stage {
	keys := make([]storageKey, 0, len(changes))
	for k := range changes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i].bytes(), keys[j].bytes()) < 0
	})
	return &Stage{store: store, cache: c, keys: keys, vals: changes}
}

// Len returns the count of changed records.
func (s *Stage) Len() int {
	return len(s.keys)
}

// Hash computes digest over the ordered changes.
func (s *Stage) Hash() thor.Bytes32 {
	return thor.Blake2bFn(func(w io.Writer) {
		for _, k := range s.keys {
			w.Write(k.bytes())
			w.Write(s.vals[k])
		}
	})
}

// Commit writes all changes into the kv store in one bulk.
func (s *Stage) Commit() (thor.Bytes32, error) {
	bulk := s.store.Bulk()
	putter := storageBucket.NewPutter(bulk)
	for _, k := range s.keys {
		v := s.vals[k]
		var err error
		if len(v) == 0 {
			err = putter.Delete(k.bytes())
		} else {
			err = putter.Put(k.bytes(), v)
		}
		if err != nil {
			return thor.Bytes32{}, &Error{err}
		}
	}
	if err := bulk.Write(); err != nil {
		return thor.Bytes32{}, &Error{err}
	}
	for _, k := range s.keys {
		s.cache.Add(k, s.vals[k])
	}
	metricRecordsCommitted().Add(int64(len(s.keys)))
	return s.Hash(), nil
}
