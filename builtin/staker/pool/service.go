// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/pkg/errors"

	"github.com/vechain/nftstake/builtin/solidity"
	"github.com/vechain/nftstake/thor"
)

var slotPools = thor.BytesToBytes32([]byte("pools"))

type Service struct {
	pools *solidity.Mapping[thor.Address, Pool]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		pools: solidity.NewMapping[thor.Address, Pool](sctx, slotPools),
	}
}

// GetPool returns the pool stored at addr, nil if there is none.
func (s *Service) GetPool(addr thor.Address) (*Pool, error) {
	exists, err := s.pools.Exists(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get pool")
	}
	if !exists {
		return nil, nil
	}
	p, err := s.pools.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get pool")
	}
	return &p, nil
}

func (s *Service) SetPool(addr thor.Address, p *Pool) error {
	if err := s.pools.Set(addr, *p); err != nil {
		return errors.Wrap(err, "failed to set pool")
	}
	return nil
}
