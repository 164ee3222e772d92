// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package globalstats

import (
	"github.com/vechain/nftstake/builtin/reverts"
	"github.com/vechain/nftstake/builtin/solidity"
	"github.com/vechain/nftstake/thor"
)

var ErrTotalOverflow = reverts.New(reverts.Arithmetic, "global total overflow")

var (
	slotPools   = thor.BytesToBytes32([]byte("total-pools"))
	slotStaked  = thor.BytesToBytes32([]byte("total-staked"))
	slotRewards = thor.BytesToBytes32([]byte("total-rewards"))
)

// Totals are program-wide figures.
type Totals struct {
	Pools   uint64 `json:"pools"`
	Staked  uint64 `json:"staked"`
	Rewards uint64 `json:"rewards"`
}

// Service manages program-wide totals across all pools.
type Service struct {
	pools   *solidity.Raw[uint64]
	staked  *solidity.Raw[uint64]
	rewards *solidity.Raw[uint64]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		pools:   solidity.NewRaw[uint64](sctx, slotPools),
		staked:  solidity.NewRaw[uint64](sctx, slotStaked),
		rewards: solidity.NewRaw[uint64](sctx, slotRewards),
	}
}

func (s *Service) Totals() (*Totals, error) {
	pools, err := s.pools.Get()
	if err != nil {
		return nil, err
	}
	staked, err := s.staked.Get()
	if err != nil {
		return nil, err
	}
	rewards, err := s.rewards.Get()
	if err != nil {
		return nil, err
	}
	return &Totals{Pools: pools, Staked: staked, Rewards: rewards}, nil
}

func (s *Service) AddPool() error {
	return add(s.pools, 1)
}

func (s *Service) AddStaked() error {
	return add(s.staked, 1)
}

// RemoveStaked decrements the staked total, saturating at zero.
func (s *Service) RemoveStaked() error {
	v, err := s.staked.Get()
	if err != nil {
		return err
	}
	if v == 0 {
		return nil
	}
	return s.staked.Upsert(v - 1)
}

// AddRewards accumulates minted rewards. ErrTotalOverflow if the total no longer fits.
func (s *Service) AddRewards(amount uint64) error {
	return add(s.rewards, amount)
}

func add(r *solidity.Raw[uint64], delta uint64) error {
	v, err := r.Get()
	if err != nil {
		return err
	}
	if v+delta < v {
		return ErrTotalOverflow
	}
	return r.Upsert(v + delta)
}
