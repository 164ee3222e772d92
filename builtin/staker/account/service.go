// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package account

import (
	"github.com/pkg/errors"

	"github.com/vechain/nftstake/builtin/solidity"
	"github.com/vechain/nftstake/thor"
)

var slotAccounts = thor.BytesToBytes32([]byte("stake-accounts"))

type Service struct {
	accounts *solidity.Mapping[thor.Address, StakeAccount]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		accounts: solidity.NewMapping[thor.Address, StakeAccount](sctx, slotAccounts),
	}
}

// GetAccount returns the stake account stored at addr, nil if there is none.
func (s *Service) GetAccount(addr thor.Address) (*StakeAccount, error) {
	exists, err := s.accounts.Exists(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get stake account")
	}
	if !exists {
		return nil, nil
	}
	a, err := s.accounts.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get stake account")
	}
	return &a, nil
}

func (s *Service) SetAccount(addr thor.Address, a *StakeAccount) error {
	if err := s.accounts.Set(addr, *a); err != nil {
		return errors.Wrap(err, "failed to set stake account")
	}
	return nil
}
