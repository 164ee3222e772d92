// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/nftstake/api/accounts"
	"github.com/vechain/nftstake/api/utils"
	"github.com/vechain/nftstake/processor"
)

type Pools struct {
	proc *processor.Processor
}

func New(proc *processor.Processor) *Pools {
	return &Pools{proc}
}

func (p *Pools) handleGetPool(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}

	var out *Pool
	if err := p.proc.View(func(progs *processor.Programs) error {
		pl, err := progs.Staker.GetPool(addr)
		if err != nil {
			return err
		}
		if pl == nil {
			return utils.NotFound(errors.New("pool not found"))
		}
		authority, _, err := progs.Staker.PoolAuthority(addr)
		if err != nil {
			return err
		}
		out = &Pool{Address: addr, Authority: authority, Pool: pl}
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, out)
}

func (p *Pools) handleGetStakeAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	owner, err := utils.AddressVar(req, "owner")
	if err != nil {
		return err
	}

	var acct *accounts.StakeAccount
	if err := p.proc.View(func(progs *processor.Programs) error {
		stakeAccount, _, err := progs.Staker.StakeAccountAddress(addr, owner)
		if err != nil {
			return err
		}
		acct, err = accounts.Lookup(progs, stakeAccount)
		return err
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, acct)
}

func (p *Pools) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").Methods(http.MethodGet).Name("GET /pools/{address}").HandlerFunc(utils.WrapHandlerFunc(p.handleGetPool))
	sub.Path("/{address}/accounts/{owner}").Methods(http.MethodGet).Name("GET /pools/{address}/accounts/{owner}").HandlerFunc(utils.WrapHandlerFunc(p.handleGetStakeAccount))
}
