// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/nftstake/api/utils"
	"github.com/vechain/nftstake/builtin/staker"
	"github.com/vechain/nftstake/processor"
	"github.com/vechain/nftstake/thor"
)

type Accounts struct {
	proc  *processor.Processor
	clock processor.Clock
}

func New(proc *processor.Processor, clock processor.Clock) *Accounts {
	if clock == nil {
		clock = processor.SystemClock
	}
	return &Accounts{proc, clock}
}

// Lookup returns the stake account at addr, a 404 error if it does not exist.
func Lookup(p *processor.Programs, addr thor.Address) (*StakeAccount, error) {
	acct, err := p.Staker.GetStakeAccount(addr)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, utils.NotFound(errors.New("stake account not found"))
	}
	return &StakeAccount{Address: addr, StakeAccount: acct}, nil
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	var acct *StakeAccount
	if err := a.proc.View(func(p *processor.Programs) error {
		acct, err = Lookup(p, addr)
		return err
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, acct)
}

func (a *Accounts) handleGetPending(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	now, err := utils.Uint64Query(req, "time", a.clock())
	if err != nil {
		return err
	}

	var reward uint64
	if err := a.proc.View(func(p *processor.Programs) error {
		reward, err = p.Staker.PendingReward(addr, now)
		return err
	}); err != nil {
		if errors.Is(err, staker.ErrStakeAccountNotFound) || errors.Is(err, staker.ErrPoolNotFound) {
			return utils.NotFound(err)
		}
		return err
	}
	return utils.WriteJSON(w, &Pending{Account: addr, Time: now, Reward: reward})
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").Methods(http.MethodGet).Name("GET /accounts/{address}").HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))
	sub.Path("/{address}/pending").Methods(http.MethodGet).Name("GET /accounts/{address}/pending").HandlerFunc(utils.WrapHandlerFunc(a.handleGetPending))
}
