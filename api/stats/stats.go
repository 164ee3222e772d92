// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stats

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vechain/nftstake/api/utils"
	"github.com/vechain/nftstake/builtin/staker/globalstats"
	"github.com/vechain/nftstake/processor"
)

type Stats struct {
	proc *processor.Processor
}

func New(proc *processor.Processor) *Stats {
	return &Stats{proc}
}

func (s *Stats) handleGetTotals(w http.ResponseWriter, _ *http.Request) error {
	var totals *globalstats.Totals
	if err := s.proc.View(func(p *processor.Programs) error {
		var err error
		totals, err = p.Staker.Totals()
		return err
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, totals)
}

func (s *Stats) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").Methods(http.MethodGet).Name("GET /stats").HandlerFunc(utils.WrapHandlerFunc(s.handleGetTotals))
}
