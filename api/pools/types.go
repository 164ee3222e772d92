// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools

import (
	"github.com/vechain/nftstake/builtin/staker/pool"
	"github.com/vechain/nftstake/thor"
)

// Pool is a pool with its address and derived authority.
type Pool struct {
	Address   thor.Address `json:"address"`
	Authority thor.Address `json:"authority"`
	*pool.Pool
}
