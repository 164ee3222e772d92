// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"github.com/vechain/nftstake/builtin/staker/account"
	"github.com/vechain/nftstake/thor"
)

// StakeAccount is a stake account with its address.
type StakeAccount struct {
	Address thor.Address `json:"address"`
	*account.StakeAccount
}

// Pending previews the reward a settlement at Time would mint.
type Pending struct {
	Account thor.Address `json:"account"`
	Time    uint64       `json:"time"`
	Reward  uint64       `json:"reward"`
}
