// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package account

import (
	"github.com/vechain/nftstake/thor"
)

// StakeAccount counts the assets one owner staked into one pool.
type StakeAccount struct {
	Owner          thor.Address `json:"owner"`
	Pool           thor.Address `json:"pool"`
	NumStaked      uint16       `json:"numStaked"`
	LastCheckpoint uint64       `json:"lastCheckpoint"`
	Nonce          uint8        `json:"nonce"`
}

// IsActive reports whether at least one asset is staked.
func (a *StakeAccount) IsActive() bool {
	return a.NumStaked > 0
}
