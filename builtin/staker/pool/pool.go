// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"fmt"

	"github.com/vechain/nftstake/eligibility"
	"github.com/vechain/nftstake/thor"
)

// CustodyMode selects how a staked asset is held.
type CustodyMode uint8

const (
	// CustodyVault transfers the asset into a vault slot owned by the stake account.
	CustodyVault CustodyMode = iota + 1
	// CustodyAuthority leaves the asset in the owner's slot and reassigns the slot to the stake account.
	CustodyAuthority
)

func (m CustodyMode) String() string {
	switch m {
	case CustodyVault:
		return "vault"
	case CustodyAuthority:
		return "authority"
	}
	return fmt.Sprintf("custody(%d)", uint8(m))
}

// Valid reports whether m is a known mode.
func (m CustodyMode) Valid() bool {
	return m == CustodyVault || m == CustodyAuthority
}

// ParseCustodyMode parses the string form of a custody mode.
func ParseCustodyMode(s string) (CustodyMode, error) {
	switch s {
	case "vault":
		return CustodyVault, nil
	case "authority":
		return CustodyAuthority, nil
	}
	return 0, fmt.Errorf("unknown custody mode %q", s)
}

func (m CustodyMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *CustodyMode) UnmarshalText(text []byte) error {
	parsed, err := ParseCustodyMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Pool is a reward pool. Its address derives from the pool name.
type Pool struct {
	Name           string              `json:"name"`
	Admin          thor.Address        `json:"admin"`
	RewardMint     thor.Address        `json:"rewardMint"`
	AuthorityNonce uint8               `json:"authorityNonce"`
	RewardRate     uint64              `json:"rewardRate"`
	Policy         *eligibility.Policy `json:"policy" rlp:"nil"`
	TotalStaked    uint32              `json:"totalStaked"`
	Custody        CustodyMode         `json:"custody"`
	Nonce          uint8               `json:"nonce"`
}
