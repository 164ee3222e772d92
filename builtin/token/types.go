// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"github.com/vechain/nftstake/builtin/reverts"
	"github.com/vechain/nftstake/derive"
	"github.com/vechain/nftstake/thor"
)

var (
	ErrMintNotFound     = reverts.New(reverts.Consistency, "mint not found")
	ErrMintExists       = reverts.New(reverts.Consistency, "mint already exists")
	ErrAccountNotFound  = reverts.New(reverts.Consistency, "token account not found")
	ErrAccountExists    = reverts.New(reverts.Consistency, "token account already exists")
	ErrMintMismatch     = reverts.New(reverts.Consistency, "token account mint mismatch")
	ErrInsufficientFund = reverts.New(reverts.Consistency, "insufficient funds")
	ErrOverflow         = reverts.New(reverts.Arithmetic, "token amount overflow")
	ErrOwnerMismatch    = reverts.New(reverts.Authorization, "owner does not match")
	ErrMissingSigner    = reverts.New(reverts.Authorization, "missing required signature")
	ErrInvalidProof     = reverts.New(reverts.Authorization, "invalid derived authority")
	ErrAccountAddress   = reverts.New(reverts.Authorization, "token account address must sign or be associated")
)

// Mint describes a fungible or non-fungible token.
type Mint struct {
	MintAuthority thor.Address `json:"mintAuthority"`
	Supply        uint64       `json:"supply"`
	Decimals      uint8        `json:"decimals"`
}

// Account is a balance slot of one mint held by an owner.
type Account struct {
	Mint   thor.Address `json:"mint"`
	Owner  thor.Address `json:"owner"`
	Amount uint64       `json:"amount"`
}

// Authority authorizes an instruction, either by a transaction signer or
// by a program presenting the derivation of its key-less address.
type Authority struct {
	Signer thor.Address
	Proof  *derive.Proof
}

// SignerAuthority authorizes with a transaction signer.
func SignerAuthority(signer thor.Address) Authority {
	return Authority{Signer: signer}
}

// ProofAuthority authorizes with a derived address.
func ProofAuthority(proof *derive.Proof) Authority {
	return Authority{Proof: proof}
}

// Address returns the identity the authority acts as.
func (a Authority) Address() thor.Address {
	if a.Proof != nil {
		return a.Proof.Address
	}
	return a.Signer
}
