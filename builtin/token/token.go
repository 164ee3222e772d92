// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements the custody ledger: mints and token account slots.
package token

import (
	"math"

	"github.com/pkg/errors"

	"github.com/vechain/nftstake/builtin/solidity"
	"github.com/vechain/nftstake/derive"
	"github.com/vechain/nftstake/log"
	"github.com/vechain/nftstake/state"
	"github.com/vechain/nftstake/thor"
	"github.com/vechain/nftstake/xenv"
)

var (
	logger = log.WithContext("pkg", "token")

	slotMints    = thor.BytesToBytes32([]byte("mints"))
	slotAccounts = thor.BytesToBytes32([]byte("accounts"))
)

// Ledger is the custody ledger used by programs.
type Ledger interface {
	MintTo(env *xenv.Environment, mint thor.Address, amount uint64, to thor.Address, auth Authority) error
	Transfer(env *xenv.Environment, mint thor.Address, amount uint64, from, to thor.Address, auth Authority) error
	SetAuthority(env *xenv.Environment, account thor.Address, current Authority, newOwner thor.Address) error
	InitAccount(env *xenv.Environment, addr, mint, owner thor.Address) error
	GetMint(mint thor.Address) (*Mint, error)
	GetAccount(addr thor.Address) (*Account, error)
	AssociatedAddress(wallet, mint thor.Address) (thor.Address, error)
}

// Token implements Ledger over program storage.
type Token struct {
	deriver  derive.Deriver
	programs []derive.Deriver

	mints    *solidity.Mapping[thor.Address, Mint]
	accounts *solidity.Mapping[thor.Address, Account]
}

var _ Ledger = (*Token)(nil)

// New creates the ledger bound to the token program address.
// Derived authorities are accepted when one of programs verifies them.
func New(addr thor.Address, state *state.State, programs ...derive.Deriver) *Token {
	return NewWithDeriver(derive.New(addr), state, programs...)
}

// NewWithDeriver is New with the deriver of associated addresses supplied,
// typically a cached one. The program address is the deriver's program id.
func NewWithDeriver(d derive.Deriver, state *state.State, programs ...derive.Deriver) *Token {
	sctx := solidity.NewContext(d.ProgramID(), state)
	return &Token{
		deriver:  d,
		programs: programs,
		mints:    solidity.NewMapping[thor.Address, Mint](sctx, slotMints),
		accounts: solidity.NewMapping[thor.Address, Account](sctx, slotAccounts),
	}
}

//
// Getters - no state change
//

// GetMint returns the mint, ErrMintNotFound if missing.
func (t *Token) GetMint(mint thor.Address) (*Mint, error) {
	exists, err := t.mints.Exists(mint)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get mint")
	}
	if !exists {
		return nil, ErrMintNotFound
	}
	m, err := t.mints.Get(mint)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get mint")
	}
	return &m, nil
}

// GetAccount returns the token account, ErrAccountNotFound if missing.
func (t *Token) GetAccount(addr thor.Address) (*Account, error) {
	exists, err := t.accounts.Exists(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get token account")
	}
	if !exists {
		return nil, ErrAccountNotFound
	}
	a, err := t.accounts.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get token account")
	}
	return &a, nil
}

// AssociatedAddress returns the canonical token account of wallet for mint.
func (t *Token) AssociatedAddress(wallet, mint thor.Address) (thor.Address, error) {
	programID := t.deriver.ProgramID()
	addr, _, err := t.deriver.Derive(wallet[:], programID[:], mint[:])
	return addr, err
}

//
// Setters - state change
//

// CreateMint registers a new mint. The mint address must sign.
func (t *Token) CreateMint(env *xenv.Environment, mint, mintAuthority thor.Address, decimals uint8) error {
	logger.Debug("creating mint", "mint", mint, "authority", mintAuthority, "decimals", decimals)

	if !env.IsSigner(mint) {
		return ErrMissingSigner
	}
	exists, err := t.mints.Exists(mint)
	if err != nil {
		return err
	}
	if exists {
		return ErrMintExists
	}
	return t.mints.Set(mint, Mint{MintAuthority: mintAuthority, Decimals: decimals})
}

// SetMintAuthority hands the mint authority over, authorized by the current one.
func (t *Token) SetMintAuthority(env *xenv.Environment, mint thor.Address, current Authority, newAuthority thor.Address) error {
	m, err := t.GetMint(mint)
	if err != nil {
		return err
	}
	if err := t.authorize(env, current, m.MintAuthority); err != nil {
		return err
	}
	m.MintAuthority = newAuthority
	return t.mints.Set(mint, *m)
}

// InitAccount creates an empty token account at addr.
// addr must either sign or be the associated address of owner for mint.
func (t *Token) InitAccount(env *xenv.Environment, addr, mint, owner thor.Address) error {
	logger.Debug("init token account", "addr", addr, "mint", mint, "owner", owner)

	if !env.IsSigner(addr) {
		associated, err := t.AssociatedAddress(owner, mint)
		if err != nil {
			return err
		}
		if associated != addr {
			return ErrAccountAddress
		}
	}
	if _, err := t.GetMint(mint); err != nil {
		return err
	}
	exists, err := t.accounts.Exists(addr)
	if err != nil {
		return err
	}
	if exists {
		return ErrAccountExists
	}
	return t.accounts.Set(addr, Account{Mint: mint, Owner: owner})
}

// CreateAssociatedAccount creates the associated token account of wallet for mint.
func (t *Token) CreateAssociatedAccount(env *xenv.Environment, wallet, mint thor.Address) (thor.Address, error) {
	addr, err := t.AssociatedAddress(wallet, mint)
	if err != nil {
		return thor.Address{}, err
	}
	if err := t.InitAccount(env, addr, mint, wallet); err != nil {
		return thor.Address{}, err
	}
	return addr, nil
}

// MintTo issues amount new tokens into account to, authorized by the mint authority.
func (t *Token) MintTo(env *xenv.Environment, mint thor.Address, amount uint64, to thor.Address, auth Authority) error {
	m, err := t.GetMint(mint)
	if err != nil {
		return err
	}
	if err := t.authorize(env, auth, m.MintAuthority); err != nil {
		return err
	}
	dest, err := t.GetAccount(to)
	if err != nil {
		return err
	}
	if dest.Mint != mint {
		return ErrMintMismatch
	}
	if m.Supply > math.MaxUint64-amount || dest.Amount > math.MaxUint64-amount {
		return ErrOverflow
	}

	m.Supply += amount
	dest.Amount += amount
	if err := t.mints.Set(mint, *m); err != nil {
		return err
	}
	logger.Debug("minted", "mint", mint, "to", to, "amount", amount)
	return t.accounts.Set(to, *dest)
}

// Transfer moves amount tokens between two accounts of mint, authorized by the owner of from.
func (t *Token) Transfer(env *xenv.Environment, mint thor.Address, amount uint64, from, to thor.Address, auth Authority) error {
	src, err := t.GetAccount(from)
	if err != nil {
		return err
	}
	dest, err := t.GetAccount(to)
	if err != nil {
		return err
	}
	if src.Mint != mint || dest.Mint != mint {
		return ErrMintMismatch
	}
	if err := t.authorize(env, auth, src.Owner); err != nil {
		return err
	}
	if src.Amount < amount {
		return ErrInsufficientFund
	}
	if from == to {
		return nil
	}
	if dest.Amount > math.MaxUint64-amount {
		return ErrOverflow
	}

	src.Amount -= amount
	dest.Amount += amount
	if err := t.accounts.Set(from, *src); err != nil {
		return err
	}
	logger.Debug("transferred", "mint", mint, "from", from, "to", to, "amount", amount)
	return t.accounts.Set(to, *dest)
}

// SetAuthority reassigns the owner of a token account, authorized by the current owner.
func (t *Token) SetAuthority(env *xenv.Environment, account thor.Address, current Authority, newOwner thor.Address) error {
	a, err := t.GetAccount(account)
	if err != nil {
		return err
	}
	if err := t.authorize(env, current, a.Owner); err != nil {
		return err
	}
	a.Owner = newOwner
	logger.Debug("owner changed", "account", account, "owner", newOwner)
	return t.accounts.Set(account, *a)
}

func (t *Token) authorize(env *xenv.Environment, auth Authority, want thor.Address) error {
	if auth.Address() != want {
		return ErrOwnerMismatch
	}
	if auth.Proof != nil {
		for _, d := range t.programs {
			if auth.Proof.Check(d) {
				return nil
			}
		}
		return ErrInvalidProof
	}
	if !env.IsSigner(auth.Signer) {
		return ErrMissingSigner
	}
	return nil
}
