// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/vechain/nftstake/builtin/metadata"
	"github.com/vechain/nftstake/builtin/staker"
	"github.com/vechain/nftstake/builtin/token"
	"github.com/vechain/nftstake/derive"
	"github.com/vechain/nftstake/eligibility"
	"github.com/vechain/nftstake/state"
	"github.com/vechain/nftstake/thor"
)

// Programs binds the native programs to their ids.
type Programs struct {
	Staking  *stakingProgram
	Token    *tokenProgram
	Metadata *metadataProgram
}

type program struct {
	Address thor.Address
	deriver derive.Deriver
}

type (
	stakingProgram  struct{ *program }
	tokenProgram    struct{ *program }
	metadataProgram struct{ *program }
)

func newProgram(addr thor.Address, cacheSize int) (*program, error) {
	d := derive.New(addr)
	if cacheSize > 0 {
		cached, err := derive.NewCached(d, cacheSize)
		if err != nil {
			return nil, err
		}
		d = cached
	}
	return &program{addr, d}, nil
}

// New creates the bindings of cfg.
func New(cfg Config) (*Programs, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	staking, err := newProgram(cfg.Staking, cfg.DeriverCacheSize)
	if err != nil {
		return nil, err
	}
	tk, err := newProgram(cfg.Token, cfg.DeriverCacheSize)
	if err != nil {
		return nil, err
	}
	md, err := newProgram(cfg.Metadata, cfg.DeriverCacheSize)
	if err != nil {
		return nil, err
	}

	p := &Programs{
		Staking:  &stakingProgram{staking},
		Token:    &tokenProgram{tk},
		Metadata: &metadataProgram{md},
	}
	return p, nil
}

// Deriver returns the address deriver of the program.
func (p *program) Deriver() derive.Deriver {
	return p.deriver
}

// TokenWithState binds the token ledger. Derived authorities of the staking program are accepted.
func (p *Programs) TokenWithState(state *state.State) *token.Token {
	return token.NewWithDeriver(p.Token.deriver, state, p.Staking.deriver)
}

// MetadataWithState binds the metadata registry.
func (p *Programs) MetadataWithState(state *state.State) *metadata.Registry {
	return metadata.New(p.Metadata.Address, state, p.TokenWithState(state))
}

// StakerWithState binds the stake ledger along with the ledger and oracle it relies on.
func (p *Programs) StakerWithState(state *state.State) *staker.Staker {
	return staker.New(p.Staking.Address, state, staker.Deps{
		Deriver:  p.Staking.deriver,
		Ledger:   p.TokenWithState(state),
		Oracle:   p.MetadataWithState(state),
		Verifier: eligibility.NewVerifier(p.Metadata.deriver),
	})
}
