// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metadata is a state backed registry of asset descriptors.
package metadata

import (
	"github.com/pkg/errors"

	"github.com/vechain/nftstake/builtin/reverts"
	"github.com/vechain/nftstake/builtin/solidity"
	"github.com/vechain/nftstake/builtin/token"
	"github.com/vechain/nftstake/derive"
	"github.com/vechain/nftstake/eligibility"
	"github.com/vechain/nftstake/log"
	"github.com/vechain/nftstake/state"
	"github.com/vechain/nftstake/thor"
	"github.com/vechain/nftstake/xenv"
)

var (
	logger = log.WithContext("pkg", "metadata")

	slotRecords = thor.BytesToBytes32([]byte("records"))

	ErrUnauthorized     = reverts.New(reverts.Authorization, "update authority must sign")
	ErrMintUnauthorized = reverts.New(reverts.Authorization, "mint authority must sign the first registration")
)

// MintReader looks up the mint of an asset.
type MintReader interface {
	GetMint(mint thor.Address) (*token.Mint, error)
}

// MaxNameLength bounds the descriptor name.
const MaxNameLength = 32

// Record is the stored descriptor of an asset.
type Record struct {
	Name            string                `json:"name" yaml:"name"`
	UpdateAuthority thor.Address          `json:"updateAuthority" yaml:"updateAuthority"`
	Creators        []eligibility.Creator `json:"creators" yaml:"creators"`
}

// Registry implements eligibility.Oracle.
type Registry struct {
	verifier  *eligibility.Verifier
	programID thor.Address
	mints     MintReader
	records   *solidity.Mapping[thor.Address, Record]
}

var _ eligibility.Oracle = (*Registry)(nil)

// New creates the registry bound to the metadata program address.
// Mints are consulted to authorize the first registration of an asset.
func New(addr thor.Address, state *state.State, mints MintReader) *Registry {
	sctx := solidity.NewContext(addr, state)
	return &Registry{
		verifier:  eligibility.NewVerifier(derive.New(addr)),
		programID: addr,
		mints:     mints,
		records:   solidity.NewMapping[thor.Address, Record](sctx, slotRecords),
	}
}

// Register creates or replaces the descriptor of asset.
// The record's update authority must sign. The first registration also needs the
// asset's mint authority, a replacement needs the previous update authority.
func (r *Registry) Register(env *xenv.Environment, asset thor.Address, rec Record) (thor.Address, error) {
	logger.Debug("registering metadata", "asset", asset, "name", rec.Name, "authority", rec.UpdateAuthority)

	if len(rec.Name) > MaxNameLength {
		return thor.Address{}, reverts.New(reverts.Consistency, "metadata name too long")
	}
	if !env.IsSigner(rec.UpdateAuthority) {
		return thor.Address{}, ErrUnauthorized
	}
	addr, err := r.verifier.MetadataAddress(asset)
	if err != nil {
		return thor.Address{}, err
	}
	exists, err := r.records.Exists(addr)
	if err != nil {
		return thor.Address{}, errors.Wrap(err, "failed to get metadata")
	}
	if exists {
		prev, err := r.records.Get(addr)
		if err != nil {
			return thor.Address{}, errors.Wrap(err, "failed to get metadata")
		}
		if !env.IsSigner(prev.UpdateAuthority) {
			return thor.Address{}, ErrUnauthorized
		}
	} else {
		mint, err := r.mints.GetMint(asset)
		if err != nil {
			return thor.Address{}, err
		}
		if !env.IsSigner(mint.MintAuthority) {
			return thor.Address{}, ErrMintUnauthorized
		}
	}
	if err := r.records.Set(addr, rec); err != nil {
		return thor.Address{}, errors.Wrap(err, "failed to set metadata")
	}
	return addr, nil
}

// FetchDescriptor returns the descriptor of asset, nil if none was registered.
func (r *Registry) FetchDescriptor(asset thor.Address) (*eligibility.Descriptor, error) {
	addr, err := r.verifier.MetadataAddress(asset)
	if err != nil {
		return nil, err
	}
	exists, err := r.records.Exists(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get metadata")
	}
	if !exists {
		return nil, nil
	}
	rec, err := r.records.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get metadata")
	}
	return &eligibility.Descriptor{
		Address:         addr,
		Owner:           r.programID,
		Name:            rec.Name,
		UpdateAuthority: rec.UpdateAuthority,
		Creators:        rec.Creators,
	}, nil
}
