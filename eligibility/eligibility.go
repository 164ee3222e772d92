// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package eligibility decides whether an asset belongs to a pool's collection.
package eligibility

import (
	"strings"

	"github.com/vechain/nftstake/builtin/reverts"
	"github.com/vechain/nftstake/derive"
	"github.com/vechain/nftstake/thor"
)

// MetadataSeed prefixes the seeds of a metadata record address.
const MetadataSeed = "metadata"

var (
	ErrMetadataAddress  = reverts.New(reverts.Eligibility, "invalid metadata account address")
	ErrMetadataOwner    = reverts.New(reverts.Eligibility, "metadata account not owned by metadata program")
	ErrMetadataNotFound = reverts.New(reverts.Eligibility, "metadata account not found")
	ErrUpdateAuthority  = reverts.New(reverts.Eligibility, "invalid metadata update authority")
	ErrCollectionPrefix = reverts.New(reverts.Eligibility, "invalid metadata collection prefix")
	ErrCreators         = reverts.New(reverts.Eligibility, "invalid metadata creators")
)

// Creator is one entry of the declared creator set.
type Creator struct {
	Address  thor.Address `json:"address" yaml:"address"`
	Verified bool         `json:"verified" yaml:"verified"`
	Share    uint8        `json:"share" yaml:"share"`
}

// Policy is the collection filter of a pool.
type Policy struct {
	Collection      string       `json:"collection" yaml:"collection"`
	UpdateAuthority thor.Address `json:"updateAuthority" yaml:"updateAuthority"`
	Creators        []Creator    `json:"creators" yaml:"creators"`
}

// Descriptor is the metadata record of an asset as read from the oracle.
type Descriptor struct {
	Address         thor.Address
	Owner           thor.Address
	Name            string
	UpdateAuthority thor.Address
	Creators        []Creator
}

// Oracle supplies asset descriptors.
type Oracle interface {
	FetchDescriptor(asset thor.Address) (*Descriptor, error)
}

// Verifier checks descriptors against policies.
type Verifier struct {
	metadata derive.Deriver
}

// NewVerifier creates a verifier, metadata derives under the metadata program id.
func NewVerifier(metadata derive.Deriver) *Verifier {
	return &Verifier{metadata}
}

// MetadataAddress returns where the descriptor of asset is stored.
func (v *Verifier) MetadataAddress(asset thor.Address) (thor.Address, error) {
	programID := v.metadata.ProgramID()
	addr, _, err := v.metadata.Derive([]byte(MetadataSeed), programID[:], asset[:])
	return addr, err
}

// Verify returns nil if asset is eligible under policy. A nil policy admits any asset.
func (v *Verifier) Verify(asset thor.Address, desc *Descriptor, policy *Policy) error {
	if policy == nil {
		return nil
	}
	if desc == nil {
		return ErrMetadataNotFound
	}

	addr, err := v.MetadataAddress(asset)
	if err != nil {
		return err
	}
	if desc.Address != addr {
		return ErrMetadataAddress
	}
	if desc.Owner != v.metadata.ProgramID() {
		return ErrMetadataOwner
	}

	if desc.UpdateAuthority != policy.UpdateAuthority {
		return ErrUpdateAuthority
	}

	if !strings.HasPrefix(desc.Name, policy.Collection) {
		return ErrCollectionPrefix
	}

	if len(desc.Creators) == 0 || len(desc.Creators) != len(policy.Creators) {
		return ErrCreators
	}
	for _, want := range policy.Creators {
		if !containsCreator(desc.Creators, want) {
			return ErrCreators
		}
	}
	return nil
}

func containsCreator(creators []Creator, c Creator) bool {
	for _, have := range creators {
		if have == c {
			return true
		}
	}
	return false
}
