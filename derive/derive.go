// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package derive computes key-less program addresses from seeds.
//
// A derived address is the blake2b-256 digest of the seeds, a one-byte nonce,
// the program id and a fixed marker. Only digests that are not valid ed25519
// point encodings are accepted, so no private key exists for them and only the
// program that knows the seeds can present the address as an authority.
package derive

import (
	"filippo.io/edwards25519"

	"github.com/vechain/nftstake/builtin/reverts"
	"github.com/vechain/nftstake/thor"
)

const (
	// MaxSeeds is the max count of seeds of one derivation.
	MaxSeeds = 16
	// MaxSeedLength is the max length of a single seed in bytes.
	MaxSeedLength = 32

	marker = "ProgramDerivedAddress"
)

var (
	ErrMaxSeedLength = reverts.New(reverts.Consistency, "seed exceeds max length")
	ErrTooManySeeds  = reverts.New(reverts.Consistency, "too many seeds")
	ErrNoViableNonce = reverts.New(reverts.Consistency, "unable to find a viable nonce")
)

// Deriver derives and verifies program addresses under one program id.
type Deriver interface {
	// Derive returns the canonical address and nonce, searching nonce from 255 down.
	Derive(seeds ...[]byte) (thor.Address, uint8, error)
	// Verify recomputes the address with the given nonce and compares.
	// It returns false for invalid seeds or an on-curve result.
	Verify(seeds [][]byte, nonce uint8, claimed thor.Address) bool
	ProgramID() thor.Address
}

type deriver struct {
	programID thor.Address
}

// New creates the blake2b deriver for programID.
func New(programID thor.Address) Deriver {
	return &deriver{programID}
}

func (d *deriver) ProgramID() thor.Address {
	return d.programID
}

func (d *deriver) Derive(seeds ...[]byte) (thor.Address, uint8, error) {
	if err := checkSeeds(seeds); err != nil {
		return thor.Address{}, 0, err
	}
	for nonce := 255; nonce >= 0; nonce-- {
		if addr, ok := d.compute(seeds, uint8(nonce)); ok {
			return addr, uint8(nonce), nil
		}
	}
	return thor.Address{}, 0, ErrNoViableNonce
}

func (d *deriver) Verify(seeds [][]byte, nonce uint8, claimed thor.Address) bool {
	if checkSeeds(seeds) != nil {
		return false
	}
	addr, ok := d.compute(seeds, nonce)
	return ok && addr == claimed
}

// compute hashes the derivation input. ok is false when the digest lies on the curve.
func (d *deriver) compute(seeds [][]byte, nonce uint8) (thor.Address, bool) {
	input := make([][]byte, 0, len(seeds)+3)
	input = append(input, seeds...)
	input = append(input, []byte{nonce}, d.programID[:], []byte(marker))
	hash := thor.Blake2b(input...)
	if IsOnCurve(hash[:]) {
		return thor.Address{}, false
	}
	return thor.Address(hash), true
}

func checkSeeds(seeds [][]byte) error {
	if len(seeds) > MaxSeeds {
		return ErrTooManySeeds
	}
	for _, s := range seeds {
		if len(s) > MaxSeedLength {
			return ErrMaxSeedLength
		}
	}
	return nil
}

// IsOnCurve reports whether b is a valid compressed ed25519 point.
func IsOnCurve(b []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}

// Proof is a presented derivation, used as authority by a program.
type Proof struct {
	Seeds   [][]byte
	Nonce   uint8
	Address thor.Address
}

// Check verifies the proof under d.
func (p *Proof) Check(d Deriver) bool {
	return d.Verify(p.Seeds, p.Nonce, p.Address)
}
