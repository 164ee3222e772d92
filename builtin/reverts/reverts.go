// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
)

// Kind classifies why an operation was rejected.
type Kind uint8

const (
	// Authorization missing or invalid signer, derived authority or ownership.
	Authorization Kind = iota + 1
	// Eligibility an asset failed the pool's collection policy.
	Eligibility
	// Arithmetic a counter or reward computation overflowed.
	Arithmetic
	// Consistency records or accounts do not match each other.
	Consistency
)

func (k Kind) String() string {
	switch k {
	case Authorization:
		return "authorization"
	case Eligibility:
		return "eligibility"
	case Arithmetic:
		return "arithmetic"
	case Consistency:
		return "consistency"
	}
	return "unknown"
}

// ErrRevert rejects an operation. All changes made by the operation are reverted.
type ErrRevert struct {
	kind    Kind
	message string
}

func New(kind Kind, message string) *ErrRevert {
	return &ErrRevert{
		kind:    kind,
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

func (e *ErrRevert) Kind() Kind {
	return e.kind
}

// KindOf returns the revert kind carried by err, 0 if err is not a revert.
func KindOf(err error) Kind {
	var ve *ErrRevert
	if errors.As(err, &ve) && ve != nil {
		return ve.kind
	}
	return 0
}

func IsRevertErr(err error) bool {
	return KindOf(err) != 0
}

func IsAuthorization(err error) bool { return KindOf(err) == Authorization }
func IsEligibility(err error) bool   { return KindOf(err) == Eligibility }
func IsArithmetic(err error) bool    { return KindOf(err) == Arithmetic }
func IsConsistency(err error) bool   { return KindOf(err) == Consistency }
