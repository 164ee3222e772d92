// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"github.com/vechain/nftstake/thor"
)

// BlockContext carries the trusted clock of an execution.
type BlockContext struct {
	Time uint64
}

// TransactionContext transaction context.
type TransactionContext struct {
	Signers []thor.Address
}

// Environment an env to execute program operations.
type Environment struct {
	blockCtx *BlockContext
	txCtx    *TransactionContext
}

// New create a new env.
func New(blockCtx *BlockContext, txCtx *TransactionContext) *Environment {
	if blockCtx == nil {
		blockCtx = &BlockContext{}
	}
	if txCtx == nil {
		txCtx = &TransactionContext{}
	}
	return &Environment{
		blockCtx: blockCtx,
		txCtx:    txCtx,
	}
}

func (env *Environment) BlockContext() *BlockContext             { return env.blockCtx }
func (env *Environment) TransactionContext() *TransactionContext { return env.txCtx }

// Time returns the current timestamp in seconds.
func (env *Environment) Time() uint64 { return env.blockCtx.Time }

// IsSigner reports whether addr authorized the running transaction.
func (env *Environment) IsSigner(addr thor.Address) bool {
	if addr.IsZero() {
		return false
	}
	for _, s := range env.txCtx.Signers {
		if s == addr {
			return true
		}
	}
	return false
}
