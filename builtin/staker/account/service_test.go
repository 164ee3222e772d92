// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstake/builtin/solidity"
	"github.com/vechain/nftstake/kv"
	"github.com/vechain/nftstake/state"
	"github.com/vechain/nftstake/thor"
)

func TestService(t *testing.T) {
	st := state.NewStater(kv.NewMem()).NewState()
	svc := New(solidity.NewContext(thor.Address{1}, st))

	addr := thor.Address{2}
	a, err := svc.GetAccount(addr)
	require.NoError(t, err)
	assert.Nil(t, a)

	// a fresh account is still a record
	fresh := &StakeAccount{Owner: thor.Address{3}, Pool: thor.Address{4}, Nonce: 254}
	require.NoError(t, svc.SetAccount(addr, fresh))
	a, err = svc.GetAccount(addr)
	require.NoError(t, err)
	assert.Equal(t, fresh, a)
	assert.False(t, a.IsActive())

	a.NumStaked = 2
	a.LastCheckpoint = 100
	require.NoError(t, svc.SetAccount(addr, a))
	got, err := svc.GetAccount(addr)
	require.NoError(t, err)
	assert.Equal(t, uint16(2), got.NumStaked)
	assert.True(t, got.IsActive())
}
