// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstake/builtin/staker"
	"github.com/vechain/nftstake/builtin/staker/pool"
	"github.com/vechain/nftstake/kv"
	"github.com/vechain/nftstake/state"
	"github.com/vechain/nftstake/thor"
	"github.com/vechain/nftstake/xenv"
)

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Token = thor.Address{}
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Metadata = cfg.Staking
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.DeriverCacheSize = -1
	assert.Error(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	staking := thor.BytesToAddress([]byte("custom-staking"))
	path := filepath.Join(t.TempDir(), "programs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("staking: "+staking.String()+"\nderiverCacheSize: 0\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, staking, cfg.Staking)
	assert.Equal(t, DefaultConfig().Token, cfg.Token)
	assert.Equal(t, 0, cfg.DeriverCacheSize)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestBindings(t *testing.T) {
	programs, err := New(DefaultConfig())
	require.NoError(t, err)

	st := state.NewStater(kv.NewMem()).NewState()
	tk := programs.TokenWithState(st)
	s := programs.StakerWithState(st)
	admin := thor.BytesToAddress([]byte("admin"))
	env := func(signers ...thor.Address) *xenv.Environment {
		return xenv.New(nil, &xenv.TransactionContext{Signers: signers})
	}

	poolAddr, _, err := s.PoolAddress("bound")
	require.NoError(t, err)
	authority, nonce, err := s.PoolAuthority(poolAddr)
	require.NoError(t, err)

	mint := thor.BytesToAddress([]byte("reward"))
	require.NoError(t, tk.CreateMint(env(mint), mint, authority, 0))

	created, err := s.CreatePool(env(admin), staker.CreatePoolParams{
		Name:           "bound",
		Admin:          admin,
		RewardMint:     mint,
		AuthorityNonce: nonce,
		RewardRate:     1,
		Custody:        pool.CustodyVault,
	})
	require.NoError(t, err)
	assert.Equal(t, poolAddr, created)

	// the token ledger accepts proofs of the staking program
	owner := thor.BytesToAddress([]byte("owner"))
	slot, err := tk.CreateAssociatedAccount(env(), owner, mint)
	require.NoError(t, err)
	_, err = s.CreateStakeAccount(env(owner), owner, poolAddr)
	require.NoError(t, err)

	assert.Equal(t, programs.Staking.Address, programs.Staking.Deriver().ProgramID())
	assert.Equal(t, programs.Token.Address, programs.Token.Deriver().ProgramID())
	want, _, err := programs.Token.Deriver().Derive(owner[:], programs.Token.Address[:], mint[:])
	require.NoError(t, err)
	assert.Equal(t, want, slot)
	acc, err := tk.GetAccount(slot)
	require.NoError(t, err)
	assert.Equal(t, owner, acc.Owner)

	_, err = New(Config{})
	assert.Error(t, err)
}
