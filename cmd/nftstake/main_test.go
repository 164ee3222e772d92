// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstake/builtin"
	"github.com/vechain/nftstake/builtin/staker/pool"
	"github.com/vechain/nftstake/kv"
	"github.com/vechain/nftstake/state"
	"github.com/vechain/nftstake/thor"
)

func TestParseSigners(t *testing.T) {
	a := thor.BytesToAddress([]byte("a"))
	signers, err := parseSigners([]string{a.String()})
	require.NoError(t, err)
	assert.Equal(t, []thor.Address{a}, signers)

	_, err = parseSigners([]string{"not-an-address"})
	assert.Error(t, err)
}

func TestLoadPoolFile(t *testing.T) {
	admin := thor.BytesToAddress([]byte("admin"))
	mint := thor.BytesToAddress([]byte("mint"))
	dir := t.TempDir()

	path := filepath.Join(dir, "pool.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(`name: gmoot
admin: %s
rewardMint: %s
rewardRate: 10
custody: authority
policy:
  collection: "Moot #"
  updateAuthority: %s
  creators:
    - address: %s
      verified: true
      share: 100
`, admin, mint, admin, admin)), 0o600))

	pf, err := loadPoolFile(path)
	require.NoError(t, err)
	assert.Equal(t, "gmoot", pf.Name)
	assert.Equal(t, admin, pf.Admin)
	assert.Equal(t, mint, pf.RewardMint)
	assert.Equal(t, uint64(10), pf.RewardRate)
	assert.Equal(t, pool.CustodyAuthority, pf.Custody)
	require.NotNil(t, pf.Policy)
	assert.Equal(t, "Moot #", pf.Policy.Collection)
	assert.Len(t, pf.Policy.Creators, 1)

	// custody defaults to vault, policy to none
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("name: open\nadmin: %s\nrewardMint: %s\n", admin, mint)), 0o600))
	pf, err = loadPoolFile(path)
	require.NoError(t, err)
	assert.Equal(t, pool.CustodyVault, pf.Custody)
	assert.Nil(t, pf.Policy)

	require.NoError(t, os.WriteFile(path, []byte("name: broken\n"), 0o600))
	_, err = loadPoolFile(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("name: x\nadmin: %s\nrewardMint: %s\ncustody: escrow\n", admin, mint)), 0o600))
	_, err = loadPoolFile(path)
	assert.Error(t, err)
}

func TestCommands(t *testing.T) {
	dataDir := t.TempDir()

	var (
		admin  = thor.BytesToAddress([]byte("admin"))
		alice  = thor.BytesToAddress([]byte("alice"))
		reward = thor.BytesToAddress([]byte("reward"))
		nft    = thor.BytesToAddress([]byte("nft"))
	)

	programs, err := builtin.New(builtin.DefaultConfig())
	require.NoError(t, err)
	scratch := state.NewStater(kv.NewMem()).NewState()
	s := programs.StakerWithState(scratch)
	tk := programs.TokenWithState(scratch)

	poolAddr, _, err := s.PoolAddress("gmoot")
	require.NoError(t, err)
	authority, _, err := s.PoolAuthority(poolAddr)
	require.NoError(t, err)
	nftSlot, err := tk.AssociatedAddress(alice, nft)
	require.NoError(t, err)
	rewardSlot, err := tk.AssociatedAddress(alice, reward)
	require.NoError(t, err)

	poolYAML := filepath.Join(t.TempDir(), "pool.yaml")
	require.NoError(t, os.WriteFile(poolYAML, []byte(fmt.Sprintf("name: gmoot\nadmin: %s\nrewardMint: %s\nrewardRate: 10\n", admin, reward)), 0o600))

	run := func(time uint64, signer thor.Address, args ...string) error {
		full := []string{"nftstake", "--data-dir", dataDir, "--verbosity", "0", "--time", fmt.Sprint(time)}
		if !signer.IsZero() {
			full = append(full, "--signer", signer.String())
		}
		return newApp().Run(append(full, args...))
	}

	require.NoError(t, run(1, reward, "token", "create-mint", "--mint", reward.String(), "--authority", authority.String()))
	require.NoError(t, run(1, nft, "token", "create-mint", "--mint", nft.String(), "--authority", admin.String()))
	require.NoError(t, run(1, thor.Address{}, "token", "create-account", "--mint", nft.String(), "--owner", alice.String()))
	require.NoError(t, run(1, admin, "token", "mint", "--mint", nft.String(), "--to", nftSlot.String(), "--amount", "1"))
	require.NoError(t, run(1, admin, "pool", "create", "--file", poolYAML))
	require.NoError(t, run(1, alice, "account", "create", "--pool", poolAddr.String(), "--owner", alice.String()))
	require.NoError(t, run(1, thor.Address{}, "token", "create-account", "--mint", reward.String(), "--owner", alice.String()))

	// unsigned stake is rejected
	assert.Error(t, run(10, thor.Address{}, "stake", "--pool", poolAddr.String(), "--owner", alice.String(), "--asset", nft.String()))

	require.NoError(t, run(10, alice, "stake", "--pool", poolAddr.String(), "--owner", alice.String(), "--asset", nft.String()))
	require.NoError(t, run(60, alice, "claim", "--pool", poolAddr.String(), "--owner", alice.String()))
	require.NoError(t, run(60, admin, "pool", "update-rate", "--pool", poolAddr.String(), "--rate", "20"))
	require.NoError(t, run(110, alice, "unstake", "--pool", poolAddr.String(), "--owner", alice.String(), "--asset", nft.String()))
	require.NoError(t, run(110, thor.Address{}, "pool", "get", "--pool", poolAddr.String()))

	store, err := kv.Open(filepath.Join(dataDir, "ledger.db"), 16, 16)
	require.NoError(t, err)
	defer store.Close()
	st := state.NewStater(store).NewState()

	acc, err := programs.TokenWithState(st).GetAccount(rewardSlot)
	require.NoError(t, err)
	// 10/s over [10,60], then 20/s over [60,110]
	assert.Equal(t, uint64(500+1000), acc.Amount)

	back, err := programs.TokenWithState(st).GetAccount(nftSlot)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), back.Amount)
}
