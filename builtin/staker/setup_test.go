// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstake/builtin/metadata"
	"github.com/vechain/nftstake/builtin/staker/pool"
	"github.com/vechain/nftstake/builtin/token"
	"github.com/vechain/nftstake/derive"
	"github.com/vechain/nftstake/eligibility"
	"github.com/vechain/nftstake/kv"
	"github.com/vechain/nftstake/state"
	"github.com/vechain/nftstake/thor"
	"github.com/vechain/nftstake/xenv"
)

var (
	stakingProgram  = thor.BytesToAddress([]byte("staking-program"))
	tokenProgram    = thor.BytesToAddress([]byte("token-program"))
	metadataProgram = thor.BytesToAddress([]byte("metadata-program"))

	admin           = thor.BytesToAddress([]byte("admin"))
	updateAuthority = thor.BytesToAddress([]byte("update-authority"))
	creator         = eligibility.Creator{Address: updateAuthority, Verified: true, Share: 100}
)

type fixture struct {
	state    *state.State
	staker   *Staker
	token    *token.Token
	registry *metadata.Registry
}

func newFixture() *fixture {
	st := state.NewStater(kv.NewMem()).NewState()
	deriver := derive.New(stakingProgram)
	tk := token.New(tokenProgram, st, deriver)
	registry := metadata.New(metadataProgram, st, tk)

	return &fixture{
		state: st,
		staker: New(stakingProgram, st, Deps{
			Deriver:  deriver,
			Ledger:   tk,
			Oracle:   registry,
			Verifier: eligibility.NewVerifier(derive.New(metadataProgram)),
		}),
		token:    tk,
		registry: registry,
	}
}

func env(time uint64, signers ...thor.Address) *xenv.Environment {
	return xenv.New(&xenv.BlockContext{Time: time}, &xenv.TransactionContext{Signers: signers})
}

// exec runs f in a checkpoint, reverting on error like the processor does.
func (f *fixture) exec(fn func() error) error {
	chk := f.state.NewCheckpoint()
	if err := fn(); err != nil {
		f.state.RevertTo(chk)
		return err
	}
	return nil
}

// rewardMint creates the reward mint of the pool called name and hands its authority to the pool.
func (f *fixture) rewardMint(t *testing.T, name string) (thor.Address, uint8) {
	mint := thor.BytesToAddress([]byte("reward-" + name))
	require.NoError(t, f.token.CreateMint(env(0, mint), mint, admin, 0))

	poolAddr, _, err := f.staker.PoolAddress(name)
	require.NoError(t, err)
	authority, nonce, err := f.staker.PoolAuthority(poolAddr)
	require.NoError(t, err)
	require.NoError(t, f.token.SetMintAuthority(env(0, admin), mint, token.SignerAuthority(admin), authority))
	return mint, nonce
}

func (f *fixture) createPool(t *testing.T, name string, rate uint64, custody pool.CustodyMode, policy *eligibility.Policy) thor.Address {
	mint, nonce := f.rewardMint(t, name)
	poolAddr, err := f.staker.CreatePool(env(0, admin), CreatePoolParams{
		Name:           name,
		Admin:          admin,
		RewardMint:     mint,
		AuthorityNonce: nonce,
		RewardRate:     rate,
		Policy:         policy,
		Custody:        custody,
	})
	require.NoError(t, err)
	return poolAddr
}

// holder is an owner with a stake account and a reward slot in one pool.
type holder struct {
	owner        thor.Address
	pool         thor.Address
	stakeAccount thor.Address
	rewardSlot   thor.Address
}

func (f *fixture) newHolder(t *testing.T, poolAddr thor.Address, name string) *holder {
	owner := thor.BytesToAddress([]byte(name))
	acct, err := f.staker.CreateStakeAccount(env(0, owner), owner, poolAddr)
	require.NoError(t, err)

	p, err := f.staker.GetPool(poolAddr)
	require.NoError(t, err)
	slot, err := f.token.AssociatedAddress(owner, p.RewardMint)
	require.NoError(t, err)
	if _, err := f.token.GetAccount(slot); err != nil {
		_, err = f.token.CreateAssociatedAccount(env(0), owner, p.RewardMint)
		require.NoError(t, err)
	}
	return &holder{owner: owner, pool: poolAddr, stakeAccount: acct, rewardSlot: slot}
}

// mintNFT creates a single unit asset held by owner, with a registered descriptor.
func (f *fixture) mintNFT(t *testing.T, owner thor.Address, name string) (thor.Address, thor.Address) {
	asset := thor.BytesToAddress([]byte("nft-" + name))
	require.NoError(t, f.token.CreateMint(env(0, asset), asset, admin, 0))
	slot, err := f.token.CreateAssociatedAccount(env(0), owner, asset)
	require.NoError(t, err)
	require.NoError(t, f.token.MintTo(env(0, admin), asset, 1, slot, token.SignerAuthority(admin)))

	_, err = f.registry.Register(env(0, updateAuthority, admin), asset, metadata.Record{
		Name:            "Moot #" + name,
		UpdateAuthority: updateAuthority,
		Creators:        []eligibility.Creator{creator},
	})
	require.NoError(t, err)
	return asset, slot
}

func (f *fixture) params(t *testing.T, h *holder, asset, slot thor.Address) StakeParams {
	vault, err := f.staker.VaultAddress(h.stakeAccount, asset)
	require.NoError(t, err)
	return StakeParams{
		ClaimParams:  h.claim(),
		Asset:        asset,
		AssetAccount: slot,
		Vault:        vault,
	}
}

func (h *holder) claim() ClaimParams {
	return ClaimParams{
		Owner:             h.owner,
		Pool:              h.pool,
		StakeAccount:      h.stakeAccount,
		RewardDestination: h.rewardSlot,
	}
}

func (f *fixture) balance(t *testing.T, slot thor.Address) uint64 {
	acc, err := f.token.GetAccount(slot)
	require.NoError(t, err)
	return acc.Amount
}

type TestFunc func(t *testing.T)

type TestSequence struct {
	f *fixture

	funcs []TestFunc
	mu    sync.Mutex
}

func NewSequence(f *fixture) *TestSequence {
	return &TestSequence{funcs: make([]TestFunc, 0), f: f}
}

func (st *TestSequence) AddFunc(f TestFunc) *TestSequence {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.funcs = append(st.funcs, f)
	return st
}

func (st *TestSequence) Stake(h *holder, asset, slot thor.Address, time uint64, reward uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		got, err := st.f.staker.Stake(env(time, h.owner), st.f.params(t, h, asset, slot))
		if err != nil {
			t.Fatalf("failed to stake %s at %d: %v", asset, time, err)
		}
		assert.Equal(t, reward, got, "stake reward at %d", time)
		t.Logf("staked %s at %d, reward %d", asset.AbbrevString(), time, got)
	})
}

func (st *TestSequence) Unstake(h *holder, asset, slot thor.Address, time uint64, reward uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		got, err := st.f.staker.Unstake(env(time, h.owner), st.f.params(t, h, asset, slot))
		if err != nil {
			t.Fatalf("failed to unstake %s at %d: %v", asset, time, err)
		}
		assert.Equal(t, reward, got, "unstake reward at %d", time)
		t.Logf("unstaked %s at %d, reward %d", asset.AbbrevString(), time, got)
	})
}

func (st *TestSequence) Claim(h *holder, time uint64, reward uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		got, err := st.f.staker.Claim(env(time, h.owner), h.claim())
		if err != nil {
			t.Fatalf("failed to claim at %d: %v", time, err)
		}
		assert.Equal(t, reward, got, "claim reward at %d", time)
		t.Logf("claimed at %d, reward %d", time, got)
	})
}

func (st *TestSequence) Run(t *testing.T) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, f := range st.funcs {
		f(t)
	}

	t.Logf("All test functions executed successfully")
}

type AccountAssertions struct {
	f *fixture
	h *holder

	numStaked      *uint16
	lastCheckpoint *uint64
	totalStaked    *uint32
	rewards        *uint64
}

func AssertAccount(f *fixture, h *holder) *AccountAssertions {
	return &AccountAssertions{f: f, h: h}
}

func (aa *AccountAssertions) NumStaked(expected uint16) *AccountAssertions {
	aa.numStaked = &expected
	return aa
}

func (aa *AccountAssertions) LastCheckpoint(expected uint64) *AccountAssertions {
	aa.lastCheckpoint = &expected
	return aa
}

func (aa *AccountAssertions) TotalStaked(expected uint32) *AccountAssertions {
	aa.totalStaked = &expected
	return aa
}

func (aa *AccountAssertions) Rewards(expected uint64) *AccountAssertions {
	aa.rewards = &expected
	return aa
}

func (aa *AccountAssertions) Assert(t *testing.T) {
	acct, err := aa.f.staker.GetStakeAccount(aa.h.stakeAccount)
	require.NoError(t, err, "failed to get stake account %s", aa.h.stakeAccount)
	require.NotNil(t, acct)

	if aa.numStaked != nil {
		assert.Equal(t, *aa.numStaked, acct.NumStaked, "stake account %s num staked mismatch", aa.h.stakeAccount)
	}
	if aa.lastCheckpoint != nil {
		assert.Equal(t, *aa.lastCheckpoint, acct.LastCheckpoint, "stake account %s checkpoint mismatch", aa.h.stakeAccount)
	}
	if aa.totalStaked != nil {
		p, err := aa.f.staker.GetPool(aa.h.pool)
		require.NoError(t, err)
		assert.Equal(t, *aa.totalStaked, p.TotalStaked, "pool %s total staked mismatch", aa.h.pool)
	}
	if aa.rewards != nil {
		assert.Equal(t, *aa.rewards, aa.f.balance(t, aa.h.rewardSlot), "reward balance mismatch")
	}
}

// Check appends the assertions to a sequence.
func (aa *AccountAssertions) Check(st *TestSequence) *TestSequence {
	return st.AddFunc(aa.Assert)
}
