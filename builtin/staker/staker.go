// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"math"

	"github.com/pkg/errors"

	"github.com/vechain/nftstake/accrual"
	"github.com/vechain/nftstake/builtin/solidity"
	"github.com/vechain/nftstake/builtin/staker/account"
	"github.com/vechain/nftstake/builtin/staker/globalstats"
	"github.com/vechain/nftstake/builtin/staker/pool"
	"github.com/vechain/nftstake/builtin/token"
	"github.com/vechain/nftstake/derive"
	"github.com/vechain/nftstake/eligibility"
	"github.com/vechain/nftstake/log"
	"github.com/vechain/nftstake/state"
	"github.com/vechain/nftstake/thor"
	"github.com/vechain/nftstake/xenv"
)

// Seeds of the addresses derived under the staking program.
const (
	SeedPool          = "pool"
	SeedPoolAuthority = "pool_authority"
	SeedStakeAccount  = "stake_account"
)

var logger = log.WithContext("pkg", "staker")

func SetLogger(l log.Logger) {
	logger = l
}

// Deps are the collaborators of the staker.
type Deps struct {
	// Deriver derives under the staking program id.
	Deriver  derive.Deriver
	Ledger   token.Ledger
	Oracle   eligibility.Oracle
	Verifier *eligibility.Verifier
}

// Staker implements the stake ledger program.
type Staker struct {
	deriver  derive.Deriver
	ledger   token.Ledger
	oracle   eligibility.Oracle
	verifier *eligibility.Verifier

	poolService        *pool.Service
	accountService     *account.Service
	globalStatsService *globalstats.Service
}

// New create a new instance.
func New(addr thor.Address, state *state.State, deps Deps) *Staker {
	sctx := solidity.NewContext(addr, state)

	return &Staker{
		deriver:  deps.Deriver,
		ledger:   deps.Ledger,
		oracle:   deps.Oracle,
		verifier: deps.Verifier,

		poolService:        pool.New(sctx),
		accountService:     account.New(sctx),
		globalStatsService: globalstats.New(sctx),
	}
}

func poolSeeds(name string) [][]byte {
	return [][]byte{[]byte(SeedPool), []byte(name)}
}

func poolAuthoritySeeds(poolAddr thor.Address) [][]byte {
	return [][]byte{[]byte(SeedPoolAuthority), poolAddr.Bytes()}
}

func stakeAccountSeeds(poolAddr, owner thor.Address) [][]byte {
	return [][]byte{[]byte(SeedStakeAccount), poolAddr.Bytes(), owner.Bytes()}
}

//
// Getters - no state change
//

// PoolAddress returns the address and nonce of the pool named name.
func (s *Staker) PoolAddress(name string) (thor.Address, uint8, error) {
	return s.deriver.Derive(poolSeeds(name)...)
}

// PoolAuthority returns the derived authority of a pool, which must hold the reward mint authority.
func (s *Staker) PoolAuthority(poolAddr thor.Address) (thor.Address, uint8, error) {
	return s.deriver.Derive(poolAuthoritySeeds(poolAddr)...)
}

// StakeAccountAddress returns the address and nonce of owner's stake account in a pool.
func (s *Staker) StakeAccountAddress(poolAddr, owner thor.Address) (thor.Address, uint8, error) {
	return s.deriver.Derive(stakeAccountSeeds(poolAddr, owner)...)
}

// VaultAddress returns the custody vault of asset for a stake account.
func (s *Staker) VaultAddress(stakeAccount, asset thor.Address) (thor.Address, error) {
	return s.ledger.AssociatedAddress(stakeAccount, asset)
}

// GetPool returns the pool, nil if it does not exist.
func (s *Staker) GetPool(addr thor.Address) (*pool.Pool, error) {
	return s.poolService.GetPool(addr)
}

// GetStakeAccount returns the stake account, nil if it does not exist.
func (s *Staker) GetStakeAccount(addr thor.Address) (*account.StakeAccount, error) {
	return s.accountService.GetAccount(addr)
}

// PendingReward previews the reward a settlement of the stake account at now would mint.
func (s *Staker) PendingReward(stakeAccount thor.Address, now uint64) (uint64, error) {
	acct, err := s.accountService.GetAccount(stakeAccount)
	if err != nil {
		return 0, err
	}
	if acct == nil {
		return 0, ErrStakeAccountNotFound
	}
	p, err := s.poolService.GetPool(acct.Pool)
	if err != nil {
		return 0, err
	}
	if p == nil {
		return 0, ErrPoolNotFound
	}
	return accrual.Pending(p.RewardRate, uint64(acct.NumStaked), acct.LastCheckpoint, now)
}

// Totals returns the program-wide totals.
func (s *Staker) Totals() (*globalstats.Totals, error) {
	return s.globalStatsService.Totals()
}

//
// Setters - state change
//

// CreatePoolParams are the arguments of CreatePool.
type CreatePoolParams struct {
	Name           string
	Admin          thor.Address
	RewardMint     thor.Address
	AuthorityNonce uint8
	RewardRate     uint64
	Policy         *eligibility.Policy
	Custody        pool.CustodyMode
}

// CreatePool creates a pool at the address derived from its name.
// The reward mint authority must already be the pool's derived authority.
func (s *Staker) CreatePool(env *xenv.Environment, p CreatePoolParams) (thor.Address, error) {
	logger.Debug("creating pool", "name", p.Name, "admin", p.Admin, "mint", p.RewardMint, "rate", p.RewardRate)

	if !env.IsSigner(p.Admin) {
		return thor.Address{}, ErrMissingSignature
	}
	if !p.Custody.Valid() {
		return thor.Address{}, ErrInvalidCustodyMode
	}

	poolAddr, nonce, err := s.PoolAddress(p.Name)
	if err != nil {
		return thor.Address{}, err
	}
	existing, err := s.poolService.GetPool(poolAddr)
	if err != nil {
		return thor.Address{}, err
	}
	if existing != nil {
		return thor.Address{}, ErrPoolExists
	}

	mint, err := s.ledger.GetMint(p.RewardMint)
	if err != nil {
		if errors.Is(err, token.ErrMintNotFound) {
			return thor.Address{}, ErrInvalidRewardMint
		}
		return thor.Address{}, err
	}
	if !s.deriver.Verify(poolAuthoritySeeds(poolAddr), p.AuthorityNonce, mint.MintAuthority) {
		logger.Info("create pool failed", "name", p.Name, "error", ErrRewarderNotMintAuthority)
		return thor.Address{}, ErrRewarderNotMintAuthority
	}

	if err := s.poolService.SetPool(poolAddr, &pool.Pool{
		Name:           p.Name,
		Admin:          p.Admin,
		RewardMint:     p.RewardMint,
		AuthorityNonce: p.AuthorityNonce,
		RewardRate:     p.RewardRate,
		Policy:         p.Policy,
		Custody:        p.Custody,
		Nonce:          nonce,
	}); err != nil {
		return thor.Address{}, err
	}
	if err := s.globalStatsService.AddPool(); err != nil {
		return thor.Address{}, err
	}

	logger.Info("created pool", "pool", poolAddr, "name", p.Name, "custody", p.Custody)
	return poolAddr, nil
}

// UpdateRewardRate changes the reward rate of a pool. The pool admin must sign.
func (s *Staker) UpdateRewardRate(env *xenv.Environment, poolAddr thor.Address, newRate uint64) error {
	logger.Debug("updating reward rate", "pool", poolAddr, "rate", newRate)

	p, err := s.poolService.GetPool(poolAddr)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrPoolNotFound
	}
	if !env.IsSigner(p.Admin) {
		return ErrInvalidPoolAdmin
	}

	p.RewardRate = newRate
	if err := s.poolService.SetPool(poolAddr, p); err != nil {
		return err
	}

	logger.Info("updated reward rate", "pool", poolAddr, "rate", newRate)
	return nil
}

// CreateStakeAccount creates the stake account of owner in a pool.
func (s *Staker) CreateStakeAccount(env *xenv.Environment, owner, poolAddr thor.Address) (thor.Address, error) {
	logger.Debug("creating stake account", "owner", owner, "pool", poolAddr)

	if !env.IsSigner(owner) {
		return thor.Address{}, ErrMissingSignature
	}
	p, err := s.poolService.GetPool(poolAddr)
	if err != nil {
		return thor.Address{}, err
	}
	if p == nil {
		return thor.Address{}, ErrPoolNotFound
	}

	addr, nonce, err := s.StakeAccountAddress(poolAddr, owner)
	if err != nil {
		return thor.Address{}, err
	}
	existing, err := s.accountService.GetAccount(addr)
	if err != nil {
		return thor.Address{}, err
	}
	if existing != nil {
		return thor.Address{}, ErrStakeAccountExists
	}

	if err := s.accountService.SetAccount(addr, &account.StakeAccount{
		Owner: owner,
		Pool:  poolAddr,
		Nonce: nonce,
	}); err != nil {
		return thor.Address{}, err
	}

	logger.Info("created stake account", "account", addr, "owner", owner, "pool", poolAddr)
	return addr, nil
}

// ClaimParams identify a stake account and where its rewards go.
type ClaimParams struct {
	Owner             thor.Address
	Pool              thor.Address
	StakeAccount      thor.Address
	RewardDestination thor.Address
}

// StakeParams add the asset to move in or out of custody.
type StakeParams struct {
	ClaimParams
	// Asset is the mint of the non-fungible asset.
	Asset thor.Address
	// AssetAccount is the owner's token account holding the asset.
	AssetAccount thor.Address
	// Vault is the custody slot of the asset, used in vault custody mode.
	Vault thor.Address
}

// UnstakeParams are the same as StakeParams.
type UnstakeParams = StakeParams

// Stake settles pending rewards and moves one asset into custody.
func (s *Staker) Stake(env *xenv.Environment, p StakeParams) (uint64, error) {
	logger.Debug("staking", "owner", p.Owner, "pool", p.Pool, "asset", p.Asset)

	ss, err := s.open(env, p.ClaimParams)
	if err != nil {
		return 0, err
	}
	if err := s.checkStakeAsset(ss, p); err != nil {
		logger.Info("stake failed", "account", p.StakeAccount, "asset", p.Asset, "error", err)
		return 0, err
	}
	if ss.pool.Policy != nil {
		desc, err := s.oracle.FetchDescriptor(p.Asset)
		if err != nil {
			return 0, err
		}
		if err := s.verifier.Verify(p.Asset, desc, ss.pool.Policy); err != nil {
			logger.Info("stake failed", "account", p.StakeAccount, "asset", p.Asset, "error", err)
			return 0, err
		}
	}

	if ss.account.NumStaked == math.MaxUint16 || ss.pool.TotalStaked == math.MaxUint32 {
		return 0, ErrStakedOverflow
	}

	reward, err := s.settle(ss)
	if err != nil {
		return 0, err
	}

	ss.account.NumStaked++
	ss.pool.TotalStaked++

	if err := s.lockAsset(ss, p); err != nil {
		return 0, err
	}
	if err := s.save(ss); err != nil {
		return 0, err
	}
	if err := s.globalStatsService.AddStaked(); err != nil {
		return 0, err
	}

	metricPoolStaked().SetWithLabel(int64(ss.pool.TotalStaked), map[string]string{"pool": p.Pool.String()})
	logger.Info("staked", "account", p.StakeAccount, "asset", p.Asset, "staked", ss.account.NumStaked, "reward", reward)
	return reward, nil
}

// Unstake settles pending rewards and returns one asset to the owner.
// The staked counters saturate at zero.
func (s *Staker) Unstake(env *xenv.Environment, p UnstakeParams) (uint64, error) {
	logger.Debug("unstaking", "owner", p.Owner, "pool", p.Pool, "asset", p.Asset)

	ss, err := s.open(env, p.ClaimParams)
	if err != nil {
		return 0, err
	}
	if err := s.checkUnstakeAsset(ss, p); err != nil {
		logger.Info("unstake failed", "account", p.StakeAccount, "asset", p.Asset, "error", err)
		return 0, err
	}

	reward, err := s.settle(ss)
	if err != nil {
		return 0, err
	}

	// the pool total only follows counts that actually moved
	decremented := ss.account.NumStaked > 0
	if decremented {
		ss.account.NumStaked--
		if ss.pool.TotalStaked > 0 {
			ss.pool.TotalStaked--
		}
	}

	if err := s.releaseAsset(ss, p); err != nil {
		return 0, err
	}
	if err := s.save(ss); err != nil {
		return 0, err
	}
	if decremented {
		if err := s.globalStatsService.RemoveStaked(); err != nil {
			return 0, err
		}
	}

	metricPoolStaked().SetWithLabel(int64(ss.pool.TotalStaked), map[string]string{"pool": p.Pool.String()})
	logger.Info("unstaked", "account", p.StakeAccount, "asset", p.Asset, "staked", ss.account.NumStaked, "reward", reward)
	return reward, nil
}

// Claim settles pending rewards without changing the staked count.
func (s *Staker) Claim(env *xenv.Environment, p ClaimParams) (uint64, error) {
	logger.Debug("claiming", "owner", p.Owner, "pool", p.Pool, "account", p.StakeAccount)

	ss, err := s.open(env, p)
	if err != nil {
		return 0, err
	}
	reward, err := s.settle(ss)
	if err != nil {
		return 0, err
	}
	if err := s.save(ss); err != nil {
		return 0, err
	}

	logger.Info("claimed", "account", p.StakeAccount, "reward", reward)
	return reward, nil
}
