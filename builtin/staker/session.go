// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/pkg/errors"

	"github.com/vechain/nftstake/accrual"
	"github.com/vechain/nftstake/builtin/staker/account"
	"github.com/vechain/nftstake/builtin/staker/pool"
	"github.com/vechain/nftstake/builtin/token"
	"github.com/vechain/nftstake/derive"
	"github.com/vechain/nftstake/xenv"
)

// session holds the records loaded by one stake account operation.
type session struct {
	env     *xenv.Environment
	params  ClaimParams
	pool    *pool.Pool
	account *account.StakeAccount
}

// open loads and cross-checks the pool, the stake account and the reward destination.
func (s *Staker) open(env *xenv.Environment, p ClaimParams) (*session, error) {
	if !env.IsSigner(p.Owner) {
		return nil, ErrMissingSignature
	}

	pl, err := s.poolService.GetPool(p.Pool)
	if err != nil {
		return nil, err
	}
	if pl == nil {
		return nil, ErrPoolNotFound
	}

	acct, err := s.accountService.GetAccount(p.StakeAccount)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, ErrStakeAccountNotFound
	}
	if acct.Owner != p.Owner {
		return nil, ErrInvalidOwnerForStakeAccount
	}
	if acct.Pool != p.Pool {
		return nil, ErrInvalidPool
	}
	if !s.deriver.Verify(stakeAccountSeeds(p.Pool, p.Owner), acct.Nonce, p.StakeAccount) {
		return nil, ErrInvalidStakeAccount
	}

	dest, err := s.ledger.GetAccount(p.RewardDestination)
	if err != nil {
		if errors.Is(err, token.ErrAccountNotFound) {
			return nil, ErrInvalidRewardTokenAccount
		}
		return nil, err
	}
	if dest.Mint != pl.RewardMint {
		return nil, ErrInvalidRewardMint
	}
	if dest.Owner != p.Owner {
		return nil, ErrInvalidOwnerForRewardToken
	}

	return &session{env: env, params: p, pool: pl, account: acct}, nil
}

// settle mints the reward accrued since the last checkpoint, then advances the checkpoint.
func (s *Staker) settle(ss *session) (uint64, error) {
	mint, err := s.ledger.GetMint(ss.pool.RewardMint)
	if err != nil {
		return 0, err
	}
	authority := token.ProofAuthority(&derive.Proof{
		Seeds:   poolAuthoritySeeds(ss.params.Pool),
		Nonce:   ss.pool.AuthorityNonce,
		Address: mint.MintAuthority,
	})

	now := ss.env.Time()
	minter := accrual.MinterFunc(func(amount uint64) error {
		return s.ledger.MintTo(ss.env, ss.pool.RewardMint, amount, ss.params.RewardDestination, authority)
	})
	reward, err := accrual.Settle(minter, accrual.Settlement{
		Rate:  ss.pool.RewardRate,
		Count: uint64(ss.account.NumStaked),
		Last:  ss.account.LastCheckpoint,
		Now:   now,
	})
	if err != nil {
		return 0, err
	}
	ss.account.LastCheckpoint = accrual.Checkpoint(ss.account.LastCheckpoint, now)

	if err := s.globalStatsService.AddRewards(reward); err != nil {
		return 0, err
	}
	metricRewardsMinted().Add(int64(reward))
	return reward, nil
}

func (s *Staker) save(ss *session) error {
	if err := s.poolService.SetPool(ss.params.Pool, ss.pool); err != nil {
		return err
	}
	return s.accountService.SetAccount(ss.params.StakeAccount, ss.account)
}

func (s *Staker) stakeAccountProof(ss *session) *derive.Proof {
	return &derive.Proof{
		Seeds:   stakeAccountSeeds(ss.params.Pool, ss.params.Owner),
		Nonce:   ss.account.Nonce,
		Address: ss.params.StakeAccount,
	}
}

func (s *Staker) checkVaultAddress(ss *session, p StakeParams) error {
	vault, err := s.VaultAddress(ss.params.StakeAccount, p.Asset)
	if err != nil {
		return err
	}
	if vault != p.Vault {
		return ErrInvalidNFTVaultAddress
	}
	return nil
}

// checkStakeAsset checks that the owner holds the single unit of asset.
func (s *Staker) checkStakeAsset(ss *session, p StakeParams) error {
	mint, err := s.ledger.GetMint(p.Asset)
	if err != nil {
		return err
	}
	if mint.Supply != 1 {
		return ErrInvalidNFTMintSupply
	}

	slot, err := s.ledger.GetAccount(p.AssetAccount)
	if err != nil {
		return err
	}
	if slot.Owner != p.Owner {
		return ErrInvalidNFTOwner
	}
	if slot.Mint != p.Asset {
		return ErrInvalidNFTAccountMint
	}
	if slot.Amount != 1 {
		return ErrNFTAccountEmpty
	}

	switch ss.pool.Custody {
	case pool.CustodyVault:
		return s.checkVaultAddress(ss, p)
	case pool.CustodyAuthority:
		return nil
	}
	return ErrInvalidCustodyMode
}

// checkUnstakeAsset checks that the asset is held in custody of the stake account.
func (s *Staker) checkUnstakeAsset(ss *session, p UnstakeParams) error {
	slot, err := s.ledger.GetAccount(p.AssetAccount)
	if err != nil {
		return err
	}
	if slot.Mint != p.Asset {
		return ErrInvalidNFTAccountMint
	}

	switch ss.pool.Custody {
	case pool.CustodyVault:
		if slot.Owner != p.Owner {
			return ErrInvalidNFTOwner
		}
		if err := s.checkVaultAddress(ss, p); err != nil {
			return err
		}
		vault, err := s.ledger.GetAccount(p.Vault)
		if err != nil {
			if errors.Is(err, token.ErrAccountNotFound) {
				return ErrNFTVaultEmpty
			}
			return err
		}
		if vault.Amount < 1 {
			return ErrNFTVaultEmpty
		}
		return nil
	case pool.CustodyAuthority:
		if slot.Owner != ss.params.StakeAccount {
			return ErrInvalidStakedNFTOwner
		}
		if slot.Amount != 1 {
			return ErrNFTAccountEmpty
		}
		return nil
	}
	return ErrInvalidCustodyMode
}

// lockAsset moves the asset into custody, authorized by the owner.
func (s *Staker) lockAsset(ss *session, p StakeParams) error {
	env := ss.env
	switch ss.pool.Custody {
	case pool.CustodyVault:
		if _, err := s.ledger.GetAccount(p.Vault); err != nil {
			if !errors.Is(err, token.ErrAccountNotFound) {
				return err
			}
			if err := s.ledger.InitAccount(env, p.Vault, p.Asset, ss.params.StakeAccount); err != nil {
				return err
			}
		}
		if err := s.ledger.Transfer(env, p.Asset, 1, p.AssetAccount, p.Vault, token.SignerAuthority(p.Owner)); err != nil {
			return err
		}
	case pool.CustodyAuthority:
		if err := s.ledger.SetAuthority(env, p.AssetAccount, token.SignerAuthority(p.Owner), ss.params.StakeAccount); err != nil {
			return err
		}
	default:
		return ErrInvalidCustodyMode
	}
	metricCustody().AddWithLabel(1, map[string]string{"mode": ss.pool.Custody.String(), "direction": "lock"})
	return nil
}

// releaseAsset returns the asset to the owner, authorized by the stake account's derivation.
func (s *Staker) releaseAsset(ss *session, p UnstakeParams) error {
	env := ss.env
	proof := token.ProofAuthority(s.stakeAccountProof(ss))
	switch ss.pool.Custody {
	case pool.CustodyVault:
		if err := s.ledger.Transfer(env, p.Asset, 1, p.Vault, p.AssetAccount, proof); err != nil {
			return err
		}
	case pool.CustodyAuthority:
		if err := s.ledger.SetAuthority(env, p.AssetAccount, proof, p.Owner); err != nil {
			return err
		}
	default:
		return ErrInvalidCustodyMode
	}
	metricCustody().AddWithLabel(1, map[string]string{"mode": ss.pool.Custody.String(), "direction": "release"})
	return nil
}
