// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/nftstake/builtin/staker"
	"github.com/vechain/nftstake/builtin/token"
	"github.com/vechain/nftstake/processor"
	"github.com/vechain/nftstake/thor"
	"github.com/vechain/nftstake/xenv"
)

func createMintAction(ctx *cli.Context) error {
	initLogger(ctx)
	mint, err := addressFlag(ctx, mintFlag)
	if err != nil {
		return err
	}
	authority, err := addressFlag(ctx, authorityFlag)
	if err != nil {
		return err
	}
	decimals := ctx.Uint(decimalsFlag.Name)
	if decimals > 255 {
		return errors.New("decimals out of range")
	}
	return execute(ctx, "create-mint", func(env *xenv.Environment, p *processor.Programs) error {
		return p.Token.CreateMint(env, mint, authority, uint8(decimals))
	})
}

func createAccountAction(ctx *cli.Context) error {
	initLogger(ctx)
	mint, err := addressFlag(ctx, mintFlag)
	if err != nil {
		return err
	}
	owner, err := addressFlag(ctx, ownerFlag)
	if err != nil {
		return err
	}
	return execute(ctx, "create-account", func(env *xenv.Environment, p *processor.Programs) error {
		addr, err := p.Token.CreateAssociatedAccount(env, owner, mint)
		if err != nil {
			return err
		}
		logger.Info("token account created", "account", addr)
		return nil
	})
}

func mintToAction(ctx *cli.Context) error {
	initLogger(ctx)
	mint, err := addressFlag(ctx, mintFlag)
	if err != nil {
		return err
	}
	to, err := addressFlag(ctx, toFlag)
	if err != nil {
		return err
	}
	amount := ctx.Uint64(amountFlag.Name)
	return execute(ctx, "mint", func(env *xenv.Environment, p *processor.Programs) error {
		m, err := p.Token.GetMint(mint)
		if err != nil {
			return err
		}
		return p.Token.MintTo(env, mint, amount, to, token.SignerAuthority(m.MintAuthority))
	})
}

func registerMetadataAction(ctx *cli.Context) error {
	initLogger(ctx)
	asset, err := addressFlag(ctx, assetFlag)
	if err != nil {
		return err
	}
	path := ctx.String(fileFlag.Name)
	if path == "" {
		return errors.New("missing -file")
	}
	rec, err := loadMetadataFile(path)
	if err != nil {
		return err
	}
	return execute(ctx, "register-metadata", func(env *xenv.Environment, p *processor.Programs) error {
		_, err := p.Metadata.Register(env, asset, *rec)
		return err
	})
}

func createPoolAction(ctx *cli.Context) error {
	initLogger(ctx)
	path := ctx.String(fileFlag.Name)
	if path == "" {
		return errors.New("missing -file")
	}
	pf, err := loadPoolFile(path)
	if err != nil {
		return err
	}
	return execute(ctx, "create-pool", func(env *xenv.Environment, p *processor.Programs) error {
		poolAddr, _, err := p.Staker.PoolAddress(pf.Name)
		if err != nil {
			return err
		}
		_, nonce, err := p.Staker.PoolAuthority(poolAddr)
		if err != nil {
			return err
		}
		if _, err := p.Staker.CreatePool(env, staker.CreatePoolParams{
			Name:           pf.Name,
			Admin:          pf.Admin,
			RewardMint:     pf.RewardMint,
			AuthorityNonce: nonce,
			RewardRate:     pf.RewardRate,
			Policy:         pf.Policy,
			Custody:        pf.Custody,
		}); err != nil {
			return err
		}
		logger.Info("pool created", "pool", poolAddr)
		return nil
	})
}

// poolAuthorityAction prints the address a reward mint authority must be handed to before pool creation.
func poolAuthorityAction(ctx *cli.Context) error {
	initLogger(ctx)
	name := ctx.Args().First()
	if name == "" {
		return errors.New("missing pool name")
	}
	return view(ctx, func(p *processor.Programs) (any, error) {
		poolAddr, _, err := p.Staker.PoolAddress(name)
		if err != nil {
			return nil, err
		}
		authority, nonce, err := p.Staker.PoolAuthority(poolAddr)
		if err != nil {
			return nil, err
		}
		return map[string]any{"pool": poolAddr, "authority": authority, "nonce": nonce}, nil
	})
}

func getPoolAction(ctx *cli.Context) error {
	initLogger(ctx)
	poolAddr, err := addressFlag(ctx, poolFlag)
	if err != nil {
		return err
	}
	return view(ctx, func(p *processor.Programs) (any, error) {
		pl, err := p.Staker.GetPool(poolAddr)
		if err != nil {
			return nil, err
		}
		if pl == nil {
			return nil, staker.ErrPoolNotFound
		}
		return pl, nil
	})
}

func updateRateAction(ctx *cli.Context) error {
	initLogger(ctx)
	poolAddr, err := addressFlag(ctx, poolFlag)
	if err != nil {
		return err
	}
	rate := ctx.Uint64(rateFlag.Name)
	return execute(ctx, "update-rate", func(env *xenv.Environment, p *processor.Programs) error {
		return p.Staker.UpdateRewardRate(env, poolAddr, rate)
	})
}

func createStakeAccountAction(ctx *cli.Context) error {
	initLogger(ctx)
	poolAddr, err := addressFlag(ctx, poolFlag)
	if err != nil {
		return err
	}
	owner, err := addressFlag(ctx, ownerFlag)
	if err != nil {
		return err
	}
	return execute(ctx, "create-stake-account", func(env *xenv.Environment, p *processor.Programs) error {
		addr, err := p.Staker.CreateStakeAccount(env, owner, poolAddr)
		if err != nil {
			return err
		}
		logger.Info("stake account created", "account", addr)
		return nil
	})
}

// claimParams resolves the canonical stake account and reward slot of owner.
func claimParams(p *processor.Programs, poolAddr, owner thor.Address) (staker.ClaimParams, error) {
	pl, err := p.Staker.GetPool(poolAddr)
	if err != nil {
		return staker.ClaimParams{}, err
	}
	if pl == nil {
		return staker.ClaimParams{}, staker.ErrPoolNotFound
	}
	stakeAccount, _, err := p.Staker.StakeAccountAddress(poolAddr, owner)
	if err != nil {
		return staker.ClaimParams{}, err
	}
	dest, err := p.Token.AssociatedAddress(owner, pl.RewardMint)
	if err != nil {
		return staker.ClaimParams{}, err
	}
	return staker.ClaimParams{
		Owner:             owner,
		Pool:              poolAddr,
		StakeAccount:      stakeAccount,
		RewardDestination: dest,
	}, nil
}

func stakeParams(p *processor.Programs, poolAddr, owner, asset thor.Address) (staker.StakeParams, error) {
	cp, err := claimParams(p, poolAddr, owner)
	if err != nil {
		return staker.StakeParams{}, err
	}
	slot, err := p.Token.AssociatedAddress(owner, asset)
	if err != nil {
		return staker.StakeParams{}, err
	}
	vault, err := p.Staker.VaultAddress(cp.StakeAccount, asset)
	if err != nil {
		return staker.StakeParams{}, err
	}
	return staker.StakeParams{
		ClaimParams:  cp,
		Asset:        asset,
		AssetAccount: slot,
		Vault:        vault,
	}, nil
}

func custodyAction(name string, fn func(*staker.Staker, *xenv.Environment, staker.StakeParams) (uint64, error)) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		initLogger(ctx)
		poolAddr, err := addressFlag(ctx, poolFlag)
		if err != nil {
			return err
		}
		owner, err := addressFlag(ctx, ownerFlag)
		if err != nil {
			return err
		}
		asset, err := addressFlag(ctx, assetFlag)
		if err != nil {
			return err
		}
		return execute(ctx, name, func(env *xenv.Environment, p *processor.Programs) error {
			sp, err := stakeParams(p, poolAddr, owner, asset)
			if err != nil {
				return err
			}
			reward, err := fn(p.Staker, env, sp)
			if err != nil {
				return err
			}
			logger.Info("rewards settled", "op", name, "reward", reward)
			return nil
		})
	}
}

var (
	stakeAction   = custodyAction("stake", (*staker.Staker).Stake)
	unstakeAction = custodyAction("unstake", (*staker.Staker).Unstake)
)

func claimAction(ctx *cli.Context) error {
	initLogger(ctx)
	poolAddr, err := addressFlag(ctx, poolFlag)
	if err != nil {
		return err
	}
	owner, err := addressFlag(ctx, ownerFlag)
	if err != nil {
		return err
	}
	return execute(ctx, "claim", func(env *xenv.Environment, p *processor.Programs) error {
		cp, err := claimParams(p, poolAddr, owner)
		if err != nil {
			return err
		}
		reward, err := p.Staker.Claim(env, cp)
		if err != nil {
			return err
		}
		logger.Info("rewards settled", "op", "claim", "reward", reward)
		return nil
	})
}
