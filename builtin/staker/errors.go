// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import "github.com/vechain/nftstake/builtin/reverts"

var (
	ErrMissingSignature            = reverts.New(reverts.Authorization, "missing required signature")
	ErrRewarderNotMintAuthority    = reverts.New(reverts.Authorization, "pool authority is not the reward mint authority")
	ErrInvalidPoolAdmin            = reverts.New(reverts.Authorization, "invalid pool admin")
	ErrInvalidOwnerForStakeAccount = reverts.New(reverts.Authorization, "invalid owner for stake account")
	ErrInvalidStakeAccount         = reverts.New(reverts.Authorization, "stake account address mismatch")
	ErrInvalidOwnerForRewardToken  = reverts.New(reverts.Authorization, "invalid owner for reward token account")
	ErrInvalidNFTOwner             = reverts.New(reverts.Authorization, "invalid nft owner")
	ErrInvalidNFTVaultAddress      = reverts.New(reverts.Authorization, "invalid nft vault address")
	ErrInvalidStakedNFTOwner       = reverts.New(reverts.Authorization, "staked nft is not owned by the stake account")

	ErrPoolExists                = reverts.New(reverts.Consistency, "pool already exists")
	ErrPoolNotFound              = reverts.New(reverts.Consistency, "pool not found")
	ErrStakeAccountExists        = reverts.New(reverts.Consistency, "stake account already exists")
	ErrStakeAccountNotFound      = reverts.New(reverts.Consistency, "stake account not found")
	ErrInvalidPool               = reverts.New(reverts.Consistency, "stake account belongs to another pool")
	ErrInvalidCustodyMode        = reverts.New(reverts.Consistency, "invalid custody mode")
	ErrInvalidRewardMint         = reverts.New(reverts.Consistency, "invalid reward mint")
	ErrInvalidRewardTokenAccount = reverts.New(reverts.Consistency, "invalid reward token account")
	ErrInvalidNFTMintSupply      = reverts.New(reverts.Consistency, "nft mint supply must be one")
	ErrInvalidNFTAccountMint     = reverts.New(reverts.Consistency, "nft account mint mismatch")
	ErrNFTAccountEmpty           = reverts.New(reverts.Consistency, "nft account is empty")
	ErrNFTVaultEmpty             = reverts.New(reverts.Consistency, "nft vault is empty")

	ErrStakedOverflow = reverts.New(reverts.Arithmetic, "staked count overflow")
)
