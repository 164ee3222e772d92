// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fullVersion()
	app.Name = "nftstake"
	app.Usage = "NFT staking rewards ledger"
	app.Copyright = "2025 VeChain Foundation <https://vechain.org/>"
	app.Flags = []cli.Flag{
		dataDirFlag,
		configFlag,
		cacheFlag,
		verbosityFlag,
		jsonLogsFlag,
		signerFlag,
		timeFlag,
	}
	app.Commands = []cli.Command{
		{
			Name:  "token",
			Usage: "manage mints and token accounts",
			Subcommands: []cli.Command{
				{
					Name:   "create-mint",
					Usage:  "create a mint, the mint address must sign",
					Flags:  []cli.Flag{mintFlag, authorityFlag, decimalsFlag},
					Action: createMintAction,
				},
				{
					Name:   "create-account",
					Usage:  "create the associated token account of an owner",
					Flags:  []cli.Flag{mintFlag, ownerFlag},
					Action: createAccountAction,
				},
				{
					Name:   "mint",
					Usage:  "issue tokens, the mint authority must sign",
					Flags:  []cli.Flag{mintFlag, toFlag, amountFlag},
					Action: mintToAction,
				},
			},
		},
		{
			Name:  "metadata",
			Usage: "manage asset descriptors",
			Subcommands: []cli.Command{
				{
					Name:   "register",
					Usage:  "register the descriptor of an asset from a YAML file; the first registration is signed by the mint authority",
					Flags:  []cli.Flag{assetFlag, fileFlag},
					Action: registerMetadataAction,
				},
			},
		},
		{
			Name:  "pool",
			Usage: "manage reward pools",
			Subcommands: []cli.Command{
				{
					Name:      "authority",
					Usage:     "print the derived authority of a pool name",
					ArgsUsage: "<name>",
					Action:    poolAuthorityAction,
				},
				{
					Name:   "create",
					Usage:  "create a pool from a YAML file, the admin must sign",
					Flags:  []cli.Flag{fileFlag},
					Action: createPoolAction,
				},
				{
					Name:   "get",
					Usage:  "print a pool",
					Flags:  []cli.Flag{poolFlag},
					Action: getPoolAction,
				},
				{
					Name:   "update-rate",
					Usage:  "change the reward rate, the admin must sign",
					Flags:  []cli.Flag{poolFlag, rateFlag},
					Action: updateRateAction,
				},
			},
		},
		{
			Name:  "account",
			Usage: "manage stake accounts",
			Subcommands: []cli.Command{
				{
					Name:   "create",
					Usage:  "create the stake account of an owner, the owner must sign",
					Flags:  []cli.Flag{poolFlag, ownerFlag},
					Action: createStakeAccountAction,
				},
			},
		},
		{
			Name:   "stake",
			Usage:  "stake an asset, the owner must sign",
			Flags:  []cli.Flag{poolFlag, ownerFlag, assetFlag},
			Action: stakeAction,
		},
		{
			Name:   "unstake",
			Usage:  "unstake an asset, the owner must sign",
			Flags:  []cli.Flag{poolFlag, ownerFlag, assetFlag},
			Action: unstakeAction,
		},
		{
			Name:   "claim",
			Usage:  "claim pending rewards, the owner must sign",
			Flags:  []cli.Flag{poolFlag, ownerFlag},
			Action: claimAction,
		},
		{
			Name:  "serve",
			Usage: "serve the read API",
			Flags: []cli.Flag{
				apiAddrFlag,
				apiCorsFlag,
				enableAPILogsFlag,
				apiSlowQueriesThresholdFlag,
				enableMetricsFlag,
			},
			Action: serveAction,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
