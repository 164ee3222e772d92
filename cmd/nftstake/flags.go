// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for the ledger database",
	}
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to the YAML file of program ids",
	}
	cacheFlag = cli.IntFlag{
		Name:  "cache",
		Value: 128,
		Usage: "megabytes of ram allocated to the database cache",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-5)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	signerFlag = cli.StringSliceFlag{
		Name:  "signer",
		Usage: "identity authorizing the operation, repeatable",
	}
	timeFlag = cli.Uint64Flag{
		Name:  "time",
		Usage: "execution time in unix seconds, defaults to the wall clock",
	}

	// operation arguments
	mintFlag = cli.StringFlag{
		Name:  "mint",
		Usage: "address of the mint",
	}
	authorityFlag = cli.StringFlag{
		Name:  "authority",
		Usage: "address of the mint authority",
	}
	decimalsFlag = cli.UintFlag{
		Name:  "decimals",
		Usage: "decimals of the mint",
	}
	ownerFlag = cli.StringFlag{
		Name:  "owner",
		Usage: "address of the owner",
	}
	toFlag = cli.StringFlag{
		Name:  "to",
		Usage: "destination token account",
	}
	amountFlag = cli.Uint64Flag{
		Name:  "amount",
		Usage: "token amount",
	}
	assetFlag = cli.StringFlag{
		Name:  "asset",
		Usage: "mint address of the non-fungible asset",
	}
	fileFlag = cli.StringFlag{
		Name:  "file",
		Usage: "path to a YAML definition",
	}
	poolFlag = cli.StringFlag{
		Name:  "pool",
		Usage: "address of the pool",
	}
	rateFlag = cli.Uint64Flag{
		Name:  "rate",
		Usage: "reward tokens per second per staked asset",
	}

	// serve
	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8669",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	apiSlowQueriesThresholdFlag = cli.Uint64Flag{
		Name:  "api-slow-queries-threshold",
		Usage: "all queries with execution time(ms) above threshold will be logged",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection, served on /metrics of the API",
	}
)
