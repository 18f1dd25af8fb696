// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"time"

	cli "gopkg.in/urfave/cli.v1"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for the state database",
	}
	persistFlag = cli.BoolFlag{
		Name:  "persist",
		Usage: "keep the state on disk under data-dir, in memory otherwise",
	}
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to a yaml file overriding the default creator staking parameters",
	}
	genesisFlag = cli.StringFlag{
		Name:  "genesis",
		Usage: "path to a yaml genesis file, development accounts are endowed if not set",
	}
	cacheFlag = cli.IntFlag{
		Name:  "cache",
		Value: 1024,
		Usage: "megabytes of ram allocated to the state database cache",
	}
	blockIntervalFlag = cli.DurationFlag{
		Name:  "block-interval",
		Value: 12 * time.Second,
		Usage: "interval between two blocks",
	}
	maxExtrinsicsFlag = cli.IntFlag{
		Name:  "max-extrinsics",
		Value: 1000,
		Usage: "maximum number of extrinsics in a block",
	}
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
	apiDevExtrinsicsFlag = cli.BoolFlag{
		Name:  "api-dev-extrinsics",
		Usage: "accept unsigned extrinsics on POST /extrinsics, never enable on a public network",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	apiSlowQueriesThresholdFlag = cli.DurationFlag{
		Name:  "api-slow-queries-threshold",
		Usage: "log API requests slower than the threshold, 0 disables it",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-5)",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics service listening address",
	}
)
