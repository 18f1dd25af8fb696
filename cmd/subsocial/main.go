// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/dappforce/subsocial-go/api"
	"github.com/dappforce/subsocial-go/log"
	"github.com/dappforce/subsocial-go/metrics"
	"github.com/dappforce/subsocial-go/runtime"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "node")
)

const poolLimit = 10_000

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version: fullVersion(),
		Name:    "Subsocial",
		Usage:   "Single authority node running the Subsocial creator staking runtime",
		Flags: []cli.Flag{
			dataDirFlag,
			persistFlag,
			configFlag,
			genesisFlag,
			cacheFlag,
			blockIntervalFlag,
			maxExtrinsicsFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiDevExtrinsicsFlag,
			enableAPILogsFlag,
			apiSlowQueriesThresholdFlag,
			verbosityFlag,
			enableMetricsFlag,
			metricsAddrFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	initLogger(ctx)

	metricsURL := "Disabled"
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		url, stop := startMetricsServer(ctx)
		defer func() { logger.Info("stopping metrics server..."); stop() }()
		metricsURL = url
	}

	mainDB, dataDir := openMainDB(ctx)
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()

	rt := initRuntime(ctx, mainDB)
	pool := runtime.NewPool(poolLimit)

	opts := api.Options{
		AllowedOrigins:     ctx.String(apiCorsFlag.Name),
		EnableReqLogger:    ctx.Bool(enableAPILogsFlag.Name),
		SlowQueryThreshold: ctx.Duration(apiSlowQueriesThresholdFlag.Name),
		EnableMetrics:      ctx.Bool(enableMetricsFlag.Name),
	}
	if ctx.Bool(apiDevExtrinsicsFlag.Name) {
		opts.Pool = pool
	}
	apiURL, stopAPI := startAPIServer(ctx, api.New(rt, opts))
	defer func() { logger.Info("stopping API server..."); stopAPI() }()

	printStartupMessage(rt, dataDir, apiURL, metricsURL)

	group, groupCtx := errgroup.WithContext(handleExitSignal())
	group.Go(func() error {
		return (&producer{
			rt:            rt,
			pool:          pool,
			interval:      ctx.Duration(blockIntervalFlag.Name),
			maxExtrinsics: ctx.Int(maxExtrinsicsFlag.Name),
		}).Run(groupCtx)
	})
	return group.Wait()
}
