// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"math"
	"net"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/elastic/gosigar"
	"github.com/ethereum/go-ethereum/common/fdlimit"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/mattn/go-isatty"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/dappforce/subsocial-go/log"
	"github.com/dappforce/subsocial-go/lvldb"
	"github.com/dappforce/subsocial-go/metrics"
	"github.com/dappforce/subsocial-go/runtime"
	"github.com/dappforce/subsocial-go/subsocial"
)

func fatal(args ...any) {
	fmt.Fprint(os.Stderr, "Fatal: ")
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}

func initLogger(ctx *cli.Context) {
	log.Init(os.Stderr, ctx.Int(verbosityFlag.Name), isatty.IsTerminal(os.Stderr.Fd()))
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		return filepath.Join(home, ".subsocial")
	}
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func loadConfig(ctx *cli.Context) subsocial.Config {
	path := ctx.String(configFlag.Name)
	if path == "" {
		return subsocial.DefaultConfig()
	}
	cfg, err := subsocial.LoadConfig(path)
	if err != nil {
		fatal(fmt.Sprintf("load config [%v]: %v", path, err))
	}
	return cfg
}

func loadGenesis(ctx *cli.Context) *runtime.Genesis {
	path := ctx.String(genesisFlag.Name)
	if path == "" {
		return runtime.DevGenesis()
	}
	gene, err := runtime.LoadGenesis(path)
	if err != nil {
		fatal(fmt.Sprintf("load genesis [%v]: %v", path, err))
	}
	return gene
}

func openMainDB(ctx *cli.Context) (*lvldb.LevelDB, string) {
	if !ctx.Bool(persistFlag.Name) {
		db, err := lvldb.NewMem()
		if err != nil {
			fatal(fmt.Sprintf("open memory database: %v", err))
		}
		return db, "Memory"
	}

	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		fatal(fmt.Sprintf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name))
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		fatal(fmt.Sprintf("create data dir [%v]: %v", dataDir, err))
	}

	cacheMB := normalizeCacheSize(ctx.Int(cacheFlag.Name))
	logger.Debug("cache size(MB)", "size", cacheMB)

	// Ensure Go's GC ignores the database cache for trigger percentage
	gogc := math.Max(20, math.Min(100, 100/(float64(cacheMB)/1024)))
	logger.Debug("sanitize Go's GC trigger", "percent", int(gogc))
	debug.SetGCPercent(int(gogc))

	dir := filepath.Join(dataDir, "main.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              cacheMB,
		OpenFilesCacheCapacity: suggestFDCache(),
	})
	if err != nil {
		fatal(fmt.Sprintf("open state database [%v]: %v", dir, err))
	}
	return db, dataDir
}

func normalizeCacheSize(sizeMB int) int {
	if sizeMB < 128 {
		sizeMB = 128
	}

	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		logger.Warn("failed to get total mem:", "err", err)
	} else {
		// limit to 1/2 os physical ram
		limitMB := int(mem.Total / 1024 / 1024 / 2)
		if sizeMB > limitMB {
			sizeMB = limitMB
			logger.Warn("cache size(MB) limited", "limit", limitMB)
		}
	}
	return sizeMB
}

func suggestFDCache() int {
	limit, err := fdlimit.Current()
	if err != nil {
		fatal("failed to get fd limit:", err)
	}
	if limit <= 1024 {
		logger.Warn("low fd limit, increase it if possible", "limit", limit)
	}
	return min(limit/2, 5120)
}

func initRuntime(ctx *cli.Context, db *lvldb.LevelDB) *runtime.Runtime {
	rt, err := runtime.New(db, loadConfig(ctx))
	if err != nil {
		fatal(fmt.Sprintf("create runtime: %v", err))
	}
	initialized, err := rt.Initialized()
	if err != nil {
		fatal(fmt.Sprintf("read genesis state: %v", err))
	}
	if !initialized {
		if err := rt.InitGenesis(loadGenesis(ctx)); err != nil {
			fatal(fmt.Sprintf("init genesis: %v", err))
		}
	}
	return rt
}

func startServer(addr string, handler http.Handler) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, err
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	done := make(chan struct{})
	go func() {
		defer close(done)
		srv.Serve(listener)
	}()
	return "http://" + listener.Addr().String() + "/", func() {
		srv.Close()
		<-done
	}, nil
}

func startAPIServer(ctx *cli.Context, handler http.Handler) (string, func()) {
	addr := ctx.String(apiAddrFlag.Name)
	url, stop, err := startServer(addr, handler)
	if err != nil {
		fatal(fmt.Sprintf("listen API addr [%v]: %v", addr, err))
	}
	return url, stop
}

func startMetricsServer(ctx *cli.Context) (string, func()) {
	router := mux.NewRouter()
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())

	addr := ctx.String(metricsAddrFlag.Name)
	url, stop, err := startServer(addr, handlers.CompressHandler(router))
	if err != nil {
		fatal(fmt.Sprintf("listen metrics addr [%v]: %v", addr, err))
	}
	return url + "metrics", stop
}

// handleExitSignal returns a context canceled on the first interrupt.
func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func printStartupMessage(rt *runtime.Runtime, dataDir, apiURL, metricsURL string) {
	number, _ := rt.BlockNumber()
	era, _ := rt.CurrentEra()
	params := rt.Params()

	fmt.Printf(`Starting Subsocial creator staking node
    Best block   [ #%v ]
    Era          [ %v, %v blocks per era ]
    Reward       [ %v per block ]
    Data dir     [ %v ]
    API portal   [ %v ]
    Metrics      [ %v ]
`,
		number,
		era, params.BlockPerEra,
		params.RewardPerBlock.Dec(),
		dataDir,
		apiURL,
		metricsURL)
}
