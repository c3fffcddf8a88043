// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/fungstake/executor"
	"github.com/vechain/fungstake/log"
	"github.com/vechain/fungstake/logdb"
	"github.com/vechain/fungstake/metrics"
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

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Version:   fullVersion(),
		Name:      "fungstake",
		Usage:     "Pooled token staking vaults",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			dataDirFlag,
			verbosityFlag,
			jsonLogsFlag,
			programFlag,
			nowFlag,
			ntpCheckFlag,
			cacheFlag,
			dbCacheFlag,
			enableMetricsFlag,
			metricsAddrFlag,
		},
		Commands: []cli.Command{
			{
				Name:   "init-config",
				Usage:  "initialize the staking config of a stake asset",
				Flags:  []cli.Flag{signerFlag, stakeAssetFlag, lockPeriodFlag, lockExtendTimeFlag, softCapFlag, policyFlag},
				Action: initConfigAction,
			},
			{
				Name:   "create-vault",
				Usage:  "open the vault of a stake asset and reward asset pair",
				Flags:  []cli.Flag{signerFlag, stakeAssetFlag, rewardAssetFlag},
				Action: createVaultAction,
			},
			{
				Name:   "mint",
				Usage:  "credit an account with an asset",
				Flags:  []cli.Flag{assetFlag, toFlag, amountFlag},
				Action: mintAction,
			},
			{
				Name:   "fund",
				Usage:  "credit the reward pool of a vault",
				Flags:  []cli.Flag{stakeAssetFlag, rewardAssetFlag, amountFlag},
				Action: fundAction,
			},
			{
				Name:   "stake",
				Usage:  "stake into a vault",
				Flags:  []cli.Flag{signerFlag, stakeAssetFlag, rewardAssetFlag, amountFlag},
				Action: stakeAction,
			},
			{
				Name:   "destake",
				Usage:  "withdraw staked principal from a vault",
				Flags:  []cli.Flag{signerFlag, stakeAssetFlag, rewardAssetFlag, amountFlag},
				Action: destakeAction,
			},
			{
				Name:   "claim",
				Usage:  "claim the reward share of a position",
				Flags:  []cli.Flag{signerFlag, stakeAssetFlag, rewardAssetFlag},
				Action: claimAction,
			},
			{
				Name:   "inspect",
				Usage:  "show a vault and optionally a position",
				Flags:  []cli.Flag{stakeAssetFlag, rewardAssetFlag, stakerFlag, rawFlag},
				Action: inspectAction,
			},
			{
				Name:   "history",
				Usage:  "list journaled events or transfers",
				Flags:  []cli.Flag{vaultFlag, accountFlag, typeFlag, assetFlag, transfersFlag, limitFlag, descFlag},
				Action: historyAction,
			},
			{
				Name:      "run",
				Usage:     "replay a YAML script of operations",
				ArgsUsage: "<script.yaml>",
				Action:    runAction,
			},
		},
	}
}

// instance holds what every command works on.
type instance struct {
	ctx    context.Context
	exec   *executor.Executor
	logDB  *logdb.LogDB
	closer []func()
}

func (in *instance) Close() {
	for i := len(in.closer) - 1; i >= 0; i-- {
		in.closer[i]()
	}
}

func openInstance(ctx *cli.Context, clock executor.Clock) (*instance, error) {
	initLogger(ctx)

	exitCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	in := &instance{ctx: exitCtx, closer: []func(){cancel}}
	ok := false
	defer func() {
		if !ok {
			in.Close()
		}
	}()

	if ctx.GlobalBool(ntpCheckFlag.Name) {
		checkClockOffset()
	}

	if ctx.GlobalBool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		url, stop, err := startMetricsServer(ctx.GlobalString(metricsAddrFlag.Name))
		if err != nil {
			return nil, err
		}
		log.Info("metrics server started", "url", url)
		in.closer = append(in.closer, func() { log.Info("stopping metrics server..."); stop() })
	}

	dataDir, err := makeDataDir(ctx)
	if err != nil {
		return nil, err
	}
	stateDB, err := openStateDB(dataDir, normalizeCacheSize(ctx.GlobalInt(dbCacheFlag.Name)))
	if err != nil {
		return nil, err
	}
	in.closer = append(in.closer, func() { stateDB.Close() })

	if in.logDB, err = openLogDB(dataDir); err != nil {
		return nil, err
	}
	in.closer = append(in.closer, func() { in.logDB.Close() })

	program, err := selectProgram(ctx)
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = selectClock(ctx)
	}
	in.exec, err = executor.New(stateDB, executor.Options{
		Program:   program,
		CacheSize: ctx.GlobalInt(cacheFlag.Name),
		Clock:     clock,
		LogDB:     in.logDB,
	})
	if err != nil {
		return nil, err
	}
	ok = true
	return in, nil
}
