// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/fungstake/log"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for the state and journal databases",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: log.LegacyLevelInfo,
		Usage: "log verbosity (0-9)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	programFlag = cli.StringFlag{
		Name:  "program",
		Usage: "address the staking records are derived from (default derived from 'FungStake')",
	}
	nowFlag = cli.Uint64Flag{
		Name:  "now",
		Usage: "unix time in seconds the operations run at (default wall clock)",
	}
	ntpCheckFlag = cli.BoolFlag{
		Name:  "ntp-check",
		Usage: "warn if the local clock drifts from pool.ntp.org",
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
	cacheFlag = cli.IntFlag{
		Name:  "cache",
		Value: 4096,
		Usage: "number of committed state slots kept in memory",
	}
	dbCacheFlag = cli.IntFlag{
		Name:  "db-cache",
		Value: 32,
		Usage: "megabytes of memory allocated to the state database",
	}

	signerFlag = cli.StringFlag{
		Name:  "signer",
		Usage: "address of the account authorizing the operation",
	}
	stakeAssetFlag = cli.StringFlag{
		Name:  "stake-asset",
		Usage: "address of the staked asset",
	}
	rewardAssetFlag = cli.StringFlag{
		Name:  "reward-asset",
		Usage: "address of the reward asset",
	}
	assetFlag = cli.StringFlag{
		Name:  "asset",
		Usage: "address of the asset",
	}
	toFlag = cli.StringFlag{
		Name:  "to",
		Usage: "address of the recipient",
	}
	amountFlag = cli.Uint64Flag{
		Name:  "amount",
		Usage: "amount in base units",
	}
	lockPeriodFlag = cli.StringFlag{
		Name:  "lock-period",
		Usage: "lock applied to every stake, in seconds or as a duration (e.g. 720h)",
	}
	lockExtendTimeFlag = cli.StringFlag{
		Name:  "lock-extend-time",
		Usage: "time between reaching the soft cap and the vault end, in seconds or as a duration",
	}
	softCapFlag = cli.Uint64Flag{
		Name:  "soft-cap",
		Usage: "total stake that locks the vault",
	}
	policyFlag = cli.StringFlag{
		Name:  "policy",
		Usage: "path of a YAML policy file, replaces the other config flags",
	}
	stakerFlag = cli.StringFlag{
		Name:  "staker",
		Usage: "address of a staker whose position is shown",
	}
	rawFlag = cli.BoolFlag{
		Name:  "raw",
		Usage: "dump the raw records",
	}
	vaultFlag = cli.StringFlag{
		Name:  "vault",
		Usage: "filter by vault address",
	}
	accountFlag = cli.StringFlag{
		Name:  "account",
		Usage: "filter by account address",
	}
	typeFlag = cli.StringFlag{
		Name:  "type",
		Usage: "filter by event type",
	}
	transfersFlag = cli.BoolFlag{
		Name:  "transfers",
		Usage: "list ledger transfers instead of staking events",
	}
	limitFlag = cli.Uint64Flag{
		Name:  "limit",
		Value: 100,
		Usage: "maximum number of rows",
	}
	descFlag = cli.BoolFlag{
		Name:  "desc",
		Usage: "newest rows first",
	}
)
