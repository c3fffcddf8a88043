// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/ntp"
	"github.com/elastic/gosigar"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/fungstake/common"
	"github.com/vechain/fungstake/executor"
	"github.com/vechain/fungstake/log"
	"github.com/vechain/fungstake/logdb"
	"github.com/vechain/fungstake/lvldb"
)

// maxClockOffset is the drift tolerated before warning.
const maxClockOffset = 5 * time.Second

func initLogger(ctx *cli.Context) {
	lvl := log.FromLegacyLevel(ctx.GlobalInt(verbosityFlag.Name))

	var handler slog.Handler
	if ctx.GlobalBool(jsonLogsFlag.Name) {
		handler = log.JSONHandler(os.Stderr, lvl)
	} else {
		useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
		handler = log.NewTerminalHandler(os.Stderr, lvl, useColor)
	}
	log.SetDefault(handler)
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "org.vechain.fungstake")
		}
		return filepath.Join(home, ".org.vechain.fungstake")
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

func makeDataDir(ctx *cli.Context) (string, error) {
	dataDir := ctx.GlobalString(dataDirFlag.Name)
	if dataDir == "" {
		return "", errors.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return "", errors.Wrapf(err, "create data dir [%v]", dataDir)
	}
	return dataDir, nil
}

func openStateDB(dir string, cacheMB int) (*lvldb.LevelDB, error) {
	path := filepath.Join(dir, "state.db")
	db, err := lvldb.New(path, lvldb.Options{CacheSize: cacheMB, OpenFilesCacheCapacity: 64})
	if err != nil {
		return nil, errors.Wrapf(err, "open state database [%v]", path)
	}
	return db, nil
}

func normalizeCacheSize(sizeMB int) int {
	if sizeMB < 16 {
		sizeMB = 16
	}

	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		log.Warn("failed to get total mem:", "err", err)
	} else {
		// limit to 1/4 os physical ram
		limitMB := int(mem.Total / 1024 / 1024 / 4)
		if sizeMB > limitMB {
			sizeMB = limitMB
			log.Warn("cache size(MB) limited", "limit", limitMB)
		}
	}
	return sizeMB
}

func openLogDB(dir string) (*logdb.LogDB, error) {
	path := filepath.Join(dir, "journal.db")
	db, err := logdb.New(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open journal database [%v]", path)
	}
	return db, nil
}

func selectClock(ctx *cli.Context) executor.Clock {
	if ctx.GlobalIsSet(nowFlag.Name) {
		return executor.FixedClock(ctx.GlobalUint64(nowFlag.Name))
	}
	return executor.SystemClock
}

func selectProgram(ctx *cli.Context) (common.Address, error) {
	s := ctx.GlobalString(programFlag.Name)
	if s == "" {
		return executor.DefaultProgram, nil
	}
	addr, err := common.ParseAddress(s)
	if err != nil {
		return common.Address{}, errors.Wrapf(err, "parse -%s", programFlag.Name)
	}
	return addr, nil
}

// checkClockOffset warns if the local clock drifts from the NTP pool.
// Failing to reach the pool is not an error.
func checkClockOffset() {
	resp, err := ntp.Query("pool.ntp.org")
	if err != nil {
		log.Root().Debug("failed to access NTP", "err", err)
		return
	}
	offset := resp.ClockOffset
	if offset < 0 {
		offset = -offset
	}
	if offset > maxClockOffset {
		log.Warn("clock offset detected", "offset", resp.ClockOffset)
	}
}

// requireAddress parses the address carried by a flag, which must be set.
func requireAddress(ctx *cli.Context, flag cli.StringFlag) (common.Address, error) {
	s := ctx.String(flag.Name)
	if s == "" {
		return common.Address{}, errors.Errorf("missing -%s", flag.Name)
	}
	addr, err := common.ParseAddress(s)
	if err != nil {
		return common.Address{}, errors.Wrapf(err, "parse -%s", flag.Name)
	}
	return addr, nil
}

// optionalAddress parses the address carried by a flag, nil if unset.
func optionalAddress(ctx *cli.Context, flag cli.StringFlag) (*common.Address, error) {
	if ctx.String(flag.Name) == "" {
		return nil, nil
	}
	addr, err := requireAddress(ctx, flag)
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

// parseSeconds accepts either a plain number of seconds or a Go duration.
func parseSeconds(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return n, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.Errorf("invalid duration %q", s)
	}
	if d < 0 {
		return 0, errors.Errorf("negative duration %q", s)
	}
	if d%time.Second != 0 {
		return 0, errors.Errorf("duration %q is not a whole number of seconds", s)
	}
	return uint64(d / time.Second), nil
}

func printKV(w io.Writer, pairs ...any) {
	for i := 0; i+1 < len(pairs); i += 2 {
		fmt.Fprintf(w, "%-16s %v\n", fmt.Sprint(pairs[i])+":", pairs[i+1])
	}
}
