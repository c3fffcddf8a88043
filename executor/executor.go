// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package executor hosts the staking engine: it serializes invocations,
// commits the state of the successful ones and journals what they did.
package executor

import (
	"context"
	"sync"
	"time"

	"github.com/pborman/uuid"
	"github.com/pkg/errors"

	"github.com/vechain/fungstake/builtin/reverts"
	"github.com/vechain/fungstake/builtin/staking"
	"github.com/vechain/fungstake/builtin/token"
	"github.com/vechain/fungstake/common"
	"github.com/vechain/fungstake/kv"
	"github.com/vechain/fungstake/log"
	"github.com/vechain/fungstake/logdb"
	"github.com/vechain/fungstake/state"
)

var logger = log.WithContext("pkg", "executor")

// DefaultProgram is the address staking records are derived from.
var DefaultProgram = common.BytesToAddress([]byte("FungStake"))

// Clock returns the current unix time in seconds.
type Clock func() uint64

// SystemClock reads the wall clock.
func SystemClock() uint64 {
	return uint64(time.Now().Unix())
}

// FixedClock always returns t.
func FixedClock(t uint64) Clock {
	return func() uint64 { return t }
}

type Options struct {
	Program   common.Address // DefaultProgram if zero
	CacheSize int            // committed slots cached
	Clock     Clock          // SystemClock if nil
	LogDB     *logdb.LogDB   // journal, optional
}

// Context is handed to every invocation.
type Context struct {
	ID     string
	Now    uint64
	Engine *staking.Engine
	Ledger *token.Ledger
}

// Executor runs one invocation at a time over the committed state.
type Executor struct {
	lock    sync.Mutex
	stater  *state.Stater
	program common.Address
	clock   Clock
	logDB   *logdb.LogDB
}

func New(store kv.Store, opts Options) (*Executor, error) {
	if opts.Program.IsZero() {
		opts.Program = DefaultProgram
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 4096
	}
	stater, err := state.NewStater(store, opts.CacheSize)
	if err != nil {
		return nil, err
	}
	return &Executor{
		stater:  stater,
		program: opts.Program,
		clock:   opts.Clock,
		logDB:   opts.LogDB,
	}, nil
}

func (e *Executor) Program() common.Address {
	return e.program
}

// Execute runs fn as the invocation named op. The state changes of fn are
// committed only if it succeeds, then its events and transfers are journaled.
func (e *Executor) Execute(ctx context.Context, op string, fn func(*Context) error) error {
	return e.run(ctx, op, true, fn)
}

// View runs fn over the committed state and discards any change it makes.
func (e *Executor) View(ctx context.Context, fn func(*Context) error) error {
	return e.run(ctx, "view", false, fn)
}

func (e *Executor) run(ctx context.Context, op string, commit bool, fn func(*Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.lock.Lock()
	defer e.lock.Unlock()

	startTime := time.Now()
	st := e.stater.NewState()
	ledger := token.New(token.Address, st)
	ectx := &Context{
		ID:     uuid.New(),
		Now:    e.clock(),
		Engine: staking.New(e.program, st, ledger),
		Ledger: ledger,
	}
	oplog := logger.New("op", op, "id", ectx.ID)
	oplog.Debug("executing", "now", ectx.Now)

	if err := fn(ectx); err != nil {
		status := "failed"
		if reverts.IsRevertErr(err) {
			status = "reverted"
			oplog.Debug("reverted", "code", reverts.CodeOf(err), "err", err)
		} else {
			oplog.Warn("failed", "err", err)
		}
		observe(op, status, startTime, nil)
		return err
	}
	if !commit {
		return nil
	}

	stage := st.Stage()
	if err := stage.Commit(); err != nil {
		observe(op, "failed", startTime, nil)
		return errors.Wrap(err, "commit state")
	}

	if e.logDB != nil {
		if err := e.journal(ectx); err != nil {
			// the state is already committed, the journal only lags behind
			oplog.Error("failed to journal", "err", err)
		}
	}

	written := ectx.Engine.Usage().Writes + ectx.Ledger.Usage().Writes
	observe(op, "ok", startTime, &written)
	observeCache(e.stater.CacheStats())
	oplog.Debug("committed", "changes", stage.Len(), "hash", stage.Hash().AbbrevString(),
		"elapsed", time.Since(startTime),
	)
	return nil
}

func (e *Executor) journal(ectx *Context) error {
	batch := e.logDB.NewBatch(ectx.ID, ectx.Now)
	for _, ev := range ectx.Engine.Events() {
		batch.AddEvent(string(ev.Type), ev.Config, ev.Vault, ev.Account, ev.Amount)
	}
	for _, tr := range ectx.Ledger.Transfers() {
		batch.AddTransfer(tr.Asset, tr.From, tr.To, tr.Amount)
	}
	return batch.Commit()
}
