// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"database/sql"
	"encoding/binary"
	"math"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/vechain/fungstake/common"
)

const (
	insertEventQuery    = "INSERT INTO event(opID, opIndex, time, type, config, vault, account, amount) VALUES (?, ?, ?, ?, ?, ?, ?, ?)"
	insertTransferQuery = "INSERT INTO transfer(opID, opIndex, time, asset, sender, recipient, amount) VALUES (?, ?, ?, ?, ?, ?, ?)"
	selectEventColumns  = "SELECT opID, opIndex, time, type, config, vault, account, amount FROM event"
	selectTransferCols  = "SELECT opID, opIndex, time, asset, sender, recipient, amount FROM transfer"
)

// LogDB journals committed staking events and ledger transfers.
type LogDB struct {
	path          string
	db            *sql.DB
	stmtCache     *stmtCache
	driverVersion string
}

// New create or open log db at given path.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()
	// one connection, so an in-memory db is shared by every statement
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(eventTableSchema + transferTableSchema); err != nil {
		return nil, errors.Wrap(err, "create log tables")
	}

	driverVer, _, _ := sqlite3.Version()
	return &LogDB{
		path:          path,
		db:            db,
		stmtCache:     newStmtCache(db),
		driverVersion: driverVer,
	}, nil
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close close the log db.
func (db *LogDB) Close() error {
	db.stmtCache.Clear()
	return db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

func (db *LogDB) DriverVersion() string {
	return db.driverVersion
}

// NewBatch starts collecting the rows of one invocation.
func (db *LogDB) NewBatch(opID string, time uint64) *Batch {
	return &Batch{db: db, opID: opID, time: time}
}

func encodeAmount(v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return b[:]
}

func decodeAmount(b []byte) uint64 {
	if len(b) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

// sqlTime converts a time to the signed integer sqlite stores.
func sqlTime(t uint64) int64 {
	if t > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(t)
}

func rangeClause(r *Range, stmt string, args []any) (string, []any) {
	if r == nil {
		return stmt, args
	}
	stmt += " AND time >= ?"
	args = append(args, sqlTime(r.From))
	if r.To >= r.From {
		stmt += " AND time <= ?"
		args = append(args, sqlTime(r.To))
	}
	return stmt, args
}

func tailClause(order Order, options *Options, stmt string, args []any) (string, []any) {
	if order == DESC {
		stmt += " ORDER BY seq DESC"
	} else {
		stmt += " ORDER BY seq ASC"
	}
	if options != nil {
		stmt += " LIMIT ?, ?"
		args = append(args, sqlTime(options.Offset), sqlTime(options.Limit))
	}
	return stmt, args
}

func (db *LogDB) FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	if filter == nil {
		return db.queryEvents(ctx, selectEventColumns+" ORDER BY seq ASC")
	}
	metricsHandleEventsFilter(filter)

	var args []any
	stmt := selectEventColumns + " WHERE 1"
	stmt, args = rangeClause(filter.Range, stmt, args)

	for i, criteria := range filter.CriteriaSet {
		if i == 0 {
			stmt += " AND (( 1"
		} else {
			stmt += " OR ( 1"
		}
		if criteria.Vault != nil {
			args = append(args, criteria.Vault.Bytes())
			stmt += " AND vault = ?"
		}
		if criteria.Account != nil {
			args = append(args, criteria.Account.Bytes())
			stmt += " AND account = ?"
		}
		if criteria.Type != "" {
			args = append(args, criteria.Type)
			stmt += " AND type = ?"
		}
		stmt += " )"
	}
	if len(filter.CriteriaSet) > 0 {
		stmt += " )"
	}

	stmt, args = tailClause(filter.Order, filter.Options, stmt, args)
	return db.queryEvents(ctx, stmt, args...)
}

func (db *LogDB) FilterTransfers(ctx context.Context, filter *TransferFilter) ([]*Transfer, error) {
	if filter == nil {
		return db.queryTransfers(ctx, selectTransferCols+" ORDER BY seq ASC")
	}
	metricsHandleTransfersFilter(filter)

	var args []any
	stmt := selectTransferCols + " WHERE 1"
	stmt, args = rangeClause(filter.Range, stmt, args)
	if filter.OpID != "" {
		args = append(args, filter.OpID)
		stmt += " AND opID = ?"
	}

	for i, criteria := range filter.CriteriaSet {
		if i == 0 {
			stmt += " AND (( 1"
		} else {
			stmt += " OR ( 1"
		}
		if criteria.Asset != nil {
			args = append(args, criteria.Asset.Bytes())
			stmt += " AND asset = ?"
		}
		if criteria.Sender != nil {
			args = append(args, criteria.Sender.Bytes())
			stmt += " AND sender = ?"
		}
		if criteria.Recipient != nil {
			args = append(args, criteria.Recipient.Bytes())
			stmt += " AND recipient = ?"
		}
		stmt += " )"
	}
	if len(filter.CriteriaSet) > 0 {
		stmt += " )"
	}

	stmt, args = tailClause(filter.Order, filter.Options, stmt, args)
	return db.queryTransfers(ctx, stmt, args...)
}

func (db *LogDB) queryEvents(ctx context.Context, query string, args ...any) ([]*Event, error) {
	stmt, err := db.stmtCache.Prepare(query)
	if err != nil {
		return nil, err
	}
	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			opID    string
			index   uint32
			time    int64
			typ     string
			config  []byte
			vault   []byte
			account []byte
			amount  []byte
		)
		if err := rows.Scan(&opID, &index, &time, &typ, &config, &vault, &account, &amount); err != nil {
			return nil, err
		}
		events = append(events, &Event{
			OpID:    opID,
			Index:   index,
			Time:    uint64(time),
			Type:    typ,
			Config:  common.BytesToAddress(config),
			Vault:   common.BytesToAddress(vault),
			Account: common.BytesToAddress(account),
			Amount:  decodeAmount(amount),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (db *LogDB) queryTransfers(ctx context.Context, query string, args ...any) ([]*Transfer, error) {
	stmt, err := db.stmtCache.Prepare(query)
	if err != nil {
		return nil, err
	}
	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []*Transfer
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			opID      string
			index     uint32
			time      int64
			asset     []byte
			sender    []byte
			recipient []byte
			amount    []byte
		)
		if err := rows.Scan(&opID, &index, &time, &asset, &sender, &recipient, &amount); err != nil {
			return nil, err
		}
		transfers = append(transfers, &Transfer{
			OpID:      opID,
			Index:     index,
			Time:      uint64(time),
			Asset:     common.BytesToAddress(asset),
			Sender:    common.BytesToAddress(sender),
			Recipient: common.BytesToAddress(recipient),
			Amount:    decodeAmount(amount),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return transfers, nil
}

// Batch collects the rows of one invocation and writes them in one transaction.
type Batch struct {
	db        *LogDB
	opID      string
	time      uint64
	events    []*Event
	transfers []*Transfer
}

func (b *Batch) AddEvent(typ string, config, vault, account common.Address, amount uint64) *Batch {
	b.events = append(b.events, &Event{
		OpID:    b.opID,
		Index:   uint32(len(b.events)),
		Time:    b.time,
		Type:    typ,
		Config:  config,
		Vault:   vault,
		Account: account,
		Amount:  amount,
	})
	return b
}

func (b *Batch) AddTransfer(asset, sender, recipient common.Address, amount uint64) *Batch {
	b.transfers = append(b.transfers, &Transfer{
		OpID:      b.opID,
		Index:     uint32(len(b.transfers)),
		Time:      b.time,
		Asset:     asset,
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
	})
	return b
}

// Len returns the number of collected rows.
func (b *Batch) Len() int {
	return len(b.events) + len(b.transfers)
}

func (b *Batch) execInTx(proc func(*sql.Tx) error) (err error) {
	tx, err := b.db.db.Begin()
	if err != nil {
		return err
	}
	if err := proc(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Commit writes the collected rows.
func (b *Batch) Commit() error {
	if b.Len() == 0 {
		return nil
	}
	insertEvent, err := b.db.stmtCache.Prepare(insertEventQuery)
	if err != nil {
		return err
	}
	insertTransfer, err := b.db.stmtCache.Prepare(insertTransferQuery)
	if err != nil {
		return err
	}
	return b.execInTx(func(tx *sql.Tx) error {
		evStmt := tx.Stmt(insertEvent)
		for _, ev := range b.events {
			if _, err := evStmt.Exec(
				ev.OpID,
				ev.Index,
				sqlTime(ev.Time),
				ev.Type,
				ev.Config.Bytes(),
				ev.Vault.Bytes(),
				ev.Account.Bytes(),
				encodeAmount(ev.Amount),
			); err != nil {
				return errors.Wrap(err, "insert event")
			}
		}
		trStmt := tx.Stmt(insertTransfer)
		for _, tr := range b.transfers {
			if _, err := trStmt.Exec(
				tr.OpID,
				tr.Index,
				sqlTime(tr.Time),
				tr.Asset.Bytes(),
				tr.Sender.Bytes(),
				tr.Recipient.Bytes(),
				encodeAmount(tr.Amount),
			); err != nil {
				return errors.Wrap(err, "insert transfer")
			}
		}
		return nil
	})
}
