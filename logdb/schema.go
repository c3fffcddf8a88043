// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

// opID is the invocation that produced the row, opIndex its position within it.
const eventTableSchema = `CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	opID TEXT NOT NULL,
	opIndex INTEGER NOT NULL,
	time INTEGER NOT NULL,
	type TEXT NOT NULL,
	config BLOB(20),
	vault BLOB(20),
	account BLOB(20),
	amount BLOB(8)
);

CREATE INDEX IF NOT EXISTS event_i0 ON event(vault);
CREATE INDEX IF NOT EXISTS event_i1 ON event(account);
CREATE INDEX IF NOT EXISTS event_i2 ON event(type);
CREATE INDEX IF NOT EXISTS event_i3 ON event(time);
`

const transferTableSchema = `CREATE TABLE IF NOT EXISTS transfer (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	opID TEXT NOT NULL,
	opIndex INTEGER NOT NULL,
	time INTEGER NOT NULL,
	asset BLOB(20),
	sender BLOB(20),
	recipient BLOB(20),
	amount BLOB(8)
);

CREATE INDEX IF NOT EXISTS transfer_i0 ON transfer(asset);
CREATE INDEX IF NOT EXISTS transfer_i1 ON transfer(sender);
CREATE INDEX IF NOT EXISTS transfer_i2 ON transfer(recipient);
CREATE INDEX IF NOT EXISTS transfer_i3 ON transfer(time);
`
