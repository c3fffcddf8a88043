// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package lvldb is the leveldb backed kv store holding the committed state.
package lvldb

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/vechain/fungstake/kv"
	"github.com/vechain/fungstake/metrics"
)

var _ kv.Store = (*LevelDB)(nil)

var (
	metricBatchOps   = metrics.LazyLoadHistogram("state_db_batch_ops", metrics.BucketSlots)
	metricBatchBytes = metrics.LazyLoadCounter("state_db_written_bytes")
)

const minCacheMB = 16

type Options struct {
	CacheSize              int  // MB shared by the block cache and the write buffers
	OpenFilesCacheCapacity int
	NoSync                 bool // skip fsync on writes, for throwaway databases
}

// LevelDB is a kv.Store over a leveldb instance.
type LevelDB struct {
	db       *leveldb.DB
	stg      storage.Storage
	writeOpt *opt.WriteOptions
}

// New opens the database at path, creating it if missing.
func New(path string, opts Options) (*LevelDB, error) {
	stg, err := storage.OpenFile(path, false)
	if err != nil {
		return nil, errors.Wrapf(err, "open leveldb storage [%v]", path)
	}
	return open(stg, opts)
}

// NewMem creates a database living in memory.
func NewMem() (*LevelDB, error) {
	return open(storage.NewMemStorage(), Options{NoSync: true})
}

func open(stg storage.Storage, opts Options) (*LevelDB, error) {
	cacheSize := max(opts.CacheSize, minCacheMB)
	db, err := leveldb.Open(stg, &opt.Options{
		OpenFilesCacheCapacity: max(opts.OpenFilesCacheCapacity, 16),
		BlockCacheCapacity:     cacheSize / 2 * opt.MiB,
		WriteBuffer:            cacheSize / 4 * opt.MiB, // two of these are used internally
		Filter:                 filter.NewBloomFilter(10),
	})
	if err != nil {
		stg.Close()
		return nil, errors.Wrap(err, "open leveldb")
	}
	return &LevelDB{db: db, stg: stg, writeOpt: &opt.WriteOptions{Sync: !opts.NoSync}}, nil
}

func (l *LevelDB) IsNotFound(err error) bool {
	return errors.Is(err, leveldb.ErrNotFound)
}

// Get returns the value of key, or an error satisfying IsNotFound.
func (l *LevelDB) Get(key []byte) ([]byte, error) {
	return l.db.Get(key, nil)
}

func (l *LevelDB) Has(key []byte) (bool, error) {
	return l.db.Has(key, nil)
}

func (l *LevelDB) Put(key, value []byte) error {
	return l.db.Put(key, value, l.writeOpt)
}

func (l *LevelDB) Delete(key []byte) error {
	return l.db.Delete(key, l.writeOpt)
}

// Close closes the database and releases its storage.
func (l *LevelDB) Close() error {
	if err := l.db.Close(); err != nil {
		return err
	}
	return l.stg.Close()
}

// NewBatch starts a batch applied atomically by Write.
func (l *LevelDB) NewBatch() kv.Batch {
	return &batch{ldb: l}
}

type batch struct {
	ldb   *LevelDB
	b     leveldb.Batch
	bytes int
}

func (b *batch) Put(key, value []byte) error {
	b.b.Put(key, value)
	b.bytes += len(key) + len(value)
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.b.Delete(key)
	b.bytes += len(key)
	return nil
}

func (b *batch) Len() int { return b.b.Len() }

func (b *batch) Write() error {
	if err := b.ldb.db.Write(&b.b, b.ldb.writeOpt); err != nil {
		return err
	}
	metricBatchOps().Observe(int64(b.b.Len()))
	metricBatchBytes().Add(int64(b.bytes))
	return nil
}
