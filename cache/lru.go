// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
)

// Loader loads the value of a missed key.
type Loader func(key any) (any, error)

// LRU is a fixed size read-through cache counting its hits and misses.
type LRU struct {
	*lru.Cache
	hit, miss atomic.Int64
}

// NewLRU creates a cache holding at most maxSize entries, maxSize must be > 0.
func NewLRU(maxSize int) (*LRU, error) {
	c, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &LRU{Cache: c}, nil
}

// GetOrLoad returns the cached value of key, loading and caching it on a miss.
// Failed loads are not cached.
func (l *LRU) GetOrLoad(key any, load Loader) (any, error) {
	if v, ok := l.Get(key); ok {
		l.hit.Add(1)
		return v, nil
	}
	l.miss.Add(1)
	v, err := load(key)
	if err != nil {
		return nil, err
	}
	l.Add(key, v)
	return v, nil
}

// Stats returns the hits and misses of GetOrLoad so far.
func (l *LRU) Stats() (hit, miss int64) {
	return l.hit.Load(), l.miss.Load()
}
