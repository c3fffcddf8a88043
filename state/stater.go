// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/pkg/errors"

	"github.com/vechain/fungstake/cache"
	"github.com/vechain/fungstake/kv"
)

const storageBucket = kv.Bucket("s")

// Stater is the state creator.
type Stater struct {
	store kv.Store
	cache *cache.LRU
}

// NewStater create a new stater over the store.
// Committed slots are cached, cacheSize is the number of slots kept.
func NewStater(store kv.Store, cacheSize int) (*Stater, error) {
	c, err := cache.NewLRU(cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "create state cache")
	}
	return &Stater{store: store, cache: c}, nil
}

// NewState create a new state object over the latest committed storage.
func (s *Stater) NewState() *State {
	return newState(s, s.load)
}

func (s *Stater) load(key storageKey) ([]byte, error) {
	v, err := s.cache.GetOrLoad(key, func(any) (any, error) {
		raw, err := storageBucket.NewGetter(s.store).Get(key.bytes())
		if err != nil {
			if s.store.IsNotFound(err) {
				return []byte(nil), nil
			}
			return nil, err
		}
		return raw, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// CacheStats returns the hits and misses of the committed slot cache.
func (s *Stater) CacheStats() (hit, miss int64) {
	return s.cache.Stats()
}
