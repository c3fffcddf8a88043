// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"io"
	"sort"

	"github.com/pkg/errors"

	"github.com/vechain/fungstake/common"
)

// Stage holds the net changes of a state, ready to be committed.
type Stage struct {
	stater  *Stater
	keys    []storageKey
	changes map[storageKey][]byte
}

func newStage(stater *Stater, changes map[storageKey][]byte) *Stage {
	keys := make([]storageKey, 0, len(changes))
	for k := range changes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i].bytes(), keys[j].bytes()) < 0
	})
	return &Stage{stater: stater, keys: keys, changes: changes}
}

// Len returns the number of changed slots.
func (s *Stage) Len() int {
	return len(s.keys)
}

// Hash computes a digest over the changed slots in key order.
func (s *Stage) Hash() common.Bytes32 {
	return common.Blake2bFn(func(w io.Writer) {
		for _, k := range s.keys {
			w.Write(k.bytes())
			w.Write(s.changes[k])
		}
	})
}

// Commit writes all changes in one batch.
func (s *Stage) Commit() error {
	if len(s.keys) == 0 {
		return nil
	}
	batch := s.stater.store.NewBatch()
	putter := storageBucket.NewPutter(batch)
	for _, k := range s.keys {
		v := s.changes[k]
		var err error
		if len(v) == 0 {
			err = putter.Delete(k.bytes())
		} else {
			err = putter.Put(k.bytes(), v)
		}
		if err != nil {
			return errors.Wrap(err, "stage storage change")
		}
	}
	if err := batch.Write(); err != nil {
		return errors.Wrap(err, "commit state")
	}
	for _, k := range s.keys {
		s.stater.cache.Add(k, s.changes[k])
	}
	return nil
}
