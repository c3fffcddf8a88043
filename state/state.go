// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/vechain/fungstake/common"
	"github.com/vechain/fungstake/stackedmap"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// storageKey locates a storage slot owned by an address.
type storageKey struct {
	addr common.Address
	key  common.Bytes32
}

func (k storageKey) bytes() []byte {
	b := make([]byte, 0, common.AddressLength+32)
	b = append(b, k.addr[:]...)
	return append(b, k.key[:]...)
}

// loader reads the committed value of a slot. Empty value means absent.
type loader func(key storageKey) ([]byte, error)

// State is a journaled view over committed storage.
// Changes stay in memory until staged and committed.
type State struct {
	stater *Stater
	sm     *stackedmap.StackedMap[storageKey, []byte]
}

func newState(stater *Stater, load loader) *State {
	return &State{
		stater: stater,
		sm: stackedmap.New(func(key storageKey) ([]byte, bool, error) {
			v, err := load(key)
			if err != nil {
				return nil, false, err
			}
			return v, len(v) > 0, nil
		}),
	}
}

// GetRawStorage returns the raw value of the slot, nil if absent.
func (s *State) GetRawStorage(addr common.Address, key common.Bytes32) ([]byte, error) {
	v, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return v, nil
}

// SetRawStorage sets the raw value of the slot. Empty value clears it.
func (s *State) SetRawStorage(addr common.Address, key common.Bytes32, raw []byte) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage set storage value encoded by given enc method.
func (s *State) EncodeStorage(addr common.Address, key common.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be passed through.
func (s *State) DecodeStorage(addr common.Address, key common.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	return dec(raw)
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage makes a stage object holding the net changes of the state.
func (s *State) Stage() *Stage {
	changes := make(map[storageKey][]byte)
	for _, entry := range s.sm.Journal() {
		changes[entry.Key] = entry.Value
	}
	return newStage(s.stater, changes)
}
