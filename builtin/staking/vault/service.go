// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"github.com/pkg/errors"

	"github.com/vechain/fungstake/builtin/storage"
	"github.com/vechain/fungstake/common"
)

var slotVaults = common.BytesToBytes32([]byte("vaults"))

type Service struct {
	vaults *storage.Mapping[common.Address, *body]
}

func NewService(sctx *storage.Context) *Service {
	return &Service{
		vaults: storage.NewMapping[common.Address, *body](sctx, slotVaults),
	}
}

// Get returns the vault stored at id, nil if there is none.
func (s *Service) Get(id common.Address) (*Vault, error) {
	b, err := s.vaults.Get(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get vault")
	}
	if b == nil {
		return nil, nil
	}
	return &Vault{b}, nil
}

// Add stores a new vault at id.
func (s *Service) Add(id common.Address, v *Vault) error {
	exists, err := s.vaults.Exists(id)
	if err != nil {
		return errors.Wrap(err, "failed to get vault")
	}
	if exists {
		return errors.Errorf("vault %v already stored", id)
	}
	return s.Update(id, v)
}

func (s *Service) Update(id common.Address, v *Vault) error {
	if err := s.vaults.Set(id, v.body); err != nil {
		return errors.Wrap(err, "failed to set vault")
	}
	return nil
}
