// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package position

import (
	"github.com/pkg/errors"

	"github.com/vechain/fungstake/builtin/storage"
	"github.com/vechain/fungstake/common"
)

var slotPositions = common.BytesToBytes32([]byte("positions"))

type Service struct {
	positions *storage.Mapping[common.Address, *body]
}

func NewService(sctx *storage.Context) *Service {
	return &Service{
		positions: storage.NewMapping[common.Address, *body](sctx, slotPositions),
	}
}

// Get returns the position stored at id, nil if there is none.
func (s *Service) Get(id common.Address) (*Position, error) {
	b, err := s.positions.Get(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get position")
	}
	if b == nil {
		return nil, nil
	}
	return &Position{b}, nil
}

// Upsert stores the position at id. Positions are never deleted.
func (s *Service) Upsert(id common.Address, p *Position) error {
	if err := s.positions.Set(id, p.body); err != nil {
		return errors.Wrap(err, "failed to set position")
	}
	return nil
}
