// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package config

import (
	"github.com/pkg/errors"

	"github.com/vechain/fungstake/builtin/storage"
	"github.com/vechain/fungstake/common"
)

var slotConfigs = common.BytesToBytes32([]byte("configs"))

type Service struct {
	configs *storage.Mapping[common.Address, *body]
}

func NewService(sctx *storage.Context) *Service {
	return &Service{
		configs: storage.NewMapping[common.Address, *body](sctx, slotConfigs),
	}
}

// Get returns the config stored at id, nil if there is none.
func (s *Service) Get(id common.Address) (*Config, error) {
	b, err := s.configs.Get(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get config")
	}
	if b == nil {
		return nil, nil
	}
	return &Config{b}, nil
}

// Add stores a new config at id. Configs are never updated.
func (s *Service) Add(id common.Address, cfg *Config) error {
	exists, err := s.configs.Exists(id)
	if err != nil {
		return errors.Wrap(err, "failed to get config")
	}
	if exists {
		return errors.Errorf("config %v already stored", id)
	}
	if err := s.configs.Set(id, cfg.body); err != nil {
		return errors.Wrap(err, "failed to set config")
	}
	return nil
}
