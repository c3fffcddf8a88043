// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/fungstake/builtin/keys"
	"github.com/vechain/fungstake/builtin/reverts"
	"github.com/vechain/fungstake/common"
	"github.com/vechain/fungstake/executor"
)

// Seconds is a time span read from YAML either as a plain number of
// seconds or as a Go duration string.
type Seconds uint64

func (s *Seconds) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.Errorf("line %d: expected seconds or a duration", node.Line)
	}
	v, err := parseSeconds(node.Value)
	if err != nil {
		return errors.Wrapf(err, "line %d", node.Line)
	}
	*s = Seconds(v)
	return nil
}

// Policy describes a staking config and the vaults opened under it.
type Policy struct {
	Authority      common.Address   `yaml:"authority"`
	StakeAsset     common.Address   `yaml:"stakeAsset"`
	LockPeriod     Seconds          `yaml:"lockPeriod"`
	LockExtendTime Seconds          `yaml:"lockExtendTime"`
	SoftCap        uint64           `yaml:"softCap"`
	RewardAssets   []common.Address `yaml:"rewardAssets"`
}

func loadYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "decode [%v]", path)
	}
	return nil
}

func loadPolicy(path string) (*Policy, error) {
	var p Policy
	if err := loadYAML(path, &p); err != nil {
		return nil, err
	}
	if p.Authority.IsZero() {
		return nil, errors.New("policy: missing authority")
	}
	if p.StakeAsset.IsZero() {
		return nil, errors.New("policy: missing stakeAsset")
	}
	return &p, nil
}

// Apply initializes the config and creates one vault per reward asset.
func (p *Policy) Apply(ctx context.Context, exec *executor.Executor) ([]common.Address, error) {
	signer := keys.Signer(p.Authority)
	if err := exec.InitializeConfig(ctx, signer, p.StakeAsset, uint64(p.LockPeriod), uint64(p.LockExtendTime), p.SoftCap); err != nil {
		return nil, errors.Wrap(err, "initialize config")
	}
	vaults := make([]common.Address, 0, len(p.RewardAssets))
	for _, rewardAsset := range p.RewardAssets {
		vaultID, err := exec.CreateVault(ctx, signer, p.StakeAsset, rewardAsset)
		if err != nil {
			return nil, errors.Wrapf(err, "create vault for %v", rewardAsset)
		}
		vaults = append(vaults, vaultID)
	}
	return vaults, nil
}

// Script is a sequence of operations replayed against the databases.
type Script struct {
	Policies []*Policy `yaml:"policies"`
	Steps    []*Step   `yaml:"steps"`
}

// Step is one scripted operation. At pins the time it runs at, Expect the
// revert code it must fail with.
type Step struct {
	Op          string         `yaml:"op"`
	At          *uint64        `yaml:"at"`
	Signer      common.Address `yaml:"signer"`
	StakeAsset  common.Address `yaml:"stakeAsset"`
	RewardAsset common.Address `yaml:"rewardAsset"`
	Asset       common.Address `yaml:"asset"`
	To          common.Address `yaml:"to"`
	Amount      uint64         `yaml:"amount"`
	Expect      string         `yaml:"expect"`
}

func loadScript(path string) (*Script, error) {
	var s Script
	if err := loadYAML(path, &s); err != nil {
		return nil, err
	}
	for i, step := range s.Steps {
		if step == nil || step.Op == "" {
			return nil, errors.Errorf("script: step %d has no op", i)
		}
	}
	return &s, nil
}

// Run performs the step and checks its outcome against Expect.
func (s *Step) Run(ctx context.Context, exec *executor.Executor) error {
	err := s.exec(ctx, exec)
	switch {
	case s.Expect == "" && err != nil:
		return err
	case s.Expect != "" && err == nil:
		return errors.Errorf("%s: expected %s, succeeded", s.Op, s.Expect)
	case s.Expect != "" && reverts.CodeOf(err) != s.Expect:
		return errors.Wrapf(err, "%s: expected %s", s.Op, s.Expect)
	}
	return nil
}

func (s *Step) exec(ctx context.Context, exec *executor.Executor) error {
	signer := keys.Signer(s.Signer)
	switch s.Op {
	case "create_vault":
		_, err := exec.CreateVault(ctx, signer, s.StakeAsset, s.RewardAsset)
		return err
	case "mint":
		return exec.Mint(ctx, s.Asset, s.To, s.Amount)
	case "fund":
		return exec.Fund(ctx, s.StakeAsset, s.RewardAsset, s.Amount)
	case "stake":
		return exec.Stake(ctx, signer, s.StakeAsset, s.RewardAsset, s.Amount)
	case "destake":
		_, err := exec.Destake(ctx, signer, s.StakeAsset, s.RewardAsset, s.Amount)
		return err
	case "claim":
		_, err := exec.ClaimReward(ctx, signer, s.StakeAsset, s.RewardAsset)
		return err
	default:
		return errors.Errorf("unknown op %q", s.Op)
	}
}
