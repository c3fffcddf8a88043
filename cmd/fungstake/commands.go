// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"gopkg.in/cheggaaa/pb.v1"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/fungstake/builtin/keys"
	"github.com/vechain/fungstake/common"
	"github.com/vechain/fungstake/log"
	"github.com/vechain/fungstake/logdb"
)

// pairArgs reads the signer and the asset pair most commands take.
func pairArgs(ctx *cli.Context, withSigner bool) (signer keys.Signer, stakeAsset, rewardAsset common.Address, err error) {
	if withSigner {
		addr, err := requireAddress(ctx, signerFlag)
		if err != nil {
			return signer, stakeAsset, rewardAsset, err
		}
		signer = keys.Signer(addr)
	}
	if stakeAsset, err = requireAddress(ctx, stakeAssetFlag); err != nil {
		return
	}
	rewardAsset, err = requireAddress(ctx, rewardAssetFlag)
	return
}

func initConfigAction(ctx *cli.Context) error {
	var policy *Policy
	if path := ctx.String(policyFlag.Name); path != "" {
		p, err := loadPolicy(path)
		if err != nil {
			return err
		}
		policy = p
	} else {
		signer, err := requireAddress(ctx, signerFlag)
		if err != nil {
			return err
		}
		stakeAsset, err := requireAddress(ctx, stakeAssetFlag)
		if err != nil {
			return err
		}
		lockPeriod, err := parseSeconds(ctx.String(lockPeriodFlag.Name))
		if err != nil {
			return errors.Wrapf(err, "parse -%s", lockPeriodFlag.Name)
		}
		lockExtendTime, err := parseSeconds(ctx.String(lockExtendTimeFlag.Name))
		if err != nil {
			return errors.Wrapf(err, "parse -%s", lockExtendTimeFlag.Name)
		}
		policy = &Policy{
			Authority:      signer,
			StakeAsset:     stakeAsset,
			LockPeriod:     Seconds(lockPeriod),
			LockExtendTime: Seconds(lockExtendTime),
			SoftCap:        ctx.Uint64(softCapFlag.Name),
		}
	}

	in, err := openInstance(ctx, nil)
	if err != nil {
		return err
	}
	defer in.Close()

	vaults, err := policy.Apply(in.ctx, in.exec)
	if err != nil {
		return err
	}
	printKV(os.Stdout, "config", keys.New(in.exec.Program()).ConfigAddress(policy.StakeAsset))
	for _, v := range vaults {
		printKV(os.Stdout, "vault", v)
	}
	return nil
}

func createVaultAction(ctx *cli.Context) error {
	signer, stakeAsset, rewardAsset, err := pairArgs(ctx, true)
	if err != nil {
		return err
	}
	in, err := openInstance(ctx, nil)
	if err != nil {
		return err
	}
	defer in.Close()

	vaultID, err := in.exec.CreateVault(in.ctx, signer, stakeAsset, rewardAsset)
	if err != nil {
		return err
	}
	printKV(os.Stdout, "vault", vaultID)
	return nil
}

func mintAction(ctx *cli.Context) error {
	asset, err := requireAddress(ctx, assetFlag)
	if err != nil {
		return err
	}
	to, err := requireAddress(ctx, toFlag)
	if err != nil {
		return err
	}
	in, err := openInstance(ctx, nil)
	if err != nil {
		return err
	}
	defer in.Close()

	return in.exec.Mint(in.ctx, asset, to, ctx.Uint64(amountFlag.Name))
}

func fundAction(ctx *cli.Context) error {
	_, stakeAsset, rewardAsset, err := pairArgs(ctx, false)
	if err != nil {
		return err
	}
	in, err := openInstance(ctx, nil)
	if err != nil {
		return err
	}
	defer in.Close()

	return in.exec.Fund(in.ctx, stakeAsset, rewardAsset, ctx.Uint64(amountFlag.Name))
}

func stakeAction(ctx *cli.Context) error {
	signer, stakeAsset, rewardAsset, err := pairArgs(ctx, true)
	if err != nil {
		return err
	}
	in, err := openInstance(ctx, nil)
	if err != nil {
		return err
	}
	defer in.Close()

	return in.exec.Stake(in.ctx, signer, stakeAsset, rewardAsset, ctx.Uint64(amountFlag.Name))
}

func destakeAction(ctx *cli.Context) error {
	signer, stakeAsset, rewardAsset, err := pairArgs(ctx, true)
	if err != nil {
		return err
	}
	in, err := openInstance(ctx, nil)
	if err != nil {
		return err
	}
	defer in.Close()

	returned, err := in.exec.Destake(in.ctx, signer, stakeAsset, rewardAsset, ctx.Uint64(amountFlag.Name))
	if err != nil {
		return err
	}
	printKV(os.Stdout, "returned", returned)
	return nil
}

func claimAction(ctx *cli.Context) error {
	signer, stakeAsset, rewardAsset, err := pairArgs(ctx, true)
	if err != nil {
		return err
	}
	in, err := openInstance(ctx, nil)
	if err != nil {
		return err
	}
	defer in.Close()

	reward, err := in.exec.ClaimReward(in.ctx, signer, stakeAsset, rewardAsset)
	if err != nil {
		return err
	}
	printKV(os.Stdout, "reward", reward)
	return nil
}

func inspectAction(ctx *cli.Context) error {
	_, stakeAsset, rewardAsset, err := pairArgs(ctx, false)
	if err != nil {
		return err
	}
	staker, err := optionalAddress(ctx, stakerFlag)
	if err != nil {
		return err
	}
	in, err := openInstance(ctx, nil)
	if err != nil {
		return err
	}
	defer in.Close()

	var stakerAddr common.Address
	if staker != nil {
		stakerAddr = *staker
	}
	snap, err := in.exec.Inspect(in.ctx, stakeAsset, rewardAsset, stakerAddr)
	if err != nil {
		return err
	}
	if ctx.Bool(rawFlag.Name) {
		spew.Fdump(os.Stdout, snap)
		return nil
	}

	v := snap.Vault
	printKV(os.Stdout,
		"vault", snap.VaultID,
		"config", v.Config(),
		"status", v.Status(snap.Now),
		"total staked", v.TotalStaked(),
		"end time", v.EndTime(),
		"total reward", v.TotalReward(),
		"reward pool", snap.RewardPool,
	)
	if staker == nil {
		return nil
	}
	if snap.Position == nil {
		printKV(os.Stdout, "position", "none")
		return nil
	}
	p := snap.Position
	printKV(os.Stdout,
		"staker", p.Staker(),
		"position", p.Status(v),
		"stake", p.StakeAmount(),
		"snapshot", p.SnapshotAmount(),
		"unlock time", p.UnlockTime(),
		"claimable", snap.Claimable,
	)
	return nil
}

func historyAction(ctx *cli.Context) error {
	vaultAddr, err := optionalAddress(ctx, vaultFlag)
	if err != nil {
		return err
	}
	account, err := optionalAddress(ctx, accountFlag)
	if err != nil {
		return err
	}
	asset, err := optionalAddress(ctx, assetFlag)
	if err != nil {
		return err
	}
	in, err := openInstance(ctx, nil)
	if err != nil {
		return err
	}
	defer in.Close()

	order := logdb.ASC
	if ctx.Bool(descFlag.Name) {
		order = logdb.DESC
	}
	options := &logdb.Options{Limit: ctx.Uint64(limitFlag.Name)}

	if ctx.Bool(transfersFlag.Name) {
		filter := &logdb.TransferFilter{Options: options, Order: order}
		if asset != nil || account != nil {
			filter.CriteriaSet = []*logdb.TransferCriteria{{Asset: asset, Sender: account}}
			if account != nil {
				filter.CriteriaSet = append(filter.CriteriaSet, &logdb.TransferCriteria{Asset: asset, Recipient: account})
			}
		}
		transfers, err := in.logDB.FilterTransfers(in.ctx, filter)
		if err != nil {
			return err
		}
		for _, tr := range transfers {
			fmt.Printf("%d %s #%d %v %v -> %v %d\n", tr.Time, tr.OpID, tr.Index, tr.Asset, tr.Sender, tr.Recipient, tr.Amount)
		}
		return nil
	}

	filter := &logdb.EventFilter{Options: options, Order: order}
	if vaultAddr != nil || account != nil || ctx.String(typeFlag.Name) != "" {
		filter.CriteriaSet = []*logdb.EventCriteria{{
			Vault:   vaultAddr,
			Account: account,
			Type:    ctx.String(typeFlag.Name),
		}}
	}
	events, err := in.logDB.FilterEvents(in.ctx, filter)
	if err != nil {
		return err
	}
	for _, ev := range events {
		fmt.Printf("%d %s #%d %-20s vault=%v account=%v amount=%d\n", ev.Time, ev.OpID, ev.Index, ev.Type, ev.Vault, ev.Account, ev.Amount)
	}
	return nil
}

func runAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("expected exactly one script path")
	}
	script, err := loadScript(ctx.Args().First())
	if err != nil {
		return err
	}

	fallback := selectClock(ctx)
	var at *uint64
	clock := func() uint64 {
		if at != nil {
			return *at
		}
		return fallback()
	}

	in, err := openInstance(ctx, clock)
	if err != nil {
		return err
	}
	defer in.Close()

	for _, policy := range script.Policies {
		if _, err := policy.Apply(in.ctx, in.exec); err != nil {
			return err
		}
	}

	bar := pb.New(len(script.Steps)).SetMaxWidth(90).Start()
	defer func() { bar.NotPrint = true }()

	for i, step := range script.Steps {
		at = step.At
		if err := step.Run(in.ctx, in.exec); err != nil {
			return errors.Wrapf(err, "step %d", i)
		}
		bar.Increment()
	}
	bar.Finish()
	log.Info("script done", "steps", len(script.Steps), "program", in.exec.Program())
	return nil
}
