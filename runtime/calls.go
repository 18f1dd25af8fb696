// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"bytes"
	"encoding/json"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/dappforce/subsocial-go/builtin/creatorstaking/rewards"
	"github.com/dappforce/subsocial-go/subsocial"
)

// Call is a dispatchable runtime call.
type Call interface {
	Name() string
	dispatch(rt *Runtime, origin Origin) error
}

// Extrinsic is a call together with its origin.
type Extrinsic struct {
	Origin Origin
	Call   Call
}

type Transfer struct {
	To     subsocial.AccountID `json:"to"`
	Amount uint256.Int         `json:"amount"`
}

type CreateSpace struct{}

type RegisterCreator struct {
	SpaceID subsocial.SpaceID `json:"spaceId"`
}

type ForceRegisterCreator struct {
	SpaceID subsocial.SpaceID `json:"spaceId"`
}

type UnregisterCreator struct {
	CreatorID subsocial.SpaceID `json:"creatorId"`
}

type ForceUnregisterCreator struct {
	CreatorID subsocial.SpaceID `json:"creatorId"`
}

type Stake struct {
	CreatorID subsocial.SpaceID `json:"creatorId"`
	Amount    uint256.Int       `json:"amount"`
}

type Unstake struct {
	CreatorID subsocial.SpaceID `json:"creatorId"`
	Amount    uint256.Int       `json:"amount"`
}

type MoveStake struct {
	From   subsocial.SpaceID `json:"from"`
	To     subsocial.SpaceID `json:"to"`
	Amount uint256.Int       `json:"amount"`
}

type WithdrawUnstaked struct{}

type WithdrawFromInactiveCreator struct {
	CreatorID subsocial.SpaceID `json:"creatorId"`
}

type ClaimBackerReward struct {
	CreatorID subsocial.SpaceID `json:"creatorId"`
	Restake   bool              `json:"restake"`
}

type ClaimCreatorReward struct {
	CreatorID subsocial.SpaceID  `json:"creatorId"`
	Era       subsocial.EraIndex `json:"era"`
}

type SetMaintenanceMode struct {
	Enabled bool `json:"enabled"`
}

type ForceNewEra struct{}

type SetRewardDistributionConfig struct {
	Config rewards.DistributionConfig `json:"config"`
}

type SetPerBlockReward struct {
	Amount uint256.Int `json:"amount"`
}

func (Transfer) Name() string                    { return "balances.transfer" }
func (CreateSpace) Name() string                 { return "spaces.create_space" }
func (RegisterCreator) Name() string             { return "creator_staking.register_creator" }
func (ForceRegisterCreator) Name() string        { return "creator_staking.force_register_creator" }
func (UnregisterCreator) Name() string           { return "creator_staking.unregister_creator" }
func (ForceUnregisterCreator) Name() string      { return "creator_staking.force_unregister_creator" }
func (Stake) Name() string                       { return "creator_staking.stake" }
func (Unstake) Name() string                     { return "creator_staking.unstake" }
func (MoveStake) Name() string                   { return "creator_staking.move_stake" }
func (WithdrawUnstaked) Name() string            { return "creator_staking.withdraw_unstaked" }
func (WithdrawFromInactiveCreator) Name() string { return "creator_staking.withdraw_from_inactive_creator" }
func (ClaimBackerReward) Name() string           { return "creator_staking.claim_backer_reward" }
func (ClaimCreatorReward) Name() string          { return "creator_staking.claim_creator_reward" }
func (SetMaintenanceMode) Name() string          { return "creator_staking.set_maintenance_mode" }
func (ForceNewEra) Name() string                 { return "creator_staking.force_new_era" }
func (SetRewardDistributionConfig) Name() string { return "creator_staking.set_reward_distribution_config" }
func (SetPerBlockReward) Name() string           { return "creator_staking.set_per_block_reward" }

var calls = map[string]func() Call{}

func init() {
	for _, newCall := range []func() Call{
		func() Call { return &Transfer{} },
		func() Call { return &CreateSpace{} },
		func() Call { return &RegisterCreator{} },
		func() Call { return &ForceRegisterCreator{} },
		func() Call { return &UnregisterCreator{} },
		func() Call { return &ForceUnregisterCreator{} },
		func() Call { return &Stake{} },
		func() Call { return &Unstake{} },
		func() Call { return &MoveStake{} },
		func() Call { return &WithdrawUnstaked{} },
		func() Call { return &WithdrawFromInactiveCreator{} },
		func() Call { return &ClaimBackerReward{} },
		func() Call { return &ClaimCreatorReward{} },
		func() Call { return &SetMaintenanceMode{} },
		func() Call { return &ForceNewEra{} },
		func() Call { return &SetRewardDistributionConfig{} },
		func() Call { return &SetPerBlockReward{} },
	} {
		calls[newCall().Name()] = newCall
	}
}

// DecodeCall decodes the json arguments of the named call. Unknown fields are rejected.
func DecodeCall(name string, args json.RawMessage) (Call, error) {
	newCall, ok := calls[name]
	if !ok {
		return nil, errors.Errorf("unknown call %q", name)
	}
	call := newCall()
	if len(args) > 0 {
		decoder := json.NewDecoder(bytes.NewReader(args))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(call); err != nil {
			return nil, errors.Wrapf(err, "decode %s", name)
		}
	}
	return call, nil
}

func (c Transfer) dispatch(rt *Runtime, origin Origin) error {
	who, err := origin.EnsureSigned()
	if err != nil {
		return err
	}
	return rt.balances.Transfer(who, c.To, &c.Amount)
}

func (c CreateSpace) dispatch(rt *Runtime, origin Origin) error {
	who, err := origin.EnsureSigned()
	if err != nil {
		return err
	}
	_, err = rt.spaces.CreateSpace(who)
	return err
}

func (c RegisterCreator) dispatch(rt *Runtime, origin Origin) error {
	who, err := origin.EnsureSigned()
	if err != nil {
		return err
	}
	return rt.staker.RegisterCreator(who, c.SpaceID)
}

func (c ForceRegisterCreator) dispatch(rt *Runtime, origin Origin) error {
	if err := origin.EnsureRoot(); err != nil {
		return err
	}
	return rt.staker.ForceRegisterCreator(c.SpaceID)
}

func (c UnregisterCreator) dispatch(rt *Runtime, origin Origin) error {
	who, err := origin.EnsureSigned()
	if err != nil {
		return err
	}
	return rt.staker.UnregisterCreator(who, c.CreatorID)
}

func (c ForceUnregisterCreator) dispatch(rt *Runtime, origin Origin) error {
	if err := origin.EnsureRoot(); err != nil {
		return err
	}
	return rt.staker.ForceUnregisterCreator(c.CreatorID)
}

func (c Stake) dispatch(rt *Runtime, origin Origin) error {
	who, err := origin.EnsureSigned()
	if err != nil {
		return err
	}
	_, err = rt.staker.Stake(who, c.CreatorID, &c.Amount)
	return err
}

func (c Unstake) dispatch(rt *Runtime, origin Origin) error {
	who, err := origin.EnsureSigned()
	if err != nil {
		return err
	}
	_, err = rt.staker.Unstake(who, c.CreatorID, &c.Amount)
	return err
}

func (c MoveStake) dispatch(rt *Runtime, origin Origin) error {
	who, err := origin.EnsureSigned()
	if err != nil {
		return err
	}
	_, err = rt.staker.MoveStake(who, c.From, c.To, &c.Amount)
	return err
}

func (c WithdrawUnstaked) dispatch(rt *Runtime, origin Origin) error {
	who, err := origin.EnsureSigned()
	if err != nil {
		return err
	}
	_, err = rt.staker.WithdrawUnstaked(who)
	return err
}

func (c WithdrawFromInactiveCreator) dispatch(rt *Runtime, origin Origin) error {
	who, err := origin.EnsureSigned()
	if err != nil {
		return err
	}
	_, err = rt.staker.WithdrawFromInactiveCreator(who, c.CreatorID)
	return err
}

func (c ClaimBackerReward) dispatch(rt *Runtime, origin Origin) error {
	who, err := origin.EnsureSigned()
	if err != nil {
		return err
	}
	_, err = rt.staker.ClaimBackerReward(who, c.CreatorID, c.Restake)
	return err
}

func (c ClaimCreatorReward) dispatch(rt *Runtime, origin Origin) error {
	if _, err := origin.EnsureSigned(); err != nil {
		return err
	}
	_, err := rt.staker.ClaimCreatorReward(c.CreatorID, c.Era)
	return err
}

func (c SetMaintenanceMode) dispatch(rt *Runtime, origin Origin) error {
	if err := origin.EnsureRoot(); err != nil {
		return err
	}
	return rt.staker.SetMaintenanceMode(c.Enabled)
}

func (c ForceNewEra) dispatch(rt *Runtime, origin Origin) error {
	if err := origin.EnsureRoot(); err != nil {
		return err
	}
	return rt.staker.ForceNewEra()
}

func (c SetRewardDistributionConfig) dispatch(rt *Runtime, origin Origin) error {
	if err := origin.EnsureRoot(); err != nil {
		return err
	}
	return rt.staker.SetRewardDistributionConfig(c.Config)
}

func (c SetPerBlockReward) dispatch(rt *Runtime, origin Origin) error {
	if err := origin.EnsureRoot(); err != nil {
		return err
	}
	return rt.staker.SetPerBlockReward(&c.Amount)
}
