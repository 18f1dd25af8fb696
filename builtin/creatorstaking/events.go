// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package creatorstaking

import (
	"github.com/holiman/uint256"

	"github.com/dappforce/subsocial-go/builtin/creatorstaking/rewards"
	"github.com/dappforce/subsocial-go/subsocial"
)

// Event is a state change notification of the staking engine.
type Event interface {
	EventName() string
}

// Emitter receives the events of successful state changes.
type Emitter interface {
	Emit(Event)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(Event)

func (f EmitterFunc) Emit(e Event) { f(e) }

type noopEmitter struct{}

func (noopEmitter) Emit(Event) {}

type CreatorRegistered struct {
	Who       subsocial.AccountID
	CreatorID subsocial.SpaceID
}

type CreatorUnregistered struct {
	Who       subsocial.AccountID
	CreatorID subsocial.SpaceID
}

type Staked struct {
	Who       subsocial.AccountID
	CreatorID subsocial.SpaceID
	Era       subsocial.EraIndex
	Amount    uint256.Int
}

type Unstaked struct {
	Who       subsocial.AccountID
	CreatorID subsocial.SpaceID
	Era       subsocial.EraIndex
	Amount    uint256.Int
}

type StakeMoved struct {
	Who    subsocial.AccountID
	From   subsocial.SpaceID
	To     subsocial.SpaceID
	Amount uint256.Int
}

type StakeWithdrawn struct {
	Who    subsocial.AccountID
	Amount uint256.Int
}

type WithdrawnFromInactiveCreator struct {
	Who       subsocial.AccountID
	CreatorID subsocial.SpaceID
	Amount    uint256.Int
}

type BackerRewardsClaimed struct {
	Who       subsocial.AccountID
	CreatorID subsocial.SpaceID
	Era       subsocial.EraIndex
	Amount    uint256.Int
	Restaked  bool
}

type CreatorRewardsClaimed struct {
	Who       subsocial.AccountID
	CreatorID subsocial.SpaceID
	Era       subsocial.EraIndex
	Amount    uint256.Int
}

type NewCreatorStakingEra struct {
	Era subsocial.EraIndex
}

type MaintenanceModeSet struct {
	Enabled bool
}

type RewardDistributionConfigChanged struct {
	Config rewards.DistributionConfig
}

type PerBlockRewardChanged struct {
	Amount uint256.Int
}

func (CreatorRegistered) EventName() string               { return "CreatorRegistered" }
func (CreatorUnregistered) EventName() string             { return "CreatorUnregistered" }
func (Staked) EventName() string                          { return "Staked" }
func (Unstaked) EventName() string                        { return "Unstaked" }
func (StakeMoved) EventName() string                      { return "StakeMoved" }
func (StakeWithdrawn) EventName() string                  { return "StakeWithdrawn" }
func (WithdrawnFromInactiveCreator) EventName() string    { return "WithdrawnFromInactiveCreator" }
func (BackerRewardsClaimed) EventName() string            { return "BackerRewardsClaimed" }
func (CreatorRewardsClaimed) EventName() string           { return "CreatorRewardsClaimed" }
func (NewCreatorStakingEra) EventName() string            { return "NewCreatorStakingEra" }
func (MaintenanceModeSet) EventName() string              { return "MaintenanceModeSet" }
func (RewardDistributionConfigChanged) EventName() string { return "RewardDistributionConfigChanged" }
func (PerBlockRewardChanged) EventName() string           { return "PerBlockRewardChanged" }
