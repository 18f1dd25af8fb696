// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package creatorstaking

import (
	"github.com/holiman/uint256"

	"github.com/dappforce/subsocial-go/builtin/creatorstaking"
	"github.com/dappforce/subsocial-go/builtin/creatorstaking/backer"
	"github.com/dappforce/subsocial-go/builtin/creatorstaking/creator"
	"github.com/dappforce/subsocial-go/builtin/creatorstaking/era"
	"github.com/dappforce/subsocial-go/builtin/creatorstaking/rewards"
	"github.com/dappforce/subsocial-go/builtin/creatorstaking/stakes"
	"github.com/dappforce/subsocial-go/subsocial"
)

// Balances are decimal strings, they don't fit into a json number.

type Distribution struct {
	Creators uint32 `json:"creators"` // parts per billion
	Backers  uint32 `json:"backers"`
	Treasury uint32 `json:"treasury"`
}

type JSONEra struct {
	BlockNumber          subsocial.BlockNumber `json:"blockNumber"`
	CurrentEra           subsocial.EraIndex    `json:"currentEra"`
	NextEraStartingBlock subsocial.BlockNumber `json:"nextEraStartingBlock"`
	ForceNewEra          bool                  `json:"forceNewEra"`
	PalletDisabled       bool                  `json:"palletDisabled"`
	RewardPerBlock       string                `json:"rewardPerBlock"`
	Distribution         Distribution          `json:"distribution"`
	Accumulated          JSONRewards           `json:"accumulated"`
}

type JSONRewards struct {
	Creators string `json:"creators"`
	Backers  string `json:"backers"`
}

type JSONEraInfo struct {
	Era     subsocial.EraIndex `json:"era"`
	Rewards JSONRewards        `json:"rewards"`
	Staked  string             `json:"staked"`
	Locked  string             `json:"locked"`
}

type JSONCreator struct {
	CreatorID      subsocial.SpaceID  `json:"creatorId"`
	Stakeholder    string             `json:"stakeholder"`
	Active         bool               `json:"active"`
	UnregisteredAt subsocial.EraIndex `json:"unregisteredAt,omitempty"`
	Era            subsocial.EraIndex `json:"era"`
	TotalStaked    string             `json:"totalStaked"`
	BackersCount   uint32             `json:"backersCount"`
	RewardsClaimed bool               `json:"rewardsClaimed"`
}

type JSONUnbondingChunk struct {
	Amount    string             `json:"amount"`
	UnlockEra subsocial.EraIndex `json:"unlockEra"`
}

type JSONBackerLocks struct {
	Backer      string               `json:"backer"`
	TotalLocked string               `json:"totalLocked"`
	Unbonding   []JSONUnbondingChunk `json:"unbonding"`
}

type JSONEraStake struct {
	Era    subsocial.EraIndex `json:"era"`
	Staked string             `json:"staked"`
}

type JSONCreatorAmount struct {
	CreatorID subsocial.SpaceID `json:"creatorId"`
	Amount    string            `json:"amount"`
}

type JSONCreatorClaims struct {
	CreatorID subsocial.SpaceID `json:"creatorId"`
	Eras      uint32            `json:"eras"`
}

func dec(v *uint256.Int) string {
	return v.Dec()
}

func convertRewards(r *rewards.RewardInfo) JSONRewards {
	return JSONRewards{Creators: dec(&r.Creators), Backers: dec(&r.Backers)}
}

func convertDistribution(d rewards.DistributionConfig) Distribution {
	return Distribution{Creators: uint32(d.Creators), Backers: uint32(d.Backers), Treasury: uint32(d.Treasury)}
}

func convertEraInfo(e subsocial.EraIndex, info *era.Info) *JSONEraInfo {
	return &JSONEraInfo{
		Era:     e,
		Rewards: convertRewards(&info.Rewards),
		Staked:  dec(&info.Staked),
		Locked:  dec(&info.Locked),
	}
}

func convertCreator(id subsocial.SpaceID, e subsocial.EraIndex, info *creator.Info, stake *creator.StakeInfo) *JSONCreator {
	unregistered, _ := info.Status.UnregisteredAt()
	return &JSONCreator{
		CreatorID:      id,
		Stakeholder:    info.Stakeholder.String(),
		Active:         info.Status.IsActive(),
		UnregisteredAt: unregistered,
		Era:            e,
		TotalStaked:    dec(&stake.Total),
		BackersCount:   stake.BackersCount,
		RewardsClaimed: stake.RewardsClaimed,
	}
}

func convertLocks(who subsocial.AccountID, locks *backer.Locks) *JSONBackerLocks {
	chunks := make([]JSONUnbondingChunk, 0, len(locks.UnbondingInfo.Chunks))
	for i := range locks.UnbondingInfo.Chunks {
		c := &locks.UnbondingInfo.Chunks[i]
		chunks = append(chunks, JSONUnbondingChunk{Amount: dec(&c.Amount), UnlockEra: c.UnlockEra})
	}
	return &JSONBackerLocks{
		Backer:      who.String(),
		TotalLocked: dec(&locks.TotalLocked),
		Unbonding:   chunks,
	}
}

func convertStakes(info *stakes.StakesInfo) []JSONEraStake {
	out := make([]JSONEraStake, 0, len(info.Stakes))
	for i := range info.Stakes {
		s := &info.Stakes[i]
		out = append(out, JSONEraStake{Era: s.Era, Staked: dec(&s.Staked)})
	}
	return out
}

func convertAmounts(amounts []creatorstaking.CreatorAmount) []JSONCreatorAmount {
	out := make([]JSONCreatorAmount, 0, len(amounts))
	for i := range amounts {
		out = append(out, JSONCreatorAmount{CreatorID: amounts[i].CreatorID, Amount: dec(&amounts[i].Amount)})
	}
	return out
}

func convertClaims(claims []creatorstaking.CreatorClaims) []JSONCreatorClaims {
	out := make([]JSONCreatorClaims, 0, len(claims))
	for _, c := range claims {
		out = append(out, JSONCreatorClaims{CreatorID: c.CreatorID, Eras: c.Eras})
	}
	return out
}
