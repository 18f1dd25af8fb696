// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package creatorstaking

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/dappforce/subsocial-go/builtin/creatorstaking/rewards"
	"github.com/dappforce/subsocial-go/subsocial"
)

// Params are the constants of the staking engine.
type Params struct {
	BlockPerEra                  subsocial.BlockNumber
	UnbondingPeriodInEras        uint32
	MaxNumberOfBackersPerCreator uint32
	MaxEraStakeItems             uint32
	MaxUnbondingChunks           uint32
	MinimumStake                 uint256.Int
	CreatorRegistrationDeposit   uint256.Int

	PotAccount      subsocial.AccountID // holds the rewards of past eras until claimed
	TreasuryAccount subsocial.AccountID

	// initial values of the storage items root can change
	RewardPerBlock uint256.Int
	Distribution   rewards.DistributionConfig
}

// NewParams derives the engine params from a runtime config.
func NewParams(cfg *subsocial.Config) (Params, error) {
	if err := cfg.Validate(); err != nil {
		return Params{}, errors.Wrap(err, "invalid config")
	}
	pallet, _ := subsocial.NewPalletID(cfg.PalletID)
	treasury, _ := subsocial.NewPalletID(cfg.TreasuryPalletID)

	return Params{
		BlockPerEra:                  cfg.BlockPerEra,
		UnbondingPeriodInEras:        cfg.UnbondingPeriodInEras,
		MaxNumberOfBackersPerCreator: cfg.MaxNumberOfBackersPerCreator,
		MaxEraStakeItems:             cfg.MaxEraStakeItems,
		MaxUnbondingChunks:           cfg.MaxUnbondingChunks,
		MinimumStake:                 subsocial.MustParseBalance(cfg.MinimumStake),
		CreatorRegistrationDeposit:   subsocial.MustParseBalance(cfg.CreatorRegistrationDeposit),
		PotAccount:                   pallet.Account(),
		TreasuryAccount:              treasury.Account(),
		RewardPerBlock:               subsocial.MustParseBalance(cfg.RewardPerBlock),
		Distribution:                 rewards.NewDistributionConfig(cfg.Distribution),
	}, nil
}
