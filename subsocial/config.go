// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subsocial

import (
	"os"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// UNIT is one SUB token, the chain uses 10 decimals.
const UNIT = 10_000_000_000

// DistributionConfig is the split of every block reward, in parts per billion.
type DistributionConfig struct {
	Creators uint32 `yaml:"creators" json:"creators"`
	Backers  uint32 `yaml:"backers" json:"backers"`
	Treasury uint32 `yaml:"treasury" json:"treasury"`
}

// Config is the configurable parameters of the creator staking runtime. Balances are decimal
// strings so that values above 2^64 survive yaml and json.
type Config struct {
	BlockPerEra                  uint32 `yaml:"blockPerEra" json:"blockPerEra"`                   // number of blocks per era
	UnbondingPeriodInEras        uint32 `yaml:"unbondingPeriodInEras" json:"unbondingPeriodInEras"` // eras an unstaked chunk stays locked
	MaxNumberOfBackersPerCreator uint32 `yaml:"maxNumberOfBackersPerCreator" json:"maxNumberOfBackersPerCreator"`
	MaxEraStakeItems             uint32 `yaml:"maxEraStakeItems" json:"maxEraStakeItems"`     // bound of a stake history
	MaxUnbondingChunks           uint32 `yaml:"maxUnbondingChunks" json:"maxUnbondingChunks"` // bound of the unbonding queue

	MinimumStake               string `yaml:"minimumStake" json:"minimumStake"`
	CreatorRegistrationDeposit string `yaml:"creatorRegistrationDeposit" json:"creatorRegistrationDeposit"`
	RewardPerBlock             string `yaml:"rewardPerBlock" json:"rewardPerBlock"`

	PalletID         string             `yaml:"palletId" json:"palletId"`                 // 8 bytes, owns the rewards pot
	TreasuryPalletID string             `yaml:"treasuryPalletId" json:"treasuryPalletId"` // 8 bytes, receives the treasury share
	Distribution     DistributionConfig `yaml:"distribution" json:"distribution"`
}

// DefaultConfig returns the parameters used by the Subsocial parachain.
func DefaultConfig() Config {
	return Config{
		BlockPerEra:                  7200, // 1 day of 12 seconds blocks
		UnbondingPeriodInEras:        7,
		MaxNumberOfBackersPerCreator: 8000,
		MaxEraStakeItems:             10,
		MaxUnbondingChunks:           32,

		MinimumStake:               uint256.NewInt(0).Mul(uint256.NewInt(2000), uint256.NewInt(UNIT)).Dec(),
		CreatorRegistrationDeposit: uint256.NewInt(0).Mul(uint256.NewInt(10), uint256.NewInt(UNIT)).Dec(),
		RewardPerBlock:             uint256.NewInt(0).Mul(uint256.NewInt(6), uint256.NewInt(UNIT)).Dec(),

		PalletID:         "df/crtst",
		TreasuryPalletID: "py/trsry",
		Distribution: DistributionConfig{
			Creators: 100_000_000, // 10%
			Backers:  850_000_000, // 85%
			Treasury: 50_000_000,  // 5%
		},
	}
}

// LoadConfig reads a yaml config. Fields missing in the file keep their default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "decode config")
	}
	return cfg, cfg.Validate()
}

// Validate checks the config is usable.
func (c *Config) Validate() error {
	if c.BlockPerEra == 0 {
		return errors.New("blockPerEra must be positive")
	}
	if c.MaxEraStakeItems < 2 {
		return errors.New("maxEraStakeItems must be at least 2")
	}
	if c.MaxUnbondingChunks == 0 {
		return errors.New("maxUnbondingChunks must be positive")
	}
	for name, v := range map[string]string{
		"minimumStake":               c.MinimumStake,
		"creatorRegistrationDeposit": c.CreatorRegistrationDeposit,
		"rewardPerBlock":             c.RewardPerBlock,
	} {
		if _, err := uint256.FromDecimal(v); err != nil {
			return errors.Wrapf(err, "invalid %s", name)
		}
	}
	if _, err := NewPalletID(c.PalletID); err != nil {
		return errors.Wrap(err, "invalid palletId")
	}
	if _, err := NewPalletID(c.TreasuryPalletID); err != nil {
		return errors.Wrap(err, "invalid treasuryPalletId")
	}
	sum := uint64(c.Distribution.Creators) + uint64(c.Distribution.Backers) + uint64(c.Distribution.Treasury)
	if sum != 1_000_000_000 {
		return errors.Errorf("distribution must sum up to 100%%, got %d parts per billion", sum)
	}
	return nil
}

// MustParseBalance parses a decimal balance and panics on malformed input.
// Only for values that passed Validate or constants.
func MustParseBalance(s string) uint256.Int {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		panic(err)
	}
	return *v
}
