// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
)

type ErrRevert struct {
	message string
}

func New(message string) *ErrRevert {
	return &ErrRevert{
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// Dispatch errors of the creator staking calls. All of them abort the call without state change.
var (
	// preconditions
	ErrPalletIsDisabled               = New("pallet is disabled")
	ErrCreatorNotFound                = New("creator not found")
	ErrCreatorAlreadyRegistered       = New("creator already registered")
	ErrInactiveCreator                = New("creator is inactive")
	ErrCreatorIsActive                = New("creator is active")
	ErrNotStakedCreator               = New("not staked creator")
	ErrCannotStakeZero                = New("cannot stake zero")
	ErrCannotUnstakeZero              = New("cannot unstake zero")
	ErrCannotMoveStakeToSameCreator   = New("cannot move stake to the same creator")
	ErrCannotMoveZeroStake            = New("cannot move zero stake")
	ErrInsufficientStakingAmount      = New("insufficient staking amount")
	ErrNotSpaceOwner                  = New("not space owner")
	ErrNotOwner                       = New("not creator stakeholder")
	ErrNoMaintenanceModeChange        = New("maintenance mode is already in the requested state")
	ErrInvalidSumOfRewardDistribution = New("reward distribution must sum up to 100%")

	// capacity
	ErrMaxNumberOfStakersExceeded = New("max number of backers per creator exceeded")
	ErrTooManyEraStakeValues      = New("too many era stake values")
	ErrTooManyUnbondingChunks     = New("too many unbonding chunks")

	// temporal
	ErrCannotClaimInFutureEra    = New("cannot claim in current or future era")
	ErrAlreadyClaimedInThisEra   = New("already claimed in this era")
	ErrEraNotFound               = New("era not found")
	ErrUnclaimedRewardsRemaining = New("unclaimed rewards remaining")
	ErrNothingToWithdraw         = New("nothing to withdraw")

	// arithmetic
	ErrArithmeticOverflow  = New("arithmetic overflow")
	ErrArithmeticUnderflow = New("arithmetic underflow")
)
