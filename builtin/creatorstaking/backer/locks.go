// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package backer

import (
	"sort"

	"github.com/holiman/uint256"

	"github.com/dappforce/subsocial-go/builtin/creatorstaking/reverts"
	"github.com/dappforce/subsocial-go/subsocial"
)

// UnbondingChunk is unstaked funds that can be withdrawn from UnlockEra on.
type UnbondingChunk struct {
	Amount    uint256.Int
	UnlockEra subsocial.EraIndex
}

// UnbondingInfo is the unbonding queue, ordered by unlock era, one chunk per era.
type UnbondingInfo struct {
	Chunks []UnbondingChunk
}

func (u *UnbondingInfo) Len() int {
	return len(u.Chunks)
}

func (u *UnbondingInfo) IsEmpty() bool {
	return len(u.Chunks) == 0
}

// Sum returns the total amount unbonding.
func (u *UnbondingInfo) Sum() uint256.Int {
	var sum uint256.Int
	for i := range u.Chunks {
		sum.Add(&sum, &u.Chunks[i].Amount)
	}
	return sum
}

// Add queues chunk, merging it into the chunk with the same unlock era if any.
func (u *UnbondingInfo) Add(chunk UnbondingChunk) error {
	pos := sort.Search(len(u.Chunks), func(i int) bool {
		return u.Chunks[i].UnlockEra >= chunk.UnlockEra
	})
	if pos < len(u.Chunks) && u.Chunks[pos].UnlockEra == chunk.UnlockEra {
		existing := &u.Chunks[pos]
		var amount uint256.Int
		if _, overflow := amount.AddOverflow(&existing.Amount, &chunk.Amount); overflow {
			return reverts.ErrArithmeticOverflow
		}
		existing.Amount = amount
		return nil
	}
	u.Chunks = append(u.Chunks, UnbondingChunk{})
	copy(u.Chunks[pos+1:], u.Chunks[pos:])
	u.Chunks[pos] = chunk
	return nil
}

// Partition splits the queue into chunks unlocked at era and the ones still unbonding.
func (u *UnbondingInfo) Partition(era subsocial.EraIndex) (unlocked, remaining UnbondingInfo) {
	for _, c := range u.Chunks {
		if c.UnlockEra <= era {
			unlocked.Chunks = append(unlocked.Chunks, c)
		} else {
			remaining.Chunks = append(remaining.Chunks, c)
		}
	}
	return
}

// Locks is the staking lock of a backer: everything staked plus everything unbonding.
type Locks struct {
	TotalLocked   uint256.Int
	UnbondingInfo UnbondingInfo
}

func (l *Locks) IsEmpty() bool {
	return l.TotalLocked.IsZero() && l.UnbondingInfo.IsEmpty()
}

func (l *Locks) Lock(amount *uint256.Int) error {
	var total uint256.Int
	if _, overflow := total.AddOverflow(&l.TotalLocked, amount); overflow {
		return reverts.ErrArithmeticOverflow
	}
	l.TotalLocked = total
	return nil
}

func (l *Locks) Unlock(amount *uint256.Int) error {
	var total uint256.Int
	if _, underflow := total.SubOverflow(&l.TotalLocked, amount); underflow {
		return reverts.ErrArithmeticUnderflow
	}
	l.TotalLocked = total
	return nil
}
