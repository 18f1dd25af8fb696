// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package balances

import (
	"fmt"

	"github.com/holiman/uint256"
)

// LockID names a lock, so that a module can only update its own.
type LockID [8]byte

// NewLockID builds a lock id from an 8 byte string.
func NewLockID(s string) LockID {
	var id LockID
	copy(id[:], s)
	return id
}

func (l LockID) Bytes() []byte {
	return l[:]
}

func (l LockID) String() string {
	return string(l[:])
}

func decodeLockID(b []byte) (LockID, error) {
	var id LockID
	if len(b) != len(id) {
		return id, fmt.Errorf("lock id: invalid length %d", len(b))
	}
	copy(id[:], b)
	return id, nil
}

type account struct {
	Free     uint256.Int
	Reserved uint256.Int
}

// Imbalance is an amount taken out of, or about to be put into, circulation.
// An imbalance that is never resolved into an account is burned.
type Imbalance struct {
	amount uint256.Int
}

func (i Imbalance) Amount() uint256.Int {
	return i.amount
}

// Split separates at most amount from the imbalance.
func (i Imbalance) Split(amount *uint256.Int) (Imbalance, Imbalance) {
	if amount.Cmp(&i.amount) >= 0 {
		return i, Imbalance{}
	}
	var rest uint256.Int
	rest.Sub(&i.amount, amount)
	return Imbalance{amount: *amount}, Imbalance{amount: rest}
}
