// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subsocial

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// AccountIDLength length of account id in bytes.
const AccountIDLength = 32

// AccountID identifies an account on chain.
type AccountID [AccountIDLength]byte

var (
	_ json.Marshaler   = (*AccountID)(nil)
	_ json.Unmarshaler = (*AccountID)(nil)
)

// String implements the stringer interface.
func (a AccountID) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// AbbrevString returns abbrev string presentation.
func (a AccountID) AbbrevString() string {
	return fmt.Sprintf("0x%x…%x", a[:4], a[28:])
}

// Bytes returns byte slice form of the account id.
func (a AccountID) Bytes() []byte {
	return a[:]
}

// IsZero returns if the account id has all zero bytes.
func (a AccountID) IsZero() bool {
	return a == AccountID{}
}

// MarshalJSON implements json.Marshaler.
func (a *AccountID) MarshalJSON() ([]byte, error) {
	if a == nil {
		return json.Marshal(nil)
	}
	return json.Marshal(a.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *AccountID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAccountID(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAccountID converts a hex string into AccountID, the 0x prefix is optional.
func ParseAccountID(s string) (AccountID, error) {
	if len(s) == AccountIDLength*2 {
	} else if len(s) == AccountIDLength*2+2 {
		if strings.ToLower(s[:2]) != "0x" {
			return AccountID{}, errors.New("invalid prefix")
		}
		s = s[2:]
	} else {
		return AccountID{}, errors.New("invalid length")
	}

	var a AccountID
	if _, err := hex.Decode(a[:], []byte(s)); err != nil {
		return AccountID{}, err
	}
	return a, nil
}

// BytesToAccountID converts bytes slice into AccountID.
// If b is larger than the account id length, b will be cropped (from the left).
// If b is smaller, it will be extended (from the left).
func BytesToAccountID(b []byte) AccountID {
	var a AccountID
	if len(b) > len(a) {
		b = b[len(b)-AccountIDLength:]
	}
	copy(a[AccountIDLength-len(b):], b)
	return a
}

// PalletID is the 8 byte identifier a runtime module derives its accounts from.
type PalletID [8]byte

// NewPalletID builds a pallet id from a string, e.g. "df/crtst".
func NewPalletID(s string) (PalletID, error) {
	var id PalletID
	if len(s) != len(id) {
		return id, fmt.Errorf("pallet id must be %d bytes, got %d", len(id), len(s))
	}
	copy(id[:], s)
	return id, nil
}

// Account returns the keyless account owned by the pallet.
// The layout is "modl" || pallet id, zero padded to 32 bytes.
func (p PalletID) Account() AccountID {
	var a AccountID
	n := copy(a[:], "modl")
	copy(a[n:], p[:])
	return a
}

// DevAccount derives a deterministic account from a human readable seed.
// Only meant for development networks and tests.
func DevAccount(seed string) AccountID {
	return BytesToAccountID(crypto.Keccak256([]byte(seed)))
}

// DecodeAccountID decodes an account id from its storage key form.
func DecodeAccountID(b []byte) (AccountID, error) {
	if len(b) != AccountIDLength {
		return AccountID{}, fmt.Errorf("account id: invalid length %d", len(b))
	}
	return BytesToAccountID(b), nil
}
