// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subsocial

import (
	"encoding/binary"
	"fmt"
	"strconv"
)

// BlockNumber is the height of a block.
type BlockNumber = uint32

// EraIndex numbers staking eras, starting at 1. Era 0 only exists before the first block.
type EraIndex uint32

// Bytes returns the big endian form, used as storage key.
func (e EraIndex) Bytes() []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(e))
	return b[:]
}

// SpaceID identifies a space. A registered creator is keyed by its space id.
type SpaceID uint64

// Bytes returns the big endian form, used as storage key.
func (s SpaceID) Bytes() []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(s))
	return b[:]
}

func (s SpaceID) String() string {
	return strconv.FormatUint(uint64(s), 10)
}

// ParseSpaceID parses the decimal form of a space id.
func ParseSpaceID(s string) (SpaceID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return SpaceID(v), nil
}

// DecodeEraIndex decodes an era index from its storage key form.
func DecodeEraIndex(b []byte) (EraIndex, error) {
	if len(b) != 4 {
		return 0, fmt.Errorf("era index: invalid length %d", len(b))
	}
	return EraIndex(binary.BigEndian.Uint32(b)), nil
}

// DecodeSpaceID decodes a space id from its storage key form.
func DecodeSpaceID(b []byte) (SpaceID, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("space id: invalid length %d", len(b))
	}
	return SpaceID(binary.BigEndian.Uint64(b)), nil
}
