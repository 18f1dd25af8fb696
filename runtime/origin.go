// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/pkg/errors"

	"github.com/dappforce/subsocial-go/subsocial"
)

// ErrBadOrigin is returned when a call is dispatched from an origin it does not accept.
var ErrBadOrigin = errors.New("bad origin")

// Origin is who dispatches a call: root, or a signed account.
type Origin struct {
	root   bool
	signer subsocial.AccountID
}

func Root() Origin {
	return Origin{root: true}
}

func Signed(who subsocial.AccountID) Origin {
	return Origin{signer: who}
}

func (o Origin) IsRoot() bool {
	return o.root
}

// EnsureRoot fails with ErrBadOrigin unless the origin is root.
func (o Origin) EnsureRoot() error {
	if !o.root {
		return ErrBadOrigin
	}
	return nil
}

// EnsureSigned returns the signer, or ErrBadOrigin for root.
func (o Origin) EnsureSigned() (subsocial.AccountID, error) {
	if o.root {
		return subsocial.AccountID{}, ErrBadOrigin
	}
	return o.signer, nil
}

func (o Origin) String() string {
	if o.root {
		return "root"
	}
	return o.signer.AbbrevString()
}
