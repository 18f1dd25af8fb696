// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package storage provides typed storage items on top of the runtime state.
// Values are rlp encoded. Keys are the item prefix followed by the raw key bytes,
// so that a double map can be walked by its first key.
package storage

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/dappforce/subsocial-go/state"
)

// Key is implemented by every type usable as a map key.
type Key interface {
	Bytes() []byte
}

// KeyDecoder restores a key from its Bytes form.
type KeyDecoder[K any] func([]byte) (K, error)

// Context binds storage items of one module to the runtime state.
type Context struct {
	module string
	state  *state.State
}

func NewContext(module string, state *state.State) *Context {
	return &Context{
		module: module,
		state:  state,
	}
}

func (c *Context) State() *state.State {
	return c.state
}

// prefix returns the key prefix of the named item.
func (c *Context) prefix(item string) []byte {
	p := make([]byte, 0, len(c.module)+len(item)+2)
	p = append(p, c.module...)
	p = append(p, ':')
	p = append(p, item...)
	return append(p, ':')
}

func decode[V any](raw []byte, value *V) error {
	if len(raw) == 0 {
		return nil
	}
	return rlp.DecodeBytes(raw, value)
}

func join(parts ...[]byte) []byte {
	var n int
	for _, p := range parts {
		n += len(p)
	}
	k := make([]byte, 0, n)
	for _, p := range parts {
		k = append(k, p...)
	}
	return k
}
