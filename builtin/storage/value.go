// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

// Value is a single storage slot. Reading an absent value yields the zero value.
type Value[V any] struct {
	context *Context
	key     []byte
	name    string
}

func NewValue[V any](context *Context, name string) *Value[V] {
	return &Value[V]{context: context, key: context.prefix(name), name: name}
}

func (v *Value[V]) Get() (value V, err error) {
	raw, err := v.context.state.Get(v.key)
	if err != nil {
		return value, err
	}
	if err := decode(raw, &value); err != nil {
		return value, errors.Wrapf(err, "decode %s", v.name)
	}
	return value, nil
}

// Exists returns whether a value was ever set and not killed.
func (v *Value[V]) Exists() (bool, error) {
	return v.context.state.Has(v.key)
}

func (v *Value[V]) Set(value V) error {
	raw, err := rlp.EncodeToBytes(value)
	if err != nil {
		return errors.Wrapf(err, "encode %s", v.name)
	}
	v.context.state.Set(v.key, raw)
	return nil
}

// Kill removes the value.
func (v *Value[V]) Kill() {
	v.context.state.Delete(v.key)
}
