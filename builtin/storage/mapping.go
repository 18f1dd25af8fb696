// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

// Map is a key/value storage item. Absent entries read as the zero value.
type Map[K Key, V any] struct {
	context *Context
	prefix  []byte
	name    string
	decode  KeyDecoder[K]
}

func NewMap[K Key, V any](context *Context, name string, decode KeyDecoder[K]) *Map[K, V] {
	return &Map[K, V]{context: context, prefix: context.prefix(name), name: name, decode: decode}
}

func (m *Map[K, V]) Get(key K) (value V, err error) {
	value, _, err = m.TryGet(key)
	return
}

// TryGet is Get that also reports whether the entry is present.
func (m *Map[K, V]) TryGet(key K) (value V, ok bool, err error) {
	raw, err := m.context.state.Get(join(m.prefix, key.Bytes()))
	if err != nil {
		return value, false, err
	}
	if len(raw) == 0 {
		return value, false, nil
	}
	if err := decode(raw, &value); err != nil {
		return value, false, errors.Wrapf(err, "decode %s", m.name)
	}
	return value, true, nil
}

func (m *Map[K, V]) Contains(key K) (bool, error) {
	return m.context.state.Has(join(m.prefix, key.Bytes()))
}

func (m *Map[K, V]) Set(key K, value V) error {
	raw, err := rlp.EncodeToBytes(value)
	if err != nil {
		return errors.Wrapf(err, "encode %s", m.name)
	}
	m.context.state.Set(join(m.prefix, key.Bytes()), raw)
	return nil
}

func (m *Map[K, V]) Remove(key K) {
	m.context.state.Delete(join(m.prefix, key.Bytes()))
}

// Iterate walks all entries in key bytes order. It stops early when cb returns false or an error.
func (m *Map[K, V]) Iterate(cb func(key K, value V) (bool, error)) error {
	return iterate(m.context, m.prefix, m.name, m.decode, cb)
}

func iterate[K, V any](ctx *Context, prefix []byte, name string, decodeKey KeyDecoder[K], cb func(K, V) (bool, error)) error {
	var cbErr error
	err := ctx.state.Iterate(prefix, func(k, raw []byte) bool {
		key, err := decodeKey(k[len(prefix):])
		if err != nil {
			cbErr = errors.Wrapf(err, "decode %s key", name)
			return false
		}
		var value V
		if err := decode(raw, &value); err != nil {
			cbErr = errors.Wrapf(err, "decode %s", name)
			return false
		}
		next, err := cb(key, value)
		if err != nil {
			cbErr = err
			return false
		}
		return next
	})
	if err != nil {
		return err
	}
	return cbErr
}
