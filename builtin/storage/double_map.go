// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

// DoubleMap is a storage item keyed by two keys. Entries sharing the first key
// are stored next to each other and can be walked with IteratePrefix.
type DoubleMap[K1 Key, K2 Key, V any] struct {
	context *Context
	prefix  []byte
	name    string
	decode  KeyDecoder[K2]
}

func NewDoubleMap[K1 Key, K2 Key, V any](context *Context, name string, decode KeyDecoder[K2]) *DoubleMap[K1, K2, V] {
	return &DoubleMap[K1, K2, V]{context: context, prefix: context.prefix(name), name: name, decode: decode}
}

func (m *DoubleMap[K1, K2, V]) key(k1 K1, k2 K2) []byte {
	return join(m.prefix, k1.Bytes(), k2.Bytes())
}

func (m *DoubleMap[K1, K2, V]) Get(k1 K1, k2 K2) (value V, err error) {
	value, _, err = m.TryGet(k1, k2)
	return
}

// TryGet is Get that also reports whether the entry is present.
func (m *DoubleMap[K1, K2, V]) TryGet(k1 K1, k2 K2) (value V, ok bool, err error) {
	raw, err := m.context.state.Get(m.key(k1, k2))
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

func (m *DoubleMap[K1, K2, V]) Contains(k1 K1, k2 K2) (bool, error) {
	return m.context.state.Has(m.key(k1, k2))
}

func (m *DoubleMap[K1, K2, V]) Set(k1 K1, k2 K2, value V) error {
	raw, err := rlp.EncodeToBytes(value)
	if err != nil {
		return errors.Wrapf(err, "encode %s", m.name)
	}
	m.context.state.Set(m.key(k1, k2), raw)
	return nil
}

func (m *DoubleMap[K1, K2, V]) Remove(k1 K1, k2 K2) {
	m.context.state.Delete(m.key(k1, k2))
}

// IteratePrefix walks the entries under k1 in second key order.
func (m *DoubleMap[K1, K2, V]) IteratePrefix(k1 K1, cb func(k2 K2, value V) (bool, error)) error {
	return iterate(m.context, join(m.prefix, k1.Bytes()), m.name, m.decode, cb)
}
