// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRU_GetOrLoad(t *testing.T) {
	c, err := NewLRU(2)
	require.NoError(t, err)

	var loads int
	loader := func(key any) (any, error) {
		loads++
		return key.(string) + "!", nil
	}

	v, err := c.GetOrLoad("a", loader)
	require.NoError(t, err)
	assert.Equal(t, "a!", v)

	v, err = c.GetOrLoad("a", loader)
	require.NoError(t, err)
	assert.Equal(t, "a!", v)
	assert.Equal(t, 1, loads)

	hit, miss := c.Stats()
	assert.Equal(t, int64(1), hit)
	assert.Equal(t, int64(1), miss)
}

func TestLRU_LoadError(t *testing.T) {
	c, err := NewLRU(2)
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = c.GetOrLoad("a", func(any) (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, c.Contains("a"))
}

func TestLRU_Eviction(t *testing.T) {
	c, err := NewLRU(2)
	require.NoError(t, err)

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)
	assert.False(t, c.Contains("a"))
	assert.Equal(t, 2, c.Len())

	_, err = NewLRU(0)
	assert.Error(t, err)
}
