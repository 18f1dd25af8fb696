// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dappforce/subsocial-go/lvldb"
	"github.com/dappforce/subsocial-go/runtime"
	"github.com/dappforce/subsocial-go/subsocial"
)

func newProducer(t *testing.T) *producer {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := subsocial.DefaultConfig()
	cfg.BlockPerEra = 2
	rt, err := runtime.New(db, cfg)
	require.NoError(t, err)
	require.NoError(t, rt.InitGenesis(runtime.DevGenesis()))
	return &producer{rt: rt, pool: runtime.NewPool(10), interval: time.Millisecond, maxExtrinsics: 1}
}

func TestProducer_Produce(t *testing.T) {
	p := newProducer(t)
	bob := subsocial.DevAccount("bob")
	require.NoError(t, p.pool.Add(runtime.Extrinsic{Origin: runtime.Signed(bob), Call: runtime.CreateSpace{}}))
	require.NoError(t, p.pool.Add(runtime.Extrinsic{Origin: runtime.Signed(bob), Call: runtime.ForceNewEra{}}))

	require.NoError(t, p.produce())
	assert.Equal(t, 1, p.pool.Len(), "one extrinsic per block")
	owner, err := p.rt.Spaces().SpaceOwner(1001)
	require.NoError(t, err)
	assert.Equal(t, bob, owner)

	// the reverted call doesn't stop the producer
	require.NoError(t, p.produce())
	assert.Equal(t, 0, p.pool.Len())

	number, err := p.rt.BlockNumber()
	require.NoError(t, err)
	assert.Equal(t, subsocial.BlockNumber(2), number)
}

func TestProducer_Run(t *testing.T) {
	p := newProducer(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	assert.Eventually(t, func() bool {
		era, err := p.rt.CurrentEra()
		return err == nil && era >= 2
	}, 5*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("producer did not stop")
	}
}
