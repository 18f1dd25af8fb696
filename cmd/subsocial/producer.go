// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/dappforce/subsocial-go/runtime"
)

// producer executes a block on every tick with the queued extrinsics, as a single authority.
type producer struct {
	rt            *runtime.Runtime
	pool          *runtime.Pool
	interval      time.Duration
	maxExtrinsics int
}

func (p *producer) Run(ctx context.Context) error {
	logger.Info("producer started", "interval", p.interval)
	defer logger.Info("producer stopped")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := p.produce(); err != nil {
				return err
			}
		}
	}
}

func (p *producer) produce() error {
	extrinsics := p.pool.Drain(p.maxExtrinsics)
	result, err := p.rt.ExecuteBlock(extrinsics...)
	if err != nil {
		return errors.Wrap(err, "execute block")
	}

	var reverted int
	for _, r := range result.Receipts {
		if r.Reverted {
			reverted++
			logger.Debug("extrinsic reverted", "call", r.Call, "origin", r.Origin, "err", r.Error)
		}
	}
	logger.Info("📦 block executed",
		"number", result.Number,
		"extrinsics", len(result.Receipts),
		"reverted", reverted,
		"events", len(result.Events),
	)
	if result.NewEra {
		era, err := p.rt.CurrentEra()
		if err != nil {
			return err
		}
		logger.Info("era started", "era", era, "block", result.Number)
	}
	return nil
}
