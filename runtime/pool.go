// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"sync"

	"github.com/pkg/errors"
)

var ErrPoolFull = errors.New("extrinsic pool is full")

// Pool queues extrinsics for the next block, in submission order.
type Pool struct {
	mu      sync.Mutex
	pending []Extrinsic
	limit   int
}

func NewPool(limit int) *Pool {
	return &Pool{limit: limit}
}

func (p *Pool) Add(ext Extrinsic) error {
	if ext.Call == nil {
		return errors.New("nil call")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.pending) >= p.limit {
		return ErrPoolFull
	}
	p.pending = append(p.pending, ext)
	metricPoolSize().Set(int64(len(p.pending)))
	return nil
}

func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

// Drain takes at most max queued extrinsics, oldest first.
func (p *Pool) Drain(max int) []Extrinsic {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := min(max, len(p.pending))
	out := make([]Extrinsic, n)
	copy(out, p.pending)
	p.pending = append(p.pending[:0], p.pending[n:]...)
	metricPoolSize().Set(int64(len(p.pending)))
	return out
}
