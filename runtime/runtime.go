// Copyright (c) 2018 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime executes blocks of the creator staking chain: the block hooks, the
// dispatch of calls with rollback on failure, and the commit of the resulting state.
package runtime

import (
	"sync"
	"time"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/dappforce/subsocial-go/builtin/balances"
	"github.com/dappforce/subsocial-go/builtin/creatorstaking"
	"github.com/dappforce/subsocial-go/builtin/creatorstaking/reverts"
	"github.com/dappforce/subsocial-go/builtin/spaces"
	"github.com/dappforce/subsocial-go/builtin/storage"
	"github.com/dappforce/subsocial-go/kv"
	"github.com/dappforce/subsocial-go/log"
	"github.com/dappforce/subsocial-go/state"
	"github.com/dappforce/subsocial-go/subsocial"
)

var logger = log.WithContext("pkg", "runtime")

// phases of a block an event can be emitted in, besides the name of a call
const (
	PhaseInitialization = "initialization"
	PhaseFinalization   = "finalization"
	PhaseGenesis        = "genesis"
)

// EventRecord is an event with the block phase that emitted it.
type EventRecord struct {
	Phase string
	Event creatorstaking.Event
}

// Receipt is the outcome of one extrinsic.
type Receipt struct {
	Call     string
	Origin   string
	Reverted bool
	Error    error
}

// BlockResult is the outcome of an executed block.
type BlockResult struct {
	Number   subsocial.BlockNumber
	NewEra   bool
	Receipts []Receipt
	Events   []EventRecord
}

// Runtime is to support block execution.
// Blocks are executed one at a time. Queries may run concurrently between blocks.
type Runtime struct {
	mu    sync.RWMutex
	state *state.State

	balances *balances.Balances
	spaces   *spaces.Spaces
	staker   *creatorstaking.Staker

	number      *storage.Value[subsocial.BlockNumber]
	initialized *storage.Value[bool]

	phase  string
	events []EventRecord
}

// New create a Runtime object over the store.
func New(store kv.Store, cfg subsocial.Config) (*Runtime, error) {
	params, err := creatorstaking.NewParams(&cfg)
	if err != nil {
		return nil, err
	}
	st := state.New(store)
	rt := &Runtime{state: st}
	rt.balances = balances.New(storage.NewContext("Balances", st))
	rt.spaces = spaces.New(storage.NewContext("Spaces", st))
	rt.staker = creatorstaking.New(storage.NewContext("CreatorStaking", st), params, rt.balances, rt.spaces, rt)

	system := storage.NewContext("System", st)
	rt.number = storage.NewValue[subsocial.BlockNumber](system, "Number")
	rt.initialized = storage.NewValue[bool](system, "Initialized")
	return rt, nil
}

func (rt *Runtime) State() *state.State            { return rt.state }
func (rt *Runtime) Staker() *creatorstaking.Staker { return rt.staker }
func (rt *Runtime) Balances() *balances.Balances   { return rt.balances }
func (rt *Runtime) Spaces() *spaces.Spaces         { return rt.spaces }
func (rt *Runtime) Params() creatorstaking.Params  { return rt.staker.Params() }

// Emit records an event of the running phase.
func (rt *Runtime) Emit(e creatorstaking.Event) {
	rt.events = append(rt.events, EventRecord{Phase: rt.phase, Event: e})
}

// Initialized reports whether the genesis state was written.
func (rt *Runtime) Initialized() (bool, error) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.initialized.Get()
}

// BlockNumber returns the number of the last executed block, 0 at genesis.
func (rt *Runtime) BlockNumber() (subsocial.BlockNumber, error) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.number.Get()
}

// ExecuteBlock executes the next block: the initialization hook, the extrinsics in order and the
// finalization hook, then commits the state.
// A failed extrinsic is reverted and reported in its receipt, it does not fail the block.
// A failing hook aborts the block and nothing of it is committed.
func (rt *Runtime) ExecuteBlock(extrinsics ...Extrinsic) (*BlockResult, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	startTime := time.Now()
	ok, err := rt.initialized.Get()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("genesis not initialized")
	}
	parent, err := rt.number.Get()
	if err != nil {
		return nil, err
	}
	number := parent + 1

	rt.events = nil
	checkpoint := rt.state.NewCheckpoint()
	result, err := rt.executeBlock(number, extrinsics)
	if err != nil {
		rt.state.RevertTo(checkpoint)
		rt.events = nil
		return nil, errors.Wrapf(err, "block %d", number)
	}
	if err := rt.number.Set(number); err != nil {
		return nil, err
	}
	if err := rt.state.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit state")
	}
	result.Events = rt.events
	rt.events = nil

	metricBlockNumber().Set(int64(number))
	metricBlockDuration().Observe(time.Since(startTime).Milliseconds())
	logger.Debug("executed block", "number", number, "extrinsics", len(extrinsics), "events", len(result.Events))
	return result, nil
}

func (rt *Runtime) executeBlock(number subsocial.BlockNumber, extrinsics []Extrinsic) (*BlockResult, error) {
	result := &BlockResult{Number: number, Receipts: make([]Receipt, 0, len(extrinsics))}

	rt.phase = PhaseInitialization
	newEra, err := rt.staker.OnInitialize(number)
	if err != nil {
		return nil, errors.Wrap(err, "on initialize")
	}
	result.NewEra = newEra

	for _, ext := range extrinsics {
		receipt := Receipt{Call: ext.Call.Name(), Origin: ext.Origin.String()}
		if err := rt.dispatch(ext); err != nil {
			receipt.Reverted = true
			receipt.Error = err
		}
		result.Receipts = append(result.Receipts, receipt)
	}

	rt.phase = PhaseFinalization
	if err := rt.staker.OnFinalize(number); err != nil {
		return nil, errors.Wrap(err, "on finalize")
	}
	return result, nil
}

// dispatch runs a call atomically: on error every storage change and event of the call is reverted.
func (rt *Runtime) dispatch(ext Extrinsic) error {
	name := ext.Call.Name()
	rt.phase = name

	checkpoint := rt.state.NewCheckpoint()
	events := len(rt.events)
	if err := ext.Call.dispatch(rt, ext.Origin); err != nil {
		rt.state.RevertTo(checkpoint)
		rt.events = rt.events[:events]
		outcome := callOutcome(err)
		metricCalls().AddWithLabel(1, map[string]string{"call": name, "outcome": outcome})
		if outcome == outcomeReverted {
			logger.Debug("call reverted", "call", name, "origin", ext.Origin, "error", err)
		} else {
			logger.Warn("call failed", "call", name, "origin", ext.Origin, "error", err)
		}
		return err
	}
	metricCalls().AddWithLabel(1, map[string]string{"call": name, "outcome": outcomeOK})
	return nil
}

// call outcomes as labelled in metrics
const (
	outcomeOK       = "ok"
	outcomeReverted = "reverted"
	outcomeFailed   = "failed"
)

// callOutcome tells a pallet revert, the expected rejection of a call, from any other failure
// such as a bad origin or a storage error.
func callOutcome(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case reverts.IsRevertErr(err):
		return outcomeReverted
	default:
		return outcomeFailed
	}
}

//
// Queries - no state change
//

func (rt *Runtime) CurrentEra() (subsocial.EraIndex, error) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.staker.CurrentEra()
}

func (rt *Runtime) FreeBalance(who subsocial.AccountID) (uint256.Int, error) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.balances.FreeBalance(who)
}

func (rt *Runtime) TotalIssuance() (uint256.Int, error) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.balances.TotalIssuance()
}

// View runs fn with read access to the staking engine. fn must not change state.
func (rt *Runtime) View(fn func(s *creatorstaking.Staker) error) error {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return fn(rt.staker)
}

func (rt *Runtime) EstimatedBackerRewardsByCreators(who subsocial.AccountID, ids []subsocial.SpaceID) ([]creatorstaking.CreatorAmount, error) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.staker.EstimatedBackerRewardsByCreators(who, ids)
}

func (rt *Runtime) WithdrawableAmountsFromInactiveCreators(who subsocial.AccountID) ([]creatorstaking.CreatorAmount, error) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.staker.WithdrawableAmountsFromInactiveCreators(who)
}

func (rt *Runtime) AvailableClaimsByBacker(who subsocial.AccountID) ([]creatorstaking.CreatorClaims, error) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.staker.AvailableClaimsByBacker(who)
}
