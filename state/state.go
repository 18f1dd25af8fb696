// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/dappforce/subsocial-go/cache"
	"github.com/dappforce/subsocial-go/kv"
	"github.com/dappforce/subsocial-go/stackedmap"
)

const defaultCacheSize = 4096

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// State is a revertable view over a kv store.
// Writes stay in memory until Commit. A nil or empty value means the key is absent.
type State struct {
	store kv.Store
	cache *cache.LRU             // committed values, keyed by string(key)
	sm    *stackedmap.StackedMap // keeps revisions of values
}

// New create state object over the given store.
func New(store kv.Store) *State {
	lru, _ := cache.NewLRU(defaultCacheSize)
	s := &State{
		store: store,
		cache: lru,
	}
	s.sm = stackedmap.New(func(key any) (any, bool, error) {
		v, err := s.load(key.(string))
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	})
	return s
}

// load reads the committed value of key.
func (s *State) load(key string) ([]byte, error) {
	v, err := s.cache.GetOrLoad(key, func(any) (any, error) {
		v, err := s.store.Get([]byte(key))
		if err != nil {
			if !s.store.IsNotFound(err) {
				return nil, err
			}
			return []byte(nil), nil
		}
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// CacheStats returns the hit and miss counters of the committed value cache.
func (s *State) CacheStats() (hit, miss int64) {
	return s.cache.Stats()
}

// Get returns the value of key, or nil if absent.
// The returned slice must not be modified.
func (s *State) Get(key []byte) ([]byte, error) {
	v, _, err := s.sm.Get(string(key))
	if err != nil {
		return nil, &Error{err}
	}
	return v.([]byte), nil
}

// Has returns whether key holds a value.
func (s *State) Has(key []byte) (bool, error) {
	v, err := s.Get(key)
	if err != nil {
		return false, err
	}
	return len(v) > 0, nil
}

// Set sets the value of key. An empty value removes the key.
func (s *State) Set(key, value []byte) {
	if len(value) == 0 {
		s.sm.Put(string(key), []byte(nil))
		return
	}
	s.sm.Put(string(key), bytes.Clone(value))
}

// Delete removes key.
func (s *State) Delete(key []byte) {
	s.sm.Put(string(key), []byte(nil))
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
	if s.sm.Depth() == 0 {
		s.sm.Push()
	}
}

// Iterate calls cb for every present key with the given prefix, in ascending key order.
// Both committed and pending values are visited. Iteration stops when cb returns false.
// cb must not write to the state.
func (s *State) Iterate(prefix []byte, cb func(key, value []byte) bool) error {
	keys := make(map[string]struct{})

	iter := s.store.Iterate(kv.PrefixRange(prefix))
	for iter.Next() {
		keys[string(iter.Key())] = struct{}{}
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return &Error{err}
	}

	s.sm.Journal(func(k, _ any) bool {
		if key := k.(string); strings.HasPrefix(key, string(prefix)) {
			keys[key] = struct{}{}
		}
		return true
	})

	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	for _, k := range sorted {
		v, err := s.Get([]byte(k))
		if err != nil {
			return err
		}
		if len(v) == 0 {
			continue
		}
		if !cb([]byte(k), v) {
			break
		}
	}
	return nil
}

// Commit writes all pending changes into the store and resets the revisions.
func (s *State) Commit() error {
	changes := make(map[string][]byte)
	s.sm.Journal(func(k, v any) bool {
		changes[k.(string)] = v.([]byte)
		return true
	})
	if len(changes) == 0 {
		return nil
	}

	var puts, deletes int64
	bulk := s.store.Bulk()
	for k, v := range changes {
		if len(v) == 0 {
			if err := bulk.Delete([]byte(k)); err != nil {
				return &Error{err}
			}
			deletes++
		} else {
			if err := bulk.Put([]byte(k), v); err != nil {
				return &Error{err}
			}
			puts++
		}
	}
	if err := bulk.Write(); err != nil {
		return &Error{err}
	}

	for k, v := range changes {
		s.cache.Add(k, v)
	}
	s.sm.PopTo(0)
	s.sm.Push()

	metricCommitKeys().AddWithLabel(puts, map[string]string{"type": "put"})
	metricCommitKeys().AddWithLabel(deletes, map[string]string{"type": "delete"})
	return nil
}
