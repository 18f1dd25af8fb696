// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"os"
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/dappforce/subsocial-go/subsocial"
)

// Genesis is the initial state of a chain.
type Genesis struct {
	Accounts []GenesisAccount `yaml:"accounts"`
	Spaces   []GenesisSpace   `yaml:"spaces"`
	Creators []uint64         `yaml:"creators"` // spaces registered as creators without deposit
}

// GenesisAccount endows an account, given as hex or as a development seed.
type GenesisAccount struct {
	Account string `yaml:"account"`
	Balance string `yaml:"balance"`
}

type GenesisSpace struct {
	ID    uint64 `yaml:"id"`
	Owner string `yaml:"owner"`
}

// LoadGenesis reads a yaml genesis file.
func LoadGenesis(path string) (*Genesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis")
	}
	var g Genesis
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	return &g, nil
}

// DevGenesis endows the development accounts with a million units each.
func DevGenesis() *Genesis {
	balance := uint256.NewInt(0).Mul(uint256.NewInt(1_000_000), uint256.NewInt(subsocial.UNIT)).Dec()
	g := &Genesis{}
	for _, seed := range []string{"alice", "bob", "charlie", "dave", "eve", "ferdie"} {
		g.Accounts = append(g.Accounts, GenesisAccount{Account: seed, Balance: balance})
	}
	return g
}

func resolveAccount(s string) (subsocial.AccountID, error) {
	if strings.HasPrefix(s, "0x") {
		return subsocial.ParseAccountID(s)
	}
	if s == "" {
		return subsocial.AccountID{}, errors.New("empty account")
	}
	return subsocial.DevAccount(s), nil
}

// InitGenesis writes the genesis state and commits it. It fails on an initialized store.
func (rt *Runtime) InitGenesis(g *Genesis) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	done, err := rt.initialized.Get()
	if err != nil {
		return err
	}
	if done {
		return errors.New("genesis already initialized")
	}

	rt.phase = PhaseGenesis
	if err := rt.staker.InitGenesis(); err != nil {
		return errors.Wrap(err, "creator staking genesis")
	}
	for _, acc := range g.Accounts {
		who, err := resolveAccount(acc.Account)
		if err != nil {
			return errors.Wrapf(err, "genesis account %q", acc.Account)
		}
		balance, err := uint256.FromDecimal(acc.Balance)
		if err != nil {
			return errors.Wrapf(err, "genesis balance of %q", acc.Account)
		}
		if err := rt.balances.Deposit(who, balance); err != nil {
			return err
		}
	}
	for _, sp := range g.Spaces {
		owner, err := resolveAccount(sp.Owner)
		if err != nil {
			return errors.Wrapf(err, "genesis space %d", sp.ID)
		}
		if err := rt.spaces.ForceCreateSpace(subsocial.SpaceID(sp.ID), owner); err != nil {
			return errors.Wrapf(err, "genesis space %d", sp.ID)
		}
	}
	for _, id := range g.Creators {
		if err := rt.staker.ForceRegisterCreator(subsocial.SpaceID(id)); err != nil {
			return errors.Wrapf(err, "genesis creator %d", id)
		}
	}
	if err := rt.initialized.Set(true); err != nil {
		return err
	}
	rt.events = nil
	if err := rt.state.Commit(); err != nil {
		return errors.Wrap(err, "commit genesis")
	}
	logger.Info("genesis initialized", "accounts", len(g.Accounts), "spaces", len(g.Spaces), "creators", len(g.Creators))
	return nil
}
