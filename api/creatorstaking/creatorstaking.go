// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package creatorstaking

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/dappforce/subsocial-go/api/utils"
	"github.com/dappforce/subsocial-go/builtin/creatorstaking"
	"github.com/dappforce/subsocial-go/builtin/creatorstaking/era"
	"github.com/dappforce/subsocial-go/runtime"
	"github.com/dappforce/subsocial-go/subsocial"
)

// maxQueryCreators bounds the creators of a single rewards estimation.
const maxQueryCreators = 100

type CreatorStaking struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *CreatorStaking {
	return &CreatorStaking{rt}
}

func parseAccount(req *http.Request) (subsocial.AccountID, error) {
	who, err := subsocial.ParseAccountID(mux.Vars(req)["account"])
	if err != nil {
		return subsocial.AccountID{}, utils.BadRequest(errors.WithMessage(err, "account"))
	}
	return who, nil
}

func parseCreatorID(s string) (subsocial.SpaceID, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, utils.BadRequest(errors.WithMessage(err, "creator id"))
	}
	return subsocial.SpaceID(id), nil
}

func parseEra(s string) (subsocial.EraIndex, error) {
	e, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, utils.BadRequest(errors.WithMessage(err, "era"))
	}
	return subsocial.EraIndex(e), nil
}

func (c *CreatorStaking) handleGetEra(w http.ResponseWriter, _ *http.Request) error {
	number, err := c.rt.BlockNumber()
	if err != nil {
		return err
	}
	result := &JSONEra{BlockNumber: number}
	if err := c.rt.View(func(s *creatorstaking.Staker) error {
		var err error
		if result.CurrentEra, err = s.CurrentEra(); err != nil {
			return err
		}
		if result.NextEraStartingBlock, err = s.NextEraStartingBlock(); err != nil {
			return err
		}
		force, err := s.ForceEra()
		if err != nil {
			return err
		}
		result.ForceNewEra = force == era.ForceNew
		if result.PalletDisabled, err = s.PalletDisabled(); err != nil {
			return err
		}
		reward, err := s.RewardPerBlock()
		if err != nil {
			return err
		}
		result.RewardPerBlock = reward.Dec()
		distribution, err := s.RewardDistributionConfig()
		if err != nil {
			return err
		}
		result.Distribution = convertDistribution(distribution)
		accumulated, err := s.BlockRewardAccumulator()
		if err != nil {
			return err
		}
		result.Accumulated = convertRewards(&accumulated)
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, result)
}

func (c *CreatorStaking) handleGetEraInfo(w http.ResponseWriter, req *http.Request) error {
	e, err := parseEra(mux.Vars(req)["era"])
	if err != nil {
		return err
	}
	var result *JSONEraInfo
	if err := c.rt.View(func(s *creatorstaking.Staker) error {
		info, ok, err := s.EraInfo(e)
		if err != nil {
			return err
		}
		if !ok {
			return utils.NotFound(errors.Errorf("era %d not found", e))
		}
		result = convertEraInfo(e, &info)
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, result)
}

func (c *CreatorStaking) handleGetCreator(w http.ResponseWriter, req *http.Request) error {
	id, err := parseCreatorID(mux.Vars(req)["id"])
	if err != nil {
		return err
	}
	var e subsocial.EraIndex
	if s := req.URL.Query().Get("era"); s != "" {
		if e, err = parseEra(s); err != nil {
			return err
		}
	}

	var result *JSONCreator
	if err := c.rt.View(func(s *creatorstaking.Staker) error {
		info, ok, err := s.Creator(id)
		if err != nil {
			return err
		}
		if !ok {
			return utils.NotFound(errors.Errorf("creator %d not found", id))
		}
		if e == 0 {
			if e, err = s.CurrentEra(); err != nil {
				return err
			}
		}
		stake, err := s.CreatorStakeInfo(id, e)
		if err != nil {
			return err
		}
		result = convertCreator(id, e, &info, &stake)
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, result)
}

func (c *CreatorStaking) handleGetBackerLocks(w http.ResponseWriter, req *http.Request) error {
	who, err := parseAccount(req)
	if err != nil {
		return err
	}
	var result *JSONBackerLocks
	if err := c.rt.View(func(s *creatorstaking.Staker) error {
		locks, err := s.BackerLocks(who)
		if err != nil {
			return err
		}
		result = convertLocks(who, &locks)
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, result)
}

func (c *CreatorStaking) handleGetBackerStakes(w http.ResponseWriter, req *http.Request) error {
	who, err := parseAccount(req)
	if err != nil {
		return err
	}
	id, err := parseCreatorID(mux.Vars(req)["id"])
	if err != nil {
		return err
	}
	var result []JSONEraStake
	if err := c.rt.View(func(s *creatorstaking.Staker) error {
		info, err := s.BackerStakes(who, id)
		if err != nil {
			return err
		}
		result = convertStakes(&info)
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, result)
}

func (c *CreatorStaking) handleEstimateRewards(w http.ResponseWriter, req *http.Request) error {
	who, err := parseAccount(req)
	if err != nil {
		return err
	}
	raw := req.URL.Query().Get("creators")
	if raw == "" {
		return utils.BadRequest(errors.New("creators: required"))
	}
	parts := strings.Split(raw, ",")
	if len(parts) > maxQueryCreators {
		return utils.BadRequest(errors.Errorf("creators: at most %d", maxQueryCreators))
	}
	ids := make([]subsocial.SpaceID, 0, len(parts))
	for _, p := range parts {
		id, err := parseCreatorID(strings.TrimSpace(p))
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}
	amounts, err := c.rt.EstimatedBackerRewardsByCreators(who, ids)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertAmounts(amounts))
}

func (c *CreatorStaking) handleGetWithdrawable(w http.ResponseWriter, req *http.Request) error {
	who, err := parseAccount(req)
	if err != nil {
		return err
	}
	amounts, err := c.rt.WithdrawableAmountsFromInactiveCreators(who)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertAmounts(amounts))
}

func (c *CreatorStaking) handleGetClaims(w http.ResponseWriter, req *http.Request) error {
	who, err := parseAccount(req)
	if err != nil {
		return err
	}
	claims, err := c.rt.AvailableClaimsByBacker(who)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertClaims(claims))
}

func (c *CreatorStaking) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/era").
		Methods(http.MethodGet).
		Name("creator_staking_get_era").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetEra))
	sub.Path("/eras/{era}").
		Methods(http.MethodGet).
		Name("creator_staking_get_era_info").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetEraInfo))
	sub.Path("/creators/{id}").
		Methods(http.MethodGet).
		Name("creator_staking_get_creator").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetCreator))
	sub.Path("/backers/{account}").
		Methods(http.MethodGet).
		Name("creator_staking_get_backer_locks").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetBackerLocks))
	sub.Path("/backers/{account}/stakes/{id}").
		Methods(http.MethodGet).
		Name("creator_staking_get_backer_stakes").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetBackerStakes))
	sub.Path("/backers/{account}/rewards").
		Methods(http.MethodGet).
		Name("creator_staking_estimate_rewards").
		HandlerFunc(utils.WrapHandlerFunc(c.handleEstimateRewards))
	sub.Path("/backers/{account}/withdrawable").
		Methods(http.MethodGet).
		Name("creator_staking_get_withdrawable").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetWithdrawable))
	sub.Path("/backers/{account}/claims").
		Methods(http.MethodGet).
		Name("creator_staking_get_claims").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetClaims))
}
