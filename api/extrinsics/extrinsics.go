// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package extrinsics

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/dappforce/subsocial-go/api/utils"
	"github.com/dappforce/subsocial-go/runtime"
	"github.com/dappforce/subsocial-go/subsocial"
)

// Extrinsic is an unsigned submission. The origin is trusted as given, so the endpoint is for dev networks only.
type Extrinsic struct {
	Origin string          `json:"origin"` // "root", an account or a dev seed
	Call   string          `json:"call"`
	Args   json.RawMessage `json:"args,omitempty"`
}

type Submitted struct {
	Call    string `json:"call"`
	Origin  string `json:"origin"`
	Pending int    `json:"pending"`
}

type Extrinsics struct {
	pool *runtime.Pool
}

func New(pool *runtime.Pool) *Extrinsics {
	return &Extrinsics{pool}
}

func parseOrigin(s string) (runtime.Origin, error) {
	switch {
	case s == "root":
		return runtime.Root(), nil
	case strings.HasPrefix(s, "0x"):
		who, err := subsocial.ParseAccountID(s)
		if err != nil {
			return runtime.Origin{}, err
		}
		return runtime.Signed(who), nil
	case s != "":
		return runtime.Signed(subsocial.DevAccount(s)), nil
	}
	return runtime.Origin{}, errors.New("empty")
}

func (e *Extrinsics) handleSubmit(w http.ResponseWriter, req *http.Request) error {
	var body Extrinsic
	decoder := json.NewDecoder(req.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	origin, err := parseOrigin(body.Origin)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "origin"))
	}
	call, err := runtime.DecodeCall(body.Call, body.Args)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "call"))
	}
	if err := e.pool.Add(runtime.Extrinsic{Origin: origin, Call: call}); err != nil {
		if errors.Is(err, runtime.ErrPoolFull) {
			return utils.HTTPError(err, http.StatusServiceUnavailable)
		}
		return err
	}
	w.Header().Set("Content-Type", utils.JSONContentType)
	w.WriteHeader(http.StatusAccepted)
	return utils.WriteJSON(w, &Submitted{
		Call:    call.Name(),
		Origin:  origin.String(),
		Pending: e.pool.Len(),
	})
}

func (e *Extrinsics) Mount(root *mux.Router, pathPrefix string) {
	root.Path(pathPrefix).
		Methods(http.MethodPost).
		Name("extrinsics_submit").
		HandlerFunc(utils.WrapHandlerFunc(e.handleSubmit))
}
