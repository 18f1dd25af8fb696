// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/dappforce/subsocial-go/api/creatorstaking"
	"github.com/dappforce/subsocial-go/api/extrinsics"
	"github.com/dappforce/subsocial-go/api/utils"
	"github.com/dappforce/subsocial-go/log"
	"github.com/dappforce/subsocial-go/runtime"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins     string
	EnableReqLogger    bool
	SlowQueryThreshold time.Duration
	EnableMetrics      bool
	Pool               *runtime.Pool // accepts unsigned extrinsics when set, dev networks only
}

// New return api router
func New(rt *runtime.Runtime, opts Options) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()
	router.Path("/node/block").
		Methods(http.MethodGet).
		Name("node_get_block").
		HandlerFunc(utils.WrapHandlerFunc(func(w http.ResponseWriter, _ *http.Request) error {
			number, err := rt.BlockNumber()
			if err != nil {
				return err
			}
			return utils.WriteJSON(w, map[string]any{"number": number})
		}))

	creatorstaking.New(rt).
		Mount(router, "/creator-staking")
	if opts.Pool != nil {
		extrinsics.New(opts.Pool).
			Mount(router, "/extrinsics")
	}

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}
	router.Use(requestLogger(logger, opts.EnableReqLogger, opts.SlowQueryThreshold))

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	return handler.ServeHTTP
}
