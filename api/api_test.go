// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dappforce/subsocial-go/lvldb"
	"github.com/dappforce/subsocial-go/metrics"
	"github.com/dappforce/subsocial-go/runtime"
	"github.com/dappforce/subsocial-go/subsocial"
)

func newServer(t *testing.T, opts Options) (*httptest.Server, *runtime.Runtime) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rt, err := runtime.New(db, subsocial.DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, rt.InitGenesis(runtime.DevGenesis()))

	ts := httptest.NewServer(New(rt, opts))
	t.Cleanup(ts.Close)
	return ts, rt
}

func doRequest(t *testing.T, req *http.Request) (*http.Response, string) {
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(body)
}

func TestAPI(t *testing.T) {
	metrics.InitializePrometheusMetrics()
	ts, rt := newServer(t, Options{AllowedOrigins: "https://app.subsocial.network", EnableMetrics: true})

	_, err := rt.ExecuteBlock()
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/node/block", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.subsocial.network")
	res, body := doRequest(t, req)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"number":1}`, body)
	assert.Equal(t, "https://app.subsocial.network", res.Header.Get("Access-Control-Allow-Origin"))

	req, err = http.NewRequest(http.MethodGet, ts.URL+"/creator-staking/era", nil)
	require.NoError(t, err)
	res, body = doRequest(t, req)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `"currentEra":1`)

	// dev submission is off without a pool
	req, err = http.NewRequest(http.MethodPost, ts.URL+"/extrinsics", strings.NewReader(`{}`))
	require.NoError(t, err)
	res, _ = doRequest(t, req)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	names := make(map[string]float64)
	for _, mf := range families {
		if mf.GetName() != "subsocial_api_request_count" {
			continue
		}
		for _, m := range mf.Metric {
			for _, l := range m.GetLabel() {
				if l.GetName() == "name" {
					names[l.GetValue()] += m.GetCounter().GetValue()
				}
			}
		}
	}
	assert.Equal(t, float64(1), names["node_get_block"])
	assert.Equal(t, float64(1), names["creator_staking_get_era"])
}

func TestAPI_Extrinsics(t *testing.T) {
	pool := runtime.NewPool(10)
	ts, rt := newServer(t, Options{Pool: pool, EnableReqLogger: true})

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/extrinsics",
		strings.NewReader(`{"origin":"alice","call":"spaces.create_space"}`))
	require.NoError(t, err)
	res, body := doRequest(t, req)
	require.Equal(t, http.StatusAccepted, res.StatusCode, body)

	result, err := rt.ExecuteBlock(pool.Drain(10)...)
	require.NoError(t, err)
	require.Len(t, result.Receipts, 1)
	assert.False(t, result.Receipts[0].Reverted)

	owner, err := rt.Spaces().SpaceOwner(1001)
	require.NoError(t, err)
	assert.Equal(t, subsocial.DevAccount("alice"), owner)
}
