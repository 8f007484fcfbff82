package server

import (
	"context"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postMint/internal/aggregate"
	"postMint/internal/cache"
	"postMint/internal/chain"
	"postMint/internal/coins"
	"postMint/internal/metrics"
	"postMint/internal/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const validAddress = "0x1111111111111111111111111111111111111111"

type staticSource struct {
	name  string
	coins []model.RawCoin
}

func (s staticSource) Name() string { return s.name }

func (s staticSource) Fetch(ctx context.Context) ([]model.RawCoin, error) { return s.coins, nil }

type fakeAPI struct {
	page     coins.Page
	coin     model.RawCoin
	err      error
	gotKind  coins.ListKind
	gotCount int
	gotChain int64
}

func (f *fakeAPI) Explore(ctx context.Context, kind coins.ListKind, count int, after string) (coins.Page, error) {
	f.gotKind, f.gotCount = kind, count
	return f.page, f.err
}

func (f *fakeAPI) Coin(ctx context.Context, address string, chainID int64) (model.RawCoin, error) {
	f.gotChain = chainID
	return f.coin, f.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(api *fakeAPI, sources ...aggregate.Source) *Server {
	agg := aggregate.NewAggregator(aggregate.Config{Now: func() time.Time { return time.Unix(0, 0) }}, sources, cache.NewMemoryStore(), nil)
	return New(Config{ChainID: coins.BaseSepoliaChainID}, agg, api, metrics.New(), nil)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestGetCreatorCoins(t *testing.T) {
	src := staticSource{name: "new", coins: []model.RawCoin{
		{Address: "0xA", CreatorAddress: "0xC1", MarketCap: "2000000000000000000"},
		{Address: "0xB", CreatorAddress: "0xC2"},
	}}
	s := newTestServer(&fakeAPI{}, src)

	rec := do(t, s, http.MethodGet, "/api/v1/creators/0xc1/coins", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Dashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 1, got.Posts)
	assert.Equal(t, 2, got.Scanned)
	assert.Equal(t, "2.0000", got.TotalMarketCap)
	require.Len(t, got.Coins, 1)
	assert.Equal(t, "0xA", got.Coins[0].Address)
}

func TestAddManualCoin(t *testing.T) {
	s := newTestServer(&fakeAPI{})
	body := `{"address":"` + validAddress + `"}`

	rec := do(t, s, http.MethodPost, "/api/v1/creators/0xC1/coins", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	var record model.TokenRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
	assert.Equal(t, "MANUAL", record.Symbol)

	rec = do(t, s, http.MethodPost, "/api/v1/creators/0xC1/coins", body)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/v1/creators/0xC1/coins", `{"address":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/v1/creators/0xC1/coins", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/v1/creators/0xC1/coins", "")
	var got model.Dashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 1, got.Posts)
}

func TestExplore(t *testing.T) {
	api := &fakeAPI{page: coins.Page{Coins: []model.RawCoin{{Address: "0xA", MarketCap: "500000000000000000"}}}}
	s := newTestServer(api)

	rec := do(t, s, http.MethodGet, "/api/v1/explore/valuable?count=7", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, coins.ListMostValuable, api.gotKind)
	assert.Equal(t, 7, api.gotCount)
	assert.Contains(t, rec.Body.String(), `"marketCap":"0.5"`)

	rec = do(t, s, http.MethodGet, "/api/v1/explore/hot", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCoin(t *testing.T) {
	api := &fakeAPI{coin: model.RawCoin{Address: validAddress, Name: "Hello"}}
	s := newTestServer(api)

	rec := do(t, s, http.MethodGet, "/api/v1/coins/"+validAddress, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, coins.BaseSepoliaChainID, api.gotChain)
	assert.Contains(t, rec.Body.String(), `"name":"Hello"`)

	rec = do(t, s, http.MethodGet, "/api/v1/coins/"+validAddress+"?chain=8453", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(8453), api.gotChain)

	rec = do(t, s, http.MethodGet, "/api/v1/coins/bogus", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCoinUpstreamErrors(t *testing.T) {
	api := &fakeAPI{err: coins.ErrNotFound}
	s := newTestServer(api)
	rec := do(t, s, http.MethodGet, "/api/v1/coins/"+validAddress, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "coin not found")

	api.err = coins.ErrUnauthorized
	rec = do(t, s, http.MethodGet, "/api/v1/coins/"+validAddress, "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "api key invalid or missing")
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(&fakeAPI{})
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/healthz", "").Code)

	do(t, s, http.MethodGet, "/api/v1/creators/0xC1/coins", "")
	rec := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "postmint_aggregate_runs_total")
}

const tokenABI = `[
  {"inputs": [], "name": "decimals", "outputs": [{"type": "uint8"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "totalSupply", "outputs": [{"type": "uint256"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "symbol", "outputs": [{"type": "string"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "name", "outputs": [{"type": "string"}], "stateMutability": "view", "type": "function"}
]`

// tokenCaller answers ERC20 view calls for a single token.
type tokenCaller struct {
	parsed abi.ABI
	calls  int
}

func (f *tokenCaller) CallContract(ctx context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	f.calls++
	method, err := f.parsed.MethodById(msg.Data[:4])
	if err != nil {
		return nil, err
	}
	switch method.Name {
	case "decimals":
		return method.Outputs.Pack(uint8(18))
	case "totalSupply":
		return method.Outputs.Pack(big.NewInt(1000))
	case "symbol":
		return method.Outputs.Pack("HELLO")
	case "name":
		return method.Outputs.Pack("Hello")
	}
	return nil, errors.New("execution reverted")
}

func TestGetCoinOnChain(t *testing.T) {
	parsed, err := abi.JSON(strings.NewReader(tokenABI))
	require.NoError(t, err)
	caller := &tokenCaller{parsed: parsed}
	api := &fakeAPI{coin: model.RawCoin{Address: validAddress}}
	s := newTestServer(api).WithChain(caller, chain.NewTokenMetaCache())

	rec := do(t, s, http.MethodGet, "/api/v1/coins/"+validAddress+"?onchain=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got model.CoinDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotNil(t, got.OnChain)
	assert.Equal(t, uint8(18), got.OnChain.Decimals)
	assert.Equal(t, "1000", got.OnChain.TotalSupply)
	assert.Equal(t, "HELLO", got.OnChain.Symbol)

	calls := caller.calls
	rec = do(t, s, http.MethodGet, "/api/v1/coins/"+validAddress+"?onchain=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, calls, caller.calls, "metadata should come from the cache")

	rec = do(t, s, http.MethodGet, "/api/v1/coins/"+validAddress, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "onChain")
}

func TestGetCoinOnChainWithoutRPC(t *testing.T) {
	s := newTestServer(&fakeAPI{coin: model.RawCoin{Address: validAddress}})
	rec := do(t, s, http.MethodGet, "/api/v1/coins/"+validAddress+"?onchain=1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
