package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dappmarket/marketplace-ledger/internal/entity"
	"github.com/dappmarket/marketplace-ledger/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubActionRepo struct {
	actions []entity.MarketAction
}

func (r stubActionRepo) GetActionsByTokenId(tokenId uint64, size, page int) ([]entity.MarketAction, int64, error) {
	return r.actions, int64(len(r.actions)), nil
}

func (r stubActionRepo) GetSales(size, page int) ([]entity.MarketAction, int64, error) {
	return r.actions, int64(len(r.actions)), nil
}

type stubMetadataService struct {
	data map[string]interface{}
	err  error
}

func (s stubMetadataService) GetMetadata(token entity.Token) (map[string]interface{}, error) {
	return s.data, s.err
}

func (s stubMetadataService) ResolveUri(uri string) (string, error) {
	return uri, nil
}

func newTestServer(t *testing.T) (Server, *ledger.Ledger) {
	t.Helper()

	l, err := ledger.New("DApp NFT", "DAPP", "0xmarket", "0xfees", 1)
	require.NoError(t, err)
	s := NewServer(l, stubActionRepo{}, stubMetadataService{data: map[string]interface{}{"name": "Duck"}})

	return s, l
}

func doJson(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestMintEndpoint(t *testing.T) {
	s, l := newTestServer(t)
	router := s.Router()

	rec := doJson(t, router, "POST", "/tokens", map[string]interface{}{"minter": "0xalice", "uri": "Sample URI"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]uint64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(1), resp["tokenId"])
	assert.Equal(t, uint64(1), l.TokenCount())
}

func TestMintEndpoint_EmptyUri(t *testing.T) {
	s, _ := newTestServer(t)
	router := s.Router()

	rec := doJson(t, router, "POST", "/tokens", map[string]interface{}{"minter": "0xalice", "uri": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "URI must not be empty")
}

func TestMakeItemEndpoint_ZeroPrice(t *testing.T) {
	s, l := newTestServer(t)
	router := s.Router()

	_, err := l.Mint("0xalice", "Sample URI")
	require.NoError(t, err)
	require.NoError(t, l.SetApprovalForAll("0xalice", l.MarketAccount(), true))

	rec := doJson(t, router, "POST", "/items", map[string]interface{}{"seller": "0xalice", "tokenId": 1, "price": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Price must be greater than 0")
}

func TestGetItemEndpoint_NotFound(t *testing.T) {
	s, _ := newTestServer(t)
	router := s.Router()

	rec := doJson(t, router, "GET", "/items/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMarketplaceScenario(t *testing.T) {
	s, l := newTestServer(t)
	router := s.Router()

	// Seller mints and approves the market account.
	rec := doJson(t, router, "POST", "/tokens", map[string]interface{}{"minter": "0xalice", "uri": "Sample URI"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJson(t, router, "POST", "/approvals", map[string]interface{}{"owner": "0xalice", "operator": "0xmarket", "approved": true})
	require.Equal(t, http.StatusNoContent, rec.Code)

	// Seller lists the token for 100.
	rec = doJson(t, router, "POST", "/items", map[string]interface{}{"seller": "0xalice", "tokenId": 1, "price": 100})
	require.Equal(t, http.StatusCreated, rec.Code)

	owner, err := l.OwnerOf(1)
	require.NoError(t, err)
	assert.Equal(t, "0xmarket", owner)

	// Buyer deposits funds and purchases.
	rec = doJson(t, router, "POST", "/accounts/0xbob/deposit", map[string]interface{}{"amount": 100})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJson(t, router, "POST", "/items/1/purchase", map[string]interface{}{"buyer": "0xbob", "payment": 100})
	require.Equal(t, http.StatusOK, rec.Code)

	var item entity.Listing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.True(t, item.Sold)

	owner, err = l.OwnerOf(1)
	require.NoError(t, err)
	assert.Equal(t, "0xbob", owner)
	assert.Equal(t, uint64(99), l.BalanceOf("0xalice"))
	assert.Equal(t, uint64(1), l.BalanceOf("0xfees"))

	// A second purchase of the same listing conflicts.
	rec = doJson(t, router, "POST", "/items/1/purchase", map[string]interface{}{"buyer": "0xcarol", "payment": 100})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Item already sold")
}

func TestPurchaseEndpoint_PaymentMismatch(t *testing.T) {
	s, l := newTestServer(t)
	router := s.Router()

	_, err := l.Mint("0xalice", "Sample URI")
	require.NoError(t, err)
	require.NoError(t, l.SetApprovalForAll("0xalice", l.MarketAccount(), true))
	_, err = l.MakeItem("0xalice", 1, 100)
	require.NoError(t, err)
	require.NoError(t, l.Deposit("0xbob", 200))

	rec := doJson(t, router, "POST", "/items/1/purchase", map[string]interface{}{"buyer": "0xbob", "payment": 150})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Payment must equal the asking price")
}

func TestSalesEndpoint(t *testing.T) {
	l, err := ledger.New("DApp NFT", "DAPP", "0xmarket", "0xfees", 1)
	require.NoError(t, err)

	repo := stubActionRepo{actions: []entity.MarketAction{
		{Seq: 5, TokenId: 1, ListingId: 1, Action: entity.SaleAction, From: "0xalice", To: "0xbob", Price: 100, Fee: 1},
	}}
	s := NewServer(l, repo, stubMetadataService{})

	rec := doJson(t, s.Router(), "GET", "/sales?page=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Total int64                 `json:"total"`
		Sales []entity.MarketAction `json:"sales"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Sales, 1)
	assert.Equal(t, entity.SaleAction, resp.Sales[0].Action)
	assert.Equal(t, uint64(100), resp.Sales[0].Price)
	assert.Equal(t, "0xbob", resp.Sales[0].To)
}

func TestStatsEndpoint(t *testing.T) {
	s, l := newTestServer(t)
	router := s.Router()

	_, err := l.Mint("0xalice", "Sample URI")
	require.NoError(t, err)

	rec := doJson(t, router, "GET", "/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, "DApp NFT", stats["name"])
	assert.Equal(t, "DAPP", stats["symbol"])
	assert.Equal(t, float64(1), stats["tokenCount"])
}

func TestMetadataEndpoint(t *testing.T) {
	s, l := newTestServer(t)
	router := s.Router()

	_, err := l.Mint("0xalice", "https://example.com/1.json")
	require.NoError(t, err)

	rec := doJson(t, router, "GET", "/tokens/1/metadata", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var md map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &md))
	assert.Equal(t, "Duck", md["name"])
}
