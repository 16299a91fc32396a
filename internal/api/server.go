package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dappmarket/marketplace-ledger/internal/ledger"
	"github.com/dappmarket/marketplace-ledger/internal/metadata"
	"github.com/dappmarket/marketplace-ledger/internal/repository"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Server struct {
	ledger          *ledger.Ledger
	actionRepo      repository.ActionRepository
	metadataService metadata.Service
}

func NewServer(l *ledger.Ledger, actionRepo repository.ActionRepository, metadataService metadata.Service) Server {
	return Server{l, actionRepo, metadataService}
}

func (s Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleHomepage).Methods("GET")
	r.HandleFunc("/health", s.handleHealth).Methods("GET")
	r.HandleFunc("/stats", s.handleStats).Methods("GET")

	r.HandleFunc("/tokens", s.handleMint).Methods("POST")
	r.HandleFunc("/tokens/{tokenId}", s.handleGetToken).Methods("GET")
	r.HandleFunc("/tokens/{tokenId}/metadata", s.handleGetTokenMetadata).Methods("GET")
	r.HandleFunc("/tokens/{tokenId}/actions", s.handleGetTokenActions).Methods("GET")
	r.HandleFunc("/approvals", s.handleSetApproval).Methods("POST")
	r.HandleFunc("/transfers", s.handleTransfer).Methods("POST")

	r.HandleFunc("/items", s.handleMakeItem).Methods("POST")
	r.HandleFunc("/items/{listingId}", s.handleGetItem).Methods("GET")
	r.HandleFunc("/items/{listingId}/purchase", s.handlePurchaseItem).Methods("POST")
	r.HandleFunc("/sales", s.handleGetSales).Methods("GET")

	r.HandleFunc("/accounts/{account}/deposit", s.handleDeposit).Methods("POST")
	r.HandleFunc("/accounts/{account}/balance", s.handleGetBalance).Methods("GET")

	r.NotFoundHandler = notFoundHandler()

	return r
}

func (s Server) handleHomepage(w http.ResponseWriter, r *http.Request) {
	_, _ = fmt.Fprintf(w, "%s Marketplace", s.ledger.Name())
}

func (s Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

func (s Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusOK, map[string]interface{}{
		"name":       s.ledger.Name(),
		"symbol":     s.ledger.Symbol(),
		"feeAccount": s.ledger.FeeAccount(),
		"feePercent": s.ledger.FeePercent(),
		"tokenCount": s.ledger.TokenCount(),
		"itemCount":  s.ledger.ItemCount(),
	})
}

func (s Server) handleMint(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Minter string `json:"minter"`
		Uri    string `json:"uri"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	tokenId, err := s.ledger.Mint(req.Minter, req.Uri)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJson(w, http.StatusCreated, map[string]uint64{"tokenId": tokenId})
}

func (s Server) handleGetToken(w http.ResponseWriter, r *http.Request) {
	tokenId, err := pathId(r, "tokenId")
	if err != nil {
		http.Error(w, "Invalid token id", http.StatusBadRequest)
		return
	}

	token, err := s.ledger.Token(tokenId)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJson(w, http.StatusOK, token)
}

func (s Server) handleGetTokenMetadata(w http.ResponseWriter, r *http.Request) {
	tokenId, err := pathId(r, "tokenId")
	if err != nil {
		http.Error(w, "Invalid token id", http.StatusBadRequest)
		return
	}

	token, err := s.ledger.Token(tokenId)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	md, err := s.metadataService.GetMetadata(token)
	if err != nil {
		zap.L().With(zap.Error(err), zap.Uint64("tokenId", tokenId)).Warn("Metadata not available")
		http.Error(w, "Metadata not available", http.StatusNotFound)
		return
	}

	writeJson(w, http.StatusOK, md)
}

func (s Server) handleGetTokenActions(w http.ResponseWriter, r *http.Request) {
	tokenId, err := pathId(r, "tokenId")
	if err != nil {
		http.Error(w, "Invalid token id", http.StatusBadRequest)
		return
	}

	actions, total, err := s.actionRepo.GetActionsByTokenId(tokenId, 100, queryPage(r))
	if err != nil {
		zap.L().With(zap.Error(err), zap.Uint64("tokenId", tokenId)).Error("Failed to get token actions")
		http.Error(w, "Failed to get token actions", http.StatusInternalServerError)
		return
	}

	writeJson(w, http.StatusOK, map[string]interface{}{"total": total, "actions": actions})
}

func (s Server) handleSetApproval(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Owner    string `json:"owner"`
		Operator string `json:"operator"`
		Approved bool   `json:"approved"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.ledger.SetApprovalForAll(req.Owner, req.Operator, req.Approved); err != nil {
		writeLedgerError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Caller  string `json:"caller"`
		From    string `json:"from"`
		To      string `json:"to"`
		TokenId uint64 `json:"tokenId"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.ledger.TransferFrom(req.Caller, req.From, req.To, req.TokenId); err != nil {
		writeLedgerError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s Server) handleMakeItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Seller  string `json:"seller"`
		TokenId uint64 `json:"tokenId"`
		Price   uint64 `json:"price"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	listingId, err := s.ledger.MakeItem(req.Seller, req.TokenId, req.Price)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJson(w, http.StatusCreated, map[string]uint64{"listingId": listingId})
}

func (s Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	listingId, err := pathId(r, "listingId")
	if err != nil {
		http.Error(w, "Invalid listing id", http.StatusBadRequest)
		return
	}

	item, err := s.ledger.Item(listingId)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJson(w, http.StatusOK, item)
}

func (s Server) handlePurchaseItem(w http.ResponseWriter, r *http.Request) {
	listingId, err := pathId(r, "listingId")
	if err != nil {
		http.Error(w, "Invalid listing id", http.StatusBadRequest)
		return
	}

	var req struct {
		Buyer   string `json:"buyer"`
		Payment uint64 `json:"payment"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.ledger.PurchaseItem(req.Buyer, listingId, req.Payment); err != nil {
		writeLedgerError(w, err)
		return
	}

	item, err := s.ledger.Item(listingId)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJson(w, http.StatusOK, item)
}

func (s Server) handleGetSales(w http.ResponseWriter, r *http.Request) {
	page := queryPage(r)

	sales, total, err := s.actionRepo.GetSales(100, page)
	if err != nil {
		zap.L().With(zap.Error(err), zap.Int("page", page)).Error("Failed to get sales")
		http.Error(w, "Failed to get sales", http.StatusInternalServerError)
		return
	}

	writeJson(w, http.StatusOK, map[string]interface{}{"total": total, "sales": sales})
}

func (s Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	account := mux.Vars(r)["account"]

	var req struct {
		Amount uint64 `json:"amount"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.ledger.Deposit(account, req.Amount); err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJson(w, http.StatusOK, map[string]uint64{"balance": s.ledger.BalanceOf(account)})
}

func (s Server) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	account := mux.Vars(r)["account"]

	writeJson(w, http.StatusOK, map[string]interface{}{
		"account": account,
		"balance": s.ledger.BalanceOf(account),
		"tokens":  s.ledger.TokenBalance(account),
	})
}

func pathId(r *http.Request, name string) (uint64, error) {
	id, ok := mux.Vars(r)[name]
	if !ok {
		return 0, errors.New("invalid parameters")
	}

	return strconv.ParseUint(id, 10, 64)
}

func queryPage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}

	return page
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}

	return true
}

func writeJson(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeLedgerError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), errStatus(err))
}

func errStatus(err error) int {
	switch {
	case errors.Is(err, ledger.ErrTokenNotFound), errors.Is(err, ledger.ErrListingNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ledger.ErrAlreadySold):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	default:
		return http.StatusBadRequest
	}
}

func notFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = fmt.Fprintf(w, "Page not found")
	})
}
