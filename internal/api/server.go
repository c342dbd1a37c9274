package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/tunego/nft-market/internal/config"
	"github.com/tunego/nft-market/internal/entity"
	"github.com/tunego/nft-market/internal/ledger"
	"github.com/tunego/nft-market/internal/market"
	"github.com/tunego/nft-market/internal/registry"
	"go.uber.org/zap"
)

// Server exposes the market engine to the external transaction/query layer.
// It keeps custody of issued admin capabilities keyed by holder account; the
// engine itself only ever sees the opaque tokens.
type Server struct {
	market   *market.Market
	assets   registry.AssetRegistry
	fungible ledger.FungibleLedger

	mu     sync.Mutex
	admins map[string]*market.AdminCapability
}

func NewServer(m *market.Market, assets registry.AssetRegistry, fungible ledger.FungibleLedger, bootstrapAdmin string, cap *market.AdminCapability) *Server {
	return &Server{
		market:   m,
		assets:   assets,
		fungible: fungible,
		admins:   map[string]*market.AdminCapability{bootstrapAdmin: cap},
	}
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleHomepage).Methods("GET")
	r.HandleFunc("/health", s.handleHealth).Methods("GET")

	r.HandleFunc("/collections/{account}", s.handleSetupCollection).Methods("POST")
	r.HandleFunc("/collections/{account}", s.handleCollectionLength).Methods("GET")

	r.HandleFunc("/offers", s.handleCreateOffer).Methods("POST")
	r.HandleFunc("/offers/{seller}", s.handleListOffers).Methods("GET")
	r.HandleFunc("/offers/{seller}/{offerId}/accept", s.handleAcceptOffer).Methods("POST")
	r.HandleFunc("/offers/{seller}/{offerId}", s.handleRemoveOffer).Methods("DELETE")

	r.HandleFunc("/fee", s.handleGetFee).Methods("GET")
	r.HandleFunc("/fee", s.handleSetFee).Methods("PUT")
	r.HandleFunc("/supported-kinds", s.handleAddSupportedKind).Methods("POST")

	r.HandleFunc("/admins", s.handleCreateAdmin).Methods("POST")
	r.HandleFunc("/admins/transfer", s.handleTransferAdmin).Methods("PUT")

	if config.Get().Env == "dev" {
		r.HandleFunc("/dev/assets/{account}", s.handleMintAsset).Methods("POST")
		r.HandleFunc("/dev/funds/{account}", s.handleMintFunds).Methods("POST")
	}
	r.HandleFunc("/balances/{account}", s.handleBalance).Methods("GET")

	r.NotFoundHandler = notFoundHandler()

	return r
}

func (s *Server) handleHomepage(w http.ResponseWriter, r *http.Request) {
	_, _ = fmt.Fprintf(w, "TuneGO NFT Market")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

func (s *Server) handleSetupCollection(w http.ResponseWriter, r *http.Request) {
	account := mux.Vars(r)["account"]
	s.market.SetupCollection(account)
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleCollectionLength(w http.ResponseWriter, r *http.Request) {
	account := mux.Vars(r)["account"]
	writeJson(w, http.StatusOK, map[string]int{"length": s.market.CollectionLength(account)})
}

type royaltyRequest struct {
	Receiver   string `json:"receiver"`
	Percentage string `json:"percentage"`
}

type createOfferRequest struct {
	Seller    string           `json:"seller"`
	AssetKind string           `json:"assetKind"`
	TokenId   uint64           `json:"tokenId"`
	Price     string           `json:"price"`
	Royalties []royaltyRequest `json:"royalties"`
}

func (s *Server) handleCreateOffer(w http.ResponseWriter, r *http.Request) {
	var req createOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		http.Error(w, "Invalid price", http.StatusUnprocessableEntity)
		return
	}

	royalties := make([]entity.Royalty, 0, len(req.Royalties))
	for _, royalty := range req.Royalties {
		percentage, err := decimal.NewFromString(royalty.Percentage)
		if err != nil {
			http.Error(w, "Invalid royalty percentage", http.StatusUnprocessableEntity)
			return
		}
		royalties = append(royalties, entity.Royalty{Receiver: royalty.Receiver, Percentage: percentage})
	}

	saleOfferId, err := s.market.CreateSaleOffer(req.Seller, entity.AssetKind(req.AssetKind), req.TokenId, price, royalties)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusCreated, map[string]uint64{"saleOfferId": saleOfferId})
}

func (s *Server) handleListOffers(w http.ResponseWriter, r *http.Request) {
	seller := mux.Vars(r)["seller"]
	writeJson(w, http.StatusOK, s.market.SaleOffers(seller))
}

type acceptOfferRequest struct {
	Buyer     string `json:"buyer"`
	AssetKind string `json:"assetKind"`
}

func (s *Server) handleAcceptOffer(w http.ResponseWriter, r *http.Request) {
	seller := mux.Vars(r)["seller"]
	offerId, err := getOfferId(r)
	if err != nil {
		http.Error(w, "Invalid offer id", http.StatusBadRequest)
		return
	}

	var req acceptOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.market.AcceptSaleOffer(req.Buyer, entity.AssetKind(req.AssetKind), offerId, seller); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

type removeOfferRequest struct {
	Caller string `json:"caller"`
}

func (s *Server) handleRemoveOffer(w http.ResponseWriter, r *http.Request) {
	seller := mux.Vars(r)["seller"]
	offerId, err := getOfferId(r)
	if err != nil {
		http.Error(w, "Invalid offer id", http.StatusBadRequest)
		return
	}

	caller := seller
	var req removeOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.Caller != "" {
		caller = req.Caller
	}
	if caller != seller {
		writeError(w, market.ErrUnauthorized)
		return
	}

	if err := s.market.RemoveSaleOffer(caller, offerId); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleGetFee(w http.ResponseWriter, r *http.Request) {
	policy := s.market.FeePolicy()
	writeJson(w, http.StatusOK, map[string]string{
		"receiver":   policy.Receiver,
		"percentage": policy.Percentage.String(),
	})
}

type setFeeRequest struct {
	Admin      string `json:"admin"`
	Receiver   string `json:"receiver"`
	Percentage string `json:"percentage"`
}

func (s *Server) handleSetFee(w http.ResponseWriter, r *http.Request) {
	var req setFeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	percentage, err := decimal.NewFromString(req.Percentage)
	if err != nil {
		http.Error(w, "Invalid percentage", http.StatusUnprocessableEntity)
		return
	}

	if err := s.market.SetFeePolicy(s.capabilityFor(req.Admin), req.Receiver, percentage); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

type addKindRequest struct {
	Admin     string `json:"admin"`
	AssetKind string `json:"assetKind"`
}

func (s *Server) handleAddSupportedKind(w http.ResponseWriter, r *http.Request) {
	var req addKindRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.market.AddSupportedAssetKind(s.capabilityFor(req.Admin), entity.AssetKind(req.AssetKind)); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

type adminRequest struct {
	Admin    string `json:"admin"`
	NewAdmin string `json:"newAdmin"`
}

func (s *Server) handleCreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req adminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := s.market.CreateAdminCapability(s.capabilityFor(req.Admin), req.NewAdmin)
	if err != nil {
		writeError(w, err)
		return
	}

	s.storeCapability(req.NewAdmin, created)
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleTransferAdmin(w http.ResponseWriter, r *http.Request) {
	var req adminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := s.market.TransferAdminCapability(s.capabilityFor(req.Admin), req.NewAdmin)
	if err != nil {
		writeError(w, err)
		return
	}

	s.dropCapability(req.Admin)
	s.storeCapability(req.NewAdmin, created)
	w.WriteHeader(http.StatusOK)
}

type mintAssetRequest struct {
	AssetKind string `json:"assetKind"`
}

func (s *Server) handleMintAsset(w http.ResponseWriter, r *http.Request) {
	account := mux.Vars(r)["account"]

	var req mintAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	tokenId := s.assets.Mint(account, entity.AssetKind(req.AssetKind))
	writeJson(w, http.StatusCreated, map[string]uint64{"tokenId": tokenId})
}

type mintFundsRequest struct {
	Amount string `json:"amount"`
}

func (s *Server) handleMintFunds(w http.ResponseWriter, r *http.Request) {
	account := mux.Vars(r)["account"]

	var req mintFundsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		http.Error(w, "Invalid amount", http.StatusUnprocessableEntity)
		return
	}

	s.fungible.Mint(account, amount)
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	account := mux.Vars(r)["account"]
	writeJson(w, http.StatusOK, map[string]string{"balance": s.fungible.Balance(account).String()})
}

func (s *Server) capabilityFor(account string) *market.AdminCapability {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.admins[account]
}

func (s *Server) storeCapability(account string, cap *market.AdminCapability) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.admins[account] = cap
}

func (s *Server) dropCapability(account string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.admins, account)
}

func getOfferId(r *http.Request) (uint64, error) {
	offerId, ok := mux.Vars(r)["offerId"]
	if !ok {
		return 0, errors.New("invalid parameters")
	}

	return strconv.ParseUint(offerId, 10, 64)
}

func writeJson(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().With(zap.Error(err)).Error("ApiServer: Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, market.ErrOfferNotFound), errors.Is(err, registry.ErrAssetNotFound):
		status = http.StatusNotFound
	case errors.Is(err, market.ErrInsufficientFunds):
		status = http.StatusPaymentRequired
	case errors.Is(err, market.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, market.ErrUnsupportedAssetKind),
		errors.Is(err, market.ErrInvalidPrice),
		errors.Is(err, market.ErrInvalidPercentage),
		errors.Is(err, market.ErrFeesExceedTotal):
		status = http.StatusUnprocessableEntity
	}

	http.Error(w, err.Error(), status)
}

func notFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = fmt.Fprintf(w, "Page not found")
	})
}
