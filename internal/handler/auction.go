package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/efreitasn/auctionhouse/internal/domain"
	"github.com/efreitasn/auctionhouse/internal/engine"
	"github.com/efreitasn/auctionhouse/internal/service"
)

// AuctionHandler handles HTTP requests for auction, heartbeat and result
// endpoints.
type AuctionHandler struct {
	svc *service.AuctionService
}

// NewAuctionHandler creates a new AuctionHandler.
func NewAuctionHandler(svc *service.AuctionService) *AuctionHandler {
	return &AuctionHandler{svc: svc}
}

// listItemRequest is the JSON request body for POST /auctions.
type listItemRequest struct {
	Item         string           `json:"item"`
	Seller       string           `json:"seller"`
	ReservePrice *decimal.Decimal `json:"reserve_price"`
	CloseTime    *int64           `json:"close_time"`
	Timestamp    int64            `json:"timestamp"`
}

// listItemResponse is the JSON response for POST /auctions.
type listItemResponse struct {
	Item         string      `json:"item"`
	Seller       string      `json:"seller"`
	ReservePrice json.Number `json:"reserve_price"`
	CloseTime    int64       `json:"close_time"`
	Outcome      string      `json:"outcome"`
}

// placeBidRequest is the JSON request body for POST /auctions/{item}/bids.
type placeBidRequest struct {
	Bidder    string           `json:"bidder"`
	Amount    *decimal.Decimal `json:"amount"`
	Timestamp *int64           `json:"timestamp"`
}

// placeBidResponse is the JSON response for POST /auctions/{item}/bids.
type placeBidResponse struct {
	BidID     string      `json:"bid_id"`
	Item      string      `json:"item"`
	Bidder    string      `json:"bidder"`
	Amount    json.Number `json:"amount"`
	Timestamp int64       `json:"timestamp"`
	Outcome   string      `json:"outcome"`
	Accepted  bool        `json:"accepted"`
}

// heartbeatRequest is the JSON request body for POST /heartbeats.
type heartbeatRequest struct {
	Timestamp *int64 `json:"timestamp"`
}

// heartbeatResponse is the JSON response for POST /heartbeats.
type heartbeatResponse struct {
	Timestamp int64            `json:"timestamp"`
	Results   []resultResponse `json:"results"`
}

// auctionResponse is the JSON response for GET /auctions/{item}.
type auctionResponse struct {
	Item         string      `json:"item"`
	ReservePrice json.Number `json:"reserve_price"`
	CloseTime    int64       `json:"close_time"`
	BidCount     int         `json:"bid_count"`
	HighestBid   json.Number `json:"highest_bid"`
}

// resultResponse is a finalized auction result.
type resultResponse struct {
	Item          string      `json:"item"`
	CloseTime     int64       `json:"close_time"`
	Winner        string      `json:"winner"`
	WinningBidID  string      `json:"winning_bid_id,omitempty"`
	Status        string      `json:"status"`
	PricePaid     json.Number `json:"price_paid"`
	TotalBidCount int         `json:"total_bid_count"`
	HighestBid    json.Number `json:"highest_bid"`
	LowestBid     json.Number `json:"lowest_bid"`
	Digest        string      `json:"digest"`
}

// resultsResponse is the JSON response for GET /results.
type resultsResponse struct {
	Results []resultResponse `json:"results"`
}

// ListItem handles POST /auctions.
func (h *AuctionHandler) ListItem(w http.ResponseWriter, r *http.Request) {
	var req listItemRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if req.ReservePrice == nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "reserve_price is required")
		return
	}
	if req.CloseTime == nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "close_time is required")
		return
	}

	outcome, err := h.svc.ListItem(domain.ListItem{
		Timestamp:    req.Timestamp,
		Seller:       req.Seller,
		Item:         req.Item,
		ReservePrice: *req.ReservePrice,
		CloseTime:    *req.CloseTime,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	status := http.StatusCreated
	switch outcome {
	case domain.ListingRejectedFinalized:
		WriteError(w, http.StatusConflict, "auction_finalized", "Item has already been auctioned")
		return
	case domain.ListingReplaced:
		status = http.StatusOK
	}

	WriteJSON(w, status, listItemResponse{
		Item:         req.Item,
		Seller:       req.Seller,
		ReservePrice: amountJSON(*req.ReservePrice),
		CloseTime:    *req.CloseTime,
		Outcome:      string(outcome),
	})
}

// GetAuction handles GET /auctions/{item}.
func (h *AuctionHandler) GetAuction(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.GetAuction(chi.URLParam(r, "item"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, toAuctionResponse(snap))
}

// PlaceBid handles POST /auctions/{item}/bids. A bid the auction ignores is
// still answered with 202; the outcome says what happened to it.
func (h *AuctionHandler) PlaceBid(w http.ResponseWriter, r *http.Request) {
	item := chi.URLParam(r, "item")

	var req placeBidRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if req.Amount == nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "amount is required")
		return
	}
	if req.Timestamp == nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "timestamp is required")
		return
	}

	bid, outcome, err := h.svc.PlaceBid(domain.PlaceBid{
		Timestamp: *req.Timestamp,
		Bidder:    req.Bidder,
		Item:      item,
		Amount:    *req.Amount,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusAccepted, placeBidResponse{
		BidID:     bid.ID,
		Item:      item,
		Bidder:    bid.Bidder,
		Amount:    amountJSON(bid.Amount),
		Timestamp: bid.SubmittedAt,
		Outcome:   string(outcome),
		Accepted:  outcome.Accepted(),
	})
}

// AdvanceTime handles POST /heartbeats.
func (h *AuctionHandler) AdvanceTime(w http.ResponseWriter, r *http.Request) {
	var req heartbeatRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if req.Timestamp == nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "timestamp is required")
		return
	}

	results := h.svc.AdvanceTime(r.Context(), domain.AdvanceTime{Timestamp: *req.Timestamp})
	WriteJSON(w, http.StatusOK, heartbeatResponse{
		Timestamp: *req.Timestamp,
		Results:   toResultResponses(results),
	})
}

// GetResult handles GET /auctions/{item}/result.
func (h *AuctionHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetResult(chi.URLParam(r, "item"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, toResultResponse(result))
}

// ListResults handles GET /results.
func (h *AuctionHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, resultsResponse{
		Results: toResultResponses(h.svc.ListResults()),
	})
}

func toAuctionResponse(snap engine.AuctionSnapshot) auctionResponse {
	return auctionResponse{
		Item:         snap.Item,
		ReservePrice: amountJSON(snap.ReservePrice),
		CloseTime:    snap.CloseTime,
		BidCount:     snap.BidCount,
		HighestBid:   amountJSON(snap.HighestBid),
	}
}

func toResultResponse(r domain.AuctionResult) resultResponse {
	return resultResponse{
		Item:          r.Item,
		CloseTime:     r.CloseTime,
		Winner:        r.Winner,
		WinningBidID:  r.WinningBidID,
		Status:        string(r.Status),
		PricePaid:     amountJSON(r.PricePaid),
		TotalBidCount: r.TotalBidCount,
		HighestBid:    amountJSON(r.HighestBid),
		LowestBid:     amountJSON(r.LowestBid),
		Digest:        domain.ResultDigest(r),
	}
}

// toResultResponses always returns a non-nil slice so the JSON is [] not null.
func toResultResponses(results []domain.AuctionResult) []resultResponse {
	out := make([]resultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, toResultResponse(r))
	}
	return out
}
