package handler

import (
	"fulfillment-ledger/internal/adapter/http/dto"
	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"
	"fulfillment-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// WalletHandler handles wallet-related endpoints.
type WalletHandler struct {
	wallets ports.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(wallets ports.WalletService) *WalletHandler {
	return &WalletHandler{wallets: wallets}
}

// GetBalance handles GET /api/v1/wallet.
func (h *WalletHandler) GetBalance(c *gin.Context) {
	ownerID, ok := owner(c, nil)
	if !ok {
		return
	}

	balance, err := h.wallets.GetBalance(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.WalletBalanceResponse{
		OwnerID: ownerID,
		Balance: balance,
	})
}

// ListEntries handles GET /api/v1/wallet/entries.
func (h *WalletHandler) ListEntries(c *gin.Context) {
	ownerID, ok := owner(c, nil)
	if !ok {
		return
	}
	var q dto.LedgerEntriesQuery
	if !bindQuery(c, &q) {
		return
	}
	q.Normalize()

	params := ports.LedgerListParams{OwnerID: ownerID, Page: q.Page, PageSize: q.PageSize}
	if q.Direction != "" {
		direction := domain.LedgerDirection(q.Direction)
		params.Direction = &direction
	}

	entries, total, err := h.wallets.ListEntries(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, entries, total, q.Page, q.PageSize)
}

// TopUp handles POST /api/v1/wallet/topup. Replaying a reference returns the
// original entry.
func (h *WalletHandler) TopUp(c *gin.Context) {
	var req dto.TopUpRequest
	if !bindJSON(c, &req) {
		return
	}
	ownerID, ok := owner(c, req.OwnerID)
	if !ok {
		return
	}
	actorID, _ := actor(c)

	entry, err := h.wallets.TopUp(c.Request.Context(), ports.TopUpRequest{
		OwnerID:   ownerID,
		Amount:    req.Amount,
		Reference: req.Reference,
		ActorID:   &actorID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}
