package handler

import (
	"fulfillment-ledger/internal/adapter/http/dto"
	"fulfillment-ledger/internal/core/ports"
	"fulfillment-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// OrderHandler handles merchant-facing order endpoints.
type OrderHandler struct {
	submissions ports.SubmissionService
	costs       ports.OrderCostService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(submissions ports.SubmissionService, costs ports.OrderCostService) *OrderHandler {
	return &OrderHandler{submissions: submissions, costs: costs}
}

// Submit handles POST /api/v1/orders/:orderId/fulfill-via-ledger.
// The body is optional; it may override cost components.
func (h *OrderHandler) Submit(c *gin.Context) {
	orderID, ok := orderID(c)
	if !ok {
		return
	}
	ownerID, ok := owner(c, nil)
	if !ok {
		return
	}
	actorID, _ := actor(c)

	var req dto.CostsRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	res, err := h.submissions.Submit(c.Request.Context(), ports.SubmitRequest{
		OwnerID: ownerID,
		OrderID: orderID,
		Costs:   req.Overrides(),
		ActorID: &actorID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if res.Replayed {
		response.OK(c, res)
		return
	}
	response.Created(c, res)
}

// Status handles GET /api/v1/orders/:orderId/fulfillment-status.
func (h *OrderHandler) Status(c *gin.Context) {
	orderID, ok := orderID(c)
	if !ok {
		return
	}
	ownerID, ok := owner(c, nil)
	if !ok {
		return
	}

	status, err := h.submissions.GetStatus(c.Request.Context(), ownerID, orderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, status)
}

// Sync handles POST /api/v1/orders/:orderId/sync.
func (h *OrderHandler) Sync(c *gin.Context) {
	orderID, ok := orderID(c)
	if !ok {
		return
	}
	ownerID, ok := owner(c, nil)
	if !ok {
		return
	}

	rec, err := h.costs.Sync(c.Request.Context(), ownerID, orderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rec)
}

// UpdateCosts handles PUT /api/v1/orders/:orderId/costs.
func (h *OrderHandler) UpdateCosts(c *gin.Context) {
	orderID, ok := orderID(c)
	if !ok {
		return
	}
	ownerID, ok := owner(c, nil)
	if !ok {
		return
	}
	actorID, _ := actor(c)

	var req dto.CostsRequest
	if !bindJSON(c, &req) {
		return
	}

	rec, err := h.costs.UpdateCosts(c.Request.Context(), ownerID, orderID, req.Overrides(), &actorID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rec)
}
