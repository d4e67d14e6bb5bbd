package handler

import (
	"fulfillment-ledger/internal/adapter/http/dto"
	"fulfillment-ledger/internal/adapter/http/middleware"
	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"
	"fulfillment-ledger/pkg/apperror"
	"fulfillment-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FulfillmentHandler handles the operations endpoints for fulfillment jobs.
type FulfillmentHandler struct {
	fulfillments ports.FulfillmentService
	status       ports.StatusService
}

// NewFulfillmentHandler creates a new FulfillmentHandler.
func NewFulfillmentHandler(fulfillments ports.FulfillmentService, status ports.StatusService) *FulfillmentHandler {
	return &FulfillmentHandler{fulfillments: fulfillments, status: status}
}

// Get handles GET /api/v1/fulfillments/:id. Merchants only see their own jobs.
func (h *FulfillmentHandler) Get(c *gin.Context) {
	id, ok := fulfillmentID(c)
	if !ok {
		return
	}
	caller, ok := actor(c)
	if !ok {
		return
	}

	rec, err := h.fulfillments.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !middleware.IsStaff(c) && rec.OwnerID != caller {
		response.Error(c, apperror.ErrNotFound("fulfillment"))
		return
	}
	response.OK(c, rec)
}

// List handles GET /api/v1/fulfillments.
func (h *FulfillmentHandler) List(c *gin.Context) {
	var q dto.ListFulfillmentsQuery
	if !bindQuery(c, &q) {
		return
	}
	q.Normalize()

	params := ports.FulfillmentListParams{
		Priority: q.Priority,
		HasIssue: q.HasIssue,
		Page:     q.Page,
		PageSize: q.PageSize,
	}
	if q.Status != "" {
		status := domain.FulfillmentStatus(q.Status)
		params.Status = &status
	}
	if q.OwnerID != "" {
		ownerID := uuid.MustParse(q.OwnerID)
		params.OwnerID = &ownerID
	}

	records, total, err := h.fulfillments.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, records, total, q.Page, q.PageSize)
}

// Transition handles POST /api/v1/fulfillments/:id/status.
func (h *FulfillmentHandler) Transition(c *gin.Context) {
	id, ok := fulfillmentID(c)
	if !ok {
		return
	}
	actorID, ok := actor(c)
	if !ok {
		return
	}

	var req dto.TransitionRequest
	if !bindJSON(c, &req) {
		return
	}

	rec, err := h.status.Transition(c.Request.Context(), ports.TransitionRequest{
		FulfillmentID: id,
		NewStatus:     domain.FulfillmentStatus(req.Status),
		ActorID:       &actorID,
		Note:          req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rec)
}

// BulkTransition handles POST /api/v1/fulfillments/bulk. Per-item failures
// are reported in the body; the request itself succeeds.
func (h *FulfillmentHandler) BulkTransition(c *gin.Context) {
	actorID, ok := actor(c)
	if !ok {
		return
	}

	var req dto.BulkTransitionRequest
	if !bindJSON(c, &req) {
		return
	}

	ids := make([]uuid.UUID, len(req.FulfillmentIDs))
	for i, raw := range req.FulfillmentIDs {
		ids[i] = uuid.MustParse(raw)
	}

	res, err := h.status.BulkTransition(c.Request.Context(), ports.BulkTransitionRequest{
		FulfillmentIDs: ids,
		NewStatus:      domain.FulfillmentStatus(req.Status),
		ActorID:        &actorID,
		Note:           req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// UpdateTracking handles POST /api/v1/fulfillments/:id/tracking.
func (h *FulfillmentHandler) UpdateTracking(c *gin.Context) {
	var req dto.TrackingRequest
	h.patch(c, &req, func(id, actorID uuid.UUID) (*domain.FulfillmentRecord, error) {
		return h.fulfillments.UpdateTracking(c.Request.Context(), id, req.Update(), &actorID)
	})
}

// Assign handles POST /api/v1/fulfillments/:id/assign.
func (h *FulfillmentHandler) Assign(c *gin.Context) {
	var req dto.AssignRequest
	h.patch(c, &req, func(id, actorID uuid.UUID) (*domain.FulfillmentRecord, error) {
		return h.fulfillments.UpdateAssignments(c.Request.Context(), id, req.Update(), &actorID)
	})
}

// UpdateFlags handles POST /api/v1/fulfillments/:id/flags.
func (h *FulfillmentHandler) UpdateFlags(c *gin.Context) {
	var req dto.FlagsRequest
	h.patch(c, &req, func(id, actorID uuid.UUID) (*domain.FulfillmentRecord, error) {
		return h.fulfillments.UpdateFlags(c.Request.Context(), id, req.Update(), &actorID)
	})
}

func (h *FulfillmentHandler) patch(c *gin.Context, req any, apply func(id, actorID uuid.UUID) (*domain.FulfillmentRecord, error)) {
	id, ok := fulfillmentID(c)
	if !ok {
		return
	}
	actorID, ok := actor(c)
	if !ok {
		return
	}
	if !bindJSON(c, req) {
		return
	}

	rec, err := apply(id, actorID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rec)
}
