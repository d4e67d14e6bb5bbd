package handler

import (
	"errors"
	"io"

	"fulfillment-ledger/internal/adapter/http/dto"
	"fulfillment-ledger/internal/adapter/http/middleware"
	"fulfillment-ledger/pkg/apperror"
	"fulfillment-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// bindJSON decodes the body into req and trims its strings. On failure the
// error response is already written.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		bindError(c, err)
		return false
	}
	dto.TrimStrings(req)
	return true
}

// bindOptionalJSON is bindJSON for endpoints where the body may be absent.
func bindOptionalJSON(c *gin.Context, req any) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		bindError(c, err)
		return false
	}
	dto.TrimStrings(req)
	return true
}

func bindError(c *gin.Context, err error) {
	if appErr := middleware.PayloadTooLarge(err); appErr != nil {
		response.Error(c, appErr)
		return
	}
	response.Error(c, apperror.Validation(err.Error()))
}

func bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return false
	}
	return true
}

func orderID(c *gin.Context) (string, bool) {
	var uri dto.OrderURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.Validation("invalid order id"))
		return "", false
	}
	return uri.OrderID, true
}

func fulfillmentID(c *gin.Context) (uuid.UUID, bool) {
	var uri dto.FulfillmentURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.Validation("invalid fulfillment id"))
		return uuid.Nil, false
	}
	return uuid.MustParse(uri.ID), true
}

// actor returns the caller's subject for audit and history entries.
func actor(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.OwnerID(c)
	if !ok {
		response.Error(c, apperror.ErrUnauthorized())
	}
	return id, ok
}

// owner resolves whose wallet and orders a request acts on. Staff may act
// for another owner with ?owner_id=; everyone else acts for themselves.
func owner(c *gin.Context, override *uuid.UUID) (uuid.UUID, bool) {
	self, ok := actor(c)
	if !ok {
		return uuid.Nil, false
	}

	if override == nil {
		if raw := c.Query("owner_id"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				response.Error(c, apperror.Validation("invalid owner_id"))
				return uuid.Nil, false
			}
			override = &id
		}
	}
	if override == nil || *override == self {
		return self, true
	}
	if !middleware.IsStaff(c) {
		response.Error(c, apperror.ErrForbidden())
		return uuid.Nil, false
	}
	return *override, true
}
