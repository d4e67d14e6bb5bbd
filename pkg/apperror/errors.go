package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Details    any    `json:"details,omitempty"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the caller may retry the same request unchanged.
func (e *AppError) Retryable() bool {
	return e.Code == CodeStorageFailure || e.Code == CodeRateLimited || e.Code == CodeUpstreamFailure
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// WithDetails returns a copy of e carrying a client-visible payload.
func (e *AppError) WithDetails(details any) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

const (
	CodeInsufficientFunds  = "WAL_001"
	CodeAlreadySubmitted   = "FUL_001"
	CodeInvalidTransition  = "FUL_002"
	CodeDuplicateEntry     = "LED_001"
	CodeNotFound           = "GEN_404"
	CodeInvariantViolation = "INV_001"
	CodeZeroAmount         = "INV_002"
	CodeValidation         = "REQ_001"
	CodePayloadTooLarge    = "REQ_002"
	CodeUnauthorized       = "AUTH_001"
	CodeInvalidToken       = "AUTH_002"
	CodeForbidden          = "AUTH_003"
	CodeRateLimited        = "RATE_001"
	CodeStorageFailure     = "SYS_001"
	CodeInternal           = "SYS_002"
	CodeUpstreamFailure    = "SYS_003"
)

// InsufficientFundsDetails is attached to WAL_001 errors.
type InsufficientFundsDetails struct {
	Balance  int64 `json:"balance"`
	Required int64 `json:"required"`
	Shortage int64 `json:"shortage"`
}

// InvalidTransitionDetails is attached to FUL_002 errors.
type InvalidTransitionDetails struct {
	Current   string   `json:"current"`
	Requested string   `json:"requested"`
	Allowed   []string `json:"allowed"`
}

// ---- Wallet (WAL) ----

func ErrInsufficientFunds(balance, required int64) *AppError {
	e := New(CodeInsufficientFunds, "Insufficient balance in wallet", http.StatusPaymentRequired)
	e.Details = InsufficientFundsDetails{
		Balance:  balance,
		Required: required,
		Shortage: required - balance,
	}
	return e
}

// ---- Fulfillment (FUL) ----

func ErrAlreadySubmitted() *AppError {
	return New(CodeAlreadySubmitted, "Order has already been submitted for fulfillment", http.StatusConflict)
}

func ErrInvalidTransition(current, requested string, allowed []string) *AppError {
	if allowed == nil {
		allowed = []string{}
	}
	e := New(CodeInvalidTransition,
		fmt.Sprintf("Cannot move fulfillment from %s to %s", current, requested),
		http.StatusConflict)
	e.Details = InvalidTransitionDetails{
		Current:   current,
		Requested: requested,
		Allowed:   allowed,
	}
	return e
}

// ---- Ledger (LED) ----

func ErrDuplicateEntry() *AppError {
	return New(CodeDuplicateEntry, "Ledger entry already exists for this reference", http.StatusConflict)
}

// ---- Generic ----

func ErrNotFound(entity string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrInvariantViolation(message string) *AppError {
	return New(CodeInvariantViolation, message, http.StatusUnprocessableEntity)
}

func ErrZeroAmount() *AppError {
	return New(CodeZeroAmount, "Required amount must be greater than zero", http.StatusUnprocessableEntity)
}

// Validation returns a REQ_001 bad-request error.
func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}

func ErrPayloadTooLarge() *AppError {
	return New(CodePayloadTooLarge, "Request body too large", http.StatusRequestEntityTooLarge)
}

// ---- Authentication (AUTH) ----

func ErrUnauthorized() *AppError {
	return New(CodeUnauthorized, "Authentication required", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)
}

func ErrForbidden() *AppError {
	return New(CodeForbidden, "Insufficient role for this operation", http.StatusForbidden)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New(CodeRateLimited, "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// ErrStorageFailure marks a transient storage fault. The request is safe to retry.
func ErrStorageFailure(err error) *AppError {
	return Wrap(CodeStorageFailure, "Storage temporarily unavailable", http.StatusServiceUnavailable, err)
}

// ErrUpstreamFailure marks a failed call to the storefront order source.
func ErrUpstreamFailure(err error) *AppError {
	return Wrap(CodeUpstreamFailure, "Order source temporarily unavailable", http.StatusBadGateway, err)
}

// InternalError wraps an unexpected internal error.
func InternalError(err error) *AppError {
	return Wrap(CodeInternal, "Internal server error", http.StatusInternalServerError, err)
}
