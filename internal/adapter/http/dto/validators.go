package dto

import (
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"fulfillment-ledger/internal/core/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	safeStringRe = regexp.MustCompile(`^[a-zA-Z0-9_\-\.]+$`)
	orderRefRe   = regexp.MustCompile(`^[a-zA-Z0-9_\-\.:#]{1,128}$`)
)

func init() {
	// Unknown JSON fields are a client error, not something to ignore silently.
	binding.EnableDecoderDisallowUnknownFields = true

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("safe_id", validateSafeID)
		_ = v.RegisterValidation("safe_url", validateSafeURL)
		_ = v.RegisterValidation("order_ref", validateOrderRef)
		_ = v.RegisterValidation("fulfillment_status", validateFulfillmentStatus)
	}
}

// validateSafeID allows alphanumeric, underscore, dash, and dot.
func validateSafeID(fl validator.FieldLevel) bool {
	return safeStringRe.MatchString(fl.Field().String())
}

// validateSafeURL accepts only http/https URLs.
func validateSafeURL(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" {
		return true // optional field; use "required" tag to enforce presence
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// validateOrderRef accepts storefront order ids: up to 128 of [A-Za-z0-9_-.:#].
func validateOrderRef(fl validator.FieldLevel) bool {
	return orderRefRe.MatchString(fl.Field().String())
}

func validateFulfillmentStatus(fl validator.FieldLevel) bool {
	return domain.FulfillmentStatus(fl.Field().String()).IsValid()
}

// TrimStrings trims surrounding whitespace from every exported string field
// (including *string and nested struct pointers) of a struct pointer. Values
// are stored as sent otherwise; escaping is left to the output encoder.
func TrimStrings(v any) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	trimFields(rv.Elem())
}

func trimFields(rv reflect.Value) {
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(strings.TrimSpace(f.String()))
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			elem := f.Elem()
			switch elem.Kind() {
			case reflect.String:
				elem.SetString(strings.TrimSpace(elem.String()))
			case reflect.Struct:
				trimFields(elem)
			}
		}
	}
}
