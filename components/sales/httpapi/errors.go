package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/goliatone/go-ferry-admin/components/sales"
)

// StatusFor maps an error onto the HTTP status returned to the browser.
func StatusFor(err error) int {
	if errors.Is(err, ErrNotConfigured) {
		return http.StatusNotImplemented
	}
	if errors.Is(err, sales.ErrDialogBusy) || errors.Is(err, sales.ErrDialogClosed) {
		return http.StatusConflict
	}
	if errors.Is(err, sales.ErrRowNotFound) {
		return http.StatusNotFound
	}
	switch sales.Classify(err) {
	case sales.KindNone:
		return http.StatusOK
	case sales.KindValidation:
		return http.StatusUnprocessableEntity
	case sales.KindSession:
		return http.StatusUnauthorized
	case sales.KindTransport:
		return http.StatusServiceUnavailable
	case sales.KindRemote, sales.KindDecode:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ErrorPayload is the JSON body of a failed request.
type ErrorPayload struct {
	Error  string `json:"error"`
	Kind   string `json:"kind,omitempty"`
	Notice string `json:"notice,omitempty"`
}

// NewErrorPayload localizes err for op.
func NewErrorPayload(ctx context.Context, svc sales.TranslationService, op sales.Operation, locale string, err error) ErrorPayload {
	return ErrorPayload{
		Error:  err.Error(),
		Kind:   string(sales.Classify(err)),
		Notice: sales.Notice(ctx, svc, op, locale, err),
	}
}

// ParseAcceptLanguage returns the first language tag of an Accept-Language header.
func ParseAcceptLanguage(header string) string {
	for _, token := range strings.Split(header, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if idx := strings.Index(token, ";"); idx >= 0 {
			token = token[:idx]
		}
		if token != "" {
			return strings.ToLower(token)
		}
	}
	return ""
}
