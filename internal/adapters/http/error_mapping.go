package httpadapter

import (
	"errors"
	"net/http"

	"github.com/kirillkom/library-searchbox/internal/core/domain"
)

var (
	errAnalyticsDisabled = errors.New("analytics store is not configured")
	errInvalidSince      = errors.New("since must be RFC 3339 or a positive duration")
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrNotFound):
		return http.StatusNotFound
	case domain.IsKind(err, domain.ErrTemporary):
		return http.StatusServiceUnavailable
	case domain.IsKind(err, domain.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
