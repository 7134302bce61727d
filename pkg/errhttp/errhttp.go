// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/trackhq/trackhq/pkg/httpx"
	assetdomain "github.com/trackhq/trackhq/services/asset/domain"
	auditdomain "github.com/trackhq/trackhq/services/audit/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, auditdomain.ErrAuditNotFound),
		errors.Is(err, auditdomain.ErrAuditItemNotFound),
		errors.Is(err, assetdomain.ErrAssetNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, auditdomain.ErrAuditNotStarted),
		errors.Is(err, assetdomain.ErrAssetTagTaken):
		return http.StatusConflict // 409
	case errors.Is(err, auditdomain.ErrInvalidAuditName),
		errors.Is(err, auditdomain.ErrUnknownSite),
		errors.Is(err, auditdomain.ErrLocationNotInSite),
		errors.Is(err, auditdomain.ErrUnknownAsset),
		errors.Is(err, assetdomain.ErrInvalidAssetTag),
		errors.Is(err, assetdomain.ErrSiteNotFound),
		errors.Is(err, assetdomain.ErrLocationNotFound),
		errors.Is(err, assetdomain.ErrCategoryNotFound):
		return http.StatusUnprocessableEntity // 422
	default:
		return http.StatusInternalServerError // 500
	}
}
