package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/trackhq/trackhq/pkg/auth"
	"github.com/trackhq/trackhq/pkg/errhttp"
	"github.com/trackhq/trackhq/pkg/httpx"
	appsvcs "github.com/trackhq/trackhq/services/audit/application/services"
)

// GetVarianceHandler handles GET /audits/{id}/variance requests.
type GetVarianceHandler struct {
	svc *appsvcs.Services
}

// NewGetVarianceHandler returns a GetVarianceHandler backed by the given services.
func NewGetVarianceHandler(svc *appsvcs.Services) *GetVarianceHandler {
	return &GetVarianceHandler{svc: svc}
}

// Execute returns the variance report for an audit.
//
//	@Summary		Variance report
//	@Description	Found/missing breakdown enriched with asset descriptive fields. Extras is always empty.
//	@Tags			audits
//	@Produce		json
//	@Param			id	path		string	true	"Audit ID"
//	@Success		200	{object}	object
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/audits/{id}/variance [get]
func (h *GetVarianceHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orgID, err := auth.OrgIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	auditID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid audit id")
		return
	}

	report, err := h.svc.Audit.Variance(r.Context(), orgID, auditID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, report)
}
