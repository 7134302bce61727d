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

// PostCompleteHandler handles POST /audits/{id}/complete requests.
type PostCompleteHandler struct {
	svc *appsvcs.Services
}

// NewPostCompleteHandler returns a PostCompleteHandler backed by the given services.
func NewPostCompleteHandler(svc *appsvcs.Services) *PostCompleteHandler {
	return &PostCompleteHandler{svc: svc}
}

// Execute completes an audit.
//
//	@Summary		Complete audit
//	@Description	Transitions an ongoing audit to completed regardless of unresolved items. Re-completing restamps completed_at.
//	@Tags			audits
//	@Produce		json
//	@Param			id	path		string	true	"Audit ID"
//	@Success		200	{object}	AuditResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Router			/audits/{id}/complete [post]
func (h *PostCompleteHandler) Execute(w http.ResponseWriter, r *http.Request) {
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

	audit, err := h.svc.Audit.Complete(r.Context(), orgID, auditID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toAuditResponse(audit))
}
