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

// AuditDetailResponse is an audit together with its full checklist.
type AuditDetailResponse struct {
	AuditResponse
	Items []AuditItemResponse `json:"items"`
} // @name AuditDetailResponse

// GetAuditHandler handles GET /audits/{id} requests.
type GetAuditHandler struct {
	svc *appsvcs.Services
}

// NewGetAuditHandler returns a GetAuditHandler backed by the given services.
func NewGetAuditHandler(svc *appsvcs.Services) *GetAuditHandler {
	return &GetAuditHandler{svc: svc}
}

// Execute returns one audit with its checklist.
//
//	@Summary		Get audit
//	@Tags			audits
//	@Produce		json
//	@Param			id	path		string	true	"Audit ID"
//	@Success		200	{object}	AuditDetailResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/audits/{id} [get]
func (h *GetAuditHandler) Execute(w http.ResponseWriter, r *http.Request) {
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

	audit, err := h.svc.Audit.GetByID(r.Context(), orgID, auditID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	items, err := h.svc.Audit.Items(r.Context(), orgID, auditID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := AuditDetailResponse{
		AuditResponse: toAuditResponse(audit),
		Items:         make([]AuditItemResponse, len(items)),
	}
	for i, item := range items {
		resp.Items[i] = toItemResponse(item)
	}
	httpx.JSON(w, http.StatusOK, resp)
}
