package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/trackhq/trackhq/pkg/auth"
	"github.com/trackhq/trackhq/pkg/errhttp"
	"github.com/trackhq/trackhq/pkg/httpx"
	pkgvalidator "github.com/trackhq/trackhq/pkg/validator"
	appsvcs "github.com/trackhq/trackhq/services/audit/application/services"
)

// UpdateItemRequest is the request body for PATCH /audits/{id}/items/{itemID}.
// The update is a full overwrite: an omitted found decodes to false and
// replaces any prior value, it does not preserve it. Callers submitting
// notes-only updates must resend found.
type UpdateItemRequest struct {
	Found bool    `json:"found"`
	Notes *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
} // @name UpdateItemRequest

// PatchAuditItemHandler handles PATCH /audits/{id}/items/{itemID} requests.
type PatchAuditItemHandler struct {
	svc *appsvcs.Services
}

// NewPatchAuditItemHandler returns a PatchAuditItemHandler backed by the given services.
func NewPatchAuditItemHandler(svc *appsvcs.Services) *PatchAuditItemHandler {
	return &PatchAuditItemHandler{svc: svc}
}

// Execute records a found/notes overwrite for one checklist item.
//
//	@Summary		Update audit item
//	@Description	Overwrites found and notes for a checklist item and stamps checked_at. Omitted found resets to false.
//	@Tags			audits
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Audit ID"
//	@Param			itemID	path		string				true	"Audit item ID"
//	@Param			request	body		UpdateItemRequest	true	"Item outcome"
//	@Success		200		{object}	AuditItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/audits/{id}/items/{itemID} [patch]
func (h *PatchAuditItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orgID, err := auth.OrgIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UpdateItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Audit.UpdateItem(r.Context(), orgID, itemID, appsvcs.UpdateItemInput{
		Found: req.Found,
		Notes: req.Notes,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}
