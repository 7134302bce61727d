package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/trackhq/trackhq/pkg/auth"
	"github.com/trackhq/trackhq/pkg/errhttp"
	"github.com/trackhq/trackhq/pkg/httpx"
	pkgvalidator "github.com/trackhq/trackhq/pkg/validator"
	appsvcs "github.com/trackhq/trackhq/services/audit/application/services"
)

// StartAuditRequest is the request body for POST /audits. The resolved scope
// is the union of all assets at the site (narrowed by location/categories if
// given) and the explicitly listed asset ids.
type StartAuditRequest struct {
	Name        string      `json:"name" validate:"required,min=1,max=255" example:"Q4 Count"`
	SiteID      uuid.UUID   `json:"site_id" validate:"required"`
	LocationID  *uuid.UUID  `json:"location_id,omitempty"`
	CategoryIDs []uuid.UUID `json:"category_ids,omitempty"`
	AssetIDs    []uuid.UUID `json:"asset_ids,omitempty"`
} // @name StartAuditRequest

// PostAuditHandler handles POST /audits requests.
type PostAuditHandler struct {
	svc *appsvcs.Services
}

// NewPostAuditHandler returns a PostAuditHandler backed by the given services.
func NewPostAuditHandler(svc *appsvcs.Services) *PostAuditHandler {
	return &PostAuditHandler{svc: svc}
}

// Execute starts a new audit.
//
//	@Summary		Start audit
//	@Description	Resolves the asset scope and creates an audit with one checklist item per asset. An empty scope yields a Draft audit with no checklist.
//	@Tags			audits
//	@Accept			json
//	@Produce		json
//	@Param			request	body		StartAuditRequest	true	"Audit scope"
//	@Success		201		{object}	AuditResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/audits [post]
func (h *PostAuditHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orgID, err := auth.OrgIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	req, ok := pkgvalidator.ValidateRequest[StartAuditRequest](w, r)
	if !ok {
		return
	}

	audit, err := h.svc.Audit.Start(r.Context(), orgID, appsvcs.StartAuditInput{
		Name:        req.Name,
		SiteID:      req.SiteID,
		LocationID:  req.LocationID,
		CategoryIDs: req.CategoryIDs,
		AssetIDs:    req.AssetIDs,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toAuditResponse(audit))
}
