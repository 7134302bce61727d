package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/trackhq/trackhq/pkg/auth"
	"github.com/trackhq/trackhq/pkg/errhttp"
	"github.com/trackhq/trackhq/pkg/httpx"
	pkgvalidator "github.com/trackhq/trackhq/pkg/validator"
	appsvcs "github.com/trackhq/trackhq/services/asset/application/services"
	"github.com/trackhq/trackhq/services/asset/domain/models"
)

// CreateAssetRequest is the request body for POST /assets.
type CreateAssetRequest struct {
	Tag         string     `json:"tag" validate:"required,min=1,max=64" example:"LT-0042"`
	Description string     `json:"description" validate:"max=1000" example:"14-inch laptop"`
	CategoryID  uuid.UUID  `json:"category_id" validate:"required"`
	SiteID      uuid.UUID  `json:"site_id" validate:"required"`
	LocationID  *uuid.UUID `json:"location_id,omitempty"`
} // @name CreateAssetRequest

// AssetResponse is returned on asset reads and successful creation.
type AssetResponse struct {
	ID          uuid.UUID  `json:"id"          example:"123e4567-e89b-12d3-a456-426614174000"`
	OrgID       uuid.UUID  `json:"org_id"      example:"550e8400-e29b-41d4-a716-446655440000"`
	Tag         string     `json:"tag"         example:"LT-0042"`
	Description string     `json:"description"`
	CategoryID  uuid.UUID  `json:"category_id"`
	SiteID      uuid.UUID  `json:"site_id"`
	LocationID  *uuid.UUID `json:"location_id,omitempty"`
	Status      string     `json:"status"      example:"in_stock"`
	CreatedAt   time.Time  `json:"created_at"  example:"2024-01-15T10:30:00Z"`
} // @name AssetResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"asset not found"`
} // @name AssetErrorResponse

func toAssetResponse(a *models.Asset) AssetResponse {
	return AssetResponse{
		ID:          a.ID,
		OrgID:       a.OrgID,
		Tag:         a.Tag.String(),
		Description: a.Description,
		CategoryID:  a.CategoryID,
		SiteID:      a.SiteID,
		LocationID:  a.LocationID,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
	}
}

// PostAssetHandler handles POST /assets requests.
type PostAssetHandler struct {
	svc *appsvcs.Services
}

// NewPostAssetHandler returns a PostAssetHandler backed by the given services.
func NewPostAssetHandler(svc *appsvcs.Services) *PostAssetHandler {
	return &PostAssetHandler{svc: svc}
}

// Execute creates a new asset.
//
//	@Summary		Create asset
//	@Description	Creates a new asset record scoped to the org
//	@Tags			assets
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateAssetRequest	true	"Asset creation request"
//	@Success		201		{object}	AssetResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/assets [post]
func (h *PostAssetHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orgID, err := auth.OrgIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CreateAssetRequest](w, r)
	if !ok {
		return
	}

	asset, err := h.svc.Asset.Create(r.Context(), orgID, appsvcs.CreateAssetInput{
		Tag:         req.Tag,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		SiteID:      req.SiteID,
		LocationID:  req.LocationID,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toAssetResponse(asset))
}
