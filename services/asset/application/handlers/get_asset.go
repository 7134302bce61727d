package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/trackhq/trackhq/pkg/auth"
	"github.com/trackhq/trackhq/pkg/errhttp"
	"github.com/trackhq/trackhq/pkg/httpx"
	appsvcs "github.com/trackhq/trackhq/services/asset/application/services"
)

// GetAssetHandler handles GET /assets/{id} requests.
type GetAssetHandler struct {
	svc *appsvcs.Services
}

// NewGetAssetHandler returns a GetAssetHandler backed by the given services.
func NewGetAssetHandler(svc *appsvcs.Services) *GetAssetHandler {
	return &GetAssetHandler{svc: svc}
}

// Execute returns one asset.
//
//	@Summary		Get asset
//	@Tags			assets
//	@Produce		json
//	@Param			id	path		string	true	"Asset ID"
//	@Success		200	{object}	AssetResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/assets/{id} [get]
func (h *GetAssetHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orgID, err := auth.OrgIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	assetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid asset id")
		return
	}

	asset, err := h.svc.Asset.GetByID(r.Context(), orgID, assetID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toAssetResponse(asset))
}
