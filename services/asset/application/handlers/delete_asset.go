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

// DeleteAssetHandler handles DELETE /assets/{id} requests.
type DeleteAssetHandler struct {
	svc *appsvcs.Services
}

// NewDeleteAssetHandler returns a DeleteAssetHandler backed by the given services.
func NewDeleteAssetHandler(svc *appsvcs.Services) *DeleteAssetHandler {
	return &DeleteAssetHandler{svc: svc}
}

// Execute deletes an asset.
//
//	@Summary		Delete asset
//	@Tags			assets
//	@Param			id	path	string	true	"Asset ID"
//	@Success		204
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/assets/{id} [delete]
func (h *DeleteAssetHandler) Execute(w http.ResponseWriter, r *http.Request) {
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

	if err := h.svc.Asset.Delete(r.Context(), orgID, assetID); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
