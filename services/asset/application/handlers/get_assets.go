package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/trackhq/trackhq/pkg/auth"
	"github.com/trackhq/trackhq/pkg/errhttp"
	"github.com/trackhq/trackhq/pkg/httpx"
	appsvcs "github.com/trackhq/trackhq/services/asset/application/services"
	"github.com/trackhq/trackhq/services/asset/domain/repositories"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// AssetViewResponse is the read-model representation of one asset with its
// reference names resolved.
type AssetViewResponse struct {
	ID           uuid.UUID `json:"id"`
	Tag          string    `json:"tag"`
	Description  string    `json:"description"`
	CategoryName string    `json:"category"`
	SiteName     string    `json:"site"`
	LocationName string    `json:"location"`
	Status       string    `json:"status"`
} // @name AssetViewResponse

// AssetListResponse is a page of asset views plus the total count.
type AssetListResponse struct {
	Assets []AssetViewResponse `json:"assets"`
	Total  int                 `json:"total"`
} // @name AssetListResponse

// GetAssetsHandler handles GET /assets requests.
type GetAssetsHandler struct {
	svc *appsvcs.Services
}

// NewGetAssetsHandler returns a GetAssetsHandler backed by the given services.
func NewGetAssetsHandler(svc *appsvcs.Services) *GetAssetsHandler {
	return &GetAssetsHandler{svc: svc}
}

// Execute lists assets for the org ordered by tag.
//
//	@Summary		List assets
//	@Tags			assets
//	@Produce		json
//	@Param			limit	query		int	false	"Page size (max 100)"
//	@Param			offset	query		int	false	"Offset"
//	@Success		200		{object}	AssetListResponse
//	@Failure		401		{object}	ErrorResponse
//	@Router			/assets [get]
func (h *GetAssetsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orgID, err := auth.OrgIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	views, total, err := h.svc.Asset.List(r.Context(), orgID, repositories.QueryOpts{
		Limit:  pageSize(r.URL.Query().Get("limit")),
		Offset: offset(r.URL.Query().Get("offset")),
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := AssetListResponse{
		Assets: make([]AssetViewResponse, len(views)),
		Total:  total,
	}
	for i, v := range views {
		resp.Assets[i] = AssetViewResponse{
			ID:           v.ID,
			Tag:          v.Tag,
			Description:  v.Description,
			CategoryName: v.CategoryName,
			SiteName:     v.SiteName,
			LocationName: v.LocationName,
			Status:       v.Status,
		}
	}
	httpx.JSON(w, http.StatusOK, resp)
}

func pageSize(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return defaultPageSize
	}
	if n > maxPageSize {
		return maxPageSize
	}
	return n
}

func offset(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
