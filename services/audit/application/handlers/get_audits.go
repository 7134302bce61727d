package handlers

import (
	"net/http"
	"strconv"

	"github.com/trackhq/trackhq/pkg/auth"
	"github.com/trackhq/trackhq/pkg/errhttp"
	"github.com/trackhq/trackhq/pkg/httpx"
	appsvcs "github.com/trackhq/trackhq/services/audit/application/services"
	"github.com/trackhq/trackhq/services/audit/domain/repositories"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// AuditListResponse is a page of audits plus the total count.
type AuditListResponse struct {
	Audits []AuditResponse `json:"audits"`
	Total  int             `json:"total"`
} // @name AuditListResponse

// GetAuditsHandler handles GET /audits requests.
type GetAuditsHandler struct {
	svc *appsvcs.Services
}

// NewGetAuditsHandler returns a GetAuditsHandler backed by the given services.
func NewGetAuditsHandler(svc *appsvcs.Services) *GetAuditsHandler {
	return &GetAuditsHandler{svc: svc}
}

// Execute lists audits for the org, most recently started first.
//
//	@Summary		List audits
//	@Tags			audits
//	@Produce		json
//	@Param			limit	query		int	false	"Page size (max 100)"
//	@Param			offset	query		int	false	"Offset"
//	@Success		200		{object}	AuditListResponse
//	@Failure		401		{object}	ErrorResponse
//	@Router			/audits [get]
func (h *GetAuditsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orgID, err := auth.OrgIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	audits, total, err := h.svc.Audit.List(r.Context(), orgID, repositories.QueryOpts{
		Limit:  pageSize(r.URL.Query().Get("limit")),
		Offset: offset(r.URL.Query().Get("offset")),
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := AuditListResponse{
		Audits: make([]AuditResponse, len(audits)),
		Total:  total,
	}
	for i, a := range audits {
		resp.Audits[i] = toAuditResponse(a)
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
