package api

import (
	"net/http"

	resdto "parkingbot/internal/handler/dto/response"
	"parkingbot/internal/handler/httperr"
	"parkingbot/internal/pkg/errs"
	"parkingbot/internal/usecase"
	"parkingbot/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ClaimsHandler struct {
	queries queries.ClaimQueries
}

func NewClaimsHandler(queries queries.ClaimQueries) *ClaimsHandler {
	return &ClaimsHandler{
		queries: queries,
	}
}

// @Summary List upcoming claims
// @Description Upcoming parking spot claims in date order; past claims are pruned as a side effect
// @Tags claims
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ClaimResponse
// @Failure 401 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/claims [get]
func (h *ClaimsHandler) List(c *gin.Context) {
	views, err := h.queries.Upcoming(c.Request.Context())
	if err != nil {
		if errs.Is(err, usecase.ErrStoreOperationFailed) {
			httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Claim store unavailable", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	response, err := resdto.FromClaimViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, response)
}
