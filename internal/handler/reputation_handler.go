package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Varshith2802/ip-reputation-checker/internal/models"
	"github.com/Varshith2802/ip-reputation-checker/pkg/response"
)

// ReputationService defines the lookup operation the handler needs.
type ReputationService interface {
	Lookup(ctx context.Context, ip string) (models.ReputationResult, error)
}

// ReputationHandler exposes the reputation-lookup endpoint.
type ReputationHandler struct {
	service ReputationService
}

// NewReputationHandler creates a new handler.
func NewReputationHandler(svc ReputationService) *ReputationHandler {
	return &ReputationHandler{service: svc}
}

// CheckIP godoc
// @Summary Check IP reputation
// @Description Validates the IP, proxies a geolocation lookup, and annotates the result with a reputation label
// @Tags Reputation
// @Produce json
// @Param ip path string true "IPv4 or IPv6 literal"
// @Success 200 {object} models.ReputationResult
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 429 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /check-ip/{ip} [get]
func (h *ReputationHandler) CheckIP(c *gin.Context) {
	result, err := h.service.Lookup(c.Request.Context(), c.Param("ip"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, result)
}
