package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mpalashb/secureprime-digital-agency/internal/delivery/http/response"
	"github.com/mpalashb/secureprime-digital-agency/internal/usecase"
)

type HealthHandler struct {
	healthUC usecase.HealthUsecase
}

func NewHealthHandler(public *gin.RouterGroup, healthUC usecase.HealthUsecase) {
	handler := &HealthHandler{healthUC: healthUC}
	public.GET("/health", handler.Health)
}

// Health godoc
// @Summary      Health Check
// @Description  Reports database and Redis reachability.
// @Tags         system
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	status, ok := h.healthUC.Check(c.Request.Context())
	if !ok {
		response.Error(c, http.StatusServiceUnavailable, "System degraded", status)
		return
	}
	response.Success(c, http.StatusOK, "System operational", status)
}
