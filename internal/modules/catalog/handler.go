package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shalean/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/catalog/services", h.Services)
	rg.GET("/catalog/services/:type/extras", h.Extras)
}

func (h *Handler) Services(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"services": h.service.Services(c.Request.Context()),
	})
}

func (h *Handler) Extras(c *gin.Context) {
	extras, ok := h.service.Extras(c.Request.Context(), c.Param("type"))
	if !ok {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Unknown service type")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"extras": extras})
}
