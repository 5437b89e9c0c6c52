package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shalean/internal/middleware"
	"shalean/internal/pkg/response"
	"shalean/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.POST("/auth/register", h.Register)
	public.POST("/auth/login", h.Login)
	authed.GET("/auth/me", h.Me)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.Register(c.Request.Context(), req)
	switch {
	case errors.Is(err, ErrValidation):
		var vErr *validator.Error
		if errors.As(err, &vErr) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid registration data", vErr.Fields)
			break
		}
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid registration data")
	case errors.Is(err, ErrWeakPassword):
		response.Error(c, http.StatusBadRequest, "WEAK_PASSWORD", "Password must be at least 8 characters")
	case errors.Is(err, ErrEmailTaken):
		response.Error(c, http.StatusConflict, "EMAIL_TAKEN", "Email already registered")
	case err != nil:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to register")
	default:
		response.Created(c, res)
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	case err != nil:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to log in")
	default:
		response.Success(c, http.StatusOK, res)
	}
}

func (h *Handler) Me(c *gin.Context) {
	u, err := h.service.Me(c.Request.Context(), middleware.UserID(c))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load profile")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u})
}
