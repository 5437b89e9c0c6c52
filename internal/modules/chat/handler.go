package chat

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"shalean/internal/middleware"
	jwtsvc "shalean/internal/pkg/jwt"
	"shalean/internal/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the storefront origins once they are final.
		return true
	},
}

type Handler struct {
	service *Service
	hub     *Hub
	jwt     *jwtsvc.Service
}

func NewHandler(service *Service, hub *Hub, jwt *jwtsvc.Service) *Handler {
	return &Handler{service: service, hub: hub, jwt: jwt}
}

// RegisterRoutes mounts the REST endpoints on the authenticated group
// and the websocket endpoint on the public one. Websocket clients
// authenticate with ?token= because browsers cannot set headers on the
// upgrade request.
func (h *Handler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("/chat/ws", h.HandleWebSocket)
	authed.GET("/bookings/:id/messages", h.History)
	authed.POST("/bookings/:id/messages", h.SendMessage)
}

func (h *Handler) History(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	rows, err := h.service.History(c.Request.Context(), bookingID, middleware.UserID(c), c.GetString("role"), limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"messages": rows})
}

func (h *Handler) SendMessage(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Message body is required")
		return
	}

	m, err := h.service.SendMessage(c.Request.Context(), bookingID, middleware.UserID(c), c.GetString("role"), req.Body)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Created(c, gin.H{"message": m})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrNotParticipant):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You are not on this booking's thread")
	case errors.Is(err, ErrEmptyBody):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Message body cannot be empty")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Chat request failed")
	}
}

// HandleWebSocket keeps one connection per user and relays inbound
// frames through the same service path as the REST endpoint.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "token query parameter is required")
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("chat: websocket upgrade failed: %v", err)
		return
	}

	h.hub.Register(claims.UserID, conn)
	defer h.hub.Unregister(claims.UserID)

	for {
		var frame inboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}

		bookingID, err := uuid.Parse(frame.BookingID)
		if err != nil {
			_ = conn.WriteJSON(gin.H{"type": "error", "error": "invalid booking_id"})
			continue
		}

		m, err := h.service.SendMessage(c.Request.Context(), bookingID, claims.UserID, claims.Role, frame.Body)
		if err != nil {
			_ = conn.WriteJSON(gin.H{"type": "error", "error": err.Error()})
			continue
		}
		_ = conn.WriteJSON(MessageEvent{Type: "message", Message: m})
	}
}
