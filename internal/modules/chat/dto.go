package chat

import "shalean/internal/domain"

type SendMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

// MessageEvent is the frame pushed over the websocket.
type MessageEvent struct {
	Type    string          `json:"type"`
	Message *domain.Message `json:"message"`
}

// inboundFrame is what a connected client may send: a chat line for a
// booking thread.
type inboundFrame struct {
	BookingID string `json:"booking_id"`
	Body      string `json:"body"`
}
