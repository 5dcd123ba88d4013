package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/viniciustorricelli/pensell/internal/domain"
)

type conversationResponse struct {
	ID            string    `json:"id"`
	AdID          string    `json:"ad_id"`
	AdTitle       string    `json:"ad_title"`
	AdImage       string    `json:"ad_image,omitempty"`
	AdPrice       float64   `json:"ad_price"`
	BuyerID       string    `json:"buyer_id"`
	BuyerName     string    `json:"buyer_name,omitempty"`
	BuyerPhoto    string    `json:"buyer_photo,omitempty"`
	SellerID      string    `json:"seller_id"`
	SellerName    string    `json:"seller_name,omitempty"`
	SellerPhoto   string    `json:"seller_photo,omitempty"`
	LastMessage   string    `json:"last_message"`
	LastMessageAt time.Time `json:"last_message_at"`
	Unread        int64     `json:"unread"`
}

func toConversationResponse(c *domain.Conversation, viewerID string) conversationResponse {
	return conversationResponse{
		ID:            c.ID,
		AdID:          c.AdID,
		AdTitle:       c.AdTitle,
		AdImage:       c.AdImage,
		AdPrice:       c.AdPrice,
		BuyerID:       c.BuyerID,
		BuyerName:     c.BuyerName,
		BuyerPhoto:    c.BuyerPhoto,
		SellerID:      c.SellerID,
		SellerName:    c.SellerName,
		SellerPhoto:   c.SellerPhoto,
		LastMessage:   c.LastMessage,
		LastMessageAt: c.LastMessageAt,
		Unread:        c.UnreadFor(viewerID),
	}
}

type messageResponse struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name,omitempty"`
	Content    string    `json:"content,omitempty"`
	ImageURL   string    `json:"image_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// HandleStartConversation opens (or reuses) the thread about an ad.
func (h *Handler) HandleStartConversation(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		AdID string `json:"ad_id"`
	}
	if !h.decode(w, r, &payload) {
		return
	}

	userID := SessionUserID(r.Context())
	conversation, err := h.chat.StartConversation(r.Context(), payload.AdID, userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toConversationResponse(conversation, userID))
}

// HandleListConversations returns the session user's inbox.
func (h *Handler) HandleListConversations(w http.ResponseWriter, r *http.Request) {
	userID := SessionUserID(r.Context())
	conversations, err := h.chat.ListConversations(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]conversationResponse, 0, len(conversations))
	for _, c := range conversations {
		out = append(out, toConversationResponse(c, userID))
	}
	h.writeJSON(w, http.StatusOK, out)
}

// HandleUnreadCount returns the inbox badge counter.
func (h *Handler) HandleUnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.chat.UnreadCount(r.Context(), SessionUserID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int{"unread": count})
}

// HandleMessages returns the thread history and marks the caller's side read.
func (h *Handler) HandleMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.chat.Messages(r.Context(), chi.URLParam(r, "id"), SessionUserID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]messageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, messageResponse{
			ID:         m.ID,
			SenderID:   m.SenderID,
			SenderName: m.SenderName,
			Content:    m.Content,
			ImageURL:   m.ImageURL,
			CreatedAt:  m.CreatedAt,
		})
	}
	h.writeJSON(w, http.StatusOK, out)
}

// HandleSendMessage appends a text or image message to the thread.
func (h *Handler) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Content  string `json:"content"`
		ImageURL string `json:"image_url"`
	}
	if !h.decode(w, r, &payload) {
		return
	}

	message, err := h.chat.SendMessage(r.Context(), chi.URLParam(r, "id"), SessionUserID(r.Context()), payload.Content, payload.ImageURL)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if h.metrics != nil {
		h.metrics.MessagesSentTotal.Inc()
	}
	h.writeJSON(w, http.StatusCreated, messageResponse{
		ID:         message.ID,
		SenderID:   message.SenderID,
		SenderName: message.SenderName,
		Content:    message.Content,
		ImageURL:   message.ImageURL,
		CreatedAt:  message.CreatedAt,
	})
}

// HandleMarkRead zeroes the caller's unread counter for the thread.
func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	if err := h.chat.MarkRead(r.Context(), chi.URLParam(r, "id"), SessionUserID(r.Context())); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusNoContent, nil)
}
