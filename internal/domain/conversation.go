package domain

import "time"

// Conversation is a buyer/seller thread about one ad, keyed by (ad, buyer).
// It carries denormalized participant and ad data plus per-side unread
// counters and a last-message preview for the inbox listing.
type Conversation struct {
	ID            string
	AdID          string
	AdTitle       string
	AdImage       string
	AdPrice       float64
	BuyerID       string
	BuyerName     string
	BuyerPhoto    string
	SellerID      string
	SellerName    string
	SellerPhoto   string
	LastMessage   string
	LastMessageAt time.Time
	UnreadBuyer   int64
	UnreadSeller  int64
	CreatedAt     time.Time
}

// UnreadFor returns the unread counter for the given participant.
func (c *Conversation) UnreadFor(userID string) int64 {
	if c.BuyerID == userID {
		return c.UnreadBuyer
	}
	if c.SellerID == userID {
		return c.UnreadSeller
	}
	return 0
}

// HasParticipant reports whether userID is the buyer or the seller.
func (c *Conversation) HasParticipant(userID string) bool {
	return c.BuyerID == userID || c.SellerID == userID
}

// Message is one entry in a conversation's append-only, ordered sequence.
type Message struct {
	ID             string
	ConversationID string
	SenderID       string
	SenderName     string
	Content        string
	ImageURL       string
	CreatedAt      time.Time
}
