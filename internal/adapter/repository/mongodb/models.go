package mongodb

import (
	"time"

	"github.com/viniciustorricelli/pensell/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Database documents. Domain entities carry no bson tags; the mapping between
// the two lives here.

type adDocument struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty"`
	Title                string             `bson:"title"`
	Description          string             `bson:"description"`
	Price                float64            `bson:"price"`
	Category             string             `bson:"category"`
	LocationCity         string             `bson:"location_city"`
	LocationNeighborhood string             `bson:"location_neighborhood,omitempty"`
	Images               []string           `bson:"images"`
	SellerID             string             `bson:"seller_id"`
	SellerName           string             `bson:"seller_name,omitempty"`
	SellerPhoto          string             `bson:"seller_photo,omitempty"`
	Status               string             `bson:"status"`
	ViewsCount           int64              `bson:"views_count"`
	SavesCount           int64              `bson:"saves_count"`
	ChatClicks           int64              `bson:"chat_clicks"`
	IsBoosted            bool               `bson:"is_boosted"`
	BoostExpiresAt       *time.Time         `bson:"boost_expires_at,omitempty"`
	BoostPackage         string             `bson:"boost_package,omitempty"`
	CommunityID          string             `bson:"community_id,omitempty"`
	CreatedAt            time.Time          `bson:"created_at"`
	UpdatedAt            time.Time          `bson:"updated_at"`
}

func fromDomainAd(ad *domain.Ad) (*adDocument, error) {
	doc := &adDocument{
		Title:                ad.Title,
		Description:          ad.Description,
		Price:                ad.Price,
		Category:             ad.Category,
		LocationCity:         ad.LocationCity,
		LocationNeighborhood: ad.LocationNeighborhood,
		Images:               ad.Images,
		SellerID:             ad.SellerID,
		SellerName:           ad.SellerName,
		SellerPhoto:          ad.SellerPhoto,
		Status:               string(ad.Status),
		ViewsCount:           ad.ViewsCount,
		SavesCount:           ad.SavesCount,
		ChatClicks:           ad.ChatClicks,
		IsBoosted:            ad.IsBoosted,
		BoostExpiresAt:       ad.BoostExpiresAt,
		BoostPackage:         ad.BoostPackage,
		CommunityID:          ad.CommunityID,
		CreatedAt:            ad.CreatedAt,
		UpdatedAt:            ad.UpdatedAt,
	}
	if ad.ID != "" {
		oid, err := primitive.ObjectIDFromHex(ad.ID)
		if err != nil {
			return nil, err
		}
		doc.ID = oid
	}
	return doc, nil
}

func (d *adDocument) toDomain() *domain.Ad {
	return &domain.Ad{
		ID:                   d.ID.Hex(),
		Title:                d.Title,
		Description:          d.Description,
		Price:                d.Price,
		Category:             d.Category,
		LocationCity:         d.LocationCity,
		LocationNeighborhood: d.LocationNeighborhood,
		Images:               d.Images,
		SellerID:             d.SellerID,
		SellerName:           d.SellerName,
		SellerPhoto:          d.SellerPhoto,
		Status:               domain.AdStatus(d.Status),
		ViewsCount:           d.ViewsCount,
		SavesCount:           d.SavesCount,
		ChatClicks:           d.ChatClicks,
		IsBoosted:            d.IsBoosted,
		BoostExpiresAt:       d.BoostExpiresAt,
		BoostPackage:         d.BoostPackage,
		CommunityID:          d.CommunityID,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}
}

type userDocument struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	FullName           string             `bson:"full_name"`
	Email              string             `bson:"email"`
	ProfilePhoto       string             `bson:"profile_photo,omitempty"`
	City               string             `bson:"city,omitempty"`
	Neighborhood       string             `bson:"neighborhood,omitempty"`
	CurrentCommunityID string             `bson:"current_community_id,omitempty"`
	Communities        []string           `bson:"communities,omitempty"`
	AvailableTopups    *int               `bson:"available_topups,omitempty"`
	LastTopupReset     *time.Time         `bson:"last_topup_reset,omitempty"`
	CreatedAt          time.Time          `bson:"created_at"`
	UpdatedAt          time.Time          `bson:"updated_at"`
}

func (d *userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:                 d.ID.Hex(),
		FullName:           d.FullName,
		Email:              d.Email,
		ProfilePhoto:       d.ProfilePhoto,
		City:               d.City,
		Neighborhood:       d.Neighborhood,
		CurrentCommunityID: d.CurrentCommunityID,
		Communities:        d.Communities,
		AvailableTopups:    d.AvailableTopups,
		LastTopupReset:     d.LastTopupReset,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

type favoriteDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	AdID      string             `bson:"ad_id"`
	AdTitle   string             `bson:"ad_title,omitempty"`
	AdImage   string             `bson:"ad_image,omitempty"`
	AdPrice   float64            `bson:"ad_price,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
}

func fromDomainFavorite(f *domain.Favorite) (*favoriteDocument, error) {
	doc := &favoriteDocument{
		UserID:    f.UserID,
		AdID:      f.AdID,
		AdTitle:   f.AdTitle,
		AdImage:   f.AdImage,
		AdPrice:   f.AdPrice,
		CreatedAt: f.CreatedAt,
	}
	if f.ID != "" {
		oid, err := primitive.ObjectIDFromHex(f.ID)
		if err != nil {
			return nil, err
		}
		doc.ID = oid
	}
	return doc, nil
}

func (d *favoriteDocument) toDomain() *domain.Favorite {
	return &domain.Favorite{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		AdID:      d.AdID,
		AdTitle:   d.AdTitle,
		AdImage:   d.AdImage,
		AdPrice:   d.AdPrice,
		CreatedAt: d.CreatedAt,
	}
}

type conversationDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	AdID          string             `bson:"ad_id"`
	AdTitle       string             `bson:"ad_title,omitempty"`
	AdImage       string             `bson:"ad_image,omitempty"`
	AdPrice       float64            `bson:"ad_price,omitempty"`
	BuyerID       string             `bson:"buyer_id"`
	BuyerName     string             `bson:"buyer_name,omitempty"`
	BuyerPhoto    string             `bson:"buyer_photo,omitempty"`
	SellerID      string             `bson:"seller_id"`
	SellerName    string             `bson:"seller_name,omitempty"`
	SellerPhoto   string             `bson:"seller_photo,omitempty"`
	LastMessage   string             `bson:"last_message"`
	LastMessageAt time.Time          `bson:"last_message_at"`
	UnreadBuyer   int64              `bson:"unread_buyer"`
	UnreadSeller  int64              `bson:"unread_seller"`
	CreatedAt     time.Time          `bson:"created_at"`
}

func fromDomainConversation(c *domain.Conversation) (*conversationDocument, error) {
	doc := &conversationDocument{
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
		UnreadBuyer:   c.UnreadBuyer,
		UnreadSeller:  c.UnreadSeller,
		CreatedAt:     c.CreatedAt,
	}
	if c.ID != "" {
		oid, err := primitive.ObjectIDFromHex(c.ID)
		if err != nil {
			return nil, err
		}
		doc.ID = oid
	}
	return doc, nil
}

func (d *conversationDocument) toDomain() *domain.Conversation {
	return &domain.Conversation{
		ID:            d.ID.Hex(),
		AdID:          d.AdID,
		AdTitle:       d.AdTitle,
		AdImage:       d.AdImage,
		AdPrice:       d.AdPrice,
		BuyerID:       d.BuyerID,
		BuyerName:     d.BuyerName,
		BuyerPhoto:    d.BuyerPhoto,
		SellerID:      d.SellerID,
		SellerName:    d.SellerName,
		SellerPhoto:   d.SellerPhoto,
		LastMessage:   d.LastMessage,
		LastMessageAt: d.LastMessageAt,
		UnreadBuyer:   d.UnreadBuyer,
		UnreadSeller:  d.UnreadSeller,
		CreatedAt:     d.CreatedAt,
	}
}

type messageDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	ConversationID string             `bson:"conversation_id"`
	SenderID       string             `bson:"sender_id"`
	SenderName     string             `bson:"sender_name,omitempty"`
	Content        string             `bson:"content"`
	ImageURL       string             `bson:"image_url,omitempty"`
	CreatedAt      time.Time          `bson:"created_at"`
}

func (d *messageDocument) toDomain() *domain.Message {
	return &domain.Message{
		ID:             d.ID.Hex(),
		ConversationID: d.ConversationID,
		SenderID:       d.SenderID,
		SenderName:     d.SenderName,
		Content:        d.Content,
		ImageURL:       d.ImageURL,
		CreatedAt:      d.CreatedAt,
	}
}

type communityDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	City     string             `bson:"city,omitempty"`
	IsActive bool               `bson:"is_active"`
}

func (d *communityDocument) toDomain() *domain.Community {
	return &domain.Community{
		ID:       d.ID.Hex(),
		Name:     d.Name,
		City:     d.City,
		IsActive: d.IsActive,
	}
}

type reviewDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	SellerID     string             `bson:"seller_id"`
	ReviewerID   string             `bson:"reviewer_id"`
	ReviewerName string             `bson:"reviewer_name,omitempty"`
	Rating       int32              `bson:"rating"`
	Comment      string             `bson:"comment,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (d *reviewDocument) toDomain() *domain.Review {
	return &domain.Review{
		ID:           d.ID.Hex(),
		SellerID:     d.SellerID,
		ReviewerID:   d.ReviewerID,
		ReviewerName: d.ReviewerName,
		Rating:       d.Rating,
		Comment:      d.Comment,
		CreatedAt:    d.CreatedAt,
	}
}
