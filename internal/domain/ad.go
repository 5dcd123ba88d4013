package domain

import (
	"errors"
	"strings"
	"time"
)

// AdStatus represents the lifecycle status of an ad.
type AdStatus string

const (
	AdStatusActive            AdStatus = "active"
	AdStatusPaused            AdStatus = "paused"
	AdStatusSold              AdStatus = "sold"
	AdStatusPendingActivation AdStatus = "pending_activation"
)

// IsValid checks if the AdStatus is one of the defined constants.
func (s AdStatus) IsValid() bool {
	switch s {
	case AdStatusActive, AdStatusPaused, AdStatusSold, AdStatusPendingActivation:
		return true
	}
	return false
}

// Categories is the fixed set of ad categories offered by the marketplace.
var Categories = []string{
	"eletronicos",
	"moveis",
	"veiculos",
	"imoveis",
	"moda",
	"servicos",
	"esportes",
	"casa_jardim",
	"animais",
	"empregos",
	"outros",
}

// IsValidCategory reports whether category is one of the known categories.
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// MaxAdImages limits how many photos a single ad may carry.
const MaxAdImages = 10

// Ad is a classified listing published by a seller inside a community.
// Seller fields are denormalized so feed cards render without extra lookups.
// Boost expiry is never cleared by a background job; readers compare
// BoostExpiresAt against the current time.
type Ad struct {
	ID                   string
	Title                string
	Description          string
	Price                float64
	Category             string
	LocationCity         string
	LocationNeighborhood string
	Images               []string
	SellerID             string
	SellerName           string
	SellerPhoto          string
	Status               AdStatus
	ViewsCount           int64
	SavesCount           int64
	ChatClicks           int64
	IsBoosted            bool
	BoostExpiresAt       *time.Time
	BoostPackage         string
	CommunityID          string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NewAd validates the publish form and builds a fresh active ad.
// The neighborhood is optional at creation time.
func NewAd(sellerID, sellerName, sellerPhoto, communityID, title, description, category, city, neighborhood string, price float64, images []string) (*Ad, error) {
	if sellerID == "" {
		return nil, errors.New("sellerID cannot be empty")
	}
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" || category == "" || strings.TrimSpace(city) == "" {
		return nil, errors.New("title, description, category and city are required")
	}
	if !IsValidCategory(category) {
		return nil, errors.New("unknown category: " + category)
	}
	if price < 0 {
		return nil, errors.New("price cannot be negative")
	}
	if len(images) == 0 {
		return nil, errors.New("at least one image is required")
	}
	if len(images) > MaxAdImages {
		return nil, errors.New("too many images")
	}

	now := time.Now().UTC()
	return &Ad{
		Title:                strings.TrimSpace(title),
		Description:          strings.TrimSpace(description),
		Price:                price,
		Category:             category,
		LocationCity:         strings.TrimSpace(city),
		LocationNeighborhood: strings.TrimSpace(neighborhood),
		Images:               images,
		SellerID:             sellerID,
		SellerName:           sellerName,
		SellerPhoto:          sellerPhoto,
		Status:               AdStatusActive,
		CommunityID:          communityID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}, nil
}

// BoostActive reports whether the ad carries a boost that has not expired yet.
func (a *Ad) BoostActive(now time.Time) bool {
	return a.IsBoosted && a.BoostExpiresAt != nil && a.BoostExpiresAt.After(now)
}
