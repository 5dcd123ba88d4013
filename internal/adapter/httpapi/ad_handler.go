package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/viniciustorricelli/pensell/internal/domain"
	"github.com/viniciustorricelli/pensell/internal/feed"
	"github.com/viniciustorricelli/pensell/internal/usecase"
)

type adPayload struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	Category     string   `json:"category"`
	City         string   `json:"city"`
	Neighborhood string   `json:"neighborhood"`
	Images       []string `json:"images"`
}

type adResponse struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Price          float64    `json:"price"`
	Category       string     `json:"category"`
	City           string     `json:"city"`
	Neighborhood   string     `json:"neighborhood,omitempty"`
	Images         []string   `json:"images"`
	SellerID       string     `json:"seller_id"`
	SellerName     string     `json:"seller_name,omitempty"`
	SellerPhoto    string     `json:"seller_photo,omitempty"`
	Status         string     `json:"status"`
	ViewsCount     int64      `json:"views_count"`
	SavesCount     int64      `json:"saves_count"`
	ChatClicks     int64      `json:"chat_clicks"`
	IsBoosted      bool       `json:"is_boosted"`
	BoostExpiresAt *time.Time `json:"boost_expires_at,omitempty"`
	CommunityID    string     `json:"community_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func toAdResponse(ad *domain.Ad) adResponse {
	return adResponse{
		ID:             ad.ID,
		Title:          ad.Title,
		Description:    ad.Description,
		Price:          ad.Price,
		Category:       ad.Category,
		City:           ad.LocationCity,
		Neighborhood:   ad.LocationNeighborhood,
		Images:         ad.Images,
		SellerID:       ad.SellerID,
		SellerName:     ad.SellerName,
		SellerPhoto:    ad.SellerPhoto,
		Status:         string(ad.Status),
		ViewsCount:     ad.ViewsCount,
		SavesCount:     ad.SavesCount,
		ChatClicks:     ad.ChatClicks,
		IsBoosted:      ad.IsBoosted,
		BoostExpiresAt: ad.BoostExpiresAt,
		CommunityID:    ad.CommunityID,
		CreatedAt:      ad.CreatedAt,
	}
}

func toAdResponses(ads []*domain.Ad) []adResponse {
	out := make([]adResponse, 0, len(ads))
	for _, ad := range ads {
		out = append(out, toAdResponse(ad))
	}
	return out
}

// HandleCreateAd publishes a new ad for the session user.
func (h *Handler) HandleCreateAd(w http.ResponseWriter, r *http.Request) {
	var payload adPayload
	if !h.decode(w, r, &payload) {
		return
	}

	ad, err := h.ads.CreateAd(r.Context(), SessionUserID(r.Context()), usecase.CreateAdInput{
		Title:        payload.Title,
		Description:  payload.Description,
		Price:        payload.Price,
		Category:     payload.Category,
		City:         payload.City,
		Neighborhood: payload.Neighborhood,
		Images:       payload.Images,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if h.metrics != nil {
		h.metrics.AdsCreatedTotal.Inc()
	}
	h.writeJSON(w, http.StatusCreated, toAdResponse(ad))
}

// HandleGetAd returns one ad, counting the view for non-sellers.
func (h *Handler) HandleGetAd(w http.ResponseWriter, r *http.Request) {
	ad, err := h.ads.GetAd(r.Context(), chi.URLParam(r, "id"), SessionUserID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toAdResponse(ad))
}

// HandleEditAd updates an ad's listing fields.
func (h *Handler) HandleEditAd(w http.ResponseWriter, r *http.Request) {
	var payload adPayload
	if !h.decode(w, r, &payload) {
		return
	}

	ad, err := h.ads.EditAd(r.Context(), chi.URLParam(r, "id"), SessionUserID(r.Context()), usecase.EditAdInput{
		Title:        payload.Title,
		Description:  payload.Description,
		Price:        payload.Price,
		Category:     payload.Category,
		City:         payload.City,
		Neighborhood: payload.Neighborhood,
		Images:       payload.Images,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toAdResponse(ad))
}

// HandleDeleteAd removes an ad.
func (h *Handler) HandleDeleteAd(w http.ResponseWriter, r *http.Request) {
	if err := h.ads.DeleteAd(r.Context(), chi.URLParam(r, "id"), SessionUserID(r.Context())); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusNoContent, nil)
}

// HandleUpdateAdStatus switches the lifecycle status.
func (h *Handler) HandleUpdateAdStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status string `json:"status"`
	}
	if !h.decode(w, r, &payload) {
		return
	}

	err := h.ads.UpdateAdStatus(r.Context(), chi.URLParam(r, "id"), SessionUserID(r.Context()), domain.AdStatus(payload.Status))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": payload.Status})
}

// HandleMyAds returns the caller's ads grouped by status.
func (h *Handler) HandleMyAds(w http.ResponseWriter, r *http.Request) {
	grouped, err := h.ads.MyAds(r.Context(), SessionUserID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make(map[string][]adResponse, len(grouped))
	for status, ads := range grouped {
		out[string(status)] = toAdResponses(ads)
	}
	h.writeJSON(w, http.StatusOK, out)
}

// HandleSellerAds returns a seller's active ads.
func (h *Handler) HandleSellerAds(w http.ResponseWriter, r *http.Request) {
	ads, err := h.ads.SellerAds(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toAdResponses(ads))
}

// HandleFeed runs the search feed over the caller's community.
func (h *Handler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	spec, err := h.feedSpecFromQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	page, err := h.ads.Search(r.Context(), spec)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"ads":      toAdResponses(page.Ads),
		"total":    page.Total,
		"has_more": page.HasMore,
	})
}

// HandleBoosted returns the boosted carousel for the caller's community.
func (h *Handler) HandleBoosted(w http.ResponseWriter, r *http.Request) {
	communityID := r.URL.Query().Get("community_id")
	if communityID == "" {
		user, err := h.users.Me(r.Context(), SessionUserID(r.Context()))
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		communityID = user.CurrentCommunityID
	}

	ads, err := h.ads.Boosted(r.Context(), communityID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toAdResponses(ads))
}

func (h *Handler) feedSpecFromQuery(r *http.Request) (feed.Spec, error) {
	q := r.URL.Query()
	spec := feed.DefaultSpec()

	spec.TextQuery = q.Get("q")
	spec.Category = q.Get("category")
	spec.Location = q.Get("location")
	spec.OnlyBoosted = q.Get("only_boosted") == "true"

	if v := q.Get("price_min"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return feed.Spec{}, domain.ErrInvalidInput
		}
		spec.PriceMin = f
	}
	if v := q.Get("price_max"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return feed.Spec{}, domain.ErrInvalidInput
		}
		spec.PriceMax = f
	}
	if v := q.Get("time"); v != "" {
		spec.TimeFilter = feed.TimeFilter(v)
	}
	if v := q.Get("sort"); v != "" {
		spec.SortBy = feed.SortBy(v)
	}
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return feed.Spec{}, domain.ErrInvalidInput
		}
		spec.Page = n
	}
	if v := q.Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			return feed.Spec{}, domain.ErrInvalidInput
		}
		spec.PageSize = n
	}

	spec.CommunityID = q.Get("community_id")
	if spec.CommunityID == "" {
		user, err := h.users.Me(r.Context(), SessionUserID(r.Context()))
		if err != nil {
			return feed.Spec{}, err
		}
		spec.CommunityID = user.CurrentCommunityID
	}
	return spec, nil
}
