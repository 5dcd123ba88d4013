package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/viniciustorricelli/pensell/internal/platform/metrics"
)

// NewRouter wires the API routes. Everything under /api requires a session;
// only the health probe is public.
func NewRouter(h *Handler, jwtSecret string, mm *metrics.MetricsManager) *chi.Mux {
	mux := chi.NewRouter()

	mux.Use(chimiddleware.RequestID)
	mux.Use(chimiddleware.RealIP)
	mux.Use(chimiddleware.Recoverer)
	mux.Use(RequestMetrics(mm))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.Route("/api", func(r chi.Router) {
		r.Use(JWTAuth(jwtSecret))

		r.Route("/ads", func(r chi.Router) {
			r.Post("/", h.HandleCreateAd)
			r.Get("/feed", h.HandleFeed)
			r.Get("/boosted", h.HandleBoosted)
			r.Get("/mine", h.HandleMyAds)
			r.Get("/{id}", h.HandleGetAd)
			r.Put("/{id}", h.HandleEditAd)
			r.Delete("/{id}", h.HandleDeleteAd)
			r.Patch("/{id}/status", h.HandleUpdateAdStatus)
			r.Post("/{id}/boost", h.HandleActivateBoost)
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", h.HandleListFavorites)
			r.Post("/{adID}/toggle", h.HandleToggleFavorite)
		})

		r.Route("/conversations", func(r chi.Router) {
			r.Post("/", h.HandleStartConversation)
			r.Get("/", h.HandleListConversations)
			r.Get("/unread-count", h.HandleUnreadCount)
			r.Get("/{id}/messages", h.HandleMessages)
			r.Post("/{id}/messages", h.HandleSendMessage)
			r.Post("/{id}/read", h.HandleMarkRead)
		})

		r.Get("/boost/status", h.HandleBoostStatus)

		r.Route("/communities", func(r chi.Router) {
			r.Get("/", h.HandleListCommunities)
			r.Post("/select", h.HandleSelectCommunity)
			r.Post("/request", h.HandleRequestCommunity)
		})

		r.Get("/me", h.HandleMe)
		r.Put("/me", h.HandleUpdateProfile)
		r.Get("/users/{id}/stats", h.HandleProfileStats)

		r.Route("/sellers/{id}", func(r chi.Router) {
			r.Get("/ads", h.HandleSellerAds)
			r.Get("/reviews", h.HandleSellerReviews)
			r.Post("/reviews", h.HandleCreateReview)
		})

		r.Post("/photos", h.HandleUploadPhoto)
		r.Post("/reports", h.HandleSubmitReport)
	})

	return mux
}
