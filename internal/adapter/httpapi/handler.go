package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/viniciustorricelli/pensell/internal/domain"
	"github.com/viniciustorricelli/pensell/internal/platform/logger"
	"github.com/viniciustorricelli/pensell/internal/platform/metrics"
	"github.com/viniciustorricelli/pensell/internal/usecase"
	"go.uber.org/zap"
)

// Handler holds the use cases behind the HTTP API.
type Handler struct {
	ads         *usecase.AdUsecase
	favorites   *usecase.FavoriteUsecase
	chat        *usecase.ChatUsecase
	boost       *usecase.BoostUsecase
	communities *usecase.CommunityUsecase
	users       *usecase.UserUsecase
	reviews     *usecase.ReviewUsecase
	photos      *usecase.PhotoUsecase
	reports     *usecase.ReportUsecase
	metrics     *metrics.MetricsManager
	logger      *logger.Logger
}

// NewHandler creates the API handler.
func NewHandler(
	ads *usecase.AdUsecase,
	favorites *usecase.FavoriteUsecase,
	chat *usecase.ChatUsecase,
	boost *usecase.BoostUsecase,
	communities *usecase.CommunityUsecase,
	users *usecase.UserUsecase,
	reviews *usecase.ReviewUsecase,
	photos *usecase.PhotoUsecase,
	reports *usecase.ReportUsecase,
	mm *metrics.MetricsManager,
	log *logger.Logger,
) *Handler {
	return &Handler{
		ads:         ads,
		favorites:   favorites,
		chat:        chat,
		boost:       boost,
		communities: communities,
		users:       users,
		reviews:     reviews,
		photos:      photos,
		reports:     reports,
		metrics:     mm,
		logger:      log.Named("HTTPHandler"),
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// writeError maps domain errors to HTTP statuses and records the error metric.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	errorType := "internal"
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, errorType = http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrInvalidInput):
		status, errorType = http.StatusBadRequest, "invalid_input"
	case errors.Is(err, domain.ErrForbidden):
		status, errorType = http.StatusForbidden, "forbidden"
	case errors.Is(err, domain.ErrDuplicateFavorite),
		errors.Is(err, domain.ErrDuplicateReview),
		errors.Is(err, domain.ErrAlreadyBoosted),
		errors.Is(err, domain.ErrBoostUnavailable):
		status, errorType = http.StatusConflict, "conflict"
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	if h.metrics != nil {
		route := chi.RouteContext(r.Context()).RoutePattern()
		h.metrics.APIErrorsTotal.WithLabelValues(route, errorType).Inc()
	}

	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeError(w, r, domain.ErrInvalidInput)
		return false
	}
	return true
}
