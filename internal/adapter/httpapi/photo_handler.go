package httpapi

import (
	"io"
	"net/http"

	"github.com/viniciustorricelli/pensell/internal/domain"
	"github.com/viniciustorricelli/pensell/internal/usecase"
)

// HandleUploadPhoto stores a multipart image and returns its public URL.
func (h *Handler) HandleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(usecase.MaxPhotoSizeBytes); err != nil {
		h.writeError(w, r, domain.ErrInvalidInput)
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		h.writeError(w, r, domain.ErrInvalidInput)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, usecase.MaxPhotoSizeBytes+1))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	url, err := h.photos.Upload(r.Context(), header.Filename, data)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}
