package handlers

import (
	"log"
	"net/http"

	"github.com/unrolled/render"
	"github.com/vastrakart/go-storefront/app/repositories"
)

// MetadataHandler serves the fixed lookup lists the storefront filter widgets
// are built from.
type MetadataHandler struct {
	render *render.Render
	store  repositories.Datastore
}

func NewMetadataHandler(r *render.Render, store repositories.Datastore) *MetadataHandler {
	return &MetadataHandler{render: r, store: store}
}

func (h *MetadataHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.GetAllCategories(r.Context())
	if err != nil {
		log.Printf("Categories: %v", err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, categories)
}

func (h *MetadataHandler) Brands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.store.GetAllBrands(r.Context())
	if err != nil {
		log.Printf("Brands: %v", err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve brands")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, brands)
}

func (h *MetadataHandler) Sizes(w http.ResponseWriter, r *http.Request) {
	sizes, err := h.store.GetAllSizes(r.Context())
	if err != nil {
		log.Printf("Sizes: %v", err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve sizes")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, sizes)
}

func (h *MetadataHandler) Ratings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.store.GetAllRatingOptions(r.Context())
	if err != nil {
		log.Printf("Ratings: %v", err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve rating options")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, ratings)
}
