package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
	"github.com/vastrakart/go-storefront/app/helpers"
	"github.com/vastrakart/go-storefront/app/models"
	"github.com/vastrakart/go-storefront/app/repositories"
)

type ReviewHandler struct {
	render    *render.Render
	store     repositories.Datastore
	validator *validator.Validate
}

func NewReviewHandler(r *render.Render, store repositories.Datastore, validator *validator.Validate) *ReviewHandler {
	return &ReviewHandler{render: r, store: store, validator: validator}
}

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.store.GetAllReviews(r.Context())
	if err != nil {
		log.Printf("List: failed to load reviews: %v", err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, reviews)
}

type ReviewForm struct {
	ProductID int    `json:"productId" validate:"required"`
	UserID    int    `json:"userId" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

// Create rejects reviews posted on behalf of someone else unless the caller
// is an admin.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := helpers.UserFromContext(r.Context())
	if user == nil {
		respondError(h.render, w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var form ReviewForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(h.render, w, http.StatusBadRequest, "Invalid input data")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		respondValidationError(h.render, w, err)
		return
	}
	if form.UserID != user.ID && user.Role != models.RoleAdmin {
		respondError(h.render, w, http.StatusForbidden, "Not authorized to create review for another user")
		return
	}

	product, err := h.store.GetProduct(r.Context(), form.ProductID)
	if err != nil {
		log.Printf("Create: failed to load product %d: %v", form.ProductID, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to create review")
		return
	}
	if product == nil {
		respondError(h.render, w, http.StatusNotFound, "Product not found")
		return
	}

	review := models.Review{
		ProductID: form.ProductID,
		UserID:    form.UserID,
		Rating:    form.Rating,
		Comment:   form.Comment,
	}
	if err := h.store.CreateReview(r.Context(), &review); err != nil {
		log.Printf("Create: failed to create review: %v", err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to create review")
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, review)
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(h.render, w, http.StatusBadRequest, "Invalid review ID")
		return
	}
	removed, err := h.store.DeleteReview(r.Context(), id)
	if err != nil {
		log.Printf("Delete: failed to delete review %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to delete review")
		return
	}
	if !removed {
		respondError(h.render, w, http.StatusNotFound, "Review not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
