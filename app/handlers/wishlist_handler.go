package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/unrolled/render"
	"github.com/vastrakart/go-storefront/app/helpers"
	"github.com/vastrakart/go-storefront/app/models"
	"github.com/vastrakart/go-storefront/app/repositories"
)

// WishlistHandler covers both the wishlist and the recently-viewed trail;
// they share the add-product-reference shape.
type WishlistHandler struct {
	render *render.Render
	store  repositories.Datastore
}

func NewWishlistHandler(r *render.Render, store repositories.Datastore) *WishlistHandler {
	return &WishlistHandler{render: r, store: store}
}

type productRefForm struct {
	ProductID int `json:"productId"`
}

// resolveProducts turns stored product references into full products,
// silently dropping references whose product has since been deleted.
func (h *WishlistHandler) resolveProducts(r *http.Request, productIDs []int) ([]models.Product, error) {
	products := make([]models.Product, 0, len(productIDs))
	for _, id := range productIDs {
		product, err := h.store.GetProduct(r.Context(), id)
		if err != nil {
			return nil, err
		}
		if product != nil {
			products = append(products, *product)
		}
	}
	return products, nil
}

func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	user := helpers.UserFromContext(r.Context())
	if user == nil {
		respondError(h.render, w, http.StatusUnauthorized, "Authentication required")
		return
	}
	entries, err := h.store.GetWishlistByUser(r.Context(), user.ID)
	if err != nil {
		log.Printf("List: failed to load wishlist for user %d: %v", user.ID, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve wishlist")
		return
	}
	ids := make([]int, len(entries))
	for i, e := range entries {
		ids[i] = e.ProductID
	}
	products, err := h.resolveProducts(r, ids)
	if err != nil {
		log.Printf("List: failed to resolve wishlist products for user %d: %v", user.ID, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve wishlist")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, products)
}

// Add is idempotent: wishing for the same product twice returns the existing
// entry.
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	user := helpers.UserFromContext(r.Context())
	if user == nil {
		respondError(h.render, w, http.StatusUnauthorized, "Authentication required")
		return
	}
	var form productRefForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil || form.ProductID <= 0 {
		respondError(h.render, w, http.StatusBadRequest, "Invalid product ID")
		return
	}
	product, err := h.store.GetProduct(r.Context(), form.ProductID)
	if err != nil {
		log.Printf("Add: failed to load product %d: %v", form.ProductID, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to add to wishlist")
		return
	}
	if product == nil {
		respondError(h.render, w, http.StatusNotFound, "Product not found")
		return
	}
	entry, err := h.store.AddToWishlist(r.Context(), user.ID, form.ProductID)
	if err != nil {
		log.Printf("Add: failed for user %d product %d: %v", user.ID, form.ProductID, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to add to wishlist")
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, entry)
}

func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user := helpers.UserFromContext(r.Context())
	if user == nil {
		respondError(h.render, w, http.StatusUnauthorized, "Authentication required")
		return
	}
	productID, ok := pathID(r, "productId")
	if !ok {
		respondError(h.render, w, http.StatusBadRequest, "Invalid product ID")
		return
	}
	removed, err := h.store.RemoveFromWishlist(r.Context(), user.ID, productID)
	if err != nil {
		log.Printf("Remove: failed for user %d product %d: %v", user.ID, productID, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to remove from wishlist")
		return
	}
	if !removed {
		respondError(h.render, w, http.StatusNotFound, "Wishlist item not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *WishlistHandler) RecentlyViewed(w http.ResponseWriter, r *http.Request) {
	user := helpers.UserFromContext(r.Context())
	if user == nil {
		respondError(h.render, w, http.StatusUnauthorized, "Authentication required")
		return
	}
	entries, err := h.store.GetRecentlyViewedByUser(r.Context(), user.ID)
	if err != nil {
		log.Printf("RecentlyViewed: failed for user %d: %v", user.ID, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve recently viewed products")
		return
	}
	ids := make([]int, len(entries))
	for i, e := range entries {
		ids[i] = e.ProductID
	}
	products, err := h.resolveProducts(r, ids)
	if err != nil {
		log.Printf("RecentlyViewed: failed to resolve products for user %d: %v", user.ID, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve recently viewed products")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, products)
}

// AddRecentlyViewed records a product view, moving repeat views to the front
// of the trail.
func (h *WishlistHandler) AddRecentlyViewed(w http.ResponseWriter, r *http.Request) {
	user := helpers.UserFromContext(r.Context())
	if user == nil {
		respondError(h.render, w, http.StatusUnauthorized, "Authentication required")
		return
	}
	var form productRefForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil || form.ProductID <= 0 {
		respondError(h.render, w, http.StatusBadRequest, "Invalid product ID")
		return
	}
	product, err := h.store.GetProduct(r.Context(), form.ProductID)
	if err != nil {
		log.Printf("AddRecentlyViewed: failed to load product %d: %v", form.ProductID, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to add to recently viewed")
		return
	}
	if product == nil {
		respondError(h.render, w, http.StatusNotFound, "Product not found")
		return
	}
	entry, err := h.store.AddToRecentlyViewed(r.Context(), user.ID, form.ProductID)
	if err != nil {
		log.Printf("AddRecentlyViewed: failed for user %d product %d: %v", user.ID, form.ProductID, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to add to recently viewed")
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, entry)
}
