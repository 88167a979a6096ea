package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
	"github.com/vastrakart/go-storefront/app/models"
	"github.com/vastrakart/go-storefront/app/repositories"
	"github.com/vastrakart/go-storefront/app/services"
	"github.com/vastrakart/go-storefront/app/utils/calc"
	"github.com/vastrakart/go-storefront/app/utils/format"
)

type ProductHandler struct {
	render    *render.Render
	store     repositories.Datastore
	catalog   *services.CatalogService
	validator *validator.Validate
}

func NewProductHandler(r *render.Render, store repositories.Datastore, catalog *services.CatalogService, validator *validator.Validate) *ProductHandler {
	return &ProductHandler{
		render:    r,
		store:     store,
		catalog:   catalog,
		validator: validator,
	}
}

// productDetail decorates a product with display pricing for the detail page.
type productDetail struct {
	models.Product
	FormattedPrice  string  `json:"formattedPrice"`
	DiscountPercent float64 `json:"discountPercent,omitempty"`
}

func newProductDetail(p models.Product) productDetail {
	return productDetail{
		Product:         p,
		FormattedPrice:  format.Rupees(calc.EffectivePrice(p)),
		DiscountPercent: calc.DiscountPercent(p).InexactFloat64(),
	}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	params := services.ParseFilterParams(r.URL.Query())
	products, err := h.catalog.FilterProducts(r.Context(), params)
	if err != nil {
		log.Printf("List: failed to filter products: %v", err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Featured(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.FeaturedProducts(r.Context())
	if err != nil {
		log.Printf("Featured: failed to load featured products: %v", err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve featured products")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, products)
}

func (h *ProductHandler) New(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.NewArrivals(r.Context())
	if err != nil {
		log.Printf("New: failed to load new arrivals: %v", err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve new arrivals")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(h.render, w, http.StatusBadRequest, "Invalid product ID")
		return
	}
	product, err := h.store.GetProduct(r.Context(), id)
	if err != nil {
		log.Printf("Get: failed to load product %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve product")
		return
	}
	if product == nil {
		respondError(h.render, w, http.StatusNotFound, "Product not found")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, newProductDetail(*product))
}

func (h *ProductHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(h.render, w, http.StatusBadRequest, "Invalid product ID")
		return
	}
	product, err := h.store.GetProduct(r.Context(), id)
	if err != nil {
		log.Printf("Recommendations: failed to load product %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve recommendations")
		return
	}
	if product == nil {
		respondError(h.render, w, http.StatusNotFound, "Product not found")
		return
	}
	related, err := h.catalog.Recommendations(r.Context(), id)
	if err != nil {
		log.Printf("Recommendations: failed for product %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve recommendations")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, related)
}

type ProductForm struct {
	Name            string   `json:"name" validate:"required,max=255"`
	Description     string   `json:"description"`
	Price           int      `json:"price" validate:"required,gt=0"`
	DiscountedPrice *int     `json:"discountedPrice" validate:"omitempty,gt=0"`
	CategoryID      int      `json:"categoryId" validate:"required"`
	BrandID         int      `json:"brandId" validate:"required"`
	Gender          string   `json:"gender" validate:"omitempty,oneof=men women unisex"`
	ImageURLs       []string `json:"imageUrls"`
	Featured        bool     `json:"featured"`
	IsNew           bool     `json:"isNew"`
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form ProductForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(h.render, w, http.StatusBadRequest, "Invalid input data")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		respondValidationError(h.render, w, err)
		return
	}
	if form.DiscountedPrice != nil && *form.DiscountedPrice > form.Price {
		respondError(h.render, w, http.StatusBadRequest, "Discounted price cannot exceed the list price")
		return
	}

	product := models.Product{
		Name:            form.Name,
		Description:     form.Description,
		Price:           form.Price,
		DiscountedPrice: form.DiscountedPrice,
		CategoryID:      form.CategoryID,
		BrandID:         form.BrandID,
		Gender:          form.Gender,
		ImageURLs:       form.ImageURLs,
		Featured:        form.Featured,
		IsNew:           form.IsNew,
	}
	if err := h.store.CreateProduct(r.Context(), &product); err != nil {
		log.Printf("Create: failed to create product: %v", err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to create product")
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, product)
}

type ProductPatchForm struct {
	Name            *string  `json:"name" validate:"omitempty,max=255"`
	Description     *string  `json:"description"`
	Price           *int     `json:"price" validate:"omitempty,gt=0"`
	DiscountedPrice *int     `json:"discountedPrice" validate:"omitempty,gt=0"`
	CategoryID      *int     `json:"categoryId"`
	BrandID         *int     `json:"brandId"`
	Gender          *string  `json:"gender" validate:"omitempty,oneof=men women unisex"`
	ImageURLs       []string `json:"imageUrls"`
	Featured        *bool    `json:"featured"`
	IsNew           *bool    `json:"isNew"`
	ClearDiscount   bool     `json:"clearDiscount"`
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(h.render, w, http.StatusBadRequest, "Invalid product ID")
		return
	}
	var form ProductPatchForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(h.render, w, http.StatusBadRequest, "Invalid input data")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		respondValidationError(h.render, w, err)
		return
	}

	product, err := h.store.GetProduct(r.Context(), id)
	if err != nil {
		log.Printf("Update: failed to load product %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to update product")
		return
	}
	if product == nil {
		respondError(h.render, w, http.StatusNotFound, "Product not found")
		return
	}

	if form.Name != nil {
		product.Name = *form.Name
	}
	if form.Description != nil {
		product.Description = *form.Description
	}
	if form.Price != nil {
		product.Price = *form.Price
	}
	if form.DiscountedPrice != nil {
		product.DiscountedPrice = form.DiscountedPrice
	}
	if form.ClearDiscount {
		product.DiscountedPrice = nil
	}
	if form.CategoryID != nil {
		product.CategoryID = *form.CategoryID
	}
	if form.BrandID != nil {
		product.BrandID = *form.BrandID
	}
	if form.Gender != nil {
		product.Gender = *form.Gender
	}
	if form.ImageURLs != nil {
		product.ImageURLs = form.ImageURLs
	}
	if form.Featured != nil {
		product.Featured = *form.Featured
	}
	if form.IsNew != nil {
		product.IsNew = *form.IsNew
	}

	if product.DiscountedPrice != nil && *product.DiscountedPrice > product.Price {
		respondError(h.render, w, http.StatusBadRequest, "Discounted price cannot exceed the list price")
		return
	}

	if err := h.store.UpdateProduct(r.Context(), product); err != nil {
		log.Printf("Update: failed to update product %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to update product")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(h.render, w, http.StatusBadRequest, "Invalid product ID")
		return
	}
	removed, err := h.store.DeleteProduct(r.Context(), id)
	if err != nil {
		log.Printf("Delete: failed to delete product %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if !removed {
		respondError(h.render, w, http.StatusNotFound, "Product not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(h.render, w, http.StatusBadRequest, "Invalid product ID")
		return
	}
	reviews, err := h.store.GetReviewsByProduct(r.Context(), id)
	if err != nil {
		log.Printf("Reviews: failed for product %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, reviews)
}

func (h *ProductHandler) Collections(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(h.render, w, http.StatusBadRequest, "Invalid product ID")
		return
	}
	collections, err := h.store.GetCollectionsByProduct(r.Context(), id)
	if err != nil {
		log.Printf("Collections: failed for product %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve collections")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, collections)
}
