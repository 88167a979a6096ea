package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
	"github.com/vastrakart/go-storefront/app/models"
	"github.com/vastrakart/go-storefront/app/repositories"
)

type CollectionHandler struct {
	render    *render.Render
	store     repositories.Datastore
	validator *validator.Validate
}

func NewCollectionHandler(r *render.Render, store repositories.Datastore, validator *validator.Validate) *CollectionHandler {
	return &CollectionHandler{render: r, store: store, validator: validator}
}

func (h *CollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	collections, err := h.store.GetAllCollections(r.Context())
	if err != nil {
		log.Printf("List: failed to load collections: %v", err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve collections")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, collections)
}

func (h *CollectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(h.render, w, http.StatusBadRequest, "Invalid collection ID")
		return
	}
	collection, err := h.store.GetCollection(r.Context(), id)
	if err != nil {
		log.Printf("Get: failed to load collection %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve collection")
		return
	}
	if collection == nil {
		respondError(h.render, w, http.StatusNotFound, "Collection not found")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, collection)
}

type CollectionForm struct {
	Name        string     `json:"name" validate:"required,max=100"`
	Description string     `json:"description"`
	Active      *bool      `json:"active"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

func (h *CollectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form CollectionForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(h.render, w, http.StatusBadRequest, "Invalid input data")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		respondValidationError(h.render, w, err)
		return
	}

	active := true
	if form.Active != nil {
		active = *form.Active
	}
	collection := models.Collection{
		Name:        form.Name,
		Description: form.Description,
		Active:      active,
		StartDate:   form.StartDate,
		EndDate:     form.EndDate,
	}
	if err := h.store.CreateCollection(r.Context(), &collection); err != nil {
		log.Printf("Create: failed to create collection: %v", err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to create collection")
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, collection)
}

type CollectionPatchForm struct {
	Name        *string    `json:"name" validate:"omitempty,max=100"`
	Description *string    `json:"description"`
	Active      *bool      `json:"active"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

func (h *CollectionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(h.render, w, http.StatusBadRequest, "Invalid collection ID")
		return
	}
	var form CollectionPatchForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(h.render, w, http.StatusBadRequest, "Invalid input data")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		respondValidationError(h.render, w, err)
		return
	}

	collection, err := h.store.GetCollection(r.Context(), id)
	if err != nil {
		log.Printf("Update: failed to load collection %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to update collection")
		return
	}
	if collection == nil {
		respondError(h.render, w, http.StatusNotFound, "Collection not found")
		return
	}

	if form.Name != nil {
		collection.Name = *form.Name
	}
	if form.Description != nil {
		collection.Description = *form.Description
	}
	if form.Active != nil {
		collection.Active = *form.Active
	}
	if form.StartDate != nil {
		collection.StartDate = form.StartDate
	}
	if form.EndDate != nil {
		collection.EndDate = form.EndDate
	}

	if err := h.store.UpdateCollection(r.Context(), collection); err != nil {
		log.Printf("Update: failed to update collection %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to update collection")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, collection)
}

func (h *CollectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(h.render, w, http.StatusBadRequest, "Invalid collection ID")
		return
	}
	removed, err := h.store.DeleteCollection(r.Context(), id)
	if err != nil {
		log.Printf("Delete: failed to delete collection %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to delete collection")
		return
	}
	if !removed {
		respondError(h.render, w, http.StatusNotFound, "Collection not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CollectionHandler) Products(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(h.render, w, http.StatusBadRequest, "Invalid collection ID")
		return
	}
	collection, err := h.store.GetCollection(r.Context(), id)
	if err != nil {
		log.Printf("Products: failed to load collection %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve collection products")
		return
	}
	if collection == nil {
		respondError(h.render, w, http.StatusNotFound, "Collection not found")
		return
	}
	products, err := h.store.GetProductsByCollection(r.Context(), id)
	if err != nil {
		log.Printf("Products: failed for collection %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve collection products")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, products)
}

func (h *CollectionHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(h.render, w, http.StatusBadRequest, "Invalid collection ID")
		return
	}
	productID, ok := pathID(r, "productId")
	if !ok {
		respondError(h.render, w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	collection, err := h.store.GetCollection(r.Context(), id)
	if err == nil && collection == nil {
		respondError(h.render, w, http.StatusNotFound, "Collection not found")
		return
	}
	if err != nil {
		log.Printf("AddProduct: failed to load collection %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to add product to collection")
		return
	}
	product, err := h.store.GetProduct(r.Context(), productID)
	if err == nil && product == nil {
		respondError(h.render, w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		log.Printf("AddProduct: failed to load product %d: %v", productID, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to add product to collection")
		return
	}

	link, err := h.store.AddProductToCollection(r.Context(), productID, id)
	if err != nil {
		log.Printf("AddProduct: failed to link product %d to collection %d: %v", productID, id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to add product to collection")
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, link)
}

func (h *CollectionHandler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(h.render, w, http.StatusBadRequest, "Invalid collection ID")
		return
	}
	productID, ok := pathID(r, "productId")
	if !ok {
		respondError(h.render, w, http.StatusBadRequest, "Invalid product ID")
		return
	}
	removed, err := h.store.RemoveProductFromCollection(r.Context(), productID, id)
	if err != nil {
		log.Printf("RemoveProduct: failed to unlink product %d from collection %d: %v", productID, id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to remove product from collection")
		return
	}
	if !removed {
		respondError(h.render, w, http.StatusNotFound, "Product is not in this collection")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
