package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
	"github.com/vastrakart/go-storefront/app/models"
	"github.com/vastrakart/go-storefront/app/repositories"
)

type InventoryHandler struct {
	render    *render.Render
	store     repositories.Datastore
	validator *validator.Validate
}

func NewInventoryHandler(r *render.Render, store repositories.Datastore, validator *validator.Validate) *InventoryHandler {
	return &InventoryHandler{render: r, store: store, validator: validator}
}

func (h *InventoryHandler) ByProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(r, "productId")
	if !ok {
		respondError(h.render, w, http.StatusBadRequest, "Invalid product ID")
		return
	}
	rows, err := h.store.GetInventoryByProduct(r.Context(), productID)
	if err != nil {
		log.Printf("ByProduct: failed for product %d: %v", productID, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve inventory")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, rows)
}

type InventoryForm struct {
	ProductID int    `json:"productId" validate:"required"`
	Size      string `json:"size" validate:"required,max=20"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form InventoryForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(h.render, w, http.StatusBadRequest, "Invalid input data")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		respondValidationError(h.render, w, err)
		return
	}

	product, err := h.store.GetProduct(r.Context(), form.ProductID)
	if err != nil {
		log.Printf("Create: failed to load product %d: %v", form.ProductID, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to create inventory")
		return
	}
	if product == nil {
		respondError(h.render, w, http.StatusNotFound, "Product not found")
		return
	}

	item := models.Inventory{
		ProductID: form.ProductID,
		Size:      form.Size,
		Quantity:  form.Quantity,
	}
	if err := h.store.CreateInventory(r.Context(), &item); err != nil {
		log.Printf("Create: failed to create inventory for product %d: %v", form.ProductID, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to create inventory")
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, item)
}

type InventoryPatchForm struct {
	Quantity *int `json:"quantity" validate:"required,gte=0"`
}

func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(h.render, w, http.StatusBadRequest, "Invalid inventory ID")
		return
	}
	var form InventoryPatchForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(h.render, w, http.StatusBadRequest, "Invalid input data")
		return
	}
	if form.Quantity == nil || *form.Quantity < 0 {
		respondError(h.render, w, http.StatusBadRequest, "Invalid quantity")
		return
	}

	item, err := h.store.GetInventoryItem(r.Context(), id)
	if err != nil {
		log.Printf("Update: failed to load inventory %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to update inventory")
		return
	}
	if item == nil {
		respondError(h.render, w, http.StatusNotFound, "Inventory item not found")
		return
	}

	item.Quantity = *form.Quantity
	if err := h.store.UpdateInventory(r.Context(), item); err != nil {
		log.Printf("Update: failed to update inventory %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to update inventory")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, item)
}
