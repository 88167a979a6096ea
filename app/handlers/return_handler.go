package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
	"github.com/vastrakart/go-storefront/app/helpers"
	"github.com/vastrakart/go-storefront/app/models"
	"github.com/vastrakart/go-storefront/app/repositories"
	"github.com/vastrakart/go-storefront/app/services"
)

type ReturnHandler struct {
	render    *render.Render
	store     repositories.Datastore
	flow      *services.StatusFlow
	validator *validator.Validate
}

func NewReturnHandler(r *render.Render, store repositories.Datastore, flow *services.StatusFlow, validator *validator.Validate) *ReturnHandler {
	return &ReturnHandler{
		render:    r,
		store:     store,
		flow:      flow,
		validator: validator,
	}
}

type ReturnForm struct {
	OrderID     int    `json:"orderId" validate:"required"`
	OrderItemID int    `json:"orderItemId" validate:"required"`
	Reason      string `json:"reason" validate:"required"`
}

// Create opens a return request against an order the caller owns.
func (h *ReturnHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := helpers.UserFromContext(r.Context())
	if user == nil {
		respondError(h.render, w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var form ReturnForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(h.render, w, http.StatusBadRequest, "Invalid input data")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		respondValidationError(h.render, w, err)
		return
	}

	order, err := h.store.GetOrder(r.Context(), form.OrderID)
	if err != nil {
		log.Printf("Create: failed to load order %d: %v", form.OrderID, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to create return")
		return
	}
	if order == nil {
		respondError(h.render, w, http.StatusNotFound, "Order not found")
		return
	}
	if user.Role != models.RoleAdmin && (order.UserID == nil || *order.UserID != user.ID) {
		respondError(h.render, w, http.StatusForbidden, "Not authorized to create return for this order")
		return
	}

	ret := models.Return{
		OrderID:     form.OrderID,
		OrderItemID: form.OrderItemID,
		UserID:      user.ID,
		Reason:      form.Reason,
		Status:      models.ReturnStatusPending,
	}
	if err := h.store.CreateReturn(r.Context(), &ret); err != nil {
		log.Printf("Create: failed to create return for order %d: %v", form.OrderID, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to create return")
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, ret)
}

func (h *ReturnHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	returns, err := h.store.GetAllReturns(r.Context())
	if err != nil {
		log.Printf("ListAll: failed to load returns: %v", err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve returns")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, returns)
}

func (h *ReturnHandler) ListUser(w http.ResponseWriter, r *http.Request) {
	user := helpers.UserFromContext(r.Context())
	if user == nil {
		respondError(h.render, w, http.StatusUnauthorized, "Authentication required")
		return
	}
	returns, err := h.store.GetReturnsByUser(r.Context(), user.ID)
	if err != nil {
		log.Printf("ListUser: failed for user %d: %v", user.ID, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve returns")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, returns)
}

func (h *ReturnHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(h.render, w, http.StatusBadRequest, "Invalid return ID")
		return
	}
	user := helpers.UserFromContext(r.Context())
	if user == nil {
		respondError(h.render, w, http.StatusUnauthorized, "Authentication required")
		return
	}
	ret, err := h.store.GetReturn(r.Context(), id)
	if err != nil {
		log.Printf("Get: failed to load return %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve return")
		return
	}
	if ret == nil {
		respondError(h.render, w, http.StatusNotFound, "Return not found")
		return
	}
	if user.Role != models.RoleAdmin && ret.UserID != user.ID {
		respondError(h.render, w, http.StatusForbidden, "Not authorized to view this return")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, ret)
}

type ReturnPatchForm struct {
	Status         string  `json:"status" validate:"required"`
	RefundAmount   *int    `json:"refundAmount" validate:"omitempty,gte=0"`
	TrackingNumber *string `json:"trackingNumber" validate:"omitempty,max=100"`
}

// UpdateStatus advances a return through its lifecycle. Terminal states are
// immutable; a rejected return stays rejected.
func (h *ReturnHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(h.render, w, http.StatusBadRequest, "Invalid return ID")
		return
	}
	var form ReturnPatchForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(h.render, w, http.StatusBadRequest, "Invalid input data")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		respondValidationError(h.render, w, err)
		return
	}
	status := strings.ToLower(strings.TrimSpace(form.Status))
	if !h.flow.Known(status) {
		respondError(h.render, w, http.StatusBadRequest, "Invalid status")
		return
	}

	ret, err := h.store.GetReturn(r.Context(), id)
	if err != nil {
		log.Printf("UpdateStatus: failed to load return %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to update return")
		return
	}
	if ret == nil {
		respondError(h.render, w, http.StatusNotFound, "Return not found")
		return
	}
	if !h.flow.CanTransition(ret.Status, status) {
		respondError(h.render, w, http.StatusBadRequest, "Cannot transition return from "+ret.Status+" to "+status)
		return
	}

	ret.Status = status
	if form.RefundAmount != nil {
		ret.RefundAmount = form.RefundAmount
	}
	if form.TrackingNumber != nil {
		ret.TrackingNumber = form.TrackingNumber
	}
	if err := h.store.UpdateReturn(r.Context(), ret); err != nil {
		log.Printf("UpdateStatus: failed for return %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to update return")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, ret)
}
