package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
	"github.com/vastrakart/go-storefront/app/helpers"
	"github.com/vastrakart/go-storefront/app/models"
	"github.com/vastrakart/go-storefront/app/repositories"
	"github.com/vastrakart/go-storefront/app/services"
	"github.com/vastrakart/go-storefront/app/utils/calc"
)

type OrderHandler struct {
	render    *render.Render
	store     repositories.Datastore
	flow      *services.StatusFlow
	validator *validator.Validate
}

func NewOrderHandler(r *render.Render, store repositories.Datastore, flow *services.StatusFlow, validator *validator.Validate) *OrderHandler {
	return &OrderHandler{
		render:    r,
		store:     store,
		flow:      flow,
		validator: validator,
	}
}

type OrderItemForm struct {
	ProductID int    `json:"productId" validate:"required"`
	Size      string `json:"size" validate:"required,max=20"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type OrderForm struct {
	Email      string          `json:"email" validate:"required,email"`
	FullName   string          `json:"fullName" validate:"required,max=255"`
	Address    string          `json:"address" validate:"required,max=255"`
	City       string          `json:"city" validate:"required,max=100"`
	State      string          `json:"state" validate:"required,max=100"`
	PostalCode string          `json:"postalCode" validate:"required,max=20"`
	Phone      string          `json:"phone" validate:"required,max=20"`
	Items      []OrderItemForm `json:"items" validate:"omitempty,dive"`
}

// Create places an order. Guests may order; authenticated callers get the
// order attached to their account. Item prices are captured at purchase time,
// so later product edits never change what an order cost.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form OrderForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(h.render, w, http.StatusBadRequest, "Invalid input data")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		respondValidationError(h.render, w, err)
		return
	}

	items := make([]models.OrderItem, 0, len(form.Items))
	total := decimal.Zero
	for _, line := range form.Items {
		product, err := h.store.GetProduct(r.Context(), line.ProductID)
		if err != nil {
			log.Printf("Create: failed to load product %d: %v", line.ProductID, err)
			respondError(h.render, w, http.StatusInternalServerError, "Failed to create order")
			return
		}
		if product == nil {
			respondError(h.render, w, http.StatusNotFound, "Product not found")
			return
		}
		item := models.OrderItem{
			ProductID: line.ProductID,
			Size:      line.Size,
			Quantity:  line.Quantity,
			Price:     calc.EffectivePrice(*product),
		}
		items = append(items, item)
		total = total.Add(calc.ItemSubtotal(item))
	}

	order := models.Order{
		Email:      form.Email,
		FullName:   form.FullName,
		Address:    form.Address,
		City:       form.City,
		State:      form.State,
		PostalCode: form.PostalCode,
		Phone:      form.Phone,
		Status:     models.OrderStatusPending,
		Total:      int(total.IntPart()),
	}
	if user := helpers.UserFromContext(r.Context()); user != nil {
		order.UserID = &user.ID
	}
	if err := h.store.CreateOrder(r.Context(), &order); err != nil {
		log.Printf("Create: failed to create order: %v", err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to create order")
		return
	}
	for i := range items {
		items[i].OrderID = order.ID
		if err := h.store.CreateOrderItem(r.Context(), &items[i]); err != nil {
			log.Printf("Create: failed to create item for order %d: %v", order.ID, err)
			respondError(h.render, w, http.StatusInternalServerError, "Failed to create order")
			return
		}
	}
	_ = h.render.JSON(w, http.StatusCreated, order)
}

type StandaloneItemForm struct {
	OrderID   int    `json:"orderId" validate:"required"`
	ProductID int    `json:"productId" validate:"required"`
	Size      string `json:"size" validate:"required,max=20"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// CreateItem appends a line to an existing order, capturing the current
// effective price.
func (h *OrderHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var form StandaloneItemForm
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
		log.Printf("CreateItem: failed to load order %d: %v", form.OrderID, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to create order item")
		return
	}
	if order == nil {
		respondError(h.render, w, http.StatusNotFound, "Order not found")
		return
	}
	product, err := h.store.GetProduct(r.Context(), form.ProductID)
	if err != nil {
		log.Printf("CreateItem: failed to load product %d: %v", form.ProductID, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to create order item")
		return
	}
	if product == nil {
		respondError(h.render, w, http.StatusNotFound, "Product not found")
		return
	}

	item := models.OrderItem{
		OrderID:   form.OrderID,
		ProductID: form.ProductID,
		Size:      form.Size,
		Quantity:  form.Quantity,
		Price:     calc.EffectivePrice(*product),
	}
	if err := h.store.CreateOrderItem(r.Context(), &item); err != nil {
		log.Printf("CreateItem: failed for order %d: %v", form.OrderID, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to create order item")
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, item)
}

func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.GetAllOrders(r.Context())
	if err != nil {
		log.Printf("ListAll: failed to load orders: %v", err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) ListUser(w http.ResponseWriter, r *http.Request) {
	user := helpers.UserFromContext(r.Context())
	if user == nil {
		respondError(h.render, w, http.StatusUnauthorized, "Authentication required")
		return
	}
	orders, err := h.store.GetOrdersByUser(r.Context(), user.ID)
	if err != nil {
		log.Printf("ListUser: failed for user %d: %v", user.ID, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, orders)
}

// Recent returns the latest ten orders for the admin dashboard.
func (h *OrderHandler) Recent(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.GetAllOrders(r.Context())
	if err != nil {
		log.Printf("Recent: failed to load orders: %v", err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve recent orders")
		return
	}
	recent := make([]models.Order, 0, 10)
	for i := len(orders) - 1; i >= 0 && len(recent) < 10; i-- {
		recent = append(recent, orders[i])
	}
	_ = h.render.JSON(w, http.StatusOK, recent)
}

// ownsOrder reports whether the user may inspect the order.
func ownsOrder(user *models.User, order *models.Order) bool {
	if user.Role == models.RoleAdmin {
		return true
	}
	return order.UserID != nil && *order.UserID == user.ID
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(h.render, w, http.StatusBadRequest, "Invalid order ID")
		return
	}
	user := helpers.UserFromContext(r.Context())
	if user == nil {
		respondError(h.render, w, http.StatusUnauthorized, "Authentication required")
		return
	}
	order, err := h.store.GetOrder(r.Context(), id)
	if err != nil {
		log.Printf("Get: failed to load order %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve order")
		return
	}
	if order == nil {
		respondError(h.render, w, http.StatusNotFound, "Order not found")
		return
	}
	if !ownsOrder(user, order) {
		respondError(h.render, w, http.StatusForbidden, "Not authorized to view this order")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, order)
}

func (h *OrderHandler) Items(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(h.render, w, http.StatusBadRequest, "Invalid order ID")
		return
	}
	user := helpers.UserFromContext(r.Context())
	if user == nil {
		respondError(h.render, w, http.StatusUnauthorized, "Authentication required")
		return
	}
	order, err := h.store.GetOrder(r.Context(), id)
	if err != nil {
		log.Printf("Items: failed to load order %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve order items")
		return
	}
	if order == nil {
		respondError(h.render, w, http.StatusNotFound, "Order not found")
		return
	}
	if !ownsOrder(user, order) {
		respondError(h.render, w, http.StatusForbidden, "Not authorized to view this order")
		return
	}
	items, err := h.store.GetOrderItemsByOrder(r.Context(), id)
	if err != nil {
		log.Printf("Items: failed for order %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve order items")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, items)
}

type OrderStatusForm struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus moves an order along its lifecycle. Unknown statuses and
// illegal transitions are both client errors.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(h.render, w, http.StatusBadRequest, "Invalid order ID")
		return
	}
	var form OrderStatusForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(h.render, w, http.StatusBadRequest, "Invalid input data")
		return
	}
	status := strings.ToLower(strings.TrimSpace(form.Status))
	if !h.flow.Known(status) {
		respondError(h.render, w, http.StatusBadRequest, "Invalid status")
		return
	}

	order, err := h.store.GetOrder(r.Context(), id)
	if err != nil {
		log.Printf("UpdateStatus: failed to load order %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to update order status")
		return
	}
	if order == nil {
		respondError(h.render, w, http.StatusNotFound, "Order not found")
		return
	}
	if !h.flow.CanTransition(order.Status, status) {
		respondError(h.render, w, http.StatusBadRequest, "Cannot transition order from "+order.Status+" to "+status)
		return
	}

	updated, err := h.store.UpdateOrderStatus(r.Context(), id, status)
	if err != nil {
		log.Printf("UpdateStatus: failed for order %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to update order status")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, updated)
}
