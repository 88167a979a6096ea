package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
	"github.com/vastrakart/go-storefront/app/auth"
	"github.com/vastrakart/go-storefront/app/helpers"
	"github.com/vastrakart/go-storefront/app/models"
	"github.com/vastrakart/go-storefront/app/repositories"
	"github.com/vastrakart/go-storefront/app/services"
)

// AdminHandler owns user administration, the public profile endpoint, user
// preferences, and the dashboard stats.
type AdminHandler struct {
	render    *render.Render
	store     repositories.Datastore
	stats     *services.StatsService
	validator *validator.Validate
}

func NewAdminHandler(r *render.Render, store repositories.Datastore, stats *services.StatsService, validator *validator.Validate) *AdminHandler {
	return &AdminHandler{
		render:    r,
		store:     store,
		stats:     stats,
		validator: validator,
	}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.GetAllUsers(r.Context())
	if err != nil {
		log.Printf("ListUsers: failed to load users: %v", err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, users)
}

func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(h.render, w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	user, err := h.store.GetUser(r.Context(), id)
	if err != nil {
		log.Printf("GetUser: failed to load user %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve user")
		return
	}
	if user == nil {
		respondError(h.render, w, http.StatusNotFound, "User not found")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, user)
}

type AdminUserForm struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"fullName" validate:"omitempty,max=255"`
	Role     string `json:"role" validate:"omitempty,oneof=admin contentManager customer"`
	Status   string `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var form AdminUserForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(h.render, w, http.StatusBadRequest, "Invalid input data")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		respondValidationError(h.render, w, err)
		return
	}

	hashed, err := auth.HashPassword(form.Password)
	if err != nil {
		log.Printf("CreateUser: failed to hash password: %v", err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	role := form.Role
	if role == "" {
		role = models.RoleCustomer
	}
	status := form.Status
	if status == "" {
		status = models.UserStatusActive
	}
	user := models.User{
		Username: form.Username,
		Password: hashed,
		Email:    form.Email,
		FullName: form.FullName,
		Role:     role,
		Status:   status,
	}
	if err := h.store.CreateUser(r.Context(), &user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateUsername):
			respondError(h.render, w, http.StatusConflict, "Username already exists")
		case errors.Is(err, repositories.ErrDuplicateEmail):
			respondError(h.render, w, http.StatusConflict, "Email already exists")
		default:
			log.Printf("CreateUser: failed to create user: %v", err)
			respondError(h.render, w, http.StatusInternalServerError, "Failed to create user")
		}
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, user)
}

type AdminUserPatchForm struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	FullName *string `json:"fullName" validate:"omitempty,max=255"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin contentManager customer"`
	Status   *string `json:"status" validate:"omitempty,oneof=active inactive"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(h.render, w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	var form AdminUserPatchForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(h.render, w, http.StatusBadRequest, "Invalid input data")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		respondValidationError(h.render, w, err)
		return
	}

	user, err := h.store.GetUser(r.Context(), id)
	if err != nil {
		log.Printf("UpdateUser: failed to load user %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to update user")
		return
	}
	if user == nil {
		respondError(h.render, w, http.StatusNotFound, "User not found")
		return
	}

	if form.Username != nil {
		user.Username = *form.Username
	}
	if form.Email != nil {
		user.Email = *form.Email
	}
	if form.FullName != nil {
		user.FullName = *form.FullName
	}
	if form.Role != nil {
		user.Role = *form.Role
	}
	if form.Status != nil {
		user.Status = *form.Status
	}
	if form.Password != nil {
		hashed, err := auth.HashPassword(*form.Password)
		if err != nil {
			log.Printf("UpdateUser: failed to hash password for user %d: %v", id, err)
			respondError(h.render, w, http.StatusInternalServerError, "Failed to update user")
			return
		}
		user.Password = hashed
	}

	if err := h.store.UpdateUser(r.Context(), user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateUsername):
			respondError(h.render, w, http.StatusConflict, "Username already exists")
		case errors.Is(err, repositories.ErrDuplicateEmail):
			respondError(h.render, w, http.StatusConflict, "Email already exists")
		default:
			log.Printf("UpdateUser: failed to update user %d: %v", id, err)
			respondError(h.render, w, http.StatusInternalServerError, "Failed to update user")
		}
		return
	}
	_ = h.render.JSON(w, http.StatusOK, user)
}

// DeleteUser removes an account. Admins cannot delete themselves, which
// guarantees at least one admin survives.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(h.render, w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	actor := helpers.UserFromContext(r.Context())
	if actor != nil && actor.ID == id {
		respondError(h.render, w, http.StatusBadRequest, "Cannot delete your own user account")
		return
	}
	removed, err := h.store.DeleteUser(r.Context(), id)
	if err != nil {
		log.Printf("DeleteUser: failed to delete user %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	if !removed {
		respondError(h.render, w, http.StatusNotFound, "User not found")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// PublicProfile exposes the non-sensitive subset of a user record.
func (h *AdminHandler) PublicProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(h.render, w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	user, err := h.store.GetUser(r.Context(), id)
	if err != nil {
		log.Printf("PublicProfile: failed to load user %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve user")
		return
	}
	if user == nil {
		respondError(h.render, w, http.StatusNotFound, "User not found")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, user.PublicProfile())
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Dashboard(r.Context())
	if err != nil {
		log.Printf("Stats: failed to compute dashboard: %v", err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve dashboard statistics")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	user := helpers.UserFromContext(r.Context())
	if user == nil {
		respondError(h.render, w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	prefs, err := h.store.GetUserPreferences(r.Context(), user.ID)
	if err != nil {
		log.Printf("GetPreferences: failed for user %d: %v", user.ID, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to retrieve preferences")
		return
	}
	if prefs == nil {
		respondError(h.render, w, http.StatusNotFound, "Preferences not found")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, prefs)
}

type PreferencesForm struct {
	FavoriteCategories []string `json:"favoriteCategories"`
	FavoriteColors     []string `json:"favoriteColors"`
	FavoriteOccasions  []string `json:"favoriteOccasions"`
	PriceRangeMin      *int     `json:"priceRangeMin" validate:"omitempty,gte=0"`
	PriceRangeMax      *int     `json:"priceRangeMax" validate:"omitempty,gte=0"`
}

func (h *AdminHandler) SavePreferences(w http.ResponseWriter, r *http.Request) {
	user := helpers.UserFromContext(r.Context())
	if user == nil {
		respondError(h.render, w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	var form PreferencesForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(h.render, w, http.StatusBadRequest, "Invalid input data")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		respondValidationError(h.render, w, err)
		return
	}

	prefs := models.UserPreferences{
		UserID:             user.ID,
		FavoriteCategories: form.FavoriteCategories,
		FavoriteColors:     form.FavoriteColors,
		FavoriteOccasions:  form.FavoriteOccasions,
		PriceRangeMin:      form.PriceRangeMin,
		PriceRangeMax:      form.PriceRangeMax,
	}
	if err := h.store.SaveUserPreferences(r.Context(), &prefs); err != nil {
		log.Printf("SavePreferences: failed for user %d: %v", user.ID, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to save preferences")
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, prefs)
}
