package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
	"github.com/vastrakart/go-storefront/app/auth"
	"github.com/vastrakart/go-storefront/app/helpers"
	"github.com/vastrakart/go-storefront/app/models"
	"github.com/vastrakart/go-storefront/app/repositories"
)

type AuthHandler struct {
	render    *render.Render
	store     repositories.Datastore
	tokens    *auth.TokenService
	validator *validator.Validate
	secure    bool
}

func NewAuthHandler(r *render.Render, store repositories.Datastore, tokens *auth.TokenService, validator *validator.Validate, secure bool) *AuthHandler {
	return &AuthHandler{
		render:    r,
		store:     store,
		tokens:    tokens,
		validator: validator,
		secure:    secure,
	}
}

type RegisterForm struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"fullName" validate:"omitempty,max=255"`
	Gender   string `json:"gender" validate:"omitempty,oneof=men women other"`
}

type LoginForm struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var form RegisterForm
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
		log.Printf("Register: failed to hash password: %v", err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	user := models.User{
		Username: form.Username,
		Password: hashed,
		Email:    form.Email,
		FullName: form.FullName,
		Gender:   form.Gender,
		Role:     models.RoleCustomer,
		Status:   models.UserStatusActive,
	}
	if err := h.store.CreateUser(r.Context(), &user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateUsername):
			respondError(h.render, w, http.StatusConflict, "Username already exists")
		case errors.Is(err, repositories.ErrDuplicateEmail):
			respondError(h.render, w, http.StatusConflict, "Email already exists")
		default:
			log.Printf("Register: failed to create user: %v", err)
			respondError(h.render, w, http.StatusInternalServerError, "Failed to register user")
		}
		return
	}

	token, err := h.tokens.Generate(&user)
	if err != nil {
		log.Printf("Register: failed to generate token for user %d: %v", user.ID, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	helpers.SetJWTCookie(w, token, h.tokens.ExpiresIn(), h.secure)
	_ = h.render.JSON(w, http.StatusCreated, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var form LoginForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(h.render, w, http.StatusBadRequest, "Invalid input data")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		respondValidationError(h.render, w, err)
		return
	}

	user, err := h.store.GetUserByUsername(r.Context(), form.Username)
	if err != nil {
		log.Printf("Login: failed to load user %q: %v", form.Username, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to log in")
		return
	}
	if user == nil {
		respondError(h.render, w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	match, err := auth.VerifyPassword(form.Password, user.Password)
	if err != nil {
		log.Printf("Login: failed to verify password for user %d: %v", user.ID, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to log in")
		return
	}
	if !match {
		respondError(h.render, w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if user.Status != models.UserStatusActive {
		respondError(h.render, w, http.StatusUnauthorized, "User not found or inactive")
		return
	}

	now := time.Now()
	user.LastLogin = &now
	if err := h.store.UpdateUser(r.Context(), user); err != nil {
		log.Printf("Login: failed to record last login for user %d: %v", user.ID, err)
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		log.Printf("Login: failed to generate token for user %d: %v", user.ID, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	helpers.SetJWTCookie(w, token, h.tokens.ExpiresIn(), h.secure)
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	helpers.ClearJWTCookie(w, h.secure)
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// CurrentUser returns the authenticated user. Runs behind Authenticate.
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user := helpers.UserFromContext(r.Context())
	if user == nil {
		respondError(h.render, w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, user)
}

// Validate lets clients confirm a stored token is still good without
// triggering any side effects.
func (h *AuthHandler) Validate(w http.ResponseWriter, r *http.Request) {
	user := helpers.UserFromContext(r.Context())
	if user == nil {
		respondError(h.render, w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"valid": true,
		"user":  user,
	})
}

type ChangePasswordForm struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// ChangePassword updates a user's password. Users change their own and must
// present the current one; admins may reset anyone's without it.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(h.render, w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	actor := helpers.UserFromContext(r.Context())
	if actor == nil {
		respondError(h.render, w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	if actor.ID != id && actor.Role != models.RoleAdmin {
		respondError(h.render, w, http.StatusForbidden, "Not authorized")
		return
	}

	var form ChangePasswordForm
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
		log.Printf("ChangePassword: failed to load user %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to change password")
		return
	}
	if user == nil {
		respondError(h.render, w, http.StatusNotFound, "User not found")
		return
	}
	if actor.ID == id {
		match, err := auth.VerifyPassword(form.CurrentPassword, user.Password)
		if err != nil || !match {
			respondError(h.render, w, http.StatusUnauthorized, "Current password is incorrect")
			return
		}
	}

	hashed, err := auth.HashPassword(form.NewPassword)
	if err != nil {
		log.Printf("ChangePassword: failed to hash password for user %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to change password")
		return
	}
	user.Password = hashed
	if err := h.store.UpdateUser(r.Context(), user); err != nil {
		log.Printf("ChangePassword: failed to update user %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to change password")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
}

type ProfileForm struct {
	FullName       *string `json:"fullName" validate:"omitempty,max=255"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Gender         *string `json:"gender" validate:"omitempty,oneof=men women other"`
	PhoneNumber    *string `json:"phoneNumber" validate:"omitempty,max=20"`
	Address        *string `json:"address" validate:"omitempty,max=255"`
	ProfilePicture *string `json:"profilePicture" validate:"omitempty,max=255"`
}

// UpdateProfile patches the mutable profile fields. Self or admin only; role
// and status changes go through the admin endpoints instead.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(h.render, w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	actor := helpers.UserFromContext(r.Context())
	if actor == nil {
		respondError(h.render, w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	if actor.ID != id && actor.Role != models.RoleAdmin {
		respondError(h.render, w, http.StatusForbidden, "Not authorized")
		return
	}

	var form ProfileForm
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
		log.Printf("UpdateProfile: failed to load user %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	if user == nil {
		respondError(h.render, w, http.StatusNotFound, "User not found")
		return
	}

	if form.FullName != nil {
		user.FullName = *form.FullName
	}
	if form.Email != nil {
		user.Email = *form.Email
	}
	if form.Gender != nil {
		user.Gender = *form.Gender
	}
	if form.PhoneNumber != nil {
		user.PhoneNumber = *form.PhoneNumber
	}
	if form.Address != nil {
		user.Address = *form.Address
	}
	if form.ProfilePicture != nil {
		user.ProfilePicture = *form.ProfilePicture
	}

	if err := h.store.UpdateUser(r.Context(), user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			respondError(h.render, w, http.StatusConflict, "Email already exists")
			return
		}
		log.Printf("UpdateProfile: failed to update user %d: %v", id, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, user)
}
