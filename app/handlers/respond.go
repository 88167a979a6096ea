package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

// Every error response uses the same envelope so clients only ever parse one
// shape.
func respondError(rnd *render.Render, w http.ResponseWriter, status int, message string) {
	_ = rnd.JSON(w, status, map[string]string{"error": message})
}

// respondValidationError reports which fields failed and how, keeping the
// top-level error string stable for clients that do not read details.
func respondValidationError(rnd *render.Render, w http.ResponseWriter, err error) {
	details := map[string]string{}
	if fieldErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrors {
			details[fe.Field()] = fe.Tag()
		}
	}
	_ = rnd.JSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":   "Invalid input data",
		"details": details,
	})
}

// pathID reads a numeric mux path variable; ok is false when it is missing or
// not a number.
func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, false
	}
	return id, true
}
