package routes

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"github.com/vastrakart/go-storefront/app/auth"
	"github.com/vastrakart/go-storefront/app/configs"
	"github.com/vastrakart/go-storefront/app/handlers"
	"github.com/vastrakart/go-storefront/app/middlewares"
	"github.com/vastrakart/go-storefront/app/models"
	"github.com/vastrakart/go-storefront/app/repositories"
	"github.com/vastrakart/go-storefront/app/services"
)

// chain applies middleware left to right, so the first listed runs first.
func chain(h http.HandlerFunc, mws ...func(http.Handler) http.Handler) http.Handler {
	var wrapped http.Handler = h
	for i := len(mws) - 1; i >= 0; i-- {
		wrapped = mws[i](wrapped)
	}
	return wrapped
}

// NewRouter builds the full HTTP surface. Every handler gets its dependencies
// here; nothing reads ambient globals.
func NewRouter(env configs.ENV, store repositories.Datastore) *mux.Router {
	rnd := render.New()
	validate := validator.New()
	secure := env.Production()

	tokens := auth.NewTokenService(env.JWTSecret, env.JWTExpiry(), auth.DefaultRolePermissions())
	catalog := services.NewCatalogService(store)
	stats := services.NewStatsService(store)
	orderFlow := services.NewOrderFlow()
	returnFlow := services.NewReturnFlow()

	authHandler := handlers.NewAuthHandler(rnd, store, tokens, validate, secure)
	productHandler := handlers.NewProductHandler(rnd, store, catalog, validate)
	metadataHandler := handlers.NewMetadataHandler(rnd, store)
	collectionHandler := handlers.NewCollectionHandler(rnd, store, validate)
	inventoryHandler := handlers.NewInventoryHandler(rnd, store, validate)
	reviewHandler := handlers.NewReviewHandler(rnd, store, validate)
	orderHandler := handlers.NewOrderHandler(rnd, store, orderFlow, validate)
	returnHandler := handlers.NewReturnHandler(rnd, store, returnFlow, validate)
	wishlistHandler := handlers.NewWishlistHandler(rnd, store)
	adminHandler := handlers.NewAdminHandler(rnd, store, stats, validate)
	uploadHandler := handlers.NewUploadHandler(rnd, env.UploadDir)

	authenticate := middlewares.Authenticate(rnd, tokens, store)
	identify := middlewares.Identify(tokens, store)
	refresh := middlewares.RefreshToken(tokens, secure)
	adminOnly := middlewares.RequireRole(rnd, models.RoleAdmin)
	uploaders := middlewares.RequireRole(rnd, models.RoleAdmin, models.RoleContentManager)
	productWrite := middlewares.RequirePermission(rnd, auth.PermProductWrite)
	inventoryWrite := middlewares.RequirePermission(rnd, auth.PermInventoryWrite)
	orderWrite := middlewares.RequirePermission(rnd, auth.PermOrderWrite)
	returnsManage := middlewares.RequirePermission(rnd, auth.PermReturnsManage)
	dashboard := middlewares.RequirePermission(rnd, auth.PermDashboardAccess)

	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()

	// Auth
	api.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
	api.Handle("/user", chain(authHandler.CurrentUser, authenticate, refresh)).Methods(http.MethodGet)
	api.Handle("/auth/validate", chain(authHandler.Validate, authenticate)).Methods(http.MethodGet)
	api.Handle("/auth/users/{id:[0-9]+}/change-password", chain(authHandler.ChangePassword, authenticate)).Methods(http.MethodPost)
	api.Handle("/auth/users/{id:[0-9]+}", chain(authHandler.UpdateProfile, authenticate)).Methods(http.MethodPatch)

	// Catalog
	api.HandleFunc("/products", productHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/products/featured", productHandler.Featured).Methods(http.MethodGet)
	api.HandleFunc("/products/new", productHandler.New).Methods(http.MethodGet)
	api.HandleFunc("/products/{id:[0-9]+}", productHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/products/{id:[0-9]+}/recommendations", productHandler.Recommendations).Methods(http.MethodGet)
	api.HandleFunc("/products/{id:[0-9]+}/reviews", productHandler.Reviews).Methods(http.MethodGet)
	api.HandleFunc("/products/{id:[0-9]+}/collections", productHandler.Collections).Methods(http.MethodGet)
	api.Handle("/products", chain(productHandler.Create, authenticate, productWrite)).Methods(http.MethodPost)
	api.Handle("/products/{id:[0-9]+}", chain(productHandler.Update, authenticate, productWrite)).Methods(http.MethodPatch)
	api.Handle("/products/{id:[0-9]+}", chain(productHandler.Delete, authenticate, productWrite)).Methods(http.MethodDelete)

	// Filter metadata
	api.HandleFunc("/metadata/categories", metadataHandler.Categories).Methods(http.MethodGet)
	api.HandleFunc("/metadata/brands", metadataHandler.Brands).Methods(http.MethodGet)
	api.HandleFunc("/metadata/sizes", metadataHandler.Sizes).Methods(http.MethodGet)
	api.HandleFunc("/metadata/ratings", metadataHandler.Ratings).Methods(http.MethodGet)

	// Collections
	api.HandleFunc("/collections", collectionHandler.List).Methods(http.MethodGet)
	api.Handle("/collections", chain(collectionHandler.Create, authenticate, productWrite)).Methods(http.MethodPost)
	api.HandleFunc("/collections/{id:[0-9]+}", collectionHandler.Get).Methods(http.MethodGet)
	api.Handle("/collections/{id:[0-9]+}", chain(collectionHandler.Update, authenticate, productWrite)).Methods(http.MethodPatch)
	api.Handle("/collections/{id:[0-9]+}", chain(collectionHandler.Delete, authenticate, productWrite)).Methods(http.MethodDelete)
	api.HandleFunc("/collections/{id:[0-9]+}/products", collectionHandler.Products).Methods(http.MethodGet)
	api.Handle("/collections/{id:[0-9]+}/products/{productId:[0-9]+}", chain(collectionHandler.AddProduct, authenticate, productWrite)).Methods(http.MethodPost)
	api.Handle("/collections/{id:[0-9]+}/products/{productId:[0-9]+}", chain(collectionHandler.RemoveProduct, authenticate, productWrite)).Methods(http.MethodDelete)

	// Inventory
	api.HandleFunc("/inventory/product/{productId:[0-9]+}", inventoryHandler.ByProduct).Methods(http.MethodGet)
	api.Handle("/inventory", chain(inventoryHandler.Create, authenticate, inventoryWrite)).Methods(http.MethodPost)
	api.Handle("/inventory/{id:[0-9]+}", chain(inventoryHandler.Update, authenticate, inventoryWrite)).Methods(http.MethodPatch)

	// Reviews
	api.Handle("/reviews", chain(reviewHandler.List, authenticate, adminOnly)).Methods(http.MethodGet)
	api.Handle("/reviews", chain(reviewHandler.Create, authenticate)).Methods(http.MethodPost)
	api.Handle("/reviews/{id:[0-9]+}", chain(reviewHandler.Delete, authenticate, adminOnly)).Methods(http.MethodDelete)

	// Orders; checkout accepts guests, everything else needs a session
	api.Handle("/orders", chain(orderHandler.Create, identify)).Methods(http.MethodPost)
	api.Handle("/order-items", chain(orderHandler.CreateItem, identify)).Methods(http.MethodPost)
	api.Handle("/orders", chain(orderHandler.ListAll, authenticate, adminOnly)).Methods(http.MethodGet)
	api.Handle("/orders/user", chain(orderHandler.ListUser, authenticate)).Methods(http.MethodGet)
	api.Handle("/orders/recent", chain(orderHandler.Recent, authenticate, adminOnly)).Methods(http.MethodGet)
	api.Handle("/orders/{id:[0-9]+}", chain(orderHandler.Get, authenticate)).Methods(http.MethodGet)
	api.Handle("/orders/{id:[0-9]+}/items", chain(orderHandler.Items, authenticate)).Methods(http.MethodGet)
	api.Handle("/orders/{id:[0-9]+}/status", chain(orderHandler.UpdateStatus, authenticate, orderWrite)).Methods(http.MethodPatch)

	// Returns
	api.Handle("/returns", chain(returnHandler.Create, authenticate)).Methods(http.MethodPost)
	api.Handle("/returns", chain(returnHandler.ListAll, authenticate, returnsManage)).Methods(http.MethodGet)
	api.Handle("/user/returns", chain(returnHandler.ListUser, authenticate)).Methods(http.MethodGet)
	api.Handle("/returns/{id:[0-9]+}", chain(returnHandler.Get, authenticate)).Methods(http.MethodGet)
	api.Handle("/returns/{id:[0-9]+}", chain(returnHandler.UpdateStatus, authenticate, returnsManage)).Methods(http.MethodPatch)

	// Wishlist and recently viewed
	api.Handle("/wishlist", chain(wishlistHandler.List, authenticate)).Methods(http.MethodGet)
	api.Handle("/wishlist", chain(wishlistHandler.Add, authenticate)).Methods(http.MethodPost)
	api.Handle("/wishlist/{productId:[0-9]+}", chain(wishlistHandler.Remove, authenticate)).Methods(http.MethodDelete)
	api.Handle("/recently-viewed", chain(wishlistHandler.RecentlyViewed, authenticate)).Methods(http.MethodGet)
	api.Handle("/recently-viewed", chain(wishlistHandler.AddRecentlyViewed, authenticate)).Methods(http.MethodPost)

	// User preferences and public profiles
	api.Handle("/user/preferences", chain(adminHandler.GetPreferences, authenticate)).Methods(http.MethodGet)
	api.Handle("/user/preferences", chain(adminHandler.SavePreferences, authenticate)).Methods(http.MethodPost)
	api.HandleFunc("/users/{id:[0-9]+}", adminHandler.PublicProfile).Methods(http.MethodGet)

	// Admin
	api.Handle("/admin/users", chain(adminHandler.ListUsers, authenticate, adminOnly)).Methods(http.MethodGet)
	api.Handle("/admin/users", chain(adminHandler.CreateUser, authenticate, adminOnly)).Methods(http.MethodPost)
	api.Handle("/admin/users/{id:[0-9]+}", chain(adminHandler.GetUser, authenticate, adminOnly)).Methods(http.MethodGet)
	api.Handle("/admin/users/{id:[0-9]+}", chain(adminHandler.UpdateUser, authenticate, adminOnly)).Methods(http.MethodPatch)
	api.Handle("/admin/users/{id:[0-9]+}", chain(adminHandler.DeleteUser, authenticate, adminOnly)).Methods(http.MethodDelete)
	api.Handle("/stats", chain(adminHandler.Stats, authenticate, dashboard)).Methods(http.MethodGet)

	// Uploads
	api.Handle("/upload", chain(uploadHandler.Upload, authenticate, uploaders)).Methods(http.MethodPost)
	router.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(env.UploadDir))),
	).Methods(http.MethodGet)

	return router
}
