package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vastrakart/go-storefront/app/auth"
	"github.com/vastrakart/go-storefront/app/configs"
	"github.com/vastrakart/go-storefront/app/models"
	"github.com/vastrakart/go-storefront/app/repositories/memory"
)

type testEnv struct {
	router *mux.Router
	store  *memory.Store
	tokens *auth.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := configs.ENV{
		Port:      "5000",
		JWTSecret: "test-secret",
		UploadDir: t.TempDir(),
	}
	store := memory.NewStore()
	return &testEnv{
		router: NewRouter(env, store),
		store:  store,
		tokens: auth.NewTokenService(env.JWTSecret, env.JWTExpiry(), auth.DefaultRolePermissions()),
	}
}

// addUser creates an active user directly in the store and mints a matching
// token, skipping the scrypt work a real registration would do.
func (te *testEnv) addUser(t *testing.T, username, role string) (*models.User, string) {
	t.Helper()
	user := models.User{
		Username: username,
		Password: "unused",
		Email:    username + "@example.com",
		Role:     role,
	}
	require.NoError(t, te.store.CreateUser(context.Background(), &user))
	token, err := te.tokens.Generate(&user)
	require.NoError(t, err)
	return &user, token
}

func (te *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	te.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestRegisterConflict(t *testing.T) {
	te := newTestEnv(t)
	payload := map[string]string{
		"username": "alice",
		"password": "secret123",
		"email":    "alice@example.com",
	}

	first := te.do(t, http.MethodPost, "/api/register", "", payload)
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())

	var created struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decode(t, first, &created)
	assert.NotEmpty(t, created.Token)
	assert.Equal(t, "alice", created.User.Username)
	assert.NotContains(t, first.Body.String(), "secret123", "no password material in responses")

	payload["email"] = "alice2@example.com"
	second := te.do(t, http.MethodPost, "/api/register", "", payload)
	assert.Equal(t, http.StatusConflict, second.Code)

	var conflict map[string]string
	decode(t, second, &conflict)
	assert.Equal(t, "Username already exists", conflict["error"])
}

func TestLoginWithRegisteredUser(t *testing.T) {
	te := newTestEnv(t)
	register := te.do(t, http.MethodPost, "/api/register", "", map[string]string{
		"username": "bala",
		"password": "secret123",
		"email":    "bala@example.com",
	})
	require.Equal(t, http.StatusCreated, register.Code)

	good := te.do(t, http.MethodPost, "/api/login", "", map[string]string{
		"username": "bala",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, good.Code, good.Body.String())

	bad := te.do(t, http.MethodPost, "/api/login", "", map[string]string{
		"username": "bala",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, bad.Code)
}

func TestCurrentUserRequiresToken(t *testing.T) {
	te := newTestEnv(t)

	anon := te.do(t, http.MethodGet, "/api/user", "", nil)
	assert.Equal(t, http.StatusUnauthorized, anon.Code)
	var body map[string]string
	decode(t, anon, &body)
	assert.Equal(t, "No authentication token provided", body["error"])

	_, token := te.addUser(t, "carol", models.RoleCustomer)
	authed := te.do(t, http.MethodGet, "/api/user", token, nil)
	assert.Equal(t, http.StatusOK, authed.Code)

	garbage := te.do(t, http.MethodGet, "/api/user", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, garbage.Code)
	decode(t, garbage, &body)
	assert.Equal(t, "Invalid or expired token", body["error"])
}

func TestOrderOwnership(t *testing.T) {
	te := newTestEnv(t)
	_, ownerToken := te.addUser(t, "owner", models.RoleCustomer)
	_, otherToken := te.addUser(t, "other", models.RoleCustomer)
	_, adminToken := te.addUser(t, "boss", models.RoleAdmin)

	created := te.do(t, http.MethodPost, "/api/orders", ownerToken, map[string]interface{}{
		"email":      "owner@example.com",
		"fullName":   "Owner",
		"address":    "12 MG Road",
		"city":       "Bengaluru",
		"state":      "Karnataka",
		"postalCode": "560001",
		"phone":      "9999999999",
	})
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	var order models.Order
	decode(t, created, &order)

	path := "/api/orders/" + strconv.Itoa(order.ID)
	assert.Equal(t, http.StatusOK, te.do(t, http.MethodGet, path, ownerToken, nil).Code)
	assert.Equal(t, http.StatusForbidden, te.do(t, http.MethodGet, path, otherToken, nil).Code)
	assert.Equal(t, http.StatusOK, te.do(t, http.MethodGet, path, adminToken, nil).Code)
}

func TestOrderStatusTransitions(t *testing.T) {
	te := newTestEnv(t)
	_, ownerToken := te.addUser(t, "owner", models.RoleCustomer)
	_, adminToken := te.addUser(t, "boss", models.RoleAdmin)

	created := te.do(t, http.MethodPost, "/api/orders", ownerToken, map[string]interface{}{
		"email":      "owner@example.com",
		"fullName":   "Owner",
		"address":    "12 MG Road",
		"city":       "Bengaluru",
		"state":      "Karnataka",
		"postalCode": "560001",
		"phone":      "9999999999",
	})
	require.Equal(t, http.StatusCreated, created.Code)
	var order models.Order
	decode(t, created, &order)
	path := "/api/orders/" + strconv.Itoa(order.ID) + "/status"

	// Customers lack order:write.
	assert.Equal(t, http.StatusForbidden, te.do(t, http.MethodPatch, path, ownerToken, map[string]string{"status": "processing"}).Code)

	// Unknown status and illegal edges are client errors.
	unknown := te.do(t, http.MethodPatch, path, adminToken, map[string]string{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, unknown.Code)
	var body map[string]string
	decode(t, unknown, &body)
	assert.Equal(t, "Invalid status", body["error"])

	assert.Equal(t, http.StatusBadRequest, te.do(t, http.MethodPatch, path, adminToken, map[string]string{"status": "shipped"}).Code)

	// Walk the happy path, then confirm delivered is terminal.
	for _, status := range []string{"processing", "shipped", "delivered"} {
		res := te.do(t, http.MethodPatch, path, adminToken, map[string]string{"status": status})
		assert.Equal(t, http.StatusOK, res.Code, status)
	}
	assert.Equal(t, http.StatusBadRequest, te.do(t, http.MethodPatch, path, adminToken, map[string]string{"status": "pending"}).Code)
}

func TestGuestCheckout(t *testing.T) {
	te := newTestEnv(t)
	created := te.do(t, http.MethodPost, "/api/orders", "", map[string]interface{}{
		"email":      "guest@example.com",
		"fullName":   "Guest",
		"address":    "1 Park St",
		"city":       "Kolkata",
		"state":      "WB",
		"postalCode": "700016",
		"phone":      "8888888888",
	})
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	var order models.Order
	decode(t, created, &order)
	assert.Nil(t, order.UserID)
}

func TestReturnApprovalPermissions(t *testing.T) {
	te := newTestEnv(t)
	owner, ownerToken := te.addUser(t, "owner", models.RoleCustomer)
	_, adminToken := te.addUser(t, "boss", models.RoleAdmin)

	ctx := context.Background()
	order := models.Order{
		UserID: &owner.ID, Email: "owner@example.com", FullName: "Owner",
		Address: "a", City: "c", State: "s", PostalCode: "1", Phone: "2", Total: 500,
	}
	require.NoError(t, te.store.CreateOrder(ctx, &order))
	item := models.OrderItem{OrderID: order.ID, ProductID: 1, Size: "M", Quantity: 1, Price: 500}
	require.NoError(t, te.store.CreateOrderItem(ctx, &item))

	created := te.do(t, http.MethodPost, "/api/returns", ownerToken, map[string]interface{}{
		"orderId":     order.ID,
		"orderItemId": item.ID,
		"reason":      "Wrong size delivered",
	})
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	var ret models.Return
	decode(t, created, &ret)
	assert.Equal(t, models.ReturnStatusPending, ret.Status)

	path := "/api/returns/" + strconv.Itoa(ret.ID)

	// Owners can view but not approve their own returns.
	assert.Equal(t, http.StatusOK, te.do(t, http.MethodGet, path, ownerToken, nil).Code)
	assert.Equal(t, http.StatusForbidden, te.do(t, http.MethodPatch, path, ownerToken, map[string]string{"status": "approved"}).Code)

	refund := 500
	approved := te.do(t, http.MethodPatch, path, adminToken, map[string]interface{}{
		"status":       "approved",
		"refundAmount": refund,
	})
	require.Equal(t, http.StatusOK, approved.Code, approved.Body.String())
	decode(t, approved, &ret)
	assert.Equal(t, models.ReturnStatusApproved, ret.Status)
	require.NotNil(t, ret.RefundAmount)
	assert.Equal(t, refund, *ret.RefundAmount)

	// Rejected would be an illegal edge now; only refunded/returned remain.
	assert.Equal(t, http.StatusBadRequest, te.do(t, http.MethodPatch, path, adminToken, map[string]string{"status": "rejected"}).Code)
}

func TestReturnRequiresOrderOwnership(t *testing.T) {
	te := newTestEnv(t)
	owner, _ := te.addUser(t, "owner", models.RoleCustomer)
	_, otherToken := te.addUser(t, "other", models.RoleCustomer)

	order := models.Order{
		UserID: &owner.ID, Email: "owner@example.com", FullName: "Owner",
		Address: "a", City: "c", State: "s", PostalCode: "1", Phone: "2", Total: 500,
	}
	require.NoError(t, te.store.CreateOrder(context.Background(), &order))

	res := te.do(t, http.MethodPost, "/api/returns", otherToken, map[string]interface{}{
		"orderId":     order.ID,
		"orderItemId": 1,
		"reason":      "not mine",
	})
	assert.Equal(t, http.StatusForbidden, res.Code)
}

func TestWishlistLifecycle(t *testing.T) {
	te := newTestEnv(t)
	_, token := te.addUser(t, "wisher", models.RoleCustomer)

	product := models.Product{Name: "Saree", Price: 100}
	require.NoError(t, te.store.CreateProduct(context.Background(), &product))

	added := te.do(t, http.MethodPost, "/api/wishlist", token, map[string]int{"productId": product.ID})
	require.Equal(t, http.StatusCreated, added.Code)

	list := te.do(t, http.MethodGet, "/api/wishlist", token, nil)
	require.Equal(t, http.StatusOK, list.Code)
	var products []models.Product
	decode(t, list, &products)
	require.Len(t, products, 1)
	assert.Equal(t, "Saree", products[0].Name)

	missing := te.do(t, http.MethodPost, "/api/wishlist", token, map[string]int{"productId": 999})
	assert.Equal(t, http.StatusNotFound, missing.Code)

	removed := te.do(t, http.MethodDelete, "/api/wishlist/"+strconv.Itoa(product.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, removed.Code)
	again := te.do(t, http.MethodDelete, "/api/wishlist/"+strconv.Itoa(product.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, again.Code)
}

func TestAdminUserEndpoints(t *testing.T) {
	te := newTestEnv(t)
	admin, adminToken := te.addUser(t, "boss", models.RoleAdmin)
	target, _ := te.addUser(t, "temp", models.RoleCustomer)
	_, customerToken := te.addUser(t, "pleb", models.RoleCustomer)

	assert.Equal(t, http.StatusOK, te.do(t, http.MethodGet, "/api/admin/users", adminToken, nil).Code)
	assert.Equal(t, http.StatusForbidden, te.do(t, http.MethodGet, "/api/admin/users", customerToken, nil).Code)

	selfDelete := te.do(t, http.MethodDelete, "/api/admin/users/"+strconv.Itoa(admin.ID), adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, selfDelete.Code)

	deleted := te.do(t, http.MethodDelete, "/api/admin/users/"+strconv.Itoa(target.ID), adminToken, nil)
	assert.Equal(t, http.StatusOK, deleted.Code)
	assert.Equal(t, http.StatusNotFound, te.do(t, http.MethodDelete, "/api/admin/users/"+strconv.Itoa(target.ID), adminToken, nil).Code)
}

func TestProductWritePermissions(t *testing.T) {
	te := newTestEnv(t)
	_, customerToken := te.addUser(t, "pleb", models.RoleCustomer)
	_, managerToken := te.addUser(t, "editor", models.RoleContentManager)

	ctx := context.Background()
	category := models.Category{Name: "sarees"}
	require.NoError(t, te.store.CreateCategory(ctx, &category))
	brand := models.Brand{Name: "vastra"}
	require.NoError(t, te.store.CreateBrand(ctx, &brand))

	payload := map[string]interface{}{
		"name":       "Test Saree",
		"price":      1200,
		"categoryId": category.ID,
		"brandId":    brand.ID,
	}
	assert.Equal(t, http.StatusForbidden, te.do(t, http.MethodPost, "/api/products", customerToken, payload).Code)
	assert.Equal(t, http.StatusCreated, te.do(t, http.MethodPost, "/api/products", managerToken, payload).Code)

	payload["discountedPrice"] = 1500
	res := te.do(t, http.MethodPost, "/api/products", managerToken, payload)
	assert.Equal(t, http.StatusBadRequest, res.Code, "discount above list price rejected")
}

func TestStatsRequiresDashboardAccess(t *testing.T) {
	te := newTestEnv(t)
	_, adminToken := te.addUser(t, "boss", models.RoleAdmin)
	_, customerToken := te.addUser(t, "pleb", models.RoleCustomer)

	assert.Equal(t, http.StatusForbidden, te.do(t, http.MethodGet, "/api/stats", customerToken, nil).Code)
	res := te.do(t, http.MethodGet, "/api/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "totalSales")
}

func TestPublicProfileHidesSensitiveFields(t *testing.T) {
	te := newTestEnv(t)
	user, _ := te.addUser(t, "visible", models.RoleCustomer)

	res := te.do(t, http.MethodGet, "/api/users/"+strconv.Itoa(user.ID), "", nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "visible")
	assert.NotContains(t, res.Body.String(), "email")
	assert.NotContains(t, res.Body.String(), "password")

	assert.Equal(t, http.StatusNotFound, te.do(t, http.MethodGet, "/api/users/999", "", nil).Code)
}
