package adminController_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Areeb006/FAJR/models"
	"github.com/Areeb006/FAJR/routes"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Product{},
		&models.Order{}, &models.OrderItem{}, &models.Address{},
	))

	r := gin.New()
	routes.SetupRoutes(r, db)
	return r, db
}

func get(t *testing.T, r *gin.Engine, path, apiKey string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if apiKey != "" {
		req.Header.Set("X-API-KEY", apiKey)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{FirstName: "Seed", LastName: "User", Email: email}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestAPIKeyGate(t *testing.T) {
	t.Setenv("ADMIN_API_KEY", "sekret")
	r, _ := newTestRouter(t)

	w := get(t, r, "/api/admin/stats", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(t, r, "/api/admin/stats", "wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(t, r, "/api/admin/stats", "sekret")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIKeyGateDisabledWhenUnset(t *testing.T) {
	t.Setenv("ADMIN_API_KEY", "")
	r, _ := newTestRouter(t)

	w := get(t, r, "/api/admin/stats", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetStats(t *testing.T) {
	r, db := newTestRouter(t)

	user := seedUser(t, db, "stats@example.com")
	require.NoError(t, db.Create(&models.Product{Title: "P1", Category: "Perfume", Gender: "men", Price: 10, Description: "p"}).Error)
	require.NoError(t, db.Create(&models.Product{Title: "P2", Category: "Perfume", Gender: "women", Price: 20, Description: "p"}).Error)

	// Only delivered orders count toward revenue
	require.NoError(t, db.Create(&models.Order{
		OrderRef: "ref-d1", UserID: user.ID, TotalAmount: 100,
		Status: models.OrderStatusDelivered, CreatedAt: time.Now(),
	}).Error)
	require.NoError(t, db.Create(&models.Order{
		OrderRef: "ref-d2", UserID: user.ID, TotalAmount: 40,
		Status: models.OrderStatusDelivered, CreatedAt: time.Now().AddDate(0, -2, 0),
	}).Error)
	require.NoError(t, db.Create(&models.Order{
		OrderRef: "ref-p1", UserID: user.ID, TotalAmount: 999,
		Status: models.OrderStatusPlaced, CreatedAt: time.Now(),
	}).Error)

	w := get(t, r, "/api/admin/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Stats   struct {
			TotalProducts  int64   `json:"total_products"`
			TotalUsers     int64   `json:"total_users"`
			TotalOrders    int64   `json:"total_orders"`
			TotalRevenue   float64 `json:"total_revenue"`
			MonthlyRevenue float64 `json:"monthly_revenue"`
			RecentProducts []struct {
				Title    string `json:"title"`
				ImageURL string `json:"image_url"`
			} `json:"recent_products"`
			RecentUsers []struct {
				Name string `json:"name"`
			} `json:"recent_users"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.EqualValues(t, 2, resp.Stats.TotalProducts)
	assert.EqualValues(t, 1, resp.Stats.TotalUsers)
	assert.EqualValues(t, 3, resp.Stats.TotalOrders)
	assert.InDelta(t, 140, resp.Stats.TotalRevenue, 0.001)
	assert.InDelta(t, 100, resp.Stats.MonthlyRevenue, 0.001)
	require.Len(t, resp.Stats.RecentProducts, 2)
	assert.Contains(t, resp.Stats.RecentProducts[0].ImageURL, "/api/product-image/")
	require.Len(t, resp.Stats.RecentUsers, 1)
	assert.Equal(t, "Seed User", resp.Stats.RecentUsers[0].Name)
}

func TestGetAllUsersProjection(t *testing.T) {
	r, db := newTestRouter(t)

	user := seedUser(t, db, "proj@example.com")
	require.NoError(t, db.Model(&user).Updates(map[string]interface{}{
		"password_hash":   "bcrypt-digest",
		"legacy_password": "plaintext",
	}).Error)

	w := get(t, r, "/api/admin/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "proj@example.com")
	// Credential columns never serialize
	assert.NotContains(t, body, "bcrypt-digest")
	assert.NotContains(t, body, "plaintext")
}

func TestGetUserDetails(t *testing.T) {
	r, db := newTestRouter(t)
	user := seedUser(t, db, "detail@example.com")

	require.NoError(t, db.Create(&models.Address{
		UserID: user.ID, StreetAddress: "1 Rose St", City: "Muscat",
		State: "Muscat", PostalCode: "100", Country: "OM", Phone: "555",
	}).Error)
	require.NoError(t, db.Create(&models.Order{
		OrderRef: "ref-a", UserID: user.ID, TotalAmount: 30, Status: models.OrderStatusDelivered,
	}).Error)
	require.NoError(t, db.Create(&models.Order{
		OrderRef: "ref-b", UserID: user.ID, TotalAmount: 20, Status: models.OrderStatusPlaced,
	}).Error)

	w := get(t, r, fmt.Sprintf("/api/admin/users/%d", user.ID), "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		User struct {
			Email       string  `json:"email"`
			TotalOrders int     `json:"total_orders"`
			TotalSpent  float64 `json:"total_spent"`
			Addresses   []gin.H `json:"addresses"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "detail@example.com", resp.User.Email)
	assert.Equal(t, 2, resp.User.TotalOrders)
	assert.InDelta(t, 50, resp.User.TotalSpent, 0.001)
	assert.Len(t, resp.User.Addresses, 1)

	w = get(t, r, "/api/admin/users/424242", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetUserOrdersCapped(t *testing.T) {
	r, db := newTestRouter(t)
	user := seedUser(t, db, "capped@example.com")

	base := time.Now().Add(-24 * time.Hour)
	for i := 0; i < 12; i++ {
		require.NoError(t, db.Create(&models.Order{
			OrderRef: fmt.Sprintf("cap-%02d", i), UserID: user.ID,
			TotalAmount: 1, CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	w := get(t, r, fmt.Sprintf("/api/admin/users/%d/orders", user.ID), "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Orders []gin.H `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Orders, 10)
}

func TestAdminDeleteUserCascades(t *testing.T) {
	r, db := newTestRouter(t)
	user := seedUser(t, db, "purge@example.com")

	require.NoError(t, db.Create(&models.Address{
		UserID: user.ID, StreetAddress: "1 Rose St", City: "Muscat",
		State: "Muscat", PostalCode: "100", Country: "OM", Phone: "555",
	}).Error)
	order := models.Order{
		OrderRef: "ref-purge", UserID: user.ID, TotalAmount: 10,
		Items: []models.OrderItem{{ProductID: 1, ProductTitle: "Oud", Quantity: 1, Price: 10, LineTotal: 10}},
	}
	require.NoError(t, db.Create(&order).Error)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", user.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var users, orders, items, addresses int64
	db.Model(&models.User{}).Where("id = ?", user.ID).Count(&users)
	db.Model(&models.Order{}).Where("user_id = ?", user.ID).Count(&orders)
	db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&items)
	db.Model(&models.Address{}).Where("user_id = ?", user.ID).Count(&addresses)
	assert.Zero(t, users)
	assert.Zero(t, orders)
	assert.Zero(t, items)
	assert.Zero(t, addresses)

	req = httptest.NewRequest(http.MethodDelete, "/api/admin/users/424242", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAllOrders(t *testing.T) {
	r, db := newTestRouter(t)
	user := seedUser(t, db, "orders@example.com")

	require.NoError(t, db.Create(&models.Order{
		OrderRef: "ref-known", UserID: user.ID, TotalAmount: 55,
		PaymentMethod: "cod", PaymentStatus: models.PaymentStatusPending,
		Status: models.OrderStatusPlaced,
		Items:  []models.OrderItem{{ProductID: 7, ProductTitle: "Amber Noir", Quantity: 2, Price: 27.5, LineTotal: 55}},
	}).Error)
	// Orphaned order: its user is gone
	require.NoError(t, db.Create(&models.Order{
		OrderRef: "ref-orphan", UserID: 424242, TotalAmount: 5,
	}).Error)

	w := get(t, r, "/api/admin/orders", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Orders  []struct {
			OrderRef string `json:"order_ref"`
			UserName string `json:"user_name"`
			Items    []struct {
				ProductTitle string `json:"product_title"`
				ProductImage string `json:"product_image"`
			} `json:"items"`
		} `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Orders, 2)

	byRef := map[string]int{}
	for i, o := range resp.Orders {
		byRef[o.OrderRef] = i
	}
	known := resp.Orders[byRef["ref-known"]]
	assert.Equal(t, "Seed User", known.UserName)
	require.Len(t, known.Items, 1)
	assert.Equal(t, "Amber Noir", known.Items[0].ProductTitle)
	assert.Contains(t, known.Items[0].ProductImage, "/api/product-image/7")

	orphan := resp.Orders[byRef["ref-orphan"]]
	assert.Equal(t, "Unknown User", orphan.UserName)
}

func TestExportOrdersToExcel(t *testing.T) {
	r, db := newTestRouter(t)
	user := seedUser(t, db, "export@example.com")
	require.NoError(t, db.Create(&models.Order{
		OrderRef: "ref-x", UserID: user.ID, TotalAmount: 10,
	}).Error)

	w := get(t, r, "/api/admin/export/orders", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "orders.xlsx")
	assert.NotZero(t, w.Body.Len())
}
