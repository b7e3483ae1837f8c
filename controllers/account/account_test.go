package accountControllers_test

import (
	"bytes"
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

	"github.com/Areeb006/FAJR/auth"
	orderControllers "github.com/Areeb006/FAJR/controllers/order"
	"github.com/Areeb006/FAJR/models"
	"github.com/Areeb006/FAJR/routes"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	auth.Init("test-secret")

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

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, cookie string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.Header.Set("Cookie", auth.SessionCookie+"="+cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.SessionCookie {
			return c.Value
		}
	}
	t.Fatal("no session cookie in response")
	return ""
}

func register(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/register", gin.H{
		"first_name": "Test",
		"last_name":  "User",
		"email":      email,
		"password":   "hunter22",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return sessionCookie(t, w)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r, db := newTestRouter(t)

	register(t, r, "dupe@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/register", gin.H{
		"first_name": "Other",
		"last_name":  "Person",
		"email":      "dupe@example.com",
		"password":   "different",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already registered")

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRegisterDuplicatePhone(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/register", gin.H{
		"first_name": "A", "last_name": "B",
		"email": "a@example.com", "phone": "555-0100", "password": "pw",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/register", gin.H{
		"first_name": "C", "last_name": "D",
		"email": "c@example.com", "phone": "555-0100", "password": "pw",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Phone number is already registered")
}

func TestLoginWrongPassword(t *testing.T) {
	r, _ := newTestRouter(t)
	register(t, r, "login@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/login", gin.H{
		"email": "login@example.com", "password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestLoginByPhone(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/register", gin.H{
		"first_name": "P", "last_name": "Q",
		"email": "phone@example.com", "phone": "555-0199", "password": "pw",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/login", gin.H{
		"phone": "555-0199", "password": "pw",
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginLegacyMigration(t *testing.T) {
	r, db := newTestRouter(t)

	user := models.User{
		FirstName:      "Legacy",
		LastName:       "Account",
		Email:          "legacy@example.com",
		LegacyPassword: "oldpass",
	}
	require.NoError(t, db.Create(&user).Error)

	// First login migrates the plaintext credential to a bcrypt digest
	w := doJSON(t, r, http.MethodPost, "/api/login", gin.H{
		"email": "legacy@example.com", "password": "oldpass",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var migrated models.User
	require.NoError(t, db.First(&migrated, user.ID).Error)
	assert.NotEmpty(t, migrated.PasswordHash)
	assert.Empty(t, migrated.LegacyPassword)

	// Second login succeeds via the digest path
	w = doJSON(t, r, http.MethodPost, "/api/login", gin.H{
		"email": "legacy@example.com", "password": "oldpass",
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)

	// A wrong password still fails after migration
	w = doJSON(t, r, http.MethodPost, "/api/login", gin.H{
		"email": "legacy@example.com", "password": "notit",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthStatus(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/auth/status", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)

	cookie := register(t, r, "status@example.com")
	w = doJSON(t, r, http.MethodGet, "/api/auth/status", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
}

func TestUpdateProfile(t *testing.T) {
	r, db := newTestRouter(t)
	cookie := register(t, r, "profile@example.com")

	w := doJSON(t, r, http.MethodPut, "/api/user", gin.H{
		"first_name":          "Updated",
		"last_name":           "Name",
		"phone":               "555-0142",
		"gender":              "female",
		"preferred_fragrance": "oud",
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var user models.User
	require.NoError(t, db.Where("email = ?", "profile@example.com").First(&user).Error)
	assert.Equal(t, "Updated", user.FirstName)
	assert.Equal(t, "oud", user.PreferredFragrance)

	// Omitted fields are overwritten with empty values
	w = doJSON(t, r, http.MethodPut, "/api/user", gin.H{
		"first_name": "Updated",
		"last_name":  "Name",
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.Where("email = ?", "profile@example.com").First(&user).Error)
	assert.Empty(t, user.Phone)
	assert.Empty(t, user.PreferredFragrance)
}

func TestProfileUpdatePrunesOrders(t *testing.T) {
	r, db := newTestRouter(t)
	cookie := register(t, r, "hoarder@example.com")

	var user models.User
	require.NoError(t, db.Where("email = ?", "hoarder@example.com").First(&user).Error)

	base := time.Now().Add(-60 * 24 * time.Hour)
	for i := 0; i < orderControllers.RetentionLimit+5; i++ {
		order := models.Order{
			OrderRef:    fmt.Sprintf("ref-%03d", i),
			UserID:      user.ID,
			TotalAmount: 10,
			Status:      models.OrderStatusPlaced,
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, db.Create(&order).Error)
	}

	w := doJSON(t, r, http.MethodPut, "/api/user", gin.H{
		"first_name": "Still", "last_name": "Here",
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, orderControllers.RetentionLimit, count)

	// The oldest five are the ones that went
	var oldest models.Order
	require.NoError(t, db.Where("user_id = ?", user.ID).
		Order("created_at ASC").First(&oldest).Error)
	assert.Equal(t, "ref-005", oldest.OrderRef)
}

func TestDeleteAccountCascades(t *testing.T) {
	r, db := newTestRouter(t)
	cookie := register(t, r, "gone@example.com")

	var user models.User
	require.NoError(t, db.Where("email = ?", "gone@example.com").First(&user).Error)

	require.NoError(t, db.Create(&models.Address{
		UserID: user.ID, StreetAddress: "1 Rose St", City: "Muscat",
		State: "Muscat", PostalCode: "100", Country: "OM", Phone: "555",
	}).Error)
	order := models.Order{
		OrderRef: "ref-del", UserID: user.ID, TotalAmount: 25,
		Status: models.OrderStatusPlaced,
		Items:  []models.OrderItem{{ProductID: 1, ProductTitle: "Oud", Quantity: 1, Price: 25, LineTotal: 25}},
	}
	require.NoError(t, db.Create(&order).Error)

	w := doJSON(t, r, http.MethodDelete, "/api/user", nil, cookie)
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

	// The stale session now resolves to a missing user
	w = doJSON(t, r, http.MethodGet, "/api/user", nil, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileRequiresSession(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/user", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
