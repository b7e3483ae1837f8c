package addressControllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Areeb006/FAJR/middleware"
	"github.com/Areeb006/FAJR/models"
)

type AddressRequest struct {
	Title         string `json:"title"`
	Name          string `json:"name"`
	StreetAddress string `json:"street_address"`
	Landmark      string `json:"landmark"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postal_code"`
	Country       string `json:"country"`
	Phone         string `json:"phone"`
	IsDefault     bool   `json:"is_default"`
}

func (r *AddressRequest) missingField() string {
	required := []struct {
		name  string
		value string
	}{
		{"name", r.Name},
		{"street_address", r.StreetAddress},
		{"city", r.City},
		{"state", r.State},
		{"postal_code", r.PostalCode},
		{"country", r.Country},
		{"phone", r.Phone},
	}
	for _, f := range required {
		if f.value == "" {
			return f.name
		}
	}
	return ""
}

func fieldLabel(field string) string {
	words := strings.Split(field, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func addressView(a models.Address) gin.H {
	return gin.H{
		"id":             a.ID,
		"title":          a.Title,
		"first_name":     a.FirstName,
		"last_name":      a.LastName,
		"name":           a.Name(),
		"street_address": a.StreetAddress,
		"landmark":       a.Landmark,
		"city":           a.City,
		"state":          a.State,
		"postal_code":    a.PostalCode,
		"country":        a.Country,
		"phone":          a.Phone,
		"is_default":     a.IsDefault,
	}
}

// GET /api/addresses
func GetAddresses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var addresses []models.Address
		if err := db.Where("user_id = ?", middleware.UserID(c)).
			Order("is_default DESC, created_at DESC").
			Find(&addresses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}
		views := make([]gin.H, 0, len(addresses))
		for _, a := range addresses {
			views = append(views, addressView(a))
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "addresses": views})
	}
}

// GET /api/addresses/:id
func GetAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var address models.Address
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), middleware.UserID(c)).
			First(&address).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Address not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "address": addressView(address)})
	}
}

// POST /api/addresses
//
// Setting is_default clears the previous default inside the same transaction
// so concurrent writers cannot leave a user with two defaults.
func AddAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		var req AddressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request payload"})
			return
		}
		if field := req.missingField(); field != "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": fieldLabel(field) + " is required"})
			return
		}

		address := models.Address{
			UserID:        userID,
			Title:         req.Title,
			StreetAddress: req.StreetAddress,
			Landmark:      req.Landmark,
			City:          req.City,
			State:         req.State,
			PostalCode:    req.PostalCode,
			Country:       req.Country,
			Phone:         req.Phone,
			IsDefault:     req.IsDefault,
		}
		if address.Title == "" {
			address.Title = "Address"
		}
		address.SetName(req.Name)

		err := db.Transaction(func(tx *gorm.DB) error {
			if req.IsDefault {
				if err := tx.Model(&models.Address{}).Where("user_id = ?", userID).
					Update("is_default", false).Error; err != nil {
					return err
				}
			}
			return tx.Create(&address).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Address added successfully", "address_id": address.ID})
	}
}

// PUT /api/addresses/:id
func UpdateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		var address models.Address
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).
			First(&address).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Address not found"})
			return
		}

		// Absent fields keep their stored value; is_default is always taken
		// from the payload, so omitting it demotes the address.
		var req struct {
			Title         *string `json:"title"`
			Name          *string `json:"name"`
			StreetAddress *string `json:"street_address"`
			Landmark      *string `json:"landmark"`
			City          *string `json:"city"`
			State         *string `json:"state"`
			PostalCode    *string `json:"postal_code"`
			Country       *string `json:"country"`
			Phone         *string `json:"phone"`
			IsDefault     bool    `json:"is_default"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request payload"})
			return
		}

		if req.Title != nil {
			address.Title = *req.Title
		}
		if req.Name != nil {
			address.SetName(*req.Name)
		}
		if req.StreetAddress != nil {
			address.StreetAddress = *req.StreetAddress
		}
		if req.Landmark != nil {
			address.Landmark = *req.Landmark
		}
		if req.City != nil {
			address.City = *req.City
		}
		if req.State != nil {
			address.State = *req.State
		}
		if req.PostalCode != nil {
			address.PostalCode = *req.PostalCode
		}
		if req.Country != nil {
			address.Country = *req.Country
		}
		if req.Phone != nil {
			address.Phone = *req.Phone
		}
		address.IsDefault = req.IsDefault

		err := db.Transaction(func(tx *gorm.DB) error {
			if req.IsDefault {
				if err := tx.Model(&models.Address{}).
					Where("user_id = ? AND id != ?", userID, address.ID).
					Update("is_default", false).Error; err != nil {
					return err
				}
			}
			return tx.Save(&address).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Address updated successfully"})
	}
}

// DELETE /api/addresses/:id
func DeleteAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		var address models.Address
		err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&address).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Address not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}

		if err := db.Delete(&address).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Address deleted successfully"})
	}
}
