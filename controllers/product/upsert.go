package productcontroller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Areeb006/FAJR/models"
)

type productForm struct {
	Title           string
	Category        string
	Gender          string
	Price           float64
	Description     string
	FragranceFamily string
	Volume          string
	Concentration   string
	Longevity       string
}

// parseProductForm validates the shared create/update multipart fields.
// Returns a user-facing message when validation fails.
func parseProductForm(c *gin.Context) (*productForm, string) {
	form := productForm{
		Title:           strings.TrimSpace(c.PostForm("title")),
		Category:        strings.TrimSpace(c.DefaultPostForm("category", "Perfume")),
		Gender:          strings.TrimSpace(c.PostForm("gender")),
		Description:     strings.TrimSpace(c.PostForm("description")),
		FragranceFamily: strings.TrimSpace(c.PostForm("fragrance_family")),
		Volume:          strings.TrimSpace(c.PostForm("volume")),
		Concentration:   strings.TrimSpace(c.PostForm("concentration")),
		Longevity:       strings.TrimSpace(c.PostForm("longevity")),
	}
	priceStr := c.PostForm("price")

	if form.Title == "" || form.Gender == "" || priceStr == "" || form.Description == "" {
		return nil, "Missing required fields"
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		return nil, "Invalid price format"
	}
	if price <= 0 {
		return nil, "Price must be greater than 0"
	}
	form.Price = price

	if form.Category == "" {
		form.Category = "Perfume"
	}
	return &form, ""
}

// attachImageIfValid stores the uploaded image on the product. An invalid
// extension is silently ignored: the rest of the product still saves.
func attachImageIfValid(c *gin.Context, product *models.Product) {
	file, err := c.FormFile("image")
	if err != nil || file.Filename == "" || !allowedImage(file.Filename) {
		return
	}
	data, mimetype, err := readImageUpload(file)
	if err != nil {
		return
	}
	product.ImageData = data
	product.ImageFilename = file.Filename
	product.ImageMimetype = mimetype
}

// POST /api/admin/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, msg := parseProductForm(c)
		if msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
			return
		}

		product := models.Product{
			Title:           form.Title,
			Category:        form.Category,
			Gender:          form.Gender,
			Price:           form.Price,
			Description:     form.Description,
			FragranceFamily: form.FragranceFamily,
			Volume:          form.Volume,
			Concentration:   form.Concentration,
			Longevity:       form.Longevity,
		}
		attachImageIfValid(c, &product)

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"message":    "Product added successfully",
			"product_id": product.ID,
		})
	}
}

// PUT /api/admin/products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, msg := parseProductForm(c)
		if msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}

		product.Title = form.Title
		product.Category = form.Category
		product.Gender = form.Gender
		product.Price = form.Price
		product.Description = form.Description
		product.FragranceFamily = form.FragranceFamily
		product.Volume = form.Volume
		product.Concentration = form.Concentration
		product.Longevity = form.Longevity
		attachImageIfValid(c, &product)

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"message":    "Product updated successfully",
			"product_id": product.ID,
		})
	}
}
