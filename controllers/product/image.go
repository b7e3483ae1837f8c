package productcontroller

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Areeb006/FAJR/assets"
	"github.com/Areeb006/FAJR/models"
)

var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

func allowedImage(filename string) bool {
	return allowedImageExtensions[strings.ToLower(filepath.Ext(filename))]
}

// readImageUpload pulls the uploaded file into memory and resolves its MIME
// type from the part header or the filename.
func readImageUpload(file *multipart.FileHeader) ([]byte, string, error) {
	src, err := file.Open()
	if err != nil {
		return nil, "", err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", err
	}

	mimetype := file.Header.Get("Content-Type")
	if mimetype == "" {
		mimetype = mime.TypeByExtension(strings.ToLower(filepath.Ext(file.Filename)))
	}
	if mimetype == "" {
		mimetype = "image/jpeg"
	}
	return data, mimetype, nil
}

func writeNoCache(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
}

// GET /api/product-image/:id
//
// Serves the stored blob, or the placeholder when the product has no image
// (or doesn't exist). Never an error; every response is marked uncacheable so
// image updates show immediately.
func GetProductImage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		writeNoCache(c)

		var product models.Product
		err := db.Select("image_data", "image_mimetype", "image_filename").
			First(&product, "id = ?", c.Param("id")).Error
		if err != nil || len(product.ImageData) == 0 {
			c.Data(http.StatusOK, assets.PlaceholderMimetype, assets.PlaceholderSVG)
			return
		}

		mimetype := product.ImageMimetype
		if mimetype == "" {
			mimetype = "image/jpeg"
		}
		filename := product.ImageFilename
		if filename == "" {
			filename = "product.jpg"
		}
		c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
		c.Data(http.StatusOK, mimetype, product.ImageData)
	}
}

// POST /api/admin/upload-product-image/:id
//
// Unlike product create/update, a bad upload here is an error, not silently
// dropped.
func UploadProductImage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("image")
		if err != nil || file.Filename == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No image file provided"})
			return
		}
		if !allowedImage(file.Filename) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid file type. Please upload an image."})
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

		data, mimetype, err := readImageUpload(file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to read image"})
			return
		}

		if err := db.Model(&product).Updates(map[string]interface{}{
			"image_data":     data,
			"image_filename": file.Filename,
			"image_mimetype": mimetype,
		}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to upload image"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "Image uploaded successfully",
			"image_url": models.ImageURL(product.ID),
		})
	}
}
