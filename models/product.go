package models

import (
	"fmt"
	"time"
)

type Product struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title           string    `gorm:"not null" json:"title"`
	Category        string    `gorm:"not null;default:'Perfume'" json:"category"`
	Gender          string    `gorm:"not null" json:"gender"`
	Price           float64   `gorm:"not null" json:"price"`
	Description     string    `gorm:"not null" json:"description"`
	FragranceFamily string    `json:"fragrance_family"`
	Volume          string    `json:"volume"`
	Concentration   string    `json:"concentration"`
	Longevity       string    `json:"longevity"`
	ImageData       []byte    `json:"-"`
	ImageFilename   string    `json:"-"`
	ImageMimetype   string    `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PublicProduct is the catalog projection. The image blob is never inlined;
// clients fetch it through the image endpoint via ImageURL.
type PublicProduct struct {
	ID              uint    `json:"id"`
	Title           string  `json:"title"`
	Category        string  `json:"category"`
	Gender          string  `json:"gender"`
	Price           float64 `json:"price"`
	Description     string  `json:"description"`
	FragranceFamily string  `json:"fragrance_family"`
	Volume          string  `json:"volume"`
	Concentration   string  `json:"concentration"`
	Longevity       string  `json:"longevity"`
	ImageURL        string  `json:"image_url"`
	CreatedAt       string  `json:"created_at"`
}

// ImageURL builds the image endpoint URL with a cache-bust query so updated
// images show up without a hard refresh.
func ImageURL(productID uint) string {
	return fmt.Sprintf("/api/product-image/%d?t=%d", productID, time.Now().UnixMilli())
}

func (p *Product) Public() PublicProduct {
	return PublicProduct{
		ID:              p.ID,
		Title:           p.Title,
		Category:        p.Category,
		Gender:          p.Gender,
		Price:           p.Price,
		Description:     p.Description,
		FragranceFamily: p.FragranceFamily,
		Volume:          p.Volume,
		Concentration:   p.Concentration,
		Longevity:       p.Longevity,
		ImageURL:        ImageURL(p.ID),
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
	}
}
