package models

import "time"

type User struct {
	ID                 uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName          string `gorm:"not null" json:"first_name"`
	LastName           string `gorm:"not null" json:"last_name"`
	Email              string `gorm:"unique;not null" json:"email"`
	Phone              string `json:"phone"`
	Gender             string `json:"gender"`
	DateOfBirth        string `json:"date_of_birth"`
	PreferredFragrance string `json:"preferred_fragrance"`
	// PasswordHash is a bcrypt digest. Empty means the row still carries a
	// plaintext LegacyPassword awaiting migration.
	PasswordHash   string    `json:"-"`
	LegacyPassword string    `gorm:"column:legacy_password" json:"-"`
	Addresses      []Address `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Orders         []Order   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// FullName is the display name carried in session claims.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// PublicUser is the single typed projection returned by every endpoint that
// exposes a user.
type PublicUser struct {
	ID                 uint   `json:"id"`
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	Gender             string `json:"gender"`
	DateOfBirth        string `json:"date_of_birth"`
	PreferredFragrance string `json:"preferred_fragrance"`
	CreatedAt          string `json:"created_at"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:                 u.ID,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Email:              u.Email,
		Phone:              u.Phone,
		Gender:             u.Gender,
		DateOfBirth:        u.DateOfBirth,
		PreferredFragrance: u.PreferredFragrance,
		CreatedAt:          u.CreatedAt.Format(time.RFC3339),
	}
}
