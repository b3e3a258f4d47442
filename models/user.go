package models

import "time"

type User struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	IsAdmin      bool      `gorm:"default:false" json:"is_admin"`
	Cart         Cart      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart"`
	Payments     []Payment `gorm:"foreignKey:UserID" json:"payments,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
