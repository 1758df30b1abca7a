package models

import (
	"time"
)

type Admin struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nama      string    `gorm:"column:nama;size:255" json:"nama"`
	Username  string    `gorm:"column:username;uniqueIndex;size:150" json:"username"`
	Password  string    `gorm:"column:password;size:255" json:"-"` // bcrypt hash, never returned in JSON
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Admin) TableName() string { return "admin" }

// Resepsionis handles check-in/check-out and payment verification.
type Resepsionis struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nama      string    `gorm:"column:nama;size:255" json:"nama"`
	Username  string    `gorm:"column:username;uniqueIndex;size:150" json:"username"`
	Password  string    `gorm:"column:password;size:255" json:"-"`
	Email     string    `gorm:"column:email;size:255" json:"email"`
	NoTelp    string    `gorm:"column:no_telp;size:32" json:"no_telp"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Resepsionis) TableName() string { return "resepsionis" }
