package models

import (
	"time"
)

// Tamu is a hotel guest. NoTelp doubles as the natural key when a
// reservation is made for someone who is not registered yet.
type Tamu struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	Nama            string     `gorm:"column:nama;size:255" json:"nama"`
	Email           string     `gorm:"column:email;size:255" json:"email"`
	NoTelp          string     `gorm:"column:no_telp;size:32;uniqueIndex" json:"no_telp"`
	Alamat          string     `gorm:"column:alamat;type:text" json:"alamat"`
	JenisKelamin    string     `gorm:"column:jenis_kelamin;size:16" json:"jenis_kelamin,omitempty"`
	TanggalLahir    *time.Time `gorm:"column:tanggal_lahir" json:"tanggal_lahir,omitempty"`
	Kewarganegaraan string     `gorm:"column:kewarganegaraan;size:64" json:"kewarganegaraan,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Tamu) TableName() string { return "tamu" }
