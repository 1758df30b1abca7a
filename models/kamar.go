package models

import (
	"time"

	"gorm.io/gorm"
)

type Kamar struct {
	ID uint `gorm:"primaryKey" json:"id"`

	NomorKamar  string `gorm:"column:nomor_kamar;uniqueIndex;type:varchar(50)" json:"nomor_kamar"`
	TipeKamar   string `gorm:"column:tipe_kamar;size:32;index" json:"tipe_kamar"`
	Harga       int64  `gorm:"column:harga" json:"harga"`
	Kapasitas   int    `gorm:"column:kapasitas" json:"kapasitas"`
	StatusKamar string `gorm:"column:status_kamar;size:32;default:Tersedia" json:"status_kamar"`
	Deskripsi   string `gorm:"column:deskripsi;type:text" json:"deskripsi"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Kamar) TableName() string { return "kamar" }
