package models

import (
	"time"
)

// Pembayaran stores JumlahBayar inclusive of PPN.
type Pembayaran struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	IDReservasi uint `gorm:"column:id_reservasi;index" json:"id_reservasi"`

	JumlahBayar      int64     `gorm:"column:jumlah_bayar" json:"jumlah_bayar"`
	MetodePembayaran string    `gorm:"column:metode_pembayaran;size:32" json:"metode_pembayaran"`
	StatusPembayaran string    `gorm:"column:status_pembayaran;size:32;index" json:"status_pembayaran"`
	TanggalBayar     time.Time `gorm:"column:tanggal_bayar" json:"tanggal_bayar"`
	Catatan          string    `gorm:"column:catatan;type:text" json:"catatan,omitempty"`
	IDResepsionis    *uint     `gorm:"column:id_resepsionis" json:"id_resepsionis"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Pembayaran) TableName() string { return "pembayaran" }
