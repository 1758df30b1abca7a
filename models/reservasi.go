package models

import (
	"time"

	"gorm.io/datatypes"
)

type Reservasi struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	KodeReservasi string `gorm:"column:kode_reservasi;size:64;uniqueIndex" json:"kode_reservasi"`

	IDTamu        uint  `gorm:"column:id_tamu;index" json:"id_tamu"`
	IDKamar       *uint `gorm:"column:id_kamar;index" json:"id_kamar"`
	IDResepsionis *uint `gorm:"column:id_resepsionis" json:"id_resepsionis"`

	// TipeKamar is the requested type; the concrete room may be bound
	// only at confirmation time.
	TipeKamar string `gorm:"column:tipe_kamar;size:32" json:"tipe_kamar"`

	TanggalCheckin   datatypes.Date `gorm:"column:tanggal_checkin;index" json:"tanggal_checkin"`
	TanggalCheckout  datatypes.Date `gorm:"column:tanggal_checkout;index" json:"tanggal_checkout"`
	TanggalReservasi time.Time      `gorm:"column:tanggal_reservasi;autoCreateTime" json:"tanggal_reservasi"`

	JumlahTamu      int    `gorm:"column:jumlah_tamu;default:1" json:"jumlah_tamu"`
	StatusReservasi string `gorm:"column:status_reservasi;size:32;index" json:"status_reservasi"`
	Catatan         string `gorm:"column:catatan;type:text" json:"catatan,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`

	Tamu  *Tamu  `gorm:"foreignKey:IDTamu;references:ID" json:"tamu,omitempty"`
	Kamar *Kamar `gorm:"foreignKey:IDKamar;references:ID" json:"kamar,omitempty"`
}

func (Reservasi) TableName() string { return "reservasi" }

func (r Reservasi) Checkin() time.Time  { return time.Time(r.TanggalCheckin) }
func (r Reservasi) Checkout() time.Time { return time.Time(r.TanggalCheckout) }

// Malam is the number of billed nights; the checkout day is not billed.
func (r Reservasi) Malam() int {
	return int(r.Checkout().Sub(r.Checkin()).Hours() / 24)
}
