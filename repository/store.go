// Package repository is the persistence gateway for the six hotel tables.
// Lookups that find nothing return gorm.ErrRecordNotFound from every
// implementation so callers can use a single errors.Is check.
package repository

import (
	"context"
	"time"

	"hotel-reservasi/models"
)

type KamarFilter struct {
	TipeKamar   string
	StatusKamar string
}

type ReservasiFilter struct {
	Status  []string
	IDTamu  uint
	IDKamar uint
	// HanyaBerkamar limits the result to reservations that already have a room bound.
	HanyaBerkamar bool
	Preload       bool
}

// OverlapQuery counts reservations on one room whose [checkin, checkout)
// intersects the given half-open range.
type OverlapQuery struct {
	IDKamar   uint
	Checkin   time.Time
	Checkout  time.Time
	Status    []string
	KecualiID uint
}

type Store interface {
	// Transaction runs fn against a transactional view of the store. A non-nil
	// error from fn rolls back every write made through tx.
	Transaction(ctx context.Context, fn func(tx Store) error) error

	FindKamar(ctx context.Context, id uint) (*models.Kamar, error)
	LockKamar(ctx context.Context, id uint) (*models.Kamar, error)
	ListKamar(ctx context.Context, f KamarFilter) ([]models.Kamar, error)
	CreateKamar(ctx context.Context, k *models.Kamar) error
	SaveKamar(ctx context.Context, k *models.Kamar) error
	DeleteKamar(ctx context.Context, id uint) error
	SetStatusKamar(ctx context.Context, id uint, status string) error
	// CompareAndSetStatusKamar updates the room status only when it still equals
	// from, reporting whether the row was changed.
	CompareAndSetStatusKamar(ctx context.Context, id uint, from, to string) (bool, error)

	CountOverlap(ctx context.Context, q OverlapQuery) (int64, error)

	FindReservasi(ctx context.Context, id uint) (*models.Reservasi, error)
	LockReservasi(ctx context.Context, id uint) (*models.Reservasi, error)
	ListReservasi(ctx context.Context, f ReservasiFilter) ([]models.Reservasi, error)
	CreateReservasi(ctx context.Context, r *models.Reservasi) error
	SaveReservasi(ctx context.Context, r *models.Reservasi) error

	FindTamu(ctx context.Context, id uint) (*models.Tamu, error)
	FindTamuByTelepon(ctx context.Context, noTelp string) (*models.Tamu, error)
	ListTamu(ctx context.Context, q string) ([]models.Tamu, error)
	CreateTamu(ctx context.Context, t *models.Tamu) error
	SaveTamu(ctx context.Context, t *models.Tamu) error

	FindPembayaran(ctx context.Context, id uint) (*models.Pembayaran, error)
	LatestPembayaran(ctx context.Context, idReservasi uint) (*models.Pembayaran, error)
	ListPembayaran(ctx context.Context, idReservasi uint) ([]models.Pembayaran, error)
	CreatePembayaran(ctx context.Context, p *models.Pembayaran) error
	SavePembayaran(ctx context.Context, p *models.Pembayaran) error
	// ResetPembayaranBelumLunas forces every non-Lunas payment of a reservation back to Belum Lunas.
	ResetPembayaranBelumLunas(ctx context.Context, idReservasi uint) (int64, error)

	ListResepsionis(ctx context.Context) ([]models.Resepsionis, error)
	CreateResepsionis(ctx context.Context, r *models.Resepsionis) error
}

// StatistikReader produces the admin dashboard aggregates.
type StatistikReader interface {
	Statistik(ctx context.Context) (models.Statistik, error)
}
