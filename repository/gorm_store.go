package repository

import (
	"context"
	"strings"

	"hotel-reservasi/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements Store on top of *gorm.DB (MySQL or Postgres).
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) db(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx)
}

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{DB: tx})
	})
}

// ----------------------------------------------------
// kamar
// ----------------------------------------------------

func (s *GormStore) FindKamar(ctx context.Context, id uint) (*models.Kamar, error) {
	var k models.Kamar
	if err := s.db(ctx).First(&k, id).Error; err != nil {
		return nil, err
	}
	return &k, nil
}

func (s *GormStore) LockKamar(ctx context.Context, id uint) (*models.Kamar, error) {
	var k models.Kamar
	if err := s.db(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&k, id).Error; err != nil {
		return nil, err
	}
	return &k, nil
}

func (s *GormStore) ListKamar(ctx context.Context, f KamarFilter) ([]models.Kamar, error) {
	q := s.db(ctx).Model(&models.Kamar{})
	if f.TipeKamar != "" {
		q = q.Where("tipe_kamar = ?", f.TipeKamar)
	}
	if f.StatusKamar != "" {
		q = q.Where("status_kamar = ?", f.StatusKamar)
	}
	var list []models.Kamar
	if err := q.Order("nomor_kamar ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *GormStore) CreateKamar(ctx context.Context, k *models.Kamar) error {
	return translate(s.db(ctx).Create(k).Error)
}

func (s *GormStore) SaveKamar(ctx context.Context, k *models.Kamar) error {
	return translate(s.db(ctx).Save(k).Error)
}

func (s *GormStore) DeleteKamar(ctx context.Context, id uint) error {
	res := s.db(ctx).Delete(&models.Kamar{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *GormStore) SetStatusKamar(ctx context.Context, id uint, status string) error {
	return s.db(ctx).Model(&models.Kamar{}).
		Where("id = ?", id).
		Update("status_kamar", status).Error
}

func (s *GormStore) CompareAndSetStatusKamar(ctx context.Context, id uint, from, to string) (bool, error) {
	res := s.db(ctx).Model(&models.Kamar{}).
		Where("id = ? AND status_kamar = ?", id, from).
		Update("status_kamar", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// overlapScope matches reservations on one room intersecting [checkin,
// checkout). On MySQL the count is a locking read so it sees rows committed
// after the transaction's REPEATABLE READ snapshot was taken. Postgres runs
// READ COMMITTED and rejects FOR SHARE on aggregates.
func overlapScope(q OverlapQuery) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("id_kamar = ?", q.IDKamar).
			Where("tanggal_checkin < ? AND tanggal_checkout > ?", datatypes.Date(q.Checkout), datatypes.Date(q.Checkin))
		if len(q.Status) > 0 {
			tx = tx.Where("status_reservasi IN ?", q.Status)
		}
		if q.KecualiID != 0 {
			tx = tx.Where("id <> ?", q.KecualiID)
		}
		if tx.Dialector.Name() == "mysql" {
			tx = tx.Clauses(clause.Locking{Strength: "SHARE"})
		}
		return tx
	}
}

func (s *GormStore) CountOverlap(ctx context.Context, q OverlapQuery) (int64, error) {
	var n int64
	if err := s.db(ctx).Model(&models.Reservasi{}).Scopes(overlapScope(q)).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// ----------------------------------------------------
// reservasi
// ----------------------------------------------------

func (s *GormStore) FindReservasi(ctx context.Context, id uint) (*models.Reservasi, error) {
	var r models.Reservasi
	if err := s.db(ctx).Preload("Tamu").Preload("Kamar").First(&r, id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *GormStore) LockReservasi(ctx context.Context, id uint) (*models.Reservasi, error) {
	var r models.Reservasi
	if err := s.db(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&r, id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *GormStore) ListReservasi(ctx context.Context, f ReservasiFilter) ([]models.Reservasi, error) {
	q := s.db(ctx).Model(&models.Reservasi{})
	if len(f.Status) > 0 {
		q = q.Where("status_reservasi IN ?", f.Status)
	}
	if f.IDTamu != 0 {
		q = q.Where("id_tamu = ?", f.IDTamu)
	}
	if f.IDKamar != 0 {
		q = q.Where("id_kamar = ?", f.IDKamar)
	}
	if f.HanyaBerkamar {
		q = q.Where("id_kamar IS NOT NULL")
	}
	if f.Preload {
		q = q.Preload("Tamu").Preload("Kamar")
	}
	var list []models.Reservasi
	if err := q.Order("tanggal_reservasi DESC, id DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *GormStore) CreateReservasi(ctx context.Context, r *models.Reservasi) error {
	return translate(s.db(ctx).Omit(clause.Associations).Create(r).Error)
}

func (s *GormStore) SaveReservasi(ctx context.Context, r *models.Reservasi) error {
	return translate(s.db(ctx).Omit(clause.Associations).Save(r).Error)
}

// ----------------------------------------------------
// tamu
// ----------------------------------------------------

func (s *GormStore) FindTamu(ctx context.Context, id uint) (*models.Tamu, error) {
	var t models.Tamu
	if err := s.db(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *GormStore) FindTamuByTelepon(ctx context.Context, noTelp string) (*models.Tamu, error) {
	var t models.Tamu
	if err := s.db(ctx).Where("no_telp = ?", noTelp).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *GormStore) ListTamu(ctx context.Context, q string) ([]models.Tamu, error) {
	tx := s.db(ctx).Model(&models.Tamu{})
	if q = strings.ToLower(strings.TrimSpace(q)); q != "" {
		like := "%" + q + "%"
		tx = tx.Where("LOWER(nama) LIKE ? OR LOWER(email) LIKE ? OR no_telp LIKE ?", like, like, like)
	}
	var list []models.Tamu
	if err := tx.Order("nama ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *GormStore) CreateTamu(ctx context.Context, t *models.Tamu) error {
	return translate(s.db(ctx).Create(t).Error)
}

func (s *GormStore) SaveTamu(ctx context.Context, t *models.Tamu) error {
	return translate(s.db(ctx).Save(t).Error)
}

// ----------------------------------------------------
// pembayaran
// ----------------------------------------------------

func (s *GormStore) FindPembayaran(ctx context.Context, id uint) (*models.Pembayaran, error) {
	var p models.Pembayaran
	if err := s.db(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GormStore) LatestPembayaran(ctx context.Context, idReservasi uint) (*models.Pembayaran, error) {
	var p models.Pembayaran
	if err := s.db(ctx).
		Where("id_reservasi = ?", idReservasi).
		Order("tanggal_bayar DESC, id DESC").
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GormStore) ListPembayaran(ctx context.Context, idReservasi uint) ([]models.Pembayaran, error) {
	var list []models.Pembayaran
	if err := s.db(ctx).
		Where("id_reservasi = ?", idReservasi).
		Order("tanggal_bayar DESC, id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *GormStore) CreatePembayaran(ctx context.Context, p *models.Pembayaran) error {
	return translate(s.db(ctx).Create(p).Error)
}

func (s *GormStore) SavePembayaran(ctx context.Context, p *models.Pembayaran) error {
	return translate(s.db(ctx).Save(p).Error)
}

func (s *GormStore) ResetPembayaranBelumLunas(ctx context.Context, idReservasi uint) (int64, error) {
	res := s.db(ctx).Model(&models.Pembayaran{}).
		Where("id_reservasi = ? AND status_pembayaran <> ?", idReservasi, models.BayarLunas).
		Update("status_pembayaran", models.BayarBelumLunas)
	return res.RowsAffected, res.Error
}

// ----------------------------------------------------
// resepsionis
// ----------------------------------------------------

func (s *GormStore) ListResepsionis(ctx context.Context) ([]models.Resepsionis, error) {
	var list []models.Resepsionis
	if err := s.db(ctx).Order("nama ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *GormStore) CreateResepsionis(ctx context.Context, r *models.Resepsionis) error {
	return translate(s.db(ctx).Create(r).Error)
}
