package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-reservasi/models"
	"hotel-reservasi/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TamuService struct {
	Store repository.Store
	Log   *zap.Logger
}

func NewTamuService(st repository.Store, log *zap.Logger) *TamuService {
	return &TamuService{Store: st, Log: orNop(log)}
}

// DataTamu is the editable part of a guest record.
type DataTamu struct {
	Nama            string
	Email           string
	NoTelp          string
	Alamat          string
	JenisKelamin    string
	TanggalLahir    *time.Time
	Kewarganegaraan string
}

func (d DataTamu) normalize() DataTamu {
	d.Nama = strings.TrimSpace(d.Nama)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.NoTelp = strings.TrimSpace(d.NoTelp)
	d.Alamat = strings.TrimSpace(d.Alamat)
	d.JenisKelamin = strings.TrimSpace(d.JenisKelamin)
	d.Kewarganegaraan = strings.TrimSpace(d.Kewarganegaraan)
	return d
}

func (d DataTamu) apply(t *models.Tamu) {
	t.Nama = d.Nama
	t.Email = d.Email
	t.NoTelp = d.NoTelp
	t.Alamat = d.Alamat
	t.JenisKelamin = d.JenisKelamin
	t.TanggalLahir = d.TanggalLahir
	t.Kewarganegaraan = d.Kewarganegaraan
}

func (s *TamuService) List(ctx context.Context, q string) ([]models.Tamu, error) {
	list, err := s.Store.ListTamu(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}
	return list, nil
}

func (s *TamuService) Detail(ctx context.Context, id uint) (*models.Tamu, error) {
	t, err := s.Store.FindTamu(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrTamuNotFound)
	}
	return t, nil
}

func (s *TamuService) Create(ctx context.Context, in DataTamu) (*models.Tamu, error) {
	in = in.normalize()
	if in.Nama == "" || in.NoTelp == "" {
		return nil, validationError("Nama dan nomor telepon tamu wajib diisi")
	}
	t := &models.Tamu{}
	in.apply(t)
	if err := s.Store.CreateTamu(ctx, t); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrTeleponDuplikat
		}
		return nil, fmt.Errorf("failed to create guest: %w", err)
	}
	return t, nil
}

func (s *TamuService) Update(ctx context.Context, id uint, in DataTamu) (*models.Tamu, error) {
	in = in.normalize()
	if in.Nama == "" || in.NoTelp == "" {
		return nil, validationError("Nama dan nomor telepon tamu wajib diisi")
	}
	t, err := s.Store.FindTamu(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrTamuNotFound)
	}
	in.apply(t)
	if err := s.Store.SaveTamu(ctx, t); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrTeleponDuplikat
		}
		return nil, fmt.Errorf("failed to update guest %d: %w", id, err)
	}
	return t, nil
}

// FindOrCreate returns the guest registered under the phone number, creating
// one when none exists. A concurrent insert of the same number is resolved by
// reading the winner's row.
func (s *TamuService) FindOrCreate(ctx context.Context, in DataTamu) (*models.Tamu, error) {
	in = in.normalize()
	if in.NoTelp == "" {
		return nil, validationError("Nomor telepon tamu wajib diisi")
	}

	t, err := s.Store.FindTamuByTelepon(ctx, in.NoTelp)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up guest: %w", err)
	}

	t, err = s.Create(ctx, in)
	if errors.Is(err, ErrTeleponDuplikat) {
		t, err = s.Store.FindTamuByTelepon(ctx, in.NoTelp)
		if err != nil {
			return nil, fmt.Errorf("failed to look up guest: %w", err)
		}
		return t, nil
	}
	if err != nil {
		return nil, err
	}
	s.Log.Info("guest registered", zap.Uint("id_tamu", t.ID))
	return t, nil
}
