package services

import (
	"context"
	"fmt"
	"strings"

	"hotel-reservasi/models"
	"hotel-reservasi/repository"

	"go.uber.org/zap"
)

type KamarService struct {
	Store   repository.Store
	Sinkron *Synchronizer
	Log     *zap.Logger
}

func NewKamarService(st repository.Store, sinkron *Synchronizer, log *zap.Logger) *KamarService {
	return &KamarService{Store: st, Sinkron: sinkron, Log: orNop(log)}
}

type DataKamar struct {
	NomorKamar string
	TipeKamar  string
	Harga      int64
	Kapasitas  int
	Deskripsi  string
}

func (d DataKamar) validate() error {
	switch {
	case strings.TrimSpace(d.NomorKamar) == "":
		return validationError("Nomor kamar wajib diisi")
	case !models.Contains(models.TipeKamarValid, d.TipeKamar):
		return validationError(fmt.Sprintf("Tipe kamar %q tidak dikenal", d.TipeKamar))
	case d.Harga <= 0:
		return validationError("Harga kamar harus lebih dari 0")
	case d.Kapasitas < 1:
		return validationError("Kapasitas kamar minimal 1")
	}
	return nil
}

func (s *KamarService) List(ctx context.Context, f repository.KamarFilter) ([]models.Kamar, error) {
	list, err := s.Store.ListKamar(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	SortByNomorKamar(list)
	return list, nil
}

func (s *KamarService) Detail(ctx context.Context, id uint) (*models.Kamar, error) {
	k, err := s.Store.FindKamar(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrKamarNotFound)
	}
	return k, nil
}

func (s *KamarService) Create(ctx context.Context, in DataKamar) (*models.Kamar, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	k := &models.Kamar{
		NomorKamar:  strings.TrimSpace(in.NomorKamar),
		TipeKamar:   in.TipeKamar,
		Harga:       in.Harga,
		Kapasitas:   in.Kapasitas,
		StatusKamar: models.KamarTersedia,
		Deskripsi:   strings.TrimSpace(in.Deskripsi),
	}
	if err := s.Store.CreateKamar(ctx, k); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrNomorKamarDuplikat
		}
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	s.Log.Info("room created", zap.Uint("id_kamar", k.ID), zap.String("nomor_kamar", k.NomorKamar))
	return k, nil
}

// Update edits the room's descriptive fields. Status is changed through
// SetStatusManual or derived from reservations.
func (s *KamarService) Update(ctx context.Context, id uint, in DataKamar) (*models.Kamar, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var hasil *models.Kamar
	err := s.Store.Transaction(ctx, func(tx repository.Store) error {
		k, err := tx.LockKamar(ctx, id)
		if err != nil {
			return notFound(err, ErrKamarNotFound)
		}
		k.NomorKamar = strings.TrimSpace(in.NomorKamar)
		k.TipeKamar = in.TipeKamar
		k.Harga = in.Harga
		k.Kapasitas = in.Kapasitas
		k.Deskripsi = strings.TrimSpace(in.Deskripsi)
		if err := tx.SaveKamar(ctx, k); err != nil {
			if repository.IsDuplicateKey(err) {
				return ErrNomorKamarDuplikat
			}
			return fmt.Errorf("failed to update room %d: %w", id, err)
		}
		hasil = k
		return nil
	})
	if err != nil {
		return nil, err
	}
	return hasil, nil
}

// SetStatusManual takes a room out of service (Maintenance, Tidak Tersedia)
// or puts it back. Putting it back recomputes the status from reservations,
// so a room with an upcoming booking returns as Dipesan.
func (s *KamarService) SetStatusManual(ctx context.Context, id uint, status string) (*models.Kamar, error) {
	status = strings.TrimSpace(status)
	if !models.Contains([]string{models.KamarTersedia, models.KamarMaintenance, models.KamarTidakTersedia}, status) {
		return nil, validationError(fmt.Sprintf("Status kamar %q tidak dapat diatur manual", status))
	}

	err := s.Store.Transaction(ctx, func(tx repository.Store) error {
		k, err := tx.LockKamar(ctx, id)
		if err != nil {
			return notFound(err, ErrKamarNotFound)
		}
		if k.StatusKamar == models.KamarDitempati && status != models.KamarTersedia {
			return ErrKamarDitempati
		}
		if status != models.KamarTersedia {
			return tx.SetStatusKamar(ctx, id, status)
		}
		if outOfService(k) {
			if err := tx.SetStatusKamar(ctx, id, models.KamarTersedia); err != nil {
				return err
			}
		}
		return s.Sinkron.ReconcileKamar(ctx, tx, id, s.Sinkron.Today())
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("room status set", zap.Uint("id_kamar", id), zap.String("status_kamar", status))
	return s.Detail(ctx, id)
}

// Delete soft-deletes a room that no reservation still holds.
func (s *KamarService) Delete(ctx context.Context, id uint) error {
	return s.Store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.LockKamar(ctx, id); err != nil {
			return notFound(err, ErrKamarNotFound)
		}
		aktif, err := tx.ListReservasi(ctx, repository.ReservasiFilter{
			IDKamar: id,
			Status:  []string{models.StatusBelumBayar, models.StatusMenungguKonfirmasi, models.StatusDikonfirmasi, models.StatusCheckIn},
		})
		if err != nil {
			return fmt.Errorf("failed to check reservations of room %d: %w", id, err)
		}
		if len(aktif) > 0 {
			return ErrKamarMasihDipakai
		}
		if err := tx.DeleteKamar(ctx, id); err != nil {
			return notFound(err, ErrKamarNotFound)
		}
		return nil
	})
}
