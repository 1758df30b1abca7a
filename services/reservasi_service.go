package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-reservasi/models"
	"hotel-reservasi/repository"
	"hotel-reservasi/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// ReservasiService wraps the Store for booking creation, edits and reads.
// Status changes go through StatusMachine.
type ReservasiService struct {
	Store   repository.Store
	Mesin   *StatusMachine
	TamuSvc *TamuService
	Now     Clock
	Log     *zap.Logger
}

func NewReservasiService(st repository.Store, mesin *StatusMachine, tamu *TamuService, now Clock, log *zap.Logger) *ReservasiService {
	return &ReservasiService{Store: st, Mesin: mesin, TamuSvc: tamu, Now: now, Log: orNop(log)}
}

type BuatReservasiInput struct {
	IDTamu        uint
	Tamu          *DataTamu
	IDKamar       *uint
	TipeKamar     string
	Checkin       time.Time
	Checkout      time.Time
	JumlahTamu    int
	IDResepsionis *uint
	Catatan       string
}

type UbahReservasiInput struct {
	Checkin    *time.Time
	Checkout   *time.Time
	JumlahTamu *int
	IDKamar    *uint
	Catatan    *string
}

type ReservasiDetail struct {
	*models.Reservasi
	Malam        int                 `json:"jumlah_malam"`
	HargaPerMlm  int64               `json:"harga_per_malam"`
	Biaya        utils.RincianPPN    `json:"rincian_biaya"`
	TotalDibayar int64               `json:"total_dibayar"`
	Pembayaran   []models.Pembayaran `json:"pembayaran"`
}

func kodeReservasi() string {
	return "RSV-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// CreateReservation books a room (explicit IDKamar) or a room type. The new
// reservation starts in Belum Bayar; a type-only booking gets its room at
// confirmation, and is only accepted while some room of that type is free.
func (s *ReservasiService) CreateReservation(ctx context.Context, in BuatReservasiInput) (*models.Reservasi, error) {
	checkin, checkout := utils.DateOnly(in.Checkin), utils.DateOnly(in.Checkout)
	if err := ValidateDateRange(checkin, checkout, s.Now.today(), true); err != nil {
		return nil, err
	}
	if in.JumlahTamu < 1 {
		return nil, validationError("Jumlah tamu minimal 1")
	}
	if in.IDKamar == nil && strings.TrimSpace(in.TipeKamar) == "" {
		return nil, validationError("Pilih kamar atau tipe kamar")
	}

	// Resolving the guest happens outside the booking transaction: a unique
	// violation on no_telp would otherwise abort the whole Postgres transaction.
	idTamu := in.IDTamu
	switch {
	case idTamu != 0:
		if _, err := s.Store.FindTamu(ctx, idTamu); err != nil {
			return nil, notFound(err, ErrTamuNotFound)
		}
	case in.Tamu != nil:
		t, err := s.TamuSvc.FindOrCreate(ctx, *in.Tamu)
		if err != nil {
			return nil, err
		}
		idTamu = t.ID
	default:
		return nil, validationError("Data tamu wajib diisi")
	}

	r := &models.Reservasi{
		KodeReservasi:    kodeReservasi(),
		IDTamu:           idTamu,
		IDResepsionis:    in.IDResepsionis,
		TipeKamar:        strings.TrimSpace(in.TipeKamar),
		TanggalCheckin:   datatypes.Date(checkin),
		TanggalCheckout:  datatypes.Date(checkout),
		TanggalReservasi: s.Now.now(),
		JumlahTamu:       in.JumlahTamu,
		StatusReservasi:  models.StatusBelumBayar,
		Catatan:          strings.TrimSpace(in.Catatan),
	}

	err := s.Store.Transaction(ctx, func(tx repository.Store) error {
		if in.IDKamar != nil {
			k, err := tx.LockKamar(ctx, *in.IDKamar)
			if err != nil {
				return notFound(err, ErrKamarNotFound)
			}
			if outOfService(k) {
				return ErrRoomOutOfService
			}
			if in.JumlahTamu > k.Kapasitas {
				return ErrCapacityExceeded
			}
			free, err := IsRoomFree(ctx, tx, k.ID, checkin, checkout, 0)
			if err != nil {
				return err
			}
			if !free {
				return ErrRoomUnavailable
			}
			r.IDKamar = uintPtr(k.ID)
			r.TipeKamar = k.TipeKamar
		} else if err := pilihKandidat(ctx, tx, r.TipeKamar, checkin, checkout, in.JumlahTamu); err != nil {
			return err
		}

		if err := tx.CreateReservasi(ctx, r); err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("reservation created",
		zap.Uint("id_reservasi", r.ID),
		zap.String("kode_reservasi", r.KodeReservasi),
		zap.String("tipe_kamar", r.TipeKamar),
	)
	return s.find(ctx, r.ID)
}

// UpdateReservation edits dates, guest count or room of a reservation that
// has not checked in yet. Past dates are tolerated so historical records stay
// editable; the overlap check ignores the reservation's own booking.
func (s *ReservasiService) UpdateReservation(ctx context.Context, id uint, in UbahReservasiInput) (*models.Reservasi, error) {
	err := s.Store.Transaction(ctx, func(tx repository.Store) error {
		r, err := tx.LockReservasi(ctx, id)
		if err != nil {
			return notFound(err, ErrReservasiNotFound)
		}
		switch r.StatusReservasi {
		case models.StatusBelumBayar, models.StatusMenungguKonfirmasi, models.StatusDikonfirmasi:
		default:
			return &DomainError{
				Kind:    KindIllegalTransition,
				Code:    ErrIllegalTransition.Code,
				Message: fmt.Sprintf("Reservasi berstatus %s tidak dapat diubah", r.StatusReservasi),
			}
		}

		checkin, checkout := r.Checkin(), r.Checkout()
		if in.Checkin != nil {
			checkin = utils.DateOnly(*in.Checkin)
		}
		if in.Checkout != nil {
			checkout = utils.DateOnly(*in.Checkout)
		}
		if err := ValidateDateRange(checkin, checkout, s.Now.today(), false); err != nil {
			return err
		}
		if in.JumlahTamu != nil {
			if *in.JumlahTamu < 1 {
				return validationError("Jumlah tamu minimal 1")
			}
			r.JumlahTamu = *in.JumlahTamu
		}
		if in.Catatan != nil {
			r.Catatan = strings.TrimSpace(*in.Catatan)
		}

		var kamarLama *uint
		if in.IDKamar != nil && (r.IDKamar == nil || *r.IDKamar != *in.IDKamar) {
			kamarLama = r.IDKamar
			r.IDKamar = uintPtr(*in.IDKamar)
		}

		if r.IDKamar != nil {
			k, err := tx.LockKamar(ctx, *r.IDKamar)
			if err != nil {
				return notFound(err, ErrKamarNotFound)
			}
			if in.IDKamar != nil && outOfService(k) {
				return ErrRoomOutOfService
			}
			if r.JumlahTamu > k.Kapasitas {
				return ErrCapacityExceeded
			}
			free, err := IsRoomFree(ctx, tx, k.ID, checkin, checkout, r.ID)
			if err != nil {
				return err
			}
			if !free {
				return ErrRoomUnavailable
			}
			r.TipeKamar = k.TipeKamar
			if r.StatusReservasi == models.StatusDikonfirmasi {
				if _, err := tx.CompareAndSetStatusKamar(ctx, k.ID, models.KamarTersedia, models.KamarDipesan); err != nil {
					return fmt.Errorf("failed to mark room %d booked: %w", k.ID, err)
				}
			}
		} else if in.Checkin != nil || in.Checkout != nil || in.JumlahTamu != nil {
			if err := pilihKandidat(ctx, tx, r.TipeKamar, checkin, checkout, r.JumlahTamu); err != nil {
				return err
			}
		}

		r.TanggalCheckin = datatypes.Date(checkin)
		r.TanggalCheckout = datatypes.Date(checkout)
		if err := tx.SaveReservasi(ctx, r); err != nil {
			return fmt.Errorf("failed to save reservation %d: %w", r.ID, err)
		}

		if kamarLama != nil {
			return s.Mesin.Sinkron.ReconcileKamar(ctx, tx, *kamarLama, s.Now.today())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.find(ctx, id)
}

func (s *ReservasiService) find(ctx context.Context, id uint) (*models.Reservasi, error) {
	r, err := s.Store.FindReservasi(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrReservasiNotFound)
	}
	return r, nil
}

type ReservasiQuery struct {
	Status string
	IDTamu uint
}

func (s *ReservasiService) List(ctx context.Context, q ReservasiQuery) ([]models.Reservasi, error) {
	f := repository.ReservasiFilter{IDTamu: q.IDTamu, Preload: true}
	if q.Status != "" {
		f.Status = []string{q.Status}
	}
	list, err := s.Store.ListReservasi(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return list, nil
}

// Detail returns the reservation with its cost breakdown and payments.
func (s *ReservasiService) Detail(ctx context.Context, id uint) (*ReservasiDetail, error) {
	r, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	harga, err := s.hargaPerMalam(ctx, r)
	if err != nil {
		return nil, err
	}
	pembayaran, err := s.Store.ListPembayaran(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments of reservation %d: %w", id, err)
	}

	d := &ReservasiDetail{
		Reservasi:   r,
		Malam:       r.Malam(),
		HargaPerMlm: harga,
		Biaya:       utils.TambahPPN(harga * int64(r.Malam())),
		Pembayaran:  pembayaran,
	}
	for _, p := range pembayaran {
		if p.StatusPembayaran == models.BayarLunas {
			d.TotalDibayar += p.JumlahBayar
		}
	}
	return d, nil
}

// hargaPerMalam uses the bound room's price, or the cheapest room of the
// requested type while no room is bound.
func (s *ReservasiService) hargaPerMalam(ctx context.Context, r *models.Reservasi) (int64, error) {
	if r.Kamar != nil {
		return r.Kamar.Harga, nil
	}
	rooms, err := s.Store.ListKamar(ctx, repository.KamarFilter{TipeKamar: r.TipeKamar})
	if err != nil {
		return 0, fmt.Errorf("failed to price room type %s: %w", r.TipeKamar, err)
	}
	var harga int64
	for i, k := range rooms {
		if i == 0 || k.Harga < harga {
			harga = k.Harga
		}
	}
	return harga, nil
}

// Transition is the route-facing entry to the status machine.
func (s *ReservasiService) Transition(ctx context.Context, id uint, ev Event, k KonteksTransisi) (*models.Reservasi, error) {
	r, err := s.Mesin.ApplyTransition(ctx, id, ev, k)
	if err != nil {
		var de *DomainError
		if !errors.As(err, &de) {
			s.Log.Error("reservation transition failed",
				zap.Uint("id_reservasi", id), zap.String("event", string(ev)), zap.Error(err))
		}
		return nil, err
	}
	return r, nil
}

// TransitionToStatus maps a requested status onto its event.
func (s *ReservasiService) TransitionToStatus(ctx context.Context, id uint, status string, k KonteksTransisi) (*models.Reservasi, error) {
	ev, ok := EventUntukStatus(strings.TrimSpace(status))
	if !ok {
		return nil, validationError(fmt.Sprintf("Status reservasi %q tidak dikenal", status))
	}
	return s.Transition(ctx, id, ev, k)
}
