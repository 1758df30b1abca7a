package services

import (
	"context"
	"errors"
	"fmt"

	"hotel-reservasi/models"
	"hotel-reservasi/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Event string

const (
	EventMenungguKonfirmasi Event = "menunggu_konfirmasi"
	EventKonfirmasi         Event = "konfirmasi"
	EventCheckIn            Event = "checkin"
	EventCheckOut           Event = "checkout"
	EventBatal              Event = "batal"
)

type transisi struct {
	dari []string
	ke   string
}

var tabelTransisi = map[Event]transisi{
	EventMenungguKonfirmasi: {dari: []string{models.StatusBelumBayar}, ke: models.StatusMenungguKonfirmasi},
	EventKonfirmasi:         {dari: []string{models.StatusBelumBayar, models.StatusMenungguKonfirmasi}, ke: models.StatusDikonfirmasi},
	EventCheckIn:            {dari: []string{models.StatusDikonfirmasi}, ke: models.StatusCheckIn},
	EventCheckOut:           {dari: []string{models.StatusCheckIn}, ke: models.StatusCheckOut},
	EventBatal:              {dari: []string{models.StatusBelumBayar, models.StatusMenungguKonfirmasi, models.StatusDikonfirmasi}, ke: models.StatusDibatalkan},
}

// CanTransition reports whether ev is legal from the given reservation status.
func CanTransition(from string, ev Event) bool {
	t, ok := tabelTransisi[ev]
	return ok && models.Contains(t.dari, from)
}

// EventUntukStatus maps a requested target status onto the event that reaches it.
func EventUntukStatus(status string) (Event, bool) {
	for ev, t := range tabelTransisi {
		if t.ke == status {
			return ev, true
		}
	}
	return "", false
}

// KonteksTransisi carries who triggered a transition.
type KonteksTransisi struct {
	IDResepsionis *uint
}

// StatusMachine is the only writer of reservation status and of the room
// status changes that accompany it.
type StatusMachine struct {
	Store   repository.Store
	Sinkron *Synchronizer
	Now     Clock
	Log     *zap.Logger
}

func NewStatusMachine(st repository.Store, sinkron *Synchronizer, now Clock, log *zap.Logger) *StatusMachine {
	return &StatusMachine{Store: st, Sinkron: sinkron, Now: now, Log: orNop(log)}
}

// ApplyTransition locks the reservation and applies ev with its side effects
// in one transaction. Any failure leaves the reservation and rooms untouched.
func (m *StatusMachine) ApplyTransition(ctx context.Context, idReservasi uint, ev Event, k KonteksTransisi) (*models.Reservasi, error) {
	if _, ok := tabelTransisi[ev]; !ok {
		return nil, validationError(fmt.Sprintf("Aksi %q tidak dikenal", ev))
	}

	err := m.Store.Transaction(ctx, func(tx repository.Store) error {
		r, err := tx.LockReservasi(ctx, idReservasi)
		if err != nil {
			return notFound(err, ErrReservasiNotFound)
		}
		return m.terapkan(ctx, tx, r, ev, k, false)
	})
	if err != nil {
		return nil, err
	}

	m.Log.Info("reservation transition applied",
		zap.Uint("id_reservasi", idReservasi),
		zap.String("event", string(ev)),
	)
	r, err := m.Store.FindReservasi(ctx, idReservasi)
	if err != nil {
		return nil, notFound(err, ErrReservasiNotFound)
	}
	return r, nil
}

// terapkan runs inside the caller's transaction. buktiLunas is set when the
// caller itself holds a payment just marked Lunas, which satisfies the
// confirmation guard without looking at the latest payment row.
func (m *StatusMachine) terapkan(ctx context.Context, tx repository.Store, r *models.Reservasi, ev Event, k KonteksTransisi, buktiLunas bool) error {
	t := tabelTransisi[ev]
	if !models.Contains(t.dari, r.StatusReservasi) {
		return illegalTransition(r.StatusReservasi, t.ke)
	}

	switch ev {
	case EventKonfirmasi:
		if !buktiLunas {
			if err := cekPembayaranLunas(ctx, tx, r.ID); err != nil {
				return err
			}
		}
		if err := m.ikatKamar(ctx, tx, r); err != nil {
			return err
		}

	case EventCheckIn:
		if r.IDKamar == nil {
			return ErrRoomNotBound
		}
		if r.Checkin().After(m.Now.today()) {
			return ErrCheckinTerlaluAwal
		}
		kamar, err := tx.LockKamar(ctx, *r.IDKamar)
		if err != nil {
			return notFound(err, ErrKamarNotFound)
		}
		if outOfService(kamar) {
			return ErrRoomOutOfService
		}
		if err := tx.SetStatusKamar(ctx, kamar.ID, models.KamarDitempati); err != nil {
			return fmt.Errorf("failed to mark room %d occupied: %w", *r.IDKamar, err)
		}

	case EventBatal:
		if _, err := tx.ResetPembayaranBelumLunas(ctx, r.ID); err != nil {
			return fmt.Errorf("failed to reset payments of reservation %d: %w", r.ID, err)
		}
	}

	r.StatusReservasi = t.ke
	if k.IDResepsionis != nil {
		r.IDResepsionis = k.IDResepsionis
	}
	if err := tx.SaveReservasi(ctx, r); err != nil {
		return fmt.Errorf("failed to save reservation %d: %w", r.ID, err)
	}

	// Releasing happens after the status is saved so the recomputation no
	// longer sees this reservation as active.
	if (ev == EventCheckOut || ev == EventBatal) && r.IDKamar != nil {
		if err := m.Sinkron.ReconcileKamar(ctx, tx, *r.IDKamar, m.Now.today()); err != nil {
			return err
		}
	}
	return nil
}

// cekPembayaranLunas is the confirmation guard: the latest payment must be Lunas.
func cekPembayaranLunas(ctx context.Context, st repository.Store, idReservasi uint) error {
	p, err := st.LatestPembayaran(ctx, idReservasi)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPaymentAbsent
	}
	if err != nil {
		return fmt.Errorf("failed to load payment of reservation %d: %w", idReservasi, err)
	}
	switch p.StatusPembayaran {
	case models.BayarLunas:
		return nil
	case models.BayarMenungguVerifikasi:
		return ErrPaymentPending
	default:
		return ErrPaymentUnpaid
	}
}

// ikatKamar makes sure a confirmed reservation holds a concrete room: an
// explicitly chosen room is re-checked under a row lock, a type-only booking
// gets one from AssignRoom.
func (m *StatusMachine) ikatKamar(ctx context.Context, tx repository.Store, r *models.Reservasi) error {
	checkin, checkout := r.Checkin(), r.Checkout()

	if r.IDKamar == nil {
		k, err := AssignRoom(ctx, tx, r.TipeKamar, checkin, checkout, r.JumlahTamu)
		if err != nil {
			return err
		}
		r.IDKamar = uintPtr(k.ID)
		return nil
	}

	k, err := tx.LockKamar(ctx, *r.IDKamar)
	if err != nil {
		return notFound(err, ErrKamarNotFound)
	}
	if outOfService(k) {
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
	// A room occupied or booked for other dates keeps its current status.
	if _, err := tx.CompareAndSetStatusKamar(ctx, k.ID, models.KamarTersedia, models.KamarDipesan); err != nil {
		return fmt.Errorf("failed to mark room %d booked: %w", k.ID, err)
	}
	return nil
}
