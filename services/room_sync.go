package services

import (
	"context"
	"fmt"
	"time"

	"hotel-reservasi/models"
	"hotel-reservasi/repository"
	"hotel-reservasi/utils"

	"go.uber.org/zap"
)

// statusSinkron are the reservation states that can put a room in Dipesan or Ditempati.
var statusSinkron = []string{models.StatusCheckIn, models.StatusDikonfirmasi, models.StatusMenungguKonfirmasi}

// HitungStatusKamar derives the display status of one room from the
// reservations bound to it, as of the given date:
//   - Maintenance and Tidak Tersedia never change;
//   - a Check-In stay covering asOf makes the room Ditempati;
//   - a Dikonfirmasi/Menunggu Konfirmasi booking starting on or after asOf
//     makes it Dipesan, unless it is already Ditempati;
//   - a Dipesan/Ditempati room with neither goes back to Tersedia.
func HitungStatusKamar(k models.Kamar, reservasi []models.Reservasi, asOf time.Time) string {
	if outOfService(&k) {
		return k.StatusKamar
	}
	asOf = utils.DateOnly(asOf)

	var ditempati, dipesan bool
	for _, r := range reservasi {
		if r.IDKamar == nil || *r.IDKamar != k.ID {
			continue
		}
		ci, co := r.Checkin(), r.Checkout()
		switch r.StatusReservasi {
		case models.StatusCheckIn:
			if !ci.After(asOf) && !asOf.After(co) {
				ditempati = true
			}
		case models.StatusDikonfirmasi, models.StatusMenungguKonfirmasi:
			if !ci.Before(asOf) {
				dipesan = true
			}
		}
	}

	switch {
	case ditempati:
		return models.KamarDitempati
	case dipesan:
		if k.StatusKamar == models.KamarDitempati {
			return k.StatusKamar
		}
		return models.KamarDipesan
	case k.StatusKamar == models.KamarDipesan || k.StatusKamar == models.KamarDitempati:
		return models.KamarTersedia
	}
	return k.StatusKamar
}

// HitungSemuaStatusKamar runs HitungStatusKamar over a full snapshot.
func HitungSemuaStatusKamar(kamar []models.Kamar, reservasi []models.Reservasi, asOf time.Time) map[uint]string {
	perKamar := make(map[uint][]models.Reservasi, len(kamar))
	for _, r := range reservasi {
		if r.IDKamar != nil {
			perKamar[*r.IDKamar] = append(perKamar[*r.IDKamar], r)
		}
	}
	out := make(map[uint]string, len(kamar))
	for _, k := range kamar {
		out[k.ID] = HitungStatusKamar(k, perKamar[k.ID], asOf)
	}
	return out
}

type PerubahanStatusKamar struct {
	IDKamar    uint   `json:"id_kamar"`
	NomorKamar string `json:"nomor_kamar"`
	Dari       string `json:"dari"`
	Ke         string `json:"ke"`
}

type HasilSinkronisasi struct {
	Tanggal   string                 `json:"tanggal"`
	Diperiksa int                    `json:"diperiksa"`
	Perubahan []PerubahanStatusKamar `json:"perubahan"`
}

// Synchronizer repairs drift between room status and reservation state.
type Synchronizer struct {
	Store repository.Store
	Now   Clock
	Log   *zap.Logger
}

func NewSynchronizer(st repository.Store, now Clock, log *zap.Logger) *Synchronizer {
	return &Synchronizer{Store: st, Now: now, Log: orNop(log)}
}

func (s *Synchronizer) Today() time.Time { return s.Now.today() }

// ReconcileRoomStatuses recomputes every room's status as of asOf and writes
// the rooms that differ. Running it twice without reservation changes in
// between changes nothing the second time.
func (s *Synchronizer) ReconcileRoomStatuses(ctx context.Context, asOf time.Time) (*HasilSinkronisasi, error) {
	asOf = utils.DateOnly(asOf)
	hasil := &HasilSinkronisasi{Tanggal: utils.FormatTanggal(asOf), Perubahan: []PerubahanStatusKamar{}}

	err := s.Store.Transaction(ctx, func(tx repository.Store) error {
		kamar, err := tx.ListKamar(ctx, repository.KamarFilter{})
		if err != nil {
			return fmt.Errorf("failed to load rooms: %w", err)
		}
		reservasi, err := tx.ListReservasi(ctx, repository.ReservasiFilter{Status: statusSinkron, HanyaBerkamar: true})
		if err != nil {
			return fmt.Errorf("failed to load reservations: %w", err)
		}

		target := HitungSemuaStatusKamar(kamar, reservasi, asOf)
		SortByNomorKamar(kamar)
		for _, k := range kamar {
			ke := target[k.ID]
			if ke == k.StatusKamar {
				continue
			}
			changed, err := tx.CompareAndSetStatusKamar(ctx, k.ID, k.StatusKamar, ke)
			if err != nil {
				return fmt.Errorf("failed to update room %d: %w", k.ID, err)
			}
			if changed {
				hasil.Perubahan = append(hasil.Perubahan, PerubahanStatusKamar{
					IDKamar: k.ID, NomorKamar: k.NomorKamar, Dari: k.StatusKamar, Ke: ke,
				})
			}
		}
		hasil.Diperiksa = len(kamar)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("room statuses reconciled",
		zap.String("tanggal", hasil.Tanggal),
		zap.Int("diperiksa", hasil.Diperiksa),
		zap.Int("diubah", len(hasil.Perubahan)),
	)
	return hasil, nil
}

// ReconcileKamar recomputes a single room inside the caller's transaction.
func (s *Synchronizer) ReconcileKamar(ctx context.Context, st repository.Store, idKamar uint, asOf time.Time) error {
	k, err := st.FindKamar(ctx, idKamar)
	if err != nil {
		return notFound(err, ErrKamarNotFound)
	}
	reservasi, err := st.ListReservasi(ctx, repository.ReservasiFilter{Status: statusSinkron, IDKamar: idKamar})
	if err != nil {
		return fmt.Errorf("failed to load reservations of room %d: %w", idKamar, err)
	}
	ke := HitungStatusKamar(*k, reservasi, asOf)
	if ke == k.StatusKamar {
		return nil
	}
	if _, err := st.CompareAndSetStatusKamar(ctx, k.ID, k.StatusKamar, ke); err != nil {
		return fmt.Errorf("failed to update room %d: %w", idKamar, err)
	}
	return nil
}
