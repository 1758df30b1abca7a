package services

import (
	"context"
	"fmt"
	"time"

	"hotel-reservasi/models"
	"hotel-reservasi/repository"
)

// AssignRoom binds the lowest-numbered free room of the type that fits
// jumlahTamu guests. Each candidate is claimed with a compare-and-swap on its
// status (Tersedia -> Dipesan); a candidate taken by a concurrent request is
// skipped. Returns ErrNoRoomAvailable when nothing can be claimed.
func AssignRoom(ctx context.Context, st repository.Store, tipe string, checkin, checkout time.Time, jumlahTamu int) (*models.Kamar, error) {
	candidates, err := FindAvailableRoomsByType(ctx, st, tipe, checkin, checkout)
	if err != nil {
		return nil, err
	}

	for i := range candidates {
		k := candidates[i]
		if jumlahTamu > 0 && k.Kapasitas < jumlahTamu {
			continue
		}
		claimed, err := st.CompareAndSetStatusKamar(ctx, k.ID, models.KamarTersedia, models.KamarDipesan)
		if err != nil {
			return nil, fmt.Errorf("failed to claim room %d: %w", k.ID, err)
		}
		if !claimed {
			continue
		}
		k.StatusKamar = models.KamarDipesan
		return &k, nil
	}
	return nil, ErrNoRoomAvailable
}

// pilihKandidat is the non-binding variant used at booking time: it reports
// whether some room of the type could take the booking right now.
func pilihKandidat(ctx context.Context, st repository.Store, tipe string, checkin, checkout time.Time, jumlahTamu int) error {
	candidates, err := FindAvailableRoomsByType(ctx, st, tipe, checkin, checkout)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return ErrNoRoomAvailable
	}
	for _, k := range candidates {
		if k.Kapasitas >= jumlahTamu {
			return nil
		}
	}
	return ErrCapacityExceeded
}
