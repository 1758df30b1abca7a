package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"hotel-reservasi/models"
	"hotel-reservasi/repository"
	"hotel-reservasi/utils"
)

// BlockingStatuses are the reservation states that hold a room for their
// date range. Menunggu Konfirmasi does not hold a room: a booking only
// claims its room once payment is confirmed.
var BlockingStatuses = []string{models.StatusDikonfirmasi, models.StatusCheckIn}

// Overlaps reports whether the half-open ranges [a1,a2) and [b1,b2) intersect.
// Touching ranges (a2 == b1) do not overlap.
func Overlaps(a1, a2, b1, b2 time.Time) bool {
	return a1.Before(b2) && b1.Before(a2)
}

// ValidateDateRange rejects empty or inverted ranges, and past check-in dates
// when creating. Existing reservations may keep past dates on edit.
func ValidateDateRange(checkin, checkout, today time.Time, creation bool) error {
	if !checkin.Before(checkout) {
		return ErrInvalidDateRange
	}
	if creation && checkin.Before(today) {
		return ErrPastDate
	}
	return nil
}

func outOfService(k *models.Kamar) bool {
	return k.StatusKamar == models.KamarMaintenance || k.StatusKamar == models.KamarTidakTersedia
}

// IsRoomFree reports whether no blocking reservation on the room overlaps
// [checkin, checkout). kecualiID excludes one reservation, used when a
// reservation is re-checked against its own previous booking.
func IsRoomFree(ctx context.Context, st repository.Store, idKamar uint, checkin, checkout time.Time, kecualiID uint) (bool, error) {
	n, err := st.CountOverlap(ctx, repository.OverlapQuery{
		IDKamar:   idKamar,
		Checkin:   checkin,
		Checkout:  checkout,
		Status:    BlockingStatuses,
		KecualiID: kecualiID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to check overlap for room %d: %w", idKamar, err)
	}
	return n == 0, nil
}

// FindAvailableRoomsByType lists Tersedia rooms of the type that are free for
// the range, lowest room number first.
func FindAvailableRoomsByType(ctx context.Context, st repository.Store, tipe string, checkin, checkout time.Time) ([]models.Kamar, error) {
	rooms, err := st.ListKamar(ctx, repository.KamarFilter{TipeKamar: tipe, StatusKamar: models.KamarTersedia})
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms of type %s: %w", tipe, err)
	}
	SortByNomorKamar(rooms)

	out := make([]models.Kamar, 0, len(rooms))
	for _, k := range rooms {
		free, err := IsRoomFree(ctx, st, k.ID, checkin, checkout, 0)
		if err != nil {
			return nil, err
		}
		if free {
			out = append(out, k)
		}
	}
	return out, nil
}

// SortByNomorKamar orders rooms by number, numerically when both numbers
// parse ("99" before "101"), otherwise lexically.
func SortByNomorKamar(rooms []models.Kamar) {
	sort.SliceStable(rooms, func(i, j int) bool {
		return lessNomor(rooms[i].NomorKamar, rooms[j].NomorKamar)
	})
}

func lessNomor(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return a < b
}

// ----------------------------------------------------
// HTTP-facing availability query
// ----------------------------------------------------

type KetersediaanService struct {
	Store repository.Store
	Now   Clock
}

func NewKetersediaanService(st repository.Store, now Clock) *KetersediaanService {
	return &KetersediaanService{Store: st, Now: now}
}

type KetersediaanQuery struct {
	IDKamar     uint
	TipeKamar   string
	Checkin     time.Time
	Checkout    time.Time
	IDReservasi uint
}

type HasilKetersediaan struct {
	Tersedia        bool           `json:"tersedia"`
	IDKamar         uint           `json:"id_kamar,omitempty"`
	TipeKamar       string         `json:"tipe_kamar,omitempty"`
	TanggalCheckin  string         `json:"tanggal_checkin"`
	TanggalCheckout string         `json:"tanggal_checkout"`
	KamarTersedia   []models.Kamar `json:"kamar_tersedia,omitempty"`
}

// CheckAvailability answers for one room (IDKamar) or a whole type.
func (s *KetersediaanService) CheckAvailability(ctx context.Context, q KetersediaanQuery) (*HasilKetersediaan, error) {
	checkin, checkout := utils.DateOnly(q.Checkin), utils.DateOnly(q.Checkout)
	if err := ValidateDateRange(checkin, checkout, s.Now.today(), false); err != nil {
		return nil, err
	}

	hasil := &HasilKetersediaan{
		TanggalCheckin:  utils.FormatTanggal(checkin),
		TanggalCheckout: utils.FormatTanggal(checkout),
	}

	if q.IDKamar != 0 {
		k, err := s.Store.FindKamar(ctx, q.IDKamar)
		if err != nil {
			return nil, notFound(err, ErrKamarNotFound)
		}
		hasil.IDKamar = k.ID
		hasil.TipeKamar = k.TipeKamar
		if outOfService(k) {
			return hasil, nil
		}
		free, err := IsRoomFree(ctx, s.Store, k.ID, checkin, checkout, q.IDReservasi)
		if err != nil {
			return nil, err
		}
		hasil.Tersedia = free
		return hasil, nil
	}

	if q.TipeKamar == "" {
		return nil, validationError("id_kamar atau tipe_kamar wajib diisi")
	}
	rooms, err := FindAvailableRoomsByType(ctx, s.Store, q.TipeKamar, checkin, checkout)
	if err != nil {
		return nil, err
	}
	hasil.TipeKamar = q.TipeKamar
	hasil.KamarTersedia = rooms
	hasil.Tersedia = len(rooms) > 0
	return hasil, nil
}
