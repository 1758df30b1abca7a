package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel-reservasi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func tgl(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestMemoryStore_TransactionRollback(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	k := &models.Kamar{NomorKamar: "101", TipeKamar: "Standard", Kapasitas: 2}
	require.NoError(t, s.CreateKamar(ctx, k))

	boom := errors.New("boom")
	err := s.Transaction(ctx, func(tx Store) error {
		require.NoError(t, tx.SetStatusKamar(ctx, k.ID, models.KamarDipesan))
		got, err := tx.FindKamar(ctx, k.ID)
		require.NoError(t, err)
		assert.Equal(t, models.KamarDipesan, got.StatusKamar)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.FindKamar(ctx, k.ID)
	require.NoError(t, err)
	assert.Equal(t, models.KamarTersedia, got.StatusKamar)

	require.NoError(t, s.Transaction(ctx, func(tx Store) error {
		return tx.SetStatusKamar(ctx, k.ID, models.KamarDitempati)
	}))
	got, _ = s.FindKamar(ctx, k.ID)
	assert.Equal(t, models.KamarDitempati, got.StatusKamar)
}

func TestMemoryStore_CompareAndSet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	k := &models.Kamar{NomorKamar: "101"}
	require.NoError(t, s.CreateKamar(ctx, k))

	ok, err := s.CompareAndSetStatusKamar(ctx, k.ID, models.KamarTersedia, models.KamarDipesan)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.CompareAndSetStatusKamar(ctx, k.ID, models.KamarTersedia, models.KamarDipesan)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_CountOverlapHalfOpen(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	id := uint(1)
	require.NoError(t, s.CreateReservasi(ctx, &models.Reservasi{
		IDKamar:         &id,
		TanggalCheckin:  datatypes.Date(tgl("2024-06-10")),
		TanggalCheckout: datatypes.Date(tgl("2024-06-12")),
		StatusReservasi: models.StatusDikonfirmasi,
	}))

	blocking := []string{models.StatusDikonfirmasi, models.StatusCheckIn}
	n, err := s.CountOverlap(ctx, OverlapQuery{IDKamar: 1, Checkin: tgl("2024-06-12"), Checkout: tgl("2024-06-14"), Status: blocking})
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = s.CountOverlap(ctx, OverlapQuery{IDKamar: 1, Checkin: tgl("2024-06-11"), Checkout: tgl("2024-06-13"), Status: blocking})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = s.CountOverlap(ctx, OverlapQuery{IDKamar: 1, Checkin: tgl("2024-06-11"), Checkout: tgl("2024-06-13"), Status: blocking, KecualiID: 1})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMemoryStore_NotFoundAndDuplicate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.FindReservasi(ctx, 99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = s.LatestPembayaran(ctx, 99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, s.CreateTamu(ctx, &models.Tamu{Nama: "Budi", NoTelp: "0811"}))
	err = s.CreateTamu(ctx, &models.Tamu{Nama: "Budi Lagi", NoTelp: "0811"})
	assert.True(t, IsDuplicateKey(err))
}

func TestMemoryStore_ResetPembayaranBelumLunas(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	for _, st := range []string{models.BayarLunas, models.BayarMenungguVerifikasi, models.BayarRefund} {
		require.NoError(t, s.CreatePembayaran(ctx, &models.Pembayaran{IDReservasi: 7, StatusPembayaran: st, TanggalBayar: time.Now()}))
	}

	n, err := s.ResetPembayaranBelumLunas(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	list, _ := s.ListPembayaran(ctx, 7)
	counts := map[string]int{}
	for _, p := range list {
		counts[p.StatusPembayaran]++
	}
	assert.Equal(t, 1, counts[models.BayarLunas])
	assert.Equal(t, 2, counts[models.BayarBelumLunas])
}
