package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"hotel-reservasi/models"
	"hotel-reservasi/repository"
	"hotel-reservasi/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/datatypes"
)

var hariIni = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func tgl(s string) time.Time {
	t, err := time.Parse(utils.LayoutTanggal, s)
	if err != nil {
		panic(err)
	}
	return t
}

type fixture struct {
	ctx       context.Context
	store     *repository.MemoryStore
	sinkron   *Synchronizer
	mesin     *StatusMachine
	tamu      *TamuService
	reservasi *ReservasiService
	bayar     *PembayaranService
	kamar     *KamarService
	seq       int

	// now is what every service sees as the current time; tests move it
	// forward to reach arrival days.
	now time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := repository.NewMemoryStore()
	f := &fixture{ctx: context.Background(), store: st, now: hariIni}
	clock := Clock(func() time.Time { return f.now })
	log := zaptest.NewLogger(t)

	f.sinkron = NewSynchronizer(st, clock, log)
	f.mesin = NewStatusMachine(st, f.sinkron, clock, log)
	f.tamu = NewTamuService(st, log)
	f.reservasi = NewReservasiService(st, f.mesin, f.tamu, clock, log)
	f.bayar = NewPembayaranService(st, f.mesin, clock, log)
	f.kamar = NewKamarService(st, f.sinkron, log)
	return f
}

func (f *fixture) addKamar(t *testing.T, nomor, tipe string, kapasitas int) *models.Kamar {
	t.Helper()
	k := &models.Kamar{NomorKamar: nomor, TipeKamar: tipe, Harga: 500000, Kapasitas: kapasitas}
	require.NoError(t, f.store.CreateKamar(f.ctx, k))
	return k
}

func (f *fixture) dataTamu() *DataTamu {
	f.seq++
	return &DataTamu{Nama: fmt.Sprintf("Tamu %d", f.seq), NoTelp: fmt.Sprintf("08120000%04d", f.seq)}
}

// seed writes a reservation directly, bypassing every check.
func (f *fixture) seed(t *testing.T, idKamar *uint, tipe, ci, co, status string) *models.Reservasi {
	t.Helper()
	tamu, err := f.tamu.FindOrCreate(f.ctx, *f.dataTamu())
	require.NoError(t, err)
	r := &models.Reservasi{
		KodeReservasi:   kodeReservasi(),
		IDTamu:          tamu.ID,
		IDKamar:         idKamar,
		TipeKamar:       tipe,
		TanggalCheckin:  datatypes.Date(tgl(ci)),
		TanggalCheckout: datatypes.Date(tgl(co)),
		JumlahTamu:      1,
		StatusReservasi: status,
	}
	require.NoError(t, f.store.CreateReservasi(f.ctx, r))
	return r
}

func (f *fixture) book(t *testing.T, idKamar *uint, tipe, ci, co string, jumlah int) (*models.Reservasi, error) {
	t.Helper()
	return f.reservasi.CreateReservation(f.ctx, BuatReservasiInput{
		Tamu:       f.dataTamu(),
		IDKamar:    idKamar,
		TipeKamar:  tipe,
		Checkin:    tgl(ci),
		Checkout:   tgl(co),
		JumlahTamu: jumlah,
	})
}

func (f *fixture) bayarLunas(id uint, jumlah int64) (*PembayaranDetail, error) {
	return f.bayar.RecordPayment(f.ctx, id, CatatPembayaranInput{
		JumlahBayar:      jumlah,
		MetodePembayaran: models.MetodeTransferBank,
		StatusPembayaran: models.BayarLunas,
	})
}

func (f *fixture) statusKamar(t *testing.T, id uint) string {
	t.Helper()
	k, err := f.store.FindKamar(f.ctx, id)
	require.NoError(t, err)
	return k.StatusKamar
}

func (f *fixture) muatReservasi(t *testing.T, id uint) *models.Reservasi {
	t.Helper()
	r, err := f.store.FindReservasi(f.ctx, id)
	require.NoError(t, err)
	return r
}

func repositoryBlocking() repository.ReservasiFilter {
	return repository.ReservasiFilter{Status: BlockingStatuses, HanyaBerkamar: true}
}
