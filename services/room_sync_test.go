package services

import (
	"testing"
	"time"

	"hotel-reservasi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestHitungStatusKamar(t *testing.T) {
	asOf := tgl("2024-06-10")
	id := uint(1)
	res := func(status, ci, co string) models.Reservasi {
		return models.Reservasi{
			IDKamar:         &id,
			StatusReservasi: status,
			TanggalCheckin:  datatypes.Date(tgl(ci)),
			TanggalCheckout: datatypes.Date(tgl(co)),
		}
	}

	cases := []struct {
		name      string
		status    string
		reservasi []models.Reservasi
		want      string
	}{
		{"idle room stays available", models.KamarTersedia, nil, models.KamarTersedia},
		{"stale booked resets", models.KamarDipesan, nil, models.KamarTersedia},
		{"stale occupied resets", models.KamarDitempati, nil, models.KamarTersedia},
		{"stay in progress", models.KamarTersedia, []models.Reservasi{res(models.StatusCheckIn, "2024-06-09", "2024-06-12")}, models.KamarDitempati},
		{"checkout day still occupied", models.KamarTersedia, []models.Reservasi{res(models.StatusCheckIn, "2024-06-08", "2024-06-10")}, models.KamarDitempati},
		{"future confirmed booking", models.KamarTersedia, []models.Reservasi{res(models.StatusDikonfirmasi, "2024-06-15", "2024-06-17")}, models.KamarDipesan},
		{"future pending booking", models.KamarTersedia, []models.Reservasi{res(models.StatusMenungguKonfirmasi, "2024-06-15", "2024-06-17")}, models.KamarDipesan},
		{"arrival today", models.KamarTersedia, []models.Reservasi{res(models.StatusDikonfirmasi, "2024-06-10", "2024-06-12")}, models.KamarDipesan},
		{"past confirmed booking ignored", models.KamarDipesan, []models.Reservasi{res(models.StatusDikonfirmasi, "2024-06-01", "2024-06-03")}, models.KamarTersedia},
		{"occupied beats booked", models.KamarTersedia, []models.Reservasi{
			res(models.StatusDikonfirmasi, "2024-06-15", "2024-06-17"),
			res(models.StatusCheckIn, "2024-06-09", "2024-06-12"),
		}, models.KamarDitempati},
		{"maintenance is sticky", models.KamarMaintenance, []models.Reservasi{res(models.StatusCheckIn, "2024-06-09", "2024-06-12")}, models.KamarMaintenance},
		{"unavailable is sticky", models.KamarTidakTersedia, []models.Reservasi{res(models.StatusDikonfirmasi, "2024-06-15", "2024-06-17")}, models.KamarTidakTersedia},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			k := models.Kamar{ID: id, StatusKamar: c.status}
			assert.Equal(t, c.want, HitungStatusKamar(k, c.reservasi, asOf))
		})
	}
}

func TestReconcileRoomStatuses_RepairsDriftOnce(t *testing.T) {
	f := newFixture(t)
	stale := f.addKamar(t, "101", "Standard", 2)
	tinggal := f.addKamar(t, "102", "Standard", 2)
	pesan := f.addKamar(t, "103", "Standard", 2)
	rusak := f.addKamar(t, "104", "Standard", 2)
	idle := f.addKamar(t, "105", "Standard", 2)

	require.NoError(t, f.store.SetStatusKamar(f.ctx, stale.ID, models.KamarDitempati))
	require.NoError(t, f.store.SetStatusKamar(f.ctx, rusak.ID, models.KamarMaintenance))
	f.seed(t, &tinggal.ID, "Standard", "2024-05-30", "2024-06-03", models.StatusCheckIn)
	f.seed(t, &pesan.ID, "Standard", "2024-06-05", "2024-06-07", models.StatusDikonfirmasi)
	f.seed(t, &rusak.ID, "Standard", "2024-06-05", "2024-06-07", models.StatusDikonfirmasi)

	asOf := f.sinkron.Today()
	hasil, err := f.sinkron.ReconcileRoomStatuses(f.ctx, asOf)
	require.NoError(t, err)
	assert.Equal(t, 5, hasil.Diperiksa)
	assert.Len(t, hasil.Perubahan, 3)
	assert.Equal(t, "2024-06-01", hasil.Tanggal)

	want := map[uint]string{
		stale.ID:   models.KamarTersedia,
		tinggal.ID: models.KamarDitempati,
		pesan.ID:   models.KamarDipesan,
		rusak.ID:   models.KamarMaintenance,
		idle.ID:    models.KamarTersedia,
	}
	for id, status := range want {
		assert.Equal(t, status, f.statusKamar(t, id), "room %d", id)
	}

	hasil, err = f.sinkron.ReconcileRoomStatuses(f.ctx, asOf)
	require.NoError(t, err)
	assert.Empty(t, hasil.Perubahan)
	for id, status := range want {
		assert.Equal(t, status, f.statusKamar(t, id), "room %d", id)
	}
}

func TestReconcileRoomStatuses_AfterStayEnds(t *testing.T) {
	f := newFixture(t)
	k := f.addKamar(t, "101", "Standard", 2)
	f.seed(t, &k.ID, "Standard", "2024-05-30", "2024-06-03", models.StatusCheckIn)

	_, err := f.sinkron.ReconcileRoomStatuses(f.ctx, f.sinkron.Today())
	require.NoError(t, err)
	assert.Equal(t, models.KamarDitempati, f.statusKamar(t, k.ID))

	// Guest overstayed without checking out; the date-based view frees the room.
	_, err = f.sinkron.ReconcileRoomStatuses(f.ctx, hariIni.Add(72*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, models.KamarTersedia, f.statusKamar(t, k.ID))
}

func TestJadwalkanSinkronisasi(t *testing.T) {
	f := newFixture(t)

	c, err := JadwalkanSinkronisasi("@every 1h", f.sinkron, nil)
	require.NoError(t, err)
	require.Len(t, c.Entries(), 1)
	<-c.Stop().Done()

	_, err = JadwalkanSinkronisasi("not a schedule", f.sinkron, nil)
	assert.Error(t, err)
}
