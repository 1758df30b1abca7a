package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotel-reservasi/controllers"
	"hotel-reservasi/models"
	"hotel-reservasi/repository"
	"hotel-reservasi/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var hariIni = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

type testServer struct {
	router *gin.Engine
	store  *repository.MemoryStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := repository.NewMemoryStore()
	clock := services.Clock(func() time.Time { return hariIni })
	log := zaptest.NewLogger(t)

	sinkron := services.NewSynchronizer(st, clock, log)
	mesin := services.NewStatusMachine(st, sinkron, clock, log)
	tamu := services.NewTamuService(st, log)
	reservasi := services.NewReservasiService(st, mesin, tamu, clock, log)
	bayar := services.NewPembayaranService(st, mesin, clock, log)
	kamar := services.NewKamarService(st, sinkron, log)

	r := SetupRouter(Controllers{
		Kamar:      controllers.NewKamarController(kamar, services.NewKetersediaanService(st, clock), sinkron, log),
		Tamu:       controllers.NewTamuController(tamu, log),
		Reservasi:  controllers.NewReservasiController(reservasi, bayar, log),
		Pembayaran: controllers.NewPembayaranController(bayar, log),
		Admin:      controllers.NewAdminController(services.NewResepsionisService(st), services.NewStatistikService(st), log),
	}, "", log)
	return &testServer{router: r, store: st}
}

type respon struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *testServer) do(t *testing.T, method, path string, body any) (int, respon) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var out respon
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w.Code, out
}

func (s *testServer) addKamar(t *testing.T, nomor, tipe string, kapasitas int) models.Kamar {
	t.Helper()
	code, res := s.do(t, http.MethodPost, "/api/kamar", gin.H{
		"nomor_kamar": nomor,
		"tipe_kamar":  tipe,
		"harga":       500000,
		"kapasitas":   kapasitas,
	})
	require.Equal(t, http.StatusCreated, code, res.Error.Message)
	var k models.Kamar
	require.NoError(t, json.Unmarshal(res.Data, &k))
	return k
}

func reservasiBody(tipe string, ci, co string, jumlah int) gin.H {
	return gin.H{
		"tamu":             gin.H{"nama": "Budi Santoso", "no_telp": "081234567890"},
		"tipe_kamar":       tipe,
		"tanggal_checkin":  ci,
		"tanggal_checkout": co,
		"jumlah_tamu":      jumlah,
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestKamar_CreateAndValidation(t *testing.T) {
	s := newTestServer(t)
	k := s.addKamar(t, "101", "Standard", 2)
	assert.Equal(t, models.KamarTersedia, k.StatusKamar)

	code, res := s.do(t, http.MethodPost, "/api/kamar", gin.H{
		"nomor_kamar": "101", "tipe_kamar": "Standard", "harga": 400000, "kapasitas": 2,
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "error.duplicateRoomNumber", res.Error.Code)

	code, res = s.do(t, http.MethodPost, "/api/kamar", gin.H{
		"nomor_kamar": "102", "tipe_kamar": "Penthouse", "harga": 400000, "kapasitas": 2,
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "error.invalidPayload", res.Error.Code)
	assert.False(t, res.Success)

	code, res = s.do(t, http.MethodGet, "/api/kamar/abc", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "error.invalidId", res.Error.Code)

	code, res = s.do(t, http.MethodGet, "/api/kamar/999", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "error.roomNotFound", res.Error.Code)
}

func TestKamar_ManualStatus(t *testing.T) {
	s := newTestServer(t)
	k := s.addKamar(t, "101", "Standard", 2)

	code, res := s.do(t, http.MethodPatch, fmt.Sprintf("/api/kamar/%d/status", k.ID), gin.H{"status_kamar": models.KamarMaintenance})
	require.Equal(t, http.StatusOK, code, res.Error.Message)

	code, res = s.do(t, http.MethodGet,
		fmt.Sprintf("/api/kamar/ketersediaan?id_kamar=%d&tanggal_checkin=2024-06-10&tanggal_checkout=2024-06-12", k.ID), nil)
	require.Equal(t, http.StatusOK, code)
	var hasil services.HasilKetersediaan
	require.NoError(t, json.Unmarshal(res.Data, &hasil))
	assert.False(t, hasil.Tersedia)

	code, res = s.do(t, http.MethodPatch, fmt.Sprintf("/api/kamar/%d/status", k.ID), gin.H{"status_kamar": models.KamarDipesan})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "error.invalidPayload", res.Error.Code)
}

func TestReservasi_CreatePayConfirm(t *testing.T) {
	s := newTestServer(t)
	k := s.addKamar(t, "301", "Deluxe", 2)

	code, res := s.do(t, http.MethodGet,
		"/api/kamar/ketersediaan?tipe_kamar=Deluxe&tanggal_checkin=2024-06-10&tanggal_checkout=2024-06-12", nil)
	require.Equal(t, http.StatusOK, code)
	var hasil services.HasilKetersediaan
	require.NoError(t, json.Unmarshal(res.Data, &hasil))
	assert.True(t, hasil.Tersedia)

	code, res = s.do(t, http.MethodPost, "/api/reservasi", reservasiBody("Deluxe", "2024-06-10", "2024-06-12", 2))
	require.Equal(t, http.StatusCreated, code, res.Error.Message)
	var r models.Reservasi
	require.NoError(t, json.Unmarshal(res.Data, &r))
	assert.Equal(t, models.StatusBelumBayar, r.StatusReservasi)
	assert.Nil(t, r.IDKamar)
	assert.Regexp(t, `^RSV-[0-9A-F]{8}$`, r.KodeReservasi)

	// confirming without any payment is refused
	code, res = s.do(t, http.MethodPost, fmt.Sprintf("/api/reservasi/%d/konfirmasi", r.ID), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "error.paymentAbsent", res.Error.Code)

	code, res = s.do(t, http.MethodPost, fmt.Sprintf("/api/reservasi/%d/pembayaran", r.ID), gin.H{
		"jumlah_bayar":      1100000,
		"metode_pembayaran": models.MetodeTransferBank,
		"status_pembayaran": models.BayarLunas,
	})
	require.Equal(t, http.StatusCreated, code, res.Error.Message)
	var p services.PembayaranDetail
	require.NoError(t, json.Unmarshal(res.Data, &p))
	assert.Equal(t, int64(1000000), p.Rincian.Subtotal)
	assert.Equal(t, int64(100000), p.Rincian.PPN)

	code, res = s.do(t, http.MethodGet, fmt.Sprintf("/api/reservasi/%d", r.ID), nil)
	require.Equal(t, http.StatusOK, code)
	var d struct {
		StatusReservasi string `json:"status_reservasi"`
		IDKamar         *uint  `json:"id_kamar"`
		Malam           int    `json:"jumlah_malam"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &d))
	assert.Equal(t, models.StatusDikonfirmasi, d.StatusReservasi)
	require.NotNil(t, d.IDKamar)
	assert.Equal(t, k.ID, *d.IDKamar)
	assert.Equal(t, 2, d.Malam)

	kamar, err := s.store.FindKamar(t.Context(), k.ID)
	require.NoError(t, err)
	assert.Equal(t, models.KamarDipesan, kamar.StatusKamar)

	// a second Deluxe booking for the same nights has nowhere to go
	code, res = s.do(t, http.MethodPost, "/api/reservasi", reservasiBody("Deluxe", "2024-06-11", "2024-06-13", 1))
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "error.noRoomAvailable", res.Error.Code)

	code, res = s.do(t, http.MethodPost, fmt.Sprintf("/api/reservasi/%d/checkout", r.ID), nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "error.illegalTransition", res.Error.Code)

	// arrival is 06-10, the clock says 06-01
	code, res = s.do(t, http.MethodPost, fmt.Sprintf("/api/reservasi/%d/checkin", r.ID), nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "error.checkinTooEarly", res.Error.Code)

	code, res = s.do(t, http.MethodPost, fmt.Sprintf("/api/reservasi/%d/batal", r.ID), gin.H{})
	require.Equal(t, http.StatusOK, code, res.Error.Message)
	kamar, err = s.store.FindKamar(t.Context(), k.ID)
	require.NoError(t, err)
	assert.Equal(t, models.KamarTersedia, kamar.StatusKamar)
}

func TestReservasi_Rejections(t *testing.T) {
	s := newTestServer(t)
	k := s.addKamar(t, "101", "Standard", 2)

	code, res := s.do(t, http.MethodPost, "/api/reservasi", reservasiBody("Standard", "2024-05-20", "2024-05-22", 1))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "error.pastDate", res.Error.Code)

	code, res = s.do(t, http.MethodPost, "/api/reservasi", reservasiBody("Standard", "2024-06-12", "2024-06-10", 1))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "error.invalidDateRange", res.Error.Code)

	code, res = s.do(t, http.MethodPost, "/api/reservasi", reservasiBody("Standard", "12/06/2024", "2024-06-14", 1))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "error.invalidDate", res.Error.Code)

	body := reservasiBody("", "2024-06-10", "2024-06-12", 3)
	body["id_kamar"] = k.ID
	code, res = s.do(t, http.MethodPost, "/api/reservasi", body)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "error.capacityExceeded", res.Error.Code)

	code, res = s.do(t, http.MethodGet, "/api/reservasi/42", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "error.reservationNotFound", res.Error.Code)

	code, res = s.do(t, http.MethodPut, "/api/reservasi/42/status", gin.H{"status_reservasi": "Hilang"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestReservasi_ExplicitRoomOverlap(t *testing.T) {
	s := newTestServer(t)
	k := s.addKamar(t, "101", "Standard", 2)

	body := reservasiBody("", "2024-06-10", "2024-06-12", 1)
	body["id_kamar"] = k.ID
	code, res := s.do(t, http.MethodPost, "/api/reservasi", body)
	require.Equal(t, http.StatusCreated, code, res.Error.Message)
	var r models.Reservasi
	require.NoError(t, json.Unmarshal(res.Data, &r))

	code, res = s.do(t, http.MethodPost, fmt.Sprintf("/api/reservasi/%d/pembayaran", r.ID), gin.H{
		"jumlah_bayar": 1100000, "metode_pembayaran": models.MetodeTunai,
	})
	require.Equal(t, http.StatusCreated, code, res.Error.Message)
	var p services.PembayaranDetail
	require.NoError(t, json.Unmarshal(res.Data, &p))
	assert.Equal(t, models.BayarMenungguVerifikasi, p.StatusPembayaran)

	code, res = s.do(t, http.MethodPut, fmt.Sprintf("/api/pembayaran/%d/verifikasi", p.ID), gin.H{"status_pembayaran": models.BayarLunas})
	require.Equal(t, http.StatusOK, code, res.Error.Message)

	// touching ranges are fine, an overlapping one is not
	body = reservasiBody("", "2024-06-12", "2024-06-14", 1)
	body["id_kamar"] = k.ID
	code, res = s.do(t, http.MethodPost, "/api/reservasi", body)
	assert.Equal(t, http.StatusCreated, code, res.Error.Message)

	body = reservasiBody("", "2024-06-11", "2024-06-12", 1)
	body["id_kamar"] = k.ID
	code, res = s.do(t, http.MethodPost, "/api/reservasi", body)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "error.roomUnavailable", res.Error.Code)
}

func TestSinkronisasi_InvalidDate(t *testing.T) {
	s := newTestServer(t)
	code, res := s.do(t, http.MethodPost, "/api/kamar/sinkronisasi?tanggal=kemarin", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "error.invalidDate", res.Error.Code)

	code, res = s.do(t, http.MethodPost, "/api/kamar/sinkronisasi", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, res.Success)
}

func TestAdmin_ResepsionisAndStatistik(t *testing.T) {
	s := newTestServer(t)
	s.addKamar(t, "101", "Standard", 2)

	code, res := s.do(t, http.MethodPost, "/api/resepsionis", gin.H{
		"nama": "Sari", "username": "sari", "password": "pendek",
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, res = s.do(t, http.MethodPost, "/api/resepsionis", gin.H{
		"nama": "Sari", "username": "sari", "password": "rahasia123",
	})
	require.Equal(t, http.StatusCreated, code, res.Error.Message)
	assert.NotContains(t, string(res.Data), "rahasia123")

	code, res = s.do(t, http.MethodGet, "/api/admin/statistik", nil)
	require.Equal(t, http.StatusOK, code)
	var d services.Dashboard
	require.NoError(t, json.Unmarshal(res.Data, &d))
	assert.Equal(t, int64(1), d.TotalKamar)
	assert.Equal(t, "0.00", d.TingkatHunian)
}

func TestParseCorsOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, parseCorsOrigins(""))
	assert.Equal(t, []string{"*"}, parseCorsOrigins(" , "))
	assert.Equal(t,
		[]string{"http://localhost:3000", "https://hotel.example.com"},
		parseCorsOrigins("http://localhost:3000, https://hotel.example.com"))
}
