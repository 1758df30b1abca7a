package controllers

import (
	"net/http"
	"strings"

	"hotel-reservasi/services"
	"hotel-reservasi/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReservasiRequest struct {
	IDTamu          uint         `json:"id_tamu"`
	Tamu            *TamuRequest `json:"tamu"`
	IDKamar         *uint        `json:"id_kamar"`
	TipeKamar       string       `json:"tipe_kamar" binding:"omitempty,tipekamar"`
	TanggalCheckin  string       `json:"tanggal_checkin" binding:"required"`
	TanggalCheckout string       `json:"tanggal_checkout" binding:"required"`
	JumlahTamu      int          `json:"jumlah_tamu" binding:"required,min=1"`
	IDResepsionis   *uint        `json:"id_resepsionis"`
	Catatan         string       `json:"catatan"`
}

type UbahReservasiRequest struct {
	TanggalCheckin  *string `json:"tanggal_checkin"`
	TanggalCheckout *string `json:"tanggal_checkout"`
	JumlahTamu      *int    `json:"jumlah_tamu" binding:"omitempty,min=1"`
	IDKamar         *uint   `json:"id_kamar"`
	Catatan         *string `json:"catatan"`
}

type StatusReservasiRequest struct {
	StatusReservasi string `json:"status_reservasi" binding:"required"`
	IDResepsionis   *uint  `json:"id_resepsionis"`
}

type AksiRequest struct {
	IDResepsionis *uint `json:"id_resepsionis"`
}

type PembayaranRequest struct {
	JumlahBayar      int64  `json:"jumlah_bayar" binding:"required,gt=0"`
	MetodePembayaran string `json:"metode_pembayaran" binding:"required,metodebayar"`
	StatusPembayaran string `json:"status_pembayaran" binding:"omitempty,statusbayar"`
	Catatan          string `json:"catatan"`
	IDResepsionis    *uint  `json:"id_resepsionis"`
}

type ReservasiController struct {
	Svc   *services.ReservasiService
	Bayar *services.PembayaranService
	Log   *zap.Logger
}

func NewReservasiController(svc *services.ReservasiService, bayar *services.PembayaranService, log *zap.Logger) *ReservasiController {
	return &ReservasiController{Svc: svc, Bayar: bayar, Log: log}
}

// GET /api/reservasi?status_reservasi=&id_tamu=
func (rc *ReservasiController) List(c *gin.Context) {
	idTamu, ok := queryUint(c, "id_tamu")
	if !ok {
		return
	}
	list, err := rc.Svc.List(c.Request.Context(), services.ReservasiQuery{
		Status: strings.TrimSpace(c.Query("status_reservasi")),
		IDTamu: idTamu,
	})
	if err != nil {
		respondError(c, rc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (rc *ReservasiController) Detail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	d, err := rc.Svc.Detail(c.Request.Context(), id)
	if err != nil {
		respondError(c, rc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, d)
}

func (rc *ReservasiController) Create(c *gin.Context) {
	var req ReservasiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	r, ok := parseRentang(c, req.TanggalCheckin, req.TanggalCheckout)
	if !ok {
		return
	}

	in := services.BuatReservasiInput{
		IDTamu:        req.IDTamu,
		IDKamar:       req.IDKamar,
		TipeKamar:     req.TipeKamar,
		Checkin:       r.checkin,
		Checkout:      r.checkout,
		JumlahTamu:    req.JumlahTamu,
		IDResepsionis: req.IDResepsionis,
		Catatan:       req.Catatan,
	}
	if req.Tamu != nil {
		d, ok := req.Tamu.data()
		if !ok {
			utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", "Tanggal lahir tidak valid")
			return
		}
		in.Tamu = &d
	}

	res, err := rc.Svc.CreateReservation(c.Request.Context(), in)
	if err != nil {
		respondError(c, rc.Log, err)
		return
	}
	utils.JSONMessage(c, http.StatusCreated, "Reservasi berhasil dibuat", res)
}

func (rc *ReservasiController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req UbahReservasiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	in := services.UbahReservasiInput{JumlahTamu: req.JumlahTamu, IDKamar: req.IDKamar, Catatan: req.Catatan}
	if req.TanggalCheckin != nil {
		t, err := utils.ParseTanggal(*req.TanggalCheckin)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", "Tanggal check-in tidak valid")
			return
		}
		in.Checkin = &t
	}
	if req.TanggalCheckout != nil {
		t, err := utils.ParseTanggal(*req.TanggalCheckout)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", "Tanggal check-out tidak valid")
			return
		}
		in.Checkout = &t
	}

	res, err := rc.Svc.UpdateReservation(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, rc.Log, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Reservasi berhasil diperbarui", res)
}

// PUT /api/reservasi/:id/status
func (rc *ReservasiController) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req StatusReservasiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	res, err := rc.Svc.TransitionToStatus(c.Request.Context(), id, req.StatusReservasi,
		services.KonteksTransisi{IDResepsionis: req.IDResepsionis})
	if err != nil {
		respondError(c, rc.Log, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Status reservasi diperbarui", res)
}

// Aksi serves POST /api/reservasi/:id/{konfirmasi,checkin,checkout,batal}.
func (rc *ReservasiController) Aksi(ev services.Event, pesan string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		var req AksiRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				respondBindError(c, err)
				return
			}
		}
		res, err := rc.Svc.Transition(c.Request.Context(), id, ev, services.KonteksTransisi{IDResepsionis: req.IDResepsionis})
		if err != nil {
			respondError(c, rc.Log, err)
			return
		}
		utils.JSONMessage(c, http.StatusOK, pesan, res)
	}
}

// GET /api/reservasi/:id/pembayaran
func (rc *ReservasiController) ListPembayaran(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	list, err := rc.Bayar.List(c.Request.Context(), id)
	if err != nil {
		respondError(c, rc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// POST /api/reservasi/:id/pembayaran
func (rc *ReservasiController) CatatPembayaran(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req PembayaranRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	p, err := rc.Bayar.RecordPayment(c.Request.Context(), id, services.CatatPembayaranInput{
		JumlahBayar:      req.JumlahBayar,
		MetodePembayaran: req.MetodePembayaran,
		StatusPembayaran: req.StatusPembayaran,
		Catatan:          req.Catatan,
		IDResepsionis:    req.IDResepsionis,
	})
	if err != nil {
		respondError(c, rc.Log, err)
		return
	}
	utils.JSONMessage(c, http.StatusCreated, "Pembayaran berhasil dicatat", p)
}
