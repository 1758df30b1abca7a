package controllers

import (
	"net/http"
	"strings"

	"hotel-reservasi/repository"
	"hotel-reservasi/services"
	"hotel-reservasi/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type KamarRequest struct {
	NomorKamar string `json:"nomor_kamar" binding:"required"`
	TipeKamar  string `json:"tipe_kamar" binding:"required,tipekamar"`
	Harga      int64  `json:"harga" binding:"required,gt=0"`
	Kapasitas  int    `json:"kapasitas" binding:"required,min=1"`
	Deskripsi  string `json:"deskripsi"`
}

func (r KamarRequest) data() services.DataKamar {
	return services.DataKamar{
		NomorKamar: r.NomorKamar,
		TipeKamar:  r.TipeKamar,
		Harga:      r.Harga,
		Kapasitas:  r.Kapasitas,
		Deskripsi:  r.Deskripsi,
	}
}

type StatusKamarRequest struct {
	StatusKamar string `json:"status_kamar" binding:"required"`
}

type KamarController struct {
	Svc             *services.KamarService
	KetersediaanSvc *services.KetersediaanService
	Sinkron         *services.Synchronizer
	Log             *zap.Logger
}

func NewKamarController(svc *services.KamarService, ks *services.KetersediaanService, sinkron *services.Synchronizer, log *zap.Logger) *KamarController {
	return &KamarController{Svc: svc, KetersediaanSvc: ks, Sinkron: sinkron, Log: log}
}

// GET /api/kamar?tipe_kamar=&status_kamar=
func (kc *KamarController) List(c *gin.Context) {
	list, err := kc.Svc.List(c.Request.Context(), repository.KamarFilter{
		TipeKamar:   strings.TrimSpace(c.Query("tipe_kamar")),
		StatusKamar: strings.TrimSpace(c.Query("status_kamar")),
	})
	if err != nil {
		respondError(c, kc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (kc *KamarController) Detail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	k, err := kc.Svc.Detail(c.Request.Context(), id)
	if err != nil {
		respondError(c, kc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, k)
}

// GET /api/kamar/ketersediaan?id_kamar=|tipe_kamar=&tanggal_checkin=&tanggal_checkout=&id_reservasi=
func (kc *KamarController) Ketersediaan(c *gin.Context) {
	r, ok := parseRentang(c, c.Query("tanggal_checkin"), c.Query("tanggal_checkout"))
	if !ok {
		return
	}
	idKamar, ok := queryUint(c, "id_kamar")
	if !ok {
		return
	}
	idReservasi, ok := queryUint(c, "id_reservasi")
	if !ok {
		return
	}

	hasil, err := kc.KetersediaanSvc.CheckAvailability(c.Request.Context(), services.KetersediaanQuery{
		IDKamar:     idKamar,
		TipeKamar:   strings.TrimSpace(c.Query("tipe_kamar")),
		Checkin:     r.checkin,
		Checkout:    r.checkout,
		IDReservasi: idReservasi,
	})
	if err != nil {
		respondError(c, kc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hasil)
}

// POST /api/kamar/sinkronisasi?tanggal=
func (kc *KamarController) Sinkronisasi(c *gin.Context) {
	asOf := kc.Sinkron.Today()
	if raw := c.Query("tanggal"); raw != "" {
		t, err := utils.ParseTanggal(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", "Tanggal tidak valid")
			return
		}
		asOf = t
	}
	hasil, err := kc.Sinkron.ReconcileRoomStatuses(c.Request.Context(), asOf)
	if err != nil {
		respondError(c, kc.Log, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Status kamar disinkronkan", hasil)
}

func (kc *KamarController) Create(c *gin.Context) {
	var req KamarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	k, err := kc.Svc.Create(c.Request.Context(), req.data())
	if err != nil {
		respondError(c, kc.Log, err)
		return
	}
	utils.JSONMessage(c, http.StatusCreated, "Kamar berhasil ditambahkan", k)
}

func (kc *KamarController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req KamarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	k, err := kc.Svc.Update(c.Request.Context(), id, req.data())
	if err != nil {
		respondError(c, kc.Log, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Kamar berhasil diperbarui", k)
}

// PATCH /api/kamar/:id/status
func (kc *KamarController) SetStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req StatusKamarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	k, err := kc.Svc.SetStatusManual(c.Request.Context(), id, req.StatusKamar)
	if err != nil {
		respondError(c, kc.Log, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Status kamar diperbarui", k)
}

func (kc *KamarController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := kc.Svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, kc.Log, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Kamar berhasil dihapus", nil)
}
