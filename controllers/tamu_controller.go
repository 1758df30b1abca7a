package controllers

import (
	"net/http"
	"strings"
	"time"

	"hotel-reservasi/services"
	"hotel-reservasi/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TamuRequest struct {
	Nama            string `json:"nama" binding:"required"`
	Email           string `json:"email" binding:"omitempty,email"`
	NoTelp          string `json:"no_telp" binding:"required"`
	Alamat          string `json:"alamat"`
	JenisKelamin    string `json:"jenis_kelamin" binding:"omitempty,oneof=Laki-laki Perempuan"`
	TanggalLahir    string `json:"tanggal_lahir"`
	Kewarganegaraan string `json:"kewarganegaraan"`
}

func (r TamuRequest) data() (services.DataTamu, bool) {
	d := services.DataTamu{
		Nama:            r.Nama,
		Email:           r.Email,
		NoTelp:          r.NoTelp,
		Alamat:          r.Alamat,
		JenisKelamin:    r.JenisKelamin,
		Kewarganegaraan: r.Kewarganegaraan,
	}
	if strings.TrimSpace(r.TanggalLahir) != "" {
		t, err := utils.ParseTanggal(r.TanggalLahir)
		if err != nil {
			return d, false
		}
		d.TanggalLahir = &t
	}
	return d, true
}

type TamuController struct {
	Svc *services.TamuService
	Log *zap.Logger
}

func NewTamuController(svc *services.TamuService, log *zap.Logger) *TamuController {
	return &TamuController{Svc: svc, Log: log}
}

// GET /api/tamu?q=
func (tc *TamuController) List(c *gin.Context) {
	list, err := tc.Svc.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, tc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (tc *TamuController) Detail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	t, err := tc.Svc.Detail(c.Request.Context(), id)
	if err != nil {
		respondError(c, tc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, t)
}

func (tc *TamuController) bind(c *gin.Context) (services.DataTamu, bool) {
	var req TamuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return services.DataTamu{}, false
	}
	d, ok := req.data()
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", "Tanggal lahir tidak valid")
		return d, false
	}
	if d.TanggalLahir != nil && d.TanggalLahir.After(time.Now()) {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", "Tanggal lahir tidak boleh di masa depan")
		return d, false
	}
	return d, true
}

func (tc *TamuController) Create(c *gin.Context) {
	d, ok := tc.bind(c)
	if !ok {
		return
	}
	t, err := tc.Svc.Create(c.Request.Context(), d)
	if err != nil {
		respondError(c, tc.Log, err)
		return
	}
	utils.JSONMessage(c, http.StatusCreated, "Tamu berhasil ditambahkan", t)
}

func (tc *TamuController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	d, ok := tc.bind(c)
	if !ok {
		return
	}
	t, err := tc.Svc.Update(c.Request.Context(), id, d)
	if err != nil {
		respondError(c, tc.Log, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Data tamu diperbarui", t)
}
