package controllers

import (
	"net/http"

	"hotel-reservasi/services"
	"hotel-reservasi/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ResepsionisRequest struct {
	Nama     string `json:"nama" binding:"required"`
	Username string `json:"username" binding:"required,alphanum"`
	Password string `json:"password" binding:"required,min=8"`
	Email    string `json:"email" binding:"omitempty,email"`
	NoTelp   string `json:"no_telp"`
}

// AdminController covers staff management and the dashboard.
type AdminController struct {
	Resepsionis  *services.ResepsionisService
	StatistikSvc *services.StatistikService
	Log          *zap.Logger
}

func NewAdminController(rs *services.ResepsionisService, ss *services.StatistikService, log *zap.Logger) *AdminController {
	return &AdminController{Resepsionis: rs, StatistikSvc: ss, Log: log}
}

func (ac *AdminController) ListResepsionis(c *gin.Context) {
	list, err := ac.Resepsionis.List(c.Request.Context())
	if err != nil {
		respondError(c, ac.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (ac *AdminController) CreateResepsionis(c *gin.Context) {
	var req ResepsionisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	r, err := ac.Resepsionis.Create(c.Request.Context(), services.DataResepsionis{
		Nama:     req.Nama,
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		NoTelp:   req.NoTelp,
	})
	if err != nil {
		respondError(c, ac.Log, err)
		return
	}
	utils.JSONMessage(c, http.StatusCreated, "Resepsionis berhasil ditambahkan", r)
}

// GET /api/admin/statistik
func (ac *AdminController) Statistik(c *gin.Context) {
	d, err := ac.StatistikSvc.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, ac.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, d)
}
