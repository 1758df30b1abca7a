package controllers

import (
	"net/http"

	"hotel-reservasi/services"
	"hotel-reservasi/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type VerifikasiRequest struct {
	StatusPembayaran string `json:"status_pembayaran" binding:"required,statusbayar"`
	IDResepsionis    *uint  `json:"id_resepsionis"`
}

type PembayaranController struct {
	Svc *services.PembayaranService
	Log *zap.Logger
}

func NewPembayaranController(svc *services.PembayaranService, log *zap.Logger) *PembayaranController {
	return &PembayaranController{Svc: svc, Log: log}
}

func (pc *PembayaranController) Detail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p, err := pc.Svc.Detail(c.Request.Context(), id)
	if err != nil {
		respondError(c, pc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, p)
}

// PUT /api/pembayaran/:id/verifikasi
func (pc *PembayaranController) Verifikasi(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req VerifikasiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	p, err := pc.Svc.VerifyPayment(c.Request.Context(), id, req.StatusPembayaran, req.IDResepsionis)
	if err != nil {
		respondError(c, pc.Log, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Status pembayaran diperbarui", p)
}
