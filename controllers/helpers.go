package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"hotel-reservasi/models"
	"hotel-reservasi/services"
	"hotel-reservasi/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var registerOnce sync.Once

// RegisterValidators adds the hotel enums as binding tags on gin's validator.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		enum := func(list []string) validator.Func {
			return func(fl validator.FieldLevel) bool {
				return models.Contains(list, fl.Field().String())
			}
		}
		_ = v.RegisterValidation("tipekamar", enum(models.TipeKamarValid))
		_ = v.RegisterValidation("metodebayar", enum(models.MetodePembayaranValid))
		_ = v.RegisterValidation("statusbayar", enum(models.StatusPembayaranValid))
	})
}

func statusForKind(k services.ErrorKind) int {
	switch k {
	case services.KindValidation, services.KindInvalidDateRange, services.KindPastDate:
		return http.StatusBadRequest
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindConflict, services.KindRoomUnavailable, services.KindIllegalTransition:
		return http.StatusConflict
	case services.KindCapacityExceeded, services.KindPaymentNotSufficient:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// respondError writes a domain rejection as is; anything else is logged and
// answered with a generic 500.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	if de, ok := services.AsDomainError(err); ok {
		utils.JSONError(c, statusForKind(de.Kind), de.Code, de.Message)
		return
	}
	log.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Terjadi kesalahan pada server")
}

func respondBindError(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make([]string, 0, len(ve))
		for _, fe := range ve {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
		}
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "Data tidak valid: "+strings.Join(fields, ", "))
		return
	}
	utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "Format data tidak valid")
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidId", "ID tidak valid")
		return 0, false
	}
	return uint(id), true
}

func queryUint(c *gin.Context, key string) (uint, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", fmt.Sprintf("%s harus berupa angka", key))
		return 0, false
	}
	return uint(v), true
}

type rentang struct {
	checkin, checkout time.Time
}

// parseRentang reads a check-in/check-out pair in 2006-01-02 or RFC3339.
func parseRentang(c *gin.Context, checkin, checkout string) (rentang, bool) {
	ci, err := utils.ParseTanggal(checkin)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", "Tanggal check-in tidak valid")
		return rentang{}, false
	}
	co, err := utils.ParseTanggal(checkout)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", "Tanggal check-out tidak valid")
		return rentang{}, false
	}
	return rentang{ci, co}, true
}
