package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-reservasi/controllers"
	"hotel-reservasi/middleware"
	"hotel-reservasi/services"
)

// Controllers groups every handler the router mounts.
type Controllers struct {
	Kamar      *controllers.KamarController
	Tamu       *controllers.TamuController
	Reservasi  *controllers.ReservasiController
	Pembayaran *controllers.PembayaranController
	Admin      *controllers.AdminController
}

func parseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(ctl Controllers, corsOrigins string, log *zap.Logger) *gin.Engine {
	controllers.RegisterValidators()

	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.Logger(log))

	origins := parseCorsOrigins(corsOrigins)
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		kamar := api.Group("/kamar")
		{
			kamar.GET("", ctl.Kamar.List)

			// static segments before /:id
			kamar.GET("/ketersediaan", ctl.Kamar.Ketersediaan)
			kamar.POST("/sinkronisasi", ctl.Kamar.Sinkronisasi)

			kamar.GET("/:id", ctl.Kamar.Detail)
			kamar.POST("", ctl.Kamar.Create)
			kamar.PUT("/:id", ctl.Kamar.Update)
			kamar.PATCH("/:id/status", ctl.Kamar.SetStatus)
			kamar.DELETE("/:id", ctl.Kamar.Delete)
		}

		tamu := api.Group("/tamu")
		{
			tamu.GET("", ctl.Tamu.List)
			tamu.GET("/:id", ctl.Tamu.Detail)
			tamu.POST("", ctl.Tamu.Create)
			tamu.PUT("/:id", ctl.Tamu.Update)
		}

		reservasi := api.Group("/reservasi")
		{
			reservasi.GET("", ctl.Reservasi.List)
			reservasi.POST("", ctl.Reservasi.Create)
			reservasi.GET("/:id", ctl.Reservasi.Detail)
			reservasi.PUT("/:id", ctl.Reservasi.Update)
			reservasi.PUT("/:id/status", ctl.Reservasi.UpdateStatus)

			reservasi.POST("/:id/konfirmasi", ctl.Reservasi.Aksi(services.EventKonfirmasi, "Reservasi dikonfirmasi"))
			reservasi.POST("/:id/checkin", ctl.Reservasi.Aksi(services.EventCheckIn, "Check-in berhasil"))
			reservasi.POST("/:id/checkout", ctl.Reservasi.Aksi(services.EventCheckOut, "Check-out berhasil"))
			reservasi.POST("/:id/batal", ctl.Reservasi.Aksi(services.EventBatal, "Reservasi dibatalkan"))

			reservasi.GET("/:id/pembayaran", ctl.Reservasi.ListPembayaran)
			reservasi.POST("/:id/pembayaran", ctl.Reservasi.CatatPembayaran)
		}

		pembayaran := api.Group("/pembayaran")
		{
			pembayaran.GET("/:id", ctl.Pembayaran.Detail)
			pembayaran.PUT("/:id/verifikasi", ctl.Pembayaran.Verifikasi)
		}

		resepsionis := api.Group("/resepsionis")
		{
			resepsionis.GET("", ctl.Admin.ListResepsionis)
			resepsionis.POST("", ctl.Admin.CreateResepsionis)
		}

		api.GET("/admin/statistik", ctl.Admin.Statistik)
	}

	return r
}
