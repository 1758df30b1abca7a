package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"hotel-reservasi/config"
	"hotel-reservasi/controllers"
	"hotel-reservasi/repository"
	"hotel-reservasi/routes"
	"hotel-reservasi/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal("invalid HOTEL_TZ", zap.Error(err))
	}
	clock := services.Clock(func() time.Time { return time.Now().In(loc) })

	store, stats := openStore(cfg, logger)

	// Initialize services
	sinkron := services.NewSynchronizer(store, clock, logger.Named("sync"))
	mesin := services.NewStatusMachine(store, sinkron, clock, logger.Named("status"))
	tamuSvc := services.NewTamuService(store, logger)
	reservasiSvc := services.NewReservasiService(store, mesin, tamuSvc, clock, logger)
	bayarSvc := services.NewPembayaranService(store, mesin, clock, logger)
	kamarSvc := services.NewKamarService(store, sinkron, logger)
	ketersediaanSvc := services.NewKetersediaanService(store, clock)
	resepsionisSvc := services.NewResepsionisService(store)
	statistikSvc := services.NewStatistikService(stats)

	// Initialize controllers
	router := routes.SetupRouter(routes.Controllers{
		Kamar:      controllers.NewKamarController(kamarSvc, ketersediaanSvc, sinkron, logger),
		Tamu:       controllers.NewTamuController(tamuSvc, logger),
		Reservasi:  controllers.NewReservasiController(reservasiSvc, bayarSvc, logger),
		Pembayaran: controllers.NewPembayaranController(bayarSvc, logger),
		Admin:      controllers.NewAdminController(resepsionisSvc, statistikSvc, logger),
	}, cfg.CORSOrigins, logger)

	// Bring room statuses in line before serving, then keep them there.
	if _, err := sinkron.ReconcileRoomStatuses(context.Background(), sinkron.Today()); err != nil {
		logger.Warn("initial room sync failed", zap.Error(err))
	}
	jadwal, err := services.JadwalkanSinkronisasi(cfg.SyncCron, sinkron, logger.Named("cron"))
	if err != nil {
		logger.Fatal("invalid SYNC_CRON", zap.String("spec", cfg.SyncCron), zap.Error(err))
	}

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", addr), zap.String("driver", cfg.DBDriver))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("ListenAndServe", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received, shutting down server")

	<-jadwal.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped gracefully")
}

func openStore(cfg *config.Config, logger *zap.Logger) (repository.Store, repository.StatistikReader) {
	if cfg.DBDriver == config.DriverMemory {
		mem := repository.NewMemoryStore()
		if cfg.DBSeed {
			if err := config.SeedStore(context.Background(), mem, logger); err != nil {
				logger.Fatal("seed memory store", zap.Error(err))
			}
		}
		logger.Warn("using in-memory store; data is lost on restart")
		return mem, mem
	}

	db, err := config.ConnectDatabase(cfg, logger)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("database handle", zap.Error(err))
	}
	logger.Info("database connection established", zap.String("driver", cfg.DBDriver))
	return repository.NewGormStore(db), repository.NewSQLStatistik(sqlDB, cfg.SQLDriverName())
}
