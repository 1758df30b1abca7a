package config

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"hotel-reservasi/models"
	"hotel-reservasi/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SampleKamar is the room inventory a fresh database starts with.
func SampleKamar() []models.Kamar {
	return []models.Kamar{
		{NomorKamar: "101", TipeKamar: "Standard", Harga: 450000, Kapasitas: 2, Deskripsi: "Kamar standar, twin bed"},
		{NomorKamar: "102", TipeKamar: "Standard", Harga: 450000, Kapasitas: 2, Deskripsi: "Kamar standar, double bed"},
		{NomorKamar: "103", TipeKamar: "Standard", Harga: 450000, Kapasitas: 2},
		{NomorKamar: "201", TipeKamar: "Superior", Harga: 650000, Kapasitas: 3, Deskripsi: "Pemandangan kota"},
		{NomorKamar: "202", TipeKamar: "Superior", Harga: 650000, Kapasitas: 3},
		{NomorKamar: "301", TipeKamar: "Deluxe", Harga: 950000, Kapasitas: 3, Deskripsi: "Balkon pribadi"},
		{NomorKamar: "401", TipeKamar: "Suite", Harga: 1800000, Kapasitas: 4, Deskripsi: "Ruang tamu terpisah"},
		{NomorKamar: "501", TipeKamar: "Family", Harga: 1250000, Kapasitas: 6, Deskripsi: "Dua kamar tidur"},
	}
}

// SeedDatabase creates the default admin, a receptionist and the sample rooms
// on an empty database. Failures are logged and skipped.
func SeedDatabase(db *gorm.DB, log *zap.Logger) {
	var adminCount int64
	db.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			log.Warn("failed to hash default admin password", zap.Error(err))
		} else if err := db.Create(&models.Admin{Nama: "Administrator", Username: "admin", Password: string(hash)}).Error; err != nil {
			log.Warn("failed to create default admin", zap.Error(err))
		} else {
			log.Info("default admin seeded")
		}
	}

	var resepsionisCount int64
	db.Model(&models.Resepsionis{}).Count(&resepsionisCount)
	if resepsionisCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("resepsionis123"), bcrypt.DefaultCost)
		if err != nil {
			log.Warn("failed to hash default receptionist password", zap.Error(err))
		} else if err := db.Create(&models.Resepsionis{Nama: "Resepsionis", Username: "resepsionis", Password: string(hash)}).Error; err != nil {
			log.Warn("failed to create default receptionist", zap.Error(err))
		} else {
			log.Info("default receptionist seeded")
		}
	}

	var kamarCount int64
	db.Model(&models.Kamar{}).Count(&kamarCount)
	if kamarCount == 0 {
		rooms := SampleKamar()
		if err := db.Create(&rooms).Error; err != nil {
			log.Warn("failed to seed rooms", zap.Error(err))
		} else {
			log.Info("rooms seeded", zap.Int("jumlah", len(rooms)))
		}
	}
}

// SeedStore fills an in-memory store with the same sample data.
func SeedStore(ctx context.Context, st repository.Store, log *zap.Logger) error {
	rooms, err := st.ListKamar(ctx, repository.KamarFilter{})
	if err != nil {
		return err
	}
	if len(rooms) > 0 {
		return nil
	}
	for _, k := range SampleKamar() {
		k := k
		if err := st.CreateKamar(ctx, &k); err != nil {
			return fmt.Errorf("failed to seed room %s: %w", k.NomorKamar, err)
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("resepsionis123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := st.CreateResepsionis(ctx, &models.Resepsionis{Nama: "Resepsionis", Username: "resepsionis", Password: string(hash)}); err != nil {
		return err
	}
	log.Info("memory store seeded")
	return nil
}

func mysqlDSNFromURL(raw string) (string, string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	// Reservation dates are UTC midnights; any other loc shifts DATE columns.
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode())
	return dsn, dbName, nil
}

func resolveMySQLDSN(cfg *Config) (string, string, error) {
	raw := strings.TrimSpace(cfg.MySQLURL)
	if raw == "" {
		raw = strings.TrimSpace(cfg.DatabaseURL)
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, cfg.DBName, nil
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName,
	)
	return dsn, cfg.DBName, nil
}

func resolvePostgresDSN(cfg *Config) string {
	if raw := strings.TrimSpace(cfg.DatabaseURL); raw != "" {
		return raw
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPass, cfg.DBName, cfg.DBSSLMode,
	)
}

// SQLDriverName is the database/sql driver behind the gorm dialector, used
// for bind-variable rebinding in raw queries.
func (c *Config) SQLDriverName() string {
	if c.DBDriver == DriverPostgres {
		return "pgx"
	}
	return "mysql"
}

func dialector(cfg *Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case DriverMySQL:
		dsn, _, err := resolveMySQLDSN(cfg)
		if err != nil {
			return nil, err
		}
		return mysql.Open(dsn), nil
	case DriverPostgres:
		return postgres.New(postgres.Config{DSN: resolvePostgresDSN(cfg)}), nil
	}
	return nil, fmt.Errorf("no SQL dialector for driver %q", cfg.DBDriver)
}

// ConnectDatabase opens MySQL or Postgres, migrates the schema and seeds it
// when DB_SEED is on.
func ConnectDatabase(cfg *Config, log *zap.Logger) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	level := logger.Warn
	if !cfg.IsProduction() {
		level = logger.Info
	}
	gormLogger := logger.New(
		zap.NewStdLog(log.Named("gorm")),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(d, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	// Parents before children.
	if err := db.AutoMigrate(
		&models.Admin{},
		&models.Resepsionis{},
		&models.Tamu{},
		&models.Kamar{},
		&models.Reservasi{},
		&models.Pembayaran{},
	); err != nil {
		return nil, err
	}

	if cfg.DBSeed {
		SeedDatabase(db, log)
	}
	return db, nil
}
