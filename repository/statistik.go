package repository

import (
	"context"
	"database/sql"
	"fmt"

	"hotel-reservasi/models"

	"github.com/jmoiron/sqlx"
)

// SQLStatistik reads dashboard aggregates with plain SQL through sqlx,
// sharing the connection pool opened by gorm.
type SQLStatistik struct {
	db *sqlx.DB
}

// NewSQLStatistik wraps an existing pool. driverName selects the bind style
// ("mysql" keeps ?, "pgx"/"postgres" rebinds to $n).
func NewSQLStatistik(db *sql.DB, driverName string) *SQLStatistik {
	return &SQLStatistik{db: sqlx.NewDb(db, driverName)}
}

type jumlahPerStatus struct {
	Status string `db:"status"`
	Jumlah int64  `db:"jumlah"`
}

func (s *SQLStatistik) groupCount(ctx context.Context, query string) (map[string]int64, int64, error) {
	var rows []jumlahPerStatus
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, 0, err
	}
	out := make(map[string]int64, len(rows))
	var total int64
	for _, r := range rows {
		out[r.Status] = r.Jumlah
		total += r.Jumlah
	}
	return out, total, nil
}

func (s *SQLStatistik) Statistik(ctx context.Context) (models.Statistik, error) {
	var st models.Statistik
	var err error

	st.KamarPerStatus, st.TotalKamar, err = s.groupCount(ctx, `
		SELECT status_kamar AS status, COUNT(*) AS jumlah
		FROM kamar
		WHERE deleted_at IS NULL
		GROUP BY status_kamar`)
	if err != nil {
		return st, fmt.Errorf("statistik kamar: %w", err)
	}

	st.ReservasiPerStatus, _, err = s.groupCount(ctx, `
		SELECT status_reservasi AS status, COUNT(*) AS jumlah
		FROM reservasi
		GROUP BY status_reservasi`)
	if err != nil {
		return st, fmt.Errorf("statistik reservasi: %w", err)
	}

	if err := s.db.GetContext(ctx, &st.TotalTamu, `SELECT COUNT(*) FROM tamu`); err != nil {
		return st, fmt.Errorf("statistik tamu: %w", err)
	}

	query := s.db.Rebind(`SELECT COALESCE(SUM(jumlah_bayar), 0) FROM pembayaran WHERE status_pembayaran = ?`)
	if err := s.db.GetContext(ctx, &st.TotalPendapatan, query, models.BayarLunas); err != nil {
		return st, fmt.Errorf("statistik pendapatan: %w", err)
	}

	return st, nil
}
