package models

// Statistik is the raw aggregate snapshot the admin dashboard is built from.
type Statistik struct {
	KamarPerStatus     map[string]int64 `json:"kamar_per_status"`
	ReservasiPerStatus map[string]int64 `json:"reservasi_per_status"`
	TotalKamar         int64            `json:"total_kamar"`
	TotalTamu          int64            `json:"total_tamu"`
	TotalPendapatan    int64            `json:"total_pendapatan"`
}
