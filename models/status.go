package models

// Reservation states.
const (
	StatusBelumBayar         = "Belum Bayar"
	StatusMenungguKonfirmasi = "Menunggu Konfirmasi"
	StatusDikonfirmasi       = "Dikonfirmasi"
	StatusCheckIn            = "Check-In"
	StatusCheckOut           = "Check-Out"
	StatusDibatalkan         = "Dibatalkan"
)

// Room display states.
const (
	KamarTersedia      = "Tersedia"
	KamarDipesan       = "Dipesan"
	KamarDitempati     = "Ditempati"
	KamarMaintenance   = "Maintenance"
	KamarTidakTersedia = "Tidak Tersedia"
)

// Payment states.
const (
	BayarBelumLunas         = "Belum Lunas"
	BayarMenungguVerifikasi = "Menunggu Verifikasi"
	BayarLunas              = "Lunas"
	BayarDibatalkan         = "Dibatalkan"
	BayarRefund             = "Refund"
)

// Payment methods.
const (
	MetodeTransferBank = "Transfer Bank"
	MetodeEWallet      = "E-Wallet"
	MetodeKartuKredit  = "Kartu Kredit"
	MetodeTunai        = "Tunai"
)

var TipeKamarValid = []string{"Standard", "Superior", "Deluxe", "Suite", "Family"}

var MetodePembayaranValid = []string{MetodeTransferBank, MetodeEWallet, MetodeKartuKredit, MetodeTunai}

var StatusPembayaranValid = []string{BayarBelumLunas, BayarMenungguVerifikasi, BayarLunas, BayarDibatalkan, BayarRefund}

func Contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
