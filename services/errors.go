package services

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindInvalidDateRange
	KindPastDate
	KindCapacityExceeded
	KindRoomUnavailable
	KindPaymentNotSufficient
	KindIllegalTransition
	KindNotFound
	KindConflict
)

// DomainError is an expected, user-facing rejection. Code is stable and is
// what errors.Is compares; Message is shown to the receptionist as is.
type DomainError struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *DomainError) Error() string { return e.Message }

func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

func newError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{Kind: kind, Code: code, Message: message}
}

var (
	ErrInvalidDateRange = newError(KindInvalidDateRange, "error.invalidDateRange", "Tanggal check-out harus setelah tanggal check-in")
	ErrPastDate         = newError(KindPastDate, "error.pastDate", "Tanggal check-in tidak boleh sebelum hari ini")
	ErrCapacityExceeded = newError(KindCapacityExceeded, "error.capacityExceeded", "Jumlah tamu melebihi kapasitas kamar")

	ErrRoomUnavailable  = newError(KindRoomUnavailable, "error.roomUnavailable", "Kamar sudah dipesan pada tanggal tersebut")
	ErrNoRoomAvailable  = newError(KindRoomUnavailable, "error.noRoomAvailable", "Tidak ada kamar dengan tipe tersebut yang tersedia pada tanggal yang dipilih")
	ErrRoomOutOfService = newError(KindRoomUnavailable, "error.roomOutOfService", "Kamar sedang dalam perbaikan atau tidak dapat digunakan")

	ErrPaymentAbsent  = newError(KindPaymentNotSufficient, "error.paymentAbsent", "Belum ada pembayaran untuk reservasi ini")
	ErrPaymentPending = newError(KindPaymentNotSufficient, "error.paymentPending", "Pembayaran masih menunggu verifikasi")
	ErrPaymentUnpaid  = newError(KindPaymentNotSufficient, "error.paymentUnpaid", "Pembayaran belum lunas")

	ErrIllegalTransition  = newError(KindIllegalTransition, "error.illegalTransition", "Perubahan status reservasi tidak diizinkan")
	ErrRoomNotBound       = newError(KindIllegalTransition, "error.roomNotBound", "Reservasi belum memiliki kamar")
	ErrPaymentLocked      = newError(KindIllegalTransition, "error.paymentLocked", "Pembayaran yang sudah lunas hanya dapat di-refund")
	ErrCheckinTerlaluAwal = newError(KindIllegalTransition, "error.checkinTooEarly", "Check-in belum dapat dilakukan sebelum tanggal check-in")

	ErrReservasiNotFound  = newError(KindNotFound, "error.reservationNotFound", "Reservasi tidak ditemukan")
	ErrKamarNotFound      = newError(KindNotFound, "error.roomNotFound", "Kamar tidak ditemukan")
	ErrTamuNotFound       = newError(KindNotFound, "error.guestNotFound", "Tamu tidak ditemukan")
	ErrPembayaranNotFound = newError(KindNotFound, "error.paymentNotFound", "Pembayaran tidak ditemukan")

	ErrNomorKamarDuplikat = newError(KindConflict, "error.duplicateRoomNumber", "Nomor kamar sudah digunakan")
	ErrTeleponDuplikat    = newError(KindConflict, "error.duplicatePhone", "Nomor telepon sudah terdaftar")
	ErrUsernameDuplikat   = newError(KindConflict, "error.duplicateUsername", "Username sudah digunakan")
	ErrKamarMasihDipakai  = newError(KindConflict, "error.roomInUse", "Kamar masih memiliki reservasi aktif")
	ErrKamarDitempati     = newError(KindConflict, "error.roomOccupied", "Kamar sedang ditempati")
)

func illegalTransition(from, to string) error {
	return &DomainError{
		Kind:    KindIllegalTransition,
		Code:    ErrIllegalTransition.Code,
		Message: fmt.Sprintf("Reservasi berstatus %s tidak dapat diubah menjadi %s", from, to),
	}
}

func validationError(message string) error {
	return &DomainError{Kind: KindValidation, Code: "error.invalidPayload", Message: message}
}

// AsDomainError reports whether err carries a user-facing rejection.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
