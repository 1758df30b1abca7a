package services

import (
	"context"
	"fmt"
	"strings"

	"hotel-reservasi/models"
	"hotel-reservasi/repository"
	"hotel-reservasi/utils"

	"go.uber.org/zap"
)

type PembayaranService struct {
	Store repository.Store
	Mesin *StatusMachine
	Now   Clock
	Log   *zap.Logger
}

func NewPembayaranService(st repository.Store, mesin *StatusMachine, now Clock, log *zap.Logger) *PembayaranService {
	return &PembayaranService{Store: st, Mesin: mesin, Now: now, Log: orNop(log)}
}

type CatatPembayaranInput struct {
	JumlahBayar      int64
	MetodePembayaran string
	StatusPembayaran string
	Catatan          string
	IDResepsionis    *uint
}

// PembayaranDetail adds the PPN breakdown of the inclusive amount.
type PembayaranDetail struct {
	models.Pembayaran
	Rincian utils.RincianPPN `json:"rincian"`
}

func detailPembayaran(p models.Pembayaran) PembayaranDetail {
	return PembayaranDetail{Pembayaran: p, Rincian: utils.PecahTotal(p.JumlahBayar)}
}

// RecordPayment stores a payment against a reservation that is still waiting
// for payment. A payment recorded as Lunas confirms the reservation in the
// same transaction; one waiting for verification moves it to Menunggu
// Konfirmasi.
func (s *PembayaranService) RecordPayment(ctx context.Context, idReservasi uint, in CatatPembayaranInput) (*PembayaranDetail, error) {
	if in.JumlahBayar <= 0 {
		return nil, validationError("Jumlah bayar harus lebih dari 0")
	}
	in.MetodePembayaran = strings.TrimSpace(in.MetodePembayaran)
	if !models.Contains(models.MetodePembayaranValid, in.MetodePembayaran) {
		return nil, validationError(fmt.Sprintf("Metode pembayaran %q tidak dikenal", in.MetodePembayaran))
	}
	if in.StatusPembayaran == "" {
		in.StatusPembayaran = models.BayarMenungguVerifikasi
	}
	if !models.Contains([]string{models.BayarBelumLunas, models.BayarMenungguVerifikasi, models.BayarLunas}, in.StatusPembayaran) {
		return nil, validationError(fmt.Sprintf("Status pembayaran awal %q tidak diizinkan", in.StatusPembayaran))
	}

	p := &models.Pembayaran{
		IDReservasi:      idReservasi,
		JumlahBayar:      in.JumlahBayar,
		MetodePembayaran: in.MetodePembayaran,
		StatusPembayaran: in.StatusPembayaran,
		TanggalBayar:     s.Now.now(),
		Catatan:          strings.TrimSpace(in.Catatan),
		IDResepsionis:    in.IDResepsionis,
	}

	err := s.Store.Transaction(ctx, func(tx repository.Store) error {
		r, err := tx.LockReservasi(ctx, idReservasi)
		if err != nil {
			return notFound(err, ErrReservasiNotFound)
		}
		if r.StatusReservasi != models.StatusBelumBayar && r.StatusReservasi != models.StatusMenungguKonfirmasi {
			return &DomainError{
				Kind:    KindIllegalTransition,
				Code:    ErrIllegalTransition.Code,
				Message: fmt.Sprintf("Reservasi berstatus %s tidak menerima pembayaran baru", r.StatusReservasi),
			}
		}

		if err := tx.CreatePembayaran(ctx, p); err != nil {
			return fmt.Errorf("failed to record payment: %w", err)
		}
		return s.ikutiPembayaran(ctx, tx, r, p.StatusPembayaran, in.IDResepsionis)
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("payment recorded",
		zap.Uint("id_pembayaran", p.ID),
		zap.Uint("id_reservasi", idReservasi),
		zap.String("status_pembayaran", p.StatusPembayaran),
	)
	d := detailPembayaran(*p)
	return &d, nil
}

// VerifyPayment changes a payment's status. A Lunas payment is final except
// for Refund. Turning a payment Lunas confirms its reservation when the
// reservation is still waiting; a failed room assignment rolls back the
// verification too.
func (s *PembayaranService) VerifyPayment(ctx context.Context, id uint, status string, idResepsionis *uint) (*PembayaranDetail, error) {
	status = strings.TrimSpace(status)
	if !models.Contains(models.StatusPembayaranValid, status) {
		return nil, validationError(fmt.Sprintf("Status pembayaran %q tidak dikenal", status))
	}

	var hasil models.Pembayaran
	err := s.Store.Transaction(ctx, func(tx repository.Store) error {
		p, err := tx.FindPembayaran(ctx, id)
		if err != nil {
			return notFound(err, ErrPembayaranNotFound)
		}
		if p.StatusPembayaran == models.BayarLunas && status != models.BayarRefund && status != models.BayarLunas {
			return ErrPaymentLocked
		}
		if p.StatusPembayaran == status {
			hasil = *p
			return nil
		}

		r, err := tx.LockReservasi(ctx, p.IDReservasi)
		if err != nil {
			return notFound(err, ErrReservasiNotFound)
		}

		p.StatusPembayaran = status
		if idResepsionis != nil {
			p.IDResepsionis = idResepsionis
		}
		if err := tx.SavePembayaran(ctx, p); err != nil {
			return fmt.Errorf("failed to save payment %d: %w", id, err)
		}
		hasil = *p

		if r.StatusReservasi != models.StatusBelumBayar && r.StatusReservasi != models.StatusMenungguKonfirmasi {
			return nil
		}
		return s.ikutiPembayaran(ctx, tx, r, status, idResepsionis)
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("payment status changed",
		zap.Uint("id_pembayaran", id),
		zap.String("status_pembayaran", status),
	)
	d := detailPembayaran(hasil)
	return &d, nil
}

// ikutiPembayaran moves a waiting reservation along with its payment status.
func (s *PembayaranService) ikutiPembayaran(ctx context.Context, tx repository.Store, r *models.Reservasi, status string, idResepsionis *uint) error {
	k := KonteksTransisi{IDResepsionis: idResepsionis}
	switch status {
	case models.BayarLunas:
		return s.Mesin.terapkan(ctx, tx, r, EventKonfirmasi, k, true)
	case models.BayarMenungguVerifikasi:
		if r.StatusReservasi == models.StatusBelumBayar {
			return s.Mesin.terapkan(ctx, tx, r, EventMenungguKonfirmasi, k, false)
		}
	}
	return nil
}

func (s *PembayaranService) List(ctx context.Context, idReservasi uint) ([]PembayaranDetail, error) {
	if _, err := s.Store.FindReservasi(ctx, idReservasi); err != nil {
		return nil, notFound(err, ErrReservasiNotFound)
	}
	list, err := s.Store.ListPembayaran(ctx, idReservasi)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	out := make([]PembayaranDetail, 0, len(list))
	for _, p := range list {
		out = append(out, detailPembayaran(p))
	}
	return out, nil
}

func (s *PembayaranService) Detail(ctx context.Context, id uint) (*PembayaranDetail, error) {
	p, err := s.Store.FindPembayaran(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrPembayaranNotFound)
	}
	d := detailPembayaran(*p)
	return &d, nil
}
