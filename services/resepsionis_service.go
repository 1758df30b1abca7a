package services

import (
	"context"
	"fmt"
	"strings"

	"hotel-reservasi/models"
	"hotel-reservasi/repository"

	"golang.org/x/crypto/bcrypt"
)

type ResepsionisService struct {
	Store repository.Store
}

func NewResepsionisService(st repository.Store) *ResepsionisService {
	return &ResepsionisService{Store: st}
}

type DataResepsionis struct {
	Nama     string
	Username string
	Password string
	Email    string
	NoTelp   string
}

func (s *ResepsionisService) List(ctx context.Context) ([]models.Resepsionis, error) {
	list, err := s.Store.ListResepsionis(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list receptionists: %w", err)
	}
	return list, nil
}

func (s *ResepsionisService) Create(ctx context.Context, in DataResepsionis) (*models.Resepsionis, error) {
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	if strings.TrimSpace(in.Nama) == "" || in.Username == "" {
		return nil, validationError("Nama dan username wajib diisi")
	}
	if len(in.Password) < 8 {
		return nil, validationError("Password minimal 8 karakter")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	r := &models.Resepsionis{
		Nama:     strings.TrimSpace(in.Nama),
		Username: in.Username,
		Password: string(hash),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		NoTelp:   strings.TrimSpace(in.NoTelp),
	}
	if err := s.Store.CreateResepsionis(ctx, r); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrUsernameDuplikat
		}
		return nil, fmt.Errorf("failed to create receptionist: %w", err)
	}
	return r, nil
}
