package services

import (
	"context"
	"fmt"

	"hotel-reservasi/models"
	"hotel-reservasi/repository"
	"hotel-reservasi/utils"

	"github.com/shopspring/decimal"
)

type StatistikService struct {
	Reader repository.StatistikReader
}

func NewStatistikService(r repository.StatistikReader) *StatistikService {
	return &StatistikService{Reader: r}
}

type Dashboard struct {
	models.Statistik
	// TingkatHunian is the share of rooms currently Ditempati, in percent.
	TingkatHunian string           `json:"tingkat_hunian"`
	Pendapatan    utils.RincianPPN `json:"pendapatan"`
}

func (s *StatistikService) Dashboard(ctx context.Context) (*Dashboard, error) {
	st, err := s.Reader.Statistik(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load statistics: %w", err)
	}

	hunian := decimal.Zero
	if st.TotalKamar > 0 {
		hunian = decimal.NewFromInt(st.KamarPerStatus[models.KamarDitempati]).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(st.TotalKamar))
	}

	return &Dashboard{
		Statistik:     st,
		TingkatHunian: hunian.StringFixed(2),
		Pendapatan:    utils.PecahTotal(st.TotalPendapatan),
	}, nil
}
