package utils

import "github.com/shopspring/decimal"

// PPN is the fixed 10% Indonesian VAT.
var PPN = decimal.NewFromFloat(0.10)

var pengaliPPN = decimal.NewFromInt(1).Add(PPN)

type RincianPPN struct {
	Subtotal int64 `json:"subtotal"`
	PPN      int64 `json:"ppn"`
	Total    int64 `json:"total"`
}

// PecahTotal splits a tax-inclusive amount. Subtotal is rounded to whole rupiah
// and PPN takes the remainder, so the parts always sum to the stored amount.
func PecahTotal(total int64) RincianPPN {
	t := decimal.NewFromInt(total)
	subtotal := t.Div(pengaliPPN).Round(0)
	return RincianPPN{
		Subtotal: subtotal.IntPart(),
		PPN:      t.Sub(subtotal).IntPart(),
		Total:    total,
	}
}

// TambahPPN computes the tax-inclusive total for a pre-tax subtotal.
func TambahPPN(subtotal int64) RincianPPN {
	s := decimal.NewFromInt(subtotal)
	total := s.Mul(pengaliPPN).Round(0)
	return RincianPPN{
		Subtotal: subtotal,
		PPN:      total.Sub(s).IntPart(),
		Total:    total.IntPart(),
	}
}
