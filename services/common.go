package services

import (
	"errors"
	"time"

	"hotel-reservasi/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Clock returns the current time in the hotel's timezone.
type Clock func() time.Time

func (c Clock) today() time.Time {
	if c == nil {
		return utils.DateOnly(time.Now())
	}
	return utils.DateOnly(c())
}

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

func orNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

// notFound maps gorm.ErrRecordNotFound onto a domain error, leaving other errors alone.
func notFound(err error, domain error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain
	}
	return err
}

func uintPtr(v uint) *uint { return &v }
