package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// JadwalkanSinkronisasi runs ReconcileRoomStatuses on the given cron spec
// (e.g. "@every 15m" or "0 * * * *"). The caller stops the returned cron.
func JadwalkanSinkronisasi(spec string, sync *Synchronizer, log *zap.Logger) (*cron.Cron, error) {
	log = orNop(log)
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := sync.ReconcileRoomStatuses(ctx, sync.Today()); err != nil {
			log.Error("scheduled room reconciliation failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	log.Info("room reconciliation scheduled", zap.String("spec", spec))
	return c, nil
}
