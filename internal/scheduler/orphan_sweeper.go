package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/tarumajaya/umkm-backend/internal/app/repository"
	"github.com/tarumajaya/umkm-backend/internal/storage"
	"github.com/tarumajaya/umkm-backend/pkg/logger"
)

// OrphanSweeper deletes stored image objects no longer referenced by any
// business row. Orphans accumulate from replaced logos and from purges that
// failed halfway, since image operations are best-effort.
type OrphanSweeper struct {
	umkmRepo repository.UmkmRepository
	images   *storage.ImageStore
	cron     *cron.Cron
}

func NewOrphanSweeper(umkmRepo repository.UmkmRepository, images *storage.ImageStore) *OrphanSweeper {
	return &OrphanSweeper{
		umkmRepo: umkmRepo,
		images:   images,
		cron:     cron.New(),
	}
}

// Start schedules the nightly sweep at 03:00 server time
func (s *OrphanSweeper) Start() error {
	_, err := s.cron.AddFunc("0 3 * * *", func() {
		if err := s.Sweep(context.Background()); err != nil {
			logger.Error("Orphan sweep failed", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logger.Info("Orphan sweeper scheduled", map[string]interface{}{
		"schedule": "0 3 * * *",
	})
	return nil
}

// Stop halts the schedule, waiting for a running sweep to finish
func (s *OrphanSweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Sweep removes every stored key under the umkm/ prefix that no database row
// references.
func (s *OrphanSweeper) Sweep(ctx context.Context) error {
	keys, err := s.images.ListKeys(ctx, "umkm/")
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	urls, err := s.umkmRepo.AllImageURLs()
	if err != nil {
		return err
	}

	referenced := make(map[string]bool, len(urls))
	for _, url := range urls {
		if key, ok := s.images.KeyForURL(url); ok {
			referenced[key] = true
		}
	}

	var orphans []string
	for _, key := range keys {
		if !referenced[key] {
			orphans = append(orphans, key)
		}
	}
	if len(orphans) == 0 {
		logger.Debug("Orphan sweep found nothing to delete", map[string]interface{}{
			"stored_keys": len(keys),
		})
		return nil
	}

	if err := s.images.DeleteKeys(ctx, orphans); err != nil {
		return err
	}

	logger.Info("Orphan sweep completed", map[string]interface{}{
		"stored_keys": len(keys),
		"deleted":     len(orphans),
	})
	return nil
}
