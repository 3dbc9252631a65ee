package scheduler

import (
	"context"
	"time"

	patternRepo "github.com/luckcraft/wagercore/pkg/repositories/pattern"
)

// ArchiveMaintenance schedules retention pruning for the Elasticsearch
// outcome archive
type ArchiveMaintenance struct {
	scheduler *Scheduler
	repo      *patternRepo.ElasticsearchRepository
}

// NewArchiveMaintenance creates a maintenance runner for an archive
// repository
func NewArchiveMaintenance(repo *patternRepo.ElasticsearchRepository) *ArchiveMaintenance {
	return &ArchiveMaintenance{
		scheduler: NewScheduler(),
		repo:      repo,
	}
}

// Start registers the pruning task and starts the scheduler. Stale indices
// are checked daily.
func (m *ArchiveMaintenance) Start(ctx context.Context) {
	m.scheduler.AddTask("archive_prune", 24*time.Hour, m.repo.PruneOldIndices)
	m.scheduler.Start(ctx)
}

// Stop stops the scheduler
func (m *ArchiveMaintenance) Stop() {
	m.scheduler.Stop()
}
