package workers

import (
	"context"

	"github.com/MKhiriev/user-directory/internal/config"
	"github.com/MKhiriev/user-directory/internal/logger"
	"github.com/MKhiriev/user-directory/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the workers enabled by cfg. A zero sweep interval
// disables the session sweeper.
func NewWorkers(storages *store.Storages, cfg config.Workers, logger *logger.Logger) (*Workers, error) {
	w := &Workers{}

	if cfg.SessionSweepInterval > 0 {
		sweeper, err := NewSessionSweeper(storages.Sessions, cfg.SessionSweepInterval, logger)
		if err != nil {
			return nil, err
		}
		w.workers = append(w.workers, sweeper)
	}

	return w, nil
}

func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}
