package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/MKhiriev/user-directory/internal/logger"
	"github.com/MKhiriev/user-directory/internal/store"
)

// SessionSweeper periodically purges expired entries from the session
// registry.
type SessionSweeper struct {
	sessions store.SessionRegistry
	cron     *cron.Cron
	now      func() time.Time

	logger *logger.Logger
}

func NewSessionSweeper(sessions store.SessionRegistry, interval time.Duration, logger *logger.Logger) (*SessionSweeper, error) {
	s := &SessionSweeper{
		sessions: sessions,
		cron:     cron.New(),
		now:      time.Now,
		logger:   logger,
	}

	schedule := "@every " + interval.String()
	if _, err := s.cron.AddFunc(schedule, func() { s.sweep(context.Background()) }); err != nil {
		return nil, fmt.Errorf("error scheduling session sweep %q: %w", schedule, err)
	}

	return s, nil
}

func (s *SessionSweeper) Run(ctx context.Context) {
	s.logger.Info().Str("func", "SessionSweeper.Run").Msg("starting session sweeper")
	s.cron.Start()

	go func() {
		<-ctx.Done()
		<-s.cron.Stop().Done()
		s.logger.Info().Str("func", "SessionSweeper.Run").Msg("session sweeper stopped")
	}()
}

// sweep removes every session expired at the current time.
func (s *SessionSweeper) sweep(ctx context.Context) int {
	purged, err := s.sessions.PurgeExpired(ctx, s.now())
	if err != nil {
		s.logger.Err(err).Str("func", "SessionSweeper.sweep").Msg("error purging expired sessions")
		return 0
	}

	if purged > 0 {
		s.logger.Debug().Str("func", "SessionSweeper.sweep").Int("purged", purged).Msg("purged expired sessions")
	}
	return purged
}
