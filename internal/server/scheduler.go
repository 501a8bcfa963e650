package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
	"github.com/tartampluch/go-luach/internal/config"
)

// Refresh builds a feed and publishes it. On failure the previous feed
// stays in place.
func (s *CalendarServer) Refresh(build BuildFunc) error {
	feed, err := build()
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrCalendarBuild, err)
	}
	s.Update(feed)
	return nil
}

// Schedule rebuilds the feed on the cron spec until ctx is cancelled.
// Scheduled failures are logged, not returned.
func (s *CalendarServer) Schedule(ctx context.Context, spec string, build BuildFunc) error {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if err := s.Refresh(build); err != nil {
			slog.Error(config.MsgRefreshFailed,
				config.LogKeyComponent, config.CompWorker,
				config.LogKeyError, err,
			)
		}
	})
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrSchedulerInvalid, err)
	}

	c.Start()
	slog.Info(config.MsgSchedulerStart,
		config.LogKeyComponent, config.CompWorker,
		config.LogKeySchedule, spec,
	)

	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
	}()
	return nil
}
